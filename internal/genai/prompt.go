package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/casemap/schema"
)

const listSystemPrompt = `You are an analyst who proposes AI and automation use cases for companies.
Respond with a JSON array of short use case names, nothing else.
Example: ["Invoice data extraction", "Churn prediction for renewals"]`

const detailSystemPrompt = `You are an analyst who details AI and automation use cases.
Respond with a single JSON object, nothing else, using exactly these keys:
{
  "description": "...",
  "benefits": "...",
  "risks": "...",
  "nextSteps": "...",
  "sources": "...",
  "relatedData": "...",
  "valueRatings": {"<axis name>": {"rating": 1-5, "reasoning": "..."}},
  "complexityRatings": {"<axis name>": {"rating": 1-5, "reasoning": "..."}}
}`

// listUserPrompt builds the user turn for candidate-name generation.
func listUserPrompt(freeText string, company *schema.Company) string {
	var b strings.Builder
	b.WriteString("Propose use case names for the following context.\n\n")
	writeCompanyContext(&b, company)
	if strings.TrimSpace(freeText) != "" {
		fmt.Fprintf(&b, "Additional context:\n%s\n", freeText)
	}
	return b.String()
}

// detailUserPrompt builds the user turn for one use case. The axis
// names and their level descriptions come from the folder config so
// the model rates against the same scale the engine scores with.
func detailUserPrompt(name, freeText string, cfg *schema.MatrixConfig, company *schema.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Detail the use case %q.\n\n", name)
	writeCompanyContext(&b, company)
	if strings.TrimSpace(freeText) != "" {
		fmt.Fprintf(&b, "Additional context:\n%s\n\n", freeText)
	}
	b.WriteString("Rate every axis below from 1 to 5.\n\nValue axes:\n")
	writeAxes(&b, cfg.ValueAxes)
	b.WriteString("\nComplexity axes:\n")
	writeAxes(&b, cfg.ComplexityAxes)
	return b.String()
}

func writeCompanyContext(b *strings.Builder, company *schema.Company) {
	if company == nil {
		return
	}
	fmt.Fprintf(b, "Company: %s\n", company.Name)
	if company.Industry != "" {
		fmt.Fprintf(b, "Industry: %s\n", company.Industry)
	}
	if company.Description != "" {
		fmt.Fprintf(b, "About: %s\n", company.Description)
	}
	b.WriteString("\n")
}

func writeAxes(b *strings.Builder, axes []schema.Axis) {
	for _, axis := range axes {
		fmt.Fprintf(b, "- %s", axis.Name)
		if axis.Description != "" {
			fmt.Fprintf(b, ": %s", axis.Description)
		}
		b.WriteString("\n")
		for _, ld := range axis.LevelDescriptions {
			fmt.Fprintf(b, "    %d = %s\n", ld.Level, ld.Description)
		}
	}
}

// extractJSON strips markdown code fences that models often wrap
// around JSON payloads.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}

// parseNameList decodes the list response into candidate names.
func parseNameList(content string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(extractJSON(content)), &names); err != nil {
		return nil, fmt.Errorf("parse name list: %w", err)
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// detailPayload mirrors the JSON shape requested in detailSystemPrompt.
type detailPayload struct {
	Description       string                  `json:"description"`
	Benefits          string                  `json:"benefits"`
	Risks             string                  `json:"risks"`
	NextSteps         string                  `json:"nextSteps"`
	Sources           string                  `json:"sources"`
	RelatedData       string                  `json:"relatedData"`
	ValueRatings      map[string]ratingDetail `json:"valueRatings"`
	ComplexityRatings map[string]ratingDetail `json:"complexityRatings"`
}

type ratingDetail struct {
	Rating    int    `json:"rating"`
	Reasoning string `json:"reasoning"`
}

// parseDetail decodes the detail response into an unscored UseCase.
// Ratings outside 1-5 are clamped rather than rejected so one bad
// axis value does not discard an otherwise complete generation.
func parseDetail(content, name string, cfg *schema.MatrixConfig) (*schema.UseCase, error) {
	var payload detailPayload
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return nil, fmt.Errorf("parse detail: %w", err)
	}
	uc := &schema.UseCase{
		Name:             name,
		Description:      payload.Description,
		Benefits:         payload.Benefits,
		Risks:            payload.Risks,
		NextSteps:        payload.NextSteps,
		Sources:          payload.Sources,
		RelatedData:      payload.RelatedData,
		ValueScores:      ratingsToScores(payload.ValueRatings, cfg.ValueAxes),
		ComplexityScores: ratingsToScores(payload.ComplexityRatings, cfg.ComplexityAxes),
	}
	return uc, nil
}

// ratingsToScores keeps config order and drops ratings for axis names
// the config does not know.
func ratingsToScores(ratings map[string]ratingDetail, axes []schema.Axis) []schema.AxisScore {
	scores := make([]schema.AxisScore, 0, len(axes))
	for _, axis := range axes {
		detail, ok := ratings[axis.Name]
		if !ok {
			continue
		}
		rating := detail.Rating
		if rating < schema.MinLevel {
			rating = schema.MinLevel
		}
		if rating > schema.MaxLevel {
			rating = schema.MaxLevel
		}
		scores = append(scores, schema.AxisScore{
			AxisName:    axis.Name,
			Rating:      rating,
			Description: detail.Reasoning,
		})
	}
	return scores
}
