package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

// writeJSONResultsForCases marshals the use-case slice to JSON with
// rank, resolved levels and advisory label added.
func writeJSONResultsForCases(w io.Writer, cases []schema.UseCase, folder *schema.Folder) error {
	type JSONCaseResult struct {
		Rank            int    `json:"rank"`
		ValueLevel      int    `json:"valueLevel"`
		ComplexityLevel int    `json:"complexityLevel"`
		Label           string `json:"label"`
		schema.UseCase
	}

	output := make([]JSONCaseResult, len(cases))
	for i, uc := range cases {
		valueLevel := core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds)
		complexityLevel := core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds)
		label := contract.NeutralValue
		if uc.Scored() {
			row, col := core.CellFor(valueLevel, complexityLevel)
			_, tone := core.AdviceFor(row, col)
			label = adviceLabel(tone)
		}
		output[i] = JSONCaseResult{
			Rank:            i + 1,
			ValueLevel:      valueLevel,
			ComplexityLevel: complexityLevel,
			Label:           label,
			UseCase:         uc,
		}
	}

	return writeJSON(w, output)
}

// writeCSVResultsForCases writes the use-case data to a CSV writer.
func writeCSVResultsForCases(w *csv.Writer, cases []schema.UseCase, folder *schema.Folder, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"rank",
		"id",
		"name",
		"value_score",
		"complexity_score",
		"value_level",
		"complexity_level",
		"label",
		"processes",
		"created_at",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i, uc := range cases {
		valueLevel := core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds)
		complexityLevel := core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds)
		label := contract.NeutralValue
		if uc.Scored() {
			row, col := core.CellFor(valueLevel, complexityLevel)
			_, tone := core.AdviceFor(row, col)
			label = adviceLabel(tone)
		}
		row := []string{
			strconv.Itoa(i + 1),
			uc.ID,
			uc.Name,
			fmtScore(uc.TotalValueScore, fmtFloat),
			fmtScore(uc.TotalComplexityScore, fmtFloat),
			strconv.Itoa(valueLevel),
			strconv.Itoa(complexityLevel),
			label,
			strings.Join(uc.BusinessProcessIDs, "|"),
			uc.CreatedAt.Format(contract.DateTimeFormat),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
