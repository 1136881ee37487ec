package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/olekukonko/tablewriter"
)

// JSONCaseDetail is the JSON shape for a single use case with its
// resolved levels and advice.
type JSONCaseDetail struct {
	schema.UseCase
	ValueLevel      int    `json:"valueLevel"`
	ComplexityLevel int    `json:"complexityLevel"`
	Advice          string `json:"advice,omitempty"`
	FolderName      string `json:"folderName"`
}

// PrintCaseDetail outputs one use case in full, dispatching on the
// configured output format. Table-oriented formats make no sense for a
// single record, so only text and JSON are supported.
func PrintCaseDetail(uc *schema.UseCase, folder *schema.Folder, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, buildCaseDetail(uc, folder))
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("case detail supports text or json output, got %q", cfg.Output)
	default:
		printCaseDetailText(uc, folder, cfg)
		return nil
	}
}

func buildCaseDetail(uc *schema.UseCase, folder *schema.Folder) JSONCaseDetail {
	detail := JSONCaseDetail{
		UseCase:         *uc,
		ValueLevel:      core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds),
		ComplexityLevel: core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds),
		FolderName:      folder.Name,
	}
	if uc.Scored() {
		row, col := core.CellFor(detail.ValueLevel, detail.ComplexityLevel)
		detail.Advice, _ = core.AdviceFor(row, col)
	}
	return detail
}

func printCaseDetailText(uc *schema.UseCase, folder *schema.Folder, cfg *contract.Config) {
	fmtFloat := createFormatter(cfg.Precision)

	fmt.Printf("Name: %s\n", uc.Name)
	fmt.Printf("ID: %s\n", uc.ID)
	fmt.Printf("Folder: %s\n", folder.Name)
	printIfSet("Description", uc.Description)
	printIfSet("Benefits", uc.Benefits)
	printIfSet("Risks", uc.Risks)
	printIfSet("Next steps", uc.NextSteps)
	printIfSet("Sources", uc.Sources)
	printIfSet("Related data", uc.RelatedData)
	printIfSet("Company", uc.CompanyID)
	fmt.Printf("Created: %s\n", uc.CreatedAt.Format(contract.DateTimeFormat))

	if uc.Scored() {
		valueLevel := core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds)
		complexityLevel := core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds)
		row, col := core.CellFor(valueLevel, complexityLevel)
		advice, tone := core.AdviceFor(row, col)
		fmt.Printf("Scores: value %s (%d★), complexity %s (%dX)\n",
			fmtScore(uc.TotalValueScore, fmtFloat), valueLevel,
			fmtScore(uc.TotalComplexityScore, fmtFloat), complexityLevel)
		fmt.Printf("Advice: %s (%s)\n", advice, colorAdviceLabel(tone, cfg.UseColors))
	} else {
		fmt.Println("Scores: unscored")
	}

	printRatingTable("Value ratings", uc.ValueScores)
	printRatingTable("Complexity ratings", uc.ComplexityScores)
}

func printIfSet(label, value string) {
	if value != "" {
		fmt.Printf("%s: %s\n", label, value)
	}
}

func printRatingTable(title string, scores []schema.AxisScore) {
	if len(scores) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Axis", "Rating", "Description"})
	var data [][]string
	for _, s := range scores {
		data = append(data, []string{s.AxisName, fmt.Sprintf("%d", s.Rating), s.Description})
	}
	if err := table.Bulk(data); err != nil {
		return
	}
	_ = table.Render()
}
