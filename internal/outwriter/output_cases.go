package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/parquet"
	"github.com/huangsam/casemap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCaseResults outputs the use-case listing, dispatching based on
// the output format configured. The folder supplies the threshold
// tables for level resolution.
func PrintCaseResults(cases []schema.UseCase, folder *schema.Folder, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForCases(cases, folder, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForCases(cases, folder, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires an output file")
		}
		rows := parquet.BuildUseCaseRows(cases, folder)
		if err := parquet.WriteUseCasesParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		if err := printCaseTable(cases, folder, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForCases handles opening the file and calling the JSON writer.
func printJSONResultsForCases(cases []schema.UseCase, folder *schema.Folder, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForCases(w, cases, folder)
	}, "Wrote JSON")
}

// printCSVResultsForCases handles opening the file and calling the CSV writer.
func printCSVResultsForCases(cases []schema.UseCase, folder *schema.Folder, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForCases(csvWriter, cases, folder, fmtFloat)
	}, "Wrote CSV")
}

// printCaseTable prints the use cases in the custom listing format,
// using the tablewriter API.
func printCaseTable(cases []schema.UseCase, folder *schema.Folder, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Rank", "Name", "Value", "Complexity", "Levels", "Label"}
	if cfg.Detail {
		headers = append(headers, "Advice", "Created")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	unscored := 0
	for i, uc := range cases {
		valueLevel := core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds)
		complexityLevel := core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds)

		levels := "-"
		label := contract.NeutralValue
		advice := ""
		if uc.Scored() {
			levels = fmt.Sprintf("%d★ %dX", valueLevel, complexityLevel)
			row, col := core.CellFor(valueLevel, complexityLevel)
			var tone core.CellTone
			advice, tone = core.AdviceFor(row, col)
			label = colorAdviceLabel(tone, cfg.UseColors)
		} else {
			unscored++
		}

		row := []string{
			strconv.Itoa(i + 1), // Rank
			truncateName(uc.Name, GetMaxTableNameWidth(cfg)),
			fmtScore(uc.TotalValueScore, fmtFloat),
			fmtScore(uc.TotalComplexityScore, fmtFloat),
			levels,
			label,
		}
		if cfg.Detail {
			row = append(row, advice, uc.CreatedAt.Format("2006-01-02"))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing %d use cases in folder %q (%d unscored)\n", len(cases), folder.Name, unscored)
	fmt.Printf("Listing completed in %v\n", duration)
	return nil
}
