package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMatrix outputs the classified 5x5 grid, dispatching based on
// the output format configured.
func PrintMatrix(m *core.Matrix, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONMatrix(m, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVMatrix(m, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable grid
		if err := printMatrixTable(m, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONMatrix handles opening the file and calling the JSON writer.
func printJSONMatrix(m *core.Matrix, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, m)
	}, "Wrote JSON")
}

// printCSVMatrix handles opening the file and calling the CSV writer.
func printCSVMatrix(m *core.Matrix, cfg *contract.Config) error {
	header := []string{"value_level", "complexity_level", "label", "advice", "count", "cases"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for row := range schema.LevelCount {
				for col := range schema.LevelCount {
					cell := m.Cells[row][col]
					names := make([]string, len(cell.Cases))
					for i, uc := range cell.Cases {
						names[i] = uc.Name
					}
					record := []string{
						strconv.Itoa(cell.ValueLevel),
						strconv.Itoa(cell.ComplexityLevel),
						adviceLabel(cell.Tone),
						cell.Advice,
						strconv.Itoa(len(cell.Cases)),
						strings.Join(names, "|"),
					}
					if err := csvWriter.Write(record); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printMatrixTable renders the 5x5 grid with value levels as rows from
// 5 stars at the top down to 1, and complexity levels as columns from
// 1 X on the left up to 5 X.
func printMatrixTable(m *core.Matrix, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Value \\ Complexity"}
	for col := range schema.LevelCount {
		headers = append(headers, fmt.Sprintf("%dX", schema.MinLevel+col))
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignCenter
	})

	// 3. Prepare Data Rows
	var data [][]string
	for row := range schema.LevelCount {
		record := []string{fmt.Sprintf("%d★", schema.MaxLevel-row)}
		for col := range schema.LevelCount {
			record = append(record, formatCell(m.Cells[row][col], cfg))
		}
		data = append(data, record)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Classified %d use cases (%d unscored excluded)\n", m.Total(), m.Unscored)
	fmt.Printf("Value levels 1-5: %v | Complexity levels 1-5: %v\n", m.ValueCounts, m.ComplexityCounts)
	fmt.Printf("Classification completed in %v\n", duration)
	return nil
}

// formatCell renders one grid cell: the bucket size plus the advisory
// label, with case names added in detail mode.
func formatCell(cell core.Cell, cfg *contract.Config) string {
	label := colorAdviceLabel(cell.Tone, cfg.UseColors)
	if len(cell.Cases) == 0 {
		return fmt.Sprintf("· %s", label)
	}
	if !cfg.Detail {
		return fmt.Sprintf("%d %s", len(cell.Cases), label)
	}
	names := make([]string, len(cell.Cases))
	for i, uc := range cell.Cases {
		names[i] = truncateName(uc.Name, 20)
	}
	return fmt.Sprintf("%d %s\n%s", len(cell.Cases), label, strings.Join(names, "\n"))
}
