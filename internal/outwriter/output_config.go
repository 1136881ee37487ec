package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintMatrixConfig outputs a folder's axes and threshold tables,
// dispatching based on the output format configured.
func PrintMatrixConfig(folder *schema.Folder, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, folder.MatrixConfig)
		}, "Wrote JSON")
	default:
		return printMatrixConfigTables(folder, cfg)
	}
}

// printMatrixConfigTables renders both axis sets and both threshold
// tables for one folder.
func printMatrixConfigTables(folder *schema.Folder, cfg *contract.Config) error {
	fmt.Printf("Scoring configuration for folder %q\n\n", folder.Name)

	if err := printAxisTable("Value axes", folder.MatrixConfig.ValueAxes, cfg); err != nil {
		return err
	}
	if err := printAxisTable("Complexity axes", folder.MatrixConfig.ComplexityAxes, cfg); err != nil {
		return err
	}
	if err := printThresholdTable("Value thresholds", folder.MatrixConfig.ValueThresholds); err != nil {
		return err
	}
	return printThresholdTable("Complexity thresholds", folder.MatrixConfig.ComplexityThresholds)
}

func printAxisTable(title string, axes []schema.Axis, cfg *contract.Config) error {
	fmt.Println(title)
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Axis", "Weight"}
	if cfg.Detail {
		headers = append(headers, "Description", "Scale")
	}
	table.Header(headers)

	fmtFloat := createFormatter(cfg.Precision)
	var data [][]string
	for _, axis := range axes {
		row := []string{axis.Name, fmtFloat(axis.Weight)}
		if cfg.Detail {
			scale := ""
			for i, ld := range axis.LevelDescriptions {
				if i > 0 {
					scale += " / "
				}
				scale += fmt.Sprintf("%d=%s", ld.Level, ld.Description)
			}
			row = append(row, axis.Description, scale)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func printThresholdTable(title string, thresholds []schema.LevelThreshold) error {
	fmt.Println(title)
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Level", "Points", "Threshold", "Cases"})

	sorted := schema.SortByLevelDesc(thresholds)
	var data [][]string
	for _, t := range sorted {
		data = append(data, []string{
			strconv.Itoa(t.Level),
			strconv.FormatFloat(t.Points, 'f', -1, 64),
			strconv.FormatFloat(t.Threshold, 'f', -1, 64),
			strconv.Itoa(t.Cases),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
