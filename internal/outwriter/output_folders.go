package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintFolderList outputs the folder listing, dispatching based on the
// output format configured.
func PrintFolderList(folders []schema.Folder, activeID string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONFolderList(w, folders, activeID)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"id", "name", "description", "company_id", "active", "created_at"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, f := range folders {
					record := []string{
						f.ID,
						f.Name,
						f.Description,
						f.CompanyID,
						strconv.FormatBool(f.ID == activeID),
						f.CreatedAt.Format(contract.DateTimeFormat),
					}
					if err := csvWriter.Write(record); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return printFolderTable(folders, activeID, cfg)
	}
}

// writeJSONFolderList marshals the folder slice with the active flag added.
func writeJSONFolderList(w io.Writer, folders []schema.Folder, activeID string) error {
	type JSONFolder struct {
		Active bool `json:"active"`
		schema.Folder
	}
	output := make([]JSONFolder, len(folders))
	for i, f := range folders {
		output[i] = JSONFolder{Active: f.ID == activeID, Folder: f}
	}
	return writeJSON(w, output)
}

// printFolderTable prints folders in a human-readable table.
func printFolderTable(folders []schema.Folder, activeID string, cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"", "Name", "ID", "Axes", "Company"}
	if cfg.Detail {
		headers = append(headers, "Description", "Created")
	}
	table.Header(headers)

	var data [][]string
	for _, f := range folders {
		marker := ""
		if f.ID == activeID {
			marker = "*"
		}
		axes := fmt.Sprintf("%d★ %dX", len(f.MatrixConfig.ValueAxes), len(f.MatrixConfig.ComplexityAxes))
		row := []string{marker, f.Name, f.ID, axes, f.CompanyID}
		if cfg.Detail {
			row = append(row, f.Description, f.CreatedAt.Format("2006-01-02"))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing %d folders (* marks the active folder)\n", len(folders))
	return nil
}

// PrintCompanyList outputs the company listing, dispatching based on
// the output format configured.
func PrintCompanyList(companies []schema.Company, activeID string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			type JSONCompany struct {
				Active bool `json:"active"`
				schema.Company
			}
			output := make([]JSONCompany, len(companies))
			for i, c := range companies {
				output[i] = JSONCompany{Active: c.ID == activeID, Company: c}
			}
			return writeJSON(w, output)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"id", "name", "industry", "active", "created_at"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, c := range companies {
					record := []string{
						c.ID,
						c.Name,
						c.Industry,
						strconv.FormatBool(c.ID == activeID),
						c.CreatedAt.Format(contract.DateTimeFormat),
					}
					if err := csvWriter.Write(record); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		table := tablewriter.NewWriter(os.Stdout)
		headers := []string{"", "Name", "ID", "Industry"}
		if cfg.Detail {
			headers = append(headers, "Description")
		}
		table.Header(headers)

		var data [][]string
		for _, c := range companies {
			marker := ""
			if c.ID == activeID {
				marker = "*"
			}
			row := []string{marker, c.Name, c.ID, c.Industry}
			if cfg.Detail {
				row = append(row, c.Description)
			}
			data = append(data, row)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Printf("Showing %d companies (* marks the active company)\n", len(companies))
		return nil
	}
}
