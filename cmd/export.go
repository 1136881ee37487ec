package cmd

import (
	"fmt"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/parquet"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
)

// exportCmd exports a folder's use cases to Parquet.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a folder's use cases for analytics",
	Long: `Export a folder's use cases, with derived scores and resolved levels,
for use with analytics tools. The default format is Parquet; pass
--output csv or --output json for flat exports.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export the active folder
  casemap export --output-file cases.parquet

  # Flat CSV export
  casemap export --output csv --output-file cases.csv

  # Query with DuckDB
  duckdb -c "SELECT name, value_score FROM read_parquet('cases.parquet') ORDER BY value_score DESC"`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export use cases", fmt.Errorf("--output-file is required"))
		}
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		cases, err := engine.Repo().ListCases(folder.ID)
		if err != nil {
			contract.LogFatal("Cannot list use cases", err)
		}

		switch cfg.Output {
		case schema.CSVOut, schema.JSONOut:
			if err := writer.WriteCases(cases, folder, cfg, 0); err != nil {
				contract.LogFatal("Cannot export use cases", err)
			}
		default:
			// text and parquet both mean parquet here
			rows := parquet.BuildUseCaseRows(cases, folder)
			if err := parquet.WriteUseCasesParquet(rows, cfg.OutputFile); err != nil {
				contract.LogFatal("Cannot export use cases", err)
			}
			fmt.Printf("Exported %d use cases to %s\n", len(rows), cfg.OutputFile)
		}
	},
}

func init() {
	exportCmd.Flags().String("folder", "", "Folder id or name (defaults to the active folder)")
}
