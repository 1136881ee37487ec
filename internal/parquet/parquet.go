// Package parquet provides data structures and functions for exporting
// use-case data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/schema"
	"github.com/parquet-go/parquet-go"
)

// UseCaseRow represents one exported use case with its resolved levels.
type UseCaseRow struct {
	// CaseID is the unique identifier for this use case
	CaseID string `parquet:"case_id,snappy"`

	// FolderID identifies the owning folder
	FolderID string `parquet:"folder_id,snappy"`

	// FolderName is the owning folder's display name
	FolderName string `parquet:"folder_name,snappy"`

	// Name is the use case's display name
	Name string `parquet:"name,snappy"`

	// Description is the free-text summary (nullable)
	Description *string `parquet:"description,optional,snappy"`

	// ValueScore is the derived total value score (nullable when unscored)
	ValueScore *float64 `parquet:"value_score,optional,snappy"`

	// ComplexityScore is the derived total complexity score (nullable when unscored)
	ComplexityScore *float64 `parquet:"complexity_score,optional,snappy"`

	// ValueLevel is the resolved 1-5 value level (0 when unscored)
	ValueLevel int32 `parquet:"value_level,snappy"`

	// ComplexityLevel is the resolved 1-5 complexity level (0 when unscored)
	ComplexityLevel int32 `parquet:"complexity_level,snappy"`

	// Advice is the matrix cell's advisory text (nullable when unscored)
	Advice *string `parquet:"advice,optional,snappy"`

	// CompanyID references the company profile (nullable)
	CompanyID *string `parquet:"company_id,optional,snappy"`

	// ProcessIDs is a pipe-joined list of business process references (nullable)
	ProcessIDs *string `parquet:"process_ids,optional,snappy"`

	// CreatedAt is when the use case was captured
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// BuildUseCaseRows converts use cases into export rows, resolving
// levels against the owning folder's threshold tables.
func BuildUseCaseRows(cases []schema.UseCase, folder *schema.Folder) []UseCaseRow {
	rows := make([]UseCaseRow, len(cases))
	for i, uc := range cases {
		row := UseCaseRow{
			CaseID:          uc.ID,
			FolderID:        folder.ID,
			FolderName:      folder.Name,
			Name:            uc.Name,
			ValueScore:      uc.TotalValueScore,
			ComplexityScore: uc.TotalComplexityScore,
			CreatedAt:       uc.CreatedAt,
		}
		if uc.Description != "" {
			row.Description = &uc.Description
		}
		if uc.CompanyID != "" {
			row.CompanyID = &uc.CompanyID
		}
		if len(uc.BusinessProcessIDs) > 0 {
			joined := strings.Join(uc.BusinessProcessIDs, "|")
			row.ProcessIDs = &joined
		}
		if uc.Scored() {
			valueLevel := core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds)
			complexityLevel := core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds)
			row.ValueLevel = int32(valueLevel)
			row.ComplexityLevel = int32(complexityLevel)
			advice, _ := core.AdviceFor(core.CellFor(valueLevel, complexityLevel))
			row.Advice = &advice
		}
		rows[i] = row
	}
	return rows
}

// WriteUseCasesParquet writes a slice of UseCaseRow structs to a Parquet file.
func WriteUseCasesParquet(data []UseCaseRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the UseCaseRow struct tags
	writer := parquet.NewGenericWriter[UseCaseRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
