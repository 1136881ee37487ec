package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/casemap/schema"
)

func testFolder() *schema.Folder {
	return &schema.Folder{
		ID:           "folder-1",
		Name:         "Pilot",
		MatrixConfig: schema.DefaultMatrixConfig(),
	}
}

func ptr(v float64) *float64 { return &v }

func TestUseCaseRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(UseCaseRow))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"case_id",
		"folder_id",
		"folder_name",
		"name",
		"description",
		"value_score",
		"complexity_score",
		"value_level",
		"complexity_level",
		"advice",
		"company_id",
		"process_ids",
		"created_at",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestBuildUseCaseRows(t *testing.T) {
	folder := testFolder()
	cases := []schema.UseCase{
		{
			ID:                   "uc-1",
			Name:                 "Invoice extraction",
			Description:          "Extract invoice fields",
			CompanyID:            "co-1",
			BusinessProcessIDs:   []string{"bp-1", "bp-2"},
			TotalValueScore:      ptr(4200),
			TotalComplexityScore: ptr(250),
			CreatedAt:            time.Now().UTC(),
		},
		{
			ID:   "uc-2",
			Name: "Unscored idea",
		},
	}

	rows := BuildUseCaseRows(cases, folder)
	require.Len(t, rows, 2)

	// Scored case resolves levels and advice.
	assert.Equal(t, "uc-1", rows[0].CaseID)
	assert.Equal(t, "Pilot", rows[0].FolderName)
	assert.Equal(t, int32(5), rows[0].ValueLevel)
	assert.Equal(t, int32(1), rows[0].ComplexityLevel)
	require.NotNil(t, rows[0].Advice)
	assert.NotEmpty(t, *rows[0].Advice)
	require.NotNil(t, rows[0].ProcessIDs)
	assert.Equal(t, "bp-1|bp-2", *rows[0].ProcessIDs)

	// Unscored case keeps nullable fields nil and levels at zero.
	assert.Nil(t, rows[1].ValueScore)
	assert.Nil(t, rows[1].Advice)
	assert.Nil(t, rows[1].Description)
	assert.Nil(t, rows[1].CompanyID)
	assert.Equal(t, int32(0), rows[1].ValueLevel)
}

func TestWriteUseCasesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "use_cases.parquet")

	folder := testFolder()
	cases := []schema.UseCase{
		{
			ID:                   "uc-1",
			Name:                 "Invoice extraction",
			TotalValueScore:      ptr(900),
			TotalComplexityScore: ptr(900),
			CreatedAt:            time.Now().UTC(),
		},
	}
	data := BuildUseCaseRows(cases, folder)

	err := WriteUseCasesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[UseCaseRow](file)
	defer reader.Close()

	readData := make([]UseCaseRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n, "Should read all records")

	assert.Equal(t, data[0].CaseID, readData[0].CaseID)
	assert.Equal(t, data[0].ValueLevel, readData[0].ValueLevel)
	require.NotNil(t, readData[0].ValueScore)
	assert.InDelta(t, *data[0].ValueScore, *readData[0].ValueScore, 0.01)
	assert.WithinDuration(t, data[0].CreatedAt, readData[0].CreatedAt, time.Nanosecond)
}

func TestWriteUseCasesParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_use_cases.parquet")

	err := WriteUseCasesParquet([]UseCaseRow{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteUseCasesParquet_InvalidPath(t *testing.T) {
	err := WriteUseCasesParquet([]UseCaseRow{}, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
