package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

func ptr(v float64) *float64 { return &v }

func testFolder() *schema.Folder {
	return &schema.Folder{
		ID:           "folder-1",
		Name:         "Pilot",
		MatrixConfig: schema.DefaultMatrixConfig(),
	}
}

func testCases() []schema.UseCase {
	return []schema.UseCase{
		{
			ID:                   "uc-1",
			Name:                 "Invoice extraction",
			TotalValueScore:      ptr(4200),
			TotalComplexityScore: ptr(250),
		},
		{
			ID:   "uc-2",
			Name: "Unscored idea",
		},
	}
}

func TestWriteJSONResultsForCases(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForCases(&buf, testCases(), testFolder())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, float64(5), decoded[0]["valueLevel"])
	assert.Equal(t, float64(1), decoded[0]["complexityLevel"])
	assert.Equal(t, contract.PursueValue, decoded[0]["label"])

	// Unscored cases resolve to level 0 with the neutral label.
	assert.Equal(t, float64(0), decoded[1]["valueLevel"])
	assert.Equal(t, contract.NeutralValue, decoded[1]["label"])
}

func TestWriteCSVResultsForCases(t *testing.T) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	fmtFloat := createFormatter(1)

	err := writeCSVResultsForCases(csvWriter, testCases(), testFolder(), fmtFloat)
	csvWriter.Flush()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, "Invoice extraction", records[1][2])
	assert.Equal(t, "4200.0", records[1][3])
	assert.Equal(t, "5", records[1][5])
	assert.Equal(t, "1", records[1][6])

	// Unscored case renders dashes for scores.
	assert.Equal(t, "-", records[2][3])
	assert.Equal(t, "-", records[2][4])
}

func TestPrintMatrixJSON(t *testing.T) {
	m := core.Classify("folder-1", testCases(), &testFolder().MatrixConfig)

	var buf bytes.Buffer
	err := writeJSON(&buf, m)
	require.NoError(t, err)

	var decoded core.Matrix
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "folder-1", decoded.FolderID)
	assert.Equal(t, 1, decoded.Unscored)
	assert.Equal(t, 1, decoded.Total())
}

func TestAdviceLabels(t *testing.T) {
	tests := []struct {
		tone core.CellTone
		want string
	}{
		{core.ToneGreen, contract.PursueValue},
		{core.ToneLime, contract.PlanValue},
		{core.ToneOrange, contract.CautionValue},
		{core.ToneRed, contract.AvoidValue},
		{core.ToneGray, contract.NeutralValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, adviceLabel(tt.tone))
		// Without colors the label passes through unchanged.
		assert.Equal(t, tt.want, colorAdviceLabel(tt.tone, false))
	}
}

func TestFormatCell(t *testing.T) {
	cfg := &contract.Config{UseColors: false}

	empty := core.Cell{Tone: core.ToneGray}
	assert.Equal(t, "· Neutral", formatCell(empty, cfg))

	filled := core.Cell{
		Tone:  core.ToneGreen,
		Cases: []schema.UseCase{{Name: "Invoice extraction"}},
	}
	assert.Equal(t, "1 Pursue", formatCell(filled, cfg))

	cfg.Detail = true
	out := formatCell(filled, cfg)
	assert.Contains(t, out, "Invoice extracti")
}

func TestGetMaxTableNameWidth(t *testing.T) {
	// Width override takes precedence over terminal detection.
	wide := &contract.Config{Width: 200}
	assert.Equal(t, 60, GetMaxTableNameWidth(wide))

	narrow := &contract.Config{Width: 40}
	assert.Equal(t, 15, GetMaxTableNameWidth(narrow))

	detailed := &contract.Config{Width: 120, Detail: true}
	assert.Equal(t, 25, GetMaxTableNameWidth(detailed))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 20))
	assert.Equal(t, "a very long name ...", truncateName("a very long name indeed", 20))
	assert.Equal(t, "ab", truncateName("abcdef", 2))
}

func TestWriteJSONFolderList(t *testing.T) {
	folders := []schema.Folder{
		{ID: "f1", Name: "Default", MatrixConfig: schema.DefaultMatrixConfig()},
		{ID: "f2", Name: "Pilot", MatrixConfig: schema.DefaultMatrixConfig()},
	}

	var buf bytes.Buffer
	err := writeJSONFolderList(&buf, folders, "f2")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, false, decoded[0]["active"])
	assert.Equal(t, true, decoded[1]["active"])
}
