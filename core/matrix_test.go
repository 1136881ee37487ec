package core

import (
	"testing"

	"github.com/huangsam/casemap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridConfig() *schema.MatrixConfig {
	return &schema.MatrixConfig{
		ValueThresholds:      standardThresholds(),
		ComplexityThresholds: standardThresholds(),
	}
}

// TestCellFor pins the display orientation: row 0 is 5-star value,
// column 0 is 1-X complexity.
func TestCellFor(t *testing.T) {
	tests := []struct {
		name            string
		valueLevel      int
		complexityLevel int
		row, col        int
	}{
		{name: "top left quick win", valueLevel: 5, complexityLevel: 1, row: 0, col: 0},
		{name: "bottom right worst quadrant", valueLevel: 1, complexityLevel: 5, row: 4, col: 4},
		{name: "center", valueLevel: 3, complexityLevel: 3, row: 2, col: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := CellFor(tt.valueLevel, tt.complexityLevel)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}

// TestAdviceTableTones pins the tone zones of the decision table.
func TestAdviceTableTones(t *testing.T) {
	// Quick win: green at the top left.
	advice, tone := AdviceFor(0, 0)
	assert.Equal(t, ToneGreen, tone)
	assert.NotEmpty(t, advice)

	// High value, low complexity band: favorable.
	_, tone = AdviceFor(0, 1)
	assert.Equal(t, ToneLime, tone)
	_, tone = AdviceFor(1, 0)
	assert.Equal(t, ToneLime, tone)

	// Low value, high complexity: avoid.
	_, tone = AdviceFor(4, 4)
	assert.Equal(t, ToneRed, tone)
	_, tone = AdviceFor(3, 3)
	assert.Equal(t, ToneRed, tone)

	// Moderate value, high complexity: caution.
	_, tone = AdviceFor(2, 3)
	assert.Equal(t, ToneOrange, tone)
	_, tone = AdviceFor(2, 4)
	assert.Equal(t, ToneOrange, tone)

	// Out of range falls back to neutral.
	_, tone = AdviceFor(-1, 9)
	assert.Equal(t, ToneGray, tone)
}

// TestAdviceTableComplete verifies all 25 cells carry advice.
func TestAdviceTableComplete(t *testing.T) {
	for row := range schema.LevelCount {
		for col := range schema.LevelCount {
			advice, tone := AdviceFor(row, col)
			assert.NotEmpty(t, advice, "cell (%d,%d)", row, col)
			assert.NotEmpty(t, tone, "cell (%d,%d)", row, col)
		}
	}
}

// TestClassifyBucketsAndCounts covers grid coverage and count
// consistency: every scored case lands in exactly one cell, unscored
// cases are excluded entirely.
func TestClassifyBucketsAndCounts(t *testing.T) {
	cases := []schema.UseCase{
		{ID: "a", TotalValueScore: ptr(4200), TotalComplexityScore: ptr(100)},  // V5 C1 -> (0,0)
		{ID: "b", TotalValueScore: ptr(950), TotalComplexityScore: ptr(1600)},  // V2 C4 -> (3,3)
		{ID: "c", TotalValueScore: ptr(950), TotalComplexityScore: ptr(1600)},  // V2 C4 -> (3,3)
		{ID: "d", TotalValueScore: ptr(100), TotalComplexityScore: ptr(4200)},  // V1 C5 -> (4,4)
		{ID: "e", TotalValueScore: nil, TotalComplexityScore: ptr(100)},        // excluded
		{ID: "f", TotalValueScore: ptr(1200), TotalComplexityScore: nil},       // excluded
	}

	m := Classify("folder-1", cases, gridConfig())

	assert.Equal(t, 4, m.Total())
	assert.Equal(t, 2, m.Unscored)
	assert.Len(t, m.Cells[0][0].Cases, 1)
	assert.Len(t, m.Cells[3][3].Cases, 2)
	assert.Len(t, m.Cells[4][4].Cases, 1)

	// Count consistency per dimension: a case with one defined total
	// still counts on that dimension even though the grid excludes it.
	assert.Equal(t, [schema.LevelCount]int{1, 2, 1, 0, 1}, m.ValueCounts)
	assert.Equal(t, [schema.LevelCount]int{2, 0, 0, 2, 1}, m.ComplexityCounts)
}

// TestClassifyCellMetadata verifies every cell carries its levels and
// advice even when empty.
func TestClassifyCellMetadata(t *testing.T) {
	m := Classify("folder-1", nil, gridConfig())

	require.Equal(t, 0, m.Total())
	for row := range schema.LevelCount {
		for col := range schema.LevelCount {
			cell := m.Cells[row][col]
			assert.Equal(t, schema.MaxLevel-row, cell.ValueLevel)
			assert.Equal(t, schema.MinLevel+col, cell.ComplexityLevel)
			assert.NotEmpty(t, cell.Advice)
			assert.Empty(t, cell.Cases)
		}
	}
}

// TestClassifyGridCoverage checks the sum across cells equals the
// number of fully scored cases for a larger synthetic folder.
func TestClassifyGridCoverage(t *testing.T) {
	var cases []schema.UseCase
	scored := 0
	for i := range 60 {
		uc := schema.UseCase{ID: string(rune('a' + i%26))}
		if i%7 == 0 {
			// Leave unscored
		} else {
			v := float64(i * 100)
			c := float64((60 - i) * 100)
			uc.TotalValueScore = &v
			uc.TotalComplexityScore = &c
			scored++
		}
		cases = append(cases, uc)
	}

	m := Classify("folder-1", cases, gridConfig())
	assert.Equal(t, scored, m.Total())
	assert.Equal(t, len(cases)-scored, m.Unscored)
}
