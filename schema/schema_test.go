package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateThresholds checks the structural invariants of threshold tables.
func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		table   []LevelThreshold
		wantErr bool
	}{
		{
			name:    "default table is valid",
			table:   defaultThresholdTable(),
			wantErr: false,
		},
		{
			name:    "too few entries",
			table:   defaultThresholdTable()[:3],
			wantErr: true,
		},
		{
			name: "duplicate level",
			table: []LevelThreshold{
				{Level: 1, Threshold: 100},
				{Level: 2, Threshold: 200},
				{Level: 2, Threshold: 300},
				{Level: 4, Threshold: 400},
				{Level: 5, Threshold: 500},
			},
			wantErr: true,
		},
		{
			name: "non-increasing thresholds",
			table: []LevelThreshold{
				{Level: 1, Threshold: 100},
				{Level: 2, Threshold: 200},
				{Level: 3, Threshold: 200},
				{Level: 4, Threshold: 400},
				{Level: 5, Threshold: 500},
			},
			wantErr: true,
		},
		{
			name: "level out of range",
			table: []LevelThreshold{
				{Level: 0, Threshold: 100},
				{Level: 2, Threshold: 200},
				{Level: 3, Threshold: 300},
				{Level: 4, Threshold: 400},
				{Level: 5, Threshold: 500},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThresholds(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestSortByLevelDesc verifies the scan order does not trust storage order.
func TestSortByLevelDesc(t *testing.T) {
	shuffled := []LevelThreshold{
		{Level: 3}, {Level: 1}, {Level: 5}, {Level: 2}, {Level: 4},
	}
	sorted := SortByLevelDesc(shuffled)

	for i, want := range []int{5, 4, 3, 2, 1} {
		assert.Equal(t, want, sorted[i].Level)
	}
	// Input untouched
	assert.Equal(t, 3, shuffled[0].Level)
}

// TestMergeThresholds verifies partial updates keep untouched levels.
func TestMergeThresholds(t *testing.T) {
	current := defaultThresholdTable()
	merged := MergeThresholds(current, []LevelThreshold{
		{Level: 3, Points: 150, Threshold: 1100},
	})

	for _, entry := range merged {
		if entry.Level == 3 {
			assert.Equal(t, 150.0, entry.Points)
			assert.Equal(t, 1100.0, entry.Threshold)
		} else {
			assert.Equal(t, current[entry.Level-1], entry)
		}
	}
}

// TestMatrixConfigClone verifies folders never share config state.
func TestMatrixConfigClone(t *testing.T) {
	original := DefaultMatrixConfig()
	cloned := original.Clone()

	cloned.ValueAxes[0].Weight = 99
	cloned.ValueAxes[0].LevelDescriptions[0].Description = "changed"
	cloned.ValueThresholds[0].Threshold = -1

	assert.Equal(t, 2.0, original.ValueAxes[0].Weight)
	assert.Equal(t, "Very low", original.ValueAxes[0].LevelDescriptions[0].Description)
	assert.Equal(t, 300.0, original.ValueThresholds[0].Threshold)
}

// TestDefaultMatrixConfig validates the shipped defaults.
func TestDefaultMatrixConfig(t *testing.T) {
	cfg := DefaultMatrixConfig()

	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.ValueAxes, 4)
	assert.Len(t, cfg.ComplexityAxes, 4)
	for _, axis := range append(cfg.ValueAxes, cfg.ComplexityAxes...) {
		assert.Len(t, axis.LevelDescriptions, LevelCount)
		assert.Positive(t, axis.Weight)
	}
}

// TestFindAxis covers present and stale axis names.
func TestFindAxis(t *testing.T) {
	cfg := DefaultMatrixConfig()

	axis := FindAxis(cfg.ValueAxes, "Sponsorship")
	require.NotNil(t, axis)
	assert.Equal(t, 1.5, axis.Weight)

	assert.Nil(t, FindAxis(cfg.ValueAxes, "Removed Axis"))
}

// TestSetRating covers replace and append paths.
func TestSetRating(t *testing.T) {
	uc := UseCase{ID: "uc-1"}

	uc.SetRating(ValueKind, "Business Value", 3, "Moderate")
	uc.SetRating(ValueKind, "Business Value", 5, "Very high")
	uc.SetRating(ComplexityKind, "Technical Effort", 2, "Low")

	require.Len(t, uc.ValueScores, 1)
	assert.Equal(t, 5, uc.ValueScores[0].Rating)
	require.Len(t, uc.ComplexityScores, 1)
	assert.Equal(t, "Technical Effort", uc.ComplexityScores[0].AxisName)
}

// TestUseCaseDateRoundTrip ensures timestamps survive JSON persistence.
func TestUseCaseDateRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	uc := UseCase{ID: "uc-1", Name: "Churn prediction", FolderID: "f-1", CreatedAt: created}

	data, err := json.Marshal(uc)
	require.NoError(t, err)

	var decoded UseCase
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.CreatedAt.Equal(created))
}

// TestThresholdCasesNotSerialized ensures the derived count never
// persists as ground truth.
func TestThresholdCasesNotSerialized(t *testing.T) {
	entry := LevelThreshold{Level: 3, Points: 100, Threshold: 1000, Cases: 7}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "cases")

	var decoded LevelThreshold
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Zero(t, decoded.Cases)
}
