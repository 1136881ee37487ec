package core

import (
	"testing"

	"github.com/huangsam/casemap/schema"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 {
	return &v
}

// standardThresholds builds a table with the documented default curve.
func standardThresholds() []schema.LevelThreshold {
	return []schema.LevelThreshold{
		{Level: 1, Points: 0, Threshold: 300},
		{Level: 2, Points: 40, Threshold: 700},
		{Level: 3, Points: 100, Threshold: 1000},
		{Level: 4, Points: 400, Threshold: 1500},
		{Level: 5, Points: 2000, Threshold: 4000},
	}
}

// TestResolveLevel pins the descending-scan semantics: the highest
// level whose threshold is at or below the score wins.
func TestResolveLevel(t *testing.T) {
	thresholds := standardThresholds()

	tests := []struct {
		name     string
		score    *float64
		expected int
	}{
		{name: "nil score is unscored", score: nil, expected: 0},
		{name: "below all thresholds floors at 1", score: ptr(10), expected: 1},
		{name: "exactly at level 1 threshold", score: ptr(300), expected: 1},
		{name: "between levels 2 and 3 resolves to 2", score: ptr(950), expected: 2},
		{name: "exactly at level 3 threshold", score: ptr(1000), expected: 3},
		{name: "between levels 4 and 5", score: ptr(2200), expected: 4},
		{name: "at the top threshold", score: ptr(4000), expected: 5},
		{name: "far beyond the top threshold", score: ptr(99999), expected: 5},
		{name: "negative score floors at 1", score: ptr(-50), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLevel(tt.score, thresholds))
		})
	}
}

// TestResolveLevelEmptyTable verifies the unscored sentinel.
func TestResolveLevelEmptyTable(t *testing.T) {
	assert.Equal(t, 0, ResolveLevel(ptr(500), nil))
	assert.Equal(t, 0, ResolveLevel(ptr(500), []schema.LevelThreshold{}))
}

// TestResolveLevelShuffledTable ensures resolution never trusts the
// storage order of the table.
func TestResolveLevelShuffledTable(t *testing.T) {
	shuffled := []schema.LevelThreshold{
		{Level: 3, Threshold: 1000},
		{Level: 5, Threshold: 4000},
		{Level: 1, Threshold: 300},
		{Level: 4, Threshold: 1500},
		{Level: 2, Threshold: 700},
	}
	assert.Equal(t, 2, ResolveLevel(ptr(950), shuffled))
	assert.Equal(t, 4, ResolveLevel(ptr(1600), shuffled))
}

// TestResolveLevelMonotonic checks that a higher score never resolves
// to a lower level, and that results stay within {0..5}.
func TestResolveLevelMonotonic(t *testing.T) {
	thresholds := standardThresholds()

	prev := 0
	for score := -100.0; score <= 5000; score += 37.5 {
		level := ResolveLevel(&score, thresholds)
		assert.GreaterOrEqual(t, level, schema.MinLevel)
		assert.LessOrEqual(t, level, schema.MaxLevel)
		assert.GreaterOrEqual(t, level, prev, "score %v", score)
		prev = level
	}
}

// TestLevelCounts verifies per-level tallies and the unscored exclusion.
func TestLevelCounts(t *testing.T) {
	thresholds := standardThresholds()
	cases := []schema.UseCase{
		{TotalValueScore: ptr(100), TotalComplexityScore: ptr(100)},  // value level 1
		{TotalValueScore: ptr(950), TotalComplexityScore: ptr(100)},  // value level 2
		{TotalValueScore: ptr(950), TotalComplexityScore: ptr(100)},  // value level 2
		{TotalValueScore: ptr(4200), TotalComplexityScore: ptr(100)}, // value level 5
		{TotalValueScore: nil, TotalComplexityScore: ptr(100)},       // unscored
	}

	counts := LevelCounts(cases, schema.ValueKind, thresholds)
	assert.Equal(t, [schema.LevelCount]int{1, 2, 0, 0, 1}, counts)
}

// TestApplyLevelCounts verifies the equality check before write-back.
func TestApplyLevelCounts(t *testing.T) {
	thresholds := standardThresholds()

	changed := ApplyLevelCounts(thresholds, [schema.LevelCount]int{1, 2, 0, 0, 1})
	assert.True(t, changed)
	assert.Equal(t, 2, thresholds[1].Cases)

	// Same counts again: nothing to do.
	changed = ApplyLevelCounts(thresholds, [schema.LevelCount]int{1, 2, 0, 0, 1})
	assert.False(t, changed)
}
