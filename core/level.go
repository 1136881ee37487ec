package core

import "github.com/huangsam/casemap/schema"

// ResolveLevel maps an aggregate score onto the discrete 1-5 scale
// using a folder's threshold table. A nil score or an empty table
// resolves to 0, the "unscored" sentinel. Otherwise the table is
// scanned from the highest level down and the first level whose
// threshold is <= score wins; a score below every threshold floors
// at level 1.
//
// This is the single source of truth for level resolution, used both
// for display and for matrix bucketing.
func ResolveLevel(score *float64, thresholds []schema.LevelThreshold) int {
	if score == nil || len(thresholds) == 0 {
		return 0
	}
	for _, t := range schema.SortByLevelDesc(thresholds) {
		if t.Threshold <= *score {
			return t.Level
		}
	}
	return schema.MinLevel
}

// LevelCounts tallies how many of the given cases resolve to each level
// on one dimension. Index 0 holds the count for level 1. Unscored cases
// are not counted.
func LevelCounts(cases []schema.UseCase, kind schema.AxisKind, thresholds []schema.LevelThreshold) [schema.LevelCount]int {
	var counts [schema.LevelCount]int
	for i := range cases {
		score := cases[i].TotalValueScore
		if kind == schema.ComplexityKind {
			score = cases[i].TotalComplexityScore
		}
		if level := ResolveLevel(score, thresholds); level >= schema.MinLevel {
			counts[level-schema.MinLevel]++
		}
	}
	return counts
}

// ApplyLevelCounts writes freshly derived counts into a threshold
// table. It compares against the current values first and reports
// whether anything changed, so callers can skip redundant state
// propagation.
func ApplyLevelCounts(thresholds []schema.LevelThreshold, counts [schema.LevelCount]int) bool {
	changed := false
	for i := range thresholds {
		level := thresholds[i].Level
		if level < schema.MinLevel || level > schema.MaxLevel {
			continue
		}
		if next := counts[level-schema.MinLevel]; thresholds[i].Cases != next {
			thresholds[i].Cases = next
			changed = true
		}
	}
	return changed
}
