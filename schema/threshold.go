package schema

import (
	"fmt"
	"sort"
)

// LevelThreshold describes one level of a five-entry threshold table.
// Min and Max are informational range labels for display. Points is the
// contribution a rating at this level earns before weighting. Threshold
// is the minimum aggregate score required to classify at this level.
// Cases is derived from the current folder contents and is never
// persisted as ground truth.
type LevelThreshold struct {
	Level     int     `json:"level"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Points    float64 `json:"points"`
	Threshold float64 `json:"threshold"`
	Cases     int     `json:"-"`
}

// PointsForRating returns the points associated with the given rating,
// looked up by level. A rating with no matching entry contributes zero.
func PointsForRating(table []LevelThreshold, rating int) (float64, bool) {
	for i := range table {
		if table[i].Level == rating {
			return table[i].Points, true
		}
	}
	return 0, false
}

// SortByLevelDesc returns a copy of the table ordered from the highest
// level down. Classification scans must not trust storage order.
func SortByLevelDesc(table []LevelThreshold) []LevelThreshold {
	out := make([]LevelThreshold, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Level > out[j].Level
	})
	return out
}

// ValidateThresholds checks the structural invariants of a threshold
// table: exactly one entry per level 1..5 and threshold values strictly
// increasing with level.
func ValidateThresholds(table []LevelThreshold) error {
	if len(table) != LevelCount {
		return fmt.Errorf("threshold table must have %d entries, got %d", LevelCount, len(table))
	}
	seen := make(map[int]bool, LevelCount)
	for _, t := range table {
		if t.Level < MinLevel || t.Level > MaxLevel {
			return fmt.Errorf("threshold level %d out of range [%d,%d]", t.Level, MinLevel, MaxLevel)
		}
		if seen[t.Level] {
			return fmt.Errorf("duplicate threshold entry for level %d", t.Level)
		}
		seen[t.Level] = true
	}
	asc := make([]LevelThreshold, len(table))
	copy(asc, table)
	sort.Slice(asc, func(i, j int) bool { return asc[i].Level < asc[j].Level })
	for i := 1; i < len(asc); i++ {
		if asc[i].Threshold <= asc[i-1].Threshold {
			return fmt.Errorf("threshold for level %d (%.0f) must exceed level %d (%.0f)",
				asc[i].Level, asc[i].Threshold, asc[i-1].Level, asc[i-1].Threshold)
		}
	}
	return nil
}

// MergeThresholds overlays partial updates onto an existing table. A
// non-nil update entry replaces the entry with the same level; levels
// absent from updates keep their current values.
func MergeThresholds(current, updates []LevelThreshold) []LevelThreshold {
	out := make([]LevelThreshold, len(current))
	copy(out, current)
	for _, u := range updates {
		for i := range out {
			if out[i].Level == u.Level {
				out[i] = u
				break
			}
		}
	}
	return out
}
