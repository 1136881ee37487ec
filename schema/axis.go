package schema

// LevelDescription explains what a single rating level means for one axis.
type LevelDescription struct {
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// Axis is one named, weighted criterion contributing to either the Value
// or Complexity aggregate score. The name is the key: AxisScore entries
// reference axes by name, and renaming an axis orphans its old scores.
type Axis struct {
	Name              string             `json:"name"`
	Weight            float64            `json:"weight"`
	Description       string             `json:"description"`
	LevelDescriptions []LevelDescription `json:"levelDescriptions"`
}

// LevelDescription returns the description for the given level, or the
// empty string when the level has no entry.
func (a *Axis) LevelDescription(level int) string {
	for _, ld := range a.LevelDescriptions {
		if ld.Level == level {
			return ld.Description
		}
	}
	return ""
}

// Clone returns a deep copy of the axis.
func (a Axis) Clone() Axis {
	out := a
	out.LevelDescriptions = make([]LevelDescription, len(a.LevelDescriptions))
	copy(out.LevelDescriptions, a.LevelDescriptions)
	return out
}

// FindAxis returns the axis with the given name, or nil if no axis
// matches. Stale score rows reference axes that no longer exist, so a
// nil result is an expected condition rather than an error.
func FindAxis(axes []Axis, name string) *Axis {
	for i := range axes {
		if axes[i].Name == name {
			return &axes[i]
		}
	}
	return nil
}
