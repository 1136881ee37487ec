package schema

import "time"

// MatrixConfig holds the full scoring configuration for one folder:
// the axes of both dimensions and the two threshold tables. Each folder
// owns its own copy so that editing one folder's weights never perturbs
// another folder's historical scores.
type MatrixConfig struct {
	ValueAxes            []Axis           `json:"valueAxes"`
	ComplexityAxes       []Axis           `json:"complexityAxes"`
	ValueThresholds      []LevelThreshold `json:"valueThresholds"`
	ComplexityThresholds []LevelThreshold `json:"complexityThresholds"`
}

// Axes returns the axis list for the given kind.
func (c *MatrixConfig) Axes(kind AxisKind) []Axis {
	if kind == ComplexityKind {
		return c.ComplexityAxes
	}
	return c.ValueAxes
}

// Thresholds returns the threshold table for the given kind.
func (c *MatrixConfig) Thresholds(kind AxisKind) []LevelThreshold {
	if kind == ComplexityKind {
		return c.ComplexityThresholds
	}
	return c.ValueThresholds
}

// Clone returns a deep copy of the config. Folders must never share
// axis or threshold slices by reference.
func (c MatrixConfig) Clone() MatrixConfig {
	out := MatrixConfig{
		ValueAxes:            make([]Axis, 0, len(c.ValueAxes)),
		ComplexityAxes:       make([]Axis, 0, len(c.ComplexityAxes)),
		ValueThresholds:      make([]LevelThreshold, len(c.ValueThresholds)),
		ComplexityThresholds: make([]LevelThreshold, len(c.ComplexityThresholds)),
	}
	for _, a := range c.ValueAxes {
		out.ValueAxes = append(out.ValueAxes, a.Clone())
	}
	for _, a := range c.ComplexityAxes {
		out.ComplexityAxes = append(out.ComplexityAxes, a.Clone())
	}
	copy(out.ValueThresholds, c.ValueThresholds)
	copy(out.ComplexityThresholds, c.ComplexityThresholds)
	return out
}

// Validate checks both threshold tables.
func (c *MatrixConfig) Validate() error {
	if err := ValidateThresholds(c.ValueThresholds); err != nil {
		return err
	}
	return ValidateThresholds(c.ComplexityThresholds)
}

// Folder is an isolated workspace bundling use cases with one scoring
// configuration. Deleting a folder cascades to its use cases; the last
// remaining folder cannot be deleted.
type Folder struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	CompanyID    string       `json:"companyId,omitempty"`
	MatrixConfig MatrixConfig `json:"matrixConfig"`
	CreatedAt    time.Time    `json:"createdAt"`
}
