package schema

// Default scoring tables applied to every new folder. Points grow
// steeply with the rating so a single standout axis can dominate, and
// the classification thresholds are tuned against that curve.
var (
	defaultPoints     = [LevelCount]float64{0, 40, 100, 400, 2000}
	defaultThresholds = [LevelCount]float64{300, 700, 1000, 1500, 4000}
)

// defaultLevelScale is the generic wording attached to axes that have
// no custom level descriptions yet.
var defaultLevelScale = [LevelCount]string{
	"Very low",
	"Low",
	"Moderate",
	"High",
	"Very high",
}

func defaultLevelDescriptions() []LevelDescription {
	out := make([]LevelDescription, 0, LevelCount)
	for i, desc := range defaultLevelScale {
		out = append(out, LevelDescription{Level: MinLevel + i, Description: desc})
	}
	return out
}

func defaultThresholdTable() []LevelThreshold {
	out := make([]LevelThreshold, 0, LevelCount)
	for i := range LevelCount {
		t := LevelThreshold{
			Level:     MinLevel + i,
			Points:    defaultPoints[i],
			Threshold: defaultThresholds[i],
			Min:       defaultThresholds[i],
		}
		if i+1 < LevelCount {
			t.Max = defaultThresholds[i+1] - 1
		} else {
			t.Max = defaultThresholds[i] * 2
		}
		out = append(out, t)
	}
	return out
}

func defaultAxis(name, description string, weight float64) Axis {
	return Axis{
		Name:              name,
		Weight:            weight,
		Description:       description,
		LevelDescriptions: defaultLevelDescriptions(),
	}
}

// DefaultMatrixConfig returns the scoring configuration snapshot given
// to every newly created folder. Each call builds fresh slices, so the
// result is safe to hand to a folder without cloning.
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		ValueAxes: []Axis{
			defaultAxis("Business Value", "Expected financial or operational upside", 2),
			defaultAxis("Strategic Fit", "Alignment with the company strategy", 1),
			defaultAxis("Sponsorship", "Strength of executive backing", 1.5),
			defaultAxis("Urgency", "Cost of delaying the initiative", 0.5),
		},
		ComplexityAxes: []Axis{
			defaultAxis("Data Availability", "Readiness and quality of required data", 1.5),
			defaultAxis("Technical Effort", "Engineering effort to build and operate", 2),
			defaultAxis("Change Management", "Organizational change required for adoption", 1),
			defaultAxis("Regulatory", "Compliance and privacy constraints", 0.5),
		},
		ValueThresholds:      defaultThresholdTable(),
		ComplexityThresholds: defaultThresholdTable(),
	}
}
