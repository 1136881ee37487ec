package core

import "github.com/huangsam/casemap/schema"

// CellTone is the background class of one matrix cell.
type CellTone string

// Cell tones, from "pursue" to "avoid".
const (
	ToneGreen  CellTone = "green"
	ToneLime   CellTone = "lime"
	ToneOrange CellTone = "orange"
	ToneRed    CellTone = "red"
	ToneGray   CellTone = "gray"
)

// cellMeta pairs the advisory label with the tone for one cell.
type cellMeta struct {
	advice string
	tone   CellTone
}

// adviceTable is the fixed decision table for all 25 cells. Rows run
// from 5-star value at the top (index 0) down to 1 star; columns run
// from 1 X complexity on the left (index 0) up to 5 X. Advice trends
// toward "pursue" at the top left and "avoid" at the bottom right.
var adviceTable = [schema.LevelCount][schema.LevelCount]cellMeta{
	{ // value level 5
		{"Quick win, pursue immediately", ToneGreen},
		{"Strong candidate, start now", ToneLime},
		{"High value, plan the effort", ToneLime},
		{"Worth it, phase the delivery", ToneOrange},
		{"Flagship bet, needs full commitment", ToneOrange},
	},
	{ // value level 4
		{"Easy win, schedule early", ToneLime},
		{"Good candidate, start soon", ToneLime},
		{"Solid case, plan carefully", ToneGray},
		{"Valuable but heavy, stage it", ToneOrange},
		{"Only with strong sponsorship", ToneOrange},
	},
	{ // value level 3
		{"Cheap filler, take when idle", ToneLime},
		{"Reasonable, fit into roadmap", ToneGray},
		{"Average case, compare options", ToneGray},
		{"Heavy lift for moderate value", ToneOrange},
		{"Deprioritize, effort outweighs value", ToneOrange},
	},
	{ // value level 2
		{"Low value, only if trivial", ToneGray},
		{"Marginal, keep on backlog", ToneGray},
		{"Weak case, revisit later", ToneGray},
		{"Avoid, poor return", ToneRed},
		{"Avoid, poor return", ToneRed},
	},
	{ // value level 1
		{"Ignore unless strategic", ToneGray},
		{"Ignore, no measurable value", ToneGray},
		{"Drop from consideration", ToneRed},
		{"Drop, value does not justify", ToneRed},
		{"Drop, worst quadrant", ToneRed},
	},
}

// Cell is one of the 25 value-by-complexity buckets.
type Cell struct {
	ValueLevel      int              `json:"valueLevel"`
	ComplexityLevel int              `json:"complexityLevel"`
	Advice          string           `json:"advice"`
	Tone            CellTone         `json:"tone"`
	Cases           []schema.UseCase `json:"cases"`
}

// Matrix is the classified 5x5 grid for one folder plus the derived
// per-level counts for both dimensions. Cells[row][col] follows the
// display convention: row 0 is 5-star value, column 0 is 1-X
// complexity.
type Matrix struct {
	FolderID         string                                     `json:"folderId"`
	Cells            [schema.LevelCount][schema.LevelCount]Cell `json:"cells"`
	ValueCounts      [schema.LevelCount]int                     `json:"valueCounts"`
	ComplexityCounts [schema.LevelCount]int                     `json:"complexityCounts"`
	Unscored         int                                        `json:"unscored"`
}

// CellFor returns the grid position for a pair of levels.
func CellFor(valueLevel, complexityLevel int) (row, col int) {
	return schema.MaxLevel - valueLevel, complexityLevel - schema.MinLevel
}

// AdviceFor returns the advisory label and tone for a grid position.
// Out-of-range positions fall back to the neutral cell.
func AdviceFor(row, col int) (string, CellTone) {
	if row < 0 || row >= schema.LevelCount || col < 0 || col >= schema.LevelCount {
		return "", ToneGray
	}
	meta := adviceTable[row][col]
	return meta.advice, meta.tone
}

// Classify buckets a folder's scored cases into the 5x5 grid and
// recomputes the per-level counts for both dimensions from scratch.
// Cases missing either total are excluded from the grid entirely and
// reported via Unscored.
func Classify(folderID string, cases []schema.UseCase, cfg *schema.MatrixConfig) *Matrix {
	m := &Matrix{FolderID: folderID}
	for row := range schema.LevelCount {
		for col := range schema.LevelCount {
			advice, tone := AdviceFor(row, col)
			m.Cells[row][col] = Cell{
				ValueLevel:      schema.MaxLevel - row,
				ComplexityLevel: schema.MinLevel + col,
				Advice:          advice,
				Tone:            tone,
			}
		}
	}

	for _, uc := range cases {
		if !uc.Scored() {
			m.Unscored++
			continue
		}
		valueLevel := ResolveLevel(uc.TotalValueScore, cfg.ValueThresholds)
		complexityLevel := ResolveLevel(uc.TotalComplexityScore, cfg.ComplexityThresholds)
		if valueLevel < schema.MinLevel || complexityLevel < schema.MinLevel {
			m.Unscored++
			continue
		}
		row, col := CellFor(valueLevel, complexityLevel)
		m.Cells[row][col].Cases = append(m.Cells[row][col].Cases, uc)
	}

	m.ValueCounts = LevelCounts(cases, schema.ValueKind, cfg.ValueThresholds)
	m.ComplexityCounts = LevelCounts(cases, schema.ComplexityKind, cfg.ComplexityThresholds)
	return m
}

// Total returns the number of cases bucketed across all 25 cells.
func (m *Matrix) Total() int {
	var n int
	for row := range schema.LevelCount {
		for col := range schema.LevelCount {
			n += len(m.Cells[row][col].Cases)
		}
	}
	return n
}
