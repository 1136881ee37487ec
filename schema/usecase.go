package schema

import "time"

// AxisScore is one user judgment: a 1-5 rating of an entity on one
// axis, keyed by axis name. The description is copied from the matching
// level description at save time so it survives later config edits.
type AxisScore struct {
	AxisName    string `json:"axisId"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// UseCase is a single proposal captured for prioritization. The two
// total scores are derived from the owning folder's matrix config and
// are recomputed on every edit; they are nil until first scored.
type UseCase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Benefits    string `json:"benefits,omitempty"`
	Risks       string `json:"risks,omitempty"`
	NextSteps   string `json:"nextSteps,omitempty"`
	Sources     string `json:"sources,omitempty"`
	RelatedData string `json:"relatedData,omitempty"`

	FolderID           string   `json:"folderId"`
	CompanyID          string   `json:"companyId,omitempty"`
	BusinessProcessIDs []string `json:"businessProcesses,omitempty"`

	ValueScores      []AxisScore `json:"valueScores"`
	ComplexityScores []AxisScore `json:"complexityScores"`

	TotalValueScore      *float64 `json:"totalValueScore,omitempty"`
	TotalComplexityScore *float64 `json:"totalComplexityScore,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Scored reports whether both totals have been computed. Unscored cases
// are excluded from the matrix grid.
func (u *UseCase) Scored() bool {
	return u.TotalValueScore != nil && u.TotalComplexityScore != nil
}

// ScoresFor returns the score list for the given axis kind.
func (u *UseCase) ScoresFor(kind AxisKind) []AxisScore {
	if kind == ComplexityKind {
		return u.ComplexityScores
	}
	return u.ValueScores
}

// SetRating replaces or appends the rating for one axis on one
// dimension. It does not rescore; callers own that.
func (u *UseCase) SetRating(kind AxisKind, axisName string, rating int, description string) {
	scores := u.ScoresFor(kind)
	for i := range scores {
		if scores[i].AxisName == axisName {
			scores[i].Rating = rating
			scores[i].Description = description
			return
		}
	}
	entry := AxisScore{AxisName: axisName, Rating: rating, Description: description}
	if kind == ComplexityKind {
		u.ComplexityScores = append(u.ComplexityScores, entry)
	} else {
		u.ValueScores = append(u.ValueScores, entry)
	}
}
