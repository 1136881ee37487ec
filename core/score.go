package core

import (
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

// ScoreAxes computes the weighted aggregate score for one dimension of
// one entity. For each score row the matching axis is found by name;
// rows referencing axes absent from the config contribute zero (the
// axis may have been renamed or removed since the row was saved), as do
// ratings with no matching threshold entry. Neither case is an error.
func ScoreAxes(scores []schema.AxisScore, axes []schema.Axis, table []schema.LevelThreshold) float64 {
	var total float64
	for _, s := range scores {
		axis := schema.FindAxis(axes, s.AxisName)
		if axis == nil {
			continue
		}
		points, ok := schema.PointsForRating(table, s.Rating)
		if !ok {
			contract.LogDebug("no threshold entry for rating %d on axis %q", s.Rating, s.AxisName)
			continue
		}
		total += points * axis.Weight
	}
	return total
}

// ScoreUseCase recomputes both totals of a use case from the owning
// folder's matrix config. Pure aside from writing the two derived
// fields back onto the entity; the caller persists the result.
func ScoreUseCase(uc *schema.UseCase, cfg *schema.MatrixConfig) {
	value := ScoreAxes(uc.ValueScores, cfg.ValueAxes, cfg.ValueThresholds)
	complexity := ScoreAxes(uc.ComplexityScores, cfg.ComplexityAxes, cfg.ComplexityThresholds)
	uc.TotalValueScore = &value
	uc.TotalComplexityScore = &complexity
}
