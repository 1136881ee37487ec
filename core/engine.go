// Package core implements the scoring and classification engine:
// threshold-based level resolution, weighted axis scoring, the 5x5
// value-by-complexity matrix classifier, and the per-folder
// configuration store that keeps scores consistent across mutations.
package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/repo"
	"github.com/huangsam/casemap/schema"
)

// Engine is the authoritative configuration store. It owns every
// mutation of a folder's MatrixConfig and guarantees that the folder's
// use cases are rescored, and its level counts rederived, after each
// one. Operations addressed at other folders are never touched.
type Engine struct {
	repo contract.Repository
}

// NewEngine creates an engine over the given repository.
func NewEngine(r contract.Repository) *Engine {
	return &Engine{repo: r}
}

// Repo exposes the underlying repository for collaborators that need
// plain entity access (CLI listings, MCP handlers).
func (e *Engine) Repo() contract.Repository {
	return e.repo
}

// ScoreAndAttach scores a raw use case against the target folder's
// config and persists it as a member of that folder. The entity is
// assigned an id and creation time if it has none.
func (e *Engine) ScoreAndAttach(uc *schema.UseCase, folderID string) (*schema.UseCase, error) {
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return nil, fmt.Errorf("attach use case: %w", err)
	}
	if uc.ID == "" {
		uc.ID = uuid.NewString()
	}
	if uc.CreatedAt.IsZero() {
		uc.CreatedAt = time.Now().UTC()
	}
	uc.FolderID = folder.ID
	ScoreUseCase(uc, &folder.MatrixConfig)
	if err := e.repo.SaveCase(uc); err != nil {
		return nil, fmt.Errorf("persist use case: %w", err)
	}
	return uc, nil
}

// RescoreFolder recomputes the totals of every use case in one folder
// against its current config. Cases in other folders are untouched.
// Unchanged totals are not rewritten.
func (e *Engine) RescoreFolder(folderID string) error {
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return fmt.Errorf("rescore folder: %w", err)
	}
	cases, err := e.repo.ListCases(folder.ID)
	if err != nil {
		return fmt.Errorf("rescore folder: %w", err)
	}
	for i := range cases {
		before := cases[i]
		ScoreUseCase(&cases[i], &folder.MatrixConfig)
		if totalsEqual(&before, &cases[i]) {
			continue
		}
		if err := e.repo.SaveCase(&cases[i]); err != nil {
			return fmt.Errorf("rescore case %s: %w", cases[i].ID, err)
		}
	}
	return nil
}

// UpdateMatrixConfig replaces a folder's config wholesale, then
// rescores that folder's use cases.
func (e *Engine) UpdateMatrixConfig(folderID string, cfg schema.MatrixConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("update matrix config: %w", err)
	}
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return fmt.Errorf("update matrix config: %w", err)
	}
	folder.MatrixConfig = cfg.Clone()
	if err := e.repo.SaveFolder(folder); err != nil {
		return fmt.Errorf("persist matrix config: %w", err)
	}
	return e.RescoreFolder(folder.ID)
}

// UpdateThresholds merges partial threshold updates into a folder's
// existing tables and delegates to UpdateMatrixConfig. Nil slices leave
// the corresponding table untouched.
func (e *Engine) UpdateThresholds(folderID string, valueUpdates, complexityUpdates []schema.LevelThreshold) error {
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return fmt.Errorf("update thresholds: %w", err)
	}
	cfg := folder.MatrixConfig.Clone()
	if valueUpdates != nil {
		cfg.ValueThresholds = schema.MergeThresholds(cfg.ValueThresholds, valueUpdates)
	}
	if complexityUpdates != nil {
		cfg.ComplexityThresholds = schema.MergeThresholds(cfg.ComplexityThresholds, complexityUpdates)
	}
	return e.UpdateMatrixConfig(folder.ID, cfg)
}

// UpdateAxisWeight changes one axis weight and rescores the folder.
func (e *Engine) UpdateAxisWeight(folderID string, kind schema.AxisKind, axisName string, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("update axis weight: weight must be positive, got %g", weight)
	}
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return fmt.Errorf("update axis weight: %w", err)
	}
	cfg := folder.MatrixConfig.Clone()
	axis := schema.FindAxis(cfg.Axes(kind), axisName)
	if axis == nil {
		return fmt.Errorf("update axis weight: axis %q: %w", axisName, repo.ErrNotFound)
	}
	axis.Weight = weight
	return e.UpdateMatrixConfig(folder.ID, cfg)
}

// UpdateLevelDescription mutates exactly one level description of one
// axis. Descriptions are display-only, so no rescore is triggered.
func (e *Engine) UpdateLevelDescription(folderID string, kind schema.AxisKind, axisName string, level int, text string) error {
	if level < schema.MinLevel || level > schema.MaxLevel {
		return fmt.Errorf("update level description: level %d out of range", level)
	}
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return fmt.Errorf("update level description: %w", err)
	}
	axis := schema.FindAxis(folder.MatrixConfig.Axes(kind), axisName)
	if axis == nil {
		return fmt.Errorf("update level description: axis %q: %w", axisName, repo.ErrNotFound)
	}
	for i := range axis.LevelDescriptions {
		if axis.LevelDescriptions[i].Level == level {
			axis.LevelDescriptions[i].Description = text
			return e.repo.SaveFolder(folder)
		}
	}
	axis.LevelDescriptions = append(axis.LevelDescriptions, schema.LevelDescription{Level: level, Description: text})
	return e.repo.SaveFolder(folder)
}

// Classify buckets one folder's use cases into the 5x5 grid. Per-level
// case counts live on the returned Matrix; callers that want them on a
// folder's threshold tables apply them with ApplyLevelCounts.
func (e *Engine) Classify(folderID string) (*Matrix, error) {
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return nil, fmt.Errorf("classify folder: %w", err)
	}
	cases, err := e.repo.ListCases(folder.ID)
	if err != nil {
		return nil, fmt.Errorf("classify folder: %w", err)
	}
	return Classify(folder.ID, cases, &folder.MatrixConfig), nil
}

// LevelOf resolves a score against one of a folder's threshold tables.
func (e *Engine) LevelOf(score *float64, kind schema.AxisKind, folderID string) (int, error) {
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return 0, fmt.Errorf("resolve level: %w", err)
	}
	return ResolveLevel(score, folder.MatrixConfig.Thresholds(kind)), nil
}

// CountAtLevel returns how many of a folder's use cases resolve to the
// given level on one dimension. Counts are always rederived from the
// live case collection, never read from persisted state.
func (e *Engine) CountAtLevel(folderID string, kind schema.AxisKind, level int) (int, error) {
	if level < schema.MinLevel || level > schema.MaxLevel {
		return 0, fmt.Errorf("count at level: level %d out of range", level)
	}
	folder, err := e.repo.GetFolder(folderID)
	if err != nil {
		return 0, fmt.Errorf("count at level: %w", err)
	}
	cases, err := e.repo.ListCases(folder.ID)
	if err != nil {
		return 0, fmt.Errorf("count at level: %w", err)
	}
	counts := LevelCounts(cases, kind, folder.MatrixConfig.Thresholds(kind))
	return counts[level-schema.MinLevel], nil
}

// RateCase updates one axis rating of one use case and rescores it
// against its folder's config. The level description text is snapshot
// onto the score row at save time.
func (e *Engine) RateCase(caseID string, kind schema.AxisKind, axisName string, rating int) (*schema.UseCase, error) {
	if rating < schema.MinLevel || rating > schema.MaxLevel {
		return nil, fmt.Errorf("rate case: rating %d out of range", rating)
	}
	uc, err := e.repo.GetCase(caseID)
	if err != nil {
		return nil, fmt.Errorf("rate case: %w", err)
	}
	folder, err := e.repo.GetFolder(uc.FolderID)
	if err != nil {
		return nil, fmt.Errorf("rate case: %w", err)
	}
	axis := schema.FindAxis(folder.MatrixConfig.Axes(kind), axisName)
	if axis == nil {
		return nil, fmt.Errorf("rate case: axis %q: %w", axisName, repo.ErrNotFound)
	}
	uc.SetRating(kind, axisName, rating, axis.LevelDescription(rating))
	ScoreUseCase(uc, &folder.MatrixConfig)
	if err := e.repo.SaveCase(uc); err != nil {
		return nil, fmt.Errorf("persist rating: %w", err)
	}
	return uc, nil
}

// totalsEqual compares the derived totals of two snapshots.
func totalsEqual(a, b *schema.UseCase) bool {
	return floatPtrEqual(a.TotalValueScore, b.TotalValueScore) &&
		floatPtrEqual(a.TotalComplexityScore, b.TotalComplexityScore)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
