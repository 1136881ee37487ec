package genai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/repo"
	"github.com/huangsam/casemap/schema"
)

// ItemFailure records one candidate that could not be generated.
type ItemFailure struct {
	Name string
	Err  error
}

// BatchResult is the outcome of one generation run. A run is a partial
// success when some candidates failed: successes are applied anyway and
// each failure is reported exactly once.
type BatchResult struct {
	Applied  []schema.UseCase
	Failures []ItemFailure
}

// Orchestrator runs the two-phase generation flow: propose candidate
// names, then detail each candidate with bounded parallelism and attach
// the survivors to the target folder.
type Orchestrator struct {
	engine   *core.Engine
	gen      contract.Generator
	parallel int
}

// NewOrchestrator creates an orchestrator. Parallelism is clamped into
// [1, MaxGenerateParallel].
func NewOrchestrator(engine *core.Engine, gen contract.Generator, parallel int) *Orchestrator {
	if parallel < 1 {
		parallel = 1
	}
	if parallel > contract.MaxGenerateParallel {
		parallel = contract.MaxGenerateParallel
	}
	return &Orchestrator{engine: engine, gen: gen, parallel: parallel}
}

// Generate proposes up to count use cases for folderID and persists the
// ones that detailed successfully. The folder's config and company are
// snapshot up front for prompting; folder existence is re-checked at
// apply time, so results for a folder deleted mid-run are dropped and
// reported rather than resurrecting the folder.
func (o *Orchestrator) Generate(ctx context.Context, folderID, freeText string, count int) (*BatchResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("generate: count must be positive, got %d", count)
	}
	folder, err := o.engine.Repo().GetFolder(folderID)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	company, err := o.activeCompany(folder)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	names, err := o.gen.GenerateList(ctx, freeText, company)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if len(names) > count {
		names = names[:count]
	}

	detailed := o.detailAll(ctx, names, freeText, &folder.MatrixConfig, company)

	result := &BatchResult{}
	for i, name := range names {
		if detailed[i].err != nil {
			result.Failures = append(result.Failures, ItemFailure{Name: name, Err: detailed[i].err})
			continue
		}
		uc, err := o.engine.ScoreAndAttach(detailed[i].uc, folder.ID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				// Folder vanished mid-run. Drop the remaining results.
				result.Failures = append(result.Failures, ItemFailure{Name: name, Err: err})
				continue
			}
			return result, fmt.Errorf("generate: %w", err)
		}
		result.Applied = append(result.Applied, *uc)
	}
	return result, nil
}

// activeCompany resolves the company context for prompting. The
// folder's own company wins; otherwise the active company, if any.
func (o *Orchestrator) activeCompany(folder *schema.Folder) (*schema.Company, error) {
	id := folder.CompanyID
	if id == "" {
		activeID, err := o.engine.Repo().ActiveCompanyID()
		if err != nil {
			return nil, err
		}
		id = activeID
	}
	if id == "" {
		return nil, nil
	}
	company, err := o.engine.Repo().GetCompany(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return company, err
}

type detailResult struct {
	uc  *schema.UseCase
	err error
}

// detailAll fans out GenerateDetail over a bounded worker pool and
// returns results indexed to match names.
func (o *Orchestrator) detailAll(ctx context.Context, names []string, freeText string, cfg *schema.MatrixConfig, company *schema.Company) []detailResult {
	results := make([]detailResult, len(names))
	sem := make(chan struct{}, o.parallel)
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = detailResult{err: ctx.Err()}
				return
			}
			uc, err := o.gen.GenerateDetail(ctx, name, freeText, cfg, company)
			results[i] = detailResult{uc: uc, err: err}
		}(i, name)
	}
	wg.Wait()
	return results
}
