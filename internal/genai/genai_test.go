package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/iokv"
	"github.com/huangsam/casemap/internal/repo"
	"github.com/huangsam/casemap/schema"
)

// fakeGenerator scripts list and detail responses for orchestrator tests.
type fakeGenerator struct {
	mu        sync.Mutex
	names     []string
	failNames map[string]error
	detailed  []string
}

func (f *fakeGenerator) GenerateList(_ context.Context, _ string, _ *schema.Company) ([]string, error) {
	return f.names, nil
}

func (f *fakeGenerator) GenerateDetail(_ context.Context, name, _ string, cfg *schema.MatrixConfig, _ *schema.Company) (*schema.UseCase, error) {
	f.mu.Lock()
	f.detailed = append(f.detailed, name)
	f.mu.Unlock()
	if err, ok := f.failNames[name]; ok {
		return nil, err
	}
	uc := &schema.UseCase{Name: name, Description: "generated"}
	for _, axis := range cfg.ValueAxes {
		uc.ValueScores = append(uc.ValueScores, schema.AxisScore{AxisName: axis.Name, Rating: 3})
	}
	for _, axis := range cfg.ComplexityAxes {
		uc.ComplexityScores = append(uc.ComplexityScores, schema.AxisScore{AxisName: axis.Name, Rating: 2})
	}
	return uc, nil
}

func newTestOrchestrator(t *testing.T, gen *fakeGenerator) (*Orchestrator, *core.Engine, string) {
	t.Helper()
	r, err := repo.New(iokv.NewMockStore())
	require.NoError(t, err)
	engine := core.NewEngine(r)
	folderID, err := r.ActiveFolderID()
	require.NoError(t, err)
	return NewOrchestrator(engine, gen, 3), engine, folderID
}

func TestGeneratePartialSuccess(t *testing.T) {
	gen := &fakeGenerator{
		names: []string{"Invoice extraction", "Churn prediction", "Contract review", "Lead scoring", "Ticket triage"},
		failNames: map[string]error{
			"Contract review": &GenerationError{Op: "detail", Err: ErrEmptyResult},
		},
	}
	orch, engine, folderID := newTestOrchestrator(t, gen)

	result, err := orch.Generate(context.Background(), folderID, "fintech back office", 5)
	require.NoError(t, err)

	assert.Len(t, result.Applied, 4)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Contract review", result.Failures[0].Name)
	assert.ErrorIs(t, result.Failures[0].Err, ErrEmptyResult)

	// Successes are persisted and scored.
	cases, err := engine.Repo().ListCases(folderID)
	require.NoError(t, err)
	assert.Len(t, cases, 4)
	for _, uc := range cases {
		assert.True(t, uc.Scored())
		assert.Equal(t, folderID, uc.FolderID)
	}
}

func TestGenerateCountTruncatesCandidates(t *testing.T) {
	gen := &fakeGenerator{
		names: []string{"One", "Two", "Three", "Four", "Five"},
	}
	orch, _, folderID := newTestOrchestrator(t, gen)

	result, err := orch.Generate(context.Background(), folderID, "", 2)
	require.NoError(t, err)
	assert.Len(t, result.Applied, 2)
	assert.Len(t, gen.detailed, 2)
}

func TestGenerateUnknownFolder(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t, &fakeGenerator{names: []string{"One"}})

	_, err := orch.Generate(context.Background(), "no-such-folder", "", 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	orch, _, folderID := newTestOrchestrator(t, &fakeGenerator{})

	_, err := orch.Generate(context.Background(), folderID, "", 0)
	assert.Error(t, err)
}

func TestGenerateCancelledContext(t *testing.T) {
	gen := &fakeGenerator{names: []string{"One", "Two"}}
	orch, _, folderID := newTestOrchestrator(t, gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The fake generator ignores cancellation, so the run still finishes;
	// the point is that a cancelled semaphore wait surfaces as a failure,
	// never a panic or a hang.
	result, err := orch.Generate(ctx, folderID, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, len(result.Applied)+len(result.Failures))
}

func TestParseNameList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{name: "plain array", content: `["A", "B"]`, want: []string{"A", "B"}},
		{name: "fenced", content: "```json\n[\"A\"]\n```", want: []string{"A"}},
		{name: "blank entries dropped", content: `["A", "  ", "B"]`, want: []string{"A", "B"}},
		{name: "not json", content: `use cases: A, B`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNameList(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDetail(t *testing.T) {
	cfg := schema.DefaultMatrixConfig()
	content := `{
		"description": "Extract invoice fields",
		"benefits": "Less manual work",
		"risks": "OCR quality",
		"valueRatings": {
			"Business Value": {"rating": 4, "reasoning": "direct savings"},
			"Unknown Axis": {"rating": 5, "reasoning": "dropped"}
		},
		"complexityRatings": {
			"Technical Effort": {"rating": 9, "reasoning": "clamped"}
		}
	}`

	uc, err := parseDetail(content, "Invoice extraction", &cfg)
	require.NoError(t, err)
	assert.Equal(t, "Invoice extraction", uc.Name)
	assert.Equal(t, "Extract invoice fields", uc.Description)

	// Unknown axis names are dropped, ratings clamped into 1-5.
	require.Len(t, uc.ValueScores, 1)
	assert.Equal(t, "Business Value", uc.ValueScores[0].AxisName)
	assert.Equal(t, 4, uc.ValueScores[0].Rating)
	require.Len(t, uc.ComplexityScores, 1)
	assert.Equal(t, 5, uc.ComplexityScores[0].Rating)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"choices": [{"message": {"content": "[\"Invoice extraction\"]"}}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", "key",
		WithRetryConfig(RetryConfig{MaxAttempts: 3, BackoffBase: 0, BackoffMultiplier: 1, MaxBackoff: 0}))

	names, err := client.GenerateList(context.Background(), "context", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Invoice extraction"}, names)
	assert.Equal(t, 3, calls)
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", "bad-key",
		WithRetryConfig(RetryConfig{MaxAttempts: 3, BackoffBase: 0, BackoffMultiplier: 1, MaxBackoff: 0}))

	_, err := client.GenerateList(context.Background(), "context", nil)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, calls)
}

func TestClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", "key",
		WithRetryConfig(RetryConfig{MaxAttempts: 1, BackoffBase: 0, BackoffMultiplier: 1, MaxBackoff: 0}))

	_, err := client.GenerateList(context.Background(), "context", nil)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestDetailUserPromptIncludesAxes(t *testing.T) {
	cfg := schema.DefaultMatrixConfig()
	company := &schema.Company{Name: "Acme", Industry: "Manufacturing"}

	prompt := detailUserPrompt("Invoice extraction", "back office", &cfg, company)
	assert.Contains(t, prompt, "Business Value")
	assert.Contains(t, prompt, "Technical Effort")
	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "back office")
}

func TestGenerationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &GenerationError{Op: "list", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "list")
}
