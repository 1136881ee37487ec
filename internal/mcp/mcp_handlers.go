package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/genai"
	"github.com/huangsam/casemap/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	engine  *core.Engine
	gen     contract.Generator
}

// resolveFolderID maps an optional folder_id argument to a concrete
// folder, falling back to the active folder.
func (h *toolHandler) resolveFolderID(request mcp.CallToolRequest) (string, error) {
	if id := request.GetString("folder_id", ""); id != "" {
		return id, nil
	}
	return h.engine.Repo().ActiveFolderID()
}

func (h *toolHandler) handleListUseCases(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := h.resolveFolderID(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve folder: %v", err)), nil
	}
	folder, err := h.engine.Repo().GetFolder(folderID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("folder lookup failed: %v", err)), nil
	}
	cases, err := h.engine.Repo().ListCases(folder.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	limit := request.GetInt("limit", h.baseCfg.ResultLimit)
	if limit > 0 && len(cases) > limit {
		cases = cases[:limit]
	}

	type caseSummary struct {
		schema.UseCase
		ValueLevel      int `json:"valueLevel"`
		ComplexityLevel int `json:"complexityLevel"`
	}
	summaries := make([]caseSummary, len(cases))
	for i, uc := range cases {
		summaries[i] = caseSummary{
			UseCase:         uc,
			ValueLevel:      core.ResolveLevel(uc.TotalValueScore, folder.MatrixConfig.ValueThresholds),
			ComplexityLevel: core.ResolveLevel(uc.TotalComplexityScore, folder.MatrixConfig.ComplexityThresholds),
		}
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyMatrix(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := h.resolveFolderID(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve folder: %v", err)), nil
	}

	m, err := h.engine.Classify(folderID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(m, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLevelCounts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kindStr := request.GetString("kind", "")
	var kind schema.AxisKind
	switch kindStr {
	case "value":
		kind = schema.ValueKind
	case "complexity":
		kind = schema.ComplexityKind
	default:
		return mcp.NewToolResultError(fmt.Sprintf("kind must be value or complexity, got %q", kindStr)), nil
	}

	level := request.GetInt("level", 0)
	if level < schema.MinLevel || level > schema.MaxLevel {
		return mcp.NewToolResultError(fmt.Sprintf("level must be between %d and %d, got %d", schema.MinLevel, schema.MaxLevel, level)), nil
	}

	folderID, err := h.resolveFolderID(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve folder: %v", err)), nil
	}

	count, err := h.engine.CountAtLevel(folderID, kind, level)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("count failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"folderId": folderID,
		"kind":     kindStr,
		"level":    level,
		"count":    count,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateUseCases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	freeText := request.GetString("context", "")
	if freeText == "" {
		return mcp.NewToolResultError("context is required"), nil
	}

	folderID, err := h.resolveFolderID(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve folder: %v", err)), nil
	}

	count := request.GetInt("count", h.baseCfg.GenerateCount)

	orch := genai.NewOrchestrator(h.engine, h.gen, h.baseCfg.GenerateParallel)
	result, err := orch.Generate(ctx, folderID, freeText, count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	type failureSummary struct {
		Name  string `json:"name"`
		Error string `json:"error"`
	}
	failures := make([]failureSummary, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = failureSummary{Name: f.Name, Error: f.Err.Error()}
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"applied":  result.Applied,
		"failures": failures,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
