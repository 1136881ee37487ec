// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Casemap MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, engine *core.Engine, gen contract.Generator) *server.MCPServer {
	s := server.NewMCPServer(
		"Casemap Prioritization Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		engine:  engine,
		gen:     gen,
	}

	// --- 1. Tool: list_use_cases ---
	s.AddTool(mcp.NewTool("list_use_cases",
		mcp.WithDescription("List the use cases in a folder with their derived scores and resolved levels."),
		mcp.WithString("folder_id", mcp.Description("Folder id (defaults to the active folder).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleListUseCases)

	// --- 2. Tool: classify_matrix ---
	s.AddTool(mcp.NewTool("classify_matrix",
		mcp.WithDescription("Classify a folder's use cases into the 5x5 value-by-complexity matrix with advisory labels."),
		mcp.WithString("folder_id", mcp.Description("Folder id (defaults to the active folder).")),
	), h.handleClassifyMatrix)

	// --- 3. Tool: get_level_counts ---
	s.AddTool(mcp.NewTool("get_level_counts",
		mcp.WithDescription("Count a folder's use cases at one level on one dimension."),
		mcp.WithString("kind", mcp.Description("Dimension to count on (value or complexity)."), mcp.Required(), mcp.Enum("value", "complexity")),
		mcp.WithNumber("level", mcp.Description("Level to count (1-5)."), mcp.Required()),
		mcp.WithString("folder_id", mcp.Description("Folder id (defaults to the active folder).")),
	), h.handleGetLevelCounts)

	// --- 4. Tool: generate_use_cases ---
	s.AddTool(mcp.NewTool("generate_use_cases",
		mcp.WithDescription("Generate, score and persist use-case proposals for a folder from free-text context."),
		mcp.WithString("context", mcp.Description("Free-text context to generate from."), mcp.Required()),
		mcp.WithString("folder_id", mcp.Description("Folder id (defaults to the active folder).")),
		mcp.WithNumber("count", mcp.Description("Number of use cases to generate.")),
	), h.handleGenerateUseCases)

	return s
}

// StartMCPServer starts the Casemap MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, engine *core.Engine, gen contract.Generator) error {
	s := NewMCPServer(baseCfg, engine, gen)
	return server.ServeStdio(s)
}
