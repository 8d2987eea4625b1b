// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Gerritlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gerritlens Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: query_series ---
	s.AddTool(mcp.NewTool("query_series",
		mcp.WithDescription("Aggregate one stored measurement/field into fixed windows with a reducer."),
		mcp.WithString("measurement", mcp.Description("Measurement to query."), mcp.Required(), mcp.Enum(schema.CommitDetailsMeasurement, schema.CommitsReviewMeasurement)),
		mcp.WithString("field", mcp.Description("Field name within the measurement."), mcp.Required()),
		mcp.WithString("reducer", mcp.Description("Per-window reduction (count, sum, mean). Defaults to 'count'."), mcp.Enum("count", "sum", "mean")),
		mcp.WithString("window", mcp.Description("Window size (e.g., '1h', '24h', '7d'). Defaults to 24h.")),
		mcp.WithString("fill", mcp.Description("Value for empty windows, or 'none' to omit them.")),
		mcp.WithString("start", mcp.Description("Range start as RFC3339 or relative (e.g., '7 days').")),
		mcp.WithString("end", mcp.Description("Range end as RFC3339 or relative.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of windows returned.")),
	), h.handleQuerySeries)

	// --- 2. Tool: get_activity_report ---
	s.AddTool(mcp.NewTool("get_activity_report",
		mcp.WithDescription("Report commit counts and line churn per window from collected Gerrit changes."),
		mcp.WithString("window", mcp.Description("Window size (e.g., '24h', '7d').")),
		mcp.WithString("start", mcp.Description("Range start as RFC3339 or relative.")),
		mcp.WithString("end", mcp.Description("Range end as RFC3339 or relative.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetActivityReport)

	// --- 3. Tool: get_review_report ---
	s.AddTool(mcp.NewTool("get_review_report",
		mcp.WithDescription("Report merge throughput, review latency and comment density per window."),
		mcp.WithString("window", mcp.Description("Window size (e.g., '24h', '7d').")),
		mcp.WithString("start", mcp.Description("Range start as RFC3339 or relative.")),
		mcp.WithString("end", mcp.Description("Range end as RFC3339 or relative.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetReviewReport)

	// --- 4. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Show point store contents: total points, time bounds and measurements."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the Gerritlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
