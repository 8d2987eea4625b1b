package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gerritlens/gerritlens/core"
	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyRangeParams applies the shared window/start/end/limit parameters
// onto a cloned config. Absent parameters keep the base config values.
func applyRangeParams(cfg *contract.Config, request mcp.CallToolRequest) error {
	now := time.Now()
	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(contract.DateTimeFormat, s); err == nil {
			return t, nil
		}
		return contract.ParseRelativeTime(s, now)
	}

	if w := request.GetString("window", ""); w != "" {
		window, err := contract.ParseWindowDuration(w)
		if err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
		cfg.Window = window
	}
	if s := request.GetString("start", ""); s != "" {
		start, err := parse(s)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", s, err)
		}
		cfg.StartTime = start
	}
	if e := request.GetString("end", ""); e != "" {
		end, err := parse(e)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", e, err)
		}
		cfg.EndTime = end
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	if !cfg.StartTime.Before(cfg.EndTime) {
		return fmt.Errorf("start time %s must be before end time %s",
			cfg.StartTime.Format(contract.DateTimeFormat), cfg.EndTime.Format(contract.DateTimeFormat))
	}
	return nil
}

func (h *toolHandler) handleQuerySeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Measurement = request.GetString("measurement", "")
	cfg.Field = request.GetString("field", "")
	if r := request.GetString("reducer", ""); r != "" {
		cfg.Reducer = schema.Reducer(r)
	}
	if f := strings.TrimSpace(strings.ToLower(request.GetString("fill", ""))); f != "" && f != "none" {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid fill value %q", f)), nil
		}
		cfg.Fill = &v
	}

	if err := applyRangeParams(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	result, err := core.GetSeriesResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetActivityReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRangeParams(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}

	result, err := core.GetActivityReportResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("activity report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReviewReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRangeParams(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}

	result, err := core.GetReviewReportResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("review report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.mgr.GetPointStore().GetStatus(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
