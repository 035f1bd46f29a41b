// mcp.go exposes recorded sessions to MCP clients.

package history

import (
	"context"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
)

// Summary is the compact form of a session used in listings.
type Summary struct {
	ID               string  `json:"id"`
	Timestamp        string  `json:"timestamp"`
	Pattern          string  `json:"pattern"`
	Target           string  `json:"target_path"`
	Strategy         string  `json:"search_strategy"`
	Results          int     `json:"results_found"`
	FilesScanned     int     `json:"files_scanned"`
	ExecutionMS      int64   `json:"execution_time_ms"`
	AverageRelevance float64 `json:"average_relevance"`
}

// Summarise drops per-match detail from r.
func Summarise(r telemetry.Record) Summary {
	return Summary{
		ID:               r.ID,
		Timestamp:        r.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		Pattern:          r.Pattern,
		Target:           r.TargetPath,
		Strategy:         r.Strategy,
		Results:          r.ResultsFound,
		FilesScanned:     r.FilesScanned,
		ExecutionMS:      r.ExecutionMS,
		AverageRelevance: r.AverageRelevance(),
	}
}

func historyTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("seek_history",
			mcp.WithDescription("List recorded search sessions, newest first, without per-match detail"),
			mcp.WithNumber("limit", mcp.Description("Maximum sessions to return (default 20, 0 for all)")),
		),
		Handler: handleHistory,
	}
}

func handleHistory(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := extension.IntArg(req, "limit", defaultLimit)
	if limit < 0 {
		return mcp.NewToolResultError("limit must be >= 0"), nil
	}

	records, err := extCtx.Collector().Recent(ctx, limit)

	log.Event("mcp:seek_history", "list").Author("mcp").Matches(len(records)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]Summary, len(records))
	for i, r := range records {
		out[i] = Summarise(r)
	}
	return extension.JSONResult(out)
}

func sessionTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("seek_session",
			mcp.WithDescription("Get one recorded search session with matches, relevance scores, context lines and ranking factors"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session ID or unique prefix")),
		),
		Handler: handleSession,
	}
}

func handleSession(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	rec, err := extCtx.Collector().Lookup(ctx, id)

	log.Event("mcp:seek_session", "read").Author("mcp").Path(id).Session(rec.ID).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(rec)
}
