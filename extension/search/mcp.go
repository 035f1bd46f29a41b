// mcp.go exposes the search engine to MCP clients.
//
// seek_grep returns the same summary text a CLI user sees, which is what an
// LLM wants to read, plus the structured matches for clients that parse.

package search

import (
	"context"
	"errors"
	"strings"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/strategy"
	"github.com/mark3labs/mcp-go/mcp"
)

func grepTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("seek_grep",
			mcp.WithDescription("Search file contents in the workspace using a regular expression. "+
				"Uses git grep in repositories, grep elsewhere, and a built-in scan as a last resort."),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Regex pattern (e.g., 'TODO', 'func\\s+\\w+', 'error|warn')")),
			mcp.WithString("path", mcp.Description("Directory to search, relative to the first workspace root (default: every root)")),
			mcp.WithString("include", mcp.Description("Only search files matching this glob (e.g., '*.go', 'src/**/*.ts')")),
			mcp.WithBoolean("structured", mcp.Description("Return JSON with individual matches instead of the text summary")),
		),
		Handler: handleGrep,
	}
}

func handleGrep(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}
	r := search.Request{
		Pattern: pattern,
		Path:    extension.StringArg(req, "path", ""),
		Include: extension.StringArg(req, "include", ""),
	}

	res, err := extCtx.Engine().Search(ctx, r)

	log.Event("mcp:seek_grep", "search").
		Author("mcp").
		Path(r.Path).
		Pattern(r.Pattern).
		Strategy(res.Strategy).
		Matches(res.Total()).
		Session(res.SessionID).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(res.Summary), nil
	}
	if extension.BoolArg(req, "structured", false) {
		return extension.JSONResult(res)
	}
	return mcp.NewToolResultText(res.Summary), nil
}

func compareTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("seek_compare",
			mcp.WithDescription("Run each search strategy (git, grep, walk) separately and report how their matches differ from the built-in walk"),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Regex pattern")),
			mcp.WithString("path", mcp.Description("Directory to search (default: every root)")),
			mcp.WithString("include", mcp.Description("Glob filter for file names")),
			mcp.WithString("strategies", mcp.Description("Comma-separated strategies; the last is the baseline (default: git,grep,walk)")),
		),
		Handler: handleCompare,
	}
}

func handleCompare(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}
	r := search.Request{
		Pattern: pattern,
		Path:    extension.StringArg(req, "path", ""),
		Include: extension.StringArg(req, "include", ""),
	}
	names := strategy.Names()
	if s := extension.StringArg(req, "strategies", ""); s != "" {
		names = strings.Split(s, ",")
	}

	opts := strategy.Options{MaxLineLength: extCtx.Config().MaxLineLength(), Logger: extCtx.Logger()}
	var list []strategy.Strategy
	for _, name := range names {
		s, err := strategy.New(strings.TrimSpace(name), opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		list = append(list, s)
	}

	results, err := extCtx.Engine().Compare(ctx, r, list)
	var reports []Report
	if err == nil {
		reports, err = Reports(results)
	}

	log.Event("mcp:seek_compare", "compare").
		Author("mcp").
		Path(r.Path).
		Pattern(r.Pattern).
		Detail("strategies", names).
		Write(err)

	if err != nil && !errors.Is(err, ErrStrategiesDiffer) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(map[string]any{
		"agree":   err == nil,
		"reports": reports,
	})
}
