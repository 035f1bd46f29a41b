// mcp.go defines types for MCP tool registration by extensions.
//
// Separated from extension.go to isolate MCP-specific concerns. Not all
// extensions need MCP tools; some only provide CLI commands.
//
// The handler receives both the Go context (for cancellation) and the
// extension Context (for engine access).

package extension

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// StringArg extracts a string argument from the MCP request, returning def
// when the argument is missing or not a string. Optional arguments never
// fail a tool call.
func StringArg(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// BoolArg extracts a boolean argument. A string "true" from a careless
// client is not a boolean and yields def.
func BoolArg(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := req.GetArguments()[name].(bool); ok {
		return v
	}
	return def
}

// IntArg extracts an integer argument. JSON numbers decode as float64.
func IntArg(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := req.GetArguments()[name].(float64); ok {
		return int(v)
	}
	return def
}

// JSONResult marshals v as the text of a tool result. Marshal failures are
// reported to the client as a tool error rather than a protocol error.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
