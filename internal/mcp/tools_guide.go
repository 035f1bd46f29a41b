// tools_guide.go implements the MCP tool for accessing help content.
//
// The guide tool gives LLMs the same documentation as "seek guide", so they
// can learn the pattern syntax and telemetry fields without external lookups.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/guide"
	"github.com/jpl-au/seek/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles seek_guide tool calls.
func getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := extension.StringArg(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return extension.JSONResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}

	return mcp.NewToolResultText(content), nil
}
