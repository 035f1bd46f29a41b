// Package mcp implements the Model Context Protocol server, exposing seek
// searches and telemetry to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name is advertised to clients during capability negotiation.
const Name = "seek"

// Serve starts the MCP server over stdio and blocks until the client
// disconnects. Uses stdio transport for compatibility with Claude Desktop
// and other MCP clients.
//
// The logger must not write to stdout, which carries the JSON-RPC stream.
func Serve(extCtx extension.Context, tools []extension.MCPTool, logger *slog.Logger) error {
	s := New(extCtx, tools)

	logger.Info("seek MCP server ready",
		"version", version.Version, "transport", "stdio", "tools", len(tools)+1)

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		logger.Info("server stopped")
		return nil
	}
	return err
}

// New builds the server with every extension tool, the guide tool and the
// session resource registered.
func New(extCtx extension.Context, tools []extension.MCPTool) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version.Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, extCtx)
	registerTools(s, extCtx, tools)
	return s
}

// registerTools binds each extension handler to the shared context.
func registerTools(s *server.MCPServer, extCtx extension.Context, tools []extension.MCPTool) {
	for _, t := range tools {
		s.AddTool(t.Tool, bind(extCtx, t.Handler))
	}

	s.AddTool(
		mcp.NewTool("seek_guide",
			mcp.WithDescription("Get help/guide content for seek commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'search', 'telemetry') or empty for index")),
		),
		getGuide,
	)
}

func bind(extCtx extension.Context, h extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h(ctx, extCtx, req)
	}
}

// registerResources adds URI-based access to recorded search sessions.
func registerResources(s *server.MCPServer, extCtx extension.Context) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			sessionScheme+"{id}",
			"Search Session",
			mcp.WithTemplateDescription("Read a recorded search session by ID or unique ID prefix"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return readSession(ctx, extCtx, req.Params.URI)
		},
	)
}
