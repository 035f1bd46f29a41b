// Package core provides the core extension for seek.
// It registers commands: init, config, serve, guide, llm, version.
package core

import (
	"github.com/jpl-au/seek/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Standalone    = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared context for the MCP server.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the bootstrap and server commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		e.newServeCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. The guide tool is built into the server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// StandaloneCommands returns the commands that never need the engine.
// serve is absent: it serves searches and so needs the engine like grep.
func (e *Extension) StandaloneCommands() []string {
	return []string{"init", "config", "guide", "llm", "version"}
}
