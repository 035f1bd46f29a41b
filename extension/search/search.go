// Package search provides layered regex content search across the workspace.
// Registers commands: grep, compare.
package search

import (
	"log/slog"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/search"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	engine *search.Engine
	cfg    *config.Config
	logger *slog.Logger
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared search engine.
func (e *Extension) Init(ctx extension.Context) error {
	e.engine = ctx.Engine()
	e.cfg = ctx.Config()
	e.logger = ctx.Logger()
	return nil
}

// Commands returns the grep and compare commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newGrepCmd(),
		e.newCompareCmd(),
	}
}

// MCPTools returns seek_grep and seek_compare.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		grepTool(),
		compareTool(),
	}
}
