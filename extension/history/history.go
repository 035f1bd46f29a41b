// Package history browses and prunes recorded search sessions.
// Registers commands: history (with show and prune subcommands).
//
// Sessions come from the telemetry database when persistence is on, so
// they survive across runs. With persistence off only the current process's
// sessions exist, which for the CLI means none; the MCP server, being long
// lived, still sees its own.
package history

import (
	"errors"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/telemetry"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// ErrNoStore is returned by operations that need the telemetry database.
var ErrNoStore = errors.New("no telemetry database: enable telemetry with 'seek config telemetry.enabled true'")

// Extension implements the history extension.
type Extension struct {
	collector *telemetry.Collector
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "history".
func (e *Extension) Name() string { return "history" }

// Init connects to the shared telemetry collector.
func (e *Extension) Init(ctx extension.Context) error {
	e.collector = ctx.Collector()
	return nil
}

// Commands returns the history command tree.
func (e *Extension) Commands() []*cobra.Command {
	c := e.newHistoryCmd()
	c.AddCommand(e.newShowCmd(), e.newPruneCmd())
	return []*cobra.Command{c}
}

// MCPTools returns seek_history and seek_session.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		historyTool(),
		sessionTool(),
	}
}
