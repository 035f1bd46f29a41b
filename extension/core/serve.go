// serve.go implements the "seek serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio until the client disconnects. It shares the engine
// built for every other command, so config, roots and telemetry settings
// apply to MCP searches too.

package core

import (
	"errors"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/mcp"
	"github.com/spf13/cobra"
)

// ErrNotInitialised is returned if serve runs before extension init.
var ErrNotInitialised = errors.New("search engine not initialised")

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools: seek_grep, seek_compare, seek_history, seek_session, seek_guide.
Resources: seek://sessions/{id}

  seek serve                          # search the working directory
  seek serve --root ~/src/a --root b  # search several roots
  SEEK_TELEMETRY=1 seek serve         # record every search

Diagnostics go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: e.runServe,
	}
}

func (e *Extension) runServe(_ *cobra.Command, _ []string) error {
	if e.ctx == nil {
		return ErrNotInitialised
	}
	tools := extension.Tools()
	err := mcp.Serve(e.ctx, tools, e.ctx.Logger())
	log.Event("core:serve", "serve").
		Author("mcp").
		Detail("tools", len(tools)).
		Detail("roots", e.ctx.Workspace().Roots()).
		Write(err)
	return err
}
