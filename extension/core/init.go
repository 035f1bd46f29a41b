// init.go implements the "seek init" command.
//
// Init writes a local .seek/config.yaml whose workspace is the current
// directory, so searches run from here are confined to it. Telemetry can be
// switched on at the same time with --telemetry.

package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/log"
	"github.com/spf13/cobra"
)

// ErrAlreadyInitialised is returned when .seek/config.yaml already exists.
var ErrAlreadyInitialised = errors.New("already initialised")

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a local seek configuration",
		Long: `Creates .seek/config.yaml in the current directory with the directory as
the only workspace root.

  seek init               # workspace is this directory
  seek init --telemetry   # also record every search here
  seek init --force       # overwrite an existing local config

Add more roots afterwards with:
  seek config workspace.roots .,../shared`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagForce, "f", false, "Overwrite an existing local config")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	force, _ := c.Flags().GetBool(extension.FlagForce)

	err := initLocal(force, cmd.Telemetry())

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Path(config.LocalPath()).
		Detail("telemetry", cmd.Telemetry()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"config": config.LocalPath()})
	}
	fmt.Fprintf(cmd.Out(), "Initialised seek in %s\n", config.LocalPath())
	return nil
}

func initLocal(force, telemetry bool) error {
	if _, err := os.Stat(config.LocalPath()); err == nil && !force {
		return fmt.Errorf("%w: %s exists (use --force to overwrite)", ErrAlreadyInitialised, config.LocalPath())
	}

	cfg := &config.Config{}
	if err := cfg.Set("workspace.roots", "."); err != nil {
		return err
	}
	if telemetry {
		if err := cfg.Set("telemetry.enabled", "true"); err != nil {
			return err
		}
	}
	return cfg.SaveScope(config.ScopeLocal)
}
