/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, resolves the workspace, and builds the search engine.
//
// Extensions register during init() but aren't initialised until first
// command execution. This two-phase pattern allows extensions to declare
// commands before the engine exists. The engine is created once and shared
// across all extensions via the Context.

package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/strategy"
	"github.com/jpl-au/seek/internal/telemetry"
	"github.com/jpl-au/seek/internal/workspace"
)

// standaloneCommands lists commands that bypass engine initialisation.
// Built from the bootstrap commands plus extension-declared standalone ones.
var standaloneCommands map[string]bool

// buildStandaloneCommands creates the set of commands that skip engine setup.
//
// Bootstrap commands (init, guide, config, llm, version) must work when the
// configuration is broken, since they are how it gets fixed. Extensions can
// add to the set by implementing extension.Standalone.
func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"llm":        true,
		"version":    true,
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Standalone); ok {
			for _, name := range s.StandaloneCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extStore   *telemetry.Store
	initOnce   sync.Once
	initErr    error
)

// initExtensions builds the search engine and injects it into extensions.
//
// sync.Once guarantees one engine (and one telemetry database handle) per
// process, even if several commands trigger initialisation.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		ctx, err := buildContext(cfg)
		if err != nil {
			initErr = err
			return
		}
		extContext = ctx
		extStore = ctx.Store()

		if roots := ctx.Workspace().Roots(); len(roots) > 0 {
			log.SetProject(roots[0])
		}

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// buildContext wires config and flags into a search engine.
//
// Roots come from --root, then workspace.roots, then the working directory.
// The telemetry database is opened when persistence is on and either
// telemetry is enabled or an earlier run already created it, so history
// commands can read old sessions while recording is off.
func buildContext(cfg *config.Config) (extension.Context, error) {
	logger := NewLogger()

	dirs := Roots()
	if len(dirs) == 0 {
		dirs = cfg.Roots()
	}
	if len(dirs) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		dirs = []string{wd}
	}
	ws, err := workspace.New(dirs...)
	if err != nil {
		return nil, err
	}

	enabled := cfg.TelemetryEnabled() || Telemetry()
	opts := []telemetry.CollectorOption{telemetry.WithLogger(logger)}
	if cfg.TelemetryPersist() && (enabled || exists(telemetry.DefaultStorePath())) {
		store, err := telemetry.OpenStore(telemetry.DefaultStorePath())
		if err != nil {
			return nil, err
		}
		opts = append(opts, telemetry.WithStore(store))
	}
	collector := telemetry.NewCollector(enabled, opts...)

	chain := strategy.NewChain(strategy.Options{
		Logger:        logger,
		Disable:       cfg.Disabled(),
		MaxLineLength: cfg.MaxLineLength(),
	})
	engine := search.New(ws,
		search.WithRunner(chain),
		search.WithCollector(collector),
		search.WithTimeout(cfg.Timeout()),
		search.WithLogger(logger),
	)
	return extension.NewContext(engine, cfg, logger), nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// closeExtensions releases the telemetry database, if one was opened.
func closeExtensions() error {
	return extStore.Close()
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		standaloneCommands = buildStandaloneCommands()
	})
}
