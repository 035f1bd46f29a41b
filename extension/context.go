// context.go defines the Context interface for extension access to seek internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// Extensions receive Context during Init(), not at construction, so they can
// register commands before the engine exists.

package extension

import (
	"log/slog"

	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/telemetry"
	"github.com/jpl-au/seek/internal/workspace"
)

// Context provides extensions controlled access to shared resources.
type Context interface {
	// Engine returns the search engine.
	Engine() *search.Engine

	// Collector returns the telemetry collector. It may be nil or disabled.
	Collector() *telemetry.Collector

	// Store returns the persistent telemetry store, or nil when sessions are
	// kept in memory only.
	Store() *telemetry.Store

	// Workspace returns the directories searches are confined to.
	Workspace() workspace.Policy

	// Config returns user configuration.
	Config() *config.Config

	// Logger returns the diagnostics logger.
	Logger() *slog.Logger
}

type extContext struct {
	engine *search.Engine
	cfg    *config.Config
	logger *slog.Logger
}

// NewContext creates a new extension context around engine.
func NewContext(engine *search.Engine, cfg *config.Config, logger *slog.Logger) Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &extContext{engine: engine, cfg: cfg, logger: logger}
}

func (c *extContext) Engine() *search.Engine { return c.engine }

func (c *extContext) Collector() *telemetry.Collector { return c.engine.Collector() }

func (c *extContext) Store() *telemetry.Store { return c.engine.Collector().Store() }

func (c *extContext) Workspace() workspace.Policy { return c.engine.Policy() }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Logger() *slog.Logger { return c.logger }
