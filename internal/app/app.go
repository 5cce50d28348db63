// Package app wires configuration, sources and the research pipeline
// together and lets the running configuration be swapped atomically.
package app

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/topicradar/internal/config"
	"github.com/abelbrown/topicradar/internal/coord"
	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/logging"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/otel"
	"github.com/abelbrown/topicradar/internal/research"
)

// state is one immutable generation of wiring.
type state struct {
	cfg      config.Config
	sources  []feeds.Source
	pipeline *research.Pipeline
	regions  []model.Region
}

// App serves research runs from the current configuration.
// Goroutine-safe; Reload never disturbs runs already in flight.
type App struct {
	logger  *log.Logger
	events  *otel.Logger
	current atomic.Pointer[state]
}

// New builds an App from cfg. logger and events may be nil.
func New(cfg config.Config, logger *log.Logger, events *otel.Logger) (*App, error) {
	a := &App{logger: logging.Or(logger), events: events}
	if err := a.Reload(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// Reload rebuilds sources and pipeline from cfg and swaps them in.
func (a *App) Reload(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	regions, err := cfg.DefaultRegions()
	if err != nil {
		return err
	}

	sources := BuildSources(cfg)
	agg := coord.NewAggregator(sources,
		coord.WithSourceTimeout(cfg.Fetch.SourceTimeout.Std()),
		coord.WithConcurrency(cfg.Fetch.MaxConcurrent),
		coord.WithLogger(a.logger),
		coord.WithEvents(a.events),
	)

	prev := a.current.Swap(&state{
		cfg:      cfg,
		sources:  sources,
		pipeline: research.New(agg, a.logger, a.events),
		regions:  regions,
	})
	if prev != nil {
		a.logger.Info("configuration reloaded", "sources", len(sources))
		a.events.Info(otel.KindConfigReload, "app", "configuration reloaded")
	}
	return nil
}

// Run executes one research run. Empty regions use the configured defaults.
func (a *App) Run(ctx context.Context, regions []model.Region) (*model.ResearchResponse, error) {
	s := a.current.Load()
	if len(regions) == 0 {
		regions = s.regions
	}
	return s.pipeline.Run(ctx, research.Options{Regions: regions})
}

// Config returns the active configuration.
func (a *App) Config() config.Config {
	return a.current.Load().cfg
}

// Sources returns the active adapters.
func (a *App) Sources() []feeds.Source {
	return append([]feeds.Source(nil), a.current.Load().sources...)
}

// DefaultRegions returns the configured default regions.
func (a *App) DefaultRegions() []model.Region {
	return append([]model.Region(nil), a.current.Load().regions...)
}
