package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abelbrown/topicradar/internal/app"
	"github.com/abelbrown/topicradar/internal/config"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/otel"
	"github.com/abelbrown/topicradar/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research API over HTTP",
	Long: `Serve GET /api/research?regions=US,GB plus /healthz and /debug/events.

When a config file is in use it is watched; edits are validated and
applied to subsequent runs without a restart. The listen address and
logging level only change on restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	events, err := openEvents(cfg)
	if err != nil {
		return err
	}
	defer events.Close()

	ring := otel.NewRingBuffer(cfg.EventLog.RingSize)
	events.SetRingBuffer(ring)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, logger.WithPrefix("app"), events)
	if err != nil {
		return err
	}
	srv := server.New(a, server.Options{
		RateLimit: cfg.Server.RateLimit,
		Burst:     cfg.Server.Burst,
		Logger:    logger.WithPrefix("server"),
		Events:    events,
		Ring:      ring,
	})

	if path != "" {
		go watchConfig(ctx, path, a, srv, logger.WithPrefix("config"), events)
	}

	events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindStartup,
		Comp:  "main",
		Msg:   "serving on " + cfg.Server.Addr,
		Count: len(a.Sources()),
		Extra: map[string]any{"version": version, "config": path},
	})
	logger.Info("topicradar starting",
		"addr", cfg.Server.Addr,
		"sources", len(a.Sources()),
		"regions", model.RegionStrings(a.DefaultRegions()),
		"session", events.SessionID(),
	)

	err = server.ListenAndServe(ctx, cfg.Server.Addr, srv.Handler(),
		cfg.Server.ReadTimeout.Std(), cfg.Server.WriteTimeout.Std(), logger)

	events.Info(otel.KindShutdown, "main", "shutdown")
	logger.Info("topicradar stopped", "dropped_events", events.Dropped())
	return err
}

func watchConfig(ctx context.Context, path string, a *app.App, srv *server.Server, logger *log.Logger, events *otel.Logger) {
	onChange := func(next config.Config) {
		applyFlags(&next)
		if err := a.Reload(next); err != nil {
			logger.Error("reload rejected", "path", path, "err", err)
			events.Error(otel.KindConfigReload, "config", err)
			return
		}
		srv.SetRateLimit(next.Server.RateLimit, next.Server.Burst)
	}
	onError := func(err error) {
		logger.Warn("config reload failed; keeping previous config", "err", err)
		events.Error(otel.KindConfigReload, "config", err)
	}

	if err := config.Watch(ctx, path, onChange, onError); err != nil {
		logger.Error("config watch stopped", "err", err)
	}
}
