package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abelbrown/topicradar/internal/config"
	"github.com/abelbrown/topicradar/internal/logging"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/otel"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "topicradar",
	Short: "Research trending personal-finance and AI topics",
	Long: `topicradar collects items from Reddit, Google Trends, Nitter, YouTube
and finance/AI news feeds, clusters them into topics, ranks them and
attaches content-planning metadata.

Configuration is read from --config or $TOPICRADAR_CONFIG (.yaml or .toml).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// loadConfig loads the configuration and applies flag overrides. It also
// returns the resolved config path, empty when running on defaults.
func loadConfig() (config.Config, string, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	applyFlags(&cfg)
	return cfg, path, nil
}

func applyFlags(cfg *config.Config) {
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}

func newLogger(w io.Writer, cfg config.Config) (*log.Logger, error) {
	return logging.New(w, cfg.Logging.Level)
}

// openEvents opens the configured JSONL event log, or a logger that
// discards output when none is configured.
func openEvents(cfg config.Config) (*otel.Logger, error) {
	if cfg.EventLog.Path == "" {
		return otel.NewNullLogger(), nil
	}
	return otel.OpenFile(cfg.EventLog.Path)
}

// parseRegionsFlag returns nil for an empty flag so the configured
// defaults apply.
func parseRegionsFlag(s string) ([]model.Region, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	regions, err := model.ParseRegions(s)
	if err != nil {
		return nil, fmt.Errorf("--regions: %w", err)
	}
	return regions, nil
}
