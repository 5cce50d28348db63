// Package config loads topicradar settings from a YAML or TOML file,
// applies environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/abelbrown/topicradar/internal/model"
)

// Environment variables that override file settings.
const (
	EnvConfigPath = "TOPICRADAR_CONFIG"
	EnvAddr       = "TOPICRADAR_ADDR"
	EnvLogLevel   = "TOPICRADAR_LOG_LEVEL"
	EnvEventLog   = "TOPICRADAR_EVENT_LOG"
	EnvYouTubeKey = "YOUTUBE_API_KEY"
)

// Duration is a time.Duration written as "15s" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Fetch    FetchConfig    `yaml:"fetch" toml:"fetch"`
	Regions  []string       `yaml:"regions" toml:"regions"`
	Sources  SourcesConfig  `yaml:"sources" toml:"sources"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	EventLog EventLogConfig `yaml:"eventLog" toml:"eventLog"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
	// RateLimit is requests per second on /api/research; 0 disables limiting.
	RateLimit    float64  `yaml:"rateLimit" toml:"rateLimit"`
	Burst        int      `yaml:"burst" toml:"burst"`
	ReadTimeout  Duration `yaml:"readTimeout" toml:"readTimeout"`
	WriteTimeout Duration `yaml:"writeTimeout" toml:"writeTimeout"`
}

// FetchConfig bounds outbound requests.
type FetchConfig struct {
	Timeout       Duration `yaml:"timeout" toml:"timeout"`
	SourceTimeout Duration `yaml:"sourceTimeout" toml:"sourceTimeout"`
	UserAgent     string   `yaml:"userAgent" toml:"userAgent"`
	// MaxConcurrent caps adapters running at once; 0 runs all together.
	MaxConcurrent int `yaml:"maxConcurrent" toml:"maxConcurrent"`
}

// SourcesConfig configures each adapter. Empty lists mean the adapter's
// built-in defaults.
type SourcesConfig struct {
	Reddit  RedditConfig  `yaml:"reddit" toml:"reddit"`
	Trends  TrendsConfig  `yaml:"trends" toml:"trends"`
	Nitter  NitterConfig  `yaml:"nitter" toml:"nitter"`
	RSS     RSSConfig     `yaml:"rss" toml:"rss"`
	YouTube YouTubeConfig `yaml:"youtube" toml:"youtube"`
}

type RedditConfig struct {
	Enabled    bool     `yaml:"enabled" toml:"enabled"`
	BaseURL    string   `yaml:"baseURL" toml:"baseURL"`
	Subreddits []string `yaml:"subreddits" toml:"subreddits"`
	Limit      int      `yaml:"limit" toml:"limit"`
}

type TrendsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	BaseURL string `yaml:"baseURL" toml:"baseURL"`
}

type NitterConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Bases   []string `yaml:"bases" toml:"bases"`
	Queries []string `yaml:"queries" toml:"queries"`
}

type RSSConfig struct {
	Enabled bool         `yaml:"enabled" toml:"enabled"`
	Feeds   []FeedConfig `yaml:"feeds" toml:"feeds"`
}

// FeedConfig is one labelled feed.
type FeedConfig struct {
	Label string `yaml:"label" toml:"label"`
	URL   string `yaml:"url" toml:"url"`
}

type YouTubeConfig struct {
	Enabled    bool     `yaml:"enabled" toml:"enabled"`
	APIKey     string   `yaml:"apiKey" toml:"apiKey"`
	Query      string   `yaml:"query" toml:"query"`
	MaxResults int64    `yaml:"maxResults" toml:"maxResults"`
	Channels   []string `yaml:"channels" toml:"channels"`
	Endpoint   string   `yaml:"endpoint" toml:"endpoint"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// EventLogConfig enables the JSONL event log when Path is set.
type EventLogConfig struct {
	Path     string `yaml:"path" toml:"path"`
	RingSize int    `yaml:"ringSize" toml:"ringSize"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			RateLimit:    2,
			Burst:        4,
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(90 * time.Second),
		},
		Fetch: FetchConfig{
			Timeout:       Duration(15 * time.Second),
			SourceTimeout: Duration(20 * time.Second),
		},
		Regions: model.RegionStrings(model.DefaultRegions),
		Sources: SourcesConfig{
			Reddit:  RedditConfig{Enabled: true},
			Trends:  TrendsConfig{Enabled: true},
			Nitter:  NitterConfig{Enabled: true},
			RSS:     RSSConfig{Enabled: true},
			YouTube: YouTubeConfig{Enabled: true},
		},
		Logging:  LoggingConfig{Level: "info"},
		EventLog: EventLogConfig{RingSize: 512},
	}
}

// Load builds a Config from defaults, the file at path (if non-empty)
// and environment overrides, then validates it. When path is empty the
// TOPICRADAR_CONFIG variable is consulted.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", displayPath(path), err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, cfg)
	case ".toml":
		err = toml.Unmarshal(raw, cfg)
	default:
		return fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvEventLog); v != "" {
		c.EventLog.Path = v
	}
	if v := os.Getenv(EnvYouTubeKey); v != "" {
		c.Sources.YouTube.APIKey = v
	}
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.DefaultRegions(); err != nil {
		errs = append(errs, fmt.Errorf("regions: %w", err))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.SourceTimeout <= 0 {
		errs = append(errs, errors.New("fetch.sourceTimeout must be positive"))
	} else if c.Fetch.SourceTimeout <= c.Fetch.Timeout {
		errs = append(errs, errors.New("fetch.sourceTimeout must exceed fetch.timeout"))
	}
	if c.Fetch.MaxConcurrent < 0 {
		errs = append(errs, errors.New("fetch.maxConcurrent must not be negative"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rateLimit must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		errs = append(errs, errors.New("server.burst must be at least 1 when rate limiting"))
	}
	for i, f := range c.Sources.RSS.Feeds {
		if f.Label == "" || f.URL == "" {
			errs = append(errs, fmt.Errorf("sources.rss.feeds[%d]: label and url are required", i))
		}
	}
	if c.Sources.Reddit.Limit < 0 {
		errs = append(errs, errors.New("sources.reddit.limit must not be negative"))
	}
	if c.Sources.YouTube.MaxResults < 0 || c.Sources.YouTube.MaxResults > 50 {
		errs = append(errs, errors.New("sources.youtube.maxResults must be within [0, 50]"))
	}
	if !c.Sources.anyEnabled() {
		errs = append(errs, errors.New("sources: at least one source must be enabled"))
	}

	return errors.Join(errs...)
}

// DefaultRegions parses Regions, falling back to model.DefaultRegions
// when none are configured.
func (c Config) DefaultRegions() ([]model.Region, error) {
	return model.ParseRegions(strings.Join(c.Regions, ","))
}

func (s SourcesConfig) anyEnabled() bool {
	return s.Reddit.Enabled || s.Trends.Enabled || s.Nitter.Enabled || s.RSS.Enabled || s.YouTube.Enabled
}

func displayPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}
