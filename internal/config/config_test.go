package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/topicradar/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfigPath, EnvAddr, EnvLogLevel, EnvEventLog, EnvYouTubeKey} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout.Std())
	assert.Equal(t, 20*time.Second, cfg.Fetch.SourceTimeout.Std())

	regions, err := cfg.DefaultRegions()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRegions, regions)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "topicradar.yaml", `
server:
  addr: ":9090"
  rateLimit: 0
fetch:
  timeout: 5s
regions: [us, gb]
sources:
  reddit:
    subreddits: [investing]
    limit: 10
  nitter:
    enabled: false
  rss:
    feeds:
      - label: local
        url: http://localhost/feed.xml
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout.Std())
	assert.Equal(t, 20*time.Second, cfg.Fetch.SourceTimeout.Std(), "unset keys keep defaults")
	assert.Equal(t, []string{"investing"}, cfg.Sources.Reddit.Subreddits)
	assert.True(t, cfg.Sources.Reddit.Enabled)
	assert.False(t, cfg.Sources.Nitter.Enabled)
	assert.Equal(t, []FeedConfig{{Label: "local", URL: "http://localhost/feed.xml"}}, cfg.Sources.RSS.Feeds)
	assert.Equal(t, "debug", cfg.Logging.Level)

	regions, err := cfg.DefaultRegions()
	require.NoError(t, err)
	assert.Equal(t, []model.Region{"US", "GB"}, regions)
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "topicradar.toml", `
regions = ["CA"]

[fetch]
timeout = "3s"
maxConcurrent = 2

[sources.youtube]
query = "index funds"
maxResults = 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout.Std())
	assert.Equal(t, 2, cfg.Fetch.MaxConcurrent)
	assert.Equal(t, "index funds", cfg.Sources.YouTube.Query)
	assert.Equal(t, int64(10), cfg.Sources.YouTube.MaxResults)
	assert.Equal(t, []string{"CA"}, cfg.Regions)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "c.yaml", "server:\n  addr: \":1\"\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvYouTubeKey, "secret")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvEventLog, "/tmp/events.jsonl")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "secret", cfg.Sources.YouTube.APIKey)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/events.jsonl", cfg.EventLog.Path)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "c.json", "{}"))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = Load(writeFile(t, "c.yaml", "server: [broken"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "c.yaml", "fetch:\n  timeout: soon\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Regions = []string{"US", "XX"}
	cfg.Fetch.Timeout = 0
	cfg.Server.RateLimit = 1
	cfg.Server.Burst = 0
	cfg.Sources.RSS.Feeds = []FeedConfig{{Label: "x"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownRegion)
	assert.ErrorContains(t, err, "fetch.timeout")
	assert.ErrorContains(t, err, "server.burst")
	assert.ErrorContains(t, err, "sources.rss.feeds[0]")

	slow := Default()
	slow.Fetch.Timeout = Duration(30 * time.Second)
	assert.ErrorContains(t, slow.Validate(), "fetch.sourceTimeout must exceed fetch.timeout")

	none := Default()
	none.Sources = SourcesConfig{}
	assert.ErrorContains(t, none.Validate(), "at least one source")
}

func TestWatchReloads(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "watch.yaml", "server:\n  addr: \":1000\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { changes <- c }, nil)
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":2000\"\n"), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, ":2000", cfg.Server.Addr)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchReportsBadConfig(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "watch.yaml", "server:\n  addr: \":1000\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 4)
	go Watch(ctx, path, nil, func(err error) { errs <- err })

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  timeout: 0s\n"), 0o644))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "fetch.timeout")
	case <-time.After(3 * time.Second):
		t.Fatal("no error reported")
	}
}

func TestWatchRequiresPath(t *testing.T) {
	assert.Error(t, Watch(context.Background(), "", nil, nil))
}
