package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/topicradar/internal/model"
)

const testFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Test</title>
<item>
  <title>OpenAI launches budgeting agent for families</title>
  <link>https://example.com/openai-budget</link>
  <guid>openai-budget</guid>
  <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Short</title>
  <link>https://example.com/short</link>
</item>
</channel></rss>`

// execute runs rootCmd with args and returns stdout. Flag variables are
// reset first because cobra only writes flags that are present.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel = "", ""
	runRegions, runJSON = "", false
	serveAddr, tuiRegions = "", ""

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, feedURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topicradar.yaml")
	body := fmt.Sprintf(`regions: [US, GB]
logging:
  level: error
sources:
  reddit: {enabled: false}
  trends: {enabled: false}
  nitter: {enabled: false}
  youtube: {enabled: false}
  rss:
    enabled: true
    feeds:
      - label: testfeed
        url: %s
`, feedURL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "test-1.2.3"
	defer func() { version = original }()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "topicradar version test-1.2.3")
}

func TestSourcesCmd(t *testing.T) {
	path := writeConfig(t, "https://feeds.example.com/rss.xml")

	out, err := execute(t, "sources", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "finance-ai-rss (rss)")
	assert.Contains(t, out, "  https://feeds.example.com/rss.xml")
	assert.NotContains(t, out, "reddit")
}

func TestRunCmdJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeed)
	}))
	defer server.Close()

	path := writeConfig(t, server.URL+"/feed.xml")

	out, err := execute(t, "run", "--config", path, "--regions", "de")
	require.NoError(t, err)

	var resp model.ResearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, []model.Region{"DE"}, resp.Regions)
	require.Len(t, resp.Topics, 1)
	assert.Equal(t, "OpenAI launches budgeting agent for families", resp.Topics[0].Topic)
	assert.Equal(t, model.CategoryAI, resp.Topics[0].Category)
	require.Len(t, resp.Topics[0].Sources, 1)
	assert.Equal(t, model.SourceRSS, resp.Topics[0].Sources[0].Source)
	assert.Equal(t, 1, resp.Meta.TotalRawItems)
	assert.Equal(t, 1, resp.Meta.UniqueTopics)
}

func TestRunCmdDefaultRegions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer server.Close()

	out, err := execute(t, "run", "--config", writeConfig(t, server.URL), "--json")
	require.NoError(t, err)

	var resp model.ResearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []model.Region{"US", "GB"}, resp.Regions)
}

func TestRunCmdFeedDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	out, err := execute(t, "run", "--config", writeConfig(t, server.URL), "--json")
	require.NoError(t, err)

	var resp model.ResearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Empty(t, resp.Topics)
	require.Len(t, resp.Meta.Sources, 1)
	assert.NotEmpty(t, resp.Meta.Sources[0].Error)
}

func TestRunCmdUnknownRegion(t *testing.T) {
	_, err := execute(t, "run", "--regions", "US,XX")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownRegion)
}

func TestRunCmdBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := execute(t, "run", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}

func TestRunCmdBadLogLevel(t *testing.T) {
	_, err := execute(t, "run", "--config", writeConfig(t, "https://example.com/rss"), "--log-level", "loud")
	require.Error(t, err)
}

func TestParseRegionsFlag(t *testing.T) {
	regions, err := parseRegionsFlag("  ")
	require.NoError(t, err)
	assert.Nil(t, regions)

	regions, err = parseRegionsFlag("us, gb")
	require.NoError(t, err)
	assert.Equal(t, []model.Region{"US", "GB"}, regions)
}

func TestRunCmdWritesEventLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer server.Close()

	eventLog := filepath.Join(t.TempDir(), "events.jsonl")
	t.Setenv("TOPICRADAR_EVENT_LOG", eventLog)

	_, err := execute(t, "run", "--config", writeConfig(t, server.URL), "--json")
	require.NoError(t, err)

	data, err := os.ReadFile(eventLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"pipeline.complete"`)
}
