// Package trends reads Google's daily trending-search RSS, one feed per region.
package trends

import (
	"context"
	"net/url"
	"strings"

	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/fetch"
	"github.com/abelbrown/topicradar/internal/model"
)

// DefaultBaseURL is the daily trending searches feed.
const DefaultBaseURL = "https://trends.google.com/trends/trendingsearches/daily/rss"

const label = "google_trends"

// Source fetches trending searches for each requested region.
type Source struct {
	client  *fetch.Client
	baseURL string
}

// New creates a trends source. An empty baseURL uses DefaultBaseURL.
func New(client *fetch.Client, baseURL string) *Source {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{client: client, baseURL: baseURL}
}

func (s *Source) Name() string {
	return "google-trends"
}

func (s *Source) Type() model.SourceType {
	return model.SourceTrends
}

// Endpoints returns one feed URL per region.
func (s *Source) Endpoints(opts feeds.Options) []string {
	urls := make([]string, len(opts.Regions))
	for i, r := range opts.Regions {
		urls[i] = s.feedURL(r)
	}
	return urls
}

func (s *Source) Fetch(ctx context.Context, opts feeds.Options) ([]model.RawItem, error) {
	return feeds.Gather(ctx, opts.Regions, func(ctx context.Context, r model.Region) ([]model.RawItem, error) {
		return s.client.FeedItems(ctx, s.feedURL(r), fetch.FeedOptions{
			Label:  label,
			Source: model.SourceTrends,
			Region: r,
		})
	})
}

func (s *Source) feedURL(r model.Region) string {
	sep := "?"
	if strings.Contains(s.baseURL, "?") {
		sep = "&"
	}
	return s.baseURL + sep + "geo=" + url.QueryEscape(string(r))
}
