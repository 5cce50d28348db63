// Package nitter searches Nitter instances through their RSS search endpoint.
package nitter

import (
	"context"
	"net/url"
	"strings"

	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/fetch"
	"github.com/abelbrown/topicradar/internal/model"
)

// DefaultBases are the Nitter instances queried.
var DefaultBases = []string{
	"https://nitter.net",
	"https://nitter.lacontrevoie.fr",
}

// DefaultQueries are the search terms run against every instance.
var DefaultQueries = []string{
	"AI finance",
	"personal finance AI",
	"money psychology",
	"wealth building",
	"financial freedom",
	"investment AI",
	"LLM trading",
}

// Source runs every query against every instance.
type Source struct {
	client  *fetch.Client
	bases   []string
	queries []string
}

// New creates a Nitter source. Empty lists use the defaults.
func New(client *fetch.Client, bases, queries []string) *Source {
	if len(bases) == 0 {
		bases = DefaultBases
	}
	if len(queries) == 0 {
		queries = DefaultQueries
	}
	return &Source{client: client, bases: bases, queries: queries}
}

func (s *Source) Name() string {
	return "nitter"
}

func (s *Source) Type() model.SourceType {
	return model.SourceNitter
}

// Endpoints lists base × query search URLs, grouped by base.
func (s *Source) Endpoints(feeds.Options) []string {
	urls := make([]string, 0, len(s.bases)*len(s.queries))
	for _, base := range s.bases {
		base = strings.TrimRight(base, "/")
		for _, q := range s.queries {
			urls = append(urls, base+"/search/rss?f=tweets&q="+url.QueryEscape(q))
		}
	}
	return urls
}

func (s *Source) Fetch(ctx context.Context, opts feeds.Options) ([]model.RawItem, error) {
	return feeds.Gather(ctx, s.Endpoints(opts), func(ctx context.Context, u string) ([]model.RawItem, error) {
		return s.client.FeedItems(ctx, u, fetch.FeedOptions{
			Label:  "nitter",
			Source: model.SourceNitter,
		})
	})
}
