// Package rss fetches a fixed set of labelled finance and AI news feeds.
package rss

import (
	"context"

	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/fetch"
	"github.com/abelbrown/topicradar/internal/model"
)

// Feed is one labelled feed URL. The label prefixes item IDs.
type Feed struct {
	Label string `yaml:"label" toml:"label"`
	URL   string `yaml:"url" toml:"url"`
}

// DefaultFeeds are the finance and AI newsroom feeds.
var DefaultFeeds = []Feed{
	{Label: "theverge-ai", URL: "https://www.theverge.com/ai-artificial-intelligence/rss/index.xml"},
	{Label: "techcrunch-ai", URL: "https://techcrunch.com/tag/artificial-intelligence/feed/"},
	{Label: "cnbc-finance", URL: "https://www.cnbc.com/id/10000664/device/rss/rss.html"},
	{Label: "ft-finance", URL: "https://www.ft.com/companies/financials?format=rss"},
	{Label: "ft-tech", URL: "https://www.ft.com/technology?format=rss"},
	{Label: "wsj-markets", URL: "https://www.wsj.com/xml/rss/3_7031.xml"},
	{Label: "reuters-finance", URL: "https://www.reuters.com/finance/rss"},
	{Label: "reuters-ai", URL: "https://www.reuters.com/technology/ai/rss"},
	{Label: "bloomberg-markets", URL: "https://feeds.feedburner.com/bloomberg/markets"},
}

// Source fetches items from several RSS/Atom feeds.
type Source struct {
	client *fetch.Client
	feeds  []Feed
}

// New creates an RSS source. An empty feed list uses DefaultFeeds.
func New(client *fetch.Client, list []Feed) *Source {
	if len(list) == 0 {
		list = DefaultFeeds
	}
	return &Source{client: client, feeds: list}
}

func (s *Source) Name() string {
	return "finance-ai-rss"
}

func (s *Source) Type() model.SourceType {
	return model.SourceRSS
}

func (s *Source) Endpoints(feeds.Options) []string {
	urls := make([]string, len(s.feeds))
	for i, f := range s.feeds {
		urls[i] = f.URL
	}
	return urls
}

func (s *Source) Fetch(ctx context.Context, _ feeds.Options) ([]model.RawItem, error) {
	return feeds.Gather(ctx, s.feeds, func(ctx context.Context, f Feed) ([]model.RawItem, error) {
		return s.client.FeedItems(ctx, f.URL, fetch.FeedOptions{
			Label:  f.Label,
			Source: model.SourceRSS,
		})
	})
}
