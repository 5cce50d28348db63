package app

import (
	"github.com/abelbrown/topicradar/internal/config"
	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/feeds/nitter"
	"github.com/abelbrown/topicradar/internal/feeds/reddit"
	"github.com/abelbrown/topicradar/internal/feeds/rss"
	"github.com/abelbrown/topicradar/internal/feeds/trends"
	"github.com/abelbrown/topicradar/internal/feeds/youtube"
	"github.com/abelbrown/topicradar/internal/fetch"
)

// BuildSources creates the enabled adapters, in a fixed order, sharing
// one HTTP client.
func BuildSources(cfg config.Config) []feeds.Source {
	client := fetch.NewClient(cfg.Fetch.Timeout.Std(), cfg.Fetch.UserAgent)
	s := cfg.Sources

	var out []feeds.Source
	if s.Reddit.Enabled {
		out = append(out, reddit.New(client, reddit.Config{
			BaseURL:    s.Reddit.BaseURL,
			Subreddits: s.Reddit.Subreddits,
			Limit:      s.Reddit.Limit,
		}))
	}
	if s.Trends.Enabled {
		out = append(out, trends.New(client, s.Trends.BaseURL))
	}
	if s.Nitter.Enabled {
		out = append(out, nitter.New(client, s.Nitter.Bases, s.Nitter.Queries))
	}
	if s.YouTube.Enabled {
		out = append(out, youtube.New(client, youtube.Config{
			APIKey:     s.YouTube.APIKey,
			Query:      s.YouTube.Query,
			MaxResults: s.YouTube.MaxResults,
			Channels:   s.YouTube.Channels,
			Endpoint:   s.YouTube.Endpoint,
		}))
	}
	if s.RSS.Enabled {
		list := make([]rss.Feed, len(s.RSS.Feeds))
		for i, f := range s.RSS.Feeds {
			list[i] = rss.Feed{Label: f.Label, URL: f.URL}
		}
		out = append(out, rss.New(client, list))
	}
	return out
}
