// Package reddit fetches hot posts from a set of subreddits.
package reddit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/fetch"
	"github.com/abelbrown/topicradar/internal/model"
)

// DefaultBaseURL is the public Reddit host.
const DefaultBaseURL = "https://www.reddit.com"

// DefaultLimit is the number of hot posts requested per subreddit.
const DefaultLimit = 20

// DefaultSubreddits covers personal finance, investing and AI communities.
var DefaultSubreddits = []string{
	"personalfinance",
	"financialindependence",
	"investing",
	"stocks",
	"wallstreetbets",
	"Entrepreneur",
	"SideProject",
	"artificial",
	"MachineLearning",
	"ChatGPT",
}

// listing is the subset of Reddit's listing JSON we read.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// Config selects the subreddits and page size.
type Config struct {
	BaseURL    string
	Subreddits []string
	Limit      int
}

// Source fetches hot listings from several subreddits.
type Source struct {
	client     *fetch.Client
	baseURL    string
	subreddits []string
	limit      int
}

// New creates a Reddit source. Zero config values use the defaults.
func New(client *fetch.Client, cfg Config) *Source {
	s := &Source{
		client:     client,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		subreddits: cfg.Subreddits,
		limit:      cfg.Limit,
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if len(s.subreddits) == 0 {
		s.subreddits = DefaultSubreddits
	}
	if s.limit <= 0 {
		s.limit = DefaultLimit
	}
	return s
}

func (s *Source) Name() string {
	return "reddit"
}

func (s *Source) Type() model.SourceType {
	return model.SourceReddit
}

// Endpoints lists the hot.json URL of every subreddit.
func (s *Source) Endpoints(feeds.Options) []string {
	urls := make([]string, len(s.subreddits))
	for i, sub := range s.subreddits {
		urls[i] = s.hotURL(sub)
	}
	return urls
}

func (s *Source) Fetch(ctx context.Context, _ feeds.Options) ([]model.RawItem, error) {
	return feeds.Gather(ctx, s.Endpoints(feeds.Options{}), s.fetchListing)
}

func (s *Source) hotURL(sub string) string {
	return fmt.Sprintf("%s/r/%s/hot.json?limit=%d", s.baseURL, sub, s.limit)
}

func (s *Source) fetchListing(ctx context.Context, url string) ([]model.RawItem, error) {
	var l listing
	if err := s.client.GetJSON(ctx, url, &l); err != nil {
		return nil, fmt.Errorf("reddit: %w", err)
	}

	items := make([]model.RawItem, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		p := child.Data
		if p.ID == "" {
			continue
		}
		item := model.RawItem{
			ID:            "reddit:" + p.ID,
			Title:         fetch.CleanTitle(p.Title),
			URL:           fetch.NormalizeURL(DefaultBaseURL + p.Permalink),
			Source:        model.SourceReddit,
			Author:        p.Author,
			Score:         model.Int(p.Score),
			CommentsCount: model.Int(p.NumComments),
		}
		if p.CreatedUTC > 0 {
			item.PublishedAt = model.Time(time.Unix(int64(p.CreatedUTC), 0).UTC())
		}
		items = append(items, item)
	}
	return items, nil
}
