// Package youtube lists recent videos, either through a live Data API
// search (when an API key is configured) or from known channel feeds.
package youtube

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/fetch"
	"github.com/abelbrown/topicradar/internal/model"
)

const (
	// DefaultQuery is the live search query.
	DefaultQuery = "AI personal finance"

	// DefaultMaxResults is the live search page size.
	DefaultMaxResults = 20

	channelFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id="
	watchURL       = "https://www.youtube.com/watch?v="
)

// DefaultChannels are finance and tech channels read when no API key is set.
var DefaultChannels = []string{
	"UCR-cNbnvQasJ0_Hz7Hf6q3Q", // Graham Stephan
	"UCGy7SkBjcIAgTiwkXEtPnYg", // Andrei Jikh
	"UCoOae5nYA7VqaXzerajD0lg", // Ali Abdaal
	"UCV6KDgJskWaEckne5aPA0aQ", // CNBC Television
	"UCial0fmkkrgU9UG3f0LxzGw", // Bloomberg Technology
	"UCzUV5283-l5cJR6gwbPq8Kw", // The Plain Bagel
	"UCK-4XiD3Rx7M1Jd7sPQX9-w", // Two Cents PBS
}

// Config configures the video source.
type Config struct {
	// APIKey enables live search. Empty falls back to channel feeds.
	APIKey     string
	Query      string
	MaxResults int64
	Channels   []string

	// Endpoint overrides the Data API base URL.
	Endpoint string
	// FeedBaseURL overrides the channel feed URL prefix.
	FeedBaseURL string
}

// Source fetches video listings.
type Source struct {
	client *fetch.Client
	cfg    Config
}

// New creates a YouTube source. Zero config values use the defaults.
func New(client *fetch.Client, cfg Config) *Source {
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if len(cfg.Channels) == 0 {
		cfg.Channels = DefaultChannels
	}
	if cfg.FeedBaseURL == "" {
		cfg.FeedBaseURL = channelFeedURL
	}
	return &Source{client: client, cfg: cfg}
}

func (s *Source) Name() string {
	return "youtube"
}

func (s *Source) Type() model.SourceType {
	return model.SourceYouTube
}

// Live reports whether the source performs a Data API search.
func (s *Source) Live() bool {
	return s.cfg.APIKey != ""
}

func (s *Source) Endpoints(feeds.Options) []string {
	if s.Live() {
		endpoint := s.cfg.Endpoint
		if endpoint == "" {
			endpoint = "https://youtube.googleapis.com/"
		}
		return []string{endpoint + "youtube/v3/search?q=" + url.QueryEscape(s.cfg.Query)}
	}
	urls := make([]string, len(s.cfg.Channels))
	for i, id := range s.cfg.Channels {
		urls[i] = s.cfg.FeedBaseURL + id
	}
	return urls
}

func (s *Source) Fetch(ctx context.Context, opts feeds.Options) ([]model.RawItem, error) {
	if s.Live() {
		return s.search(ctx)
	}
	return feeds.Gather(ctx, s.Endpoints(opts), func(ctx context.Context, u string) ([]model.RawItem, error) {
		return s.client.FeedItems(ctx, u, fetch.FeedOptions{
			Label:  "youtube",
			Source: model.SourceYouTube,
		})
	})
}

func (s *Source) search(ctx context.Context) ([]model.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.client.Timeout())
	defer cancel()

	// A supplied HTTP client makes the SDK ignore WithAPIKey, so the key
	// travels as a query param set by the shared client's transport.
	opts := []option.ClientOption{
		option.WithHTTPClient(s.client.SDKClient(map[string]string{"key": s.cfg.APIKey})),
	}
	if s.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.cfg.Endpoint))
	}
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(s.cfg.Query).
		MaxResults(s.cfg.MaxResults).
		Order("date").
		Type("video").
		RelevanceLanguage("en").
		RegionCode("US").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: search: %w", err)
	}

	return searchItems(resp), nil
}

// searchItems maps search results to raw items, skipping results
// without a video ID or title.
func searchItems(resp *yt.SearchListResponse) []model.RawItem {
	if resp == nil {
		return nil
	}
	items := make([]model.RawItem, 0, len(resp.Items))
	for _, r := range resp.Items {
		if r == nil || r.Id == nil || r.Id.VideoId == "" || r.Snippet == nil {
			continue
		}
		title := fetch.CleanTitle(r.Snippet.Title)
		if title == "" {
			continue
		}
		item := model.RawItem{
			ID:     "youtube:" + r.Id.VideoId,
			Title:  title,
			URL:    fetch.NormalizeURL(watchURL + r.Id.VideoId),
			Source: model.SourceYouTube,
			Author: r.Snippet.ChannelTitle,
		}
		if t, err := time.Parse(time.RFC3339, r.Snippet.PublishedAt); err == nil {
			item.PublishedAt = model.Time(t)
		}
		items = append(items, item)
	}
	return items
}
