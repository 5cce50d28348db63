// Package model holds the data types shared by every stage of the research
// pipeline: raw items produced by source adapters, the topics built from
// them, and the response handed back to the dashboard.
//
// Values in this package are produced once per run and never mutated after
// the stage that created them hands them on.
package model

import "time"

// SourceType identifies the kind of source an item came from.
// The string values are the wire values the dashboard expects.
type SourceType string

const (
	SourceReddit  SourceType = "reddit"        // social hot-lists
	SourceTrends  SourceType = "google_trends" // trending-search feeds
	SourceNitter  SourceType = "nitter"        // search-feed aggregator
	SourceRSS     SourceType = "rss"           // generic feed aggregator
	SourceYouTube SourceType = "youtube"       // video listings
)

// RawItem is one piece of content found by a source adapter.
//
// Identity for deduplication is (Source, ID): two sources may reuse the same
// ID token. Score, CommentsCount and ViewsCount are only meaningful for some
// source kinds; nil means the signal was not reported.
type RawItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Source        SourceType `json:"source"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Author        string     `json:"author,omitempty"`
	Score         *int       `json:"score,omitempty"`
	CommentsCount *int       `json:"commentsCount,omitempty"`
	ViewsCount    *int       `json:"viewsCount,omitempty"`
	Region        Region     `json:"region,omitempty"`
}

// Key returns the global deduplication key "source:id".
func (i RawItem) Key() string {
	return string(i.Source) + ":" + i.ID
}

// Int returns a pointer to n, for populating optional numeric signals.
func Int(n int) *int {
	return &n
}

// Time returns a pointer to t, or nil when t is the zero time.
func Time(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// valueOrZero dereferences an optional signal, treating nil as 0.
func valueOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// ScoreValue returns the upvote score, or 0 when absent.
func (i RawItem) ScoreValue() int { return valueOrZero(i.Score) }

// CommentsValue returns the comment count, or 0 when absent.
func (i RawItem) CommentsValue() int { return valueOrZero(i.CommentsCount) }

// ViewsValue returns the view count, or 0 when absent.
func (i RawItem) ViewsValue() int { return valueOrZero(i.ViewsCount) }
