// Package ranking scores items and clusters and orders the final topics.
package ranking

import (
	"math"
	"time"

	"github.com/abelbrown/topicradar/internal/model"
)

// Context carries run-wide inputs to rankers.
type Context struct {
	Now time.Time
}

// Ranker scores a single item.
type Ranker interface {
	Name() string
	Score(item model.RawItem, ctx Context) float64
}

// missingAgeHours is the age assumed for items without a usable timestamp.
const missingAgeHours = 9999

// RecencyRanker buckets items by age in hours.
type RecencyRanker struct{}

func (RecencyRanker) Name() string { return "recency" }

func (RecencyRanker) Score(item model.RawItem, ctx Context) float64 {
	return RecencyWeight(AgeHours(item.PublishedAt, ctx.Now))
}

// AgeHours returns hours elapsed between published and now, or 9999 when
// published is nil. Future timestamps yield a negative age and so count
// as fresh.
func AgeHours(published *time.Time, now time.Time) float64 {
	if published == nil || published.IsZero() {
		return missingAgeHours
	}
	return now.Sub(*published).Hours()
}

// RecencyWeight is a non-increasing step function of age.
func RecencyWeight(hours float64) float64 {
	switch {
	case hours < 6:
		return 1.0
	case hours < 24:
		return 0.8
	case hours < 72:
		return 0.5
	case hours < 168:
		return 0.3
	default:
		return 0.1
	}
}

// SourceWeightRanker weights items by source kind and popularity signals.
type SourceWeightRanker struct{}

func (SourceWeightRanker) Name() string { return "source_weight" }

func (SourceWeightRanker) Score(item model.RawItem, _ Context) float64 {
	switch item.Source {
	case model.SourceReddit:
		return 1.2 +
			math.Min(float64(item.ScoreValue())/500, 1) +
			math.Min(float64(item.CommentsValue())/200, 1)
	case model.SourceTrends:
		return 1.3
	case model.SourceYouTube:
		return 1.1 + math.Min(float64(item.ViewsValue())/50000, 1)
	case model.SourceNitter:
		return 0.9
	case model.SourceRSS:
		return 1.0
	default:
		return 1.0
	}
}

// Scorer multiplies the scores of its rankers.
type Scorer struct {
	Rankers []Ranker
	Ctx     Context
}

// NewScorer returns the standard source-weight × recency scorer.
func NewScorer(now time.Time) *Scorer {
	return &Scorer{
		Rankers: []Ranker{SourceWeightRanker{}, RecencyRanker{}},
		Ctx:     Context{Now: now},
	}
}

// Score returns the product of all ranker scores.
func (s *Scorer) Score(item model.RawItem) float64 {
	score := 1.0
	for _, r := range s.Rankers {
		score *= r.Score(item, s.Ctx)
	}
	return score
}
