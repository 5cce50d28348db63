package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abelbrown/topicradar/internal/model"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestRecencyWeightSteps(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{0, 1.0},
		{5.9, 1.0},
		{6, 0.8},
		{23, 0.8},
		{24, 0.5},
		{71, 0.5},
		{72, 0.3},
		{167, 0.3},
		{168, 0.1},
		{9999, 0.1},
		{-5, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecencyWeight(tt.hours), "hours=%v", tt.hours)
	}

	assert.Greater(t, RecencyWeight(5), RecencyWeight(25))
	assert.Greater(t, RecencyWeight(25), RecencyWeight(200))
}

func TestAgeHoursMissing(t *testing.T) {
	assert.Equal(t, 9999.0, AgeHours(nil, now))
	zero := time.Time{}
	assert.Equal(t, 9999.0, AgeHours(&zero, now))
	assert.InDelta(t, 3.0, AgeHours(ago(3*time.Hour), now), 1e-9)
}

func TestSourceWeights(t *testing.T) {
	r := SourceWeightRanker{}
	ctx := Context{Now: now}

	tests := []struct {
		name string
		item model.RawItem
		want float64
	}{
		{"reddit no signals", model.RawItem{Source: model.SourceReddit}, 1.2},
		{"reddit partial", model.RawItem{Source: model.SourceReddit, Score: model.Int(250), CommentsCount: model.Int(50)}, 1.2 + 0.5 + 0.25},
		{"reddit capped", model.RawItem{Source: model.SourceReddit, Score: model.Int(5000), CommentsCount: model.Int(5000)}, 3.2},
		{"trends", model.RawItem{Source: model.SourceTrends}, 1.3},
		{"youtube no views", model.RawItem{Source: model.SourceYouTube}, 1.1},
		{"youtube capped", model.RawItem{Source: model.SourceYouTube, ViewsCount: model.Int(100000)}, 2.1},
		{"nitter", model.RawItem{Source: model.SourceNitter}, 0.9},
		{"rss", model.RawItem{Source: model.SourceRSS}, 1.0},
		{"unknown", model.RawItem{Source: "mastodon"}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Score(tt.item, ctx), 1e-9)
		})
	}
}

func TestScorerVideoScenario(t *testing.T) {
	item := model.RawItem{
		Source:      model.SourceYouTube,
		ViewsCount:  model.Int(100000),
		PublishedAt: ago(time.Hour),
	}
	assert.InDelta(t, 2.1, NewScorer(now).Score(item), 1e-9)
}

func TestScorerStaleUndated(t *testing.T) {
	item := model.RawItem{Source: model.SourceRSS}
	assert.InDelta(t, 0.1, NewScorer(now).Score(item), 1e-9)
}

func TestMentionBonus(t *testing.T) {
	assert.InDelta(t, 0.35, MentionBonus(1), 1e-9)
	assert.InDelta(t, 0.7, MentionBonus(2), 1e-9)
	assert.InDelta(t, 1.05, MentionBonus(3), 1e-9)
	assert.InDelta(t, 1.2, MentionBonus(4), 1e-9)
	assert.InDelta(t, 1.2, MentionBonus(100), 1e-9)
}

func TestClusterScoreMonotonic(t *testing.T) {
	prev := 0.0
	sum := 0.0
	for n := 1; n <= 10; n++ {
		sum += 0.1
		s := ClusterScore(sum, n)
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
}

func TestGrowthFor(t *testing.T) {
	tests := []struct {
		score float64
		n     int
		want  model.Growth
	}{
		{0.45, 1, model.GrowthLow},      // 0.85
		{1.1, 1, model.GrowthLow},       // 1.5
		{1.3, 1, model.GrowthMedium},    // 1.7
		{2.1, 1, model.GrowthHigh},      // 2.5
		{2.9, 1, model.GrowthExplosive}, // 3.3
		{1.5, 3, model.GrowthHigh},      // 2.7
		{2.5, 3, model.GrowthExplosive}, // 3.7
		{0, 0, model.GrowthLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GrowthFor(tt.score, tt.n), "score=%v n=%d", tt.score, tt.n)
	}
}

func TestGrowthBoundaryIsExclusive(t *testing.T) {
	// Exactly 2.4 is not above the High threshold.
	assert.Equal(t, model.GrowthMedium, GrowthFor(2.0, 1))
}

func TestRankStable(t *testing.T) {
	topics := []model.Topic{
		{Topic: "a", Score: 1},
		{Topic: "b", Score: 3},
		{Topic: "c", Score: 1},
		{Topic: "d", Score: 2},
		{Topic: "e", Score: 3},
	}
	Rank(topics)

	order := make([]string, len(topics))
	for i, tp := range topics {
		order[i] = tp.Topic
	}
	assert.Equal(t, []string{"b", "e", "d", "a", "c"}, order)
}
