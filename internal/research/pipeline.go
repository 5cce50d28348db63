// Package research runs the topic research pipeline: collect raw items
// from every source, normalise, cluster, score, enrich and rank them.
package research

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abelbrown/topicradar/internal/coord"
	"github.com/abelbrown/topicradar/internal/correlation"
	"github.com/abelbrown/topicradar/internal/enrich"
	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/filter"
	"github.com/abelbrown/topicradar/internal/logging"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/otel"
	"github.com/abelbrown/topicradar/internal/ranking"
)

// Collector gathers raw items from all sources. *coord.Aggregator
// implements it.
type Collector interface {
	Collect(ctx context.Context, opts feeds.Options) coord.Result
}

// Options configures one run.
type Options struct {
	// Regions defaults to model.DefaultRegions when empty.
	Regions []model.Region
	// Now is the reference time for recency scoring; zero means time.Now.
	Now time.Time
}

// Pipeline is stateless between runs and safe for concurrent use.
type Pipeline struct {
	collector Collector
	logger    *log.Logger
	events    *otel.Logger
}

// New creates a Pipeline. logger and events may be nil.
func New(c Collector, logger *log.Logger, events *otel.Logger) *Pipeline {
	return &Pipeline{
		collector: c,
		logger:    logging.Or(logger).WithPrefix("research"),
		events:    events,
	}
}

// Run executes one research run. It returns either a complete response
// or an error, never a partial response. Source failures are not errors.
func (p *Pipeline) Run(ctx context.Context, opts Options) (resp *model.ResearchResponse, err error) {
	start := time.Now()
	now := opts.Now
	if now.IsZero() {
		now = start
	}
	regions := opts.Regions
	if len(regions) == 0 {
		regions = append([]model.Region(nil), model.DefaultRegions...)
	}
	runID := uuid.NewString()

	p.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindPipelineStart, Comp: "research", RunID: runID,
		Extra: map[string]any{"regions": model.RegionStrings(regions)}})

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panicked", "run", runID, "panic", r, "stack", string(debug.Stack()))
			resp, err = nil, fmt.Errorf("research pipeline: %v", r)
		}
		if err != nil {
			p.events.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindPipelineError, Comp: "research", RunID: runID,
				Err: err.Error(), Dur: time.Since(start)})
		}
	}()

	collected := p.collector.Collect(ctx, feeds.Options{Regions: regions, Now: now, RunID: runID})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("research pipeline: %w", err)
	}

	unique := filter.Normalize(collected.Items)
	topics := BuildTopics(unique, now)
	elapsed := time.Since(start)

	resp = &model.ResearchResponse{
		GeneratedAt: model.FormatTimestamp(now),
		Regions:     regions,
		Topics:      topics,
		Meta: model.Meta{
			TotalRawItems: len(unique),
			UniqueTopics:  len(topics),
			GenerationMs:  elapsed.Milliseconds(),
			RunID:         runID,
			Sources:       collected.Reports,
		},
	}

	p.logger.Info("research complete", "run", runID, "raw", len(collected.Items), "unique", len(unique),
		"topics", len(topics), "dur", elapsed)
	p.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindPipelineComplete, Comp: "research", RunID: runID,
		Count: len(topics), Dur: elapsed})
	return resp, nil
}

// BuildTopics clusters normalised items, scores and enriches each cluster
// and returns the topics ranked by score. The result is never nil.
func BuildTopics(items []model.RawItem, now time.Time) []model.Topic {
	scorer := ranking.NewScorer(now)
	clusters := correlation.Build(items, scorer.Score)

	topics := make([]model.Topic, 0, len(clusters))
	for _, c := range clusters {
		n := c.Size()
		score := ranking.ClusterScore(c.ItemScore, n)

		topic := model.Topic{
			Topic:           c.Title,
			PotentialGrowth: ranking.GrowthFor(score, n),
			Score:           score,
			Sources:         c.Items,
		}
		enrich.Describe(c.Title).Apply(&topic)
		topics = append(topics, topic)
	}

	ranking.Rank(topics)
	return topics
}
