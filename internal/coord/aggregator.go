// Package coord fans a pipeline run out to every source adapter.
//
// Each adapter runs in its own goroutine under its own deadline. A failed,
// panicking or slow adapter contributes zero items and never fails the
// run; Collect returns only after every adapter has settled.
package coord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/topicradar/internal/feeds"
	"github.com/abelbrown/topicradar/internal/logging"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/otel"
)

// DefaultSourceTimeout bounds one adapter, including all its requests.
const DefaultSourceTimeout = 20 * time.Second

// ErrSourceTimeout is reported for adapters that outlive their deadline.
var ErrSourceTimeout = errors.New("source timed out")

// Result is the outcome of one fan-out.
type Result struct {
	// Items from every successful adapter, in registration order.
	Items []model.RawItem
	// Reports has one entry per adapter, in registration order.
	Reports []model.SourceReport
}

// Aggregator runs all registered sources concurrently.
// The source list is immutable after construction.
type Aggregator struct {
	sources []feeds.Source
	timeout time.Duration
	limit   int
	logger  *log.Logger
	events  *otel.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSourceTimeout sets the per-adapter deadline.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithConcurrency caps adapters running at once. n <= 0 means unlimited.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) { a.limit = n }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// WithEvents sets the event sink.
func WithEvents(e *otel.Logger) Option {
	return func(a *Aggregator) { a.events = e }
}

// NewAggregator creates an Aggregator over a copy of sources.
func NewAggregator(sources []feeds.Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources: append([]feeds.Source(nil), sources...),
		timeout: DefaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.Or(a.logger).WithPrefix("coord")
	return a
}

// Sources returns the registered sources.
func (a *Aggregator) Sources() []feeds.Source {
	return append([]feeds.Source(nil), a.sources...)
}

type outcome struct {
	items []model.RawItem
	err   error
	dur   time.Duration
}

// Collect fetches every source and waits for all of them to settle.
func (a *Aggregator) Collect(ctx context.Context, opts feeds.Options) Result {
	outcomes := make([]outcome, len(a.sources))

	var g errgroup.Group
	if a.limit > 0 {
		g.SetLimit(a.limit)
	}
	for i, src := range a.sources {
		g.Go(func() error {
			outcomes[i] = a.fetchSource(ctx, src, opts)
			return nil // never fail the group - errors reported per-source
		})
	}
	_ = g.Wait()

	res := Result{Reports: make([]model.SourceReport, len(a.sources))}
	for i, src := range a.sources {
		o := outcomes[i]
		report := model.SourceReport{
			Name:       src.Name(),
			Type:       src.Type(),
			DurationMs: o.dur.Milliseconds(),
		}
		if o.err != nil {
			report.Error = o.err.Error()
		} else {
			report.Items = len(o.items)
			res.Items = append(res.Items, o.items...)
		}
		res.Reports[i] = report
	}
	return res
}

// fetchSource runs one adapter under its deadline. The adapter runs in a
// separate goroutine so that one ignoring ctx still cannot hold up the run.
func (a *Aggregator) fetchSource(ctx context.Context, src feeds.Source, opts feeds.Options) outcome {
	start := time.Now()
	name := src.Name()

	if ctx.Err() != nil {
		return outcome{err: ctx.Err()}
	}

	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFetchStart, Comp: "coord", RunID: opts.RunID, Source: name})

	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("source %s panicked: %v", name, r)}
			}
		}()
		items, err := src.Fetch(fetchCtx, opts)
		done <- outcome{items: items, err: err}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-fetchCtx.Done():
		if ctx.Err() != nil {
			o.err = ctx.Err()
		} else {
			o.err = fmt.Errorf("%w after %s", ErrSourceTimeout, a.timeout)
		}
	}
	o.dur = time.Since(start)

	if o.err != nil {
		o.items = nil
		a.logger.Warn("source failed", "source", name, "err", o.err, "dur", o.dur)
		a.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindFetchError, Comp: "coord", RunID: opts.RunID, Source: name, Err: o.err.Error(), Dur: o.dur})
		return o
	}

	a.logger.Debug("source done", "source", name, "items", len(o.items), "dur", o.dur)
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchComplete, Comp: "coord", RunID: opts.RunID, Source: name, Count: len(o.items), Dur: o.dur})
	return o
}
