// Package feeds defines the contract every source adapter implements and
// the fan-out helper adapters with several endpoints share.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/topicradar/internal/model"
)

// Options is the per-run configuration handed to every adapter.
type Options struct {
	Regions []model.Region
	Now     time.Time
	// RunID correlates logs and events of one pipeline run.
	RunID string
}

// Source is the interface all source adapters implement.
type Source interface {
	// Name returns a short stable name ("reddit", "finance-rss").
	Name() string

	// Type returns the source kind stamped on produced items.
	Type() model.SourceType

	// Fetch retrieves the latest items. Implementations bound their own
	// network calls and honour ctx cancellation.
	Fetch(ctx context.Context, opts Options) ([]model.RawItem, error)
}

// Describer is implemented by adapters that can list their endpoints.
type Describer interface {
	Endpoints(opts Options) []string
}

// Gather calls fn for every endpoint at once and flattens the results in
// endpoint order. All requests start together, so an adapter finishes
// within one request timeout however many endpoints it has. Failed
// endpoints contribute nothing; an error is returned only when every
// endpoint failed.
func Gather[E any](ctx context.Context, endpoints []E, fn func(context.Context, E) ([]model.RawItem, error)) ([]model.RawItem, error) {
	if len(endpoints) == 0 {
		return nil, nil
	}

	results := make([][]model.RawItem, len(endpoints))
	errs := make([]error, len(endpoints))

	var g errgroup.Group
	for i, ep := range endpoints {
		g.Go(func() error {
			results[i], errs[i] = fn(ctx, ep)
			return nil // never fail the group - errors collected per endpoint
		})
	}
	_ = g.Wait()

	var (
		items  []model.RawItem
		failed []error
	)
	for i := range endpoints {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		items = append(items, results[i]...)
	}

	if len(failed) == len(endpoints) {
		return nil, fmt.Errorf("all %d endpoints failed: %w", len(endpoints), errors.Join(failed...))
	}
	return items, nil
}
