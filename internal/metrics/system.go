package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/callqa/internal/calls"
	"github.com/JaimeStill/callqa/pkg/cache"
)

// System defines the public contract for evaluation metrics.
type System interface {
	Handler() *Handler

	// Summary aggregates every call matching filters.
	Summary(ctx context.Context, filters calls.Filters) (*Summary, error)

	// Ranking ranks the clinics or assistants of the calls matching filters.
	Ranking(ctx context.Context, filters calls.Filters, by Dimension) ([]Ranking, error)
}

type system struct {
	calls   calls.System
	cache   cache.System
	scoring Scoring
	logger  *slog.Logger
}

// New creates a metrics system that reads candidate calls through cs and
// caches computed results. Results are recomputed once the cache is invalidated.
func New(cs calls.System, c cache.System, scoring Scoring, logger *slog.Logger) System {
	return &system{
		calls:   cs,
		cache:   c,
		scoring: scoring,
		logger:  logger.With("system", "metrics"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Summary(ctx context.Context, filters calls.Filters) (*Summary, error) {
	return cached(ctx, s, "summary:"+filters.Key(), func() (*Summary, error) {
		candidates, err := s.calls.All(ctx, filters, nil)
		if err != nil {
			return nil, fmt.Errorf("load candidates: %w", err)
		}
		summary := Aggregate(candidates, s.scoring)
		return &summary, nil
	})
}

func (s *system) Ranking(ctx context.Context, filters calls.Filters, by Dimension) ([]Ranking, error) {
	key := fmt.Sprintf("ranking:%s:%s", by, filters.Key())

	return cached(ctx, s, key, func() ([]Ranking, error) {
		candidates, err := s.calls.All(ctx, filters, nil)
		if err != nil {
			return nil, fmt.Errorf("load candidates: %w", err)
		}
		return Rank(candidates, by), nil
	})
}

// cached returns the value stored at key, or computes and stores it under
// the generation the lookup saw. Cache failures are logged and never fail the
// request; after a failed lookup nothing is stored.
func cached[T any](ctx context.Context, s *system, key string, compute func() (T, error)) (T, error) {
	var v T

	slot, hit, err := s.cache.Get(ctx, key, &v)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return v, nil
	}

	v, err = compute()
	if err != nil || slot.Name == "" {
		return v, err
	}

	if err := s.cache.Set(ctx, slot, v); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return v, nil
}

func (d Dimension) String() string {
	if d == ByAssistant {
		return "assistant"
	}
	return "clinic"
}
