package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

type queryService struct {
	store  AlertStore
	stats  StatsStore
	cache  ActiveAlertCache
	logger *slog.Logger
}

func NewQueryService(store AlertStore, stats StatsStore, cache ActiveAlertCache, logger *slog.Logger) QueryService {
	return &queryService{store: store, stats: stats, cache: cache, logger: logger}
}

func (s *queryService) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	return s.store.Get(ctx, id)
}

// Find returns matches most-recent-first. An empty filter returns everything.
func (s *queryService) Find(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error) {
	return s.store.List(ctx, filter)
}

// Active serves the dashboard working set through the cache when possible.
// Cache failures degrade to a store read; they are never surfaced.
func (s *queryService) Active(ctx context.Context) ([]*domain.Alert, error) {
	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("active cache read failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	pending := domain.AlertPending
	responding := domain.AlertResponding

	out, err := s.store.List(ctx, domain.AlertFilter{Status: &pending})
	if err != nil {
		return nil, err
	}
	active, err := s.store.List(ctx, domain.AlertFilter{Status: &responding})
	if err != nil {
		return nil, err
	}
	out = mergeMostRecentFirst(out, active)

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, out); err != nil {
			s.logger.Warn("active cache write failed", slog.Any("error", err))
		}
	}
	return out, nil
}

func (s *queryService) Stats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error) {
	minutes := req.Minutes
	if minutes <= 0 {
		minutes = 60
	}
	since := time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
	return s.stats.CountSince(ctx, since)
}

// mergeMostRecentFirst merges two lists already sorted newest-first.
func mergeMostRecentFirst(a, b []*domain.Alert) []*domain.Alert {
	out := make([]*domain.Alert, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].CreatedAt.After(b[j].CreatedAt) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
