package memory

import (
	"context"
	"time"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

func (s *AlertStore) CountSince(ctx context.Context, since time.Time) (*domain.AlertStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &domain.AlertStats{
		ByStatus:   make(map[domain.AlertStatus]int64),
		ByCategory: make(map[domain.AlertCategory]int64),
	}
	for _, a := range s.alerts {
		if a.CreatedAt.Before(since) {
			continue
		}
		stats.Total++
		stats.ByStatus[a.Status]++
		stats.ByCategory[a.Category]++
	}
	return stats, nil
}
