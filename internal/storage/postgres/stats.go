package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

type Stats struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *Stats {
	return &Stats{pool: pool, logger: logger}
}

func (s *Stats) CountSince(ctx context.Context, since time.Time) (*domain.AlertStats, error) {
	const op = "postgres.Stats.CountSince"

	const query = `
		SELECT status, category, COUNT(*)
		FROM alerts
		WHERE created_at >= $1
		GROUP BY status, category
	`

	rows, err := s.pool.Query(ctx, query, since)
	if err != nil {
		s.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	stats := &domain.AlertStats{
		ByStatus:   make(map[domain.AlertStatus]int64),
		ByCategory: make(map[domain.AlertCategory]int64),
	}
	for rows.Next() {
		var (
			status   domain.AlertStatus
			category domain.AlertCategory
			count    int64
		)
		if err := rows.Scan(&status, &category, &count); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByCategory[category] += count
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return stats, nil
}
