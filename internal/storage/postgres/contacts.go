package postgres

import (
	"log/slog"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

// ContactSource reads a user's emergency contacts. The lifecycle engine only
// ever reads here; contact management belongs to the account service.
type ContactSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewContactSource(pool *pgxpool.Pool, logger *slog.Logger) *ContactSource {
	return &ContactSource{pool: pool, logger: logger}
}

func (s *ContactSource) Contacts(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error) {
	const op = "postgres.Contacts.Contacts"

	const query = `
		SELECT name, phone, relationship, is_primary
		FROM user_contacts
		WHERE user_id = $1
		ORDER BY position ASC
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		s.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.Name, &c.Phone, &c.Relationship, &c.Primary); err != nil {
			s.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return contacts, nil
}
