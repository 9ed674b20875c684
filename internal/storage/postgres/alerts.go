package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

// AlertStore persists alert records in the alerts table. Contact snapshots
// and location history live in jsonb columns; the record is the unit of
// atomicity, matching the domain contract.
type AlertStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAlertStore(pool *pgxpool.Pool, logger *slog.Logger) *AlertStore {
	return &AlertStore{pool: pool, logger: logger}
}

const alertColumns = `
	id, category, description,
	latitude, longitude, address, accuracy,
	location_history, last_location_at, online,
	user_id, user_name, user_phone,
	contacts, contacts_missing,
	priority, status,
	responder_id, responder_name,
	response_time, resolved_time, notes,
	created_at, updated_at
`

func (s *AlertStore) Put(ctx context.Context, alert *domain.Alert) error {
	const op = "postgres.Alert.Put"

	history, contacts, err := marshalBlobs(alert)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
	`

	_, err = s.pool.Exec(ctx, query,
		alert.ID, alert.Category, alert.Description,
		alert.Location.Latitude, alert.Location.Longitude, alert.Location.Address, alert.Location.Accuracy,
		history, alert.LastLocationAt, alert.Online,
		alert.UserID, alert.UserName, alert.UserPhone,
		contacts, alert.ContactsMissing,
		alert.Priority, alert.Status,
		alert.ResponderID, alert.ResponderName,
		alert.ResponseTime, alert.ResolvedTime, alert.Notes,
		alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (s *AlertStore) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "postgres.Alert.Get"

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	alert, err := scanAlert(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		s.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	return alert, nil
}

// Update serializes concurrent mutation of one record with SELECT FOR UPDATE
// inside a transaction. The mutator sees the current row; if it fails the
// transaction rolls back and the row is untouched.
func (s *AlertStore) Update(ctx context.Context, id uuid.UUID, mutate func(*domain.Alert) error) (*domain.Alert, error) {
	const op = "postgres.Alert.Update"

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1 FOR UPDATE`

	alert, err := scanAlert(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		s.logger.Error("db select for update failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := mutate(alert); err != nil {
		return nil, err
	}

	// the contact snapshot is immutable after creation and is not rewritten
	history, err := json.Marshal(alert.LocationHistory)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	const update = `
		UPDATE alerts SET
			description = $2,
			latitude = $3, longitude = $4, address = $5, accuracy = $6,
			location_history = $7, last_location_at = $8, online = $9,
			contacts_missing = $10,
			priority = $11, status = $12,
			responder_id = $13, responder_name = $14,
			response_time = $15, resolved_time = $16, notes = $17,
			updated_at = $18
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, update,
		alert.ID,
		alert.Description,
		alert.Location.Latitude, alert.Location.Longitude, alert.Location.Address, alert.Location.Accuracy,
		history, alert.LastLocationAt, alert.Online,
		alert.ContactsMissing,
		alert.Priority, alert.Status,
		alert.ResponderID, alert.ResponderName,
		alert.ResponseTime, alert.ResolvedTime, alert.Notes,
		alert.UpdatedAt,
	); err != nil {
		s.logger.Error("db update failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return alert, nil
}

func (s *AlertStore) List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error) {
	const op = "postgres.Alert.List"

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	args := make([]any, 0, 5)
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.Status != nil {
		query += ` AND status = ` + arg(*filter.Status)
	}
	if filter.Category != nil {
		query += ` AND category = ` + arg(*filter.Category)
	}
	if filter.Since != nil {
		query += ` AND created_at >= ` + arg(*filter.Since)
	}
	if filter.UserID != nil {
		query += ` AND user_id = ` + arg(*filter.UserID)
	}
	if filter.ResponderID != nil {
		query += ` AND responder_id = ` + arg(*filter.ResponderID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	// both stores hand back a non-nil slice so an empty result encodes as []
	alerts := make([]*domain.Alert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			s.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return alerts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var (
		a        domain.Alert
		history  []byte
		contacts []byte
	)
	if err := row.Scan(
		&a.ID, &a.Category, &a.Description,
		&a.Location.Latitude, &a.Location.Longitude, &a.Location.Address, &a.Location.Accuracy,
		&history, &a.LastLocationAt, &a.Online,
		&a.UserID, &a.UserName, &a.UserPhone,
		&contacts, &a.ContactsMissing,
		&a.Priority, &a.Status,
		&a.ResponderID, &a.ResponderName,
		&a.ResponseTime, &a.ResolvedTime, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &a.LocationHistory); err != nil {
			return nil, err
		}
	}
	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &a.Contacts); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func marshalBlobs(a *domain.Alert) (history, contacts []byte, err error) {
	history, err = json.Marshal(a.LocationHistory)
	if err != nil {
		return nil, nil, err
	}
	contacts, err = json.Marshal(a.Contacts)
	if err != nil {
		return nil, nil, err
	}
	return history, contacts, nil
}
