package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

type locationTrackerService struct {
	store  AlertStore
	logger *slog.Logger
}

func NewLocationTrackerService(store AlertStore, logger *slog.Logger) LocationService {
	return &locationTrackerService{store: store, logger: logger}
}

// AppendLocation accepts samples in every lifecycle state, resolved and
// cancelled included; trailing samples matter for the audit trail. Samples
// older than the last stored one are rejected without touching history.
// A stored sample proves the device is alive, so it also restores Online
// after a presence sweep or an explicit offline call.
func (s *locationTrackerService) AppendLocation(ctx context.Context, id uuid.UUID, req domain.AppendLocationRequest) (*domain.Alert, error) {
	const op = "service.Location.AppendLocation"

	sample := domain.LocationSample{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timestamp: req.Timestamp,
		Accuracy:  req.Accuracy,
	}
	if sample.Latitude < -90 || sample.Latitude > 90 ||
		sample.Longitude < -180 || sample.Longitude > 180 {
		return nil, fmt.Errorf("%s: lat=%v lng=%v: %w", op, sample.Latitude, sample.Longitude, e.ErrInvalidLocation)
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now().UTC()
	}

	alert, err := s.store.Update(ctx, id, func(a *domain.Alert) error {
		if n := len(a.LocationHistory); n > 0 {
			last := a.LocationHistory[n-1].Timestamp
			if sample.Timestamp.Before(last) {
				return fmt.Errorf("%s: sample %s before last %s: %w",
					op, sample.Timestamp.Format(time.RFC3339Nano), last.Format(time.RFC3339Nano), e.ErrStaleLocation)
			}
		}
		a.LocationHistory = append(a.LocationHistory, sample)
		a.Location.Latitude = sample.Latitude
		a.Location.Longitude = sample.Longitude
		a.Location.Accuracy = sample.Accuracy
		a.LastLocationAt = sample.Timestamp
		a.Online = true
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("location appended",
		slog.String("id", id.String()),
		slog.Float64("lat", sample.Latitude),
		slog.Float64("lng", sample.Longitude),
	)
	return alert, nil
}

// SetPresence flips the liveness flag. Purely informational; it never moves
// the lifecycle.
func (s *locationTrackerService) SetPresence(ctx context.Context, id uuid.UUID, online bool) (*domain.Alert, error) {
	alert, err := s.store.Update(ctx, id, func(a *domain.Alert) error {
		a.Online = online
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("presence updated", slog.String("id", id.String()), slog.Bool("online", online))
	return alert, nil
}
