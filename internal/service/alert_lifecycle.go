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

type alertLifecycleService struct {
	store    AlertStore
	contacts ContactSource
	queue    NotifyQueue
	cache    ActiveAlertCache
	logger   *slog.Logger
}

func NewAlertLifecycleService(
	store AlertStore,
	contacts ContactSource,
	queue NotifyQueue,
	cache ActiveAlertCache,
	logger *slog.Logger,
) LifecycleService {
	return &alertLifecycleService{
		store:    store,
		contacts: contacts,
		queue:    queue,
		cache:    cache,
		logger:   logger,
	}
}

// Create validates the request, snapshots the reporter's contacts, persists
// the new alert in pending and hands a notification payload to the queue.
// An empty contact list does not block creation; the record is flagged so
// the client can warn the reporter.
func (s *alertLifecycleService) Create(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error) {
	const op = "service.Lifecycle.Create"

	if !req.Category.Valid() {
		return nil, fmt.Errorf("%s: category %q: %w", op, req.Category, e.ErrInvalidCategory)
	}
	loc := domain.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
		Accuracy:  req.Accuracy,
	}
	if !loc.InRange() {
		return nil, fmt.Errorf("%s: lat=%v lng=%v: %w", op, req.Latitude, req.Longitude, e.ErrInvalidLocation)
	}
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%s: empty user_id: %w", op, e.ErrInvalidInput)
	}

	snapshot, err := s.contacts.Contacts(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: resolve contacts: %w", op, err)
	}
	for i := range snapshot {
		if snapshot[i].Relationship == "" {
			snapshot[i].Relationship = "Other"
		}
	}

	now := time.Now().UTC()
	alert := &domain.Alert{
		ID:          uuid.New(),
		Category:    req.Category,
		Description: req.Description,
		Location:    loc,
		LocationHistory: []domain.LocationSample{{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Timestamp: now,
			Accuracy:  req.Accuracy,
		}},
		LastLocationAt:  now,
		Online:          true,
		UserID:          req.UserID,
		UserName:        req.UserName,
		UserPhone:       req.UserPhone,
		Contacts:        snapshot,
		ContactsMissing: len(snapshot) == 0,
		Priority:        domain.PriorityMedium,
		Status:          domain.AlertPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if alert.Category == domain.CategorySOS {
		alert.Priority = domain.PriorityHigh
	}
	if alert.Description == "" {
		alert.Description = fmt.Sprintf("%s emergency reported", alert.Category)
	}
	if alert.Location.Address == "" {
		alert.Location.Address = "Location not specified"
	}
	if alert.UserName == "" {
		alert.UserName = "Anonymous"
	}
	if alert.UserPhone == "" {
		alert.UserPhone = "Not provided"
	}

	if err := s.store.Put(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.Info("alert created",
		slog.String("id", alert.ID.String()),
		slog.String("category", string(alert.Category)),
		slog.String("priority", string(alert.Priority)),
		slog.Int("contacts", len(alert.Contacts)),
	)

	if s.queue != nil {
		payload := domain.NotificationPayload{
			AlertID:   alert.ID,
			Category:  alert.Category,
			Priority:  alert.Priority,
			Location:  alert.Location,
			UserName:  alert.UserName,
			UserPhone: alert.UserPhone,
			Contacts:  alert.Contacts,
			CreatedAt: alert.CreatedAt,
		}
		if err := s.queue.Enqueue(ctx, payload); err != nil {
			s.logger.Error("enqueue notification failed",
				slog.String("id", alert.ID.String()), slog.Any("error", err))
		}
	}
	s.invalidateCache(ctx)

	return alert, nil
}

// Acknowledge claims a pending alert for a responder. The store serializes
// the mutator, so of N concurrent calls exactly one finds pending.
func (s *alertLifecycleService) Acknowledge(ctx context.Context, id uuid.UUID, req domain.AcknowledgeRequest) (*domain.Alert, error) {
	const op = "service.Lifecycle.Acknowledge"

	if req.ResponderID == uuid.Nil || req.ResponderName == "" {
		return nil, fmt.Errorf("%s: responder identity required: %w", op, e.ErrInvalidInput)
	}

	alert, err := s.store.Update(ctx, id, func(a *domain.Alert) error {
		if a.Status != domain.AlertPending {
			return fmt.Errorf("%s: %s from %s: %w", op, domain.AlertResponding, a.Status, e.ErrInvalidTransition)
		}
		now := time.Now().UTC()
		rid := req.ResponderID
		a.Status = domain.AlertResponding
		a.ResponderID = &rid
		a.ResponderName = req.ResponderName
		a.ResponseTime = &now
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("alert acknowledged",
		slog.String("id", id.String()),
		slog.String("responder", req.ResponderName),
	)
	s.invalidateCache(ctx)
	return alert, nil
}

// Resolve closes an alert. Direct resolution from pending is permitted; in
// that case ResponseTime and ResolvedTime are the same instant.
func (s *alertLifecycleService) Resolve(ctx context.Context, id uuid.UUID, req domain.ResolveRequest) (*domain.Alert, error) {
	const op = "service.Lifecycle.Resolve"

	alert, err := s.store.Update(ctx, id, func(a *domain.Alert) error {
		if a.Status != domain.AlertPending && a.Status != domain.AlertResponding {
			return fmt.Errorf("%s: %s from %s: %w", op, domain.AlertResolved, a.Status, e.ErrInvalidTransition)
		}
		now := time.Now().UTC()
		if a.ResponseTime == nil {
			a.ResponseTime = &now
		}
		a.Status = domain.AlertResolved
		a.ResolvedTime = &now
		a.Notes = req.Notes
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("alert resolved", slog.String("id", id.String()))
	s.invalidateCache(ctx)
	return alert, nil
}

// Cancel is the false-alarm exit, reachable from pending and responding.
func (s *alertLifecycleService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "service.Lifecycle.Cancel"

	alert, err := s.store.Update(ctx, id, func(a *domain.Alert) error {
		if a.Status != domain.AlertPending && a.Status != domain.AlertResponding {
			return fmt.Errorf("%s: %s from %s: %w", op, domain.AlertCancelled, a.Status, e.ErrInvalidTransition)
		}
		now := time.Now().UTC()
		a.Status = domain.AlertCancelled
		a.ResolvedTime = &now
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("alert cancelled", slog.String("id", id.String()))
	s.invalidateCache(ctx)
	return alert, nil
}

// Escalate raises priority. Downgrades are denied, as is any priority change
// on a terminal alert.
func (s *alertLifecycleService) Escalate(ctx context.Context, id uuid.UUID, req domain.EscalateRequest) (*domain.Alert, error) {
	const op = "service.Lifecycle.Escalate"

	if !req.Priority.Valid() {
		return nil, fmt.Errorf("%s: priority %q: %w", op, req.Priority, e.ErrInvalidInput)
	}

	alert, err := s.store.Update(ctx, id, func(a *domain.Alert) error {
		if a.Status.Terminal() {
			return fmt.Errorf("%s: alert is %s: %w", op, a.Status, e.ErrInvalidTransition)
		}
		if req.Priority.Rank() < a.Priority.Rank() {
			return fmt.Errorf("%s: %s -> %s: %w", op, a.Priority, req.Priority, e.ErrPriorityDowngrade)
		}
		a.Priority = req.Priority
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("alert priority escalated",
		slog.String("id", id.String()),
		slog.String("priority", string(req.Priority)),
	)
	s.invalidateCache(ctx)
	return alert, nil
}

func (s *alertLifecycleService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("active cache invalidate failed", slog.Any("error", err))
	}
}
