package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// AlertStore is the persistence contract the services operate through.
// Update must serialize concurrent mutation of one record and must leave the
// record untouched when the mutator fails.
type AlertStore interface {
	Put(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*domain.Alert) error) (*domain.Alert, error)
	List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error)
}

// ContactSource reads a user's current emergency contacts.
type ContactSource interface {
	Contacts(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error)
}

// NotifyQueue hands new-alert payloads to the external notifier.
type NotifyQueue interface {
	Enqueue(ctx context.Context, payload domain.NotificationPayload) error
}

// ActiveAlertCache fronts the responder dashboard's working set.
type ActiveAlertCache interface {
	GetActive(ctx context.Context) ([]*domain.Alert, error)
	SetActive(ctx context.Context, alerts []*domain.Alert) error
	Invalidate(ctx context.Context) error
}

// StatsStore aggregates alert counts over a trailing window.
type StatsStore interface {
	CountSince(ctx context.Context, since time.Time) (*domain.AlertStats, error)
}

// LifecycleService drives an alert through its state machine.
type LifecycleService interface {
	Create(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error)
	Acknowledge(ctx context.Context, id uuid.UUID, req domain.AcknowledgeRequest) (*domain.Alert, error)
	Resolve(ctx context.Context, id uuid.UUID, req domain.ResolveRequest) (*domain.Alert, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Escalate(ctx context.Context, id uuid.UUID, req domain.EscalateRequest) (*domain.Alert, error)
}

// LocationService appends samples and flips the reporter liveness flag.
type LocationService interface {
	AppendLocation(ctx context.Context, id uuid.UUID, req domain.AppendLocationRequest) (*domain.Alert, error)
	SetPresence(ctx context.Context, id uuid.UUID, online bool) (*domain.Alert, error)
}

// ContactService exposes the read-only fan-out resolver.
type ContactService interface {
	ResolveContacts(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error)
}

// QueryService answers responder-facing reads.
type QueryService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Find(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error)
	Active(ctx context.Context) ([]*domain.Alert, error)
	Stats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error)
}

type Service struct {
	Lifecycle LifecycleService
	Location  LocationService
	Contacts  ContactService
	Query     QueryService
}

func NewService(
	lifecycle LifecycleService,
	location LocationService,
	contacts ContactService,
	query QueryService,
) *Service {
	return &Service{
		Lifecycle: lifecycle,
		Location:  location,
		Contacts:  contacts,
		Query:     query,
	}
}
