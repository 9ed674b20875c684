package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

// AlertStore keeps alert records in process memory. It honors the same
// contract as the postgres store: Put rejects duplicate ids, Update applies
// a mutator under the store lock so per-record read-modify-write is
// serialized, and records are handed out as clones only.
//
// Used for tests and the data-free local mode; production wiring uses
// the postgres store.
type AlertStore struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]*domain.Alert
}

func NewAlertStore() *AlertStore {
	return &AlertStore{alerts: make(map[uuid.UUID]*domain.Alert)}
}

func (s *AlertStore) Put(ctx context.Context, alert *domain.Alert) error {
	const op = "memory.AlertStore.Put"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[alert.ID]; ok {
		return fmt.Errorf("%s: %w", op, e.ErrDuplicateID)
	}
	s.alerts[alert.ID] = alert.Clone()
	return nil
}

func (s *AlertStore) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "memory.AlertStore.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return a.Clone(), nil
}

// Update runs the mutator against a private clone and only installs the
// result when the mutator succeeds, so a failed call leaves the record
// untouched.
func (s *AlertStore) Update(ctx context.Context, id uuid.UUID, mutate func(*domain.Alert) error) (*domain.Alert, error) {
	const op = "memory.AlertStore.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	draft := a.Clone()
	if err := mutate(draft); err != nil {
		return nil, err
	}
	s.alerts[id] = draft
	return draft.Clone(), nil
}

func (s *AlertStore) List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if filter.Matches(a) {
			out = append(out, a.Clone())
		}
	}
	// most-recent-first, id as tiebreaker for deterministic tests
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}
