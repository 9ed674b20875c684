package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

// ContactSource is an in-memory user contact book for tests and local mode.
type ContactSource struct {
	mu       sync.RWMutex
	contacts map[uuid.UUID][]domain.Contact
}

func NewContactSource() *ContactSource {
	return &ContactSource{contacts: make(map[uuid.UUID][]domain.Contact)}
}

func (s *ContactSource) SetContacts(userID uuid.UUID, contacts []domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[userID] = append([]domain.Contact(nil), contacts...)
}

// Contacts returns a copy; an unknown user simply has no contacts.
func (s *ContactSource) Contacts(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Contact(nil), s.contacts[userID]...), nil
}
