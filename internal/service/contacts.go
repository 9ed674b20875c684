package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

type contactResolverService struct {
	source ContactSource
}

func NewContactResolverService(source ContactSource) ContactService {
	return &contactResolverService{source: source}
}

// ResolveContacts is a pure read-and-copy: no dedup, no phone validation.
// Zero contacts is an empty list, not an error.
func (s *contactResolverService) ResolveContacts(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error) {
	const op = "service.Contacts.ResolveContacts"

	contacts, err := s.source.Contacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]domain.Contact, len(contacts))
	copy(out, contacts)
	return out, nil
}
