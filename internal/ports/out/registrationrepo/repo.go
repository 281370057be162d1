package registrationrepo

import (
	"context"

	"github.com/klxtra/activities-api/internal/domain"
)

// Registration is the persistence shape used by the registration repository.
// It is not an HTTP DTO.
type Registration struct {
	ID domain.RegistrationID

	// ActivityID is an unenforced reference; legacy records may be empty.
	ActivityID domain.ActivityID

	StudentName string
	// StudentRoll is the free-text roll string the student typed at
	// registration time. Lookups match it byte-for-byte.
	StudentRoll string

	Status string

	RegisteredAt domain.Timestamp
}

// Repository provides access to persisted registrations. Registrations are
// append-only and carry no uniqueness constraint: the same student+activity
// pair may register multiple times.
//
// Result ordering expectations:
//   - ListAll and ListByRoll return results in insertion order, so that
//     application-layer stable sorts resolve ties deterministically.
type Repository interface {
	Create(ctx context.Context, r Registration) error

	// ListAll performs a full collection scan. No pagination.
	ListAll(ctx context.Context) ([]Registration, error)

	// ListByRoll is an equality filter pushdown on StudentRoll.
	ListByRoll(ctx context.Context, roll string) ([]Registration, error)
}
