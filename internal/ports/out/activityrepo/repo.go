package activityrepo

import (
	"context"
	"time"

	"github.com/klxtra/activities-api/internal/domain"
)

// Activity is the persistence shape used by the activity repository.
// It is not an HTTP DTO.
type Activity struct {
	ID domain.ActivityID

	Title string
	Type  domain.ActivityType

	// Date is an ISO "YYYY-MM-DD" string; empty means unset.
	Date string

	Location    string
	Description string

	CreatedAt time.Time
}

// Repository provides access to persisted activities. Activities are
// append-only: there is no update or delete.
//
// Result ordering expectations:
//   - ListAll returns results ordered by CreatedAt ascending, ID as
//     tiebreaker. View-specific sorting happens in the application layer.
type Repository interface {
	Create(ctx context.Context, a Activity) error

	GetByID(ctx context.Context, id domain.ActivityID) (Activity, error)

	// ListAll performs a full collection scan. No pagination.
	ListAll(ctx context.Context) ([]Activity, error)
}
