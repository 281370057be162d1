package studentrepo

import (
	"context"
	"time"

	"github.com/klxtra/activities-api/internal/domain"
)

// StudentProfile is the persistence shape used by the student repository.
// It is an internal record, not an HTTP DTO.
type StudentProfile struct {
	Subject domain.SubjectID

	Name  string
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted student profiles.
//
// Result ordering expectations:
//   - ListAll returns results ordered by Name ascending (case-insensitive),
//     subject as tiebreaker, to keep behavior deterministic.
type Repository interface {
	// Upsert merge-writes the profile keyed by subject using last-write-wins
	// semantics. All provided fields, including CreatedAt, are written on
	// every call.
	Upsert(ctx context.Context, p StudentProfile) error

	GetBySubject(ctx context.Context, subject domain.SubjectID) (StudentProfile, error)

	// ListAll performs a full collection scan. No pagination.
	ListAll(ctx context.Context) ([]StudentProfile, error)
}
