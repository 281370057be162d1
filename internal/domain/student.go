package domain

import "time"

// StudentProfile is a denormalized record of a student identity, kept in sync
// on login via merge-writes keyed by subject. At most one profile exists per
// subject.
type StudentProfile struct {
	Subject SubjectID

	Name  string
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}
