package studentrepo

import "errors"

var (
	// ErrNotFound indicates no profile exists for the requested subject.
	ErrNotFound = errors.New("student profile not found")
)
