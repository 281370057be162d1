package activityrepo

import "errors"

var (
	ErrNotFound      = errors.New("activity not found")
	ErrAlreadyExists = errors.New("activity already exists")
)
