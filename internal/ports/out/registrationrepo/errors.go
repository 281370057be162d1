package registrationrepo

import "errors"

var (
	ErrAlreadyExists = errors.New("registration already exists")
)
