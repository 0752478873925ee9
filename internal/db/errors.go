package db

import "errors"

// ErrEmailTaken is returned when an insert collides with an existing email.
var ErrEmailTaken = errors.New("email already registered")
