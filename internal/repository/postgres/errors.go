package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound        = errors.New("row not found")
	ErrAlreadyExists   = errors.New("row already exists")
	ErrNoActiveSession = errors.New("No active check-in found!")
	ErrAlreadyOpen     = errors.New("Already checked in!")
)
