package repository

import "errors"

var (
	// ErrNotFound indicates the requested account does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates the id or username is already taken.
	ErrConflict = errors.New("repository: conflict")
	// ErrCapacityExceeded indicates the directory is full.
	ErrCapacityExceeded = errors.New("repository: capacity exceeded")
)
