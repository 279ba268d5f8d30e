package store

import "errors"

// Sentinel errors shared by the storage layer and its callers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
