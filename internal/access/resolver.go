// Package access decides what a user may do with a list. Every check
// re-reads the database: shares can be revoked between requests, so
// resolutions are never cached.
package access

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"larder/internal/store"
)

// ErrNotAuthorized means the list exists but the caller lacks the required
// permission level.
var ErrNotAuthorized = errors.New("not authorized")

// Level is a user's relationship to a list, ordered by capability.
type Level int

const (
	LevelNone Level = iota
	LevelSharedRead
	LevelSharedWrite
	LevelOwner
)

type Resolver struct {
	db *sql.DB
}

func NewResolver(db *sql.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the user's level on the list. A missing list is
// store.ErrNotFound; a list the user has no relation to resolves to
// LevelNone without error.
func (r *Resolver) Resolve(user, list uuid.UUID) (Level, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(`SELECT owner FROM lists WHERE id = ?`, list).Scan(&owner)
	if err == sql.ErrNoRows {
		return LevelNone, store.ErrNotFound
	}
	if err != nil {
		return LevelNone, fmt.Errorf("resolve owner: %w", err)
	}
	if owner == user {
		return LevelOwner, nil
	}

	var readonly int
	err = r.db.QueryRow(`SELECT readonly FROM list_sharing WHERE list = ? AND shared = ?`, list, user).Scan(&readonly)
	if err == sql.ErrNoRows {
		return LevelNone, nil
	}
	if err != nil {
		return LevelNone, fmt.Errorf("resolve share: %w", err)
	}
	if readonly != 0 {
		return LevelSharedRead, nil
	}
	return LevelSharedWrite, nil
}

// RequireAccess fails unless the user can read the list, or write it when
// needsWrite is set. A readonly share does not satisfy a write requirement.
func (r *Resolver) RequireAccess(user, list uuid.UUID, needsWrite bool) error {
	lvl, err := r.Resolve(user, list)
	if err != nil {
		return err
	}
	switch {
	case lvl == LevelNone:
		return ErrNotAuthorized
	case needsWrite && lvl == LevelSharedRead:
		return ErrNotAuthorized
	}
	return nil
}

// RequireOwner fails unless the user owns the list. Deletion, visibility
// toggling and share management are owner-only.
func (r *Resolver) RequireOwner(user, list uuid.UUID) error {
	lvl, err := r.Resolve(user, list)
	if err != nil {
		return err
	}
	if lvl != LevelOwner {
		return ErrNotAuthorized
	}
	return nil
}
