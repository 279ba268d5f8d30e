package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"larder/internal/model"
)

// HistoryStore tracks which item names a user has added to a list, keyed
// case-insensitively, to drive name suggestions.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// NormalizeName folds an item name to its case-insensitive identity, so
// "Milk" and "milk" share one history row.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TouchTx upserts the (list, creator, name) row inside the caller's
// transaction, advancing last_used. It runs in the same atomic unit as the
// item insertion so history never drifts from the list contents.
func (s *HistoryStore) TouchTx(tx *sql.Tx, list, creator uuid.UUID, name string) error {
	_, err := tx.Exec(
		`INSERT INTO history (list, creator, name, last_used) VALUES (?, ?, ?, ?)
		 ON CONFLICT (list, creator, name) DO UPDATE SET last_used = excluded.last_used`,
		list, creator, NormalizeName(name), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("touch history: %w", err)
	}
	return nil
}

// Suggestions returns the caller's previously used item names on the list
// matching search, most recently used first.
func (s *HistoryStore) Suggestions(list, creator uuid.UUID, search string) ([]string, error) {
	pattern := "%" + NormalizeName(search) + "%"
	rows, err := s.db.Query(
		`SELECT name FROM history WHERE list = ? AND creator = ? AND name LIKE ?
		 ORDER BY last_used DESC`,
		list, creator, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("history suggestions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Get returns the history row for (list, creator, name), or nil if absent.
func (s *HistoryStore) Get(list, creator uuid.UUID, name string) (*model.HistoryEntry, error) {
	var e model.HistoryEntry
	err := s.db.QueryRow(
		`SELECT list, creator, name, last_used FROM history
		 WHERE list = ? AND creator = ? AND name = ?`,
		list, creator, NormalizeName(name),
	).Scan(&e.List, &e.Creator, &e.Name, &e.LastUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return &e, nil
}
