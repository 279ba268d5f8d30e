// Package reconcile keeps the pantry inventory and the active list
// consistent: refill turns pantry shortfalls into list items, and deleting
// a refill-generated item credits its quantity back to the pantry.
package reconcile

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"larder/internal/store"
)

type Engine struct {
	db *sql.DB
}

func New(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Refill inserts one list item per pantry item whose amount is below
// target, carrying the shortfall as the item amount and a from_pantry link.
// Pantry amounts are untouched; they only move when the generated item is
// later deleted or the pantry row is edited.
//
// Re-running refill before the previous items are consumed re-adds the same
// shortfall — there is deliberately no pending-item detection.
func (e *Engine) Refill(list uuid.UUID) error {
	_, err := e.db.Exec(
		`INSERT INTO lists_content (list, name, amount, from_pantry)
		 SELECT list, name, CAST(target - amount AS TEXT), item
		 FROM pantry_content
		 WHERE list = ? AND amount < target`,
		list,
	)
	if err != nil {
		return fmt.Errorf("refill: %w", err)
	}
	return nil
}

// DeleteItem removes a list item, first crediting its parsed amount back to
// the pantry item it came from. Credit and delete commit together: a failure
// partway leaves both rows as they were.
func (e *Engine) DeleteItem(list uuid.UUID, itemID int64) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete item: %w", err)
	}
	defer tx.Rollback()

	var amount sql.NullString
	var fromPantry sql.NullInt64
	err = tx.QueryRow(`SELECT amount, from_pantry FROM lists_content WHERE list = ? AND id = ?`, list, itemID).
		Scan(&amount, &fromPantry)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read item: %w", err)
	}

	if fromPantry.Valid {
		if qty := ParseQuantity(amount.String); qty != 0 {
			_, err = tx.Exec(
				`UPDATE pantry_content SET amount = amount + ? WHERE item = ? AND list = ?`,
				qty, fromPantry.Int64, list,
			)
			if err != nil {
				return fmt.Errorf("credit pantry: %w", err)
			}
		}
	}

	if _, err := tx.Exec(`DELETE FROM lists_content WHERE list = ? AND id = ?`, list, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete item: %w", err)
	}
	return nil
}
