package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"larder/internal/model"
)

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

func scanPantryItem(scanner interface{ Scan(...any) error }) (*model.PantryItem, error) {
	var p model.PantryItem
	err := scanner.Scan(&p.ID, &p.List, &p.Name, &p.Amount, &p.Target)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const pantryCols = `item, list, name, amount, target`

func (s *PantryStore) Items(list uuid.UUID) ([]model.PantryItem, error) {
	rows, err := s.db.Query(`SELECT `+pantryCols+` FROM pantry_content WHERE list = ? ORDER BY item ASC`, list)
	if err != nil {
		return nil, fmt.Errorf("list pantry: %w", err)
	}
	defer rows.Close()

	var items []model.PantryItem
	for rows.Next() {
		p, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (s *PantryStore) GetByID(list uuid.UUID, itemID int64) (*model.PantryItem, error) {
	row := s.db.QueryRow(`SELECT `+pantryCols+` FROM pantry_content WHERE list = ? AND item = ?`, list, itemID)
	p, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}
	return p, nil
}

// Add stocks a new pantry item. The current amount starts at zero; a nil
// target defaults to zero as well.
func (s *PantryStore) Add(list uuid.UUID, name string, target *int64) (*model.PantryItem, error) {
	var tgt int64
	if target != nil {
		tgt = *target
	}

	result, err := s.db.Exec(`INSERT INTO pantry_content (list, name, target) VALUES (?, ?, ?)`, list, name, tgt)
	if err != nil {
		return nil, fmt.Errorf("insert pantry item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(list, id)
}

// Edit sets the item's amount and/or target. Nil fields are left unchanged.
func (s *PantryStore) Edit(list uuid.UUID, itemID int64, amount, target *int64) error {
	var amt, tgt sql.NullInt64
	if amount != nil {
		amt = sql.NullInt64{Int64: *amount, Valid: true}
	}
	if target != nil {
		tgt = sql.NullInt64{Int64: *target, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE pantry_content
		 SET amount = COALESCE(?, amount), target = COALESCE(?, target)
		 WHERE list = ? AND item = ?`,
		amt, tgt, list, itemID,
	)
	if err != nil {
		return fmt.Errorf("edit pantry item: %w", err)
	}
	return nil
}

// Delete removes the pantry item together with any list items it generated.
// Both deletes run in one transaction so no list item is left pointing at a
// missing pantry row.
func (s *PantryStore) Delete(list uuid.UUID, itemID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete pantry item: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM lists_content WHERE from_pantry = ? AND list = ?`, itemID, list); err != nil {
		return fmt.Errorf("delete dependent items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM pantry_content WHERE item = ? AND list = ?`, itemID, list); err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete pantry item: %w", err)
	}
	return nil
}
