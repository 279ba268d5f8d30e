package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"larder/internal/model"
)

type ListStore struct {
	db      *sql.DB
	history *HistoryStore
}

func NewListStore(db *sql.DB, history *HistoryStore) *ListStore {
	return &ListStore{db: db, history: history}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	var public int
	err := scanner.Scan(&l.ID, &l.Owner, &l.Name, &public, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.Public = public != 0
	return &l, nil
}

const listCols = `id, owner, name, public, created_at`

// Create makes a new list owned by owner. Names are unique per owner, not
// globally: two owners may each have a "Groceries".
func (s *ListStore) Create(owner uuid.UUID, name string) (*model.List, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM lists WHERE owner = ? AND name = ?`, owner, name).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("check list name: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadyExists
	}

	id := uuid.New()
	_, err = s.db.Exec(`INSERT INTO lists (id, owner, name) VALUES (?, ?, ?)`, id, owner, name)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id uuid.UUID) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

// ListForUser returns every list the user owns or has a share on, tagged
// with the user's relationship to it.
func (s *ListStore) ListForUser(user uuid.UUID) (map[uuid.UUID]model.ListInfo, error) {
	results := make(map[uuid.UUID]model.ListInfo)

	rows, err := s.db.Query(`SELECT id, name, public, owner FROM lists WHERE owner = ?`, user)
	if err != nil {
		return nil, fmt.Errorf("list owned: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var info model.ListInfo
		var public int
		if err := rows.Scan(&id, &info.Name, &public, &info.Owner); err != nil {
			return nil, fmt.Errorf("scan owned list: %w", err)
		}
		info.Public = public != 0
		info.Status = model.StatusOwned
		results[id] = info
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shared, err := s.db.Query(
		`SELECT l.id, l.name, l.public, l.owner, s.readonly
		 FROM lists l JOIN list_sharing s ON l.id = s.list
		 WHERE s.shared = ?`, user)
	if err != nil {
		return nil, fmt.Errorf("list shared: %w", err)
	}
	defer shared.Close()
	for shared.Next() {
		var id uuid.UUID
		var info model.ListInfo
		var public, readonly int
		if err := shared.Scan(&id, &info.Name, &public, &info.Owner, &readonly); err != nil {
			return nil, fmt.Errorf("scan shared list: %w", err)
		}
		info.Public = public != 0
		if readonly != 0 {
			info.Status = model.StatusSharedRead
		} else {
			info.Status = model.StatusSharedWrite
		}
		results[id] = info
	}
	return results, shared.Err()
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ListItem, error) {
	var item model.ListItem
	var amount sql.NullString
	var fromPantry sql.NullInt64

	err := scanner.Scan(&item.ID, &item.List, &item.Name, &amount, &fromPantry)
	if err != nil {
		return nil, err
	}
	if amount.Valid {
		item.Amount = &amount.String
	}
	if fromPantry.Valid {
		item.FromPantry = &fromPantry.Int64
	}
	return &item, nil
}

const itemCols = `id, list, name, amount, from_pantry`

func (s *ListStore) Items(list uuid.UUID) ([]model.ListItem, error) {
	rows, err := s.db.Query(`SELECT `+itemCols+` FROM lists_content WHERE list = ? ORDER BY id ASC`, list)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ListItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ListStore) GetItem(list uuid.UUID, itemID int64) (*model.ListItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM lists_content WHERE list = ? AND id = ?`, list, itemID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// AddItem inserts a list item and records the creator's usage of the name
// in the same transaction: either both rows land or neither does.
func (s *ListStore) AddItem(list, creator uuid.UUID, name string, amount *string) (*model.ListItem, error) {
	var amt sql.NullString
	if amount != nil {
		amt = sql.NullString{String: *amount, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin add item: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO lists_content (list, name, amount) VALUES (?, ?, ?)`, list, name, amt)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := s.history.TouchTx(tx, list, creator, name); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add item: %w", err)
	}
	return s.GetItem(list, id)
}

// UpdateItem changes the item's name and/or amount. A nil field is left
// unchanged; updating a missing item is a no-op.
func (s *ListStore) UpdateItem(list uuid.UUID, itemID int64, name, amount *string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin update item: %w", err)
	}
	defer tx.Rollback()

	if name != nil {
		if _, err := tx.Exec(`UPDATE lists_content SET name = ? WHERE list = ? AND id = ?`, *name, list, itemID); err != nil {
			return fmt.Errorf("update item name: %w", err)
		}
	}
	if amount != nil {
		if _, err := tx.Exec(`UPDATE lists_content SET amount = ? WHERE list = ? AND id = ?`, *amount, list, itemID); err != nil {
			return fmt.Errorf("update item amount: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update item: %w", err)
	}
	return nil
}

func (s *ListStore) SetPublic(list uuid.UUID, public bool) error {
	p := 0
	if public {
		p = 1
	}
	if _, err := s.db.Exec(`UPDATE lists SET public = ? WHERE id = ?`, p, list); err != nil {
		return fmt.Errorf("set public: %w", err)
	}
	return nil
}

// Delete removes the list and everything hanging off it — shares, items,
// pantry rows, history — in one transaction so no orphans survive a crash.
func (s *ListStore) Delete(list uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete list: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM list_sharing WHERE list = ?`,
		`DELETE FROM lists_content WHERE list = ?`,
		`DELETE FROM pantry_content WHERE list = ?`,
		`DELETE FROM history WHERE list = ?`,
		`DELETE FROM lists WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, list); err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete list: %w", err)
	}
	return nil
}

// Share grants (or re-grants) the user access to the list. Sharing twice
// just updates the readonly flag; at most one row exists per pair.
func (s *ListStore) Share(list, grantee uuid.UUID, readonly bool) error {
	ro := 0
	if readonly {
		ro = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO list_sharing (list, shared, readonly) VALUES (?, ?, ?)
		 ON CONFLICT (list, shared) DO UPDATE SET readonly = excluded.readonly`,
		list, grantee, ro,
	)
	if err != nil {
		return fmt.Errorf("share list: %w", err)
	}
	return nil
}

func (s *ListStore) Unshare(list, grantee uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM list_sharing WHERE list = ? AND shared = ?`, list, grantee); err != nil {
		return fmt.Errorf("unshare list: %w", err)
	}
	return nil
}

func (s *ListStore) Shares(list uuid.UUID) ([]model.Share, error) {
	rows, err := s.db.Query(`SELECT list, shared, readonly FROM list_sharing WHERE list = ?`, list)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	var shares []model.Share
	for rows.Next() {
		var sh model.Share
		var readonly int
		if err := rows.Scan(&sh.List, &sh.Shared, &readonly); err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		sh.Readonly = readonly != 0
		shares = append(shares, sh)
	}
	return shares, rows.Err()
}
