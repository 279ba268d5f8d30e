package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"larder/internal/database"
)

func setupPantryTestDB(t *testing.T) (*PantryStore, *ListStore, uuid.UUID, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := NewUserStore(db)
	owner, err := us.Create("alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	ls := NewListStore(db, NewHistoryStore(db))
	l, err := ls.Create(owner.ID, "Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	return NewPantryStore(db), ls, l.ID, db
}

func int64Ptr(n int64) *int64 { return &n }

func TestPantryAdd(t *testing.T) {
	ps, _, list, _ := setupPantryTestDB(t)

	p, err := ps.Add(list, "Flour", int64Ptr(4))
	if err != nil {
		t.Fatalf("add pantry item: %v", err)
	}
	if p.Name != "Flour" {
		t.Errorf("name = %q, want %q", p.Name, "Flour")
	}
	if p.Amount != 0 {
		t.Errorf("new pantry amount = %d, want 0", p.Amount)
	}
	if p.Target != 4 {
		t.Errorf("target = %d, want 4", p.Target)
	}

	// Target is optional and defaults to zero.
	bare, err := ps.Add(list, "Sugar", nil)
	if err != nil {
		t.Fatalf("add without target: %v", err)
	}
	if bare.Target != 0 {
		t.Errorf("default target = %d, want 0", bare.Target)
	}
}

func TestPantryItemsAndGet(t *testing.T) {
	ps, _, list, _ := setupPantryTestDB(t)

	a, _ := ps.Add(list, "Flour", int64Ptr(4))
	b, _ := ps.Add(list, "Sugar", int64Ptr(2))

	items, err := ps.Items(list)
	if err != nil {
		t.Fatalf("list pantry: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 pantry items, got %d", len(items))
	}
	if items[0].ID != a.ID || items[1].ID != b.ID {
		t.Error("pantry items not in insertion order")
	}

	got, err := ps.GetByID(list, a.ID)
	if err != nil {
		t.Fatalf("get pantry item: %v", err)
	}
	if got == nil || got.Name != "Flour" {
		t.Fatalf("got = %+v, want Flour", got)
	}

	missing, err := ps.GetByID(list, 9999)
	if err != nil {
		t.Fatalf("get missing pantry item: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing pantry item, got %+v", missing)
	}
}

func TestPantryEditPartial(t *testing.T) {
	ps, _, list, _ := setupPantryTestDB(t)
	p, _ := ps.Add(list, "Flour", int64Ptr(4))

	// Amount only.
	if err := ps.Edit(list, p.ID, int64Ptr(2), nil); err != nil {
		t.Fatalf("edit amount: %v", err)
	}
	got, _ := ps.GetByID(list, p.ID)
	if got.Amount != 2 || got.Target != 4 {
		t.Errorf("after amount edit: amount=%d target=%d, want 2/4", got.Amount, got.Target)
	}

	// Target only.
	if err := ps.Edit(list, p.ID, nil, int64Ptr(6)); err != nil {
		t.Fatalf("edit target: %v", err)
	}
	got, _ = ps.GetByID(list, p.ID)
	if got.Amount != 2 || got.Target != 6 {
		t.Errorf("after target edit: amount=%d target=%d, want 2/6", got.Amount, got.Target)
	}

	// Both.
	if err := ps.Edit(list, p.ID, int64Ptr(5), int64Ptr(5)); err != nil {
		t.Fatalf("edit both: %v", err)
	}
	got, _ = ps.GetByID(list, p.ID)
	if got.Amount != 5 || got.Target != 5 {
		t.Errorf("after full edit: amount=%d target=%d, want 5/5", got.Amount, got.Target)
	}
}

func TestPantryDeleteRemovesGeneratedItems(t *testing.T) {
	ps, ls, list, db := setupPantryTestDB(t)
	p, _ := ps.Add(list, "Flour", int64Ptr(4))

	// One item generated from the pantry row, one added by hand.
	_, err := db.Exec(`INSERT INTO lists_content (list, name, amount, from_pantry) VALUES (?, ?, ?, ?)`,
		list, "Flour", "4", p.ID)
	if err != nil {
		t.Fatalf("insert linked item: %v", err)
	}
	us := NewUserStore(db)
	bob, _ := us.Create("bob", "hash")
	manual, err := ls.AddItem(list, bob.ID, "Milk", nil)
	if err != nil {
		t.Fatalf("add manual item: %v", err)
	}

	if err := ps.Delete(list, p.ID); err != nil {
		t.Fatalf("delete pantry item: %v", err)
	}

	got, _ := ps.GetByID(list, p.ID)
	if got != nil {
		t.Error("pantry item should be gone")
	}
	items, _ := ls.Items(list)
	if len(items) != 1 {
		t.Fatalf("expected only the manual item to survive, got %d items", len(items))
	}
	if items[0].ID != manual.ID {
		t.Errorf("surviving item = %d, want %d", items[0].ID, manual.ID)
	}
}
