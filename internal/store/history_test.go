package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"larder/internal/database"
)

func setupHistoryTestDB(t *testing.T) (*HistoryStore, uuid.UUID, uuid.UUID, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := NewUserStore(db)
	u, err := us.Create("alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	hs := NewHistoryStore(db)
	ls := NewListStore(db, hs)
	l, err := ls.Create(u.ID, "Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	return hs, l.ID, u.ID, db
}

func touch(t *testing.T, hs *HistoryStore, db *sql.DB, list, creator uuid.UUID, name string) {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := hs.TouchTx(tx, list, creator, name); err != nil {
		t.Fatalf("touch %q: %v", name, err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Milk", "milk"},
		{"  Whole Milk  ", "whole milk"},
		{"BREAD", "bread"},
		{"eggs", "eggs"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHistoryCaseInsensitiveIdentity(t *testing.T) {
	hs, list, alice, db := setupHistoryTestDB(t)

	touch(t, hs, db, list, alice, "Milk")
	touch(t, hs, db, list, alice, "MILK")
	touch(t, hs, db, list, alice, " milk ")

	names, err := hs.Suggestions(list, alice, "milk")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected one folded entry, got %v", names)
	}
	if names[0] != "milk" {
		t.Errorf("entry = %q, want %q", names[0], "milk")
	}
}

func TestHistoryTouchAdvancesLastUsed(t *testing.T) {
	hs, list, alice, db := setupHistoryTestDB(t)

	touch(t, hs, db, list, alice, "milk")
	first, err := hs.Get(list, alice, "milk")
	if err != nil || first == nil {
		t.Fatalf("get after first touch: %v %v", first, err)
	}

	time.Sleep(5 * time.Millisecond)
	touch(t, hs, db, list, alice, "milk")
	second, err := hs.Get(list, alice, "milk")
	if err != nil || second == nil {
		t.Fatalf("get after second touch: %v %v", second, err)
	}
	if !second.LastUsed.After(first.LastUsed) {
		t.Errorf("last_used not advanced: %v -> %v", first.LastUsed, second.LastUsed)
	}
}

func TestSuggestionsOrderAndFilter(t *testing.T) {
	hs, list, alice, db := setupHistoryTestDB(t)

	touch(t, hs, db, list, alice, "milk")
	time.Sleep(5 * time.Millisecond)
	touch(t, hs, db, list, alice, "bread")
	time.Sleep(5 * time.Millisecond)
	touch(t, hs, db, list, alice, "milk chocolate")

	// Empty search matches everything, most recent first.
	all, err := hs.Suggestions(list, alice, "")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	want := []string{"milk chocolate", "bread", "milk"}
	if len(all) != len(want) {
		t.Fatalf("got %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("all[%d] = %q, want %q", i, all[i], want[i])
		}
	}

	// Substring search, case-insensitive.
	milky, err := hs.Suggestions(list, alice, "MIL")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(milky) != 2 || milky[0] != "milk chocolate" || milky[1] != "milk" {
		t.Errorf("filtered = %v, want [milk chocolate milk]", milky)
	}
}

func TestHistoryScopedToListAndCreator(t *testing.T) {
	hs, list, alice, db := setupHistoryTestDB(t)

	us := NewUserStore(db)
	bob, _ := us.Create("bob", "hash")
	ls := NewListStore(db, hs)
	other, _ := ls.Create(bob.ID, "Bob's list")

	touch(t, hs, db, list, alice, "milk")

	names, err := hs.Suggestions(list, bob.ID, "")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("bob should see no history on alice's entries, got %v", names)
	}

	names, err = hs.Suggestions(other.ID, alice, "")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("history should not leak across lists, got %v", names)
	}
}
