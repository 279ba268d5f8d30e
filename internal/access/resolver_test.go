package access

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"larder/internal/database"
	"larder/internal/store"
)

func setupResolverTest(t *testing.T) (*Resolver, *store.ListStore, *store.UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewResolver(db), store.NewListStore(db, store.NewHistoryStore(db)), store.NewUserStore(db)
}

func TestResolveMissingList(t *testing.T) {
	r, _, us := setupResolverTest(t)
	u, _ := us.Create("alice", "hash")

	_, err := r.Resolve(u.ID, uuid.New())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want store.ErrNotFound", err)
	}
}

func TestResolveLevels(t *testing.T) {
	r, ls, us := setupResolverTest(t)
	owner, _ := us.Create("alice", "hash")
	writer, _ := us.Create("bob", "hash")
	reader, _ := us.Create("carol", "hash")
	stranger, _ := us.Create("dave", "hash")

	l, err := ls.Create(owner.ID, "Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if err := ls.Share(l.ID, writer.ID, false); err != nil {
		t.Fatalf("share write: %v", err)
	}
	if err := ls.Share(l.ID, reader.ID, true); err != nil {
		t.Fatalf("share read: %v", err)
	}

	cases := []struct {
		name string
		user uuid.UUID
		want Level
	}{
		{"owner", owner.ID, LevelOwner},
		{"write share", writer.ID, LevelSharedWrite},
		{"read share", reader.ID, LevelSharedRead},
		{"stranger", stranger.ID, LevelNone},
	}
	for _, c := range cases {
		lvl, err := r.Resolve(c.user, l.ID)
		if err != nil {
			t.Errorf("%s: resolve: %v", c.name, err)
			continue
		}
		if lvl != c.want {
			t.Errorf("%s: level = %d, want %d", c.name, lvl, c.want)
		}
	}
}

func TestRequireAccess(t *testing.T) {
	r, ls, us := setupResolverTest(t)
	owner, _ := us.Create("alice", "hash")
	reader, _ := us.Create("bob", "hash")
	stranger, _ := us.Create("carol", "hash")

	l, _ := ls.Create(owner.ID, "Groceries")
	ls.Share(l.ID, reader.ID, true)

	if err := r.RequireAccess(reader.ID, l.ID, false); err != nil {
		t.Errorf("reader should read: %v", err)
	}
	if err := r.RequireAccess(reader.ID, l.ID, true); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("readonly share writing: err = %v, want ErrNotAuthorized", err)
	}
	if err := r.RequireAccess(owner.ID, l.ID, true); err != nil {
		t.Errorf("owner should write: %v", err)
	}
	if err := r.RequireAccess(stranger.ID, l.ID, false); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("stranger reading: err = %v, want ErrNotAuthorized", err)
	}
}

func TestRequireOwner(t *testing.T) {
	r, ls, us := setupResolverTest(t)
	owner, _ := us.Create("alice", "hash")
	writer, _ := us.Create("bob", "hash")

	l, _ := ls.Create(owner.ID, "Groceries")
	ls.Share(l.ID, writer.ID, false)

	if err := r.RequireOwner(owner.ID, l.ID); err != nil {
		t.Errorf("owner check failed: %v", err)
	}
	// Even a write share is not ownership.
	if err := r.RequireOwner(writer.ID, l.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("writer as owner: err = %v, want ErrNotAuthorized", err)
	}
}

func TestShareRevocationTakesEffect(t *testing.T) {
	r, ls, us := setupResolverTest(t)
	owner, _ := us.Create("alice", "hash")
	bob, _ := us.Create("bob", "hash")

	l, _ := ls.Create(owner.ID, "Groceries")
	ls.Share(l.ID, bob.ID, false)

	if err := r.RequireAccess(bob.ID, l.ID, true); err != nil {
		t.Fatalf("before revocation: %v", err)
	}
	ls.Unshare(l.ID, bob.ID)
	if err := r.RequireAccess(bob.ID, l.ID, false); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("after revocation: err = %v, want ErrNotAuthorized", err)
	}
}
