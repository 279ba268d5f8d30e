package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithIdentityAndFromContext(t *testing.T) {
	id := Identity{UserID: uuid.New()}

	ctx := WithIdentity(context.Background(), id)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected Identity in context")
	}
	if got.UserID != id.UserID {
		t.Errorf("UserID = %s, want %s", got.UserID, id.UserID)
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing Identity")
	}
}

func TestUserID(t *testing.T) {
	want := uuid.New()
	ctx := WithIdentity(context.Background(), Identity{UserID: want})
	if got := UserID(ctx); got != want {
		t.Errorf("UserID = %s, want %s", got, want)
	}
}

func TestUserIDMissing(t *testing.T) {
	if UserID(context.Background()) != uuid.Nil {
		t.Error("expected uuid.Nil for missing context")
	}
}
