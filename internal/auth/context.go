package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// Identity is the resolved, authenticated caller attached to a request.
type Identity struct {
	UserID uuid.UUID
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserID returns the caller's id, or uuid.Nil for unauthenticated contexts.
func UserID(ctx context.Context) uuid.UUID {
	id, ok := FromContext(ctx)
	if !ok {
		return uuid.Nil
	}
	return id.UserID
}
