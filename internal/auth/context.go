package auth

import "context"

type contextKey struct{}

// Identity is the authenticated member attached to a request context.
type Identity struct {
	MemberID int64
	Email    string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// MemberID returns the authenticated member's id, or 0 for anonymous
// requests.
func MemberID(ctx context.Context) int64 {
	id, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return id.MemberID
}
