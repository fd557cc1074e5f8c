package auth

import "context"

type contextKey struct{}

// Identity is what the auth gate attaches to a verified request. UserID is
// the only field handlers may use to scope data access.
type Identity struct {
	UserID  string
	Email   string
	Teacher bool
	// Delegate is self-asserted by the teacher at login and is display data
	// only.
	Delegate Delegate
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserID returns the authenticated account id, or "" outside the auth gate.
func UserID(ctx context.Context) string {
	id, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return id.UserID
}
