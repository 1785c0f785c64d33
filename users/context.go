package users

import "context"

// contextKey is a private type so this package's context keys cannot collide
// with keys from other packages.
type contextKey string

const userContextKey contextKey = "current_user"

// NewContextWithUser returns a child context carrying the authenticated user.
// The auth middleware calls this after resolving a token.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts the authenticated user set by the middleware.
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
