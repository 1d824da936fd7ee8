package user

import "context"

type ctxKey string

const userCtxKey ctxKey = "user"

// NewContext stores the authenticated user on the request context.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// FromContext returns the authenticated user, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userCtxKey).(*User)
	return u, ok
}
