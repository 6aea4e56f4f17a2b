package web

import "context"

type userIDKey struct{}

// WithUserID adds the authenticated user's ID to the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromContext retrieves the authenticated user's ID from the context.
// Returns the ID and a boolean indicating whether it was found.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok
}
