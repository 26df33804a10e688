package auth

import "context"

type contextKey string

const requesterContextKey = contextKey("requester")

func WithRequester(ctx context.Context, requesterID string) context.Context {
	return context.WithValue(ctx, requesterContextKey, requesterID)
}

// RequesterFromContext returns the id of the authenticated user, or "" for an
// anonymous request.
func RequesterFromContext(ctx context.Context) string {
	requesterID, _ := ctx.Value(requesterContextKey).(string)
	return requesterID
}
