package middleware

import "context"

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
)

// SessionIDFromContext returns the anonymous session identifier injected by
// the Session middleware, or "" when it is missing.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
