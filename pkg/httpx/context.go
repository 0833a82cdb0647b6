package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated user's numeric id (int64).
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeySessionID carries the server-side session id (string).
	CtxKeySessionID ctxKey = "session_id"
)

// ContextWithAuth injects the resolved session identity into the context for
// downstream handlers and rate limiters.
func ContextWithAuth(ctx context.Context, userID int64, sessionID string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeySessionID, sessionID)
	return ctx
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(int64)
	return id, ok
}

// SessionIDFromContext returns the session id, if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(CtxKeySessionID).(string)
	return sid, ok
}
