package middleware

import "context"

type ContextKey string

const (
	UserIDKey    ContextKey = "user_id"
	EmailKey     ContextKey = "email"
	RequestIDKey ContextKey = "request_id"
)

// UserIDFromContext returns the authenticated user set by Auth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithUserID is used by tests and by Auth.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// requestInfo lets inner middleware report values back to Logging.
type requestInfo struct {
	userID int64
}

const requestInfoKey ContextKey = "request_info"

func recordUserID(ctx context.Context, userID int64) {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.userID = userID
	}
}
