package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated user's id (UUID string).
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyToken carries the raw bearer token the request authenticated with.
	CtxKeyToken ctxKey = "token"
)

// WithUserID attaches the authenticated user id to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromCtx returns the authenticated user id, or "" when unauthenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// WithToken attaches the raw bearer token to the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxKeyToken, token)
}

// TokenFromCtx returns the raw bearer token, or "" when unauthenticated.
func TokenFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyToken).(string); ok {
		return v
	}
	return ""
}
