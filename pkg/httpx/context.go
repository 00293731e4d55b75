package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyEmail  ctxKey = "email"
	CtxKeyRole   ctxKey = "role"
	CtxKeyScopes ctxKey = "scopes"
	CtxKeySID    ctxKey = "sid"

	// CtxKeyRemoteIP carries the client address extracted by the request
	// logging middleware.
	CtxKeyRemoteIP ctxKey = "remote_ip"
)

// UserIDFromCtx returns the authenticated principal id, or "" when the
// request was not authenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// EmailFromCtx returns the authenticated principal's email, or "".
func EmailFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}

// RoleFromCtx returns the token's cached role claim, or "".
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}

// SIDFromCtx returns the session id the access token was minted for, or "".
func SIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySID).(string); ok {
		return v
	}
	return ""
}

// RemoteIPFromCtx returns the client address for the request, or "".
func RemoteIPFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRemoteIP).(string); ok {
		return v
	}
	return ""
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
