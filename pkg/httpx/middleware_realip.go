package httpx

import (
	"context"
	"net/http"
)

// RealIPMiddleware resolves the client address (honouring X-Forwarded-For and
// X-Real-IP) and stashes it in the request context so downstream code, the
// audit trail in particular, can attribute actions to an address.
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), CtxKeyRemoteIP, IPKeyExtractor(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
