package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	accountIDKey ctxKey = "account_id"
	tenantIDKey  ctxKey = "tenant_id"
)

func AccountIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(accountIDKey).(uint64)
	return id, ok
}

func TenantFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tenantIDKey).(string)
	return t, ok
}

func RequireAuth(jwtSvc *JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")

			aid, tid, err := jwtSvc.Verify(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, aid)
			ctx = context.WithValue(ctx, tenantIDKey, tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
