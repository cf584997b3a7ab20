package httpapi

import (
	"context"
	"net/http"

	"github.com/dev-th/authkeeper/internal/common"
	"github.com/dev-th/authkeeper/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// withAuth requires a verifiable bearer token in the x-auth-token header.
// A missing token is 401, a rejected one 403; the rejection reason is
// logged but not returned to the caller.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := r.Header.Get(common.AuthTokenHeaderName)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing auth token")
			return
		}

		claims, err := s.codec.Verify(token)
		if err != nil {
			s.logger.Warn(r.Context(), "token rejected", "reason", err.Error())
			writeError(w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext returns the verified token claims stored by withAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
