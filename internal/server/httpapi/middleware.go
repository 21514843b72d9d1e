package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/server/auth"
)

type ctxKey int

const userIDKey ctxKey = iota

// userIDFrom returns the authenticated user id placed by authMiddleware.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// checkOwnerParam rejects a request whose owner_key query parameter names
// a different owner than the token resolved to. The parameter is optional;
// the token stays authoritative.
func checkOwnerParam(w http.ResponseWriter, r *http.Request, owner string) bool {
	if p := r.URL.Query().Get("owner_key"); p != "" && p != owner {
		writeError(w, http.StatusForbidden, "owner mismatch")
		return false
	}
	return true
}

// authMiddleware validates the bearer token and stores the user id in the
// request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// logMiddleware emits one line per request.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
