package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/pkg/ctxutil"
)

type sessionValidator interface {
	ValidateSessionToken(token string) (uuid.UUID, error)
}

// Session resolves an "Authorization: Bearer" session token into a session
// ID in the request context. Requests without a token pass through
// anonymously; an invalid token is rejected with 401.
func Session(validator sessionValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			sessionID, err := validator.ValidateSessionToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := ctxutil.WithSessionID(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no session with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.SessionIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "session token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
