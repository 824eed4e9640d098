// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/baharkarakas/blog-api/internal/api/httpx"
	"github.com/baharkarakas/blog-api/internal/auth"
)

type AuthMiddleware struct {
	V auth.Verifier
}

func NewAuthMiddleware(v auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{V: v}
}

func bearerToken(r *http.Request) (string, bool) {
	ah := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(ah) <= len(prefix) || !strings.EqualFold(ah[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(ah[len(prefix):])
	return token, token != ""
}

// Auth rejects the request with 401 unless it carries a valid bearer token.
// It runs before any handler reads the body.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token", nil)
			return
		}
		id, err := m.V.Verify(token)
		if err != nil || id.UserID == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid access token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), UserCtx{UserID: id.UserID})))
	})
}
