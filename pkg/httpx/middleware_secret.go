package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

// SecretChecker reports whether a presented bearer secret is acceptable.
type SecretChecker func(secret string) bool

// RequireBearerSecret guards machine endpoints (the external scheduler)
// with a shared secret. It is the only auth on those routes.
func RequireBearerSecret(check SecretChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret, ok := BearerToken(r)
			if !ok || check == nil || !check(secret) {
				slogx.FromContext(r.Context()).Warn("shared secret rejected")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid shared secret")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
