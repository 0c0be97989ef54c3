package httpx

import "net/http"

// RequireAdmin rejects callers whose session is not an admin session. It must
// run after AuthnMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.Admin {
			w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
			WriteMessage(w, http.StatusForbidden, "Invalid Admin Token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
