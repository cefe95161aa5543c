package auth

import (
	"net/http"
)

// AuthorizationHeader is the request header carrying the bearer credential.
const AuthorizationHeader = "Authorization"

// Middleware builds the per-request identity context. It runs the
// credential verifier exactly once per inbound request, before any
// resolver executes, and always produces a context (possibly anonymous) —
// authentication failures never short-circuit the request here; gating is
// the resolvers' job.
func Middleware(verifier *CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := verifier.VerifyHeader(r.Context(), r.Header.Get(AuthorizationHeader))
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user)))
		})
	}
}
