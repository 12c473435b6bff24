package api

import (
	"net/http"

	"github.com/coreybb/recipebox/auth"
	"github.com/coreybb/recipebox/webutil"
)

const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
)

// SetHeader is a middleware to set a response header.
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, value)
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set(webutil.HeaderAuthenticate, webutil.AuthSchemeBearer)
	webutil.RespondWithError(w, http.StatusUnauthorized, message)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// verified identity in the request context.
func RequireAuth(sessions *auth.SessionAuthority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r.Header.Get(webutil.HeaderAuthorization))
			if !ok {
				unauthorized(w, msgAuthRequired)
				return
			}
			id, err := sessions.Verify(token)
			if err != nil {
				unauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth attaches the identity when an Authorization header is sent
// and lets anonymous requests through. A header that is present but does
// not carry a valid bearer token is still rejected.
func OptionalAuth(sessions *auth.SessionAuthority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(webutil.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := auth.BearerToken(header)
			if !ok {
				unauthorized(w, msgInvalidToken)
				return
			}
			id, err := sessions.Verify(token)
			if err != nil {
				unauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
