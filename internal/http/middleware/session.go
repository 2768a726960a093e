package middleware

import (
	"context"
	"net/http"

	"github.com/cardoctor/cardoctor-api/internal/http/response"
	"github.com/cardoctor/cardoctor-api/internal/platform/auth"
	"github.com/cardoctor/cardoctor-api/pkg/logger"
)

// SessionCookie is the name of the cookie carrying the session credential.
const SessionCookie = "token"

type ctxKey string

const ctxIdentity ctxKey = "identity"

// RequireSession verifies the credential on the token cookie. The request is
// terminated with 401 before the next handler runs when the cookie is missing
// or the credential fails signature or expiry checks; downstream handlers
// only ever see a verified identity.
func RequireSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				response.Unauthorized(w, "not authorized")
				return
			}

			identity, err := auth.Parse(secret, cookie.Value)
			if err != nil {
				logger.WarnContext(r.Context(), "session verification failed", "error", err)
				response.Unauthorized(w, "not authorized")
				return
			}

			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIdentity returns the identity attached by RequireSession, or nil
// when the request did not pass the guard.
func SessionIdentity(r *http.Request) auth.Identity {
	if v, ok := r.Context().Value(ctxIdentity).(auth.Identity); ok {
		return v
	}
	return nil
}
