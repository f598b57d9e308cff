package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/todo-api/shared/apperror"
	"github.com/vasapolrittideah/todo-api/shared/auth"
	"github.com/vasapolrittideah/todo-api/shared/utilities"
)

type contextKey struct{}

var identityKey = contextKey{}

// TokenVerifier recovers the identity carried by a session token.
type TokenVerifier interface {
	VerifySessionToken(tokenString, secret string) (*auth.Identity, error)
}

// NewSessionGate admits requests that carry a valid session cookie and
// stores the caller's identity in the request context. It never writes a
// cookie.
func NewSessionGate(
	verifier TokenVerifier,
	secret string,
	cookies auth.CookieConfig,
	logger *zerolog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookies.TokenFromRequest(r)
			if token == "" {
				utilities.WriteError(w, logger, apperror.ErrUnauthorized)
				return
			}

			identity, err := verifier.VerifySessionToken(token, secret)
			if err != nil {
				if errors.Is(err, auth.ErrMissingSecret) {
					utilities.WriteError(w, logger, apperror.Wrap(apperror.KindInternal, apperror.ErrInternal.Message, err))
					return
				}
				utilities.WriteError(w, logger, apperror.Wrap(apperror.KindUnauthenticated, apperror.ErrUnauthorized.Message, err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by the session gate.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
