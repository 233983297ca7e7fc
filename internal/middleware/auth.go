package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mediapub/service/internal/auth"
	"github.com/mediapub/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// ClaimsKey is the context key for the verified credential claims.
const ClaimsKey contextKey = "claims"

// GetClaims returns the verified claims stored by RequireScope, or nil when
// the request did not pass through the gate.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

// RequireScope returns middleware that extracts the bearer credential,
// verifies it against the introspection endpoint, and enforces that the
// caller holds the required scope. When allowedUsername is non-empty the
// claims' principal must match it exactly; a mismatch is reported as a plain
// 401 so callers cannot probe which principals exist.
func RequireScope(verifier *auth.Verifier, scope, allowedUsername string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Unauthorized(w)
				return
			}

			claims, err := verifier.Introspect(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					response.Unauthorized(w)
					return
				}
				log.Error().Err(err).Msg("token introspection failed")
				response.WriteErrorDescription(w, http.StatusBadGateway, "server_error", "token verification unavailable")
				return
			}

			if !claims.HasScope(scope) {
				response.InsufficientScope(w)
				return
			}

			if allowedUsername != "" && claims.Me != allowedUsername {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
