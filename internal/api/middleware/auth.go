package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"loan-ledger/internal/domain/identity"
)

// AuthMiddleware verifies the bearer token and stores the owner in the request context.
func AuthMiddleware(tokens identity.TokenProvider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(r.Context(), "AuthMiddleware: Missing or malformed Authorization header")
				writeError(w, http.StatusUnauthorized, "unauthenticated", "Token not found")
				return
			}

			owner, err := tokens.Verify(tokenString)
			if err != nil {
				logger.WarnContext(r.Context(), "AuthMiddleware: Invalid token", "error", err)
				writeError(w, http.StatusUnauthorized, "unauthenticated", "Invalid Token")
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithOwner(r.Context(), owner)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
