package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/authenticating"
	"github.com/vfg2006/creator-cpm-sync/pkg/apiErrors"
	"github.com/vfg2006/creator-cpm-sync/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// TokenValidator é o subconjunto do autenticador usado pelo middleware
type TokenValidator interface {
	ValidateToken(token string) (*domain.Claims, error)
}

func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Header Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Token rejeitado")

				switch {
				case errors.Is(err, authenticating.ErrExpiredToken):
					apiErrors.WriteError(w, apiErrors.ErrExpiredToken, "Token expirado", nil)
				case errors.Is(err, authenticating.ErrInsufficientPrivilege):
					apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Papel do token não reconhecido", nil)
				case authenticating.IsAuthorizationError(err):
					apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				default:
					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Não foi possível validar o token", nil)
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext devolve as claims gravadas pelo AuthMiddleware
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}
