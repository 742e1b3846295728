package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/authenticating"
)

type stubValidator struct {
	claims *domain.Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	admin := &domain.Claims{UserID: "u-1", Role: domain.RoleAdmin}

	tests := []struct {
		name      string
		path      string
		header    string
		validator stubValidator
		status    int
	}{
		{name: "Rota pública", path: "/healthcheck", status: http.StatusNoContent},
		{name: "Métricas públicas", path: "/metrics", status: http.StatusNoContent},
		{name: "Sem header", path: "/v1/sync/status", status: http.StatusUnauthorized},
		{name: "Header sem Bearer", path: "/v1/sync/status", header: "Basic abc", status: http.StatusUnauthorized},
		{
			name:      "Token expirado",
			path:      "/v1/sync/status",
			header:    "Bearer x",
			validator: stubValidator{err: authenticating.NewAuthError(authenticating.ErrExpiredToken, "TOKEN_EXPIRED", "")},
			status:    http.StatusUnauthorized,
		},
		{
			name:      "Papel desconhecido",
			path:      "/v1/sync/status",
			header:    "Bearer x",
			validator: stubValidator{err: authenticating.NewAuthError(authenticating.ErrInsufficientPrivilege, "INVALID_ROLE", "")},
			status:    http.StatusForbidden,
		},
		{
			name:      "Segredo ausente",
			path:      "/v1/sync/status",
			header:    "Bearer x",
			validator: stubValidator{err: errors.New("segredo de autenticação não configurado")},
			status:    http.StatusInternalServerError,
		},
		{
			name:      "Token válido",
			path:      "/v1/sync/status",
			header:    "Bearer x",
			validator: stubValidator{claims: admin},
			status:    http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		middleware func(http.Handler) http.Handler
		status     int
	}{
		{name: "Sem claims", middleware: AllRoles(), status: http.StatusUnauthorized},
		{name: "Viewer lê", claims: &domain.Claims{Role: domain.RoleViewer}, middleware: AllRoles(), status: http.StatusNoContent},
		{name: "Viewer não dispara", claims: &domain.Claims{Role: domain.RoleViewer}, middleware: AdminOrService(), status: http.StatusForbidden},
		{name: "Service dispara", claims: &domain.Claims{Role: domain.RoleService}, middleware: AdminOrService(), status: http.StatusNoContent},
		{name: "Service não é admin", claims: &domain.Claims{Role: domain.RoleService}, middleware: AdminOnly(), status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := tt.claims
			chain := alice.New(
				AuthMiddleware(stubValidator{claims: claims}),
				tt.middleware,
			).Then(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
			if claims != nil {
				req.Header.Set("Authorization", "Bearer x")
			}
			rec := httptest.NewRecorder()

			if claims == nil {
				tt.middleware(okHandler()).ServeHTTP(rec, req)
			} else {
				chain.ServeHTTP(rec, req)
			}

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/sync/run", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := alice.New(LogPanicMiddleware(), LoggingMiddleware()).ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/posts/p/ledger", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
