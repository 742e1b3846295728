package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-cpm-sync/internal/api/handler/router"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/scheduler"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/earnings"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/earnings/mocks"
	"github.com/vfg2006/creator-cpm-sync/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type stubValidator struct {
	claims *domain.Claims
}

func (s stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, nil
}

type stubRunner struct {
	result  *domain.SyncResult
	err     error
	gotOpts domain.SyncOptions
	trigger string
}

func (s *stubRunner) RunNow(ctx context.Context, trigger string, opts domain.SyncOptions) (*domain.SyncResult, error) {
	s.trigger = trigger
	s.gotOpts = opts
	return s.result, s.err
}

func (s *stubRunner) GetStatus() map[string]any {
	return map[string]any{"sync_running": false}
}

type stubBreaker struct{}

func (stubBreaker) BreakerState() string { return "closed" }

func newTestHandler(claims *domain.Claims, runner SyncRunner, reporter earnings.Reporter) http.Handler {
	rt := router.New(
		router.WithRoutes(Healthcheck(stubBreaker{})...),
		router.WithRoutes(Sync(runner)...),
		router.WithRoutes(Earnings(reporter)...),
	)
	return middleware.AuthMiddleware(stubValidator{claims: claims})(rt)
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheck(t *testing.T) {
	h := newTestHandler(nil, &stubRunner{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provider_breaker":"closed"`)
}

func TestRunSync(t *testing.T) {
	service := &domain.Claims{UserID: "scheduler", Role: domain.RoleService}
	viewer := &domain.Claims{UserID: "user-1", Role: domain.RoleViewer}

	tests := []struct {
		name     string
		claims   *domain.Claims
		body     string
		runner   *stubRunner
		status   int
		validate func(t *testing.T, runner *stubRunner, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Disparo com filtro de contas",
			claims: service,
			body:   `{"accountIds":["user-1","user-2"]}`,
			runner: &stubRunner{result: &domain.SyncResult{RunID: "run-1", Success: 2}},
			status: http.StatusOK,
			validate: func(t *testing.T, runner *stubRunner, rec *httptest.ResponseRecorder) {
				assert.Equal(t, scheduler.TriggerManual, runner.trigger)
				assert.Equal(t, []string{"user-1", "user-2"}, runner.gotOpts.AccountIDs)

				var result domain.SyncResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, "run-1", result.RunID)
				assert.Equal(t, 2, result.Success)
			},
		},
		{
			name:   "Corpo vazio sincroniza todos",
			claims: service,
			runner: &stubRunner{result: &domain.SyncResult{RunID: "run-2"}},
			status: http.StatusOK,
			validate: func(t *testing.T, runner *stubRunner, rec *httptest.ResponseRecorder) {
				assert.Empty(t, runner.gotOpts.AccountIDs)
			},
		},
		{
			name:   "Corpo inválido",
			claims: service,
			body:   `{"accountIds":`,
			runner: &stubRunner{},
			status: http.StatusBadRequest,
		},
		{
			name:   "Execução em andamento",
			claims: service,
			runner: &stubRunner{err: scheduler.ErrSyncAlreadyRunning},
			status: http.StatusConflict,
		},
		{
			name:   "Falha ao listar candidatos",
			claims: service,
			runner: &stubRunner{err: errors.New("db down")},
			status: http.StatusInternalServerError,
		},
		{
			name:   "Viewer não pode disparar",
			claims: viewer,
			runner: &stubRunner{},
			status: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.claims, tt.runner, nil)
			rec := doRequest(h, http.MethodPost, "/v1/sync/run", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			if tt.validate != nil {
				tt.validate(t, tt.runner, rec)
			}
		})
	}
}

func TestGetSyncStatus(t *testing.T) {
	h := newTestHandler(&domain.Claims{Role: domain.RoleAdmin}, &stubRunner{}, nil)
	rec := doRequest(h, http.MethodGet, "/v1/sync/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sync_running":false`)
}

func TestGetUserEarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	summary := &domain.UserMonthlyEarnings{UserID: "user-1", Month: "2024-02", Total: 10, Cap: 5000, Remaining: 4990}

	reporter.EXPECT().
		GetUserMonthlyEarnings(gomock.Any(), "user-1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
		Return(summary, nil)

	viewer := &domain.Claims{UserID: "user-1", Role: domain.RoleViewer}
	h := newTestHandler(viewer, &stubRunner{}, reporter)

	rec := doRequest(h, http.MethodGet, "/v1/users/user-1/earnings?month=2024-02", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"remaining":4990`)

	rec = doRequest(h, http.MethodGet, "/v1/users/user-2/earnings?month=2024-02", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(h, http.MethodGet, "/v1/users/user-1/earnings?month=02-2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostReadEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetPostLedger(gomock.Any(), "post-1").
		Return([]*domain.CpmLedgerEntry{{PostID: "post-1", CpmEarned: 1.5}}, nil)
	reporter.EXPECT().GetPostLedger(gomock.Any(), "missing").Return(nil, earnings.ErrPostNotFound)
	reporter.EXPECT().GetLatestAnalytics(gomock.Any(), "post-1").Return(nil, earnings.ErrNoAnalytics)
	reporter.EXPECT().GetLatestAnalytics(gomock.Any(), "post-2").Return(nil, errors.New("db down"))

	h := newTestHandler(&domain.Claims{Role: domain.RoleAdmin}, &stubRunner{}, reporter)

	rec := doRequest(h, http.MethodGet, "/v1/posts/post-1/ledger", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "post-1")

	rec = doRequest(h, http.MethodGet, "/v1/posts/missing/ledger", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(h, http.MethodGet, "/v1/posts/post-1/analytics/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RES_002")

	rec = doRequest(h, http.MethodGet, "/v1/posts/post-2/analytics/latest", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
