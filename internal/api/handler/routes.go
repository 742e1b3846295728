package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/creator-cpm-sync/internal/api/handler/router"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/earnings"
	"github.com/vfg2006/creator-cpm-sync/pkg/middleware"
)

func Healthcheck(provider BreakerReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(provider),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Sync(runner SyncRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrService()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrService()},
		},
	}
}

func Earnings(reporter earnings.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users/:id/earnings",
			Method:      http.MethodGet,
			Handler:     GetUserEarnings(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/posts/:id/ledger",
			Method:      http.MethodGet,
			Handler:     GetPostLedger(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/posts/:id/analytics/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestAnalytics(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
