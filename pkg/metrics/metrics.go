package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRuns conta execuções por gatilho (cron, manual) e resultado
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_sync_runs_total",
			Help: "Total de execuções da sincronização de analytics",
		},
		[]string{"trigger", "status"},
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_sync_run_duration_seconds",
			Help:    "Duração das execuções da sincronização de analytics",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 1800, 3600},
		},
	)

	// SyncPosts conta posts processados por resultado e etapa da falha
	SyncPosts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_sync_posts_total",
			Help: "Posts processados pela sincronização",
		},
		[]string{"outcome", "stage"},
	)

	SyncVerificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_sync_verification_failures_total",
			Help: "Falhas de verificação read-after-write",
		},
	)

	SyncSanityMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_sync_sanity_mismatches_total",
			Help: "Divergências entre snapshot e ledger de CPM",
		},
	)

	// CpmEarned soma o valor creditado no ledger
	CpmEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cpm_earned_total",
			Help: "Valor total de CPM creditado",
		},
	)

	CpmCapped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpm_capped_entries_total",
			Help: "Entradas do ledger limitadas por teto",
		},
		[]string{"cap"},
	)

	ViralAlerts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "viral_alerts_total",
			Help: "Alertas virais gravados",
		},
	)

	// ProviderRequests conta chamadas ao provedor por operação e resultado
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Chamadas HTTP ao provedor de scraping",
		},
		[]string{"operation", "status"},
	)

	ProviderFetchAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provider_fetch_attempts",
			Help:    "Tentativas necessárias por coleta",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Estado do circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// HTTPRequests conta requisições atendidas pela API
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requisições HTTP atendidas",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
