package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-cpm-sync/internal/config"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/syncing"
	"github.com/vfg2006/creator-cpm-sync/pkg/metrics"
)

const (
	TriggerCron   = "cron"
	TriggerManual = "manual"
)

var ErrSyncAlreadyRunning = errors.New("sincronização de analytics já em andamento")

// AnalyticsSyncConfig representa a configuração do agendador da sincronização de analytics
type AnalyticsSyncConfig struct {
	CronSchedule        string
	SyncEnabled         bool
	MaxConcurrentPosts  int
	RequestDelaySeconds int
	PostTimeout         time.Duration
}

// AnalyticsSyncService agenda e serializa as execuções do orquestrador
type AnalyticsSyncService struct {
	scheduler           *gocron.Scheduler
	config              AnalyticsSyncConfig
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastTrigger         string
	lastResult          *domain.SyncResult
	lastError           string
}

func NewAnalyticsSyncService(syncer syncing.Syncer, appConfig *config.Config) *AnalyticsSyncService {
	syncConfig := AnalyticsSyncConfig{
		CronSchedule:        appConfig.AnalyticsSync.CronSchedule,
		SyncEnabled:         appConfig.AnalyticsSync.Enabled,
		MaxConcurrentPosts:  appConfig.AnalyticsSync.MaxConcurrentPosts,
		RequestDelaySeconds: appConfig.AnalyticsSync.RequestDelaySeconds,
		PostTimeout:         appConfig.AnalyticsSync.PostTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"sync_enabled":          syncConfig.SyncEnabled,
		"max_concurrent_posts":  syncConfig.MaxConcurrentPosts,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"post_timeout":          syncConfig.PostTimeout.String(),
	}).Info("Configuração do agendador de sincronização de analytics carregada")

	return &AnalyticsSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		syncer:    syncer,
	}
}

// Start agenda a sincronização e para o agendador quando o contexto terminar
func (s *AnalyticsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de analytics desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de analytics")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_, err := s.RunNow(ctx, TriggerCron, domain.SyncOptions{})
		if errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.Info("Sincronização de analytics já em andamento, ignorando execução agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de analytics: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de analytics")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa um ciclo de forma síncrona. Retorna ErrSyncAlreadyRunning
// se outro ciclo ainda estiver em andamento.
func (s *AnalyticsSyncService) RunNow(ctx context.Context, trigger string, opts domain.SyncOptions) (*domain.SyncResult, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		metrics.SyncRuns.WithLabelValues(trigger, "skipped").Inc()
		return nil, ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.lastTrigger = trigger
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()

	logrus.WithFields(logrus.Fields{
		"trigger":     trigger,
		"account_ids": opts.AccountIDs,
	}).Info("Iniciando sincronização de analytics")

	result, err := s.syncer.Run(ctx, opts)

	duration := time.Since(startTime)
	metrics.SyncRunDuration.Observe(duration.Seconds())

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case result.Aborted:
		status = "aborted"
	case result.Failed > 0:
		status = "partial"
	}
	metrics.SyncRuns.WithLabelValues(trigger, status).Inc()

	s.syncMutex.Lock()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
		s.lastResult = result
	}
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"trigger":  trigger,
			"duration": duration.String(),
			"error":    err.Error(),
		}).Error("Sincronização de analytics falhou")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"trigger":    trigger,
		"run_id":     result.RunID,
		"duration":   duration.String(),
		"candidates": result.Candidates,
		"success":    result.Success,
		"failed":     result.Failed,
		"aborted":    result.Aborted,
	}).Info("Sincronização de analytics concluída")

	return result, nil
}

func (s *AnalyticsSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *AnalyticsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":              s.config.SyncEnabled,
		"sync_cron":                 s.config.CronSchedule,
		"sync_max_concurrent_posts": s.config.MaxConcurrentPosts,
		"sync_request_delay_s":      s.config.RequestDelaySeconds,
		"sync_post_timeout":         s.config.PostTimeout.String(),
		"sync_running":              s.syncRunning,
		"last_sync_trigger":         s.lastTrigger,
		"last_sync_started_at":      s.lastSyncStartedAt,
		"last_sync_completed_at":    s.lastSyncCompletedAt,
		"last_sync_result":          s.lastResult,
	}
	if s.lastError != "" {
		status["last_sync_error"] = s.lastError
	}

	return status
}
