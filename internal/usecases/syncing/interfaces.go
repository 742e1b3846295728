package syncing

import (
	"context"

	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/cpm"
)

// MetricsProvider coleta as métricas atuais de um post no provedor externo
type MetricsProvider interface {
	FetchMetrics(ctx context.Context, platform domain.Platform, url string) (*domain.Metrics, error)
}

// ViralDetector registra marcos de visualização
type ViralDetector interface {
	CheckAndUpdate(ctx context.Context, postID string, currentViews int64) (bool, error)
}

// CpmAccruer grava o acúmulo diário de CPM de um post aprovado
type CpmAccruer interface {
	Accrue(ctx context.Context, input cpm.AccrualInput) (*cpm.AccrualResult, error)
}

// Syncer executa um ciclo completo de sincronização
type Syncer interface {
	Run(ctx context.Context, opts domain.SyncOptions) (*domain.SyncResult, error)
}
