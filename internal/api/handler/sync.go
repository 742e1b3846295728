package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/scheduler"
	"github.com/vfg2006/creator-cpm-sync/pkg/apiErrors"
	"github.com/vfg2006/creator-cpm-sync/pkg/log"
)

// SyncRunner é o agendador visto pela API
type SyncRunner interface {
	RunNow(ctx context.Context, trigger string, opts domain.SyncOptions) (*domain.SyncResult, error)
	GetStatus() map[string]any
}

// RunSync executa uma sincronização manual e devolve o resumo da execução
func RunSync(runner SyncRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var opts domain.SyncOptions
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
				return
			}
		}

		logger.WithFields(log.Fields{
			"account_ids": opts.AccountIDs,
		}).Info("sync: disparo manual recebido")

		result, err := runner.RunNow(r.Context(), scheduler.TriggerManual, opts)
		if err != nil {
			if errors.Is(err, scheduler.ErrSyncAlreadyRunning) {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe uma sincronização em andamento", nil)
				return
			}

			logger.WithError(errors.Wrap(err, "sync: execução manual falhou")).Error("sync: erro ao executar sincronização")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao executar sincronização", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetSyncStatus(runner SyncRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, runner.GetStatus())
	}
}
