package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/earnings"
	"github.com/vfg2006/creator-cpm-sync/pkg/apiErrors"
	"github.com/vfg2006/creator-cpm-sync/pkg/log"
	"github.com/vfg2006/creator-cpm-sync/pkg/middleware"
	"github.com/vfg2006/creator-cpm-sync/pkg/utils"
)

// GetUserEarnings retorna o total do mês, o teto e o quanto ainda resta.
// Viewers só podem consultar o próprio usuário.
func GetUserEarnings(reporter earnings.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		userID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok &&
			claims.Role == domain.RoleViewer && claims.UserID != userID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você só pode consultar seus próprios ganhos", nil)
			return
		}

		month := time.Now().UTC()
		if raw := r.URL.Query().Get("month"); raw != "" {
			parsed, err := utils.ParseMonth(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use o formato YYYY-MM", nil)
				return
			}
			month = parsed
		}

		summary, err := reporter.GetUserMonthlyEarnings(r.Context(), userID, month)
		if err != nil {
			logger.WithError(errors.Wrap(err, "earnings: resumo mensal")).WithFields(log.Fields{
				"user_id": userID,
			}).Error("earnings: erro ao buscar ganhos do usuário")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ganhos", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

func GetPostLedger(reporter earnings.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		entries, err := reporter.GetPostLedger(r.Context(), postID)
		if err != nil {
			writeReportError(w, r, postID, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entries)
	}
}

func GetLatestAnalytics(reporter earnings.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		snapshot, err := reporter.GetLatestAnalytics(r.Context(), postID)
		if err != nil {
			writeReportError(w, r, postID, err)
			return
		}

		writeJSON(w, r, http.StatusOK, snapshot)
	}
}

func writeReportError(w http.ResponseWriter, r *http.Request, postID string, err error) {
	switch {
	case errors.Is(err, earnings.ErrPostNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Post não encontrado", nil)
	case errors.Is(err, earnings.ErrNoAnalytics):
		apiErrors.WriteError(w, apiErrors.ErrNoData, "Post ainda não possui métricas coletadas", nil)
	default:
		log.ForContext(r.Context()).WithError(err).WithFields(log.Fields{
			"post_id": postID,
		}).Error("earnings: erro ao consultar post")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar post", nil)
	}
}
