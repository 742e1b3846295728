package handler

import (
	"net/http"
	"time"
)

// BreakerReporter expõe o estado do circuit breaker do provedor
type BreakerReporter interface {
	BreakerState() string
}

func HealthcheckHandler(provider BreakerReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}
		if provider != nil {
			payload["provider_breaker"] = provider.BreakerState()
		}

		writeJSON(w, r, http.StatusOK, payload)
	})
}
