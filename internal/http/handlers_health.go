package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/txpay/txpay-admin/internal/ports"
)

// deepHealthTimeout bounds the upstream check of /healthz?deep=1.
const deepHealthTimeout = 5 * time.Second

type healthReport struct {
	Status     string `json:"status"`
	API        string `json:"api,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
}

// healthCheck serves /healthz for liveness checks. With deep=1 it also asks the TX Pay
// API for its health and answers 503 while the API is unreachable. HEAD
// requests and a nil connector get the shallow answer.
func healthCheck(api ports.TXPayConnector, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil || r.Method == http.MethodHead || r.URL.Query().Get("deep") == "" {
			writeJSON(w, r, http.StatusOK, healthReport{Status: "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), deepHealthTimeout)
		defer cancel()

		h, err := api.ForToken("").Health(ctx)
		if err != nil {
			logger.WarnContext(r.Context(), "deep health check failed", "error", err)
			writeJSON(w, r, http.StatusServiceUnavailable, healthReport{Status: "degraded", API: "unavailable"})
			return
		}
		writeJSON(w, r, http.StatusOK, healthReport{Status: "ok", API: h.Status, APIVersion: h.Version})
	}
}
