package handler

import (
	"context"
	"net/http"
	"time"
)

// readinessTimeout bounds each readiness check.
const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// ReadinessCheck is one dependency /readyz waits on.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK, Version: version})
	}
}

// HandleReadyz runs every check and reports the ones that failed.
// @Summary Readiness check
// @Description Returns OK if the service is ready to accept traffic (database reachable, reference data loaded)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			err := c.Check(ctx)
			cancel()
			if err != nil {
				loggerFor(r).Error(LogMsgReadinessFailed, LogFieldCheck, c.Name, "error", err)
				failed[c.Name] = err.Error()
			}
		}

		if len(failed) > 0 {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: HealthStatusUnavailable, Failed: failed})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}
