package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/filehaven/filehaven/pkg/controlplane/runtime"
)

// HealthCheckTimeout is the maximum duration for readiness checks.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	runtime   *runtime.Runtime
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(rt *runtime.Runtime) *HealthHandler {
	return &HealthHandler{
		runtime:   rt,
		startTime: time.Now(),
	}
}

// Liveness handles GET /health requests.
// Returns 200 OK if the process is alive. Used by orchestrators to
// decide whether the process should be restarted.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)

	WriteJSONOK(w, healthyResponse(map[string]interface{}{
		"service":    "filehaven",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.String(),
		"uptime_sec": int64(uptime.Seconds()),
	}))
}

// Readiness handles GET /health/ready requests.
// Returns 200 OK only when the runtime and its backing store are able
// to serve traffic, 503 otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.runtime == nil {
		WriteJSON(w, http.StatusServiceUnavailable,
			unhealthyResponse("runtime not initialized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.runtime.Healthcheck(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable,
			unhealthyResponse(err.Error()))
		return
	}

	WriteJSONOK(w, healthyResponse(map[string]interface{}{
		"service": "filehaven",
	}))
}
