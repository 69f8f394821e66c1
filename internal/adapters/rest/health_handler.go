package rest

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Loop      string    `json:"loop,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type HealthHandler struct {
	*BaseHandler
	version string
	bus     Bus
}

func NewHealthHandler(base *BaseHandler, version Version, bus Bus) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     string(version),
		bus:         bus,
	}
}

// GetLiveness implements the liveness check endpoint
// If we can respond, we're alive.
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, HealthStatus{
		Status:    statusHealthy,
		Timestamp: time.Now(),
		Version:   h.version,
	}, http.StatusOK)
}

// GetReadiness reports ready only while the run loop is executing.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	stats := h.bus.Stats()

	status, httpStatus := statusHealthy, http.StatusOK
	if !stats.Looping {
		status, httpStatus = statusUnhealthy, http.StatusServiceUnavailable
	}

	h.WriteJSONResponse(w, r, HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Loop:      stats.State.String(),
	}, httpStatus)
}
