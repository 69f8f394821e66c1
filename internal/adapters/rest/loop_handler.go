package rest

import (
	"net/http"

	"github.com/philly/looper/internal/adapters/rest/middleware"
)

// QuitResponse acknowledges a quit request.
type QuitResponse struct {
	Status  string `json:"status"`
	Pending int    `json:"pending"`
}

type LoopHandler struct {
	*BaseHandler
	bus Bus
}

func NewLoopHandler(base *BaseHandler, bus Bus) *LoopHandler {
	return &LoopHandler{BaseHandler: base, bus: bus}
}

// GetLoop returns the dispatcher counters and loop state.
func (h *LoopHandler) GetLoop(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, h.bus.Stats(), http.StatusOK)
}

// QuitLoop asks the run loop to drain and stop. The daemon shuts down once
// the loop has returned.
func (h *LoopHandler) QuitLoop(w http.ResponseWriter, r *http.Request) {
	h.bus.Quit()
	subject, _ := middleware.GetJWTSubject(r.Context())
	h.logger.Info(r.Context(), "quit requested via admin api", "subject", subject)
	h.WriteJSONResponse(w, r, QuitResponse{
		Status:  "quitting",
		Pending: h.bus.Stats().Pending,
	}, http.StatusAccepted)
}
