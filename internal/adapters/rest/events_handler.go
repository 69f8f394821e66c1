package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/philly/looper/internal/adapters/rest/middleware"
	"github.com/philly/looper/internal/platform/apperror"
	"github.com/philly/looper/internal/platform/eventbus"
)

// Bus is the dispatcher surface the admin API drives.
type Bus interface {
	Emit(ctx context.Context, name string, args ...any) error
	UnregisterEvent(name string)
	Events() []eventbus.EventInfo
	Stats() eventbus.Stats
	Quit()
}

var _ Bus = (*eventbus.Dispatcher)(nil)

// EmitRequest is the body of POST /events/{name}. It may be omitted for
// events without arguments.
type EmitRequest struct {
	Args []any `json:"args"`
}

// EmitResponse acknowledges an emit.
type EmitResponse struct {
	Event string `json:"event"`
	Args  int    `json:"args"`
}

var errInvalidPayload = apperror.New(
	apperror.CodeValidationFailed,
	apperror.ReasonInvalidPayload,
	"invalid emit payload",
	http.StatusBadRequest,
)

type EventsHandler struct {
	*BaseHandler
	bus Bus
}

func NewEventsHandler(base *BaseHandler, bus Bus) *EventsHandler {
	return &EventsHandler{BaseHandler: base, bus: bus}
}

// ListEvents returns every registered event name with its handler count.
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, h.bus.Events(), http.StatusOK)
}

// EmitEvent emits the named event with the JSON arguments in the body.
// The request context carries no thread identity, so every handler is
// marshalled onto its owner's loop and the response never waits for them.
func (h *EventsHandler) EmitEvent(w http.ResponseWriter, r *http.Request) {
	name, ok := h.ParseEventName(w, r, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	args, err := decodeArgs(r.Body)
	if err != nil {
		h.HandleError(w, r, apperror.Wrap(err,
			errInvalidPayload.Code, errInvalidPayload.Reason,
			errInvalidPayload.Message+": "+err.Error(), errInvalidPayload.HTTPStatus))
		return
	}

	if err := h.bus.Emit(r.Context(), name, args...); err != nil {
		h.HandleError(w, r, err)
		return
	}

	subject, _ := middleware.GetJWTSubject(r.Context())
	h.logger.Debug(r.Context(), "event emitted via admin api", "event", name, "args", len(args), "subject", subject)
	h.WriteJSONResponse(w, r, EmitResponse{Event: name, Args: len(args)}, http.StatusAccepted)
}

// UnregisterEvent drops every handler for the named event.
func (h *EventsHandler) UnregisterEvent(w http.ResponseWriter, r *http.Request) {
	name, ok := h.ParseEventName(w, r, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	h.bus.UnregisterEvent(name)
	w.WriteHeader(http.StatusNoContent)
}

// decodeArgs reads an EmitRequest. Integral JSON numbers become int and
// the rest float64, so handlers declared with int parameters can be reached.
func decodeArgs(body io.Reader) ([]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var req EmitRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	args := make([]any, len(req.Args))
	for i, a := range req.Args {
		args[i] = normalizeNumber(a)
	}
	return args, nil
}

func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
