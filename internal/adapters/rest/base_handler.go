package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/philly/looper/internal/adapters/rest/middleware"
	"github.com/philly/looper/internal/platform/apperror"
	"github.com/philly/looper/internal/platform/logger"
	"github.com/philly/looper/internal/platform/validator"
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// ErrorResponse is the JSON body of every error returned by the admin API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

// WriteJSONError writes a JSON error response
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	h.writeError(w, r, ErrorResponse{Error: code, Message: message}, statusCode)
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil || statusCode == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError maps err onto an HTTP response. AppErrors keep their code,
// reason, status and details; anything else is an opaque 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		h.WriteJSONError(w, r, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}

	h.writeError(w, r, ErrorResponse{
		Error:   string(appErr.Code),
		Reason:  string(appErr.Reason),
		Message: appErr.Message,
		Context: appErr.Details,
	}, status)
}

// ParseEventName validates an event name taken from the URL and writes a
// 400 response if it is invalid.
func (h *BaseHandler) ParseEventName(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	if err := validator.ValidateEventName(name); err != nil {
		h.WriteJSONError(w, r, middleware.ErrorCodeInvalidRequest, "Invalid event name: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	return name, true
}

func (h *BaseHandler) writeError(w http.ResponseWriter, r *http.Request, body ErrorResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", body.Error,
			"status_code", statusCode,
		)
	}
}

// notFound and methodNotAllowed keep chi's fallbacks in the JSON error format.
func notFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSONError(w, middleware.ErrorCodeNotFound, "route not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSONError(w, middleware.ErrorCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed)
}
