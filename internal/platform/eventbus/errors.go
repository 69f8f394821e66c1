package eventbus

import (
	"fmt"
	"net/http"

	"github.com/philly/looper/internal/platform/apperror"
	"github.com/philly/looper/internal/platform/signature"
)

var (
	// ErrArgumentMismatch is returned by Emit when a handler registered for
	// the event expects a different argument list.
	ErrArgumentMismatch = apperror.New(
		apperror.CodeInvalidArgument,
		apperror.ReasonArgumentMismatch,
		"invalid call to event handler: mismatched argument list",
		http.StatusUnprocessableEntity,
	)

	// ErrInvalidHandler is returned by On when the handler cannot be stored.
	ErrInvalidHandler = apperror.New(
		apperror.CodeInvalidArgument,
		apperror.ReasonInvalidHandler,
		"invalid event handler",
		http.StatusBadRequest,
	)

	// ErrNoThread is returned by On when ctx carries no thread identity.
	ErrNoThread = apperror.New(
		apperror.CodeFailedPrecondition,
		apperror.ReasonNoThread,
		"registering a handler requires a thread context",
		http.StatusBadRequest,
	)

	ErrLoopRunning = apperror.New(
		apperror.CodeFailedPrecondition,
		apperror.ReasonLoopRunning,
		"run loop already running",
		http.StatusConflict,
	)

	ErrLoopStopped = apperror.New(
		apperror.CodeFailedPrecondition,
		apperror.ReasonLoopStopped,
		"run loop stopped",
		http.StatusConflict,
	)
)

// Mismatch is attached as Details to ErrArgumentMismatch errors.
type Mismatch struct {
	Event    string `json:"event"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

func mismatchError(event string, expected, got signature.Tag) error {
	err := ErrArgumentMismatch.Clone()
	err.Message = fmt.Sprintf("%s: handler for %q expects %s, emitted %s",
		ErrArgumentMismatch.Message, event, expected, got)
	return err.WithDetails(Mismatch{
		Event:    event,
		Expected: expected.String(),
		Got:      got.String(),
	})
}

func invalidHandlerError(inner error) error {
	return apperror.Wrap(
		inner,
		ErrInvalidHandler.Code,
		ErrInvalidHandler.Reason,
		ErrInvalidHandler.Message+": "+inner.Error(),
		ErrInvalidHandler.HTTPStatus,
	)
}
