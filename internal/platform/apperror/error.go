package apperror

import "fmt"

// AppError is the error type shared by the dispatcher and its host surfaces.
type AppError struct {
	Code       ErrorCode // General category (e.g., INVALID_ARGUMENT)
	Reason     Reason    // Specific cause (e.g., ARGUMENT_MISMATCH)
	Message    string    // Developer-facing message
	HTTPStatus int       // Status used when the error reaches the admin API
	Details    any       // Extra details (e.g., the mismatched signatures)
	Inner      error     // Wrapped underlying error
}

func (e *AppError) Error() string { return e.Message }
func (e *AppError) Unwrap() error { return e.Inner }

// WithDetails sets Details on e and returns it. Sentinels must be copied
// with Clone first.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Clone returns a shallow copy of e, so a package-level sentinel can be
// specialised per call without being mutated.
func (e *AppError) Clone() *AppError {
	c := *e
	return &c
}

// New creates a new AppError.
func New(code ErrorCode, reason Reason, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Reason: reason, Message: message, HTTPStatus: httpStatus}
}

// Wrap creates a new AppError that wraps an existing error.
func Wrap(inner error, code ErrorCode, reason Reason, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Reason: reason, Message: message, HTTPStatus: httpStatus, Inner: inner}
}

// Is allows errors.Is to work with AppError
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	// Code and Reason together identify the failure; the message may vary.
	return e.Code == t.Code && e.Reason == t.Reason
}

// Format implements fmt.Formatter for better error output
func (e *AppError) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			_, _ = fmt.Fprintf(f, "Code: %s, Reason: %s, Message: %s, HTTPStatus: %d",
				e.Code, e.Reason, e.Message, e.HTTPStatus)
			if e.Inner != nil {
				_, _ = fmt.Fprintf(f, "\nCaused by: %+v", e.Inner)
			}
			if e.Details != nil {
				_, _ = fmt.Fprintf(f, "\nDetails: %+v", e.Details)
			}
		} else {
			_, _ = fmt.Fprint(f, e.Message)
		}
	case 's':
		_, _ = fmt.Fprint(f, e.Message)
	}
}
