package apperror

// ErrorCode is the general, system-level category of an error.
type ErrorCode string

const (
	CodeInvalidArgument    ErrorCode = "INVALID_ARGUMENT"
	CodeFailedPrecondition ErrorCode = "FAILED_PRECONDITION"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// Reason narrows an ErrorCode down to the specific cause.
type Reason string

const (
	ReasonGeneral          Reason = "GENERAL"
	ReasonArgumentMismatch Reason = "ARGUMENT_MISMATCH"
	ReasonInvalidHandler   Reason = "INVALID_HANDLER"
	ReasonNoThread         Reason = "NO_THREAD"
	ReasonLoopRunning      Reason = "LOOP_RUNNING"
	ReasonLoopStopped      Reason = "LOOP_STOPPED"
	ReasonInvalidPayload   Reason = "INVALID_PAYLOAD"
	ReasonInvalidConfig    Reason = "INVALID_CONFIG"
)
