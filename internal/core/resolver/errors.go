package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrNoValidConnection     = errors.New("no valid connection")
	ErrIncompatibleFluid     = errors.New("incompatible fluid")
	ErrMissingRecipe         = errors.New("missing recipe")
	ErrOccupiedEndpoint      = errors.New("endpoint occupied")
	ErrUnsupportedSourceRole = errors.New("unsupported source")
	ErrUnsupportedTargetRole = errors.New("unsupported target")
	ErrAlreadyConnected      = errors.New("already connected")
	ErrUnknownConnector      = errors.New("unknown connector")
)

// ErrorCode is a numeric error kind for callers that cannot use errors.Is,
// e.g. remote clients of the websocket service.
type ErrorCode int

const (
	ErrorCodeNone ErrorCode = 0

	// Candidate search (1000-1999)

	ErrorCodeNoValidConnection ErrorCode = 1001
	ErrorCodeAlreadyConnected  ErrorCode = 1002

	// Fluid preconditions (2000-2999)

	ErrorCodeIncompatibleFluid ErrorCode = 2001
	ErrorCodeMissingRecipe     ErrorCode = 2002

	// Endpoint roles (3000-3999)

	ErrorCodeOccupiedEndpoint      ErrorCode = 3001
	ErrorCodeUnsupportedSourceRole ErrorCode = 3002
	ErrorCodeUnsupportedTargetRole ErrorCode = 3003

	ErrorCodeUnknownConnector ErrorCode = 9001
	ErrorCodeUnknownError     ErrorCode = 9999
)

var errorCodeMap = map[error]ErrorCode{
	ErrNoValidConnection:     ErrorCodeNoValidConnection,
	ErrAlreadyConnected:      ErrorCodeAlreadyConnected,
	ErrIncompatibleFluid:     ErrorCodeIncompatibleFluid,
	ErrMissingRecipe:         ErrorCodeMissingRecipe,
	ErrOccupiedEndpoint:      ErrorCodeOccupiedEndpoint,
	ErrUnsupportedSourceRole: ErrorCodeUnsupportedSourceRole,
	ErrUnsupportedTargetRole: ErrorCodeUnsupportedTargetRole,
	ErrUnknownConnector:      ErrorCodeUnknownConnector,
}

var codeErrorMap = func() map[ErrorCode]error {
	out := make(map[ErrorCode]error, len(errorCodeMap))
	for err, code := range errorCodeMap {
		out[code] = err
	}
	return out
}()

// Error is a resolution failure with a message meant for the agent.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Cause.Error() + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext attaches structured detail, e.g. the fluid role sets involved.
func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// NewError builds an Error whose cause is the sentinel registered for code.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   codeErrorMap[code],
		Context: make(map[string]any),
	}
}

// GetErrorCode returns the code of err, ErrorCodeNone for nil.
func GetErrorCode(err error) ErrorCode {
	if err == nil {
		return ErrorCodeNone
	}
	var resolveErr *Error
	if errors.As(err, &resolveErr) {
		return resolveErr.Code
	}
	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ErrorCodeUnknownError
}

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeNone:
		return "None"
	case ErrorCodeNoValidConnection:
		return "NoValidConnection"
	case ErrorCodeAlreadyConnected:
		return "AlreadyConnected"
	case ErrorCodeIncompatibleFluid:
		return "IncompatibleFluid"
	case ErrorCodeMissingRecipe:
		return "MissingRecipe"
	case ErrorCodeOccupiedEndpoint:
		return "OccupiedEndpoint"
	case ErrorCodeUnsupportedSourceRole:
		return "UnsupportedSourceRole"
	case ErrorCodeUnsupportedTargetRole:
		return "UnsupportedTargetRole"
	case ErrorCodeUnknownConnector:
		return "UnknownConnector"
	default:
		return "Unknown"
	}
}
