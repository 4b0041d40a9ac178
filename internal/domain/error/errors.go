package error

import "errors"

var (
	ErrScriptNotFound          = errors.New("script not found")
	ErrScriptBusy              = errors.New("script is already executing")
	ErrInvalidStatusTransition = errors.New("invalid script status transition")

	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderExists   = errors.New("provider already exists")
	ErrUnknownProvider  = errors.New("unknown provider kind")

	ErrInvalidInput = errors.New("invalid input")
)

// DomainError is implemented by errors that carry a stable code.
type DomainError interface {
	error
	Code() string
	Message() string
}

// BusinessError wraps a cause with a code that the HTTP layer can surface.
type BusinessError struct {
	code    string
	message string
	cause   error
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{
		code:    code,
		message: message,
		cause:   cause,
	}
}

func (e *BusinessError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *BusinessError) Code() string {
	return e.code
}

func (e *BusinessError) Message() string {
	return e.message
}

func (e *BusinessError) Unwrap() error {
	return e.cause
}
