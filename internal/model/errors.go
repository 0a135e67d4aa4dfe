package model

import "errors"

// Failure kinds. A *ResolveError matches its kind with errors.Is.
var (
	ErrNetwork           = errors.New("network error")
	ErrUpstream          = errors.New("upstream failure")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrInvalidInput      = errors.New("invalid input")
)

// ResolveError is the only error type resolvers return. Message is shown to API clients as is.
type ResolveError struct {
	Kind    error
	Message string
	Err     error
}

func NewResolveError(kind error, msg string, cause error) *ResolveError {
	return &ResolveError{Kind: kind, Message: msg, Err: cause}
}

func (e *ResolveError) Error() string {
	return e.Message
}

func (e *ResolveError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ErrorMessage returns the client-facing text for err.
func ErrorMessage(err error) string {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Message
	}
	return "Unexpected error: " + err.Error()
}
