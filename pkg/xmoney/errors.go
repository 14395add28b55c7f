package xmoney

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure surfaced by the client.
type ErrorKind string

const (
	// KindConnection means no response was received (network failure, timeout, DNS, TLS).
	KindConnection ErrorKind = "ConnectionError"
	// KindAuthentication means the API rejected the credentials (401/403).
	KindAuthentication ErrorKind = "AuthenticationError"
	// KindInvalidRequest means the API rejected the request (400/404/422).
	KindInvalidRequest ErrorKind = "InvalidRequestError"
	// KindAPI covers any other failure status.
	KindAPI ErrorKind = "APIError"
	// KindConfiguration means the client could not be configured, e.g. a malformed secret key.
	KindConfiguration ErrorKind = "ConfigurationError"
	// KindPayloadFormat means a webhook payload could not be split, decrypted, or parsed.
	KindPayloadFormat ErrorKind = "PayloadFormatError"
)

// Error is the single error type returned by the client. Dispatch on Kind
// rather than on the concrete type.
type Error struct {
	Kind       ErrorKind     `json:"kind"                 yaml:"kind"`
	Message    string        `json:"message"              yaml:"message"`
	StatusCode int           `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Details    []ErrorDetail `json:"details,omitempty"    yaml:"details,omitempty"`
	Err        error         `json:"-"                    yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status: %d)", e.Kind, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// FirstDetail returns the first error detail or nil.
func (e *Error) FirstDetail() *ErrorDetail {
	if len(e.Details) > 0 {
		return &e.Details[0]
	}

	return nil
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates an Error of the given kind around a cause.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindForStatus maps an HTTP status (or envelope code) to an ErrorKind.
func KindForStatus(status int) ErrorKind {
	switch status {
	case 400, 404, 422:
		return KindInvalidRequest
	case 401, 403:
		return KindAuthentication
	default:
		return KindAPI
	}
}

// ErrorMessage returns the first non-empty detail message, falling back to
// the top-level message.
func ErrorMessage(message string, details []ErrorDetail) string {
	if len(details) > 0 && details[0].Message != "" {
		return details[0].Message
	}

	return message
}

// KindOf returns the kind of err, or an empty kind when err is not an *Error.
func KindOf(err error) ErrorKind {
	xErr := &Error{}
	if errors.As(err, &xErr) {
		return xErr.Kind
	}

	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsConnection checks if the error is a connection error.
func IsConnection(err error) bool {
	return IsKind(err, KindConnection)
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	return IsKind(err, KindAuthentication)
}

// IsInvalidRequest checks if the error is an invalid request error.
func IsInvalidRequest(err error) bool {
	return IsKind(err, KindInvalidRequest)
}

// IsAPI checks if the error is a generic API error.
func IsAPI(err error) bool {
	return IsKind(err, KindAPI)
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	return IsKind(err, KindConfiguration)
}

// IsPayloadFormat checks if the error is a webhook payload format error.
func IsPayloadFormat(err error) bool {
	return IsKind(err, KindPayloadFormat)
}

// Common static errors that can be wrapped with context.
var (
	ErrNoMoreItems         = errors.New("no more items")
	ErrConfigRequired      = errors.New("config is required")
	ErrSecretKeyRequired   = errors.New("secret key is required")
	ErrInvalidSecretKey    = errors.New("invalid secret key, it must start with 'sk_test_' or 'sk_live_'")
	ErrMissingPagination   = errors.New("paginated response missing pagination")
	ErrUnknownKeyMaterial  = errors.New("unknown webhook key material")
	ErrNilRequest          = errors.New("request is required")
	ErrEmptyWebhookPayload = errors.New("webhook payload is empty")
	ErrNegativeTimeout     = errors.New("timeout must not be negative")
	ErrInvalidBaseURL      = errors.New("base URL must be an absolute URL")
)
