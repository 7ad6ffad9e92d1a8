package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies why a request failed.
type ErrorKind string

const (
	// KindNetwork is a transport failure: no connectivity, DNS, reset, etc.
	KindNetwork ErrorKind = "network"

	// KindHTTP is a response outside the 2xx range.
	KindHTTP ErrorKind = "http"

	// KindDecode is a 2xx response whose body could not be parsed.
	KindDecode ErrorKind = "decode"

	// KindCanceled means the request context was canceled or timed out.
	KindCanceled ErrorKind = "canceled"

	// KindInvalid is a request that was rejected before dispatch.
	KindInvalid ErrorKind = "invalid"
)

// Error is the single error type surfaced by transports and hooks.
type Error struct {
	Kind    ErrorKind `json:"kind"              yaml:"kind"`
	Status  int       `json:"status,omitempty"  yaml:"status,omitempty"`
	Message string    `json:"message"           yaml:"message"`
	Method  string    `json:"method,omitempty"  yaml:"method,omitempty"`
	Path    string    `json:"path,omitempty"    yaml:"path,omitempty"`
	Body    []byte    `json:"-"                 yaml:"-"`
	Err     error     `json:"-"                 yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	var target string
	if e.Method != "" || e.Path != "" {
		target = strings.TrimSpace(e.Method+" "+e.Path) + ": "
	}

	switch e.Kind {
	case KindHTTP:
		if e.Message == "" {
			return fmt.Sprintf("%sHTTP %d %s", target, e.Status, http.StatusText(e.Status))
		}

		return fmt.Sprintf("%sHTTP %d: %s", target, e.Status, e.Message)
	default:
		if e.Message == "" && e.Err != nil {
			return fmt.Sprintf("%s%s error: %v", target, e.Kind, e.Err)
		}

		return fmt.Sprintf("%s%s error: %s", target, e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewHTTPError builds a KindHTTP error from a status code and response body.
func NewHTTPError(status int, body []byte) *Error {
	return &Error{
		Kind:    KindHTTP,
		Status:  status,
		Message: ParseErrorMessage(body),
		Body:    body,
	}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// NewCanceledError wraps a context error.
func NewCanceledError(err error) *Error {
	return &Error{Kind: KindCanceled, Message: err.Error(), Err: err}
}

// NewDecodeError wraps a body parsing failure.
func NewDecodeError(err error, body []byte) *Error {
	return &Error{Kind: KindDecode, Message: err.Error(), Body: body, Err: err}
}

// NewInvalidError wraps a request that never left the client.
func NewInvalidError(err error) *Error {
	return &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
}

// AsError converts any error into an *Error. Context errors become
// KindCanceled; anything else that is not already an *Error is classified
// as a network failure.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	sfErr := &Error{}
	if errors.As(err, &sfErr) {
		return sfErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewCanceledError(err)
	}

	if errors.Is(err, ErrPathRequired) || errors.Is(err, ErrIDRequired) || errors.Is(err, ErrUnsupportedQueryValue) {
		return NewInvalidError(err)
	}

	return NewNetworkError(err)
}

// backendError covers the error body shapes the backend returns.
type backendError struct {
	Message string `json:"message"`
	Error   any    `json:"error"`
	Errors  []struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	} `json:"errors"`
}

// ParseErrorMessage extracts a human readable message from a backend error
// body. It returns an empty string when the body carries nothing usable.
func ParseErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var parsed backendError

	err := json.Unmarshal(body, &parsed)
	if err != nil {
		if len(trimmed) > maxPlainErrorLength {
			return trimmed[:maxPlainErrorLength]
		}

		return trimmed
	}

	if parsed.Message != "" {
		return parsed.Message
	}

	switch value := parsed.Error.(type) {
	case string:
		if value != "" {
			return value
		}
	case map[string]any:
		if msg, ok := value["message"].(string); ok && msg != "" {
			return msg
		}
	}

	messages := make([]string, 0, len(parsed.Errors))

	for _, item := range parsed.Errors {
		switch {
		case item.Message != "":
			messages = append(messages, item.Message)
		case item.Msg != "":
			messages = append(messages, item.Msg)
		}
	}

	return strings.Join(messages, "; ")
}

const maxPlainErrorLength = 256

// Static errors for err113 compliance.
var (
	ErrPathRequired          = errors.New("resource path is required")
	ErrIDRequired            = errors.New("resource id is required")
	ErrUnsupportedQueryValue = errors.New("query parameter value cannot be represented as a string")
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrFetcherClosed         = errors.New("fetcher is closed")
	ErrNoTransport           = errors.New("transport is required")
	ErrNoMorePages           = errors.New("no more pages")
	ErrCacheMiss             = errors.New("key not found")
	ErrCacheExpired          = errors.New("entry expired")
	ErrNotAuthenticated      = errors.New("not authenticated")
)

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	sfErr := &Error{}
	if errors.As(err, &sfErr) {
		return sfErr.Status
	}

	return 0
}

// IsKind checks whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	sfErr := &Error{}
	if errors.As(err, &sfErr) {
		return sfErr.Kind == kind
	}

	return false
}

// IsNotFound checks if the error is an HTTP 404.
func IsNotFound(err error) bool {
	return IsKind(err, KindHTTP) && StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an HTTP 401.
func IsUnauthorized(err error) bool {
	return IsKind(err, KindHTTP) && StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is an HTTP 403.
func IsForbidden(err error) bool {
	return IsKind(err, KindHTTP) && StatusCode(err) == http.StatusForbidden
}

// IsValidation checks if the error is an HTTP 400 or 422.
func IsValidation(err error) bool {
	status := StatusCode(err)

	return IsKind(err, KindHTTP) && (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity)
}

// IsServerError checks if the error is an HTTP 5xx.
func IsServerError(err error) bool {
	return IsKind(err, KindHTTP) && StatusCode(err) >= http.StatusInternalServerError
}

// IsNetwork checks if the request never produced a response.
func IsNetwork(err error) bool {
	return IsKind(err, KindNetwork)
}

// IsCanceled checks if the request was abandoned by its context.
func IsCanceled(err error) bool {
	return IsKind(err, KindCanceled)
}
