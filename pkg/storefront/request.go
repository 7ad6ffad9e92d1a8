package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Request is a single HTTP call issued through a Transport.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     interface{}
	Headers  map[string]string
	WithAuth bool
	// NoCache skips the response cache lookup; a fresh response is still
	// stored.
	NoCache  bool
	Metadata map[string]interface{}
}

// Response is the raw result of a Request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Cached     bool
	Error      error
}

// Transport executes requests against the backend. A non-2xx response is
// returned together with a KindHTTP *Error.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do implements Transport.
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Session exposes the current auth token and notifies on change.
type Session interface {
	Token() string
	Subscribe(fn func(token string)) (cancel func())
}

// SessionStore owns the session token. It is set on login and cleared on
// logout; transports only read it.
type SessionStore interface {
	Session
	SetToken(token string)
	Clear()
	Authenticated() bool
}

// RequestDescriptor identifies a GET: resource path, query parameters and
// whether the session token should be attached.
type RequestDescriptor struct {
	Path     string
	Query    QueryParams
	WithAuth bool
}

// Validate checks the path and query values.
func (d RequestDescriptor) Validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return ErrPathRequired
	}

	_, err := d.Query.Values()
	if err != nil {
		return err
	}

	return nil
}

// Key returns the canonical identity of the descriptor. Two descriptors with
// equal keys issue identical requests.
func (d RequestDescriptor) Key() string {
	encoded, err := d.Query.Encode()
	if err != nil {
		encoded = fmt.Sprintf("invalid:%v", err)
	}

	var builder strings.Builder

	builder.WriteString(d.Path)

	if encoded != "" {
		builder.WriteByte('?')
		builder.WriteString(encoded)
	}

	builder.WriteString("|auth=")
	builder.WriteString(strconv.FormatBool(d.WithAuth))

	return builder.String()
}

// Request converts the descriptor into a GET request.
func (d RequestDescriptor) Request() (*Request, error) {
	err := d.Validate()
	if err != nil {
		return nil, err
	}

	values, err := d.Query.Values()
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		values = nil
	}

	return &Request{
		Method:   http.MethodGet,
		Path:     d.Path,
		Query:    values,
		WithAuth: d.WithAuth,
	}, nil
}

// JoinPath appends an escaped id to a resource path.
func JoinPath(path, id string) string {
	return strings.TrimSuffix(path, "/") + "/" + url.PathEscape(id)
}
