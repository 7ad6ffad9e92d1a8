package storefront

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

// MutationState is a snapshot of a mutation hook.
type MutationState[T any] struct {
	Result    T
	HasResult bool
	Loading   bool
	Err       *Error
}

// ErrorMessage returns the error rendered as a string, or "".
func (s MutationState[T]) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}

	return s.Err.Error()
}

// MutationOption configures a mutation hook.
type MutationOption func(*mutationOptions)

type mutationOptions struct {
	withAuth    bool
	logger      Logger
	invalidates []Invalidator
}

// WithMutationAuth attaches the session token. Mutations are authenticated
// unless this is set to false.
func WithMutationAuth(withAuth bool) MutationOption {
	return func(o *mutationOptions) {
		o.withAuth = withAuth
	}
}

// WithMutationLogger sets the logger used for request outcomes.
func WithMutationLogger(logger Logger) MutationOption {
	return func(o *mutationOptions) {
		o.logger = logger
	}
}

// WithInvalidates refreshes targets after every successful mutation.
// Refresh failures are logged and do not fail the mutation.
func WithInvalidates(targets ...Invalidator) MutationOption {
	return func(o *mutationOptions) {
		o.invalidates = append(o.invalidates, targets...)
	}
}

// mutation holds the state shared by Creator, Updater and Deleter.
type mutation[T any] struct {
	transport Transport
	path      string
	options   mutationOptions

	mu       sync.Mutex
	state    MutationState[T]
	inflight int
}

func newMutation[T any](transport Transport, path string, opts []MutationOption) (*mutation[T], error) {
	if transport == nil {
		return nil, ErrNoTransport
	}

	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	options := mutationOptions{withAuth: true, logger: NoopLogger{}}
	for _, opt := range opts {
		opt(&options)
	}

	return &mutation[T]{transport: transport, path: path, options: options}, nil
}

func (m *mutation[T]) State() MutationState[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// run issues req and records the outcome. Bodies of successful responses
// are decoded only when decode is set.
func (m *mutation[T]) run(ctx context.Context, req *Request, decode bool) (T, error) {
	var zero T

	req.WithAuth = m.options.withAuth

	m.mu.Lock()
	m.inflight++
	m.state.Loading = true
	m.mu.Unlock()

	resp, err := m.transport.Do(ctx, req)

	var result T
	if err == nil && decode {
		result, err = decodeBody[T](resp)
	}

	m.mu.Lock()
	m.inflight--
	m.state.Loading = m.inflight > 0

	if err != nil {
		sfErr := AsError(err)
		if sfErr.Method == "" {
			sfErr.Method = req.Method
			sfErr.Path = req.Path
		}

		m.state.Err = sfErr
		m.mu.Unlock()

		m.options.logger.Debug("mutation failed", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"kind":   string(sfErr.Kind),
			"status": sfErr.Status,
		})

		return zero, sfErr
	}

	m.state.Err = nil
	m.state.Result = result
	m.state.HasResult = decode
	m.mu.Unlock()

	m.invalidate(ctx)

	return result, nil
}

func (m *mutation[T]) invalidate(ctx context.Context) {
	for _, target := range m.options.invalidates {
		err := target.Invalidate(ctx)
		if err != nil {
			m.options.logger.Warn("refresh after mutation failed", map[string]interface{}{
				"path":  m.path,
				"error": err.Error(),
			})
		}
	}
}

// Creator issues POST {path} with a JSON body.
type Creator[B, T any] struct {
	*mutation[T]
}

// NewCreator creates a POST hook for path.
func NewCreator[B, T any](transport Transport, path string, opts ...MutationOption) (*Creator[B, T], error) {
	m, err := newMutation[T](transport, path, opts)
	if err != nil {
		return nil, err
	}

	return &Creator[B, T]{mutation: m}, nil
}

// Execute creates a resource and returns the backend's representation.
func (c *Creator[B, T]) Execute(ctx context.Context, body B) (T, error) {
	return c.run(ctx, &Request{Method: http.MethodPost, Path: c.path, Body: body}, true)
}

// Updater issues PATCH {path}/{id} with a JSON body.
type Updater[B, T any] struct {
	*mutation[T]
}

// NewUpdater creates a PATCH hook for path.
func NewUpdater[B, T any](transport Transport, path string, opts ...MutationOption) (*Updater[B, T], error) {
	m, err := newMutation[T](transport, path, opts)
	if err != nil {
		return nil, err
	}

	return &Updater[B, T]{mutation: m}, nil
}

// Execute updates resource id and returns the backend's representation.
func (u *Updater[B, T]) Execute(ctx context.Context, id string, body B) (T, error) {
	var zero T

	if strings.TrimSpace(id) == "" {
		return zero, NewInvalidError(ErrIDRequired)
	}

	return u.run(ctx, &Request{Method: http.MethodPatch, Path: JoinPath(u.path, id), Body: body}, true)
}

// Deleter issues DELETE {path}/{id}. Any 2xx status is success; the body
// is never parsed.
type Deleter struct {
	*mutation[struct{}]
}

// NewDeleter creates a DELETE hook for path.
func NewDeleter(transport Transport, path string, opts ...MutationOption) (*Deleter, error) {
	m, err := newMutation[struct{}](transport, path, opts)
	if err != nil {
		return nil, err
	}

	return &Deleter{mutation: m}, nil
}

// Execute deletes resource id.
func (d *Deleter) Execute(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewInvalidError(ErrIDRequired)
	}

	_, err := d.run(ctx, &Request{Method: http.MethodDelete, Path: JoinPath(d.path, id)}, false)

	return err
}
