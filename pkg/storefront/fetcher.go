package storefront

import (
	"context"
	"encoding/json"
	"sync"
)

// FetchState is a snapshot of a Fetcher. Data keeps its last successful
// value when a later request fails.
type FetchState[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     *Error
}

// ErrorMessage returns the error rendered as a string, or "".
func (s FetchState[T]) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}

	return s.Err.Error()
}

// Invalidator is anything that can be told its data is stale.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// FetchOption configures a Fetcher.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	withAuth bool
	query    QueryParams
	session  Session
	lazy     bool
	logger   Logger
}

// WithAuth attaches the session token to every request.
func WithAuth(withAuth bool) FetchOption {
	return func(o *fetchOptions) {
		o.withAuth = withAuth
	}
}

// WithQuery sets the initial query parameters.
func WithQuery(query QueryParams) FetchOption {
	return func(o *fetchOptions) {
		o.query = query.Clone()
	}
}

// WithSession refetches whenever the session token changes while the
// fetcher is authenticated.
func WithSession(session Session) FetchOption {
	return func(o *fetchOptions) {
		o.session = session
	}
}

// WithLazy skips the initial request; the first fetch happens on Refetch or
// on a descriptor change.
func WithLazy() FetchOption {
	return func(o *fetchOptions) {
		o.lazy = true
	}
}

// WithFetchLogger sets the logger used for request outcomes.
func WithFetchLogger(logger Logger) FetchOption {
	return func(o *fetchOptions) {
		o.logger = logger
	}
}

// Fetcher keeps the result of a GET request up to date. It is the Go
// counterpart of a data-fetching hook: construction issues the request,
// descriptor or token changes issue a new one, and Close abandons any
// request still in flight.
type Fetcher[T any] struct {
	transport Transport
	logger    Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	desc        RequestDescriptor
	generation  uint64
	state       FetchState[T]
	inflight    int
	closed      bool
	subscribers map[uint64]func(FetchState[T])
	nextSubID   uint64
	pending     []delivery[T]
	delivering  bool

	stopSession func()
}

// delivery is a snapshot waiting to be handed to the subscribers that were
// registered when it was produced.
type delivery[T any] struct {
	snapshot    FetchState[T]
	subscribers []func(FetchState[T])
}

// NewFetcher creates a fetcher for path bound to ctx. Unless WithLazy is
// given, the first GET is dispatched before NewFetcher returns and the
// returned fetcher already reports Loading.
func NewFetcher[T any](ctx context.Context, transport Transport, path string, opts ...FetchOption) (*Fetcher[T], error) {
	if transport == nil {
		return nil, ErrNoTransport
	}

	options := fetchOptions{logger: NoopLogger{}}
	for _, opt := range opts {
		opt(&options)
	}

	desc := RequestDescriptor{Path: path, Query: options.query, WithAuth: options.withAuth}

	err := desc.Validate()
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithCancel(ctx)

	fetcher := &Fetcher[T]{
		transport:   transport,
		logger:      options.logger,
		ctx:         fetchCtx,
		cancel:      cancel,
		desc:        desc,
		subscribers: make(map[uint64]func(FetchState[T])),
	}

	if options.session != nil {
		fetcher.stopSession = options.session.Subscribe(fetcher.onTokenChange)
	}

	if !options.lazy {
		fetcher.dispatch()
	}

	return fetcher, nil
}

// State returns the current snapshot.
func (f *Fetcher[T]) State() FetchState[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Descriptor returns the current request descriptor.
func (f *Fetcher[T]) Descriptor() RequestDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()

	desc := f.desc
	desc.Query = desc.Query.Clone()

	return desc
}

// Subscribe registers fn to receive every state change. Snapshots are
// delivered one at a time in the order they were produced, and no lock is
// held while fn runs, so fn may call back into the fetcher (SetQuery,
// Refetch, Close). A snapshot produced while another goroutine is delivering
// is handed to that goroutine, so a call that changes state may return
// before its snapshot reaches fn.
func (f *Fetcher[T]) Subscribe(fn func(FetchState[T])) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = fn

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		delete(f.subscribers, id)
	}
}

// SetPath changes the resource path. A different path issues one GET.
func (f *Fetcher[T]) SetPath(path string) error {
	return f.update(func(desc *RequestDescriptor) {
		desc.Path = path
	})
}

// SetQuery replaces the query parameters. Parameters that serialize to the
// same query string are treated as unchanged.
func (f *Fetcher[T]) SetQuery(query QueryParams) error {
	query = query.Clone()

	return f.update(func(desc *RequestDescriptor) {
		desc.Query = query
	})
}

// SetWithAuth toggles credential attachment.
func (f *Fetcher[T]) SetWithAuth(withAuth bool) error {
	return f.update(func(desc *RequestDescriptor) {
		desc.WithAuth = withAuth
	})
}

// Refetch re-runs the current request and waits for it. On failure it
// returns the zero value and the error; State keeps the previous data.
func (f *Fetcher[T]) Refetch(ctx context.Context) (T, error) {
	return f.refetch(ctx, false)
}

// Invalidate implements Invalidator by refetching past any response cache.
func (f *Fetcher[T]) Invalidate(ctx context.Context) error {
	_, err := f.refetch(ctx, true)

	return err
}

func (f *Fetcher[T]) refetch(ctx context.Context, noCache bool) (T, error) {
	var zero T

	req, generation, err := f.begin(false)
	if err != nil {
		return zero, err
	}

	req.NoCache = noCache

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := context.AfterFunc(f.ctx, cancel)
	defer stop()

	data, err := f.execute(reqCtx, req, generation)
	f.drain()

	return data, err
}

// Close cancels in-flight requests and waits for them to return. Their
// results are discarded. Close is idempotent.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()

		return
	}

	f.closed = true
	f.subscribers = make(map[uint64]func(FetchState[T]))
	f.pending = nil
	stopSession := f.stopSession
	f.mu.Unlock()

	if stopSession != nil {
		stopSession()
	}

	f.cancel()
	f.wg.Wait()
}

func (f *Fetcher[T]) update(mutate func(desc *RequestDescriptor)) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()

		return ErrFetcherClosed
	}

	next := f.desc
	mutate(&next)

	err := next.Validate()
	if err != nil {
		f.mu.Unlock()

		return err
	}

	if next.Key() == f.desc.Key() {
		f.mu.Unlock()

		return nil
	}

	f.desc = next
	f.generation++
	f.mu.Unlock()

	f.dispatch()

	return nil
}

func (f *Fetcher[T]) onTokenChange(string) {
	f.mu.Lock()
	if f.closed || !f.desc.WithAuth {
		f.mu.Unlock()

		return
	}

	f.generation++
	f.mu.Unlock()

	f.dispatch()
}

// dispatch starts a background request for the current descriptor.
func (f *Fetcher[T]) dispatch() {
	req, generation, err := f.begin(true)
	if err != nil {
		return
	}

	go func() {
		_, _ = f.execute(f.ctx, req, generation)

		// Released before delivery so a subscriber may Close the fetcher.
		f.wg.Done()
		f.drain()
	}()
}

// begin marks a request as in flight. Loading is visible to State before
// the request is sent. Background requests are counted in wg while the lock
// is held so Close never races with Add.
func (f *Fetcher[T]) begin(background bool) (*Request, uint64, error) {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()

		return nil, 0, ErrFetcherClosed
	}

	req, err := f.desc.Request()
	if err != nil {
		f.mu.Unlock()

		return nil, 0, NewInvalidError(err)
	}

	if background {
		f.wg.Add(1)
	}

	generation := f.generation
	f.inflight++
	f.state.Loading = true
	f.publishLocked()
	f.mu.Unlock()

	f.drain()

	return req, generation, nil
}

func (f *Fetcher[T]) execute(ctx context.Context, req *Request, generation uint64) (T, error) {
	var zero T

	resp, err := f.transport.Do(ctx, req)
	if err == nil {
		var data T

		data, err = decodeBody[T](resp)
		if err == nil {
			f.settle(generation, data, nil)

			return data, nil
		}
	}

	sfErr := AsError(err)
	if sfErr.Method == "" {
		sfErr.Method = req.Method
		sfErr.Path = req.Path
	}

	f.logger.Debug("fetch failed", map[string]interface{}{
		"path":  req.Path,
		"kind":  string(sfErr.Kind),
		"error": sfErr.Error(),
	})

	f.settle(generation, zero, sfErr)

	return zero, sfErr
}

// settle applies a finished request and queues the new snapshot; callers
// drain the queue. Results for a superseded descriptor or a closed fetcher
// only release the in-flight slot.
func (f *Fetcher[T]) settle(generation uint64, data T, err *Error) {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()

		return
	}

	f.inflight--
	f.state.Loading = f.inflight > 0

	if generation == f.generation {
		if err != nil {
			f.state.Err = err
		} else {
			f.state.Data = data
			f.state.HasData = true
			f.state.Err = nil
		}
	}

	f.publishLocked()
	f.mu.Unlock()
}

// publishLocked queues the current state for the current subscribers.
func (f *Fetcher[T]) publishLocked() {
	if len(f.subscribers) == 0 {
		return
	}

	subscribers := make([]func(FetchState[T]), 0, len(f.subscribers))
	for _, fn := range f.subscribers {
		subscribers = append(subscribers, fn)
	}

	f.pending = append(f.pending, delivery[T]{snapshot: f.state, subscribers: subscribers})
}

// drain delivers queued snapshots. Only one goroutine delivers at a time; a
// call made while a delivery is running, including one made from inside a
// subscriber, leaves its snapshots to that delivery and returns.
func (f *Fetcher[T]) drain() {
	f.mu.Lock()
	if f.delivering {
		f.mu.Unlock()

		return
	}

	f.delivering = true

	for len(f.pending) > 0 && !f.closed {
		next := f.pending[0]
		f.pending = f.pending[1:]
		f.mu.Unlock()

		for _, fn := range next.subscribers {
			if f.isClosed() {
				break
			}

			fn(next.snapshot)
		}

		f.mu.Lock()
	}

	f.delivering = false
	f.mu.Unlock()
}

func (f *Fetcher[T]) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// decodeBody parses a JSON body into T. An empty body decodes to the zero
// value.
func decodeBody[T any](resp *Response) (T, error) {
	var value T

	if resp == nil || len(resp.Body) == 0 {
		return value, nil
	}

	err := json.Unmarshal(resp.Body, &value)
	if err != nil {
		return value, NewDecodeError(err, resp.Body)
	}

	return value, nil
}
