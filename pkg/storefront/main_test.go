package storefront_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeTransport records requests and answers them with handler.
type fakeTransport struct {
	mu       sync.Mutex
	requests []*storefront.Request
	handler  func(ctx context.Context, req *storefront.Request) (*storefront.Response, error)
}

func newFakeTransport(handler func(ctx context.Context, req *storefront.Request) (*storefront.Response, error)) *fakeTransport {
	return &fakeTransport{handler: handler}
}

func (f *fakeTransport) Do(ctx context.Context, req *storefront.Request) (*storefront.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	handler := f.handler
	f.mu.Unlock()

	return handler(ctx, req)
}

func (f *fakeTransport) Requests() []*storefront.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*storefront.Request(nil), f.requests...)
}

func (f *fakeTransport) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func jsonResponse(value interface{}) *storefront.Response {
	body, _ := json.Marshal(value)

	return &storefront.Response{StatusCode: 200, Body: body}
}

func httpError(status int, body string) (*storefront.Response, error) {
	resp := &storefront.Response{StatusCode: status, Body: []byte(body)}
	sfErr := storefront.NewHTTPError(status, resp.Body)
	resp.Error = sfErr

	return resp, sfErr
}

// recordingLogger keeps every Warn message.
type recordingLogger struct {
	storefront.NoopLogger

	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Warns() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.warns...)
}
