// Package testutil provides common utility functions for testing.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// OptimizerStub is a fake optimization endpoint that answers every request
// with a fixed status and body and records what it received.
type OptimizerStub struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest is one request seen by an OptimizerStub.
type RecordedRequest struct {
	Method string
	Header http.Header
	Body   string
}

// NewOptimizerStub starts a stub that replies with status and body. The
// server is closed when the test ends.
func NewOptimizerStub(t *testing.T, status int, body string) *OptimizerStub {
	t.Helper()

	stub := &OptimizerStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, RecordedRequest{
			Method: r.Method,
			Header: r.Header.Clone(),
			Body:   string(data),
		})
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(stub.Server.Close)

	return stub
}

// URL returns the endpoint address of the stub.
func (s *OptimizerStub) URL() string {
	return s.Server.URL + "/api/optimize"
}

// Requests returns a copy of the requests received so far.
func (s *OptimizerStub) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// ClosedEndpoint returns the address of a server that is no longer
// listening, so connecting to it fails.
func ClosedEndpoint(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/api/optimize"
	server.Close()
	return url
}
