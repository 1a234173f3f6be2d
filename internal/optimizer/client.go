package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/capital-simulator/pkg/constants"
	"go.uber.org/zap"
)

// Client talks to the optimization endpoint. It never retries.
type Client struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewClient returns a Client posting to url. A nil http.Client means
// http.DefaultClient, which has no timeout.
func NewClient(c *http.Client, url string, logger *zap.Logger) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if url == "" {
		url = constants.DefaultEndpoint
	}

	return &Client{
		url:    url,
		client: c,
		logger: logger.With(zap.String("caller", "optimizer.Client")),
	}
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string {
	return c.url
}

// Optimize posts req and waits for the decoded response.
func (c *Client) Optimize(ctx context.Context, req Request) (Response, error) {
	return c.optimize(ctx, uuid.NewString(), req)
}

// Sample asks the optimizer for its sample allocation.
func (c *Client) Sample(ctx context.Context) (Response, error) {
	return c.send(ctx, http.MethodGet, uuid.NewString(), nil)
}

// Dispatch starts an optimization call and returns immediately.
func (c *Client) Dispatch(ctx context.Context, req Request) *Call {
	ctx, cancel := context.WithCancel(ctx)
	call := &Call{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(call.done)
		defer cancel()
		call.resp, call.err = c.optimize(ctx, call.id, req)
	}()

	return call
}

func (c *Client) optimize(ctx context.Context, id string, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request data: %w", err)
	}
	return c.send(ctx, http.MethodPost, id, body)
}

func (c *Client) send(ctx context.Context, method, id string, body []byte) (Response, error) {
	logger := c.logger.With(
		zap.String("method", method),
		zap.String("request_id", id),
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.url, reader)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(constants.RequestIDHeader, id)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	logger.Debug("finish request", zap.String("url", c.url), zap.Duration("duration", time.Since(start)))
	if err != nil {
		return Response{}, fmt.Errorf("send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	// The optimizer reports its own failures as success:false with a 4xx or
	// 5xx status, so the body is decoded whatever the status.
	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Response{}, fmt.Errorf("decode response with %v http code: %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest && !r.Success && r.Error == "" {
		return Response{}, fmt.Errorf("responded with %v http code", resp.StatusCode)
	}

	logger.Debug("decoded response",
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", r.Success),
	)
	return r, nil
}

// Call is a pending optimization request. It can be waited on or cancelled.
type Call struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	resp   Response
	err    error
}

// ID returns the correlation id sent with the request.
func (c *Call) ID() string {
	return c.id
}

// Done is closed once the call has settled.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the call settles and returns its outcome.
func (c *Call) Wait() (Response, error) {
	<-c.done
	return c.resp, c.err
}

// Cancel aborts the call if it has not settled yet.
func (c *Call) Cancel() {
	c.cancel()
}
