package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "/apis/"

// Request is a validated call ready for an Executor.
type Request struct {
	Method Method
	URL    string
	// Path holds the segments the URL was built from.
	Path   []string
	Header http.Header
	Body   []byte
}

// Response is what an Executor returns.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Executor performs the transport for a Request.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, req *Request) (*Response, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Option configures a Client.
type Option func(*Client)

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client builds requests from specs and hands them to its Executor.
type Client struct {
	baseURL string
	header  http.Header
	logger  *log.Logger

	mu      sync.RWMutex
	exec    Executor
	patched Executor
}

// NewClient returns a client rooted at baseURL. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string, exec Executor, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL: baseURL,
		header:  http.Header{},
		exec:    exec,
	}
	c.header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Patch routes every request to exec until Unpatch is called.
func (c *Client) Patch(exec Executor) error {
	if exec == nil {
		return fmt.Errorf("patch: executor is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.patched != nil {
		return ErrAlreadyPatched
	}
	c.patched = exec
	return nil
}

// Unpatch restores the client's own executor.
func (c *Client) Unpatch() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.patched == nil {
		return ErrNotPatched
	}
	c.patched = nil
	return nil
}

// Patched reports whether an override executor is installed.
func (c *Client) Patched() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.patched != nil
}

func (c *Client) executor() Executor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.patched != nil {
		return c.patched
	}
	return c.exec
}

// Prepare validates spec and builds the request it describes.
func Prepare[T any](c *Client, spec Spec[T]) (*Request, error) {
	body, err := spec.body()
	if err != nil {
		return nil, err
	}

	header := c.header.Clone()
	if body != nil {
		header.Set("Content-Type", "application/json")
	}
	path := append([]string(nil), spec.Path...)
	return &Request{
		Method: spec.Method,
		URL:    c.baseURL + strings.Join(path, "/"),
		Path:   path,
		Header: header,
		Body:   body,
	}, nil
}

// Fetch performs the call described by spec. Spec errors are returned before
// any I/O takes place.
func Fetch[T any](ctx context.Context, c *Client, spec Spec[T]) (T, error) {
	var zero T

	req, err := Prepare(c, spec)
	if err != nil {
		return zero, err
	}

	exec := c.executor()
	if exec == nil {
		return zero, fmt.Errorf("%s %s: no executor configured", req.Method, req.URL)
	}
	resp, err := exec.Execute(ctx, req)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}

	if c.logger != nil {
		c.logger.Debug("api response", "method", req.Method, "url", req.URL, "status", resp.StatusCode)
	}

	if resp.StatusCode != spec.Status() {
		return zero, &StatusError{
			Method:   req.Method,
			URL:      req.URL,
			Expected: spec.Status(),
			Actual:   resp.StatusCode,
		}
	}

	if spec.Receive == nil {
		return zero, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return zero, &DecodeError{URL: req.URL, Err: err}
	}
	if len(envelope.Data) == 0 {
		return zero, &DecodeError{URL: req.URL, Err: fmt.Errorf("response has no data field")}
	}

	out, err := spec.Receive(envelope.Data)
	if err != nil {
		return zero, &DecodeError{URL: req.URL, Err: err}
	}
	return out, nil
}
