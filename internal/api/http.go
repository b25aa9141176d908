package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-Id"

// HTTPExecutor performs requests over HTTP against a server root.
type HTTPExecutor struct {
	// ServerURL is prepended to request URLs that are not absolute.
	ServerURL string
	Client    *http.Client
	Logger    *log.Logger
}

// NewHTTPExecutor returns an executor for serverURL with a default timeout.
func NewHTTPExecutor(serverURL string, logger *log.Logger) *HTTPExecutor {
	return &HTTPExecutor{
		ServerURL: strings.TrimSuffix(serverURL, "/"),
		Client:    &http.Client{Timeout: 30 * time.Second},
		Logger:    logger,
	}
}

// Execute implements Executor.
func (e *HTTPExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	url := req.URL
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = e.ServerURL + url
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Error("request failed", "method", req.Method, "url", url, "request_id", requestID, "err", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if e.Logger != nil {
		e.Logger.Debug("request",
			"method", req.Method,
			"url", url,
			"status", resp.StatusCode,
			"request_id", requestID,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
