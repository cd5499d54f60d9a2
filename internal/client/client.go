package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio/internal/model"
	"portfolio/pkg/trace"
)

const ContactPath = "/api/contact"

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "contact request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response. Result is nil when the body was not JSON.
type StatusError struct {
	Code   int
	Result *model.SubmissionResult
}

func (e *StatusError) Error() string {
	if e.Result != nil && e.Result.Error != "" {
		return fmt.Sprintf("contact endpoint returned %d: %s", e.Code, e.Result.Error)
	}
	return fmt.Sprintf("contact endpoint returned %d", e.Code)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithHTTPClient replaces the underlying client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Send posts one submission. It issues exactly one request and never retries.
func (c *Client) Send(ctx context.Context, sub model.Submission) (*model.SubmissionResult, error) {
	b, err := json.Marshal(sub)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ContactPath, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// 传播 trace_id
	if traceID := trace.FromContext(ctx); traceID != "" {
		req.Header.Set(trace.HeaderName, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var result *model.SubmissionResult
	var decoded model.SubmissionResult
	if json.Unmarshal(body, &decoded) == nil {
		result = &decoded
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Result: result}
	}
	if result == nil {
		return nil, fmt.Errorf("decoding contact response: unexpected body %q", truncate(body))
	}
	return result, nil
}

func truncate(b []byte) string {
	if len(b) > 64 {
		return string(b[:64]) + "..."
	}
	return string(b)
}
