// Package api is the HTTP client for the StudyMind backend. Every payload is
// checked here, so callers receive either the text they asked for or one of
// the typed errors in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iksnae/studymind/internal"
)

const (
	// DefaultBaseURL is the local origin the backend listens on
	DefaultBaseURL = "http://127.0.0.1:5000"

	// DefaultMaxResponseBytes caps how much of a response body is read
	DefaultMaxResponseBytes int64 = 8 << 20

	defaultUserAgent = "studymind-cli"
)

// Client talks to the StudyMind backend
type Client struct {
	baseURL   string
	http      *http.Client
	maxBytes  int64
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithMaxResponseBytes caps response bodies. n <= 0 reads without a limit.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		c.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		maxBytes:  DefaultMaxResponseBytes,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostText posts body as JSON to path and returns the string found under field
func (c *Client) PostText(ctx context.Context, path string, body interface{}, field string) (string, error) {
	data, err := c.send(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	return textField(data, field)
}

// PostJSON posts body as JSON to path and decodes the response into out.
// out may be nil when only the status matters.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	data, err := c.send(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeInto(data, out)
}

// GetJSON fetches path and decodes the response into out
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	data, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeInto(data, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	internal.LogDebug("%s %s", method, url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := ReadAllWithLimit(resp.Body, c.maxBytes)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	internal.LogDebug("%s %s -> %d (%d bytes, %s)", method, url, resp.StatusCode, len(data), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(data)
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: msg, Body: data}
	}
	return data, nil
}

// ReadAllWithLimit reads r up to limit bytes. limit <= 0 reads everything.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	lr := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &ResponseTooLargeError{Limit: limit}
	}
	return data, nil
}

// textField extracts a non-empty string field from a JSON object payload.
// Non-string values are returned as their JSON text.
func textField(data []byte, field string) (string, error) {
	obj, err := decodeObject(data, field)
	if err != nil {
		return "", err
	}
	raw, ok := obj[field]
	if !ok {
		return "", missing(field, data)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", missing(field, data)
		}
		return s, nil
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || string(trimmed) == "null" {
		return "", missing(field, data)
	}
	return string(raw), nil
}

func decodeInto(data []byte, out interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if msg := errorMessage(data); msg != "" {
		return &BackendError{Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MissingFieldError{Field: "", Raw: compact(data)}
	}
	return nil
}

func decodeObject(data []byte, field string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, missing(field, data)
	}
	if msg := errorMessage(data); msg != "" {
		return nil, &BackendError{Message: msg}
	}
	return obj, nil
}

// errorMessage returns the payload's error field, if any
func errorMessage(data []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ""
	}
	raw, ok := obj["error"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" || string(raw) == "false" {
		return ""
	}
	return string(raw)
}

func missing(field string, data []byte) error {
	return &MissingFieldError{Field: field, Raw: compact(data)}
}

func compact(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return bytes.TrimSpace(data)
	}
	return buf.Bytes()
}
