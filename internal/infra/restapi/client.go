// Package restapi implements domain.TaskStore over the task store's REST endpoints.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/runoshun/taskpro/internal/domain"
)

// Ensure Client implements domain.TaskStore.
var _ domain.TaskStore = (*Client)(nil)

const (
	tasksPath = "tasks"

	// maxErrorBody bounds how much of a failed response is kept for diagnostics.
	maxErrorBody = 512

	// RequestIDHeader carries a per-request correlation ID.
	RequestIDHeader = "X-Request-ID"
)

// StatusError is returned when the store answers with a non-success status.
type StatusError struct {
	Method     string
	URL        string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the task store.
type Client struct {
	http    *http.Client
	base    *url.URL
	logger  domain.Logger
	newID   func() string
	token   string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger for request traces.
func WithLogger(l domain.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestIDFunc overrides how request IDs are generated (for testing).
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a Client for the store rooted at base.
func New(base *url.URL, opts ...Option) *Client {
	b := *base
	b.Path = strings.TrimSuffix(b.Path, "/")
	c := &Client{
		http:   &http.Client{},
		base:   &b,
		logger: domain.NopLogger{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token, TokenType: "Bearer"})
		transport := c.http.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		c.http = &http.Client{
			Transport:     &oauth2.Transport{Source: src, Base: transport},
			CheckRedirect: c.http.CheckRedirect,
			Jar:           c.http.Jar,
			Timeout:       c.http.Timeout,
		}
	}
	if c.timeout > 0 && c.http.Timeout == 0 {
		c.http.Timeout = c.timeout
	}
	return c
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// List fetches the full task collection in server order.
func (c *Client) List(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &tasks); err != nil {
		return nil, err
	}
	// A null entry is not a task.
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			c.logger.Warn("http", "skipped null entry in task list")
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Create posts a new task.
func (c *Client) Create(ctx context.Context, req domain.CreateTaskRequest) error {
	return c.do(ctx, http.MethodPost, c.collectionURL(), req, nil)
}

// Update puts the full task record.
func (c *Client) Update(ctx context.Context, task *domain.Task) error {
	return c.do(ctx, http.MethodPut, c.itemURL(task.ID), task, nil)
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id domain.TaskID) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) collectionURL() string {
	return c.base.JoinPath(tasksPath).String()
}

func (c *Client) itemURL(id domain.TaskID) string {
	// JoinPath takes escaped elements, so an ID containing '/' stays one segment.
	return c.base.JoinPath(tasksPath, url.PathEscape(id.String())).String()
}

// encodeBody encodes a request body. A json.Marshaler is asked directly, since
// encoding/json would re-compact and HTML-escape what it returns.
func encodeBody(body any) ([]byte, error) {
	if m, ok := body.(json.Marshaler); ok {
		return m.MarshalJSON()
	}
	return domain.EncodeJSON(body)
}

// do sends one request. body is JSON encoded when non-nil; out is decoded
// from a success response when non-nil.
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := encodeBody(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("http", fmt.Sprintf("%s %s [%s] failed: %v", method, target, reqID, err))
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("http", fmt.Sprintf("%s %s [%s] %d (%s)", method, target, reqID, resp.StatusCode, time.Since(start).Round(time.Millisecond)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
