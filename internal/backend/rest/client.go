// Package rest implements service.Remote against the goals REST API.
//
// The API speaks snake_case JSON and names the server identifier "_id";
// both are mapped to the local task model here.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"goaltrack/internal/service"
)

// DefaultTimeout is used when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of an error response is quoted back.
const maxErrorBody = 512

// Client implements service.Remote over HTTP.
type Client struct {
	endpoint string
	base     *http.Client
	timeout  time.Duration
}

// New creates a client for the API rooted at endpoint.
func New(endpoint string, timeout time.Duration) (*Client, error) {
	return NewWithHTTPClient(endpoint, http.DefaultClient, timeout)
}

// NewWithHTTPClient creates a client that sends requests through httpClient.
func NewWithHTTPClient(endpoint string, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		base:     httpClient,
		timeout:  timeout,
	}, nil
}

// wireTask is the task as the API encodes it.
type wireTask struct {
	ID          string            `json:"_id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GoalID      int               `json:"goal_id"`
	TaskID      int               `json:"task_id"`
	ParentID    *int              `json:"parent_id,omitempty"`
	Duration    *service.Duration `json:"duration,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Completed   bool              `json:"completed"`
}

func toWire(t service.Task) wireTask {
	return wireTask{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		GoalID:      t.GoalID,
		TaskID:      t.TaskID,
		ParentID:    t.ParentID,
		Duration:    t.Duration,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
	}
}

func (w wireTask) task() service.Task {
	return service.Task{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		GoalID:      w.GoalID,
		TaskID:      w.TaskID,
		ParentID:    w.ParentID,
		Duration:    w.Duration,
		DueDate:     w.DueDate,
		Completed:   w.Completed,
	}
}

// SaveTask posts task and returns the stored representation.
func (c *Client) SaveTask(ctx context.Context, task service.Task, token string) (service.Task, error) {
	body, err := json.Marshal(toWire(task))
	if err != nil {
		return service.Task{}, err
	}

	var saved wireTask
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Idempotency-Key", uuid.NewString())
	if err := c.do(ctx, http.MethodPost, "/tasks", token, header, body, &saved); err != nil {
		return service.Task{}, err
	}
	return saved.task(), nil
}

// ListTasks returns every task stored for the token's owner.
func (c *Client) ListTasks(ctx context.Context, token string) ([]service.Task, error) {
	var wire []wireTask
	if err := c.do(ctx, http.MethodGet, "/tasks", token, nil, nil, &wire); err != nil {
		return nil, err
	}
	result := make([]service.Task, 0, len(wire))
	for _, w := range wire {
		result = append(result, w.task())
	}
	return result, nil
}

// DeleteTask removes the task with the server identifier id.
func (c *Client) DeleteTask(ctx context.Context, id, token string) error {
	if id == "" {
		return service.ErrNotFound
	}
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), token, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, header http.Header, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorized(ctx, token).Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}

// authorized wraps the base client so every request carries token as a
// bearer credential.
func (c *Client) authorized(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

// wrapError maps transport failures to the shared remote errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return service.ErrTimeout
	}
	return err
}

func statusError(code int, msg string) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return service.ErrUnauthorized
	case http.StatusNotFound:
		return service.ErrNotFound
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return fmt.Errorf("remote service returned %d: %s", code, msg)
}
