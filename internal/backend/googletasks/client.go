// Package googletasks implements service.Remote using the Google Tasks API.
//
// Tasks are kept in the user's default list. Google Tasks has no notion of
// goals or local ids, so only the name, description, due date and status
// travel; the server identifier comes back as the task's ID.
package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"goaltrack/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Remote using Google Tasks API.
type Client struct {
	oauth   *oauth2.Config
	base    *http.Client
	opts    []option.ClientOption
	timeout time.Duration
}

// New creates a Google Tasks client from the OAuth client credentials at
// oauthClientPath. Tokens passed to the Remote methods are refreshed through
// these credentials.
func New(oauthClientPath string, timeout time.Duration) (*Client, error) {
	clientJSON, err := os.ReadFile(oauthClientPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := OAuthConfig(clientJSON)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = APITimeout
	}
	return &Client{oauth: oauthConfig, base: http.DefaultClient, timeout: timeout}, nil
}

// OAuthConfig parses OAuth client credentials for the Tasks scope.
func OAuthConfig(clientJSON []byte) (*oauth2.Config, error) {
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and API
// endpoint (for testing). Tokens are used as given, without refresh.
func NewWithHTTPClient(httpClient *http.Client, endpoint string) *Client {
	return &Client{
		base:    httpClient,
		opts:    []option.ClientOption{option.WithEndpoint(endpoint)},
		timeout: APITimeout,
	}
}

// EncodeToken serializes an OAuth token into the string form the Remote
// methods accept.
func EncodeToken(token *oauth2.Token) (string, error) {
	data, err := json.Marshal(token)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(raw string) (*oauth2.Token, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, service.ErrUnauthorized
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, service.ErrUnauthorized
	}
	return &token, nil
}

func (c *Client) service(ctx context.Context, raw string) (*tasks.Service, error) {
	token, err := DecodeToken(raw)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	var tokenSource oauth2.TokenSource
	if c.oauth != nil {
		tokenSource = c.oauth.TokenSource(ctx, token)
	} else {
		tokenSource = oauth2.StaticTokenSource(token)
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource))}, c.opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return svc, nil
}

// SaveTask inserts task into the default list.
func (c *Client) SaveTask(ctx context.Context, task service.Task, token string) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc, err := c.service(ctx, token)
	if err != nil {
		return service.Task{}, err
	}

	created, err := svc.Tasks.Insert(DefaultListID, toGoogle(task)).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}

	saved := task
	saved.ID = created.Id
	return saved, nil
}

// ListTasks returns every task of the default list, completed ones included.
func (c *Client) ListTasks(ctx context.Context, token string) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc, err := c.service(ctx, token)
	if err != nil {
		return nil, err
	}

	var result []service.Task
	err = svc.Tasks.List(DefaultListID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				result = append(result, fromGoogle(item))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// DeleteTask deletes a task from the default list.
func (c *Client) DeleteTask(ctx context.Context, id, token string) error {
	if id == "" {
		return service.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	if err := svc.Tasks.Delete(DefaultListID, id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

func toGoogle(t service.Task) *tasks.Task {
	g := &tasks.Task{
		Title:  t.Name,
		Notes:  t.Description,
		Status: statusNeedsAction,
	}
	if t.Completed {
		g.Status = statusCompleted
	}
	if t.DueDate != nil {
		g.Due = t.DueDate.UTC().Format(time.RFC3339)
	}
	return g
}

func fromGoogle(g *tasks.Task) service.Task {
	t := service.Task{
		ID:          g.Id,
		Name:        g.Title,
		Description: g.Notes,
		Completed:   g.Status == statusCompleted,
	}
	if g.Due != "" {
		if due, err := time.Parse(time.RFC3339, g.Due); err == nil {
			t.DueDate = &due
		}
	}
	return t
}

// wrapError maps API errors to the shared remote errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return service.ErrTimeout
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return service.ErrUnauthorized
	}

	if strings.Contains(errStr, "404") {
		return service.ErrNotFound
	}

	return err
}
