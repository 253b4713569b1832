package service

import (
	"context"
	"errors"
)

// Remote errors shared by all backends so callers can classify failures
// without importing a backend package.
var (
	ErrUnauthorized = errors.New("token expired or revoked (run: goaltrack login)")
	ErrNotFound     = errors.New("not found")
	ErrTimeout      = errors.New("request timed out")
)

// Remote is the contract of the remote task service.
// Local storage stays the source of truth; callers treat every Remote
// failure as non-fatal.
//
//go:generate mockgen -destination=../tasks/mock_remote_test.go -package=tasks_test goaltrack/internal/service Remote
type Remote interface {
	// SaveTask persists task and returns the server's representation.
	SaveTask(ctx context.Context, task Task, token string) (Task, error)

	// ListTasks returns every task the token's owner has saved.
	ListTasks(ctx context.Context, token string) ([]Task, error)

	// DeleteTask removes the task with the remote identifier id.
	DeleteTask(ctx context.Context, id, token string) error
}
