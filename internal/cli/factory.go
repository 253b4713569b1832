// Package cli parses the command line and wires the configured store and
// remote backend into the selected command.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"goaltrack/internal/backend/googletasks"
	"goaltrack/internal/backend/rest"
	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/kv"
	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
	"goaltrack/internal/taskstore"
)

// setupError carries the exit code for a failure to open the store or the
// remote backend.
type setupError struct {
	code int
	err  error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

func setupExitCode(err error) int {
	var se *setupError
	if errors.As(err, &se) {
		return se.code
	}
	return exitcode.StorageError
}

// OpenActions opens the key-value store and remote backend selected by cfg.
func OpenActions(ctx context.Context, cfg *config.Config, log logr.Logger) (*tasks.Actions, error) {
	remote, err := OpenRemote(cfg)
	if err != nil {
		return nil, &setupError{code: exitcode.AuthError, err: err}
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, &setupError{code: exitcode.StorageError, err: err}
	}
	log.V(1).Info("opened store", "driver", cfg.Store.Driver, "backend", cfg.Remote.Backend)

	return tasks.New(taskstore.New(store, log), remote, log), nil
}

func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	if cfg.Store.Driver == config.DriverMemory {
		return kv.NewMemory(), nil
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	db, err := kv.OpenSQLite(ctx, cfg.StorePath())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// OpenRemote returns the remote backend selected by cfg, or nil when no
// backend is configured.
func OpenRemote(cfg *config.Config) (service.Remote, error) {
	timeout, err := cfg.RemoteTimeout()
	if err != nil {
		return nil, err
	}

	switch cfg.Remote.Backend {
	case config.BackendREST:
		c, err := rest.New(cfg.Remote.Endpoint, timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("oauth_client.json not found in %s", cfg.Dir)
		}
		c, err := googletasks.New(cfg.OAuthClientPath(), timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, nil
}
