// Package kv defines the string-keyed key-value store that backs all local
// persistence, with sqlite and in-memory implementations.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotNumber is returned when a numeric read hits a non-numeric value.
var ErrNotNumber = errors.New("value is not a number")

// Store is a string-keyed key-value store holding string values and
// numeric counters. Absent keys are reported with found=false.
type Store interface {
	// GetString returns the string stored at key.
	GetString(ctx context.Context, key string) (value string, found bool, err error)

	// GetNumber returns the integer stored at key.
	GetNumber(ctx context.Context, key string) (n int64, found bool, err error)

	// SetString overwrites key with value.
	SetString(ctx context.Context, key, value string) error

	// SetNumber overwrites key with n.
	SetNumber(ctx context.Context, key string, n int64) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Incr atomically increments the integer at key (absent counts as 0)
	// and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Close releases the underlying resources.
	Close() error
}

// KeyError reports a failed store operation on a single key.
type KeyError struct {
	Op  string
	Key string
	Err error
}

func (e *KeyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("kv %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

func wrapKeyErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &KeyError{Op: op, Key: key, Err: err}
}
