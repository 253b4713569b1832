package kv

import (
	"context"
	"strconv"
	"sync"
)

// Memory is an in-process Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// GetString implements Store.
func (m *Memory) GetString(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// GetNumber implements Store.
func (m *Memory) GetNumber(ctx context.Context, key string) (int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, true, wrapKeyErr("get number", key, ErrNotNumber)
	}
	return n, true, nil
}

// SetString implements Store.
func (m *Memory) SetString(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// SetNumber implements Store.
func (m *Memory) SetNumber(ctx context.Context, key string, n int64) error {
	return m.SetString(ctx, key, strconv.FormatInt(n, 10))
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Incr implements Store.
func (m *Memory) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if v, ok := m.data[key]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, wrapKeyErr("incr", key, ErrNotNumber)
		}
		n = parsed
	}
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// Keys returns a snapshot of all keys, unordered.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
