// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"goaltrack/internal/service"
)

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int

	// Tokens records the token passed to every call.
	Tokens []string

	// Error injection for testing
	SaveTaskErr   error
	ListTasksErr  error
	DeleteTaskErr error
}

// NewFakeRemote creates an empty FakeRemote.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{}
}

// Tasks returns a copy of the tasks saved so far.
func (f *FakeRemote) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// SaveTask implements service.Remote. Saved tasks get ids remote-1, remote-2, ...
func (f *FakeRemote) SaveTask(ctx context.Context, task service.Task, token string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tokens = append(f.Tokens, token)
	if f.SaveTaskErr != nil {
		return service.Task{}, f.SaveTaskErr
	}

	f.nextID++
	task.ID = fmt.Sprintf("remote-%d", f.nextID)
	f.tasks = append(f.tasks, task)
	return task, nil
}

// ListTasks implements service.Remote.
func (f *FakeRemote) ListTasks(ctx context.Context, token string) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tokens = append(f.Tokens, token)
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// DeleteTask implements service.Remote.
func (f *FakeRemote) DeleteTask(ctx context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tokens = append(f.Tokens, token)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}
