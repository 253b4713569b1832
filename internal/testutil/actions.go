package testutil

import (
	"context"
	"testing"

	"github.com/go-logr/logr"

	"goaltrack/internal/kv"
	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
	"goaltrack/internal/taskstore"
)

// NewActions returns Actions over a fresh in-memory store. remote may be nil.
func NewActions(t *testing.T, remote service.Remote) (*tasks.Actions, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return tasks.New(taskstore.New(mem, logr.Discard()), remote, logr.Discard()), mem
}

// Seed writes list as the children of parentID (0 for top level).
func Seed(t *testing.T, a *tasks.Actions, goalID, parentID int, list ...service.Task) {
	t.Helper()
	if err := a.Store().SaveTasks(context.Background(), list, goalID, parentID); err != nil {
		t.Fatalf("seed goals.%d.%d: %v", goalID, parentID, err)
	}
}

// TaskBuilder builds service.Task values for tests.
type TaskBuilder struct {
	task service.Task
}

// NewTask starts a task with the given goal, id and name.
func NewTask(goalID, taskID int, name string) *TaskBuilder {
	return &TaskBuilder{task: service.Task{GoalID: goalID, TaskID: taskID, Name: name}}
}

// Completed marks the task completed.
func (b *TaskBuilder) Completed() *TaskBuilder {
	b.task.Completed = true
	return b
}

// Duration time-boxes the task.
func (b *TaskBuilder) Duration(base, elapsed int) *TaskBuilder {
	b.task.Duration = &service.Duration{Base: base, Elapsed: elapsed}
	return b
}

// Parent sets the parent task id.
func (b *TaskBuilder) Parent(parentID int) *TaskBuilder {
	b.task.ParentID = &parentID
	return b
}

// Description sets the description.
func (b *TaskBuilder) Description(d string) *TaskBuilder {
	b.task.Description = d
	return b
}

// Build returns the task.
func (b *TaskBuilder) Build() service.Task {
	return b.task
}
