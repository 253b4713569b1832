// Package tasks implements the task actions of a goal: mutations,
// "most important task" traversal, time-budget allocation and completion
// counting over the task tree stored by taskstore.
//
// Every operation addresses a sibling list by (goal, parent); parent 0 is
// the goal's top-level list.
package tasks

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"goaltrack/internal/service"
	"goaltrack/internal/taskstore"
)

// Actions operates on the task trees of all goals.
type Actions struct {
	store  *taskstore.Store
	remote service.Remote
	log    logr.Logger
}

// New creates Actions over store. remote may be nil, in which case every
// new task is persisted locally only.
func New(store *taskstore.Store, remote service.Remote, log logr.Logger) *Actions {
	return &Actions{store: store, remote: remote, log: log}
}

// Store returns the underlying task store.
func (a *Actions) Store() *taskstore.Store {
	return a.store
}

// Close closes the underlying store.
func (a *Actions) Close() error {
	return a.store.Close()
}

// NewTask holds the user input for AddTask.
type NewTask struct {
	Name        string
	Description string
	// Duration in minutes; 0 means the task is not time-boxed.
	Duration int
	DueDate  *time.Time
}

// DeleteTask removes taskID from the children of parentID. Descendant
// lists of the removed task are left in storage untouched.
func (a *Actions) DeleteTask(ctx context.Context, goalID, parentID, taskID int) error {
	list, err := a.store.LoadTasks(ctx, goalID, parentID)
	if err != nil {
		return wrapTaskErr("delete", goalID, taskID, err)
	}

	idx := indexOf(list, taskID)
	if idx < 0 {
		return wrapTaskErr("delete", goalID, taskID, ErrTaskNotFound)
	}
	removed := list[idx]
	updated := make([]service.Task, 0, len(list)-1)
	updated = append(updated, list[:idx]...)
	updated = append(updated, list[idx+1:]...)

	if err := a.store.SaveTasks(ctx, updated, goalID, parentID); err != nil {
		return wrapTaskErr("delete", goalID, taskID, err)
	}

	if removed.ID != "" {
		a.deleteRemote(ctx, removed)
	}
	return nil
}

// FinishTask marks taskID completed. Children are not touched.
func (a *Actions) FinishTask(ctx context.Context, goalID, parentID, taskID int) error {
	return a.update(ctx, "finish", goalID, parentID, taskID, func(t *service.Task) error {
		t.Completed = true
		return nil
	})
}

// EditTask replaces the name and description of taskID.
func (a *Actions) EditTask(ctx context.Context, goalID, parentID, taskID int, name, description string) error {
	return a.update(ctx, "edit", goalID, parentID, taskID, func(t *service.Task) error {
		t.Name = name
		t.Description = description
		return nil
	})
}

// LogProgress adds minutes to the elapsed time of a time-boxed task.
func (a *Actions) LogProgress(ctx context.Context, goalID, parentID, taskID, minutes int) error {
	return a.update(ctx, "track", goalID, parentID, taskID, func(t *service.Task) error {
		if t.Duration == nil {
			return ErrNotTimeBoxed
		}
		d := *t.Duration
		d.Elapsed += minutes
		t.Duration = &d
		return nil
	})
}

// update applies fn to the matching task and rewrites the sibling list.
func (a *Actions) update(ctx context.Context, op string, goalID, parentID, taskID int, fn func(*service.Task) error) error {
	list, err := a.store.LoadTasks(ctx, goalID, parentID)
	if err != nil {
		return wrapTaskErr(op, goalID, taskID, err)
	}

	idx := indexOf(list, taskID)
	if idx < 0 {
		return wrapTaskErr(op, goalID, taskID, ErrTaskNotFound)
	}
	if err := fn(&list[idx]); err != nil {
		return wrapTaskErr(op, goalID, taskID, err)
	}

	if err := a.store.SaveTasks(ctx, list, goalID, parentID); err != nil {
		return wrapTaskErr(op, goalID, taskID, err)
	}
	return nil
}

func indexOf(list []service.Task, taskID int) int {
	for i, t := range list {
		if t.TaskID == taskID {
			return i
		}
	}
	return -1
}
