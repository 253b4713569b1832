// Package taskstore maps goals and task lists onto the flat key-value store.
//
// Layout:
//
//	tasks                      goal list
//	goals.{goal}               top-level task list of a goal
//	goals.{goal}.{task}        child list of a task
//	goals.{goal}.lastId        task id counter of a goal
//	token, user                session values
//
// A parent id of 0 addresses the top-level list; task ids start at 1.
package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"goaltrack/internal/kv"
	"goaltrack/internal/service"
)

const (
	// GoalsKey holds the goal list.
	GoalsKey = "tasks"

	// TokenKey holds the remote service token.
	TokenKey = "token"

	// UserKey holds the user name.
	UserKey = "user"
)

// ErrGoalNotFound is returned when a goal id is outside the goal list.
var ErrGoalNotFound = errors.New("goal not found")

// GoalKey returns the key of a goal's top-level task list.
func GoalKey(goalID int) string {
	return fmt.Sprintf("goals.%d", goalID)
}

// ChildKey returns the key of the child list of taskID.
func ChildKey(goalID, taskID int) string {
	return fmt.Sprintf("goals.%d.%d", goalID, taskID)
}

// LastIDKey returns the key of a goal's task id counter.
func LastIDKey(goalID int) string {
	return fmt.Sprintf("goals.%d.lastId", goalID)
}

// ListKey returns the key of the list holding the children of parentID,
// or the top-level list when parentID is 0.
func ListKey(goalID, parentID int) string {
	if parentID == 0 {
		return GoalKey(goalID)
	}
	return ChildKey(goalID, parentID)
}

// Store reads and writes goals and task lists.
type Store struct {
	kv  kv.Store
	log logr.Logger
}

// New wraps a key-value store.
func New(store kv.Store, log logr.Logger) *Store {
	return &Store{kv: store, log: log}
}

// Close closes the underlying key-value store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// LoadTasks returns the children of parentID (0 for top level).
// Absent or malformed data yields an empty list.
func (s *Store) LoadTasks(ctx context.Context, goalID, parentID int) ([]service.Task, error) {
	tasks, _, err := s.loadList(ctx, ListKey(goalID, parentID))
	return tasks, err
}

// Children returns the child list of taskID and whether a list is stored
// for it at all. An empty stored list reports found=true.
func (s *Store) Children(ctx context.Context, goalID, taskID int) ([]service.Task, bool, error) {
	return s.loadList(ctx, ChildKey(goalID, taskID))
}

func (s *Store) loadList(ctx context.Context, key string) ([]service.Task, bool, error) {
	data, found, err := s.kv.GetString(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found || data == "" {
		return nil, false, nil
	}

	var tasks []service.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		s.log.V(1).Info("ignoring malformed task list", "key", key, "error", err.Error())
		return nil, false, nil
	}
	return tasks, true, nil
}

// SaveTasks overwrites the list holding the children of target
// (0 for top level). There is no merge.
func (s *Store) SaveTasks(ctx context.Context, tasks []service.Task, goalID, target int) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode task list: %w", err)
	}
	key := ListKey(goalID, target)
	s.log.V(1).Info("saving task list", "key", key, "count", len(tasks))
	return s.kv.SetString(ctx, key, string(data))
}

// NextTaskID returns the last allocated task id of a goal (0 if none).
// Callers that use it must persist the incremented value themselves.
func (s *Store) NextTaskID(ctx context.Context, goalID int) (int, error) {
	n, _, err := s.kv.GetNumber(ctx, LastIDKey(goalID))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// AllocateTaskID increments and persists the goal's counter in one step
// and returns the new id.
func (s *Store) AllocateTaskID(ctx context.Context, goalID int) (int, error) {
	n, err := s.kv.Incr(ctx, LastIDKey(goalID))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
