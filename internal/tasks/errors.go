package tasks

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrNotTimeBoxed   = errors.New("task has no duration")
	ErrTreeTooDeep    = errors.New("task tree too deep")
	ErrNoRemote       = errors.New("no remote service configured")
	ErrNotLoggedIn    = errors.New("not logged in (run: goaltrack login)")
	ErrTaskUnfinished = errors.New("task has unfinished subtasks")
)

// OpError records the operation and task that failed.
type OpError struct {
	Op     string
	GoalID int
	TaskID int
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.TaskID > 0 {
		return fmt.Sprintf("%s task %d of goal %d: %v", e.Op, e.TaskID, e.GoalID, e.Err)
	}
	return fmt.Sprintf("%s goal %d: %v", e.Op, e.GoalID, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapTaskErr(op string, goalID, taskID int, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, GoalID: goalID, TaskID: taskID, Err: err}
}
