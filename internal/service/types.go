// Package service defines the goal and task model and the backend-agnostic
// contract of the remote task service.
package service

import "time"

// Goal is a top-level user objective. Its identity is its 1-based position
// in the stored goal list.
type Goal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Duration tracks planned versus consumed effort, in minutes.
type Duration struct {
	Base    int `json:"base"`
	Elapsed int `json:"elapsed"`
}

// Remaining returns the minutes left on the time box. It may be negative.
func (d Duration) Remaining() int {
	return d.Base - d.Elapsed
}

// Task is a unit of work under a goal, optionally nested under a parent task.
type Task struct {
	// ID is the identifier assigned by the remote service, empty for
	// local-only tasks.
	ID string `json:"id,omitempty"`

	Name        string     `json:"name"`
	Description string     `json:"description"`
	GoalID      int        `json:"goalId"`
	TaskID      int        `json:"taskId"`
	ParentID    *int       `json:"parentId,omitempty"`
	Duration    *Duration  `json:"duration,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
}

// HasTimeLeft reports whether the task is not time-boxed or still has
// minutes left on its box.
func (t Task) HasTimeLeft() bool {
	return t.Duration == nil || t.Duration.Elapsed < t.Duration.Base
}

// Count is a completion tally over a task subtree.
type Count struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Add accumulates other into c.
func (c *Count) Add(other Count) {
	c.Completed += other.Completed
	c.Total += other.Total
}
