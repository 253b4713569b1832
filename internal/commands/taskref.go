package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
	"goaltrack/internal/taskstore"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrGoalRequired indicates no --goal flag was provided.
var ErrGoalRequired = errors.New("goal required (use --goal)")

// errAmbiguousGoal is returned when a goal name matches more than one goal.
var errAmbiguousGoal = errors.New("ambiguous goal name")

// ParseTaskRef parses the task id in the first argument.
//
// Parsing rules:
//  1. No arguments → ErrTaskRefRequired
//  2. All digits, optionally prefixed with '#' (12, #12) → task id
//  3. Otherwise → error: invalid task reference: <ref>
//
// Task ids start at 1.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}

	ref := strings.TrimPrefix(args[0], "#")
	if !isAllDigits(ref) {
		return 0, inputErrorf("invalid task reference: %s", args[0])
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id < 1 {
		return 0, inputErrorf("invalid task reference: %s", args[0])
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveGoal finds a goal by id or by name (case-insensitive, trimmed).
func ResolveGoal(ctx context.Context, store *taskstore.Store, ref string) (int, service.Goal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, service.Goal{}, ErrGoalRequired
	}

	if isAllDigits(ref) {
		id, err := strconv.Atoi(ref)
		if err != nil {
			return 0, service.Goal{}, fmt.Errorf("%w: %s", taskstore.ErrGoalNotFound, ref)
		}
		goal, err := store.Goal(ctx, id)
		if err != nil {
			return 0, service.Goal{}, err
		}
		return id, goal, nil
	}

	goals, err := store.LoadGoals(ctx)
	if err != nil {
		return 0, service.Goal{}, err
	}

	nameLower := strings.ToLower(ref)
	matchID := 0
	for i, goal := range goals {
		if strings.ToLower(strings.TrimSpace(goal.Name)) != nameLower {
			continue
		}
		if matchID != 0 {
			return 0, service.Goal{}, fmt.Errorf("%w: %s", errAmbiguousGoal, ref)
		}
		matchID = i + 1
	}
	if matchID == 0 {
		return 0, service.Goal{}, fmt.Errorf("%w: %s", taskstore.ErrGoalNotFound, ref)
	}
	return matchID, goals[matchID-1], nil
}

// lookupTask resolves --goal and the task reference in args, and finds the
// list holding the task.
func lookupTask(ctx context.Context, app *tasks.Actions, goalRef string, args []string) (goalID int, task service.Task, parentID int, err error) {
	goalID, _, err = ResolveGoal(ctx, app.Store(), goalRef)
	if err != nil {
		return 0, service.Task{}, 0, err
	}
	taskID, err := ParseTaskRef(args)
	if err != nil {
		return 0, service.Task{}, 0, err
	}
	task, parentID, err = app.Locate(ctx, goalID, taskID)
	if err != nil {
		return 0, service.Task{}, 0, err
	}
	return goalID, task, parentID, nil
}
