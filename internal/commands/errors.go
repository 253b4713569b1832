package commands

import (
	"errors"
	"fmt"
	"io"

	"goaltrack/internal/exitcode"
	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
	"goaltrack/internal/taskstore"
)

// inputError marks malformed command arguments.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func inputErrorf(format string, a ...any) error {
	return &inputError{msg: fmt.Sprintf(format, a...)}
}

// fail prints err and returns its exit code. Errors without a known
// classification get fallback.
func fail(errOut io.Writer, err error, fallback int) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitCodeFor(err, fallback)
}

func exitCodeFor(err error, fallback int) int {
	var inErr *inputError
	switch {
	case errors.As(err, &inErr),
		errors.Is(err, ErrTaskRefRequired),
		errors.Is(err, ErrGoalRequired),
		errors.Is(err, errAmbiguousGoal),
		errors.Is(err, taskstore.ErrGoalNotFound),
		errors.Is(err, tasks.ErrTaskNotFound),
		errors.Is(err, tasks.ErrNotTimeBoxed),
		errors.Is(err, tasks.ErrTaskUnfinished):
		return exitcode.UserError
	case errors.Is(err, tasks.ErrNoRemote),
		errors.Is(err, tasks.ErrNotLoggedIn),
		errors.Is(err, service.ErrUnauthorized):
		return exitcode.AuthError
	case errors.Is(err, service.ErrTimeout),
		errors.Is(err, service.ErrNotFound):
		return exitcode.BackendError
	}
	return fallback
}
