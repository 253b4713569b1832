package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/tasks"
	"goaltrack/internal/taskstore"
)

func init() {
	Register(&GoalCmd{})
}

// GoalCmd implements the goal command.
type GoalCmd struct {
	description string
}

func (c *GoalCmd) Name() string      { return "goal" }
func (c *GoalCmd) Aliases() []string { return []string{"addgoal"} }
func (c *GoalCmd) Synopsis() string  { return "Create a goal" }
func (c *GoalCmd) Usage() string {
	return "goaltrack goal [common flags] [--description <text>] <name...>"
}
func (c *GoalCmd) NeedsStore() bool { return true }

func (c *GoalCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.description, "description", "d", "", "")
}

func (c *GoalCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: goal name required")
		return exitcode.UserError
	}

	// Names double as goal references, so they must be unique and must not
	// look like an id.
	if isAllDigits(name) {
		fmt.Fprintf(errOut, "error: goal name cannot be a number: %s\n", name)
		return exitcode.UserError
	}
	_, _, err := ResolveGoal(ctx, app.Store(), name)
	switch {
	case err == nil, errors.Is(err, errAmbiguousGoal):
		fmt.Fprintf(errOut, "error: goal already exists: %s\n", name)
		return exitcode.UserError
	case !errors.Is(err, taskstore.ErrGoalNotFound):
		return fail(errOut, err, exitcode.StorageError)
	}

	id, err := app.Store().AddGoal(ctx, name, c.description)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", id)
	}
	return exitcode.Success
}
