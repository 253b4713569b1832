package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Subtasks of the removed task are not
// removed with it.
type RmCmd struct {
	goalScope
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "goaltrack rm [common flags] --goal <goal> <task-id>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goalID, task, parentID, err := lookupTask(ctx, app, c.goal, args)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if err := app.DeleteTask(ctx, goalID, parentID, task.TaskID); err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
