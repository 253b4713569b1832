package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&TrackCmd{})
}

// TrackCmd implements the track command.
type TrackCmd struct {
	goalScope
}

func (c *TrackCmd) Name() string      { return "track" }
func (c *TrackCmd) Aliases() []string { return nil }
func (c *TrackCmd) Synopsis() string  { return "Log minutes spent on a time-boxed task" }
func (c *TrackCmd) Usage() string {
	return "goaltrack track [common flags] --goal <goal> <task-id> <minutes>"
}
func (c *TrackCmd) NeedsStore() bool { return true }

func (c *TrackCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
}

func (c *TrackCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task id and minutes required")
		return exitcode.UserError
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil || minutes < 1 {
		fmt.Fprintf(errOut, "error: invalid minutes: %s\n", args[1])
		return exitcode.UserError
	}

	goalID, task, parentID, err := lookupTask(ctx, app, c.goal, args[:1])
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if err := app.LogProgress(ctx, goalID, parentID, task.TaskID, minutes); err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
