package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/output"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// It prints one sibling list: the goal's top level, or the children of --parent.
type ListCmd struct {
	goalScope
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List the tasks of a goal" }
func (c *ListCmd) Usage() string {
	return "goaltrack list [common flags] --goal <goal> [--parent <id>]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
	c.registerParent(fs)
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	goalID, err := c.resolve(ctx, app)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	list, err := app.Store().LoadTasks(ctx, goalID, c.parent)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if len(list) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}

	for _, task := range list {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
