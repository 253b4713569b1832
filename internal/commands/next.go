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
	Register(&NextCmd{})
}

// NextCmd implements the next command.
type NextCmd struct {
	goalScope
}

func (c *NextCmd) Name() string      { return "next" }
func (c *NextCmd) Aliases() []string { return nil }
func (c *NextCmd) Synopsis() string  { return "Print the most important open task" }
func (c *NextCmd) Usage() string {
	return "goaltrack next [common flags] --goal <goal> [--parent <id>]"
}
func (c *NextCmd) NeedsStore() bool { return true }

func (c *NextCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
	c.registerParent(fs)
}

func (c *NextCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goalID, err := c.resolve(ctx, app)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	task, found, err := app.FindMostImportantTask(ctx, goalID, c.parent)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}
	if !found {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to do")
		}
		return exitcode.Success
	}

	output.FormatTask(out, task)
	return exitcode.Success
}
