package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/output"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&PlanCmd{})
}

// PlanCmd implements the plan command: pick tasks to fill a time budget.
type PlanCmd struct {
	goalScope
}

func (c *PlanCmd) Name() string      { return "plan" }
func (c *PlanCmd) Aliases() []string { return nil }
func (c *PlanCmd) Synopsis() string  { return "Pick tasks that fit into a number of free minutes" }
func (c *PlanCmd) Usage() string {
	return "goaltrack plan [common flags] --goal <goal> [--parent <id>] <minutes>"
}
func (c *PlanCmd) NeedsStore() bool { return true }

func (c *PlanCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
	c.registerParent(fs)
}

func (c *PlanCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: free minutes required")
		return exitcode.UserError
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes < 0 {
		fmt.Fprintf(errOut, "error: invalid minutes: %s\n", args[0])
		return exitcode.UserError
	}

	goalID, err := c.resolve(ctx, app)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	picked, err := app.FindImportantTasks(ctx, goalID, c.parent, minutes)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if len(picked) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to do")
		}
		return exitcode.Success
	}

	output.FormatPlan(out, picked, minutes)
	return exitcode.Success
}
