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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	goalScope
	force bool
}

// SetForce sets the force flag (for testing).
func (c *DoneCmd) SetForce(force bool) {
	c.force = force
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"finish"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string {
	return "goaltrack done [common flags] --goal <goal> [--force] <task-id>"
}
func (c *DoneCmd) NeedsStore() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
	fs.BoolVarP(&c.force, "force", "f", false, "finish even if subtasks are open")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goalID, task, parentID, err := lookupTask(ctx, app, c.goal, args)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !c.force {
		ok, err := app.CanFinish(ctx, goalID, task.TaskID)
		if err != nil {
			return fail(errOut, err, exitcode.StorageError)
		}
		if !ok {
			fmt.Fprintf(errOut, "error: %v (use --force)\n", tasks.ErrTaskUnfinished)
			return exitcode.UserError
		}
	}

	if err := app.FinishTask(ctx, goalID, parentID, task.TaskID); err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
