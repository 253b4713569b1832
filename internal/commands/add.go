package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/output"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	goalScope
	description string
	duration    int
	due         string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "goaltrack add [common flags] --goal <goal> [--parent <id>] [--description <text>] [--duration <min>] [--due YYYY-MM-DD] <name...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
	c.registerParent(fs)
	fs.StringVarP(&c.description, "description", "d", "", "")
	fs.IntVarP(&c.duration, "duration", "m", 0, "time box in minutes")
	fs.StringVar(&c.due, "due", "", "due date (YYYY-MM-DD)")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: task name required")
		return exitcode.UserError
	}
	if c.duration < 0 {
		fmt.Fprintf(errOut, "error: invalid duration: %d\n", c.duration)
		return exitcode.UserError
	}

	in := tasks.NewTask{
		Name:        name,
		Description: c.description,
		Duration:    c.duration,
	}
	if c.due != "" {
		due, err := time.Parse(output.DateLayout, c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
			return exitcode.UserError
		}
		in.DueDate = &due
	}

	goalID, err := c.resolve(ctx, app)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	existing, err := app.Store().LoadTasks(ctx, goalID, c.parent)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	res, err := app.AddTask(ctx, goalID, c.parent, existing, in)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", res.Task.TaskID)
	}
	return exitcode.Success
}
