package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	goalScope
	name        string
	description string
	fs          *pflag.FlagSet
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Rename a task or change its description" }
func (c *EditCmd) Usage() string {
	return "goaltrack edit [common flags] --goal <goal> [--name <name>] [--description <text>] <task-id>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
	fs.StringVarP(&c.name, "name", "n", "", "")
	fs.StringVarP(&c.description, "description", "d", "", "")
	c.fs = fs
}

func (c *EditCmd) changed(flag string) bool {
	return c.fs != nil && c.fs.Changed(flag)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	if !c.changed("name") && !c.changed("description") {
		fmt.Fprintln(errOut, "error: nothing to change (use --name or --description)")
		return exitcode.UserError
	}

	goalID, task, parentID, err := lookupTask(ctx, app, c.goal, args)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	name, description := task.Name, task.Description
	if c.changed("name") {
		name = strings.TrimSpace(c.name)
		if name == "" {
			fmt.Fprintln(errOut, "error: task name required")
			return exitcode.UserError
		}
	}
	if c.changed("description") {
		description = c.description
	}

	if err := app.EditTask(ctx, goalID, parentID, task.TaskID, name, description); err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
