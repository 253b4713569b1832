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
	Register(&RemoteCmd{})
}

// RemoteCmd implements the remote command.
type RemoteCmd struct{}

func (c *RemoteCmd) Name() string      { return "remote" }
func (c *RemoteCmd) Aliases() []string { return nil }
func (c *RemoteCmd) Synopsis() string  { return "List the tasks saved on the remote service" }
func (c *RemoteCmd) Usage() string     { return "goaltrack remote [common flags]" }
func (c *RemoteCmd) NeedsStore() bool  { return true }

func (c *RemoteCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RemoteCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	remote, err := app.RemoteTasks(ctx)
	if err != nil {
		return fail(errOut, err, exitcode.BackendError)
	}

	if len(remote) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}

	for _, task := range remote {
		fmt.Fprintf(out, "%s  %s\n", task.ID, output.TaskLabel(task))
	}
	return exitcode.Success
}
