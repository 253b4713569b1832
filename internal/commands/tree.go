package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/output"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&TreeCmd{})
}

// TreeCmd implements the tree command.
type TreeCmd struct {
	goalScope
}

func (c *TreeCmd) Name() string      { return "tree" }
func (c *TreeCmd) Aliases() []string { return nil }
func (c *TreeCmd) Synopsis() string  { return "Draw the task tree of a goal" }
func (c *TreeCmd) Usage() string     { return "goaltrack tree [common flags] --goal <goal>" }
func (c *TreeCmd) NeedsStore() bool  { return true }

func (c *TreeCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
}

func (c *TreeCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goalID, goal, err := ResolveGoal(ctx, app.Store(), c.goal)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	nodes, err := app.Tree(ctx, goalID)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	output.RenderTree(out, goal.Name, nodes)
	return exitcode.Success
}
