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
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct {
	goalScope
}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print how many tasks of a goal are completed" }
func (c *StatsCmd) Usage() string     { return "goaltrack stats [common flags] --goal <goal>" }
func (c *StatsCmd) NeedsStore() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goalID, goal, err := ResolveGoal(ctx, app.Store(), c.goal)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	count, err := app.CountGoal(ctx, goalID)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	output.FormatStats(out, goal, count)
	return exitcode.Success
}
