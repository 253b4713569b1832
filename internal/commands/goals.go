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
	Register(&GoalsCmd{})
}

// GoalsCmd implements the goals command.
// Handles both `goaltrack` (no args) and `goaltrack goals`.
type GoalsCmd struct{}

func (c *GoalsCmd) Name() string      { return "goals" }
func (c *GoalsCmd) Aliases() []string { return []string{"ls"} }
func (c *GoalsCmd) Synopsis() string  { return "Print all goals with completion counts" }
func (c *GoalsCmd) Usage() string     { return "goaltrack goals [common flags]" }
func (c *GoalsCmd) NeedsStore() bool  { return true }

func (c *GoalsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *GoalsCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goals, err := app.Store().LoadGoals(ctx)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	if len(goals) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no goals")
		}
		return exitcode.Success
	}

	for i, goal := range goals {
		count, err := app.CountGoal(ctx, i+1)
		if err != nil {
			return fail(errOut, err, exitcode.StorageError)
		}
		output.FormatGoal(out, i+1, goal, count)
	}
	return exitcode.Success
}
