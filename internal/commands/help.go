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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "goaltrack help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, err := DefaultRegistry.Lookup(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
		return exitcode.Success
	}

	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  goaltrack                                          List goals
  goaltrack goals [common flags]
  goaltrack goal [common flags] [--description <text>] <name...>
  goaltrack list [common flags] --goal <goal> [--parent <id>]
  goaltrack add [common flags] --goal <goal> [--parent <id>] [--description <text>]
                [--duration <min>] [--due YYYY-MM-DD] <name...>
  goaltrack done [common flags] --goal <goal> [--force] <task-id>
  goaltrack rm [common flags] --goal <goal> <task-id>
  goaltrack edit [common flags] --goal <goal> [--name <name>] [--description <text>] <task-id>
  goaltrack track [common flags] --goal <goal> <task-id> <minutes>
  goaltrack tree [common flags] --goal <goal>
  goaltrack next [common flags] --goal <goal> [--parent <id>]
  goaltrack plan [common flags] --goal <goal> [--parent <id>] <minutes>
  goaltrack stats [common flags] --goal <goal>
  goaltrack export [common flags] --goal <goal>
  goaltrack remote [common flags]
  goaltrack login [common flags] [--token <token>] [--user <name>]
  goaltrack logout [common flags]
  goaltrack help [command]
  goaltrack version

A goal is given by its number or its name.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
