package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"goaltrack/internal/commands"
	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/logging"
	"goaltrack/internal/tasks"
)

// ActionsFactory opens the task store and remote service described by cfg.
// Used to inject the backend during dispatch.
type ActionsFactory func(ctx context.Context, cfg *config.Config, log logr.Logger) (*tasks.Actions, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ActionsFactory
}

// NewDispatcher creates a new dispatcher with the given registry and
// factory. A nil factory means OpenActions.
func NewDispatcher(registry *commands.Registry, factory ActionsFactory) *Dispatcher {
	if factory == nil {
		factory = OpenActions
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list goals
	if len(args) == 0 {
		return d.dispatch(ctx, "goals", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, err := d.registry.Lookup(cmdName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(errOut, "usage: %s\n", cmd.Usage())
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	var app *tasks.Actions
	if cmd.NeedsStore() {
		log := logging.New(errOut, cfg.Debug)
		app, err = d.factory(ctx, cfg, log)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return setupExitCode(err)
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Error(err, "failed to close store")
			}
		}()
	}

	return cmd.Run(ctx, cfg, app, fs.Args(), out, errOut)
}
