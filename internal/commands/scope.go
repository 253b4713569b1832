package commands

import (
	"context"

	"github.com/spf13/pflag"

	"goaltrack/internal/tasks"
)

// goalScope holds the --goal and --parent flags shared by task commands.
type goalScope struct {
	goal   string
	parent int
}

func (s *goalScope) registerGoal(fs *pflag.FlagSet) {
	fs.StringVarP(&s.goal, "goal", "g", "", "goal id or name")
}

func (s *goalScope) registerParent(fs *pflag.FlagSet) {
	fs.IntVarP(&s.parent, "parent", "p", 0, "parent task id (0 for top level)")
}

// resolve returns the goal id and checks that --parent names an existing
// task of that goal.
func (s *goalScope) resolve(ctx context.Context, app *tasks.Actions) (int, error) {
	goalID, _, err := ResolveGoal(ctx, app.Store(), s.goal)
	if err != nil {
		return 0, err
	}
	if s.parent < 0 {
		return 0, inputErrorf("invalid parent: %d", s.parent)
	}
	if s.parent > 0 {
		if _, _, err := app.Locate(ctx, goalID, s.parent); err != nil {
			return 0, err
		}
	}
	return goalID, nil
}
