package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"goaltrack/internal/config"
	"goaltrack/internal/exitcode"
	"goaltrack/internal/output"
	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command: the whole goal as YAML.
type ExportCmd struct {
	goalScope
}

type exportGoal struct {
	ID          int          `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Completed   int          `yaml:"completed"`
	Total       int          `yaml:"total"`
	Tasks       []exportTask `yaml:"tasks,omitempty"`
}

type exportTask struct {
	ID          int          `yaml:"id"`
	RemoteID    string       `yaml:"remote_id,omitempty"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Completed   bool         `yaml:"completed"`
	Minutes     *int         `yaml:"minutes,omitempty"`
	Elapsed     *int         `yaml:"elapsed,omitempty"`
	Due         string       `yaml:"due,omitempty"`
	Subtasks    []exportTask `yaml:"subtasks,omitempty"`
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print a goal and its task tree as YAML" }
func (c *ExportCmd) Usage() string     { return "goaltrack export [common flags] --goal <goal>" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.registerGoal(fs)
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, app *tasks.Actions, args []string, out, errOut io.Writer) int {
	goalID, goal, err := ResolveGoal(ctx, app.Store(), c.goal)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	nodes, err := app.Tree(ctx, goalID)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}
	count, err := app.CountGoal(ctx, goalID)
	if err != nil {
		return fail(errOut, err, exitcode.StorageError)
	}

	doc := exportGoal{
		ID:          goalID,
		Name:        goal.Name,
		Description: goal.Description,
		Completed:   count.Completed,
		Total:       count.Total,
		Tasks:       exportNodes(nodes),
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fail(errOut, err, exitcode.UserError)
	}
	if err := enc.Close(); err != nil {
		return fail(errOut, err, exitcode.UserError)
	}
	return exitcode.Success
}

func exportNodes(nodes []tasks.Node) []exportTask {
	if len(nodes) == 0 {
		return nil
	}
	result := make([]exportTask, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, exportOne(n.Task, n.Children))
	}
	return result
}

func exportOne(task service.Task, children []tasks.Node) exportTask {
	e := exportTask{
		ID:          task.TaskID,
		RemoteID:    task.ID,
		Name:        task.Name,
		Description: task.Description,
		Completed:   task.Completed,
		Subtasks:    exportNodes(children),
	}
	if task.Duration != nil {
		base, elapsed := task.Duration.Base, task.Duration.Elapsed
		e.Minutes = &base
		e.Elapsed = &elapsed
	}
	if task.DueDate != nil {
		e.Due = task.DueDate.Format(output.DateLayout)
	}
	return e
}
