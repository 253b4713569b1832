// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
)

// DateLayout is the due date format for input and output.
const DateLayout = "2006-01-02"

// FormatGoal formats a goal line for the goals command.
// Format: "{ID:>4}  {NAME}  {COMPLETED}/{TOTAL}\n"
func FormatGoal(w io.Writer, id int, goal service.Goal, count service.Count) {
	fmt.Fprintf(w, "%4d  %s  %d/%d\n", id, normalizeTitle(goal.Name), count.Completed, count.Total)
}

// FormatTask formats a task line.
// Format: "{ID:>4}  {LABEL}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", task.TaskID, TaskLabel(task))
}

// TaskLabel renders a task as "[x] NAME (ELAPSED/BASE min, due DATE)".
// The parenthesised part is omitted when the task has neither a duration
// nor a due date.
func TaskLabel(task service.Task) string {
	var b strings.Builder
	if task.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(normalizeTitle(task.Name))

	var extra []string
	if task.Duration != nil {
		extra = append(extra, fmt.Sprintf("%d/%d min", task.Duration.Elapsed, task.Duration.Base))
	}
	if task.DueDate != nil {
		extra = append(extra, "due "+task.DueDate.Format(DateLayout))
	}
	if len(extra) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(extra, ", "))
	}
	return b.String()
}

// RenderTree draws the task tree of a goal below a title line.
func RenderTree(w io.Writer, title string, nodes []tasks.Node) {
	t := tree.Root(normalizeTitle(title))
	addNodes(t, nodes)
	fmt.Fprintln(w, t.String())
}

func addNodes(parent *tree.Tree, nodes []tasks.Node) {
	for _, n := range nodes {
		label := fmt.Sprintf("%d %s", n.TaskID, TaskLabel(n.Task))
		if len(n.Children) == 0 {
			parent.Child(label)
			continue
		}
		sub := tree.Root(label)
		addNodes(sub, n.Children)
		parent.Child(sub)
	}
}

// FormatPlan lists the tasks picked for a time budget followed by the
// minutes they account for.
func FormatPlan(w io.Writer, picked []service.Task, budget int) {
	planned := 0
	for _, task := range picked {
		FormatTask(w, task)
		if task.Duration != nil {
			planned += task.Duration.Remaining()
		}
	}
	fmt.Fprintf(w, "planned %d of %d min\n", planned, budget)
}

// FormatStats prints the completion tally of a goal.
func FormatStats(w io.Writer, goal service.Goal, count service.Count) {
	percent := 0
	if count.Total > 0 {
		percent = count.Completed * 100 / count.Total
	}
	fmt.Fprintf(w, "%s: %d of %d tasks completed (%d%%)\n", normalizeTitle(goal.Name), count.Completed, count.Total, percent)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
