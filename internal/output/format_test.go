package output_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"goaltrack/internal/output"
	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
	"goaltrack/internal/testutil"
)

func TestTaskLabel(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	withDue := testutil.NewTask(1, 2, "Paint").Duration(30, 10).Build()
	withDue.DueDate = &due

	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{"plain", testutil.NewTask(1, 1, "Read").Build(), "[ ] Read"},
		{"completed", testutil.NewTask(1, 1, "Read").Completed().Build(), "[x] Read"},
		{"duration", testutil.NewTask(1, 1, "Run").Duration(20, 5).Build(), "[ ] Run (5/20 min)"},
		{"duration and due", withDue, "[ ] Paint (10/30 min, due 2026-03-01)"},
		{"untitled", testutil.NewTask(1, 1, "  ").Build(), "[ ] (untitled)"},
		{"newline", testutil.NewTask(1, 1, "a\nb").Build(), "[ ] a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := output.TaskLabel(tt.task); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatGoal(t *testing.T) {
	var buf bytes.Buffer
	output.FormatGoal(&buf, 3, service.Goal{Name: "Learn Go"}, service.Count{Completed: 2, Total: 5})
	if got, want := buf.String(), "   3  Learn Go  2/5\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatPlan(t *testing.T) {
	var buf bytes.Buffer
	output.FormatPlan(&buf, []service.Task{
		testutil.NewTask(1, 1, "X").Duration(20, 0).Build(),
		testutil.NewTask(1, 2, "Y").Duration(20, 5).Build(),
		testutil.NewTask(1, 3, "Z").Build(),
	}, 30)

	want := "   1  [ ] X (0/20 min)\n" +
		"   2  [ ] Y (5/20 min)\n" +
		"   3  [ ] Z\n" +
		"planned 35 of 30 min\n"
	if got := buf.String(); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	output.FormatStats(&buf, service.Goal{Name: "Garden"}, service.Count{Completed: 1, Total: 3})
	if got, want := buf.String(), "Garden: 1 of 3 tasks completed (33%)\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	buf.Reset()
	output.FormatStats(&buf, service.Goal{Name: "Empty"}, service.Count{})
	if got, want := buf.String(), "Empty: 0 of 0 tasks completed (0%)\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderTree(t *testing.T) {
	nodes := []tasks.Node{
		{
			Task: testutil.NewTask(1, 1, "A").Build(),
			Children: []tasks.Node{
				{Task: testutil.NewTask(1, 3, "A1").Completed().Build()},
			},
		},
		{Task: testutil.NewTask(1, 2, "B").Build()},
	}

	var buf bytes.Buffer
	output.RenderTree(&buf, "Garden", nodes)
	got := buf.String()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "Garden" {
		t.Errorf("expected title line, got %q", lines[0])
	}
	for i, want := range []string{"1 [ ] A", "3 [x] A1", "2 [ ] B"} {
		if !strings.Contains(lines[i+1], want) {
			t.Errorf("line %d: expected %q in %q", i+1, want, lines[i+1])
		}
	}
	// A1 is nested one level deeper than A.
	if strings.Index(lines[2], "3 [x] A1") <= strings.Index(lines[1], "1 [ ] A") {
		t.Errorf("expected A1 indented below A:\n%s", got)
	}
}
