package tasks_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"goaltrack/internal/service"
	"goaltrack/internal/tasks"
	"goaltrack/internal/taskstore"
	"goaltrack/internal/testutil"
)

func names(list []service.Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Name
	}
	return out
}

func equalNames(t *testing.T, got []service.Task, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestDeleteTask_RemovesExactlyOne(t *testing.T) {
	a, mem := testutil.NewActions(t, nil)
	ctx := context.Background()
	testutil.Seed(t, a, 1, 0,
		testutil.NewTask(1, 1, "A").Build(),
		testutil.NewTask(1, 2, "B").Build(),
		testutil.NewTask(1, 3, "C").Build(),
	)
	testutil.Seed(t, a, 1, 2, testutil.NewTask(1, 4, "B1").Parent(2).Build())

	if err := a.DeleteTask(ctx, 1, 0, 2); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	equalNames(t, list, "A", "C")

	// Descendants are not cascaded.
	if _, found, _ := mem.GetString(ctx, "goals.1.2"); !found {
		t.Error("expected orphaned child list to remain in storage")
	}
	keys := mem.Keys()
	slices.Sort(keys)
	want := []string{taskstore.GoalKey(1), taskstore.ChildKey(1, 2)}
	for _, key := range want {
		if !slices.Contains(keys, key) {
			t.Errorf("expected key %q after delete, got %v", key, keys)
		}
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)
	testutil.Seed(t, a, 1, 0, testutil.NewTask(1, 1, "A").Build())

	err := a.DeleteTask(context.Background(), 1, 0, 9)
	if !errors.Is(err, tasks.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	var opErr *tasks.OpError
	if !errors.As(err, &opErr) || opErr.Op != "delete" || opErr.TaskID != 9 {
		t.Errorf("expected OpError for delete of task 9, got %#v", err)
	}
}

func TestDeleteTask_RemovesSyncedTaskRemotely(t *testing.T) {
	remote := testutil.NewFakeRemote()
	a, _ := testutil.NewActions(t, remote)
	ctx := context.Background()
	if err := a.Store().SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}

	res, err := a.AddTask(ctx, 1, 0, nil, tasks.NewTask{Name: "Synced"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if len(remote.Tasks()) != 1 {
		t.Fatalf("expected task on remote, got %v", remote.Tasks())
	}

	if err := a.DeleteTask(ctx, 1, 0, res.Task.TaskID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if len(remote.Tasks()) != 0 {
		t.Errorf("expected remote copy removed, got %v", remote.Tasks())
	}
}

func TestDeleteTask_RemoteFailureIsNotFatal(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.DeleteTaskErr = errors.New("connection refused")
	a, _ := testutil.NewActions(t, remote)
	ctx := context.Background()
	a.Store().SetToken(ctx, "tok")
	testutil.Seed(t, a, 1, 0, service.Task{ID: "remote-7", GoalID: 1, TaskID: 1, Name: "A"})

	if err := a.DeleteTask(ctx, 1, 0, 1); err != nil {
		t.Fatalf("remote failure must not fail delete, got %v", err)
	}
	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	if len(list) != 0 {
		t.Errorf("expected local delete, got %v", names(list))
	}
}

func TestFinishTask_OnlyCompletedChanges(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)
	ctx := context.Background()
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	orig := testutil.NewTask(1, 2, "B").Parent(1).Description("desc").Duration(30, 5).Build()
	orig.DueDate = &due
	testutil.Seed(t, a, 1, 1, testutil.NewTask(1, 3, "A").Parent(1).Build(), orig)
	testutil.Seed(t, a, 1, 2, testutil.NewTask(1, 4, "B1").Parent(2).Build())

	if err := a.FinishTask(ctx, 1, 1, 2); err != nil {
		t.Fatalf("FinishTask failed: %v", err)
	}

	list, _ := a.Store().LoadTasks(ctx, 1, 1)
	got := list[1]
	if !got.Completed {
		t.Fatal("expected task completed")
	}
	if got.Name != "B" || got.Description != "desc" || got.TaskID != 2 || *got.ParentID != 1 {
		t.Errorf("unexpected field change: %+v", got)
	}
	if got.Duration == nil || *got.Duration != (service.Duration{Base: 30, Elapsed: 5}) {
		t.Errorf("duration changed: %+v", got.Duration)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date changed: %v", got.DueDate)
	}
	if list[0].Completed {
		t.Error("sibling must stay incomplete")
	}

	children, _ := a.Store().LoadTasks(ctx, 1, 2)
	if children[0].Completed {
		t.Error("finish must not cascade to children")
	}
}

func TestEditTask(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)
	ctx := context.Background()
	testutil.Seed(t, a, 1, 0, testutil.NewTask(1, 1, "Old").Description("old").Duration(10, 0).Build())

	if err := a.EditTask(ctx, 1, 0, 1, "New", "new"); err != nil {
		t.Fatalf("EditTask failed: %v", err)
	}

	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	if list[0].Name != "New" || list[0].Description != "new" {
		t.Errorf("expected edited fields, got %+v", list[0])
	}
	if list[0].Duration == nil || list[0].Duration.Base != 10 {
		t.Errorf("duration must be untouched, got %+v", list[0].Duration)
	}
}

func TestLogProgress(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)
	ctx := context.Background()
	testutil.Seed(t, a, 1, 0,
		testutil.NewTask(1, 1, "Boxed").Duration(30, 5).Build(),
		testutil.NewTask(1, 2, "Open").Build(),
	)

	if err := a.LogProgress(ctx, 1, 0, 1, 10); err != nil {
		t.Fatalf("LogProgress failed: %v", err)
	}
	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	if list[0].Duration.Elapsed != 15 {
		t.Errorf("expected elapsed 15, got %d", list[0].Duration.Elapsed)
	}

	if err := a.LogProgress(ctx, 1, 0, 2, 10); !errors.Is(err, tasks.ErrNotTimeBoxed) {
		t.Errorf("expected ErrNotTimeBoxed, got %v", err)
	}
}

func TestAddTask_LocalOnly(t *testing.T) {
	a, mem := testutil.NewActions(t, testutil.NewFakeRemote())
	ctx := context.Background()

	res, err := a.AddTask(ctx, 1, 0, nil, tasks.NewTask{Name: "Read", Description: "ch. 1", Duration: 45})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if res.Origin != tasks.OriginLocal || res.SyncErr != nil {
		t.Errorf("expected local origin without sync error, got %v %v", res.Origin, res.SyncErr)
	}
	task := res.Task
	if task.TaskID != 1 || task.GoalID != 1 || task.ParentID != nil || task.Completed {
		t.Errorf("unexpected task %+v", task)
	}
	if task.Duration == nil || *task.Duration != (service.Duration{Base: 45}) {
		t.Errorf("expected duration {45 0}, got %+v", task.Duration)
	}

	n, _, _ := mem.GetNumber(ctx, "goals.1.lastId")
	if n != 1 {
		t.Errorf("expected counter 1, got %d", n)
	}
	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	equalNames(t, list, "Read")
	equalNames(t, res.Tasks, "Read")
}

func TestAddTask_WithoutDurationIsNotTimeBoxed(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)

	res, err := a.AddTask(context.Background(), 1, 0, nil, tasks.NewTask{Name: "Open ended"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if res.Task.Duration != nil {
		t.Errorf("expected no duration, got %+v", res.Task.Duration)
	}
}

func TestAddTask_UnderParent(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)
	ctx := context.Background()
	existing := []service.Task{testutil.NewTask(1, 3, "Sibling").Parent(2).Build()}
	a.Store().SaveTasks(ctx, existing, 1, 2)

	res, err := a.AddTask(ctx, 1, 2, existing, tasks.NewTask{Name: "Child"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if res.Task.ParentID == nil || *res.Task.ParentID != 2 {
		t.Errorf("expected parent 2, got %v", res.Task.ParentID)
	}

	list, _ := a.Store().LoadTasks(ctx, 1, 2)
	equalNames(t, list, "Sibling", "Child")
	top, _ := a.Store().LoadTasks(ctx, 1, 0)
	if len(top) != 0 {
		t.Errorf("top-level list must be untouched, got %v", names(top))
	}
}

func TestAddTask_SequentialIDs(t *testing.T) {
	a, _ := testutil.NewActions(t, nil)
	ctx := context.Background()

	first, _ := a.AddTask(ctx, 1, 0, nil, tasks.NewTask{Name: "A"})
	second, _ := a.AddTask(ctx, 1, 0, first.Tasks, tasks.NewTask{Name: "B"})
	other, _ := a.AddTask(ctx, 2, 0, nil, tasks.NewTask{Name: "X"})

	if first.Task.TaskID != 1 || second.Task.TaskID != 2 {
		t.Errorf("expected ids 1, 2, got %d, %d", first.Task.TaskID, second.Task.TaskID)
	}
	if other.Task.TaskID != 1 {
		t.Errorf("ids are per goal, got %d", other.Task.TaskID)
	}
	equalNames(t, second.Tasks, "A", "B")
}

func TestAddTask_RemoteRepresentationWins(t *testing.T) {
	remote := testutil.NewFakeRemote()
	a, _ := testutil.NewActions(t, remote)
	ctx := context.Background()
	a.Store().SetToken(ctx, "tok")

	res, err := a.AddTask(ctx, 1, 0, nil, tasks.NewTask{Name: "Synced"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if res.Origin != tasks.OriginRemote {
		t.Errorf("expected remote origin, got %v", res.Origin)
	}
	if res.Task.ID != "remote-1" {
		t.Errorf("expected remote id, got %q", res.Task.ID)
	}

	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	if len(list) != 1 || list[0].ID != "remote-1" {
		t.Errorf("expected stored remote representation, got %+v", list)
	}
	if len(remote.Tokens) != 1 || remote.Tokens[0] != "tok" {
		t.Errorf("expected token passed once, got %v", remote.Tokens)
	}
}

func TestAddTask_RemoteKeepsLocalIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemote(ctrl)
	a, _ := testutil.NewActions(t, remote)
	ctx := context.Background()
	a.Store().SetToken(ctx, "tok")

	remote.EXPECT().
		SaveTask(gomock.Any(), gomock.Any(), "tok").
		Return(service.Task{ID: "abc", Name: "Renamed by server"}, nil)

	res, err := a.AddTask(ctx, 4, 0, nil, tasks.NewTask{Name: "Draft"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if res.Task.Name != "Renamed by server" || res.Task.ID != "abc" {
		t.Errorf("expected server fields, got %+v", res.Task)
	}
	if res.Task.TaskID != 1 || res.Task.GoalID != 4 {
		t.Errorf("expected local identity kept, got goal %d task %d", res.Task.GoalID, res.Task.TaskID)
	}
}

func TestAddTask_RemoteFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemote(ctrl)
	a, mem := testutil.NewActions(t, remote)
	ctx := context.Background()
	a.Store().SetToken(ctx, "tok")

	saveErr := errors.New("503 service unavailable")
	remote.EXPECT().
		SaveTask(gomock.Any(), gomock.Any(), "tok").
		Return(service.Task{}, saveErr).
		Times(1)

	res, err := a.AddTask(ctx, 1, 0, nil, tasks.NewTask{Name: "Offline"})
	if err != nil {
		t.Fatalf("remote failure must not fail AddTask, got %v", err)
	}
	if res.Origin != tasks.OriginLocal || !errors.Is(res.SyncErr, saveErr) {
		t.Errorf("expected local fallback with sync error, got %v %v", res.Origin, res.SyncErr)
	}
	if res.Task.ID != "" || res.Task.Name != "Offline" {
		t.Errorf("expected draft task, got %+v", res.Task)
	}

	n, _, _ := mem.GetNumber(ctx, "goals.1.lastId")
	if n != 1 {
		t.Errorf("expected counter incremented exactly once, got %d", n)
	}
	list, _ := a.Store().LoadTasks(ctx, 1, 0)
	equalNames(t, list, "Offline")
}

func TestAddTask_NoTokenSkipsRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemote(ctrl)
	a, _ := testutil.NewActions(t, remote)

	// No expectations: any remote call fails the test.
	res, err := a.AddTask(context.Background(), 1, 0, nil, tasks.NewTask{Name: "Local"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if res.Origin != tasks.OriginLocal {
		t.Errorf("expected local origin, got %v", res.Origin)
	}
}

func TestRemoteTasks(t *testing.T) {
	ctx := context.Background()

	a, _ := testutil.NewActions(t, nil)
	if _, err := a.RemoteTasks(ctx); !errors.Is(err, tasks.ErrNoRemote) {
		t.Errorf("expected ErrNoRemote, got %v", err)
	}

	remote := testutil.NewFakeRemote()
	a, _ = testutil.NewActions(t, remote)
	if _, err := a.RemoteTasks(ctx); !errors.Is(err, tasks.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}

	a.Store().SetToken(ctx, "tok")
	a.AddTask(ctx, 1, 0, nil, tasks.NewTask{Name: "A"})
	list, err := a.RemoteTasks(ctx)
	if err != nil {
		t.Fatalf("RemoteTasks failed: %v", err)
	}
	equalNames(t, list, "A")
}
