package tasks

import (
	"context"

	"goaltrack/internal/service"
)

// Origin identifies which representation of a new task was persisted.
type Origin int

const (
	// OriginLocal means the locally built draft was stored.
	OriginLocal Origin = iota
	// OriginRemote means the remote service's representation was stored.
	OriginRemote
)

func (o Origin) String() string {
	if o == OriginRemote {
		return "remote"
	}
	return "local"
}

// AddResult is the outcome of AddTask.
type AddResult struct {
	// Tasks is the updated sibling list, as written to the store.
	Tasks []service.Task

	// Task is the stored representation of the new task.
	Task service.Task

	Origin Origin

	// SyncErr is the remote failure that was absorbed, if any.
	SyncErr error
}

// AddTask appends a new task to existing (the current children of
// parentID) and stores the result.
//
// The goal's id counter is incremented and persisted before anything else,
// exactly once per call. When a token is stored and a remote is
// configured, the draft is sent to the remote service and the server's
// representation replaces it; on remote failure the draft is kept. The
// sibling list is written once, after the remote phase.
func (a *Actions) AddTask(ctx context.Context, goalID, parentID int, existing []service.Task, in NewTask) (AddResult, error) {
	id, err := a.store.AllocateTaskID(ctx, goalID)
	if err != nil {
		return AddResult{}, wrapTaskErr("add", goalID, 0, err)
	}

	draft := service.Task{
		Name:        in.Name,
		Description: in.Description,
		GoalID:      goalID,
		TaskID:      id,
		DueDate:     in.DueDate,
	}
	if parentID != 0 {
		p := parentID
		draft.ParentID = &p
	}
	if in.Duration > 0 {
		draft.Duration = &service.Duration{Base: in.Duration}
	}

	result := AddResult{Task: draft, Origin: OriginLocal}
	token, ok, err := a.store.Token(ctx)
	if err != nil {
		return AddResult{}, wrapTaskErr("add", goalID, id, err)
	}
	if ok && a.remote != nil {
		saved, err := a.remote.SaveTask(ctx, draft, token)
		if err != nil {
			a.log.Error(err, "failed to save task to remote service, keeping local copy", "goal", goalID, "task", id)
			result.SyncErr = err
		} else {
			result.Task = preferRemote(draft, saved)
			result.Origin = OriginRemote
			a.log.V(1).Info("saved task to remote service", "goal", goalID, "task", id, "remoteID", saved.ID)
		}
	}

	updated := make([]service.Task, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, result.Task)
	if err := a.store.SaveTasks(ctx, updated, goalID, parentID); err != nil {
		return AddResult{}, wrapTaskErr("add", goalID, id, err)
	}
	result.Tasks = updated
	return result, nil
}

// preferRemote returns the server's task. Local identity fields the server
// left empty are taken from the draft so the task stays addressable.
func preferRemote(draft, saved service.Task) service.Task {
	if saved.TaskID == 0 {
		saved.TaskID = draft.TaskID
	}
	if saved.GoalID == 0 {
		saved.GoalID = draft.GoalID
	}
	if saved.ParentID == nil {
		saved.ParentID = draft.ParentID
	}
	return saved
}

// deleteRemote removes a synced task from the remote service. Failures are
// logged only.
func (a *Actions) deleteRemote(ctx context.Context, task service.Task) {
	if a.remote == nil {
		return
	}
	token, ok, err := a.store.Token(ctx)
	if err != nil || !ok {
		return
	}
	if err := a.remote.DeleteTask(ctx, task.ID, token); err != nil {
		a.log.Error(err, "failed to delete task on remote service", "goal", task.GoalID, "task", task.TaskID, "remoteID", task.ID)
	}
}

// RemoteTasks lists the tasks stored on the remote service.
func (a *Actions) RemoteTasks(ctx context.Context) ([]service.Task, error) {
	if a.remote == nil {
		return nil, ErrNoRemote
	}
	token, ok, err := a.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return a.remote.ListTasks(ctx, token)
}
