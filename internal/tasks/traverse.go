package tasks

import (
	"context"

	"goaltrack/internal/service"
)

// MaxDepth bounds every recursive walk. Stored keys can form a cycle
// (a task listed under its own descendant), which would otherwise recurse
// forever.
const MaxDepth = 100

// FindMostImportantTask returns the first incomplete task of a leftmost
// depth-first walk below parentID. An incomplete task with an open child
// branch yields the first task of that branch; one whose children are all
// completed, or that has none, yields itself. found is false when every
// task in the subtree is completed.
func (a *Actions) FindMostImportantTask(ctx context.Context, goalID, parentID int) (service.Task, bool, error) {
	list, err := a.store.LoadTasks(ctx, goalID, parentID)
	if err != nil {
		return service.Task{}, false, wrapTaskErr("next", goalID, parentID, err)
	}
	task, found, err := a.mostImportant(ctx, goalID, list, 0)
	if err != nil {
		return service.Task{}, false, wrapTaskErr("next", goalID, parentID, err)
	}
	return task, found, nil
}

func (a *Actions) mostImportant(ctx context.Context, goalID int, list []service.Task, depth int) (service.Task, bool, error) {
	if depth > MaxDepth {
		return service.Task{}, false, ErrTreeTooDeep
	}
	for _, task := range list {
		if task.Completed {
			continue
		}
		children, _, err := a.store.Children(ctx, goalID, task.TaskID)
		if err != nil {
			return service.Task{}, false, err
		}
		if len(children) == 0 {
			return task, true, nil
		}
		sub, found, err := a.mostImportant(ctx, goalID, children, depth+1)
		if err != nil {
			return service.Task{}, false, err
		}
		if found {
			return sub, true, nil
		}
		return task, true, nil
	}
	return service.Task{}, false, nil
}

// FindImportantTasks selects tasks, in the order of FindMostImportantTask,
// until freeMinutes is used up.
//
// Each pass skips tasks already selected. A task without a stored child
// list qualifies only while it has time left on its box; a task with a
// stored child list qualifies through the same rules as above. Selection
// continues while the remaining budget is positive, so the last task may
// overrun it. Tasks without a duration cost nothing.
func (a *Actions) FindImportantTasks(ctx context.Context, goalID, parentID, freeMinutes int) ([]service.Task, error) {
	list, err := a.store.LoadTasks(ctx, goalID, parentID)
	if err != nil {
		return nil, wrapTaskErr("plan", goalID, parentID, err)
	}

	allocated := make(map[int]bool)
	var picked []service.Task
	remaining := freeMinutes
	for remaining > 0 {
		task, found, err := a.nextCandidate(ctx, goalID, list, allocated, 0)
		if err != nil {
			return nil, wrapTaskErr("plan", goalID, parentID, err)
		}
		if !found {
			break
		}
		picked = append(picked, task)
		allocated[task.TaskID] = true
		if task.Duration != nil {
			remaining -= task.Duration.Remaining()
		}
	}
	return picked, nil
}

func (a *Actions) nextCandidate(ctx context.Context, goalID int, list []service.Task, allocated map[int]bool, depth int) (service.Task, bool, error) {
	if depth > MaxDepth {
		return service.Task{}, false, ErrTreeTooDeep
	}
	for _, task := range list {
		if task.Completed || allocated[task.TaskID] {
			continue
		}
		children, stored, err := a.store.Children(ctx, goalID, task.TaskID)
		if err != nil {
			return service.Task{}, false, err
		}
		if stored {
			if len(children) == 0 {
				return task, true, nil
			}
			sub, found, err := a.nextCandidate(ctx, goalID, children, allocated, depth+1)
			if err != nil {
				return service.Task{}, false, err
			}
			if found {
				return sub, true, nil
			}
			return task, true, nil
		}
		if task.HasTimeLeft() {
			return task, true, nil
		}
	}
	return service.Task{}, false, nil
}

// CountTasks tallies list and every descendant list.
func (a *Actions) CountTasks(ctx context.Context, goalID int, list []service.Task) (service.Count, error) {
	count, err := a.count(ctx, goalID, list, 0)
	if err != nil {
		return service.Count{}, wrapTaskErr("count", goalID, 0, err)
	}
	return count, nil
}

// CountGoal tallies every task of a goal.
func (a *Actions) CountGoal(ctx context.Context, goalID int) (service.Count, error) {
	list, err := a.store.LoadTasks(ctx, goalID, 0)
	if err != nil {
		return service.Count{}, wrapTaskErr("count", goalID, 0, err)
	}
	return a.CountTasks(ctx, goalID, list)
}

func (a *Actions) count(ctx context.Context, goalID int, list []service.Task, depth int) (service.Count, error) {
	if depth > MaxDepth {
		return service.Count{}, ErrTreeTooDeep
	}
	var c service.Count
	for _, task := range list {
		c.Total++
		if task.Completed {
			c.Completed++
		}
		children, _, err := a.store.Children(ctx, goalID, task.TaskID)
		if err != nil {
			return service.Count{}, err
		}
		if len(children) > 0 {
			sub, err := a.count(ctx, goalID, children, depth+1)
			if err != nil {
				return service.Count{}, err
			}
			c.Add(sub)
		}
	}
	return c, nil
}

// CanFinish reports whether every descendant of taskID is completed.
func (a *Actions) CanFinish(ctx context.Context, goalID, taskID int) (bool, error) {
	children, _, err := a.store.Children(ctx, goalID, taskID)
	if err != nil {
		return false, wrapTaskErr("finish", goalID, taskID, err)
	}
	c, err := a.CountTasks(ctx, goalID, children)
	if err != nil {
		return false, err
	}
	return c.Completed == c.Total, nil
}

// Locate finds taskID anywhere in the goal's tree and returns it with the
// id of the list that holds it (0 for top level).
func (a *Actions) Locate(ctx context.Context, goalID, taskID int) (service.Task, int, error) {
	list, err := a.store.LoadTasks(ctx, goalID, 0)
	if err != nil {
		return service.Task{}, 0, wrapTaskErr("locate", goalID, taskID, err)
	}
	task, parentID, found, err := a.locate(ctx, goalID, taskID, 0, list, 0)
	if err != nil {
		return service.Task{}, 0, wrapTaskErr("locate", goalID, taskID, err)
	}
	if !found {
		return service.Task{}, 0, wrapTaskErr("locate", goalID, taskID, ErrTaskNotFound)
	}
	return task, parentID, nil
}

func (a *Actions) locate(ctx context.Context, goalID, taskID, parentID int, list []service.Task, depth int) (service.Task, int, bool, error) {
	if depth > MaxDepth {
		return service.Task{}, 0, false, ErrTreeTooDeep
	}
	for _, task := range list {
		if task.TaskID == taskID {
			return task, parentID, true, nil
		}
	}
	for _, task := range list {
		children, _, err := a.store.Children(ctx, goalID, task.TaskID)
		if err != nil {
			return service.Task{}, 0, false, err
		}
		if len(children) == 0 {
			continue
		}
		found, p, ok, err := a.locate(ctx, goalID, taskID, task.TaskID, children, depth+1)
		if err != nil || ok {
			return found, p, ok, err
		}
	}
	return service.Task{}, 0, false, nil
}
