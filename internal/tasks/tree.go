package tasks

import (
	"context"

	"goaltrack/internal/service"
)

// Node is a task with its loaded subtree.
type Node struct {
	service.Task
	Children []Node
}

// Tree loads the whole task tree of a goal in stored order.
func (a *Actions) Tree(ctx context.Context, goalID int) ([]Node, error) {
	list, err := a.store.LoadTasks(ctx, goalID, 0)
	if err != nil {
		return nil, wrapTaskErr("tree", goalID, 0, err)
	}
	nodes, err := a.buildTree(ctx, goalID, list, 0)
	if err != nil {
		return nil, wrapTaskErr("tree", goalID, 0, err)
	}
	return nodes, nil
}

func (a *Actions) buildTree(ctx context.Context, goalID int, list []service.Task, depth int) ([]Node, error) {
	if depth > MaxDepth {
		return nil, ErrTreeTooDeep
	}
	nodes := make([]Node, 0, len(list))
	for _, task := range list {
		children, _, err := a.store.Children(ctx, goalID, task.TaskID)
		if err != nil {
			return nil, err
		}
		node := Node{Task: task}
		if len(children) > 0 {
			node.Children, err = a.buildTree(ctx, goalID, children, depth+1)
			if err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
