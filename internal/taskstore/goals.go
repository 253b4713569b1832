package taskstore

import (
	"context"
	"encoding/json"
	"fmt"

	"goaltrack/internal/service"
)

// LoadGoals returns the stored goals in creation order.
func (s *Store) LoadGoals(ctx context.Context) ([]service.Goal, error) {
	data, found, err := s.kv.GetString(ctx, GoalsKey)
	if err != nil {
		return nil, err
	}
	if !found || data == "" {
		return nil, nil
	}

	var goals []service.Goal
	if err := json.Unmarshal([]byte(data), &goals); err != nil {
		s.log.V(1).Info("ignoring malformed goal list", "key", GoalsKey, "error", err.Error())
		return nil, nil
	}
	return goals, nil
}

// AddGoal appends a goal and returns its id.
func (s *Store) AddGoal(ctx context.Context, name, description string) (int, error) {
	goals, err := s.LoadGoals(ctx)
	if err != nil {
		return 0, err
	}
	goals = append(goals, service.Goal{Name: name, Description: description})

	data, err := json.Marshal(goals)
	if err != nil {
		return 0, fmt.Errorf("encode goal list: %w", err)
	}
	if err := s.kv.SetString(ctx, GoalsKey, string(data)); err != nil {
		return 0, err
	}
	return len(goals), nil
}

// Goal returns the goal with the given 1-based id.
func (s *Store) Goal(ctx context.Context, goalID int) (service.Goal, error) {
	goals, err := s.LoadGoals(ctx)
	if err != nil {
		return service.Goal{}, err
	}
	if goalID < 1 || goalID > len(goals) {
		return service.Goal{}, fmt.Errorf("%w: %d", ErrGoalNotFound, goalID)
	}
	return goals[goalID-1], nil
}

// Token returns the stored remote service token, if any.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	token, found, err := s.kv.GetString(ctx, TokenKey)
	if err != nil {
		return "", false, err
	}
	return token, found && token != "", nil
}

// SetToken stores the remote service token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.kv.SetString(ctx, TokenKey, token)
}

// ClearToken removes the remote service token.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}

// User returns the stored user name, if any.
func (s *Store) User(ctx context.Context) (string, bool, error) {
	return s.kv.GetString(ctx, UserKey)
}

// SetUser stores the user name.
func (s *Store) SetUser(ctx context.Context, name string) error {
	return s.kv.SetString(ctx, UserKey, name)
}

// ClearUser removes the stored user name.
func (s *Store) ClearUser(ctx context.Context) error {
	return s.kv.Delete(ctx, UserKey)
}
