package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// GoalClient implements service.GoalService against the backend.
type GoalClient struct {
	c *Client
}

// Goals returns the savings-goals collaborator.
func (c *Client) Goals() *GoalClient {
	return &GoalClient{c: c}
}

// ListByUser fetches every goal owned by the user.
func (g *GoalClient) ListByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	var out []model.Goal
	if err := g.c.get(ctx, "/api/metas", url.Values{"usuarioId": {userID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if err := validateAll[model.Goal](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single goal.
func (g *GoalClient) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	var out model.Goal
	if err := g.c.get(ctx, "/api/metas/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get goal %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new goal.
func (g *GoalClient) Create(ctx context.Context, input *model.Goal) (*model.Goal, error) {
	var out model.Goal
	if err := g.c.post(ctx, "/api/metas", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a goal.
func (g *GoalClient) Update(ctx context.Context, id string, patch *model.Goal) (*model.Goal, error) {
	var out model.Goal
	if err := g.c.put(ctx, "/api/metas/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update goal %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a goal; hard makes the removal permanent.
func (g *GoalClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := g.c.delete(ctx, "/api/metas/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
	}
	return nil
}

// ToggleActive activates or deactivates a goal.
func (g *GoalClient) ToggleActive(ctx context.Context, id string, active bool) (*model.Goal, error) {
	var out model.Goal
	body := map[string]bool{"estaActiva": active}
	if err := g.c.put(ctx, "/api/metas/"+id+"/estado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle goal %s: %w", id, err)
	}
	return &out, nil
}

// MarkCompleted marks the goal as reached.
func (g *GoalClient) MarkCompleted(ctx context.Context, id string) (*model.Goal, error) {
	var out model.Goal
	if err := g.c.post(ctx, "/api/metas/"+id+"/completar", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to complete goal %s: %w", id, err)
	}
	return &out, nil
}
