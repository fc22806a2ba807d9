package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// ActivityClient implements service.ActivityService against the backend.
type ActivityClient struct {
	c *Client
}

// Activities returns the travel-activities collaborator.
func (c *Client) Activities() *ActivityClient {
	return &ActivityClient{c: c}
}

// ListByPlan fetches every activity in a travel plan.
func (a *ActivityClient) ListByPlan(ctx context.Context, planID string) ([]model.TravelActivity, error) {
	var out []model.TravelActivity
	if err := a.c.get(ctx, "/api/actividades", url.Values{"planId": {planID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if err := validateAll[model.TravelActivity](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single activity.
func (a *ActivityClient) GetByID(ctx context.Context, id string) (*model.TravelActivity, error) {
	var out model.TravelActivity
	if err := a.c.get(ctx, "/api/actividades/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get activity %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create schedules a new activity.
func (a *ActivityClient) Create(ctx context.Context, input *model.TravelActivity) (*model.TravelActivity, error) {
	var out model.TravelActivity
	if err := a.c.post(ctx, "/api/actividades", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of an activity.
func (a *ActivityClient) Update(ctx context.Context, id string, patch *model.TravelActivity) (*model.TravelActivity, error) {
	var out model.TravelActivity
	if err := a.c.put(ctx, "/api/actividades/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update activity %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes an activity; hard makes the removal permanent.
func (a *ActivityClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := a.c.delete(ctx, "/api/actividades/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete activity %s: %w", id, err)
	}
	return nil
}

// MarkCompleted marks an activity as done.
func (a *ActivityClient) MarkCompleted(ctx context.Context, id string) (*model.TravelActivity, error) {
	var out model.TravelActivity
	if err := a.c.post(ctx, "/api/actividades/"+id+"/completar", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to complete activity %s: %w", id, err)
	}
	return &out, nil
}
