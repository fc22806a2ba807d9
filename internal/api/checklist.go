package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// ChecklistClient implements service.ChecklistService against the backend.
type ChecklistClient struct {
	c *Client
}

// Checklist returns the travel-checklist collaborator.
func (c *Client) Checklist() *ChecklistClient {
	return &ChecklistClient{c: c}
}

// ListByPlan fetches every checklist item of a travel plan.
func (l *ChecklistClient) ListByPlan(ctx context.Context, planID string) ([]model.ChecklistItem, error) {
	var out []model.ChecklistItem
	if err := l.c.get(ctx, "/api/checklist", url.Values{"planId": {planID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	if err := validateAll[model.ChecklistItem](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single checklist item.
func (l *ChecklistClient) GetByID(ctx context.Context, id string) (*model.ChecklistItem, error) {
	var out model.ChecklistItem
	if err := l.c.get(ctx, "/api/checklist/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get checklist item %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create adds a new checklist item.
func (l *ChecklistClient) Create(ctx context.Context, input *model.ChecklistItem) (*model.ChecklistItem, error) {
	var out model.ChecklistItem
	if err := l.c.post(ctx, "/api/checklist", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a checklist item.
func (l *ChecklistClient) Update(ctx context.Context, id string, patch *model.ChecklistItem) (*model.ChecklistItem, error) {
	var out model.ChecklistItem
	if err := l.c.put(ctx, "/api/checklist/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update checklist item %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a checklist item; hard makes the removal permanent.
func (l *ChecklistClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := l.c.delete(ctx, "/api/checklist/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete checklist item %s: %w", id, err)
	}
	return nil
}

// MarkCompleted checks or unchecks a checklist item.
func (l *ChecklistClient) MarkCompleted(ctx context.Context, id string, completed bool) (*model.ChecklistItem, error) {
	var out model.ChecklistItem
	body := map[string]bool{"completado": completed}
	if err := l.c.put(ctx, "/api/checklist/"+id+"/completado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to mark checklist item %s: %w", id, err)
	}
	return &out, nil
}
