package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// PlanClient implements service.PlanService against the backend.
type PlanClient struct {
	c *Client
}

// Plans returns the travel-plans collaborator.
func (c *Client) Plans() *PlanClient {
	return &PlanClient{c: c}
}

// ListByUser fetches every travel plan owned by the user. Placeholder
// plans (all-zero id) are filtered out; they are not selectable.
func (p *PlanClient) ListByUser(ctx context.Context, userID string) ([]model.TravelPlan, error) {
	var raw []model.TravelPlan
	if err := p.c.get(ctx, "/api/planes", url.Values{"usuarioId": {userID}}, &raw); err != nil {
		return nil, fmt.Errorf("failed to list travel plans: %w", err)
	}
	out := make([]model.TravelPlan, 0, len(raw))
	for _, plan := range raw {
		if model.IsPlaceholder(plan.ID) {
			continue
		}
		out = append(out, plan)
	}
	if err := validateAll[model.TravelPlan](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single travel plan.
func (p *PlanClient) GetByID(ctx context.Context, id string) (*model.TravelPlan, error) {
	var out model.TravelPlan
	if err := p.c.get(ctx, "/api/planes/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get travel plan %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new travel plan.
func (p *PlanClient) Create(ctx context.Context, input *model.TravelPlan) (*model.TravelPlan, error) {
	var out model.TravelPlan
	if err := p.c.post(ctx, "/api/planes", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create travel plan: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a travel plan.
func (p *PlanClient) Update(ctx context.Context, id string, patch *model.TravelPlan) (*model.TravelPlan, error) {
	var out model.TravelPlan
	if err := p.c.put(ctx, "/api/planes/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update travel plan %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a travel plan; hard also removes its child records
// permanently.
func (p *PlanClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := p.c.delete(ctx, "/api/planes/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete travel plan %s: %w", id, err)
	}
	return nil
}

// ToggleActive archives or restores a travel plan.
func (p *PlanClient) ToggleActive(ctx context.Context, id string, active bool) (*model.TravelPlan, error) {
	var out model.TravelPlan
	body := map[string]bool{"estaActivo": active}
	if err := p.c.put(ctx, "/api/planes/"+id+"/estado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle travel plan %s: %w", id, err)
	}
	return &out, nil
}
