package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// BudgetClient implements service.BudgetService against the backend.
type BudgetClient struct {
	c *Client
}

// Budgets returns the budgets collaborator.
func (c *Client) Budgets() *BudgetClient {
	return &BudgetClient{c: c}
}

// ListByUser fetches every budget owned by the user.
func (b *BudgetClient) ListByUser(ctx context.Context, userID string) ([]model.Budget, error) {
	var out []model.Budget
	if err := b.c.get(ctx, "/api/presupuestos", url.Values{"usuarioId": {userID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if err := validateAll[model.Budget](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single budget.
func (b *BudgetClient) GetByID(ctx context.Context, id string) (*model.Budget, error) {
	var out model.Budget
	if err := b.c.get(ctx, "/api/presupuestos/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get budget %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new budget.
func (b *BudgetClient) Create(ctx context.Context, input *model.Budget) (*model.Budget, error) {
	var out model.Budget
	if err := b.c.post(ctx, "/api/presupuestos", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a budget.
func (b *BudgetClient) Update(ctx context.Context, id string, patch *model.Budget) (*model.Budget, error) {
	var out model.Budget
	if err := b.c.put(ctx, "/api/presupuestos/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update budget %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a budget; hard makes the removal permanent.
func (b *BudgetClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := b.c.delete(ctx, "/api/presupuestos/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", id, err)
	}
	return nil
}

// ToggleActive activates or deactivates a budget.
func (b *BudgetClient) ToggleActive(ctx context.Context, id string, active bool) (*model.Budget, error) {
	var out model.Budget
	body := map[string]bool{"estaActivo": active}
	if err := b.c.put(ctx, "/api/presupuestos/"+id+"/estado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle budget %s: %w", id, err)
	}
	return &out, nil
}
