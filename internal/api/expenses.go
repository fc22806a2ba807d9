package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// ExpenseClient implements service.ExpenseService against the backend.
type ExpenseClient struct {
	c *Client
}

// Expenses returns the travel-expenses collaborator.
func (c *Client) Expenses() *ExpenseClient {
	return &ExpenseClient{c: c}
}

// ListByPlan fetches every expense recorded against a travel plan.
func (e *ExpenseClient) ListByPlan(ctx context.Context, planID string) ([]model.TravelExpense, error) {
	var out []model.TravelExpense
	if err := e.c.get(ctx, "/api/gastos-viaje", url.Values{"planId": {planID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list travel expenses: %w", err)
	}
	if err := validateAll[model.TravelExpense](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single expense.
func (e *ExpenseClient) GetByID(ctx context.Context, id string) (*model.TravelExpense, error) {
	var out model.TravelExpense
	if err := e.c.get(ctx, "/api/gastos-viaje/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get travel expense %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create records a new expense.
func (e *ExpenseClient) Create(ctx context.Context, input *model.TravelExpense) (*model.TravelExpense, error) {
	var out model.TravelExpense
	if err := e.c.post(ctx, "/api/gastos-viaje", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create travel expense: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of an expense.
func (e *ExpenseClient) Update(ctx context.Context, id string, patch *model.TravelExpense) (*model.TravelExpense, error) {
	var out model.TravelExpense
	if err := e.c.put(ctx, "/api/gastos-viaje/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update travel expense %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes an expense; hard makes the removal permanent.
func (e *ExpenseClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := e.c.delete(ctx, "/api/gastos-viaje/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete travel expense %s: %w", id, err)
	}
	return nil
}
