package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// RecurringClient implements service.RecurringService against the backend.
type RecurringClient struct {
	c *Client
}

// Recurring returns the recurring-transactions collaborator.
func (c *Client) Recurring() *RecurringClient {
	return &RecurringClient{c: c}
}

// ListByUser fetches every recurring transaction owned by the user.
func (r *RecurringClient) ListByUser(ctx context.Context, userID string) ([]model.RecurringTransaction, error) {
	var out []model.RecurringTransaction
	if err := r.c.get(ctx, "/api/transacciones-recurrentes", url.Values{"usuarioId": {userID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	if err := validateAll[model.RecurringTransaction](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single recurring transaction.
func (r *RecurringClient) GetByID(ctx context.Context, id string) (*model.RecurringTransaction, error) {
	var out model.RecurringTransaction
	if err := r.c.get(ctx, "/api/transacciones-recurrentes/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get recurring transaction %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new recurring transaction.
func (r *RecurringClient) Create(ctx context.Context, input *model.RecurringTransaction) (*model.RecurringTransaction, error) {
	var out model.RecurringTransaction
	if err := r.c.post(ctx, "/api/transacciones-recurrentes", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a recurring transaction.
func (r *RecurringClient) Update(ctx context.Context, id string, patch *model.RecurringTransaction) (*model.RecurringTransaction, error) {
	var out model.RecurringTransaction
	if err := r.c.put(ctx, "/api/transacciones-recurrentes/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a recurring transaction; hard makes the removal permanent.
func (r *RecurringClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := r.c.delete(ctx, "/api/transacciones-recurrentes/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete recurring transaction %s: %w", id, err)
	}
	return nil
}

// ToggleActive pauses or resumes a recurring transaction.
func (r *RecurringClient) ToggleActive(ctx context.Context, id string, active bool) (*model.RecurringTransaction, error) {
	var out model.RecurringTransaction
	body := map[string]bool{"estaActiva": active}
	if err := r.c.put(ctx, "/api/transacciones-recurrentes/"+id+"/estado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle recurring transaction %s: %w", id, err)
	}
	return &out, nil
}
