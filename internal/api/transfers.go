package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// TransferClient implements service.TransferService against the backend.
type TransferClient struct {
	c *Client
}

// Transfers returns the transfers collaborator.
func (c *Client) Transfers() *TransferClient {
	return &TransferClient{c: c}
}

// ListByUser fetches every transfer made by the user.
func (t *TransferClient) ListByUser(ctx context.Context, userID string) ([]model.Transfer, error) {
	var out []model.Transfer
	if err := t.c.get(ctx, "/api/transferencias", url.Values{"usuarioId": {userID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	if err := validateAll[model.Transfer](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single transfer.
func (t *TransferClient) GetByID(ctx context.Context, id string) (*model.Transfer, error) {
	var out model.Transfer
	if err := t.c.get(ctx, "/api/transferencias/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get transfer %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create executes a new transfer between two accounts. Account balances
// are recalculated server-side; callers must re-fetch accounts after.
func (t *TransferClient) Create(ctx context.Context, input *model.Transfer) (*model.Transfer, error) {
	var out model.Transfer
	if err := t.c.post(ctx, "/api/transferencias", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}
	return &out, nil
}

// Delete reverses a transfer; hard makes the removal permanent.
func (t *TransferClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := t.c.delete(ctx, "/api/transferencias/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", id, err)
	}
	return nil
}
