package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// AccountClient implements service.AccountService against the backend.
type AccountClient struct {
	c *Client
}

// Accounts returns the accounts collaborator.
func (c *Client) Accounts() *AccountClient {
	return &AccountClient{c: c}
}

// ListByUser fetches every account owned by the user.
func (a *AccountClient) ListByUser(ctx context.Context, userID string) ([]model.Account, error) {
	var out []model.Account
	if err := a.c.get(ctx, "/api/cuentas", url.Values{"usuarioId": {userID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if err := validateAll[model.Account](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single account.
func (a *AccountClient) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var out model.Account
	if err := a.c.get(ctx, "/api/cuentas/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new account.
func (a *AccountClient) Create(ctx context.Context, input *model.Account) (*model.Account, error) {
	var out model.Account
	if err := a.c.post(ctx, "/api/cuentas", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of an account.
func (a *AccountClient) Update(ctx context.Context, id string, patch *model.Account) (*model.Account, error) {
	var out model.Account
	if err := a.c.put(ctx, "/api/cuentas/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes an account; hard makes the removal permanent.
func (a *AccountClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := a.c.delete(ctx, "/api/cuentas/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return nil
}

// ToggleActive activates or deactivates an account without touching any
// other field.
func (a *AccountClient) ToggleActive(ctx context.Context, id string, active bool) (*model.Account, error) {
	var out model.Account
	body := map[string]bool{"estaActiva": active}
	if err := a.c.put(ctx, "/api/cuentas/"+id+"/estado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle account %s: %w", id, err)
	}
	return &out, nil
}
