package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// CategoryClient implements service.CategoryService against the backend.
type CategoryClient struct {
	c *Client
}

// Categories returns the categories collaborator.
func (c *Client) Categories() *CategoryClient {
	return &CategoryClient{c: c}
}

// ListByUser fetches every category owned by the user.
func (s *CategoryClient) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	var out []model.Category
	if err := s.c.get(ctx, "/api/categorias", url.Values{"usuarioId": {userID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if err := validateAll[model.Category](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single category.
func (s *CategoryClient) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var out model.Category
	if err := s.c.get(ctx, "/api/categorias/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new category.
func (s *CategoryClient) Create(ctx context.Context, input *model.Category) (*model.Category, error) {
	var out model.Category
	if err := s.c.post(ctx, "/api/categorias", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a category.
func (s *CategoryClient) Update(ctx context.Context, id string, patch *model.Category) (*model.Category, error) {
	var out model.Category
	if err := s.c.put(ctx, "/api/categorias/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a category; hard makes the removal permanent.
func (s *CategoryClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := s.c.delete(ctx, "/api/categorias/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

// ToggleActive activates or deactivates a category.
func (s *CategoryClient) ToggleActive(ctx context.Context, id string, active bool) (*model.Category, error) {
	var out model.Category
	body := map[string]bool{"estaActiva": active}
	if err := s.c.put(ctx, "/api/categorias/"+id+"/estado", body, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle category %s: %w", id, err)
	}
	return &out, nil
}
