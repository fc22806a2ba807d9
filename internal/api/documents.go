package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvallesteros/rumbo/internal/model"
)

// DocumentClient implements service.DocumentService against the backend.
type DocumentClient struct {
	c *Client
}

// Documents returns the travel-documents collaborator.
func (c *Client) Documents() *DocumentClient {
	return &DocumentClient{c: c}
}

// ListByPlan fetches every document tracked for a travel plan.
func (d *DocumentClient) ListByPlan(ctx context.Context, planID string) ([]model.TravelDocument, error) {
	var out []model.TravelDocument
	if err := d.c.get(ctx, "/api/documentos-viaje", url.Values{"planId": {planID}}, &out); err != nil {
		return nil, fmt.Errorf("failed to list travel documents: %w", err)
	}
	if err := validateAll[model.TravelDocument](out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single document.
func (d *DocumentClient) GetByID(ctx context.Context, id string) (*model.TravelDocument, error) {
	var out model.TravelDocument
	if err := d.c.get(ctx, "/api/documentos-viaje/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get travel document %s: %w", id, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payload from backend: %w", err)
	}
	return &out, nil
}

// Create registers a new document.
func (d *DocumentClient) Create(ctx context.Context, input *model.TravelDocument) (*model.TravelDocument, error) {
	var out model.TravelDocument
	if err := d.c.post(ctx, "/api/documentos-viaje", input, &out); err != nil {
		return nil, fmt.Errorf("failed to create travel document: %w", err)
	}
	return &out, nil
}

// Update replaces the editable fields of a document.
func (d *DocumentClient) Update(ctx context.Context, id string, patch *model.TravelDocument) (*model.TravelDocument, error) {
	var out model.TravelDocument
	if err := d.c.put(ctx, "/api/documentos-viaje/"+id, patch, &out); err != nil {
		return nil, fmt.Errorf("failed to update travel document %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes a document; hard makes the removal permanent.
func (d *DocumentClient) Delete(ctx context.Context, id string, hard bool) error {
	if err := d.c.delete(ctx, "/api/documentos-viaje/"+id, hard); err != nil {
		return fmt.Errorf("failed to delete travel document %s: %w", id, err)
	}
	return nil
}
