package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mvallesteros/rumbo/internal/service"
)

// ReportClient implements service.ReportService against the backend.
// These payloads are pre-aggregated server-side; the client renders
// them as-is.
type ReportClient struct {
	c *Client
}

// Reports returns the reporting collaborator.
func (c *Client) Reports() *ReportClient {
	return &ReportClient{c: c}
}

// MonthlySummary fetches the server-aggregated summary for one month.
func (r *ReportClient) MonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*service.MonthlySummary, error) {
	query := url.Values{
		"usuarioId": {userID},
		"anio":      {strconv.Itoa(year)},
		"mes":       {strconv.Itoa(int(month))},
	}
	var out service.MonthlySummary
	if err := r.c.get(ctx, "/api/reportes/resumen-mensual", query, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly summary: %w", err)
	}
	return &out, nil
}
