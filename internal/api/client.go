// Package api implements the HTTP collaborator clients for the rumbo
// backend. Every client is a thin typed wrapper over the REST API;
// payload shapes are validated at this boundary instead of trusted.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvallesteros/rumbo/internal/common"
	"github.com/mvallesteros/rumbo/internal/service"
)

const defaultTimeout = 30 * time.Second

// Client is the shared HTTP transport for all entity collaborators.
type Client struct {
	httpClient *http.Client
	session    service.AuthSession
	baseURL    string
}

// NewClient creates a backend client rooted at baseURL. The session
// provides the bearer token attached to every request.
func NewClient(baseURL string, session service.AuthSession) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// errorEnvelope is the backend's error payload.
type errorEnvelope struct {
	Message string `json:"mensaje"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.NewUserError("Tu sesión expiró. Ejecuta 'rumbo login' de nuevo.", common.ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.ErrRateLimit
	case resp.StatusCode >= 500:
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: backend returned %d", common.ErrBackendUnavailable, resp.StatusCode),
			Retryable: true,
		}
	case resp.StatusCode >= 400:
		return common.NewUserError(serverMessage(resp.Body, resp.StatusCode),
			fmt.Errorf("backend returned %d", resp.StatusCode))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// serverMessage surfaces the backend's message when it sends one,
// otherwise a generic fallback.
func serverMessage(body io.Reader, status int) string {
	var envelope errorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return fmt.Sprintf("La operación falló (código %d). Intenta de nuevo.", status)
}

// get performs a GET with retry; reads are idempotent so transient
// backend failures are retried with backoff.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return common.WithRetry(ctx, func() error {
		req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		return c.do(req, out)
	}, service.RetryOptions{MaxAttempts: 3})
}

// Mutations run exactly once; the page contract reloads after success
// instead of guessing on a retried double-submit.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// delete removes a record. hard selects the permanent variant; the
// default soft delete only deactivates.
func (c *Client) delete(ctx context.Context, path string, hard bool) error {
	query := url.Values{"permanente": {strconv.FormatBool(hard)}}
	req, err := c.newRequest(ctx, http.MethodDelete, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// validatable is satisfied by every model record.
type validatable interface {
	Validate() error
}

// validateAll rejects a response wholesale when any record in it is
// malformed.
func validateAll[T any, PT interface {
	*T
	validatable
}](records []T) error {
	for i := range records {
		if err := PT(&records[i]).Validate(); err != nil {
			return fmt.Errorf("invalid payload from backend: %w", err)
		}
	}
	return nil
}
