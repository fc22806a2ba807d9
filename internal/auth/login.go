package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/mvallesteros/rumbo/internal/common"
	"github.com/mvallesteros/rumbo/internal/model"
)

const loginTimeout = 30 * time.Second

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

type loginResponse struct {
	User  model.User `json:"usuario"`
	Token string     `json:"token"`
}

// ValidateCredentials runs the client-side checks before any network
// call: a malformed email or an obviously weak password never reaches
// the backend.
func ValidateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return common.NewUserError("El correo no tiene un formato válido.", err)
	}
	if len(password) < 8 {
		return common.NewUserError("La contraseña debe tener al menos 8 caracteres.", nil)
	}
	return nil
}

// Login authenticates against the backend and persists the session
// state file on success.
func Login(ctx context.Context, baseURL, email, password string) (*Session, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	body, err := json.Marshal(loginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	url := strings.TrimRight(baseURL, "/") + "/api/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: loginTimeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		message := "No fue posible iniciar sesión. Verifica tus credenciales."
		var envelope struct {
			Message string `json:"mensaje"`
		}
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
				message = envelope.Message
			}
		}
		return nil, common.NewUserError(message, fmt.Errorf("login returned %d", resp.StatusCode))
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}
	if err := payload.User.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user payload from backend: %w", err)
	}

	state := &State{
		Token:   payload.Token,
		User:    payload.User,
		SavedAt: time.Now(),
	}
	if err := save(state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &Session{state: state}, nil
}
