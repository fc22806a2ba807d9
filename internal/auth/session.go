// Package auth manages the stored backend session: login, the saved
// token state file, and user identity extracted from the token.
package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mvallesteros/rumbo/internal/model"
)

// State is the saved authentication state.
type State struct {
	SavedAt time.Time  `json:"saved_at"`
	User    model.User `json:"user"`
	Token   string     `json:"access_token"`
}

// Session exposes the stored authentication state. A session with no
// saved state reports absent on every accessor; callers redirect the
// user to login.
type Session struct {
	state *State
}

// LoadSession reads the saved session from the state file. A missing
// file is not an error; it yields an empty session.
func LoadSession() (*Session, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session file path: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	slog.Debug("Loaded saved session",
		"saved_at", state.SavedAt.Format("2006-01-02"),
		"user", state.User.Email)

	return &Session{state: &state}, nil
}

// Token returns the stored access token.
func (s *Session) Token() (string, bool) {
	if s.state == nil || s.state.Token == "" {
		return "", false
	}
	return s.state.Token, true
}

// User returns the stored user record.
func (s *Session) User() (*model.User, bool) {
	if s.state == nil || s.state.User.ID == "" {
		return nil, false
	}
	user := s.state.User
	return &user, true
}

// UserID returns the authenticated user id, preferring the token's
// usuarioId claim over the stored record.
func (s *Session) UserID() (string, bool) {
	token, ok := s.Token()
	if !ok {
		return "", false
	}
	if id := claimUserID(token); id != "" {
		return id, true
	}
	if user, ok := s.User(); ok {
		return user.ID, true
	}
	return "", false
}

// claimUserID extracts the usuarioId claim without verifying the
// signature; verification is the backend's job, the client only needs
// the identity for query scoping.
func claimUserID(token string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	if id, ok := claims["usuarioId"].(string); ok {
		return id
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}

func save(state *State) error {
	path, err := stateFilePath()
	if err != nil {
		return fmt.Errorf("failed to resolve session file path: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ClearSession deletes the saved session (logout).
func ClearSession() error {
	path, err := stateFilePath()
	if err != nil {
		return fmt.Errorf("failed to resolve session file path: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func stateFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(home, ".local", "share")
	}

	rumboDir := filepath.Join(dataDir, "rumbo")
	if err := os.MkdirAll(rumboDir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(rumboDir, "session.json"), nil
}
