package auth

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsignedToken builds a JWT-shaped token with the given claims and a
// junk signature; the client never verifies, only reads claims.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestEmptySessionReportsAbsent(t *testing.T) {
	s := &Session{}

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.User()
	assert.False(t, ok)
	_, ok = s.UserID()
	assert.False(t, ok)
}

func TestUserIDPrefersTokenClaim(t *testing.T) {
	token := unsignedToken(t, map[string]any{"usuarioId": "u-claim", "exp": time.Now().Add(time.Hour).Unix()})
	s := &Session{state: &State{
		Token: token,
		User:  model.User{ID: "u-stored", Email: "ana@example.com"},
	}}

	id, ok := s.UserID()
	require.True(t, ok)
	assert.Equal(t, "u-claim", id)
}

func TestUserIDFallsBackToSubjectThenStoredUser(t *testing.T) {
	token := unsignedToken(t, map[string]any{"sub": "u-sub"})
	s := &Session{state: &State{Token: token}}

	id, ok := s.UserID()
	require.True(t, ok)
	assert.Equal(t, "u-sub", id)

	// A token that is not a JWT at all still resolves via the stored user.
	s = &Session{state: &State{
		Token: "opaque-token",
		User:  model.User{ID: "u-stored", Email: "ana@example.com"},
	}}
	id, ok = s.UserID()
	require.True(t, ok)
	assert.Equal(t, "u-stored", id)
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid", email: "ana@example.com", password: "segura-123", wantErr: false},
		{name: "trims email whitespace", email: "  ana@example.com ", password: "segura-123", wantErr: false},
		{name: "malformed email", email: "not-an-email", password: "segura-123", wantErr: true},
		{name: "short password", email: "ana@example.com", password: "corta", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.email, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
