package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvallesteros/rumbo/internal/common"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	token string
}

func (s *stubSession) Token() (string, bool) {
	return s.token, s.token != ""
}

func (s *stubSession) User() (*model.User, bool) {
	if s.token == "" {
		return nil, false
	}
	return &model.User{ID: "u1", Email: "ana@example.com"}, true
}

func (s *stubSession) UserID() (string, bool) {
	if s.token == "" {
		return "", false
	}
	return "u1", true
}

func TestClientAttachesAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Account{})
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "tok-123"})
	_, err := client.Accounts().ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientSurfacesServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "El nombre ya existe"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "tok"})
	_, err := client.Accounts().Create(context.Background(), &model.Account{Name: "Nómina"})
	require.Error(t, err)
	assert.Equal(t, "El nombre ya existe", common.UserMessage(err, "fallback"))
}

func TestClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "expired"})
	_, err := client.Goals().GetByID(context.Background(), "m1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestClientRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Missing cuentaId: the boundary must reject, not render garbage.
		_ = json.NewEncoder(w).Encode([]map[string]any{{"nombre": "Ahorros", "tipo": "ahorros"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "tok"})
	_, err := client.Accounts().ListByUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payload")
}

func TestDeleteSendsHardFlag(t *testing.T) {
	var gotHard []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHard = append(gotHard, r.URL.Query().Get("permanente"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "tok"})
	require.NoError(t, client.Accounts().Delete(context.Background(), "c1", false))
	require.NoError(t, client.Accounts().Delete(context.Background(), "c1", true))
	assert.Equal(t, []string{"false", "true"}, gotHard)
}

func TestToggleActiveLeavesOtherFieldsUntouched(t *testing.T) {
	account := model.Account{
		ID: "c1", UserID: "u1", Name: "Nómina",
		Type: model.AccountTypeChecking, Currency: "COP",
		Balance: 1250000, Active: true,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		account.Active = body["estaActiva"]
		_ = json.NewEncoder(w).Encode(account)
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "tok"})
	got, err := client.Accounts().ToggleActive(context.Background(), "c1", false)
	require.NoError(t, err)

	assert.False(t, got.Active)
	assert.InDelta(t, 1250000, got.Balance, 0)
	assert.Equal(t, "Nómina", got.Name)
	assert.Equal(t, model.AccountTypeChecking, got.Type)
}

func TestPlanListFiltersPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.TravelPlan{
			{ID: "00000000-0000-0000-0000-000000000000", UserID: "u1", Name: "placeholder"},
			{ID: "7b6a", UserID: "u1", Name: "Cartagena"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, &stubSession{token: "tok"})
	plans, err := client.Plans().ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Cartagena", plans[0].Name)
}
