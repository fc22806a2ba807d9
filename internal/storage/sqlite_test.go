package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mvallesteros/rumbo/internal/common"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	require.NoError(t, store.Set(ctx, "k", "v1"))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	// Last write wins.
	require.NoError(t, store.Set(ctx, "k", "v2"))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// Deleting a missing key is fine.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestSelectedPlanRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := SelectedPlan(ctx, store)
	assert.True(t, errors.Is(err, common.ErrNoPlanSelected))

	plan := &model.TravelPlan{
		ID:          "7b6a",
		UserID:      "u1",
		Name:        "Cartagena",
		Destination: "Cartagena, Colombia",
		Currency:    "COP",
		Budget:      3500000,
		StartDate:   time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		Active:      true,
	}
	require.NoError(t, SaveSelectedPlan(ctx, store, plan))

	got, err := SelectedPlan(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, plan.Name, got.Name)
	assert.InDelta(t, plan.Budget, got.Budget, 0)
}

func TestSelectedPlanPlaceholderIsNoSelection(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "selected_plan_id", "00000000-0000-0000-0000-000000000000"))

	_, err := SelectedPlan(ctx, store)
	assert.True(t, errors.Is(err, common.ErrNoPlanSelected))
}
