package flow

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

// fakeBackend simulates the collaborator: a mutable server-side
// collection the loader always re-reads.
type fakeBackend struct {
	accounts []model.Account
	loads    int
	failNext error
}

func (b *fakeBackend) load(_ context.Context) ([]model.Account, error) {
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return nil, err
	}
	b.loads++
	out := make([]model.Account, len(b.accounts))
	copy(out, b.accounts)
	return out, nil
}

func TestLoadTransitions(t *testing.T) {
	backend := &fakeBackend{accounts: []model.Account{{ID: "c1", Name: "Nómina"}}}
	c := NewController(backend.load)

	assert.Equal(t, PhaseIdle, c.Phase())
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Records(), 1)
}

func TestMutationReloadsFromBackend(t *testing.T) {
	backend := &fakeBackend{accounts: []model.Account{
		{ID: "c1", Name: "Nómina", Balance: 100, Active: true},
	}}
	c := NewController(backend.load)
	require.NoError(t, c.Load(context.Background()))

	// The mutation flips the flag server-side; the page must pick up the
	// server's record, untouched balance included, via reload rather
	// than patching locally.
	err := c.Mutate(context.Background(), func(_ context.Context) error {
		backend.accounts[0].Active = false
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Equal(t, 2, backend.loads)
	require.Len(t, c.Records(), 1)
	assert.False(t, c.Records()[0].Active)
	assert.InDelta(t, 100, c.Records()[0].Balance, 0)
}

func TestSubmitClosesModalOnlyOnSuccess(t *testing.T) {
	backend := &fakeBackend{}
	c := NewController(backend.load)
	require.NoError(t, c.Load(context.Background()))

	c.OpenEditor(nil)
	_, open := c.Editing()
	require.True(t, open)

	err := c.Submit(context.Background(), func(_ context.Context) error {
		return common.NewUserError("El nombre ya existe", nil)
	})
	require.Error(t, err)
	_, open = c.Editing()
	assert.True(t, open, "modal stays open so the user can fix the form")

	err = c.Submit(context.Background(), func(_ context.Context) error {
		backend.accounts = append(backend.accounts, model.Account{ID: "c2"})
		return nil
	})
	require.NoError(t, err)
	_, open = c.Editing()
	assert.False(t, open)
	assert.Len(t, c.Records(), 1)
}

func TestErrorBannerAutoClears(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	backend := &fakeBackend{accounts: []model.Account{{ID: "c1"}}}
	c := NewController(backend.load, WithClock[model.Account](clock))
	require.NoError(t, c.Load(context.Background()))

	backend.failNext = common.NewUserError("El servidor no responde", errors.New("503"))
	require.Error(t, c.Load(context.Background()))

	msg, ok := c.ErrorMessage()
	require.True(t, ok)
	assert.Equal(t, "El servidor no responde", msg)
	assert.Equal(t, PhaseError, c.Phase())

	// One second shy of the timeout the banner is still up.
	now = now.Add(4 * time.Second)
	_, ok = c.ErrorMessage()
	assert.True(t, ok)

	// At five seconds it clears back to the last good state, whether or
	// not anyone acknowledged it.
	now = now.Add(time.Second)
	_, ok = c.ErrorMessage()
	assert.False(t, ok)
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Records(), 1, "previous records survive the error")
}

func TestErrorBeforeFirstLoadRecoversToIdle(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	backend := &fakeBackend{failNext: errors.New("boom")}
	c := NewController(backend.load, WithClock[model.Account](func() time.Time { return now }))

	require.Error(t, c.Load(context.Background()))
	assert.Equal(t, PhaseError, c.Phase())

	now = now.Add(6 * time.Second)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestSplitLoadMatchesLoad(t *testing.T) {
	backend := &fakeBackend{accounts: []model.Account{{ID: "c1"}}}
	c := NewController(backend.load)

	c.BeginLoad()
	assert.Equal(t, PhaseLoading, c.Phase())

	// Fetch leaves the page state alone so a worker goroutine can run it.
	records, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Empty(t, c.Records())

	require.NoError(t, c.FinishLoad(records, nil))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Records(), 1)
}

func TestSplitMutationFailureSurfacesError(t *testing.T) {
	backend := &fakeBackend{accounts: []model.Account{{ID: "c1"}}}
	c := NewController(backend.load)
	require.NoError(t, c.Load(context.Background()))

	c.BeginMutation()
	assert.Equal(t, PhaseSubmitting, c.Phase())

	require.Error(t, c.FinishMutation(errors.New("rechazado")))
	assert.Equal(t, PhaseError, c.Phase())
	assert.Len(t, c.Records(), 1)
}

func TestFailedMutationKeepsRecords(t *testing.T) {
	backend := &fakeBackend{accounts: []model.Account{{ID: "c1"}}}
	c := NewController(backend.load)
	require.NoError(t, c.Load(context.Background()))

	err := c.Mutate(context.Background(), func(_ context.Context) error {
		return errors.New("delete failed")
	})
	require.Error(t, err)
	assert.Len(t, c.Records(), 1)
}
