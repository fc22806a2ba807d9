package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvallesteros/rumbo/internal/flow"
	"github.com/mvallesteros/rumbo/internal/model"
)

type stubRecurring struct {
	records []model.RecurringTransaction
	toggled []string
	deleted []string
}

func (s *stubRecurring) ListByUser(_ context.Context, _ string) ([]model.RecurringTransaction, error) {
	return s.records, nil
}
func (s *stubRecurring) GetByID(_ context.Context, _ string) (*model.RecurringTransaction, error) {
	return nil, nil
}
func (s *stubRecurring) Create(_ context.Context, _ *model.RecurringTransaction) (*model.RecurringTransaction, error) {
	return nil, nil
}
func (s *stubRecurring) Update(_ context.Context, _ string, _ *model.RecurringTransaction) (*model.RecurringTransaction, error) {
	return nil, nil
}
func (s *stubRecurring) Delete(_ context.Context, id string, hard bool) error {
	s.deleted = append(s.deleted, id)
	return nil
}
func (s *stubRecurring) ToggleActive(_ context.Context, id string, active bool) (*model.RecurringTransaction, error) {
	s.toggled = append(s.toggled, id)
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Active = active
			return &s.records[i], nil
		}
	}
	return nil, nil
}

func testRecords() []model.RecurringTransaction {
	return []model.RecurringTransaction{
		{ID: "r1", Description: "Arriendo", Currency: "COP", Amount: 1500000, Active: true,
			Interval: model.IntervalMonthly, NextRun: time.Now().AddDate(0, 0, 20)},
		{ID: "r2", Description: "Netflix", Currency: "COP", Amount: 45000, Active: true,
			Interval: model.IntervalMonthly, NextRun: time.Now().AddDate(0, 0, 3)},
	}
}

func loadedModel(t *testing.T, stub *stubRecurring) Model {
	t.Helper()
	ctx := context.Background()
	controller := flow.NewController(func(ctx context.Context) ([]model.RecurringTransaction, error) {
		return stub.ListByUser(ctx, "u1")
	})
	require.NoError(t, controller.Load(ctx))

	m := NewModel(ctx, controller, stub)
	m.applyView()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewRendersRows(t *testing.T) {
	m := loadedModel(t, &stubRecurring{records: testRecords()})

	out := m.View()
	assert.Contains(t, out, "Arriendo")
	assert.Contains(t, out, "Netflix")
	assert.Contains(t, out, "activa")
}

func TestFilterNarrowsRows(t *testing.T) {
	m := loadedModel(t, &stubRecurring{records: testRecords()})

	m.filterInput.SetValue("netflix")
	m.applyView()

	require.Len(t, m.visible, 1)
	assert.Equal(t, "r2", m.visible[0].ID)
}

func TestSortCycleOrdersByAmount(t *testing.T) {
	m := loadedModel(t, &stubRecurring{records: testRecords()})

	// First cycle lands on "monto" ascending.
	updated, _ := m.handleKey(keyMsg("o"))
	m = updated.(Model)

	require.Len(t, m.visible, 2)
	assert.Equal(t, "r2", m.visible[0].ID)
	assert.Equal(t, "r1", m.visible[1].ID)
}

func TestDeactivateRequiresConfirmation(t *testing.T) {
	stub := &stubRecurring{records: testRecords()}
	m := loadedModel(t, stub)

	updated, _ := m.handleKey(keyMsg("d"))
	m = updated.(Model)
	assert.Equal(t, StateConfirmDeactivate, m.state)
	assert.Empty(t, stub.deleted)

	// Cancel leaves the record untouched.
	updated, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.Equal(t, StateList, m.state)
	assert.Empty(t, stub.deleted)

	// Confirming runs the soft delete command.
	updated, _ = m.handleKey(keyMsg("d"))
	m = updated.(Model)
	updated, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, mutationDoneMsg{}, msg)
	assert.Equal(t, []string{"r1"}, stub.deleted)
}

func TestToggleFlipsServerSideAndReloads(t *testing.T) {
	stub := &stubRecurring{records: testRecords()}
	m := loadedModel(t, stub)

	updated, cmd := m.handleKey(keyMsg("t"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, []string{"r1"}, stub.toggled)
	assert.False(t, stub.records[0].Active)

	// Success reconciles through a reload applied on the event loop.
	updated2, reload := m.Update(msg)
	m = updated2.(Model)
	require.NotNil(t, reload)
	updated3, _ := m.Update(reload())
	m = updated3.(Model)
	assert.False(t, m.visible[0].Active)
}

func TestCommandsLeavePhaseTransitionsToUpdate(t *testing.T) {
	stub := &stubRecurring{records: testRecords()}
	m := loadedModel(t, stub)

	cmd := m.load()
	assert.Equal(t, flow.PhaseLoading, m.controller.Phase())

	// The command only fetches; the result travels as a message and the
	// controller stays untouched until Update applies it.
	msg := cmd()
	refreshed, ok := msg.(refreshedMsg)
	require.True(t, ok)
	require.Len(t, refreshed.records, 2)
	assert.Equal(t, flow.PhaseLoading, m.controller.Phase())

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Equal(t, flow.PhaseLoaded, m.controller.Phase())
	require.Len(t, m.visible, 2)
}

func TestMutationFailureShowsBanner(t *testing.T) {
	stub := &stubRecurring{records: testRecords()}
	m := loadedModel(t, stub)

	updated, _ := m.Update(mutationDoneMsg{err: errors.New("503")})
	m = updated.(Model)

	assert.Equal(t, flow.PhaseError, m.controller.Phase())
	banner, ok := m.controller.ErrorMessage()
	require.True(t, ok)
	assert.NotEmpty(t, banner)
}
