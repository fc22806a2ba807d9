package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/mvallesteros/rumbo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	accounts []model.Account
	err      error
}

func (f *fakeAccounts) ListByUser(_ context.Context, _ string) ([]model.Account, error) {
	return f.accounts, f.err
}
func (f *fakeAccounts) GetByID(_ context.Context, _ string) (*model.Account, error) { return nil, nil }
func (f *fakeAccounts) Create(_ context.Context, _ *model.Account) (*model.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) Update(_ context.Context, _ string, _ *model.Account) (*model.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) Delete(_ context.Context, _ string, _ bool) error { return nil }
func (f *fakeAccounts) ToggleActive(_ context.Context, _ string, _ bool) (*model.Account, error) {
	return nil, nil
}

type fakeBudgets struct{ budgets []model.Budget }

func (f *fakeBudgets) ListByUser(_ context.Context, _ string) ([]model.Budget, error) {
	return f.budgets, nil
}
func (f *fakeBudgets) GetByID(_ context.Context, _ string) (*model.Budget, error) { return nil, nil }
func (f *fakeBudgets) Create(_ context.Context, _ *model.Budget) (*model.Budget, error) {
	return nil, nil
}
func (f *fakeBudgets) Update(_ context.Context, _ string, _ *model.Budget) (*model.Budget, error) {
	return nil, nil
}
func (f *fakeBudgets) Delete(_ context.Context, _ string, _ bool) error { return nil }
func (f *fakeBudgets) ToggleActive(_ context.Context, _ string, _ bool) (*model.Budget, error) {
	return nil, nil
}

type fakeGoals struct{ goals []model.Goal }

func (f *fakeGoals) ListByUser(_ context.Context, _ string) ([]model.Goal, error) {
	return f.goals, nil
}
func (f *fakeGoals) GetByID(_ context.Context, _ string) (*model.Goal, error)       { return nil, nil }
func (f *fakeGoals) Create(_ context.Context, _ *model.Goal) (*model.Goal, error)   { return nil, nil }
func (f *fakeGoals) Update(_ context.Context, _ string, _ *model.Goal) (*model.Goal, error) {
	return nil, nil
}
func (f *fakeGoals) Delete(_ context.Context, _ string, _ bool) error { return nil }
func (f *fakeGoals) ToggleActive(_ context.Context, _ string, _ bool) (*model.Goal, error) {
	return nil, nil
}
func (f *fakeGoals) MarkCompleted(_ context.Context, _ string) (*model.Goal, error) { return nil, nil }

type fakeRecurring struct{ recurring []model.RecurringTransaction }

func (f *fakeRecurring) ListByUser(_ context.Context, _ string) ([]model.RecurringTransaction, error) {
	return f.recurring, nil
}
func (f *fakeRecurring) GetByID(_ context.Context, _ string) (*model.RecurringTransaction, error) {
	return nil, nil
}
func (f *fakeRecurring) Create(_ context.Context, _ *model.RecurringTransaction) (*model.RecurringTransaction, error) {
	return nil, nil
}
func (f *fakeRecurring) Update(_ context.Context, _ string, _ *model.RecurringTransaction) (*model.RecurringTransaction, error) {
	return nil, nil
}
func (f *fakeRecurring) Delete(_ context.Context, _ string, _ bool) error { return nil }
func (f *fakeRecurring) ToggleActive(_ context.Context, _ string, _ bool) (*model.RecurringTransaction, error) {
	return nil, nil
}

type fakeReports struct{ summary *service.MonthlySummary }

func (f *fakeReports) MonthlySummary(_ context.Context, _ string, _ int, _ time.Month) (*service.MonthlySummary, error) {
	return f.summary, nil
}

func testBuilder(accounts *fakeAccounts) *Builder {
	return NewBuilder(
		accounts,
		&fakeBudgets{budgets: []model.Budget{
			{ID: "p1", Category: "mercado", Limit: 800000, Spent: 650000, Active: true},
			{ID: "p2", Category: "ocio", Limit: 200000, Spent: 310000, Active: true},
		}},
		&fakeGoals{goals: []model.Goal{
			{ID: "m1", Name: "Fondo emergencia", Target: 1000000, Saved: 500000, Active: true},
			{ID: "m2", Name: "Viaje", Target: 2000000, Saved: 2000000, Completed: true},
		}},
		&fakeRecurring{recurring: []model.RecurringTransaction{
			{ID: "r1", Type: model.MovementIncome, Interval: model.IntervalMonthly, Amount: 3000000, Active: true,
				NextRun: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
			{ID: "r2", Type: model.MovementExpense, Interval: model.IntervalWeekly, Amount: 1000, Active: true,
				NextRun: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
			{ID: "r3", Type: model.MovementExpense, Interval: model.IntervalMonthly, Amount: 99999, Active: false},
		}},
		&fakeReports{summary: &service.MonthlySummary{Income: 3000000, Expenses: 1200000, Net: 1800000}},
	)
}

func TestBuildJoinsAllCollections(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	builder := testBuilder(&fakeAccounts{accounts: []model.Account{
		{ID: "c1", Balance: 1000000, Active: true},
		{ID: "c2", Balance: 500000, Active: true},
		{ID: "c3", Balance: 99999, Active: false},
	}})

	d, err := builder.Build(context.Background(), "u1", now)
	require.NoError(t, err)

	assert.Len(t, d.Accounts, 3)
	assert.Len(t, d.Budgets, 2)
	assert.Len(t, d.Goals, 2)
	assert.Len(t, d.Recurring, 3)
	require.NotNil(t, d.Summary)
	assert.InDelta(t, 1800000, d.Summary.Net, 0.01)
}

func TestBuildDerivedMetrics(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	builder := testBuilder(&fakeAccounts{accounts: []model.Account{
		{ID: "c1", Balance: 1000000, Active: true},
		{ID: "c2", Balance: 500000, Active: true},
		{ID: "c3", Balance: 99999, Active: false},
	}})

	d, err := builder.Build(context.Background(), "u1", now)
	require.NoError(t, err)

	// Inactive accounts don't count toward available funds.
	assert.InDelta(t, 1500000, d.Metrics["saldoTotal"], 0.01)
	assert.InDelta(t, 2, d.Metrics["cuentasActivas"], 0)
	assert.InDelta(t, 1, d.Metrics["presupuestosExcedidos"], 0)
	assert.InDelta(t, 1, d.Metrics["metasCompletadas"], 0)

	// Weekly 1000 projects to 4330 monthly; inactive r3 is ignored.
	assert.InDelta(t, 4330, d.Metrics["gastosMensuales"], 0.01)
	assert.InDelta(t, 3000000, d.Metrics["ingresosMensuales"], 0.01)

	// Only r1 runs within the 7-day window.
	assert.InDelta(t, 1, d.Metrics["recurrentesProximas"], 0)
}

func TestBuildFailsWhenAnyFetchFails(t *testing.T) {
	builder := testBuilder(&fakeAccounts{err: errors.New("backend down")})

	_, err := builder.Build(context.Background(), "u1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to assemble dashboard")
}

func TestDocumentShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	builder := testBuilder(&fakeAccounts{accounts: []model.Account{
		{ID: "c1", Name: "Nómina", Type: model.AccountTypeChecking, Currency: "COP", Balance: 1000000, Active: true},
	}})
	d, err := builder.Build(context.Background(), "u1", now)
	require.NoError(t, err)

	doc := Document(d, "Ana")
	assert.Equal(t, "Reporte financiero", doc.Header.Title)
	assert.Equal(t, "Ana", doc.Header.UserName)
	require.Len(t, doc.Tables, 4)
	assert.Equal(t, "Resumen", doc.Tables[0].Name)
	assert.Equal(t, len(doc.Tables[1].Header), len(doc.Tables[1].Rows[0]))
}
