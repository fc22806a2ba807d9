// Package report assembles the client-local dashboard: raw collections
// fetched concurrently from the collaborators, summarized with the
// analytics engine, and shaped into an exportable document.
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/mvallesteros/rumbo/internal/service"
)

// Dashboard is the fully assembled report view-state.
type Dashboard struct {
	Summary     *service.MonthlySummary
	Metrics     map[string]float64
	Accounts    []model.Account
	Budgets     []model.Budget
	Goals       []model.Goal
	Recurring   []model.RecurringTransaction
	GeneratedAt time.Time
}

// Builder fans out to the collaborators and joins their answers.
type Builder struct {
	accounts  service.AccountService
	budgets   service.BudgetService
	goals     service.GoalService
	recurring service.RecurringService
	reports   service.ReportService
}

// NewBuilder wires the dashboard's collaborators.
func NewBuilder(accounts service.AccountService, budgets service.BudgetService, goals service.GoalService, recurring service.RecurringService, reports service.ReportService) *Builder {
	return &Builder{
		accounts:  accounts,
		budgets:   budgets,
		goals:     goals,
		recurring: recurring,
		reports:   reports,
	}
}

// Build fetches all dashboard collections concurrently, waits for every
// fetch to settle, then computes the client-local derived metrics. A
// single failed fetch fails the whole build; the page shows the error
// banner rather than a half-empty dashboard.
func (b *Builder) Build(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	d := &Dashboard{GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Accounts, err = b.accounts.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Budgets, err = b.budgets.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Goals, err = b.goals.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Recurring, err = b.recurring.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Summary, err = b.reports.MonthlySummary(gctx, userID, now.Year(), now.Month())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble dashboard: %w", err)
	}

	metrics, err := deriveMetrics(d, now)
	if err != nil {
		return nil, err
	}
	d.Metrics = metrics
	return d, nil
}

// deriveMetrics computes the stats tiles from raw collections. Server
// aggregates in Summary are rendered as-is and never recomputed here.
func deriveMetrics(d *Dashboard, now time.Time) (map[string]float64, error) {
	metrics := analytics.Aggregate(d.Accounts, analytics.Spec[model.Account]{
		"cuentasActivas": analytics.CountWhere(func(a model.Account) bool { return a.Active }),
		"saldoTotal": analytics.SumBy(func(a model.Account) float64 {
			if !a.Active {
				return 0
			}
			return a.Balance
		}),
	})

	for k, v := range analytics.Aggregate(d.Budgets, analytics.Spec[model.Budget]{
		"presupuestoTotal": analytics.SumBy(func(b model.Budget) float64 { return b.Limit }),
		"gastadoTotal":     analytics.SumBy(func(b model.Budget) float64 { return b.Spent }),
		"presupuestosExcedidos": analytics.CountWhere(func(b model.Budget) bool {
			return b.Active && b.Spent > b.Limit
		}),
	}) {
		metrics[k] = v
	}

	for k, v := range analytics.Aggregate(d.Goals, analytics.Spec[model.Goal]{
		"metasActivas":     analytics.CountWhere(func(g model.Goal) bool { return g.Active && !g.Completed }),
		"metasCompletadas": analytics.CountWhere(func(g model.Goal) bool { return g.Completed }),
		"progresoPromedio": analytics.AvgBy(func(g model.Goal) float64 { return g.ProgressPercent() }),
	}) {
		metrics[k] = v
	}

	var monthlyIncome, monthlyExpense float64
	dueSoon := 0
	for _, r := range d.Recurring {
		if !r.Active {
			continue
		}
		monthly, err := analytics.MonthlyEquivalent(r.Amount, r.Interval)
		if err != nil {
			return nil, fmt.Errorf("recurring transaction %s: %w", r.ID, err)
		}
		switch r.Type {
		case model.MovementIncome:
			monthlyIncome += monthly
		case model.MovementExpense:
			monthlyExpense += monthly
		}
		days := analytics.DaysUntil(r.NextRun, now)
		if analytics.Bucket(days, analytics.DueSoonDays) != analytics.UrgencyNormal {
			dueSoon++
		}
	}
	metrics["ingresosMensuales"] = monthlyIncome
	metrics["gastosMensuales"] = monthlyExpense
	metrics["recurrentesProximas"] = float64(dueSoon)

	return metrics, nil
}
