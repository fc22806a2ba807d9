package analytics

import (
	"testing"

	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
)

func expenseSummarySpec() Spec[model.TravelExpense] {
	amount := func(e model.TravelExpense) float64 { return e.Amount }
	return Spec[model.TravelExpense]{
		"total":         CountAll[model.TravelExpense](),
		"montoTotal":    SumBy(amount),
		"montoPromedio": AvgBy(amount),
		"gastoMasAlto":  MaxBy(amount),
		"gastoMasBajo":  MinBy(amount),
		"categorias":    CountDistinctBy(func(e model.TravelExpense) string { return e.Category }),
	}
}

func TestAggregateExpenseSummary(t *testing.T) {
	expenses := []model.TravelExpense{
		{ID: "g1", PlanID: "p1", Amount: 100, Currency: "COP", Category: "comida"},
		{ID: "g2", PlanID: "p1", Amount: 250, Currency: "COP", Category: "transporte"},
	}

	got := Aggregate(expenses, expenseSummarySpec())

	assert.InDelta(t, 2, got["total"], 0.0001)
	assert.InDelta(t, 350, got["montoTotal"], 0.0001)
	assert.InDelta(t, 175, got["montoPromedio"], 0.0001)
	assert.InDelta(t, 250, got["gastoMasAlto"], 0.0001)
	assert.InDelta(t, 100, got["gastoMasBajo"], 0.0001)
	assert.InDelta(t, 2, got["categorias"], 0.0001)
}

func TestAggregateEmptyInputIsAlwaysZero(t *testing.T) {
	got := Aggregate(nil, expenseSummarySpec())

	// Every reducer must come back 0 on empty input so the tiles render
	// numbers, never NaN.
	for name, v := range got {
		assert.Zerof(t, v, "reducer %s", name)
		assert.False(t, v != v, "reducer %s returned NaN", name)
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	expenses := []model.TravelExpense{
		{ID: "g1", Amount: 100},
		{ID: "g2", Amount: 250},
	}
	Aggregate(expenses, expenseSummarySpec())

	assert.Equal(t, "g1", expenses[0].ID)
	assert.InDelta(t, 100, expenses[0].Amount, 0)
	assert.Equal(t, "g2", expenses[1].ID)
	assert.InDelta(t, 250, expenses[1].Amount, 0)
}

func TestCountWhere(t *testing.T) {
	accounts := []model.Account{
		{ID: "a1", Active: true},
		{ID: "a2", Active: false},
		{ID: "a3", Active: true},
	}
	spec := Spec[model.Account]{
		"activas": CountWhere(func(a model.Account) bool { return a.Active }),
	}

	got := Aggregate(accounts, spec)
	assert.InDelta(t, 2, got["activas"], 0)
}
