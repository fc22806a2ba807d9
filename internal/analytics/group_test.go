package analytics

import (
	"testing"

	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByFixedOrder(t *testing.T) {
	items := []model.ChecklistItem{
		{ID: "i1", Category: "salud", Completed: true},
		{ID: "i2", Category: "documentos", Completed: false},
		{ID: "i3", Category: "documentos", Completed: true},
		{ID: "i4", Category: "general", Completed: false},
	}

	groups := GroupBy(items,
		func(i model.ChecklistItem) string { return i.Category },
		func(i model.ChecklistItem) bool { return i.Completed },
		model.ChecklistCategories)

	require.Len(t, groups, 5)
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	assert.Equal(t, model.ChecklistCategories, keys)

	docs := groups[0]
	assert.Equal(t, 2, docs.Total)
	assert.Equal(t, 1, docs.Completed)
	assert.Equal(t, 50, docs.Percent)

	// Empty groups still render, at zero percent, with no division by zero.
	equipaje := groups[1]
	assert.Equal(t, 0, equipaje.Total)
	assert.Equal(t, 0, equipaje.Percent)
}

func TestGroupByFirstSeenOrder(t *testing.T) {
	expenses := []model.TravelExpense{
		{ID: "g1", Category: "transporte"},
		{ID: "g2", Category: "comida"},
		{ID: "g3", Category: "transporte"},
	}

	groups := GroupBy(expenses,
		func(e model.TravelExpense) string { return e.Category },
		nil, nil)

	require.Len(t, groups, 2)
	assert.Equal(t, "transporte", groups[0].Key)
	assert.Equal(t, "comida", groups[1].Key)
	assert.Len(t, groups[0].Items, 2)
}

func TestGroupPercentBounds(t *testing.T) {
	items := []model.ChecklistItem{
		{ID: "i1", Category: "equipaje", Completed: true},
		{ID: "i2", Category: "equipaje", Completed: true},
		{ID: "i3", Category: "equipaje", Completed: true},
	}

	groups := GroupBy(items,
		func(i model.ChecklistItem) string { return i.Category },
		func(i model.ChecklistItem) bool { return i.Completed },
		nil)

	for _, g := range groups {
		assert.GreaterOrEqual(t, g.Percent, 0)
		assert.LessOrEqual(t, g.Percent, 100)
	}
	assert.Equal(t, 100, groups[0].Percent)
}
