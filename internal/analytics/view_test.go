package analytics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checklistComparators() map[string]Comparator[model.ChecklistItem] {
	return map[string]Comparator[model.ChecklistItem]{
		"fechaLimite": func(a, b model.ChecklistItem) int {
			return a.DueDate.Compare(b.DueDate)
		},
		"descripcion": func(a, b model.ChecklistItem) int {
			return strings.Compare(a.Description, b.Description)
		},
	}
}

func testItems() []model.ChecklistItem {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	return []model.ChecklistItem{
		{ID: "i1", Category: "documentos", Description: "Renovar pasaporte", DueDate: day(10), Completed: false},
		{ID: "i2", Category: "equipaje", Description: "Comprar maleta", DueDate: day(5), Completed: true},
		{ID: "i3", Category: "documentos", Description: "Imprimir reservas", DueDate: day(10), Completed: false},
		{ID: "i4", Category: "salud", Description: "Vacuna fiebre amarilla", DueDate: day(1), Completed: false},
	}
}

func TestViewConjunctiveFilters(t *testing.T) {
	items := testItems()
	pending := false
	byCategory := Exact("documentos", func(i model.ChecklistItem) string { return i.Category })
	byState := TriState(&pending, func(i model.ChecklistItem) bool { return i.Completed })

	both, err := View(items, []Filter[model.ChecklistItem]{byCategory, byState}, nil, "", Ascending)
	require.NoError(t, err)

	// Applying the filters one at a time must land on the same view.
	first, err := View(items, []Filter[model.ChecklistItem]{byCategory}, nil, "", Ascending)
	require.NoError(t, err)
	chained, err := View(first, []Filter[model.ChecklistItem]{byState}, nil, "", Ascending)
	require.NoError(t, err)

	assert.Equal(t, chained, both)
	assert.Len(t, both, 2)
	for _, i := range both {
		assert.Equal(t, "documentos", i.Category)
		assert.False(t, i.Completed)
	}
}

func TestViewInactiveFiltersAreSkipped(t *testing.T) {
	items := testItems()

	got, err := View(items, []Filter[model.ChecklistItem]{
		Exact("", func(i model.ChecklistItem) string { return i.Category }),
		Substring("", func(i model.ChecklistItem) string { return i.Description }),
		TriState[model.ChecklistItem](nil, func(i model.ChecklistItem) bool { return i.Completed }),
	}, nil, "", Ascending)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestViewSubstringIsCaseInsensitive(t *testing.T) {
	items := testItems()

	got, err := View(items, []Filter[model.ChecklistItem]{
		Substring("PASAPORTE", func(i model.ChecklistItem) string { return i.Description }),
	}, nil, "", Ascending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)
}

func TestViewSortIsStable(t *testing.T) {
	items := testItems()

	// i1 and i3 share a due date; their source order must survive in
	// both directions.
	asc, err := View(items, nil, checklistComparators(), "fechaLimite", Ascending)
	require.NoError(t, err)
	require.Len(t, asc, 4)
	assert.Equal(t, []string{"i4", "i2", "i1", "i3"}, ids(asc))

	desc, err := View(items, nil, checklistComparators(), "fechaLimite", Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i3", "i2", "i4"}, ids(desc))
}

func TestViewDoesNotMutateInput(t *testing.T) {
	items := testItems()
	original := ids(items)

	_, err := View(items, nil, checklistComparators(), "descripcion", Ascending)
	require.NoError(t, err)
	assert.Equal(t, original, ids(items))
}

func TestViewUnknownSortKey(t *testing.T) {
	_, err := View(testItems(), nil, checklistComparators(), "prioridad", Ascending)
	require.Error(t, err)

	var unknownErr *UnknownSortKeyError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "prioridad", unknownErr.Key)
}

func ids(items []model.ChecklistItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
