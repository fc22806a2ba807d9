package analytics

import "math"

// Group is one bucket of a grouped collection with its completion
// summary for the progress tiles.
type Group[T any] struct {
	Key       string
	Items     []T
	Total     int
	Completed int
	Percent   int
}

// GroupBy buckets records by the selected key and computes per-group
// completion. Groups follow the explicit order when given (keys absent
// from records still appear empty); otherwise first-seen order. Percent
// is completed/total rounded to the nearest integer, 0 when the group
// is empty.
func GroupBy[T any](records []T, keySelector func(T) string, done func(T) bool, order []string) []Group[T] {
	index := make(map[string]int, len(order))
	groups := make([]Group[T], 0, len(order))
	for _, key := range order {
		index[key] = len(groups)
		groups = append(groups, Group[T]{Key: key})
	}

	for _, r := range records {
		key := keySelector(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group[T]{Key: key})
		}
		g := &groups[i]
		g.Items = append(g.Items, r)
		g.Total++
		if done != nil && done(r) {
			g.Completed++
		}
	}

	for i := range groups {
		if groups[i].Total > 0 {
			groups[i].Percent = int(math.Round(float64(groups[i].Completed) / float64(groups[i].Total) * 100))
		}
	}
	return groups
}
