package analytics

import (
	"fmt"
	"sort"
	"strings"
)

// Filter is a single predicate over a record. A nil Filter is inactive
// and skipped by View, which is how empty/unset screen filters compose.
type Filter[T any] func(T) bool

// Comparator orders two records, returning a negative, zero, or positive
// value like strings.Compare.
type Comparator[T any] func(a, b T) int

// Direction is the sort direction of a view.
type Direction int

const (
	// Ascending sorts smallest first.
	Ascending Direction = 1
	// Descending sorts largest first.
	Descending Direction = -1
)

// UnknownSortKeyError indicates a sort key with no registered
// comparator. Programmer error; fail loudly instead of rendering an
// arbitrarily ordered list.
type UnknownSortKeyError struct {
	Key string
}

func (e *UnknownSortKeyError) Error() string {
	return fmt.Sprintf("no comparator registered for sort key %q", e.Key)
}

// Exact matches records whose selected field equals value. An empty
// value deactivates the filter.
func Exact[T any](value string, sel func(T) string) Filter[T] {
	if value == "" {
		return nil
	}
	return func(r T) bool { return sel(r) == value }
}

// Substring matches records where any selected field contains the query,
// case-insensitively. An empty query deactivates the filter.
func Substring[T any](query string, sels ...func(T) string) Filter[T] {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	return func(r T) bool {
		for _, sel := range sels {
			if strings.Contains(strings.ToLower(sel(r)), q) {
				return true
			}
		}
		return false
	}
}

// TriState matches records whose selected flag equals want. A nil want
// means "either" and deactivates the filter.
func TriState[T any](want *bool, sel func(T) bool) Filter[T] {
	if want == nil {
		return nil
	}
	return func(r T) bool { return sel(r) == *want }
}

// View filters records conjunctively through every active filter, then
// stable-sorts by the comparator registered under sortKey. An empty
// sortKey keeps the source order. The input slice is never mutated;
// a fresh slice is always returned.
func View[T any](records []T, filters []Filter[T], comparators map[string]Comparator[T], sortKey string, dir Direction) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, r := range records {
		keep := true
		for _, f := range filters {
			if f != nil && !f(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}

	if sortKey == "" {
		return out, nil
	}
	cmp, ok := comparators[sortKey]
	if !ok {
		return nil, &UnknownSortKeyError{Key: sortKey}
	}
	// Stable so ties keep source order; several screens default-sort by
	// dates that many records share.
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j])*int(dir) < 0
	})
	return out, nil
}
