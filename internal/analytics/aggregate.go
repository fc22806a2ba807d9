package analytics

// Reducer folds a collection into a single summary number.
type Reducer[T any] func(records []T) float64

// Spec is a set of named reducers evaluated together by Aggregate.
type Spec[T any] map[string]Reducer[T]

// Aggregate evaluates every reducer in the spec over records and returns
// the summary numbers keyed by reducer name. Records are never mutated.
func Aggregate[T any](records []T, spec Spec[T]) map[string]float64 {
	out := make(map[string]float64, len(spec))
	for name, reduce := range spec {
		out[name] = reduce(records)
	}
	return out
}

// CountAll counts every record.
func CountAll[T any]() Reducer[T] {
	return func(records []T) float64 {
		return float64(len(records))
	}
}

// CountWhere counts records matching the predicate.
func CountWhere[T any](pred func(T) bool) Reducer[T] {
	return func(records []T) float64 {
		n := 0
		for _, r := range records {
			if pred(r) {
				n++
			}
		}
		return float64(n)
	}
}

// SumBy totals the selected value across all records.
func SumBy[T any](sel func(T) float64) Reducer[T] {
	return func(records []T) float64 {
		var total float64
		for _, r := range records {
			total += sel(r)
		}
		return total
	}
}

// AvgBy averages the selected value. Empty input yields 0, never NaN;
// the stats tiles depend on that.
func AvgBy[T any](sel func(T) float64) Reducer[T] {
	return func(records []T) float64 {
		if len(records) == 0 {
			return 0
		}
		var total float64
		for _, r := range records {
			total += sel(r)
		}
		return total / float64(len(records))
	}
}

// MinBy returns the smallest selected value, 0 on empty input.
func MinBy[T any](sel func(T) float64) Reducer[T] {
	return func(records []T) float64 {
		if len(records) == 0 {
			return 0
		}
		min := sel(records[0])
		for _, r := range records[1:] {
			if v := sel(r); v < min {
				min = v
			}
		}
		return min
	}
}

// MaxBy returns the largest selected value, 0 on empty input.
func MaxBy[T any](sel func(T) float64) Reducer[T] {
	return func(records []T) float64 {
		if len(records) == 0 {
			return 0
		}
		max := sel(records[0])
		for _, r := range records[1:] {
			if v := sel(r); v > max {
				max = v
			}
		}
		return max
	}
}

// CountDistinctBy counts distinct values of the selected key.
func CountDistinctBy[T any](sel func(T) string) Reducer[T] {
	return func(records []T) float64 {
		seen := make(map[string]struct{}, len(records))
		for _, r := range records {
			seen[sel(r)] = struct{}{}
		}
		return float64(len(seen))
	}
}
