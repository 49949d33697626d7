package relation

import (
	"math"
	"sort"
)

// TopK returns the indices and values of the k smallest scores, ties broken
// by original index order. Exact-zero scores are remapped to +Inf before
// selection so that degenerate self-comparisons sort last; entries that are
// +Inf after the remap are never returned. When fewer than k finite entries
// exist, all of them are returned. The caller's slice is not modified.
func TopK(scores []float64, k int) ([]int, []float64) {
	ranked := make([]float64, len(scores))
	for i, s := range scores {
		if s == 0 {
			ranked[i] = math.Inf(1)
		} else {
			ranked[i] = s
		}
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ranked[order[i]] < ranked[order[j]]
	})

	if k > len(order) {
		k = len(order)
	}
	idx := make([]int, 0, k)
	vals := make([]float64, 0, k)
	for _, i := range order[:k] {
		if math.IsInf(ranked[i], 1) {
			break
		}
		idx = append(idx, i)
		vals = append(vals, ranked[i])
	}
	return idx, vals
}
