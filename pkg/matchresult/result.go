// Package matchresult implements the grow-on-demand ordered position list
// described in spec.md C1: push, merge with offset translation, stable total
// ordering on (start,end), and max-count truncation.
package matchresult

import "sort"

// Position is a half-open byte range [Start, End) into a searched buffer.
// Start == End is legal (an empty regex match).
type Position struct {
	Start int
	End   int
}

// Result is an append-only, ordered list of Position with geometric-growth
// capacity. Insertion preserves arrival order; capacity never shrinks.
type Result struct {
	positions []Position
}

// New creates a Result with the given initial capacity hint.
func New(capacity int) *Result {
	if capacity < 0 {
		capacity = 0
	}
	return &Result{positions: make([]Position, 0, capacity)}
}

// Len returns the number of positions currently stored.
func (r *Result) Len() int {
	return len(r.positions)
}

// Positions returns the underlying slice. Callers must not retain it across
// further mutation of r.
func (r *Result) Positions() []Position {
	return r.positions
}

// Push appends a new position, doubling capacity on overflow. Never
// partially appends: the append either fully succeeds or (on allocation
// exhaustion, which Go's runtime reports via panic rather than an error
// return) not at all.
func (r *Result) Push(start, end int) {
	r.positions = append(r.positions, Position{Start: start, End: end})
}

// Merge appends src's positions (in src's internal order) to r, translating
// every offset by baseOffset. Capacity for dst.len+src.len is reserved in one
// reallocation when growth is needed.
func (r *Result) Merge(src *Result, baseOffset int) {
	if src == nil || len(src.positions) == 0 {
		return
	}
	need := len(r.positions) + len(src.positions)
	if cap(r.positions) < need {
		grown := make([]Position, len(r.positions), need)
		copy(grown, r.positions)
		r.positions = grown
	}
	for _, p := range src.positions {
		r.positions = append(r.positions, Position{
			Start: p.Start + baseOffset,
			End:   p.End + baseOffset,
		})
	}
}

// SortByStartThenEnd imposes a lexicographic (start,end) total order.
// Stability is not required by spec.md C1, but sort.Slice's lack of
// stability is immaterial here since (start,end) pairs from a correct
// engine never repeat except as genuine duplicate matches.
func (r *Result) SortByStartThenEnd() {
	sort.Slice(r.positions, func(i, j int) bool {
		a, b := r.positions[i], r.positions[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}

// Truncate keeps only the first n positions (the caller is expected to have
// sorted beforehand when "first n" must mean "lexicographically smallest n").
func (r *Result) Truncate(n int) {
	if n < 0 {
		return
	}
	if n < len(r.positions) {
		r.positions = r.positions[:n]
	}
}

// Reset empties the result while retaining its backing capacity.
func (r *Result) Reset() {
	r.positions = r.positions[:0]
}
