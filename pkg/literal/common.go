// Package literal implements the single-literal scanning engines of
// spec.md C3: short-needle byte scans, Boyer-Moore-Horspool, and
// Knuth-Morris-Pratt.
package literal

import (
	"errors"

	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/lineindex"
	"github.com/corelex/grepcore/pkg/matchresult"
)

var errWrongPatternCount = errors.New("literal: engine requires exactly one pattern")

// lineEndPlusOne is the cursor the spec's count_lines_mode skip-ahead rule
// (§4.3 step 4) advances to once a new line has been counted.
func lineEndPlusOne(buf []byte, start int) int {
	end := lineindex.LineEnd(buf, start)
	return end + 1
}

// scanEmptyPattern implements the empty-pattern edge case shared by every
// literal engine: an empty pattern matches at every position, including the
// single position 0 of an empty buffer (spec.md §4.5's empty-text rule
// generalizes the same way for a plain empty pattern).
func scanEmptyPattern(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	tracker := engine.NewTracker(p, result)
	blen := len(buf)
	if blen == 0 {
		_, stop := tracker.Accept(buf, 0, 0)
		_ = stop
		return tracker.Count(), nil
	}
	for pos := 0; pos <= blen; pos++ {
		_, stop := tracker.Accept(buf, pos, pos)
		if stop {
			return tracker.Count(), nil
		}
	}
	return tracker.Count(), nil
}
