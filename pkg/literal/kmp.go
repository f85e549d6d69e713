package literal

import (
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// KMPEngine implements Knuth-Morris-Pratt scanning for a single literal
// pattern. On a full match it advances by the pattern length (non-
// overlapping); on a mismatch it falls back via the LPS array.
type KMPEngine struct{}

// buildLPS computes the classical longest-proper-prefix-which-is-also-suffix
// array in O(plen). Comparisons use the lowercase table when caseSensitive
// is false.
func buildLPS(pattern []byte, caseSensitive bool) []int {
	plen := len(pattern)
	lps := make([]int, plen)
	length := 0
	i := 1
	for i < plen {
		if bytesEqualFold(pattern[i], pattern[length], caseSensitive) {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}
	return lps
}

// Scan implements engine.Engine.
func (KMPEngine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	if len(p.Patterns) != 1 {
		return 0, errWrongPatternCount
	}
	pattern := p.Patterns[0].Bytes
	plen := len(pattern)

	if plen == 0 {
		return scanEmptyPattern(p, buf, result)
	}
	if len(buf) < plen {
		return 0, nil
	}

	lps := buildLPS(pattern, p.CaseSensitive)
	tracker := engine.NewTracker(p, result)

	i, j := 0, 0
	for i < len(buf) {
		if bytesEqualFold(buf[i], pattern[j], p.CaseSensitive) {
			i++
			j++
			if j == plen {
				start, end := i-plen, i
				accepted, stop := tracker.Accept(buf, start, end)
				if stop {
					return tracker.Count(), nil
				}
				// Non-overlapping by spec: always restart the prefix
				// function at 0 rather than falling back via lps[j-1].
				j = 0
				if p.CountLinesMode && accepted {
					i = lineEndPlusOne(buf, start)
				}
			}
			continue
		}
		if j != 0 {
			j = lps[j-1]
		} else {
			i++
		}
	}
	return tracker.Count(), nil
}
