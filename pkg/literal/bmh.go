package literal

import (
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// BMHEngine implements Boyer-Moore-Horspool scanning for a single literal
// pattern (spec.md §4.3). On a full match it advances by 1, finding
// overlapping matches; on a mismatch it shifts by the bad-character table
// entry (minimum 1).
type BMHEngine struct{}

func buildBMHTable(pattern []byte, caseSensitive bool) [256]int {
	plen := len(pattern)
	var table [256]int
	for i := range table {
		table[i] = plen
	}
	for i := 0; i < plen-1; i++ {
		shift := plen - 1 - i
		b := pattern[i]
		if shift < table[b] {
			table[b] = shift
		}
		if !caseSensitive {
			lo := engine.ToLower(b)
			up := b
			if lo >= 'a' && lo <= 'z' {
				up = lo - 'a' + 'A'
			}
			if shift < table[lo] {
				table[lo] = shift
			}
			if shift < table[up] {
				table[up] = shift
			}
		}
	}
	return table
}

func bytesEqualFold(a, b byte, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return engine.ToLower(a) == engine.ToLower(b)
}

// Scan implements engine.Engine.
func (BMHEngine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	if len(p.Patterns) != 1 {
		return 0, errWrongPatternCount
	}
	pattern := p.Patterns[0].Bytes
	plen := len(pattern)
	blen := len(buf)

	if plen == 0 {
		return scanEmptyPattern(p, buf, result)
	}
	if blen < plen {
		return 0, nil
	}

	table := buildBMHTable(pattern, p.CaseSensitive)
	tracker := engine.NewTracker(p, result)

	pos := 0
	for pos <= blen-plen {
		// Compare pattern against buf[pos:pos+plen] back-to-front, as
		// classic Horspool does, to maximize early mismatch detection.
		j := plen - 1
		for j >= 0 && bytesEqualFold(buf[pos+j], pattern[j], p.CaseSensitive) {
			j--
		}
		if j < 0 {
			start, end := pos, pos+plen
			accepted, stop := tracker.Accept(buf, start, end)
			if stop {
				return tracker.Count(), nil
			}
			if p.CountLinesMode && accepted {
				pos = lineEndPlusOne(buf, start)
				continue
			}
			pos++
			continue
		}
		shift := table[buf[pos+plen-1]]
		if shift < 1 {
			shift = 1
		}
		pos += shift
	}
	return tracker.Count(), nil
}
