package simdscan

import (
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/lineindex"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// bmhTail is the scalar Boyer-Moore-Horspool pass spec.md §4.4 requires
// Width32Engine to hand off to once fewer than 32 bytes of text remain.
// Sharing a tracker with the vector pass keeps max_count and count_lines_mode
// state continuous across the handoff.
type bmhTail struct{}

func (bmhTail) scan(p *engine.Params, buf []byte, pos int, pattern []byte, tracker *engine.Tracker) error {
	plen := len(pattern)
	blen := len(buf)
	if pos > blen-plen {
		return nil
	}

	table := buildTailShiftTable(pattern, p.CaseSensitive)
	for pos <= blen-plen {
		j := plen - 1
		for j >= 0 && matchByte(buf[pos+j], pattern[j], p.CaseSensitive) {
			j--
		}
		if j < 0 {
			accepted, stop := tracker.Accept(buf, pos, pos+plen)
			if stop {
				return nil
			}
			if p.CountLinesMode && accepted {
				pos = lineindex.LineEnd(buf, pos) + 1
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
	return nil
}

func buildTailShiftTable(pattern []byte, caseSensitive bool) [256]int {
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

func matchByte(a, b byte, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return engine.ToLower(a) == engine.ToLower(b)
}

// scanEmptyPattern mirrors pkg/literal's empty-pattern edge case: an empty
// pattern matches at every position, including the single position 0 of an
// empty buffer.
func scanEmptyPattern(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	tracker := engine.NewTracker(p, result)
	blen := len(buf)
	if blen == 0 {
		tracker.Accept(buf, 0, 0)
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
