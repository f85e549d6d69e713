package literal

import (
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// ByteScan1Engine handles single-byte patterns with a direct byte scan
// (spec.md §4.3). A case-insensitive search makes one pass that folds each
// byte through engine.ToLower. Advancement is by 1 (in CountLinesMode, to
// the next line once a line is counted), so overlapping is not a concern
// for a width-1 pattern.
type ByteScan1Engine struct{}

// Scan implements engine.Engine.
func (ByteScan1Engine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	if len(p.Patterns) != 1 {
		return 0, errWrongPatternCount
	}
	pattern := p.Patterns[0].Bytes
	if len(pattern) == 0 {
		return scanEmptyPattern(p, buf, result)
	}
	if len(pattern) != 1 {
		return 0, errWrongPatternCount
	}

	target := pattern[0]
	tracker := engine.NewTracker(p, result)

	if p.CaseSensitive {
		// Case-sensitive: memchrSWAR lets us skip non-matching runs 8
		// bytes at a time instead of a byte-by-byte loop.
		pos := 0
		for pos < len(buf) {
			rel := memchrSWAR(buf[pos:], target)
			if rel < 0 {
				break
			}
			pos += rel
			accepted, stop := tracker.Accept(buf, pos, pos+1)
			if stop {
				return tracker.Count(), nil
			}
			if p.CountLinesMode && accepted {
				pos = lineEndPlusOne(buf, pos)
				continue
			}
			pos++
		}
		return tracker.Count(), nil
	}

	foldedTarget := engine.ToLower(target)
	for pos := 0; pos < len(buf); pos++ {
		if engine.ToLower(buf[pos]) == foldedTarget {
			accepted, stop := tracker.Accept(buf, pos, pos+1)
			if stop {
				return tracker.Count(), nil
			}
			if p.CountLinesMode && accepted {
				pos = lineEndPlusOne(buf, pos) - 1 // loop's pos++ lands exactly at lineEnd+1
				continue
			}
		}
	}
	return tracker.Count(), nil
}

// ByteScanShortEngine handles 2-3 byte patterns: a byte-scan for the first
// byte followed by an inline verification of the remaining bytes.
type ByteScanShortEngine struct{}

// Scan implements engine.Engine.
func (ByteScanShortEngine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	if len(p.Patterns) != 1 {
		return 0, errWrongPatternCount
	}
	pattern := p.Patterns[0].Bytes
	plen := len(pattern)
	if plen == 0 {
		return scanEmptyPattern(p, buf, result)
	}
	if plen < 2 || plen > 3 {
		return 0, errWrongPatternCount
	}
	if len(buf) < plen {
		return 0, nil
	}

	first := pattern[0]
	tracker := engine.NewTracker(p, result)

	limit := len(buf) - plen
	for pos := 0; pos <= limit; pos++ {
		if !bytesEqualFold(buf[pos], first, p.CaseSensitive) {
			continue
		}
		match := true
		for j := 1; j < plen; j++ {
			if !bytesEqualFold(buf[pos+j], pattern[j], p.CaseSensitive) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		accepted, stop := tracker.Accept(buf, pos, pos+plen)
		if stop {
			return tracker.Count(), nil
		}
		if p.CountLinesMode && accepted {
			next := lineEndPlusOne(buf, pos)
			if next-1 > pos {
				pos = next - 1 // loop's pos++ lands at next
			}
		}
	}
	return tracker.Count(), nil
}
