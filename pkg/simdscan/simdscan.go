// Package simdscan implements the width-16/32 vector-style scanners of
// spec.md C4. Pure Go cannot issue PCMPESTRI/AVX2/NEON instructions, so the
// "vector" width here is simulated with the SWAR (SIMD-within-a-register)
// techniques coregx-coregex/simd uses for its portable fallback paths
// (ascii_generic.go, memchr_generic_impl.go); a real hardware-accelerated
// path is wired separately in hyperscan.go behind a cgo+hyperscan build tag,
// mirroring praetorian-inc-titus's pkg/matcher/hyperscan.go split.
package simdscan

import (
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

const (
	// Width16MaxPatternLen is the pattern-length ceiling for Width16Engine
	// (spec.md §4.4's "16-byte PCMPESTRI-like" / NEON variant).
	Width16MaxPatternLen = 16
	// Width32MaxPatternLen is the pattern-length ceiling for Width32Engine
	// (spec.md §4.4's "32-byte broadcast-compare" variant).
	Width32MaxPatternLen = 32
)

var errWrongPatternCount = errWrap("simdscan: engine requires exactly one pattern")

type errWrap string

func (e errWrap) Error() string { return string(e) }

// Width16Engine is the case-sensitive-only 16-byte-window variant: it loads
// up to 16 bytes of text, byte-compares against the pattern, and verifies any
// hit in full. Falls back conceptually to BMH for longer patterns or
// case-insensitive requests (spec.md §4.4); that fallback is the selector's
// job (C7), so this engine rejects those inputs rather than silently
// degrading.
type Width16Engine struct{}

// Scan implements engine.Engine. Returns an error if the pattern exceeds
// Width16MaxPatternLen or case-insensitivity is requested; the caller (C7)
// is responsible for not routing such requests here.
func (Width16Engine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	if len(p.Patterns) != 1 {
		return 0, errWrongPatternCount
	}
	pattern := p.Patterns[0].Bytes
	plen := len(pattern)
	if plen == 0 {
		return scanEmptyPattern(p, buf, result)
	}
	if plen > Width16MaxPatternLen || !p.CaseSensitive {
		return 0, errWrongPatternCount
	}
	if len(buf) < plen {
		return 0, nil
	}

	tracker := engine.NewTracker(p, result)
	first := pattern[0]
	blen := len(buf)
	limit := blen - plen

	// A 16-byte "window load" is simulated as a bounded byte-equal-ordered
	// compare: find first candidates within each 16-byte text window via
	// indexByte, then verify the remaining bytes inline.
	pos := 0
	for pos <= limit {
		window := buf[pos:min(pos+16, blen)]
		rel := indexByte(window, first)
		if rel < 0 {
			// No candidate first byte anywhere in this window; advance past
			// it entirely (classic vectorized-scan behavior: a full window
			// with zero hits skips whole-window width).
			pos += len(window)
			continue
		}
		pos += rel
		if pos > limit {
			break
		}
		if matchFull(buf, pos, pattern, true) {
			accepted, stop := tracker.Accept(buf, pos, pos+plen)
			if stop {
				return tracker.Count(), nil
			}
			if p.CountLinesMode && accepted {
				pos = lineSkip(buf, pos)
				continue
			}
			pos++
			continue
		}
		pos++
	}
	return tracker.Count(), nil
}

// Width32Engine is the 32-byte broadcast-compare variant: broadcasts the
// first pattern byte across a 32-byte window, finds every candidate bit in
// the window, verifies each fully, and supports case-insensitivity by
// lowercasing the window before comparison (spec.md §4.4). Once fewer than
// 32 bytes of text remain, a scalar BMH tail scans the rest of the buffer.
type Width32Engine struct {
	tail bmhTail
}

// Scan implements engine.Engine.
func (w Width32Engine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	if len(p.Patterns) != 1 {
		return 0, errWrongPatternCount
	}
	pattern := p.Patterns[0].Bytes
	plen := len(pattern)
	if plen == 0 {
		return scanEmptyPattern(p, buf, result)
	}
	if plen > Width32MaxPatternLen {
		return 0, errWrongPatternCount
	}
	if len(buf) < plen {
		return 0, nil
	}

	tracker := engine.NewTracker(p, result)
	first := pattern[0]
	blen := len(buf)
	limit := blen - plen

	pos := 0
	for pos <= limit {
		windowEnd := min(pos+32, blen)
		// Only scan full 32-byte windows vectorially; once the remaining
		// text is shorter than 32 bytes, hand off to the scalar BMH tail.
		if windowEnd-pos < 32 {
			break
		}
		window := buf[pos:windowEnd]
		bits := broadcastCompare(window, first, p.CaseSensitive)
		if bits == 0 {
			pos += 32
			continue
		}
		skipped := false
		for bits != 0 {
			bit := trailingZero32(bits)
			bits &^= 1 << uint(bit)
			cand := pos + bit
			if cand > limit {
				continue
			}
			if matchFull(buf, cand, pattern, p.CaseSensitive) {
				accepted, stop := tracker.Accept(buf, cand, cand+plen)
				if stop {
					return tracker.Count(), nil
				}
				if p.CountLinesMode && accepted {
					// A dedup skip invalidates the remaining bits computed
					// for this window; restart the window scan from the new
					// cursor on the next outer iteration.
					pos = lineSkip(buf, cand)
					skipped = true
					break
				}
			}
		}
		if !skipped {
			pos += 32
		}
	}

	if err := w.tail.scan(p, buf, pos, pattern, tracker); err != nil {
		return 0, err
	}
	return tracker.Count(), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func indexByte(buf []byte, b byte) int {
	for i, c := range buf {
		if c == b {
			return i
		}
	}
	return -1
}

func matchFull(buf []byte, pos int, pattern []byte, caseSensitive bool) bool {
	for i, pb := range pattern {
		b := buf[pos+i]
		if caseSensitive {
			if b != pb {
				return false
			}
		} else if engine.ToLower(b) != engine.ToLower(pb) {
			return false
		}
	}
	return true
}

// broadcastCompare returns a 32-bit mask with bit i set iff window[i]
// equals first (case-folded when !caseSensitive). This simulates the
// vector broadcast-compare-bitmask step in pure Go.
func broadcastCompare(window []byte, first byte, caseSensitive bool) uint32 {
	var mask uint32
	target := first
	if !caseSensitive {
		target = engine.ToLower(first)
	}
	for i, c := range window {
		cand := c
		if !caseSensitive {
			cand = engine.ToLower(cand)
		}
		if cand == target {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

func trailingZero32(x uint32) int {
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}

func lineSkip(buf []byte, pos int) int {
	end := pos
	for end < len(buf) && buf[end] != '\n' {
		end++
	}
	return end + 1
}
