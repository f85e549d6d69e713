// Package engine defines the shared contract every concrete search
// algorithm (C3-C6 of spec.md) implements, plus the match-acceptance and
// case-folding rules spec.md §4.3 says are applied uniformly by all of them.
package engine

import "math"

// Pattern is one immutable byte-string pattern in a search's pattern set.
type Pattern struct {
	Bytes []byte
}

// Unlimited is the MaxCount value meaning "no cap" (spec.md's max_count = ∞).
const Unlimited = uint64(math.MaxUint64)

// Params is the read-only contract shared across threads for the lifetime
// of one search invocation (spec.md §3's SearchParams).
type Params struct {
	Patterns       []Pattern
	CaseSensitive  bool
	WholeWord      bool
	UseRegex       bool
	CountLinesMode bool
	TrackPositions bool
	MaxCount       uint64 // Unlimited means no cap.

	// Regex, Automaton, and Prefilter are opaque compiled handles, built
	// once before dispatch by pkg/regexengine / pkg/automaton and plugged
	// in here so Params stays a single read-only value threaded to every
	// worker. Prefilter is only set alongside Automaton (multi-pattern,
	// non-regex searches); the driver uses it to skip Scan on chunks it
	// proves can't match.
	Regex     interface{}
	Automaton interface{}
	Prefilter interface{}
}

// EffectiveMax returns MaxCount, already defaulting to Unlimited.
func (p *Params) EffectiveMax() uint64 {
	if p.MaxCount == 0 {
		return Unlimited
	}
	return p.MaxCount
}

// MaxPatternLen returns the length of the longest pattern, used by the
// chunked driver to size the byte overlap between chunks (spec.md §4.8).
func (p *Params) MaxPatternLen() int {
	max := 0
	for _, pat := range p.Patterns {
		if len(pat.Bytes) > max {
			max = len(pat.Bytes)
		}
	}
	return max
}

// LowerTable is the 256-entry ASCII lowercase table spec.md §4.3 requires
// case-insensitive comparisons to use.
var LowerTable = func() [256]byte {
	var t [256]byte
	for i := 0; i < 256; i++ {
		b := byte(i)
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		t[i] = b
	}
	return t
}()

// ToLower folds a single byte through LowerTable.
func ToLower(b byte) byte { return LowerTable[b] }

// IsWordByte reports whether b is a word constituent: alphanumeric or '_'.
func IsWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// IsWholeWord applies spec.md §4.3 step 2: both boundaries of [start,end)
// must sit on a word/non-word transition (or a buffer edge).
func IsWholeWord(buf []byte, start, end int) bool {
	if start > 0 && IsWordByte(buf[start-1]) {
		return false
	}
	if end < len(buf) && IsWordByte(buf[end]) {
		return false
	}
	return true
}
