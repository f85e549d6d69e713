package automaton

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/corelex/grepcore/pkg/engine"
)

// Prefilter wraps cloudflare/ahocorasick to cheaply decide whether a chunk
// can possibly contain any pattern before paying for the full arena-based
// Scan, exactly the role pkg/prefilter/prefilter.go plays for titus's rule
// set (ahocorasick.NewStringMatcher + .Match), here accelerating the
// multi-pattern engine itself instead of filtering rules ahead of regexp2.
type Prefilter struct {
	matcher *ahocorasick.Matcher
}

// NewPrefilter builds a keyword prefilter over patterns. Patterns shorter
// than 1 byte are skipped: an empty pattern always "matches", so it can
// never usefully gate anything.
func NewPrefilter(patterns [][]byte, caseSensitive bool) *Prefilter {
	var keywords []string
	for _, pat := range patterns {
		if len(pat) == 0 {
			continue
		}
		if caseSensitive {
			keywords = append(keywords, string(pat))
		} else {
			lowered := make([]byte, len(pat))
			for i, b := range pat {
				lowered[i] = engine.ToLower(b)
			}
			keywords = append(keywords, string(lowered))
		}
	}
	if len(keywords) == 0 {
		return &Prefilter{}
	}
	return &Prefilter{matcher: ahocorasick.NewStringMatcher(keywords)}
}

// MayContainMatch reports whether buf might contain any pattern. A false
// result means Scan is guaranteed to find nothing; a true result requires
// the caller to still run Scan to confirm.
func (pf *Prefilter) MayContainMatch(buf []byte, caseSensitive bool) bool {
	if pf.matcher == nil {
		return true
	}
	haystack := buf
	if !caseSensitive {
		haystack = make([]byte, len(buf))
		for i, b := range buf {
			haystack[i] = engine.ToLower(b)
		}
	}
	return len(pf.matcher.Match(haystack)) > 0
}
