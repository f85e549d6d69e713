// Package regexengine implements spec.md C6: a POSIX-ERE-flavored adapter
// wrapping a single compiled regex over one or more pattern strings. The
// compile flags and match timeout are grounded on
// praetorian-inc-titus/pkg/matcher/regexp.go's NewRegexp (RE2|Multiline,
// 5s MatchTimeout).
package regexengine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

const matchTimeout = 5 * time.Second

// Regex is a compiled multi-pattern regex ready to scan.
type Regex struct {
	re *regexp2.Regexp
}

// Compile combines one or more POSIX-ERE pattern strings into a single
// alternation `(p1)|(p2)|...|(pN)` (spec.md §4.6) when more than one is
// given, and compiles it with RE2|Multiline, adding IgnoreCase when the
// search is case-insensitive.
func Compile(patterns []string, caseSensitive bool) (*Regex, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("regexengine: at least one pattern required")
	}

	combined := patterns[0]
	if len(patterns) > 1 {
		parts := make([]string, len(patterns))
		for i, pat := range patterns {
			parts[i] = "(" + pat + ")"
		}
		combined = strings.Join(parts, "|")
	}

	opts := regexp2.RE2 | regexp2.Multiline
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(combined, opts)
	if err != nil {
		return nil, fmt.Errorf("regexengine: compile failed for %q: %w", combined, err)
	}
	re.MatchTimeout = matchTimeout
	return &Regex{re: re}, nil
}

// Scan implements engine.Engine. It repeatedly finds the next match,
// applies match acceptance (engine.Tracker), and relies on regexp2's
// FindNextMatch to keep the cursor strictly increasing across zero-width
// matches (spec.md §4.6 step 2); a defensive check guards against a
// non-increasing cursor regardless.
func (r *Regex) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	tracker := engine.NewTracker(p, result)

	if len(buf) == 0 {
		return r.scanEmptyText(tracker)
	}

	text := string(buf)
	m, err := r.re.FindStringMatch(text)
	if err != nil {
		return 0, fmt.Errorf("regexengine: scan failed: %w", err)
	}

	lastEnd := -1
	for m != nil {
		start, end := m.Index, m.Index+m.Length
		if start < lastEnd {
			break
		}

		_, stop := tracker.Accept(buf, start, end)
		if stop {
			return tracker.Count(), nil
		}
		lastEnd = end
		if end == start {
			lastEnd++ // zero-width: force the next match to strictly advance
		}

		m, err = r.re.FindNextMatch(m)
		if err != nil {
			return tracker.Count(), fmt.Errorf("regexengine: scan failed: %w", err)
		}
	}
	return tracker.Count(), nil
}

// scanEmptyText implements spec.md §4.6's "Empty text" rule: attempt one
// match against "" and accept (0,0) if it succeeds at position 0.
func (r *Regex) scanEmptyText(tracker *engine.Tracker) (uint64, error) {
	m, err := r.re.FindStringMatch("")
	if err != nil {
		return 0, fmt.Errorf("regexengine: empty-text scan failed: %w", err)
	}
	if m != nil && m.Index == 0 && m.Length == 0 {
		tracker.Accept(nil, 0, 0)
	}
	return tracker.Count(), nil
}
