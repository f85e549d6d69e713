package engine

import (
	"github.com/corelex/grepcore/pkg/lineindex"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// Tracker applies spec.md §4.3's match-acceptance steps 2-6 uniformly for
// every concrete engine: whole-word filtering, line-dedup counting, position
// tracking, and the max-count stop signal.
type Tracker struct {
	params            *Params
	result            *matchresult.Result
	count             uint64
	lastLineStart     int
	haveLastLineStart bool
}

// NewTracker builds a Tracker over result (which may be nil when
// TrackPositions is false).
func NewTracker(p *Params, result *matchresult.Result) *Tracker {
	return &Tracker{params: p, result: result}
}

// Count returns the number of accepted matches (or distinct lines, in
// CountLinesMode) so far.
func (t *Tracker) Count() uint64 { return t.count }

// Accept evaluates one candidate match [start,end) found in buf.
//
// Returns accepted (true if this candidate was counted — callers in
// CountLinesMode should skip their scan cursor to lineindex.LineEnd(buf,
// start)+1 when accepted is true) and stop (true once MaxCount has been
// reached; the engine must return immediately).
func (t *Tracker) Accept(buf []byte, start, end int) (accepted, stop bool) {
	if t.params.WholeWord && !IsWholeWord(buf, start, end) {
		return false, false
	}

	if t.params.CountLinesMode {
		ls := lineindex.LineStart(buf, start)
		if t.haveLastLineStart && ls == t.lastLineStart {
			return false, false
		}
		t.lastLineStart = ls
		t.haveLastLineStart = true
		t.count++
		accepted = true
	} else {
		t.count++
		if t.params.TrackPositions && t.result != nil {
			t.result.Push(start, end)
		}
		accepted = true
	}

	if t.count >= t.params.EffectiveMax() {
		return accepted, true
	}
	return accepted, false
}
