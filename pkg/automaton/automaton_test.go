package automaton

import (
	"sort"
	"testing"

	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, a *Automaton, p *engine.Params, buf string) (uint64, []matchresult.Position) {
	t.Helper()
	res := matchresult.New(0)
	count, err := a.Scan(p, []byte(buf), res)
	require.NoError(t, err)
	positions := res.Positions()
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Start != positions[j].Start {
			return positions[i].Start < positions[j].Start
		}
		return positions[i].End < positions[j].End
	})
	return count, positions
}

func TestUshersScenario(t *testing.T) {
	patterns := [][]byte{[]byte("he"), []byte("she"), []byte("his"), []byte("hers")}
	a := Build(patterns, false)
	p := &engine.Params{
		Patterns: []engine.Pattern{
			{Bytes: patterns[0]}, {Bytes: patterns[1]}, {Bytes: patterns[2]}, {Bytes: patterns[3]},
		},
		CaseSensitive:  false,
		TrackPositions: true,
	}
	count, positions := scan(t, a, p, "UsHeRs")
	require.Equal(t, uint64(3), count)
	require.Equal(t, []matchresult.Position{{1, 4}, {2, 4}, {2, 6}}, positions)
}

func TestSinglePatternMatchesLiteralEquivalent(t *testing.T) {
	patterns := [][]byte{[]byte("fox")}
	a := Build(patterns, true)
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: patterns[0]}}, CaseSensitive: true, TrackPositions: true}
	count, positions := scan(t, a, p, "The quick brown fox")
	require.Equal(t, uint64(1), count)
	require.Equal(t, []matchresult.Position{{16, 19}}, positions)
}

func TestOverlappingSelfRepeats(t *testing.T) {
	patterns := [][]byte{[]byte("aa")}
	a := Build(patterns, true)
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: patterns[0]}}, CaseSensitive: true}
	count, _ := scan(t, a, p, "aaaaa")
	// A single-pattern automaton resets its state to the root after each
	// accepted match, so it agrees with KMP's non-overlapping count here
	// (spec.md §8 scenario 3) rather than BMH's overlapping one.
	require.Equal(t, uint64(2), count)
}

func TestEmptyTextWithEmptyPatternTerminal(t *testing.T) {
	patterns := [][]byte{nil}
	a := Build(patterns, true)
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: nil}}, CaseSensitive: true, TrackPositions: true}
	count, positions := scan(t, a, p, "")
	require.Equal(t, uint64(1), count)
	require.Equal(t, []matchresult.Position{{0, 0}}, positions)
}

func TestEmptyTextNoEmptyPattern(t *testing.T) {
	patterns := [][]byte{[]byte("x")}
	a := Build(patterns, true)
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: patterns[0]}}, CaseSensitive: true}
	count, _ := scan(t, a, p, "")
	require.Equal(t, uint64(0), count)
}

func TestMaxCountTruncation(t *testing.T) {
	patterns := [][]byte{[]byte("apple"), []byte("orange")}
	a := Build(patterns, true)
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: patterns[0]}, {Bytes: patterns[1]}},
		CaseSensitive:  true,
		TrackPositions: true,
		MaxCount:       3,
	}
	count, positions := scan(t, a, p, "apple banana apple orange apple grape apple")
	require.Equal(t, uint64(3), count)
	require.Len(t, positions, 3)
}

func TestPrefilterAgreesWithScan(t *testing.T) {
	patterns := [][]byte{[]byte("needle")}
	pf := NewPrefilter(patterns, true)
	require.True(t, pf.MayContainMatch([]byte("a needle in a haystack"), true))
	require.False(t, pf.MayContainMatch([]byte("nothing to find here"), true))
}

func TestPrefilterCaseInsensitive(t *testing.T) {
	patterns := [][]byte{[]byte("Fox")}
	pf := NewPrefilter(patterns, false)
	require.True(t, pf.MayContainMatch([]byte("a FOX ran"), false))
}
