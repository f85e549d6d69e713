package search

import (
	"strings"
	"testing"

	"github.com/corelex/grepcore/pkg/automaton"
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/selector"
	"github.com/corelex/grepcore/pkg/threadpool"
	"github.com/stretchr/testify/require"
)

var noSIMD = selector.Features{}

func TestRunSingleWorkerMatchesLiteralBaseline(t *testing.T) {
	buf := []byte("the quick brown fox jumps over the lazy fox near the fox den")
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("fox")}},
		CaseSensitive:  true,
		TrackPositions: true,
	}
	pool, err := threadpool.New(1)
	require.NoError(t, err)
	defer pool.Close()

	out, err := Run(p, buf, pool, 1, 0, noSIMD)
	require.NoError(t, err)
	require.Equal(t, uint64(3), out.Total)
	require.Len(t, out.Result.Positions(), 3)
}

func TestRunManyWorkersAgreesWithSingleWorker(t *testing.T) {
	// A repeated needle spanning many forced chunk boundaries: worker
	// count must not change the total (spec.md §8's parallel-equivalence
	// invariant), since overlap + ownership filtering removes duplicates.
	needle := "needle"
	buf := []byte(strings.Repeat("xxxxxxxxxx"+needle, 500))
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte(needle)}},
		CaseSensitive:  true,
		TrackPositions: true,
	}

	pool1, err := threadpool.New(1)
	require.NoError(t, err)
	defer pool1.Close()
	out1, err := Run(p, buf, pool1, 1, 0, noSIMD)
	require.NoError(t, err)

	poolN, err := threadpool.New(8)
	require.NoError(t, err)
	defer poolN.Close()
	outN, err := Run(p, buf, poolN, 8, 0, noSIMD)
	require.NoError(t, err)

	require.Equal(t, out1.Total, outN.Total)
	require.Equal(t, out1.Result.Positions(), outN.Result.Positions())
}

func TestRunCountLinesModeForcesSingleWorker(t *testing.T) {
	buf := []byte("fox\nfox fox\nbear\nfox\n")
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("fox")}},
		CaseSensitive:  true,
		CountLinesMode: true,
	}
	pool, err := threadpool.New(4)
	require.NoError(t, err)
	defer pool.Close()

	out, err := Run(p, buf, pool, 4, 0, noSIMD)
	require.NoError(t, err)
	require.Equal(t, uint64(3), out.Total) // 3 distinct lines contain "fox"
}

func TestRunEmptyBuffer(t *testing.T) {
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("x")}}, CaseSensitive: true}
	pool, err := threadpool.New(2)
	require.NoError(t, err)
	defer pool.Close()

	out, err := Run(p, nil, pool, 2, 0, noSIMD)
	require.NoError(t, err)
	require.Equal(t, uint64(0), out.Total)
}

func TestRunMultiPatternPrefilterSkipsKeywordlessChunks(t *testing.T) {
	// Seven chunks' worth of filler with no keyword, and exactly one
	// "cat" planted in the eighth and last chunk: every earlier chunk's Aho-Corasick
	// prefilter must report no possible match (this drives the skip path
	// in Run, not just pkg/automaton's own unit tests), while the total
	// stays correct.
	filler := strings.Repeat("xyzxyzxyzxyzxyzxyzxyzxyzxyzxyz", 4) // 120 bytes, no keyword
	buf := []byte(strings.Repeat(filler, 7) + strings.Repeat("w", 90) + "cat" + strings.Repeat("w", 27))
	patterns := [][]byte{[]byte("cat"), []byte("dog")}

	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: patterns[0]}, {Bytes: patterns[1]}},
		CaseSensitive:  true,
		TrackPositions: true,
		Automaton:      automaton.Build(patterns, true),
		Prefilter:      automaton.NewPrefilter(patterns, true),
	}
	pool, err := threadpool.New(8)
	require.NoError(t, err)
	defer pool.Close()

	out, err := Run(p, buf, pool, 8, 0, noSIMD)
	require.NoError(t, err)
	require.Equal(t, uint64(1), out.Total)
	require.Len(t, out.Result.Positions(), 1)

	want := strings.Index(string(buf), "cat")
	require.Equal(t, want, out.Result.Positions()[0].Start)
}

func TestRunMaxCountTruncatesAcrossChunks(t *testing.T) {
	buf := []byte(strings.Repeat("a", 4000))
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("aa")}},
		CaseSensitive:  true,
		TrackPositions: true,
		MaxCount:       5,
	}
	pool, err := threadpool.New(4)
	require.NoError(t, err)
	defer pool.Close()

	out, err := Run(p, buf, pool, 4, 0, noSIMD)
	require.NoError(t, err)
	require.Equal(t, uint64(5), out.Total)
	require.Len(t, out.Result.Positions(), 5)
}

func TestRunHonorsCustomMinChunkBytes(t *testing.T) {
	// A 30-byte floor, above len(buf)/workers (60/4=15) but below
	// len(buf), forces two 30-byte chunks even though 4 workers were
	// requested; the total must still agree with the single-worker baseline.
	buf := []byte(strings.Repeat("fox", 20))
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("fox")}},
		CaseSensitive:  true,
		TrackPositions: true,
	}
	pool, err := threadpool.New(4)
	require.NoError(t, err)
	defer pool.Close()

	out, err := Run(p, buf, pool, 4, 30, noSIMD)
	require.NoError(t, err)
	require.Equal(t, uint64(20), out.Total)
}
