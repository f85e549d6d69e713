package literal

import (
	"testing"

	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, e engine.Engine, p *engine.Params, buf string) (uint64, []matchresult.Position) {
	t.Helper()
	res := matchresult.New(0)
	count, err := e.Scan(p, []byte(buf), res)
	require.NoError(t, err)
	return count, res.Positions()
}

func TestFoxScenario(t *testing.T) {
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("fox")}},
		CaseSensitive:  true,
		TrackPositions: true,
	}
	for _, e := range []engine.Engine{ByteScanShortEngine{}, BMHEngine{}, KMPEngine{}} {
		count, positions := scan(t, e, p, "The quick brown fox")
		require.Equal(t, uint64(1), count)
		require.Equal(t, []matchresult.Position{{Start: 16, End: 19}}, positions)
	}
}

func TestOverlapVsNonOverlap(t *testing.T) {
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("aa")}},
		CaseSensitive:  true,
		TrackPositions: true,
	}
	bmhCount, _ := scan(t, BMHEngine{}, p, "aaaaa")
	kmpCount, _ := scan(t, KMPEngine{}, p, "aaaaa")

	require.Equal(t, uint64(4), bmhCount)
	require.Equal(t, uint64(2), kmpCount)
}

func TestWholeWordNeverIncreasesCount(t *testing.T) {
	buf := "cats category cat scatter cat"
	base := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("cat")}}, CaseSensitive: true}
	withWord := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("cat")}}, CaseSensitive: true, WholeWord: true}

	plain, _ := scan(t, BMHEngine{}, base, buf)
	word, _ := scan(t, BMHEngine{}, withWord, buf)
	require.LessOrEqual(t, word, plain)
}

func TestCaseInsensitiveIncludesCaseSensitive(t *testing.T) {
	buf := "Fox fox FOX foX"
	cs := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("fox")}}, CaseSensitive: true}
	ci := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("fox")}}, CaseSensitive: false}

	csCount, _ := scan(t, BMHEngine{}, cs, buf)
	ciCount, _ := scan(t, BMHEngine{}, ci, buf)
	require.GreaterOrEqual(t, ciCount, csCount)
	require.Equal(t, uint64(1), csCount)
	require.Equal(t, uint64(4), ciCount)
}

func TestMaxCountTruncation(t *testing.T) {
	p := &engine.Params{
		Patterns:       []engine.Pattern{{Bytes: []byte("apple")}},
		CaseSensitive:  true,
		TrackPositions: true,
		MaxCount:       3,
	}
	count, positions := scan(t, BMHEngine{}, p, "apple banana apple orange apple grape apple")
	require.Equal(t, uint64(3), count)
	require.Equal(t, []matchresult.Position{{0, 5}, {13, 18}, {26, 31}}, positions)
}

func TestEmptyPatternOnEmptyBuffer(t *testing.T) {
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: nil}}, CaseSensitive: true, TrackPositions: true}
	count, positions := scan(t, BMHEngine{}, p, "")
	require.Equal(t, uint64(1), count)
	require.Equal(t, []matchresult.Position{{0, 0}}, positions)
}

func TestEmptyBufferNonEmptyPattern(t *testing.T) {
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("x")}}, CaseSensitive: true}
	for _, e := range []engine.Engine{ByteScan1Engine{}, BMHEngine{}, KMPEngine{}} {
		count, _ := scan(t, e, p, "")
		require.Equal(t, uint64(0), count)
	}
}

func TestCountLinesModeMonotonicity(t *testing.T) {
	buf := "fox fox\nfox\nbanana\nfox fox fox\n"
	p := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("fox")}}, CaseSensitive: true, TrackPositions: true}
	pLines := &engine.Params{Patterns: []engine.Pattern{{Bytes: []byte("fox")}}, CaseSensitive: true, CountLinesMode: true}

	posCount, _ := scan(t, BMHEngine{}, p, buf)
	lineCount, _ := scan(t, BMHEngine{}, pLines, buf)
	require.LessOrEqual(t, lineCount, posCount)
	require.Equal(t, uint64(3), lineCount)
}

func TestIsRepetitive(t *testing.T) {
	require.True(t, IsRepetitive([]byte("aa")))
	require.True(t, IsRepetitive([]byte("aba")))
	require.True(t, IsRepetitive([]byte("abab")))
	require.False(t, IsRepetitive([]byte("hello")))
}

func TestMemchrSWAR(t *testing.T) {
	require.Equal(t, 3, memchrSWAR([]byte("abcXefgh"), 'X'))
	require.Equal(t, -1, memchrSWAR([]byte("abcdefgh"), 'X'))
	require.Equal(t, 0, memchrSWAR([]byte("X"), 'X'))
	require.Equal(t, -1, memchrSWAR(nil, 'X'))
}
