package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorSinkMatchWithLineContext(t *testing.T) {
	var buf bytes.Buffer
	sink := NewColorSink(&buf, false) // disabled: assert on plain text, not ANSI codes

	err := sink.Match(Match{
		File:       "main.go",
		Start:      4,
		End:        7,
		Line:       "the fox jumps",
		LineNumber: 12,
	})
	require.NoError(t, err)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "main.go:12: "))
	require.Contains(t, out, "fox")
}

func TestColorSinkMatchWithoutLineContext(t *testing.T) {
	var buf bytes.Buffer
	sink := NewColorSink(&buf, false)

	err := sink.Match(Match{File: "data.bin", Start: 10, End: 13})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "data.bin")
	require.Contains(t, buf.String(), "[10,13)")
}

func TestColorSinkSummary(t *testing.T) {
	var buf bytes.Buffer
	sink := NewColorSink(&buf, false)

	require.NoError(t, sink.Summary(7, 3))
	require.Equal(t, "7 matches in 3 files\n", buf.String())
}

func TestColorSinkDisabledProducesNoANSI(t *testing.T) {
	var buf bytes.Buffer
	sink := NewColorSink(&buf, false)
	require.NoError(t, sink.Match(Match{File: "a.go", Start: 0, End: 1, Line: "a", LineNumber: 1}))
	require.NotContains(t, buf.String(), "\x1b[")
}
