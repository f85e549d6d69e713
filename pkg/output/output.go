// Package output implements the external sink collaborator spec.md §1
// names (formatting and printing matches is outside the core's scope, but
// it needs a named interface to hand results to). The color scheme and
// NO_COLOR/--no-color handling are grounded on
// praetorian-inc-titus/cmd/titus/report.go's styles/newStyles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Match is one reported position, optionally with its containing line
// (SPEC_FULL.md §4's "match snippet / line context" supplement). Start/End
// are byte offsets into the whole searched buffer, except when Line is
// non-empty, in which case they are relative to the start of Line (the
// caller is expected to have already subtracted line_start from C2).
type Match struct {
	File       string
	Start, End int
	Line       string // containing line, if context extraction was requested
	LineNumber int     // 1-based; 0 if unknown
}

// Sink receives matches and a final summary from a search. The core
// drives a Sink; it never formats output itself (spec.md §1).
type Sink interface {
	Match(m Match) error
	Summary(totalMatches uint64, filesWithMatches int) error
}

// ColorSink writes grep-style "file:line: snippet" output to w, with the
// matched span and the filename highlighted the way titus highlights
// finding metadata in its report command.
type ColorSink struct {
	w        io.Writer
	filename *color.Color
	match    *color.Color
}

// NewColorSink builds a ColorSink. enabled=false disables all ANSI
// output (the --no-color / NO_COLOR path), matching newStyles(enabled).
func NewColorSink(w io.Writer, enabled bool) *ColorSink {
	s := &ColorSink{
		w:        w,
		filename: color.New(color.Bold, color.FgHiBlue),
		match:    color.New(color.FgYellow),
	}
	if !enabled {
		s.filename.DisableColor()
		s.match.DisableColor()
	}
	return s
}

// Match prints one "file:line: line-with-highlighted-match" entry, or
// "file: match at [start,end)" when m.Line is empty.
func (s *ColorSink) Match(m Match) error {
	prefix := s.filename.Sprintf("%s", m.File)
	if m.LineNumber > 0 {
		prefix = s.filename.Sprintf("%s:%d", m.File, m.LineNumber)
	}

	line := m.Line
	localStart, localEnd := m.Start, m.End
	if line == "" {
		_, err := fmt.Fprintf(s.w, "%s: match at [%d,%d)\n", prefix, m.Start, m.End)
		return err
	}

	var before, matched, after string
	if localStart >= 0 && localEnd <= len(line) && localStart <= localEnd {
		before, matched, after = line[:localStart], line[localStart:localEnd], line[localEnd:]
	} else {
		matched = line
	}

	_, err := fmt.Fprintf(s.w, "%s: %s%s%s\n", prefix, before, s.match.Sprint(matched), after)
	return err
}

// Summary prints a one-line total, grep-like.
func (s *ColorSink) Summary(totalMatches uint64, filesWithMatches int) error {
	_, err := fmt.Fprintf(s.w, "%d matches in %d files\n", totalMatches, filesWithMatches)
	return err
}
