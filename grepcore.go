// Package grepcore is the public API of spec.md §6: SearchString,
// SearchBuffer, SearchFile, and SearchDirectory compose the lower C1-C9
// packages behind four entry points. File-level shape (top-level
// convenience functions wrapping the internal engine/driver packages) is
// grounded on titus's root titus.go convenience wrapper over
// pkg/matcher/pkg/enum.
package grepcore

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/corelex/grepcore/pkg/automaton"
	"github.com/corelex/grepcore/pkg/dirwalk"
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/lineindex"
	"github.com/corelex/grepcore/pkg/matchresult"
	"github.com/corelex/grepcore/pkg/mmapbuf"
	"github.com/corelex/grepcore/pkg/regexengine"
	"github.com/corelex/grepcore/pkg/search"
	"github.com/corelex/grepcore/pkg/selector"
	"github.com/corelex/grepcore/pkg/threadpool"
)

// SearchParams is the public counterpart to spec.md §3's SearchParams: the
// caller-facing knobs, pre-compilation. Compile builds the engine.Params
// every lower package actually consumes.
type SearchParams struct {
	Patterns       []string
	CaseSensitive  bool
	WholeWord      bool
	UseRegex       bool
	CountLinesMode bool
	TrackPositions bool
	MaxCount       uint64

	// MinChunkBytes overrides the chunked driver's 4 MiB floor (spec.md
	// §4.8 step 2) when positive; zero keeps the spec default. Sourced
	// from pkg/config.Defaults by callers that load a config file (e.g.
	// cmd/grepcore's --config flag).
	MinChunkBytes int64
}

// Result is what every entry point below returns.
type Result struct {
	Found     bool
	Total     uint64
	Positions []matchresult.Position // nil unless params.TrackPositions
}

// Compile builds the engine.Params (with any regex/automaton handle
// already attached) that search.Run and selector.Select expect.
func (sp SearchParams) Compile() (*engine.Params, error) {
	if len(sp.Patterns) == 0 {
		return nil, fmt.Errorf("grepcore: at least one pattern required")
	}
	p := &engine.Params{
		CaseSensitive:  sp.CaseSensitive,
		WholeWord:      sp.WholeWord,
		UseRegex:       sp.UseRegex,
		CountLinesMode: sp.CountLinesMode,
		TrackPositions: sp.TrackPositions,
		MaxCount:       sp.MaxCount,
	}
	for _, pat := range sp.Patterns {
		p.Patterns = append(p.Patterns, engine.Pattern{Bytes: []byte(pat)})
	}

	switch {
	case sp.UseRegex:
		re, err := regexengine.Compile(sp.Patterns, sp.CaseSensitive)
		if err != nil {
			return nil, err
		}
		p.Regex = re
	case len(sp.Patterns) > 1:
		patBytes := make([][]byte, len(sp.Patterns))
		for i, pat := range sp.Patterns {
			patBytes[i] = []byte(pat)
		}
		p.Automaton = automaton.Build(patBytes, sp.CaseSensitive)
		p.Prefilter = automaton.NewPrefilter(patBytes, sp.CaseSensitive)
	}
	return p, nil
}

// sharedPool is the lazily initialized, process-wide thread pool spec.md
// §5 describes ("a single long-lived resource created on first need and
// destroyed at teardown"). A fresh pool per call is also spec-legal but
// wastes setup, so this repo takes the single-pool option.
var (
	poolOnce sync.Once
	pool     *threadpool.Pool
	poolErr  error
)

func getPool() (*threadpool.Pool, error) {
	poolOnce.Do(func() {
		pool, poolErr = threadpool.New(defaultWorkers())
	})
	return pool, poolErr
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// SearchString searches an in-memory string.
func SearchString(params SearchParams, text string) (Result, error) {
	return SearchBuffer(params, []byte(text))
}

// SearchBuffer searches an in-memory byte buffer (spec.md §6); SearchString
// delegates to it.
func SearchBuffer(params SearchParams, buf []byte) (Result, error) {
	p, err := params.Compile()
	if err != nil {
		return Result{}, err
	}
	pool, err := getPool()
	if err != nil {
		return Result{}, err
	}

	out, err := search.Run(p, buf, pool, defaultWorkers(), params.MinChunkBytes, selector.DefaultFeatures())
	if err != nil {
		return Result{}, err
	}
	return toResult(out), nil
}

// SearchFile mmaps filename and runs the chunked driver over it.
func SearchFile(params SearchParams, filename string, threads int) (Result, error) {
	p, err := params.Compile()
	if err != nil {
		return Result{}, err
	}
	pool, err := getPool()
	if err != nil {
		return Result{}, err
	}

	f, err := mmapbuf.Open(filename)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	if threads <= 0 {
		threads = defaultWorkers()
	}
	out, err := search.Run(p, f.Bytes(), pool, threads, params.MinChunkBytes, selector.DefaultFeatures())
	if err != nil {
		return Result{}, fmt.Errorf("grepcore: search %q: %w", filename, err)
	}
	return toResult(out), nil
}

// FileResult pairs one file's Result with its path, for SearchDirectory's
// visitor.
type FileResult struct {
	Path string
	Result
}

// SearchDirectory walks root with filter (spec.md §6's collaborator),
// running the chunked driver on every eligible, non-binary file, and
// reports each file's result to onMatch. Returns the count of files whose
// search failed (those are not reported to onMatch) — spec.md's
// search_directory return value. I/O failures are not counted there: an
// error while walking the tree or reading a file ends the walk and is
// returned as err.
func SearchDirectory(ctx context.Context, root string, params SearchParams, threads int, filter *dirwalk.Filter, onMatch func(FileResult)) (errorsCount int, err error) {
	p, err := params.Compile()
	if err != nil {
		return 0, err
	}
	pool, err := getPool()
	if err != nil {
		return 0, err
	}
	if threads <= 0 {
		threads = defaultWorkers()
	}

	var errCount int64
	_, walkErr := dirwalk.Walk(ctx, root, filter, func(path string, content []byte) error {
		out, err := search.Run(p, content, pool, threads, params.MinChunkBytes, selector.DefaultFeatures())
		if err != nil {
			atomic.AddInt64(&errCount, 1)
			return nil // per-file errors are isolated, not fatal (spec.md §5)
		}
		onMatch(FileResult{Path: path, Result: toResult(out)})
		return nil
	})
	if walkErr != nil {
		return int(errCount), walkErr
	}
	return int(errCount), nil
}

func toResult(out search.Outcome) Result {
	r := Result{Found: out.Total > 0, Total: out.Total}
	if out.Result != nil {
		r.Positions = out.Result.Positions()
	}
	return r
}

// ExtractLine returns the line containing [start,end) in buf, along with
// its 1-based line number, per SPEC_FULL.md §4's match-snippet supplement
// (pure reuse of C2, no new scanning logic).
func ExtractLine(buf []byte, start, end int) (line string, lineNumber, lineRelativeStart, lineRelativeEnd int) {
	ls := lineindex.LineStart(buf, start)
	le := lineindex.LineEnd(buf, end)
	lineNumber = 1
	for i := 0; i < ls; i++ {
		if buf[i] == '\n' {
			lineNumber++
		}
	}
	return string(buf[ls:le]), lineNumber, start - ls, end - ls
}
