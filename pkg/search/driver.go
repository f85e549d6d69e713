package search

import (
	"fmt"

	"github.com/corelex/grepcore/pkg/automaton"
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
	"github.com/corelex/grepcore/pkg/selector"
	"github.com/corelex/grepcore/pkg/threadpool"
)

// Outcome is the aggregated result of a driven search (spec.md §4.8 step 6).
type Outcome struct {
	Total  uint64
	Result *matchresult.Result // nil unless params.TrackPositions
}

// Run implements spec.md §4.8/§5: chunk buf across wantWorkers, submit one
// task per chunk to pool, and merge. See SPEC_FULL.md §5's Open Question
// resolutions: count_lines_mode and regex searches always run with a
// single effective worker, because a distinct-line count and a regex
// match can each straddle a chunk boundary in ways plain byte-overlap
// can't fully repair (spec.md §9). minChunkBytes <= 0 uses PlanChunks'
// spec-default 4 MiB floor; pkg/config.Defaults.MinChunkBytes is the
// deployment-configurable source for a non-default value.
func Run(p *engine.Params, buf []byte, pool *threadpool.Pool, wantWorkers int, minChunkBytes int64, f selector.Features) (Outcome, error) {
	named, err := selector.Select(p, f)
	if err != nil {
		return Outcome{}, err
	}

	if len(buf) == 0 {
		return runEmpty(p, named.Engine)
	}

	effectiveWorkers := wantWorkers
	if p.CountLinesMode || p.UseRegex {
		effectiveWorkers = 1
	}
	if effectiveWorkers <= 0 {
		effectiveWorkers = 1
	}

	overlap := 0
	if !p.UseRegex {
		if m := p.MaxPatternLen(); m > 1 {
			overlap = m - 1
		}
	}

	chunks := PlanChunks(buf, effectiveWorkers, overlap, minChunkBytes)
	if len(chunks) == 0 {
		return runEmpty(p, named.Engine)
	}

	// CountLinesMode forces a single chunk (above), so there is never a
	// boundary to de-duplicate across and the engine's own distinct-line
	// count is authoritative. Otherwise a worker's raw count includes
	// candidate matches that start in its overlap tail and are actually
	// owned by the next chunk (spec.md §4.8 step 5); those can only be
	// told apart from genuinely-owned matches by position, so every chunk
	// is scanned with position tracking forced on internally —
	// independent of whether the caller asked for positions — and the
	// chunk's contribution to the total is the length of its post-filter,
	// owned position list.
	scanParams := *p
	scanParams.TrackPositions = true

	// prefilter, when present (multi-pattern, non-regex searches; see
	// grepcore.SearchParams.Compile), is a cheap Aho-Corasick keyword test
	// that can prove a chunk contains none of the patterns without paying
	// for the full arena Scan over it (spec.md §4.5's automaton accelerator
	// role, applied per chunk rather than once over the whole buffer).
	prefilter, _ := p.Prefilter.(*automaton.Prefilter)

	type chunkOutcome struct {
		rawCount uint64
		owned    *matchresult.Result
	}
	outcomes := make([]chunkOutcome, len(chunks))
	tasks := make([]*threadpool.Task, len(chunks))

	for i := range chunks {
		i := i
		chunk := chunks[i]
		tasks[i] = &threadpool.Task{Run: func() error {
			if prefilter != nil && !prefilter.MayContainMatch(chunk.Content, p.CaseSensitive) {
				outcomes[i] = chunkOutcome{}
				return nil
			}
			local := matchresult.New(0)
			count, err := named.Engine.Scan(&scanParams, chunk.Content, local)
			if err != nil {
				return fmt.Errorf("search: chunk %d scan failed: %w", chunk.Index, err)
			}
			outcomes[i] = chunkOutcome{rawCount: count, owned: filterOwned(local, chunk)}
			return nil
		}}
		pool.Submit(tasks[i])
	}
	pool.Wait()

	var firstErr error
	var rawTotal uint64
	global := matchresult.New(0)
	for i, task := range tasks {
		if task.Err != nil && firstErr == nil {
			firstErr = task.Err
			continue
		}
		rawTotal += outcomes[i].rawCount
		global.Merge(outcomes[i].owned, chunks[i].StartOffset)
	}
	if firstErr != nil {
		return Outcome{}, firstErr
	}

	global.SortByStartThenEnd()
	max := p.EffectiveMax()
	if max != engine.Unlimited && uint64(global.Len()) > max {
		global.Truncate(int(max))
	}

	total := uint64(global.Len())
	if p.CountLinesMode {
		total = rawTotal
	}
	var result *matchresult.Result
	if p.TrackPositions && !p.CountLinesMode {
		result = global
	}
	return Outcome{Total: total, Result: result}, nil
}

func runEmpty(p *engine.Params, e engine.Engine) (Outcome, error) {
	var result *matchresult.Result
	if p.TrackPositions {
		result = matchresult.New(0)
	}
	count, err := e.Scan(p, nil, safeResult(result))
	if err != nil {
		return Outcome{}, fmt.Errorf("search: empty-buffer scan failed: %w", err)
	}
	return Outcome{Total: count, Result: result}, nil
}

func safeResult(r *matchresult.Result) *matchresult.Result {
	if r == nil {
		return matchresult.New(0)
	}
	return r
}

// filterOwned applies spec.md §4.8 step 5's ownership rule: a match
// belongs to its chunk only if its local start sits before the chunk's
// primary (non-overlap) end, except the chunk is the buffer's last, which
// owns everything through its own end (overlap is always 0 there anyway).
func filterOwned(local *matchresult.Result, chunk Chunk) *matchresult.Result {
	if local == nil {
		return nil
	}
	localPrimaryEnd := chunk.PrimaryEnd - chunk.StartOffset
	isLastOwnsAll := chunk.EndOffset == chunk.PrimaryEnd
	if isLastOwnsAll {
		return local
	}
	owned := matchresult.New(local.Len())
	for _, pos := range local.Positions() {
		if pos.Start < localPrimaryEnd {
			owned.Push(pos.Start, pos.End)
		}
	}
	return owned
}
