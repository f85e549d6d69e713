//go:build cgo && hyperscan

package simdscan

import (
	"fmt"

	"github.com/flier/gohs/hyperscan"

	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// HyperscanAvailable reports true on a cgo build tagged with hyperscan,
// mirroring praetorian-inc-titus/pkg/matcher/hyperscan_availability_cgo.go.
func HyperscanAvailable() bool { return true }

// HyperscanEngine is the genuine hardware-accelerated instance of spec.md
// C4's "SIMD-accelerated scan": it compiles the pattern set into a Hyperscan
// block database once and streams offsets back through the same
// engine.Tracker every other literal/SIMD engine uses, so match acceptance
// (whole-word, count_lines_mode, max_count) stays identical regardless of
// which engine produced the raw offset.
type HyperscanEngine struct {
	db      hyperscan.BlockDatabase
	scratch *hyperscan.Scratch
	plen    int
}

// NewHyperscanEngine compiles a single literal pattern for repeated Scan
// calls. Hyperscan's match callback reports end offsets only when SomLeftMost
// is not requested; this engine asks for SomLeftMost explicitly so accepted
// matches carry accurate (start,end) pairs without titus's two-stage capture
// workaround, since grepcore patterns have no capture groups to extract.
func NewHyperscanEngine(pattern []byte, caseSensitive bool) (*HyperscanEngine, error) {
	flags := hyperscan.SomLeftMost
	if !caseSensitive {
		flags |= hyperscan.Caseless
	}
	p := hyperscan.NewPattern(string(pattern), flags)
	db, err := hyperscan.NewBlockDatabase(p)
	if err != nil {
		return nil, fmt.Errorf("simdscan: hyperscan compile failed: %w", err)
	}
	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("simdscan: hyperscan scratch failed: %w", err)
	}
	return &HyperscanEngine{db: db, scratch: scratch, plen: len(pattern)}, nil
}

var errMaxCountReached = fmt.Errorf("simdscan: max_count reached")

// Scan implements engine.Engine.
func (h *HyperscanEngine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	tracker := engine.NewTracker(p, result)
	onMatch := func(id uint, from, to uint64, flags uint, context interface{}) error {
		_, stop := tracker.Accept(buf, int(from), int(to))
		if stop {
			return errMaxCountReached
		}
		return nil
	}
	if err := h.db.Scan(buf, h.scratch, onMatch, nil); err != nil && err != errMaxCountReached {
		return tracker.Count(), fmt.Errorf("simdscan: hyperscan scan failed: %w", err)
	}
	return tracker.Count(), nil
}

// Close releases the compiled database and scratch space.
func (h *HyperscanEngine) Close() error {
	if h.scratch != nil {
		if err := h.scratch.Free(); err != nil {
			return err
		}
		h.scratch = nil
	}
	if h.db != nil {
		if err := h.db.Close(); err != nil {
			return err
		}
		h.db = nil
	}
	return nil
}
