// Package selector implements spec.md C7: a pure decision function from a
// search's Params plus a compile-time feature snapshot to the concrete
// Engine that should run it. It has no titus equivalent (titus always
// routes a rule through Hyperscan/regexp2) — this is this repo's addition
// per spec.md §2's explicit multi-algorithm dispatch scope.
package selector

import (
	"errors"

	"github.com/corelex/grepcore/pkg/automaton"
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/literal"
	"github.com/corelex/grepcore/pkg/regexengine"
	"github.com/corelex/grepcore/pkg/simdscan"
)

var (
	errNoPatterns          = errors.New("selector: no patterns in params")
	errNoCompiledRegex     = errors.New("selector: use_regex set but params.Regex is not a compiled *regexengine.Regex")
	errNoCompiledAutomaton = errors.New("selector: multiple patterns but params.Automaton is not a built *automaton.Automaton")
)

// Features is a compile-time/runtime snapshot of what acceleration this
// process can use, so Select stays a pure function of its two arguments
// and is trivially testable without faking build tags.
type Features struct {
	// CanSIMD gates the width-16/32 scanners (simdscan.Available(), which
	// is always true for the pure-Go SWAR emulation, but kept as an
	// explicit field so a caller can force the BMH/KMP fallback path).
	CanSIMD bool
	// HyperscanAvailable additionally gates using the cgo-backed
	// Hyperscan accelerator in place of the pure-Go SIMD emulation, when
	// both CanSIMD and this are true.
	HyperscanAvailable bool
}

// DefaultFeatures reports what this build can actually accelerate with.
func DefaultFeatures() Features {
	return Features{
		CanSIMD:            simdscan.Available(),
		HyperscanAvailable: simdscan.HyperscanAvailable(),
	}
}

// Select implements spec.md §4.7's decision tree. p.Regex and p.Automaton,
// when non-nil, must already be the compiled handles returned by
// regexengine.Compile / automaton.Build for p.Patterns — Select does not
// build them; it only dispatches to them.
func Select(p *engine.Params, f Features) (engine.Named, error) {
	if p.UseRegex {
		re, ok := p.Regex.(*regexengine.Regex)
		if !ok || re == nil {
			return engine.Named{}, errNoCompiledRegex
		}
		return engine.Named{Name: engine.NameRegex, Engine: re}, nil
	}

	if len(p.Patterns) > 1 {
		a, ok := p.Automaton.(*automaton.Automaton)
		if !ok || a == nil {
			return engine.Named{}, errNoCompiledAutomaton
		}
		return engine.Named{Name: engine.NameAhoCorasick, Engine: a}, nil
	}

	if len(p.Patterns) == 0 {
		return engine.Named{}, errNoPatterns
	}
	pattern := p.Patterns[0].Bytes
	plen := len(pattern)

	if plen == 1 {
		return engine.Named{Name: engine.NameByteScan1, Engine: literal.ByteScan1Engine{}}, nil
	}

	if plen <= 3 {
		if f.CanSIMD && p.CaseSensitive {
			if eng, ok := bestSIMD(pattern, p.CaseSensitive, f); ok {
				return eng, nil
			}
		}
		return engine.Named{Name: engine.NameByteScanUpTo, Engine: literal.ByteScanShortEngine{}}, nil
	}

	if plen <= 32 && f.CanSIMD {
		if eng, ok := bestSIMD(pattern, p.CaseSensitive, f); ok {
			return eng, nil
		}
	}
	if plen <= 16 && f.CanSIMD && p.CaseSensitive {
		if eng, ok := bestSIMD(pattern, p.CaseSensitive, f); ok {
			return eng, nil
		}
	}

	if plen < 8 && literal.IsRepetitive(pattern) {
		return engine.Named{Name: engine.NameKMP, Engine: literal.KMPEngine{}}, nil
	}
	return engine.Named{Name: engine.NameBMH, Engine: literal.BMHEngine{}}, nil
}

// bestSIMD picks the Hyperscan accelerator over the pure-Go width-16/32
// emulation when both are available, matching spec.md §4.7's "best
// available SIMD" / "AVX2 if available" wording — Hyperscan stands in for
// the hardware-accelerated tier, the SWAR engines for the portable one.
// Width16Engine only supports case-sensitive patterns (spec.md §4.4), so a
// case-insensitive search under 16 bytes still has to fall through to
// Width32, which supports both.
func bestSIMD(pattern []byte, caseSensitive bool, f Features) (engine.Named, bool) {
	plen := len(pattern)
	if f.HyperscanAvailable {
		hs, err := simdscan.NewHyperscanEngine(pattern, caseSensitive)
		if err == nil {
			return engine.Named{Name: engine.NameHyperscan, Engine: hs}, true
		}
	}
	if caseSensitive && plen <= simdscan.Width16MaxPatternLen {
		return engine.Named{Name: engine.NameSIMD16, Engine: simdscan.Width16Engine{}}, true
	}
	if plen <= simdscan.Width32MaxPatternLen {
		return engine.Named{Name: engine.NameSIMD32, Engine: simdscan.Width32Engine{}}, true
	}
	return engine.Named{}, false
}
