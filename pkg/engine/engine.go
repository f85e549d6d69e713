package engine

import "github.com/corelex/grepcore/pkg/matchresult"

// Engine is the single-method contract every concrete search algorithm
// (C3-C6) implements (spec.md §9: "model each engine as a value
// implementing a single method scan"). The returned uint64 is the match
// count in default/only-matching modes, or the distinct-line count in
// CountLinesMode.
type Engine interface {
	Scan(params *Params, buf []byte, result *matchresult.Result) (uint64, error)
}

// Name identifies an engine for logging/selection diagnostics without
// requiring a type switch.
type Name string

const (
	NameByteScan1    Name = "byte-scan-1"
	NameByteScanUpTo Name = "byte-scan-short"
	NameBMH          Name = "bmh"
	NameKMP          Name = "kmp"
	NameSIMD16       Name = "simd-16"
	NameSIMD32       Name = "simd-32"
	NameHyperscan    Name = "hyperscan"
	NameAhoCorasick  Name = "aho-corasick"
	NameRegex        Name = "regex"
)

// Named pairs an Engine with the Name the selector chose it under.
type Named struct {
	Name   Name
	Engine Engine
}
