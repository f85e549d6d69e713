//go:build !cgo || !hyperscan

package simdscan

import (
	"fmt"

	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// HyperscanAvailable reports false on builds without cgo or the hyperscan
// build tag, mirroring
// praetorian-inc-titus/pkg/matcher/hyperscan_availability_nocgo.go.
func HyperscanAvailable() bool { return false }

// HyperscanEngine is unavailable on this build; NewHyperscanEngine always
// errors, matching praetorian-inc-titus/pkg/matcher/hyperscan_stub.go's
// shape for NewHyperscan.
type HyperscanEngine struct{}

// NewHyperscanEngine always fails on a non-cgo or non-hyperscan-tagged
// build. Callers should check HyperscanAvailable() (typically via
// pkg/selector) before constructing one.
func NewHyperscanEngine(pattern []byte, caseSensitive bool) (*HyperscanEngine, error) {
	return nil, fmt.Errorf("simdscan: hyperscan requires CGO (build with CGO_ENABLED=1 and -tags=hyperscan)")
}

// Scan is unreachable on this build since NewHyperscanEngine always errors.
func (h *HyperscanEngine) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	return 0, fmt.Errorf("simdscan: hyperscan unavailable on this build")
}

// Close is a no-op on this build.
func (h *HyperscanEngine) Close() error { return nil }
