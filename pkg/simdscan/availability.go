package simdscan

// Available reports whether the SWAR-emulated width-16/32 engines can run.
// Unlike praetorian-inc-titus's Hyperscan path, this portable implementation
// has no missing native library to probe for, so it is always true; it
// exists so pkg/selector has a single feature-detection seam to call,
// matching the shape of HyperscanAvailable.
func Available() bool { return true }
