package literal

import (
	"encoding/binary"
	"math/bits"
)

// memchrSWAR finds the first occurrence of needle in haystack using the
// "SIMD within a register" zero-byte-detection trick: broadcast needle
// across a uint64, XOR with each 8-byte chunk, and use the Hacker's-Delight
// has-zero-byte formula to test all 8 lanes at once. Grounded on
// coregx-coregex/simd/memchr_generic_impl.go's memchrGeneric, which this
// repo's teacher does not carry but the pack's SIMD reference repo does;
// used as the inner loop for ByteScan1Engine's case-sensitive fast path
// over buffers long enough to amortize the broadcast setup.
func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	mask := uint64(needle) * 0x0101010101010101
	const lo8 = uint64(0x0101010101010101)
	const hi8 = uint64(0x8080808080808080)

	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		xor := chunk ^ mask
		hasZero := (xor - lo8) & ^xor & hi8
		if hasZero != 0 {
			return i + bits.TrailingZeros64(hasZero)/8
		}
		i += 8
	}
	for i < n {
		if haystack[i] == needle {
			return i
		}
		i++
	}
	return -1
}
