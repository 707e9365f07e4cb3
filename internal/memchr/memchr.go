// Package memchr provides a single-byte forward scan (Index) and its
// reverse equivalent (LastIndex), used internally by the scalar
// prefilter and by internal/dispatch for one-byte needles. Multi-byte
// (two/three-byte) scanning primitives and a public API are out of
// scope for this module (spec: "Single-byte and two/three-byte scanning
// primitives ... are external collaborators and are specified only at
// their interfaces"); this package exists because the scalar
// prefilter (internal/prefilter) and the one-byte-needle path of
// internal/dispatch need *some* byte scan, and keeps it internal rather
// than exporting it.
package memchr

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// Index returns the index of the first occurrence of b in haystack, or
// -1 if none exists. It uses SWAR (SIMD-within-a-register): 8 bytes are
// scanned per iteration as a single uint64, using the classic
// "subtract-and-mask" zero-byte detection trick.
func Index(haystack []byte, b byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == b {
				return i
			}
		}
		return -1
	}

	needleMask := uint64(b) * lo8
	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		xor := chunk ^ needleMask
		hasZero := (xor - lo8) &^ xor & hi8
		if hasZero != 0 {
			return i + bits.TrailingZeros64(hasZero)/8
		}
		i += 8
	}
	for ; i < n; i++ {
		if haystack[i] == b {
			return i
		}
	}
	return -1
}

// LastIndex returns the index of the last occurrence of b in haystack,
// or -1 if none exists. It scans backward in 8-byte chunks. Unlike
// Index it uses an exact per-byte zero test: the subtract-and-mask
// trick can also flag the byte just above a real match when a borrow
// propagates, which is harmless when taking the lowest flag but not
// the highest.
func LastIndex(haystack []byte, b byte) int {
	const lo7 = 0x7f7f7f7f7f7f7f7f
	n := len(haystack)
	needleMask := uint64(b) * lo8
	i := n
	for i >= 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i-8 : i])
		xor := chunk ^ needleMask
		hasZero := ^(((xor & lo7) + lo7) | xor | lo7)
		if hasZero != 0 {
			// hasZero's flag bit for window-byte j lives at bit 8j+7, so
			// the rightmost (highest j) match is the most-significant set
			// bit: LeadingZeros64 counts down from there.
			return i - 1 - bits.LeadingZeros64(hasZero)/8
		}
		i -= 8
	}
	for i > 0 {
		i--
		if haystack[i] == b {
			return i
		}
	}
	return -1
}
