// Package vector provides a small, portable vector capability set —
// splat, load, byte-equal compare, bitwise and, and movemask — used by
// the vectorized prefilter (internal/prefilter) and the generic confirmer
// (internal/confirm).
//
// In the reference design (and in the teacher's simd package) these
// operations are backed by real SSE2/AVX2 instructions behind
// target_feature-gated assembly. No such assembly ships in this module:
// the retrieved teacher's amd64 build-tagged files declare
// //go:noescape assembly stubs with no corresponding .s file, so we
// implement the same operation shapes in plain Go instead of carrying
// forward code that can't build. The width Detect returns still follows
// CPU feature detection (16 bytes without AVX2, 32 with it), and every call site is
// written against the same {splat, load, cmpeq, and, movemask} shape a
// real SIMD backend would use, so swapping in actual vector instructions
// later only touches this file.
package vector

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Width in bytes of a vector register: 16 emulates SSE2, 32 emulates
// AVX2.
const (
	Width16 = 16
	Width32 = 32
)

var (
	detectOnce sync.Once
	bestWidth  int
)

// Detect returns the vector width to use for this process, computed
// once and cached — mirroring the "ifunc" one-shot CPU feature
// detection pattern described for this search engine: detection happens
// once at Finder-construction time, never per search call, and the
// cached choice is safe to read concurrently from any number of
// goroutines racing to initialize it.
func Detect() int {
	detectOnce.Do(func() {
		if cpu.X86.HasAVX2 {
			bestWidth = Width32
		} else {
			bestWidth = Width16
		}
	})
	return bestWidth
}

// Vec is a fixed-width byte vector supporting the operations a rare-byte
// prefilter or generic confirmer needs. The zero value is not usable;
// construct one with Splat or LoadUnaligned.
type Vec struct {
	width int
	b     [Width32]byte
}

// Splat returns a vector of the given width with every lane set to b.
func Splat(width int, b byte) Vec {
	v := Vec{width: width}
	for i := 0; i < width; i++ {
		v.b[i] = b
	}
	return v
}

// LoadUnaligned reads width bytes starting at data[0]. The caller must
// ensure len(data) >= width; this is the same "unaligned load" safety
// obligation a real SIMD load would carry, except enforced by a slice
// bounds check instead of a raw pointer computation.
func LoadUnaligned(width int, data []byte) Vec {
	v := Vec{width: width}
	copy(v.b[:width], data[:width])
	return v
}

// Width reports how many lanes this vector has.
func (v Vec) Width() int { return v.width }

// CmpEq returns a vector with 0xFF in every lane where v and other are
// equal, and 0x00 elsewhere — the byte-wise equality primitive real
// SIMD cmpeq instructions provide.
func (v Vec) CmpEq(other Vec) Vec {
	out := Vec{width: v.width}
	for i := 0; i < v.width; i++ {
		if v.b[i] == other.b[i] {
			out.b[i] = 0xFF
		}
	}
	return out
}

// And returns the bitwise AND of v and other, lane by lane.
func (v Vec) And(other Vec) Vec {
	out := Vec{width: v.width}
	for i := 0; i < v.width; i++ {
		out.b[i] = v.b[i] & other.b[i]
	}
	return out
}

// Movemask packs the high bit of every lane into a bitmask, least
// significant bit first — the same shape as x86's *movemask*
// instructions, which the CmpEq result above is designed to feed
// directly (every matching lane is 0xFF, so its high bit is always set).
func (v Vec) Movemask() uint32 {
	var mask uint32
	for i := 0; i < v.width; i++ {
		if v.b[i]&0x80 != 0 {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
