package prefilter

import (
	"github.com/coregx/memmem/internal/freq"
	"github.com/coregx/memmem/internal/vector"
)

// MinHaystackLen returns the shortest haystack VectorFind can run
// against for the given width: it must be able to load a full vector
// starting at the larger of the two rare-byte offsets.
func MinHaystackLen(ninfo freq.NeedleInfo, width int) int {
	_, hi := ninfo.OrderedOffsets()
	return hi + width
}

// VectorFind is the forward-only SIMD-shaped prefilter (the reverse
// direction has no vector variant, only ScalarRFind). It slides a
// vector-sized window over haystack, comparing both rare bytes against
// their expected offsets in parallel, and returns the first position
// where both line up.
//
// Like ScalarFind, a returned position is never past a real match, but
// may need confirmation by the caller. When the haystack is too short
// for even one full-width load, VectorFind defers to ScalarFind.
func VectorFind(state *State, ninfo freq.NeedleInfo, haystack, needle []byte, width int) (int, bool) {
	rare1i, rare2i := ninfo.OrderedOffsets()
	minLen := rare2i + width
	if len(haystack) < minLen {
		return ScalarFind(state, ninfo, haystack, needle)
	}

	b1, b2 := needle[rare1i], needle[rare2i]
	v1 := vector.Splat(width, b1)
	v2 := vector.Splat(width, b2)

	maxPos := len(haystack) - minLen
	pos := 0
	for {
		if !state.IsEffective() {
			return pos, true
		}
		if cand, ok := scanChunk(haystack, pos, rare1i, rare2i, v1, v2, width); ok {
			found := pos + cand
			state.Update(found - pos)
			return found, true
		}
		state.Update(width)
		if pos == maxPos {
			// Every window through the end of haystack has been checked
			// and none lined up: no candidate exists.
			return 0, false
		}
		pos += width
		if pos > maxPos {
			pos = maxPos
		}
	}
}

func scanChunk(haystack []byte, pos, rare1i, rare2i int, v1, v2 vector.Vec, width int) (int, bool) {
	c1 := vector.LoadUnaligned(width, haystack[pos+rare1i:])
	c2 := vector.LoadUnaligned(width, haystack[pos+rare2i:])
	combined := c1.CmpEq(v1).And(c2.CmpEq(v2))
	bits := combined.Movemask()
	if bits == 0 {
		return 0, false
	}
	return trailingZeros32(bits), true
}

func trailingZeros32(x uint32) int {
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}
