// Package confirm implements a self-confirming vectorized search for
// short needles: instead of using a vector scan only as a prefilter and
// handing candidates off to Two-Way, it verifies each candidate itself
// with an inline comparison. That trade-off only pays off for small
// needles, where the comparison is cheap even under an adversarial
// input, so this is never used as a general-purpose algorithm — the
// dispatcher falls back to Two-Way once a needle gets too long for this
// to stay worst-case friendly.
package confirm

import (
	"bytes"

	"github.com/coregx/memmem/internal/freq"
	"github.com/coregx/memmem/internal/vector"
)

// MinNeedleLen and MaxNeedleLen bound the needle lengths this searcher
// supports. The upper bound of 16 (rather than the 8 one might expect
// from a single machine word) reflects that this port confirms
// candidates with bytes.Equal against the needle slice rather than a
// single integer register, so there's no reason to stop at a word
// boundary.
const (
	MinNeedleLen = 2
	MaxNeedleLen = 16
)

// Forward is a ready-to-run confirming searcher for one needle.
type Forward struct {
	rare1i, rare2i int
	nlen           int
}

// New builds a Forward searcher for needle. ok is false when needle
// falls outside [MinNeedleLen, MaxNeedleLen], or when the needle's two
// rare-byte offsets coincide (a degenerate case the dispatcher should
// route elsewhere).
func New(ninfo freq.NeedleInfo, needle []byte) (f Forward, ok bool) {
	rare1i, rare2i := ninfo.OrderedOffsets()
	n := len(needle)
	if n < MinNeedleLen || n > MaxNeedleLen || rare1i == rare2i {
		return Forward{}, false
	}
	return Forward{rare1i: rare1i, rare2i: rare2i, nlen: n}, true
}

// MinHaystackLen is the shortest haystack Find can run against for the
// given vector width.
func (f Forward) MinHaystackLen(width int) int {
	return f.rare2i + width
}

// Find searches for needle in haystack, confirming every candidate
// itself rather than deferring to another algorithm. The caller must
// ensure len(haystack) >= f.MinHaystackLen(width); dispatch falls back
// to another algorithm when the haystack is too short for this.
func Find(f Forward, haystack, needle []byte, width int) (int, bool) {
	n := f.nlen
	if len(haystack) < n {
		return 0, false
	}
	minLen := f.MinHaystackLen(width)
	if len(haystack) < minLen {
		return 0, false
	}

	rare1, rare2 := needle[f.rare1i], needle[f.rare2i]
	v1 := vector.Splat(width, rare1)
	v2 := vector.Splat(width, rare2)

	maxStart := len(haystack) - n // last valid position a full needle could start at
	maxPos := len(haystack) - minLen
	pos := 0
	for pos <= maxPos {
		if off, ok := findInChunk(haystack, needle, pos, f.rare1i, f.rare2i, v1, v2, ^uint32(0), maxStart, width); ok {
			return pos + off, true
		}
		pos += width
	}
	if pos < len(haystack) && pos > maxPos {
		overlap := pos - maxPos
		if overlap > 0 && overlap < width {
			mask := ^uint32(0) << uint(overlap)
			if off, ok := findInChunk(haystack, needle, maxPos, f.rare1i, f.rare2i, v1, v2, mask, maxStart, width); ok {
				return maxPos + off, true
			}
		}
	}
	return 0, false
}

// findInChunk scans one vector-width window starting at pos for
// positions where both rare bytes line up, and confirms each candidate
// against the full needle before accepting it.
func findInChunk(haystack, needle []byte, pos, rare1i, rare2i int, v1, v2 vector.Vec, mask uint32, maxStart, width int) (int, bool) {
	c1 := vector.LoadUnaligned(width, haystack[pos+rare1i:])
	c2 := vector.LoadUnaligned(width, haystack[pos+rare2i:])
	bits := c1.CmpEq(v1).And(c2.CmpEq(v2)).Movemask() & mask

	for bits != 0 {
		offset := trailingZeros32(bits)
		bits &= bits - 1
		candidate := pos + offset
		if candidate > maxStart {
			continue
		}
		if bytes.Equal(haystack[candidate:candidate+len(needle)], needle) {
			return offset, true
		}
	}
	return 0, false
}

func trailingZeros32(x uint32) int {
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}
