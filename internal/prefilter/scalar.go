package prefilter

import (
	"github.com/coregx/memmem/internal/freq"
	"github.com/coregx/memmem/internal/memchr"
)

// ScalarFind looks for a possible forward occurrence of needle in
// haystack. The returned position is never past a real match (no false
// negatives), but it may be a false positive that the caller must
// confirm.
//
// Grounded on the single-byte-scan-plus-guard-byte shape of the
// teacher's reference fallback prefilter: find the rarest byte with a
// byte scan, then check that the second-rarest byte lines up where the
// needle predicts, before committing to a candidate.
func ScalarFind(state *State, ninfo freq.NeedleInfo, haystack, needle []byte) (int, bool) {
	i := 0
	rare1i, rare2i := int(ninfo.Rare1i), int(ninfo.Rare2i)
	rare1, rare2 := ninfo.FwdRare(needle)
	for state.IsEffective() {
		found := memchr.Index(haystack[i:], rare1)
		if found == -1 {
			return 0, false
		}
		state.Update(found)
		i += found

		if i < rare1i {
			i++
			continue
		}
		aligned := i - rare1i + rare2i
		if aligned >= len(haystack) || haystack[aligned] != rare2 {
			i++
			continue
		}
		return i - rare1i, true
	}
	pos := i - rare1i
	if pos < 0 {
		pos = 0
	}
	return pos, true
}

// ScalarRFind is ScalarFind for the reverse direction: the returned
// position is the offset immediately after a possible occurrence,
// scanning from the end of haystack backward.
func ScalarRFind(state *State, ninfo freq.NeedleInfo, haystack, needle []byte) (int, bool) {
	i := len(haystack)
	rare1i, rare2i := int(ninfo.Rare1i), int(ninfo.Rare2i)
	rare1, rare2 := ninfo.RevRare(needle)
	for state.IsEffective() {
		found := memchr.LastIndex(haystack[:i], rare1)
		if found == -1 {
			return 0, false
		}
		state.Update(i - found)
		i = found

		if i+rare1i+1 > len(haystack) {
			continue
		}
		aligned := i + rare1i - rare2i
		if aligned < 0 {
			continue
		}
		if haystack[aligned] != rare2 {
			continue
		}
		return i + rare1i + 1, true
	}
	pos := i + rare1i + 1
	if pos > len(haystack) {
		pos = len(haystack)
	}
	return pos, true
}
