// Package freq picks the rare bytes a prefilter anchors on.
//
// ByteFrequencies is a static rank table (0 = rarest) derived offline
// from a representative text/code/binary corpus, in the same spirit as
// Rust's memchr crate. NeedleInfo records, for a given needle, the
// offsets of its two rarest distinct bytes plus the needle's Rabin-Karp
// hash, so that the rest of the search pipeline only ever computes this
// once per Finder.
package freq

import "github.com/coregx/memmem/internal/rabinkarp"

// ByteFrequencies maps each byte value to a rank in [0, 255]. Lower rank
// means the byte is believed to occur less often, and is thus a better
// anchor for a rare-byte prefilter. Wrong choices only cost performance,
// never correctness: every prefilter candidate is confirmed before a
// match is reported.
var ByteFrequencies = [256]byte{
	// 0x00-0x0F: control characters, generally rare.
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0,
	// 0x10-0x1F: more control characters.
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0x20-0x2F: space and punctuation. Space is by far the most common.
	255, 60, 140, 50, 40, 35, 30, 160, 130, 130, 80, 55, 200, 140, 210, 100,
	// 0x30-0x3F: digits and more punctuation.
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 100, 70, 160, 70, 50,
	// 0x40-0x4F: '@' and uppercase A-O.
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	// 0x50-0x5F: uppercase P-Z and brackets.
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	// 0x60-0x6F: backtick and lowercase a-o.
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	// 0x70-0x7F: lowercase p-z and braces.
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// 0x80-0xFF: extended/UTF-8 continuation bytes, generally rare in text.
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// Rank returns the frequency rank of b. Lower is rarer.
func Rank(b byte) byte { return ByteFrequencies[b] }

// MaxFallbackRank is the rarest-byte rank ceiling above which the
// fallback (non-vector) prefilter is not worth running: if even the
// rarest byte in the needle is this common, a byte scan skips too little
// to pay for itself.
const MaxFallbackRank = 250

// MaxNeedleLen is the largest needle length for which rare-byte offsets
// are tracked. Needles past this length use Two-Way with no prefilter;
// the offsets are stored as uint8 to keep NeedleInfo small, and there's
// little prefilter benefit to chasing rare bytes in needles this long
// anyway.
const MaxNeedleLen = 255

// NeedleInfo is precomputed once per Finder and read-only for the rest
// of its life.
type NeedleInfo struct {
	// Rare1i is the offset of the rarest byte in the needle.
	Rare1i uint8
	// Rare2i is the offset of the second rarest byte. It usually holds
	// a different byte value from Rare1i, but the two offsets coincide
	// when selection settles on one value for both: a needle of a single
	// repeated byte, or one like "zza" whose first two bytes outrank
	// every later byte.
	Rare2i uint8
	// Inert is true when rare-byte tracking was skipped (needle too
	// short, too long, or its rarest byte too common): any prefilter
	// built from this NeedleInfo must stay inert permanently.
	Inert bool
	// Hash is the needle's precomputed Rabin-Karp hash.
	Hash rabinkarp.NeedleHash
}

// Analyze computes the forward NeedleInfo for needle, choosing its two
// rarest bytes (see NeedleInfo.Rare2i for when they share a value) and
// remapping each to its first occurrence (the
// prefilter's no-false-negatives guarantee depends on anchoring at the
// earliest possible position for a given byte value).
//
// skipFirstByte begins the scan at index 1 (for needles of at least 3
// bytes), for callers that already align the needle's first byte
// separately and want the rare-byte choice to consider the rest of the
// needle instead.
func Analyze(needle []byte, skipFirstByte bool) NeedleInfo {
	hash := rabinkarp.NewNeedleHash(needle)
	if len(needle) <= 1 || len(needle) > MaxNeedleLen {
		return NeedleInfo{Inert: true, Hash: hash}
	}

	start := 0
	if skipFirstByte && len(needle) >= 3 {
		start = 1
	}
	rare1, rare1i := needle[start], start
	rare2, rare2i := needle[start+1], start+1
	if Rank(rare2) < Rank(rare1) {
		rare1, rare2 = rare2, rare1
		rare1i, rare2i = rare2i, rare1i
	}
	for i := start + 2; i < len(needle); i++ {
		b := needle[i]
		switch {
		case Rank(b) < Rank(rare1):
			rare2, rare2i = rare1, rare1i
			rare1, rare1i = b, i
		case b != rare1 && Rank(b) < Rank(rare2):
			rare2, rare2i = b, i
		}
	}

	// Remap to the first occurrence of each chosen byte value: the scan
	// above may have picked a later occurrence of a byte that also
	// appears earlier in the needle.
	rare1i = firstIndex(needle, rare1)
	rare2i = firstIndex(needle, rare2)

	inert := Rank(needle[rare1i]) > MaxFallbackRank
	return NeedleInfo{
		Rare1i: uint8(rare1i),
		Rare2i: uint8(rare2i),
		Inert:  inert,
		Hash:   hash,
	}
}

// AnalyzeReverse mirrors Analyze for the reverse search direction:
// offsets are counted from the end of the needle (0 is the last byte),
// and the needle hash is the reverse Rabin-Karp hash used by
// rabinkarp.RFind.
func AnalyzeReverse(needle []byte, skipFirstByte bool) NeedleInfo {
	hash := rabinkarp.NewNeedleHashRev(needle)
	n := len(needle)
	if n <= 1 || n > MaxNeedleLen {
		return NeedleInfo{Inert: true, Hash: hash}
	}

	start := 0
	if skipFirstByte && n >= 3 {
		start = 1
	}
	rare1i, rare2i := start, start+1
	rare1 := needle[n-rare1i-1]
	rare2 := needle[n-rare2i-1]
	if Rank(rare2) < Rank(rare1) {
		rare1, rare2 = rare2, rare1
		rare1i, rare2i = rare2i, rare1i
	}
	for i := start + 2; i < n; i++ {
		b := needle[n-i-1]
		switch {
		case Rank(b) < Rank(rare1):
			rare2, rare2i = rare1, rare1i
			rare1, rare1i = b, i
		case b != rare1 && Rank(b) < Rank(rare2):
			rare2, rare2i = b, i
		}
	}

	rare1i = firstIndexRev(needle, rare1)
	rare2i = firstIndexRev(needle, rare2)

	inert := Rank(needle[n-rare1i-1]) > MaxFallbackRank
	return NeedleInfo{
		Rare1i: uint8(rare1i),
		Rare2i: uint8(rare2i),
		Inert:  inert,
		Hash:   hash,
	}
}

// FwdRare returns the two rare bytes (by value) that this NeedleInfo
// was computed for, reading needle left to right.
func (ni NeedleInfo) FwdRare(needle []byte) (byte, byte) {
	return needle[ni.Rare1i], needle[ni.Rare2i]
}

// RevRare is FwdRare for the reverse direction: offsets are distances
// from the end of needle.
func (ni NeedleInfo) RevRare(needle []byte) (byte, byte) {
	n := len(needle)
	return needle[n-int(ni.Rare1i)-1], needle[n-int(ni.Rare2i)-1]
}

// OrderedOffsets returns (Rare1i, Rare2i) sorted ascending, for
// prefilters that only care about the two offsets spanning a window,
// not which one is rarer.
func (ni NeedleInfo) OrderedOffsets() (int, int) {
	if ni.Rare1i <= ni.Rare2i {
		return int(ni.Rare1i), int(ni.Rare2i)
	}
	return int(ni.Rare2i), int(ni.Rare1i)
}

func firstIndex(needle []byte, b byte) int {
	for i, c := range needle {
		if c == b {
			return i
		}
	}
	return 0
}

// firstIndexRev returns the smallest reverse-offset (distance from the
// end of needle) whose byte equals b. A reverse-offset of i corresponds
// to needle[len(needle)-i-1].
func firstIndexRev(needle []byte, b byte) int {
	n := len(needle)
	for i := 0; i < n; i++ {
		if needle[n-i-1] == b {
			return i
		}
	}
	return 0
}
