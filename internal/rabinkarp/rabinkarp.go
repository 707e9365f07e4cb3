// Package rabinkarp implements a rolling-hash exact substring matcher.
//
// It is the dispatcher's fallback for small haystacks (spec: |H| < 64),
// where Two-Way's preprocessing and the vectorized prefilter's setup cost
// would outweigh their benefit. The hash never produces false negatives
// on its own: a hash collision is always followed by a direct byte
// comparison before a position is reported.
package rabinkarp

// Hash is a 32-bit rolling polynomial hash over a sliding window. It
// represents either the hash of a needle or the hash of the haystack
// window currently being compared against it.
type Hash uint32

// NeedleHash is the hash of a needle plus the multiplicative factor
// needed to remove a byte from the front of a rolling window once the
// window slides past it.
type NeedleHash struct {
	hash Hash
	// pow2 is 2^(len-1) mod 2^32, i.e. the weight of the leading byte in
	// the rolling hash. It is used by del to cancel a byte's contribution
	// when the window advances by one.
	pow2 uint32
}

// NewNeedleHash computes the Rabin-Karp hash of needle and the factor
// required to roll it, in O(len(needle)) time.
func NewNeedleHash(needle []byte) NeedleHash {
	nh := NeedleHash{pow2: 1}
	if len(needle) == 0 {
		return nh
	}
	nh.hash = nh.hash.add(needle[0])
	for _, b := range needle[1:] {
		nh.hash = nh.hash.add(b)
		nh.pow2 <<= 1
	}
	return nh
}

// Hash returns the precomputed hash of the needle this NeedleHash was
// built from.
func (nh NeedleHash) Hash() Hash { return nh.hash }

func (h Hash) add(b byte) Hash {
	return Hash(uint32(h)<<1 + uint32(b))
}

func (h Hash) del(nh NeedleHash, b byte) Hash {
	return Hash(uint32(h) - uint32(b)*nh.pow2)
}

// roll removes the byte leaving the window (old) and adds the byte
// entering it (new), in O(1).
func (h Hash) roll(nh NeedleHash, oldByte, newByte byte) Hash {
	return h.del(nh, oldByte).add(newByte)
}

// HashBytes computes the rolling hash of an arbitrary byte window. It is
// used once, up front, to seed the first window of the haystack.
func HashBytes(window []byte) Hash {
	var h Hash
	for _, b := range window {
		h = h.add(b)
	}
	return h
}

// Find returns the first index at which needle occurs in haystack using
// Rabin-Karp, or false if it does not occur.
//
// Empty needle matches at 0; a needle longer than the haystack never
// matches.
func Find(haystack, needle []byte) (int, bool) {
	return FindWith(NewNeedleHash(needle), haystack, needle)
}

// FindWith is Find with a precomputed NeedleHash, allowing callers that
// search the same needle repeatedly to avoid recomputing it.
func FindWith(nh NeedleHash, haystack, needle []byte) (int, bool) {
	if len(needle) == 0 {
		return 0, true
	}
	if len(haystack) < len(needle) {
		return 0, false
	}
	n := len(needle)
	hash := HashBytes(haystack[:n])
	i := 0
	for {
		if hash == nh.hash && isPrefix(haystack[i:], needle) {
			return i, true
		}
		if i+n >= len(haystack) {
			return 0, false
		}
		hash = hash.roll(nh, haystack[i], haystack[i+n])
		i++
	}
}

// RFind returns the last index at which needle occurs in haystack using
// a right-to-left Rabin-Karp scan, or false if it does not occur.
//
// Empty needle matches at len(haystack).
func RFind(haystack, needle []byte) (int, bool) {
	return RFindWith(NewNeedleHashRev(needle), haystack, needle)
}

// RFindWith is RFind with a precomputed reverse NeedleHash.
func RFindWith(nh NeedleHash, haystack, needle []byte) (int, bool) {
	if len(needle) == 0 {
		return len(haystack), true
	}
	if len(haystack) < len(needle) {
		return 0, false
	}
	n := len(needle)
	last := len(haystack) - n
	hash := hashWindowRev(haystack[last:])
	i := last
	for {
		if hash == nh.hash && matchesAt(haystack, needle, i) {
			return i, true
		}
		if i == 0 {
			return 0, false
		}
		// Window slides left by one: drop haystack[i+n-1], add haystack[i-1].
		hash = hash.roll(nh, haystack[i+n-1], haystack[i-1])
		i--
	}
}

// NewNeedleHashRev computes the hash of needle read back-to-front, along
// with its rolling factor. It's used by RFind so that the hash of a
// haystack window (also read back-to-front as the window slides left)
// can be compared directly.
func NewNeedleHashRev(needle []byte) NeedleHash {
	nh := NeedleHash{pow2: 1}
	n := len(needle)
	if n == 0 {
		return nh
	}
	nh.hash = nh.hash.add(needle[n-1])
	for i := n - 2; i >= 0; i-- {
		nh.hash = nh.hash.add(needle[i])
		nh.pow2 <<= 1
	}
	return nh
}

// hashWindowRev hashes window in the same right-to-left byte order that
// NewNeedleHashRev uses, so that a window hash and a reverse needle hash
// are comparable.
func hashWindowRev(window []byte) Hash {
	var h Hash
	for i := len(window) - 1; i >= 0; i-- {
		h = h.add(window[i])
	}
	return h
}

func isPrefix(haystack, needle []byte) bool {
	if len(haystack) < len(needle) {
		return false
	}
	for i, b := range needle {
		if haystack[i] != b {
			return false
		}
	}
	return true
}

func matchesAt(haystack, needle []byte, start int) bool {
	if start+len(needle) > len(haystack) {
		return false
	}
	window := haystack[start : start+len(needle)]
	for i, b := range needle {
		if window[i] != b {
			return false
		}
	}
	return true
}
