// Package twoway implements the Crochemore-Perrin two-way substring
// search algorithm: worst-case linear time, constant extra space,
// forward and reverse. It handles every needle of two or more bytes
// that internal/dispatch does not route to Rabin-Karp (haystacks under
// 64 bytes) or to the vectorized confirmer in internal/confirm (short
// needles, forward only, prefilter enabled).
//
// The core search loop is ported from the Go standard library's own
// internal/bytealg.TwoWayLongNeedle, generalized here to run through
// index functions instead of direct slice indexing so the same logic
// serves the reverse search direction without materializing a reversed
// copy of the needle or haystack.
package twoway

import (
	"bytes"

	"github.com/coregx/memmem/internal/prefilter"
)

// State holds the precomputed critical factorization, shift table, and
// periodicity decision for one needle and search direction. Building a
// State costs O(len(needle)); every subsequent Find/RFind call is
// O(len(haystack)) with O(1) extra space.
type State struct {
	needle  []byte
	reverse bool

	// CritPos and Period are the critical factorization's suffix start
	// and the needle's period, in the search's own orientation (for a
	// reverse State, both are computed against the needle read right
	// to left).
	CritPos int
	Period  int
	// Memory is true when the needle's two halves overlap periodically,
	// which unlocks the "memory" shift optimization (tracking how much
	// of the right half is already known to match after a shift).
	Memory bool

	shiftTable       [256]int
	nonPeriodicShift int
}

// New builds a forward State for needle.
func New(needle []byte) *State { return build(needle, false) }

// NewRev builds a State for searching needle in the reverse direction.
func NewRev(needle []byte) *State { return build(needle, true) }

func build(needle []byte, reverse bool) *State {
	s := &State{needle: needle, reverse: reverse}
	n := len(needle)
	if n == 0 {
		return s
	}

	at := s.at
	suffix, period := criticalFactorization(at, n)
	s.CritPos = suffix
	s.Period = period

	for i := range s.shiftTable {
		s.shiftTable[i] = n
	}
	for i := 0; i < n; i++ {
		s.shiftTable[at(i)] = n - i - 1
	}

	if period+suffix <= n && prefixEq(at, 0, period, suffix) {
		s.Memory = true
	} else {
		s.nonPeriodicShift = max(suffix, n-suffix) + 1
	}
	return s
}

// Needle returns the needle this State searches for, in its original
// (always forward) byte order.
func (s *State) Needle() []byte { return s.needle }

// Len returns the needle's length.
func (s *State) Len() int { return len(s.needle) }

// at returns the i'th byte of the needle in this State's search
// orientation: left to right when forward, right to left when reverse.
func (s *State) at(i int) byte {
	if s.reverse {
		return s.needle[len(s.needle)-1-i]
	}
	return s.needle[i]
}

// Find returns the index of the first occurrence of this State's
// needle in haystack.
func (s *State) Find(haystack []byte) (int, bool) {
	n := len(s.needle)
	if n == 0 {
		return 0, true
	}
	if s.reverse {
		panic("twoway: Find called on a reverse State")
	}
	haystackAt := func(i int) byte { return haystack[i] }
	return s.search(haystackAt, len(haystack))
}

// RFind returns the index of the last occurrence of this State's
// needle in haystack.
func (s *State) RFind(haystack []byte) (int, bool) {
	n := len(s.needle)
	m := len(haystack)
	if n == 0 {
		return m, true
	}
	if !s.reverse {
		panic("twoway: RFind called on a forward State")
	}
	haystackAt := func(i int) byte { return haystack[m-1-i] }
	j, ok := s.search(haystackAt, m)
	if !ok {
		return 0, false
	}
	// j is the match's start in the virtual (reversed) orientation;
	// convert back to a real, forward haystack offset.
	return m - n - j, true
}

// FindWithPrefilter is Find, but consults pf to jump to candidate
// positions while it remains effective, confirming each candidate
// directly instead of running the full two-way scan over bytes the
// prefilter has already ruled out. Once pf goes inert (or was built
// inert to begin with), the rest of the haystack is handed to Find.
//
// pf may be nil, in which case this is exactly Find.
func (s *State) FindWithPrefilter(pf *prefilter.Prefilter, haystack []byte) (int, bool) {
	n := len(s.needle)
	if n == 0 {
		return 0, true
	}
	if pf == nil || pf.IsInert() {
		return s.Find(haystack)
	}

	j := 0
	for !pf.IsInert() && pf.Active() {
		if j > len(haystack)-n {
			return 0, false
		}
		cand, ok := pf.Find(haystack[j:], s.needle)
		if !ok {
			return 0, false
		}
		j += cand
		if j > len(haystack)-n {
			return 0, false
		}
		if bytes.Equal(haystack[j:j+n], s.needle) {
			return j, true
		}
		j++
	}
	if j > len(haystack) {
		return 0, false
	}
	pos, ok := s.Find(haystack[j:])
	if !ok {
		return 0, false
	}
	return j + pos, true
}

// search runs the main two-way scan using this State's precomputed
// factorization, in whatever orientation haystackAt presents, over a
// haystack of length m.
func (s *State) search(haystackAt func(int) byte, m int) (int, bool) {
	n := len(s.needle)
	if n > m {
		return 0, false
	}
	needleAt := s.at

	if s.Memory {
		memory := 0
		for j := 0; j <= m-n; {
			shift := s.shiftTable[haystackAt(j+n-1)]
			if shift > 0 {
				if memory != 0 && shift < s.Period {
					shift = n - s.Period
				}
				memory = 0
				j += shift
				continue
			}

			i := max(s.CritPos, memory)
			for i < n-1 && needleAt(i) == haystackAt(i+j) {
				i++
			}
			if i >= n-1 {
				i = s.CritPos - 1
				o := i + j
				for memory < i+1 && needleAt(i) == haystackAt(o) {
					i--
					o--
				}
				if i < memory {
					return j, true
				}
				j += s.Period
				memory = n - s.Period
			} else {
				j += i - s.CritPos + 1
				memory = 0
			}
		}
		return 0, false
	}

	for j := 0; j <= m-n; {
		shift := s.shiftTable[haystackAt(j+n-1)]
		if shift > 0 {
			j += shift
			continue
		}
		i := s.CritPos
		for i < n-1 && needleAt(i) == haystackAt(i+j) {
			i++
		}
		if i >= n-1 {
			i = s.CritPos - 1
			for i >= 0 && needleAt(i) == haystackAt(i+j) {
				i--
			}
			if i < 0 {
				return j, true
			}
			j += s.nonPeriodicShift
		} else {
			j += i - s.CritPos + 1
		}
	}
	return 0, false
}

// criticalFactorization computes the needle's maximal-suffix critical
// factorization, ported directly from internal/bytealg's algorithm:
// two maximal-suffix computations, one under each byte ordering, with
// the larger of the two factorizations winning.
func criticalFactorization(get func(int) byte, n int) (suffix, period int) {
	ms := -1
	p := 1
	for j, k := 0, 1; j+k < n; {
		a, b := get(j+k), get(ms+k)
		switch {
		case a < b:
			j += k
			k = 1
			p = j - ms
		case a == b:
			if k != p {
				k++
			} else {
				j += p
				k = 1
			}
		default:
			ms = j
			j++
			k = 1
			p = 1
		}
	}
	p0 := p

	msr := -1
	p = 1
	for j, k := 0, 1; j+k < n; {
		a, b := get(j+k), get(msr+k)
		switch {
		case a > b:
			j += k
			k = 1
			p = j - msr
		case a == b:
			if k != p {
				k++
			} else {
				j += p
				k = 1
			}
		default:
			msr = j
			j++
			k = 1
			p = 1
		}
	}
	if msr < ms {
		return ms + 1, p0
	}
	return msr + 1, p
}

// prefixEq reports whether get[aStart:aStart+length] == get[bStart:bStart+length].
func prefixEq(get func(int) byte, aStart, bStart, length int) bool {
	for i := 0; i < length; i++ {
		if get(aStart+i) != get(bStart+i) {
			return false
		}
	}
	return true
}
