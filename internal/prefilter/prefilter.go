package prefilter

import (
	"github.com/coregx/memmem/internal/freq"
	"github.com/coregx/memmem/internal/vector"
)

// Prefilter is a ready-to-run rare-byte prefilter for one needle and
// search direction. It owns its own State, since a prefilter is
// consulted repeatedly across one search (and, for an iterator, across
// every step of that search).
type Prefilter struct {
	ninfo   freq.NeedleInfo
	reverse bool
	width   int // 0 means "scalar only"
	state   State
}

// NewForward builds a forward prefilter for needle from a precomputed
// NeedleInfo. If ninfo is inert, or the needle is too short for the
// rare-byte scheme to help, the returned Prefilter is permanently
// disabled and Find always reports "no information."
func NewForward(ninfo freq.NeedleInfo) *Prefilter {
	p := &Prefilter{ninfo: ninfo}
	if ninfo.Inert {
		p.state = Inert()
		return p
	}
	p.state = NewState()
	p.width = vector.Detect()
	return p
}

// NewReverse is NewForward for the reverse search direction. The
// reverse prefilter never uses the vector routine (only ScalarRFind
// exists for that direction).
func NewReverse(ninfo freq.NeedleInfo) *Prefilter {
	p := &Prefilter{ninfo: ninfo, reverse: true}
	if ninfo.Inert {
		p.state = Inert()
		return p
	}
	p.state = NewState()
	return p
}

// Active reports whether this prefilter might still produce useful
// candidates. Once false, the caller should stop consulting it for the
// rest of the search.
func (p *Prefilter) Active() bool {
	return p.state.IsEffective()
}

// Find reports a candidate forward occurrence of needle in haystack, or
// false if the prefilter has determined no occurrence is possible. A
// returned position may still need confirmation. An inert prefilter
// always returns false, which then says nothing about haystack.
func (p *Prefilter) Find(haystack, needle []byte) (int, bool) {
	if p.ninfo.Inert {
		return 0, false
	}
	if p.width > 0 && len(haystack) >= MinHaystackLen(p.ninfo, p.width) {
		return VectorFind(&p.state, p.ninfo, haystack, needle, p.width)
	}
	return ScalarFind(&p.state, p.ninfo, haystack, needle)
}

// RFind is Find for the reverse direction.
func (p *Prefilter) RFind(haystack, needle []byte) (int, bool) {
	if p.ninfo.Inert {
		return 0, false
	}
	return ScalarRFind(&p.state, p.ninfo, haystack, needle)
}

// IsInert reports whether this prefilter was built disabled and will
// never produce a candidate.
func (p *Prefilter) IsInert() bool { return p.ninfo.Inert }
