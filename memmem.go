// Package memmem implements byte-level substring search: worst-case
// linear-time Two-Way matching, a rare-byte vectorized prefilter with
// adaptive effectiveness tracking, a self-confirming vectorized scan
// for short needles, and a Rabin-Karp fallback for small haystacks.
//
// Unlike stdlib strings/bytes, memmem exposes both forward and reverse
// search plus allocation-free iteration over every non-overlapping
// occurrence, and picks among its internal algorithms automatically
// based on needle and haystack size (see internal/dispatch).
//
// Basic usage:
//
//	pos, ok := memmem.Find([]byte("the quick brown fox"), []byte("brown"))
//	if ok {
//	    fmt.Println(pos) // 10
//	}
//
// Reusing a compiled Finder amortizes the needle analysis (rare-byte
// ranking, critical factorization) across many Find calls:
//
//	f := memmem.NewFinder([]byte("needle"))
//	for _, h := range haystacks {
//	    if pos, ok := f.Find(h); ok {
//	        fmt.Println(pos)
//	    }
//	}
package memmem

import (
	"github.com/coregx/memmem/internal/dispatch"
)

// Find returns the index of the first occurrence of needle in
// haystack, and whether one was found.
func Find(haystack, needle []byte) (int, bool) {
	return dispatch.NewForward(needle, true).Find(haystack)
}

// RFind returns the start index of the last occurrence of needle in
// haystack, and whether one was found.
func RFind(haystack, needle []byte) (int, bool) {
	return dispatch.NewReverse(needle, true).RFind(haystack)
}

// FindIter returns an Iterator over every non-overlapping occurrence
// of needle in haystack, left to right.
func FindIter(haystack, needle []byte) *Iterator {
	return NewFinder(needle).FindIter(haystack)
}

// RFindIter returns an RIterator over every non-overlapping occurrence
// of needle in haystack, right to left.
func RFindIter(haystack, needle []byte) *RIterator {
	return NewFinderRev(needle).RFindIter(haystack)
}

// PrefilterMode selects whether a Finder built via FinderBuilder uses
// the rare-byte prefilter.
type PrefilterMode int

const (
	// PrefilterAuto lets the Finder decide, based on needle shape, per
	// the dispatch table (the default for NewFinder/NewFinderRev).
	PrefilterAuto PrefilterMode = iota
	// PrefilterNone disables the prefilter and the vector confirmer,
	// forcing a plain Two-Way scan for needles of two or more bytes
	// (Rabin-Karp still handles haystacks shorter than 64 bytes).
	// Useful for benchmarking or when the caller knows the haystack is
	// adversarial to rare-byte skipping (e.g. highly repetitive data).
	PrefilterNone
)

// Finder is a needle compiled once for repeated forward searches. A
// Finder is safe for concurrent use by multiple goroutines: Find and
// FindIter only read the precomputed search state.
type Finder struct {
	needle []byte
	fwd    *dispatch.Forward
}

// NewFinder compiles needle for forward search, with the prefilter
// enabled when the dispatch table would use one.
func NewFinder(needle []byte) *Finder {
	return NewFinderBuilder().Build(needle)
}

// Find searches haystack for f's needle.
func (f *Finder) Find(haystack []byte) (int, bool) {
	return f.fwd.Find(haystack)
}

// FindIter returns an Iterator over every non-overlapping occurrence
// of f's needle in haystack.
func (f *Finder) FindIter(haystack []byte) *Iterator {
	return &Iterator{fwd: f.fwd, haystack: haystack}
}

// Needle returns the needle this Finder searches for. The returned
// slice must not be modified.
func (f *Finder) Needle() []byte { return f.needle }

// PrefilterActive reports whether f was built with a rare-byte
// prefilter that is not inert. Each search starts from fresh prefilter
// state, so the result does not change as haystacks are searched.
// Diagnostic only: it has no effect on correctness and exists to let
// callers profile prefilter behavior, mirroring the teacher's
// prefilter instrumentation.
func (f *Finder) PrefilterActive() bool { return f.fwd.PrefilterActive() }

// FinderRev is a needle compiled once for repeated reverse searches.
type FinderRev struct {
	needle []byte
	rev    *dispatch.Reverse
}

// NewFinderRev compiles needle for reverse search.
func NewFinderRev(needle []byte) *FinderRev {
	return NewFinderBuilder().BuildRev(needle)
}

// RFind searches haystack for f's needle, returning the start index
// of the last occurrence.
func (f *FinderRev) RFind(haystack []byte) (int, bool) {
	return f.rev.RFind(haystack)
}

// RFindIter returns an RIterator over every non-overlapping occurrence
// of f's needle in haystack, right to left.
func (f *FinderRev) RFindIter(haystack []byte) *RIterator {
	return &RIterator{rev: f.rev, haystack: haystack, pos: len(haystack), hasPos: true}
}

// Needle returns the needle this FinderRev searches for. The returned
// slice must not be modified.
func (f *FinderRev) Needle() []byte { return f.needle }

// PrefilterActive reports whether f was built with a rare-byte
// prefilter that is not inert. Diagnostic only; see Finder.PrefilterActive.
func (f *FinderRev) PrefilterActive() bool { return f.rev.PrefilterActive() }

// FinderBuilder configures Finder/FinderRev construction: whether to
// use the rare-byte prefilter, and whether to take ownership of the
// needle bytes rather than borrow the caller's slice.
type FinderBuilder struct {
	mode      PrefilterMode
	keepOwned bool
}

// NewFinderBuilder returns a builder with the default configuration
// (PrefilterAuto, borrowed needle).
func NewFinderBuilder() *FinderBuilder {
	return &FinderBuilder{mode: PrefilterAuto}
}

// Prefilter sets the prefilter mode used by Build/BuildRev.
func (b *FinderBuilder) Prefilter(mode PrefilterMode) *FinderBuilder {
	b.mode = mode
	return b
}

// KeepOwned controls whether Build/BuildRev copy the needle into
// memory owned by the resulting Finder/FinderRev, rather than
// borrowing the caller's slice. Enable this when the needle comes
// from a buffer the caller will reuse or mutate after building the
// Finder.
func (b *FinderBuilder) KeepOwned(keep bool) *FinderBuilder {
	b.keepOwned = keep
	return b
}

func (b *FinderBuilder) needleFor(needle []byte) []byte {
	if !b.keepOwned {
		return needle
	}
	owned := make([]byte, len(needle))
	copy(owned, needle)
	return owned
}

// Build compiles needle into a forward Finder per this builder's
// configuration.
func (b *FinderBuilder) Build(needle []byte) *Finder {
	n := b.needleFor(needle)
	return &Finder{needle: n, fwd: dispatch.NewForward(n, b.mode == PrefilterAuto)}
}

// BuildRev compiles needle into a reverse FinderRev per this
// builder's configuration.
func (b *FinderBuilder) BuildRev(needle []byte) *FinderRev {
	n := b.needleFor(needle)
	return &FinderRev{needle: n, rev: dispatch.NewReverse(n, b.mode == PrefilterAuto)}
}
