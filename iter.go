package memmem

import "github.com/coregx/memmem/internal/dispatch"

// Iterator yields every non-overlapping forward occurrence of a
// needle in a haystack, left to right. Its advancement rule is
// grounded on the reference crate's Memmem iterator: after a match at
// absolute position p, the next search resumes at
// p + max(1, len(needle)), so a zero-length needle still makes
// progress instead of matching the same position forever.
type Iterator struct {
	fwd      *dispatch.Forward
	haystack []byte
	pos      int
	done     bool
}

// Next returns the position of the next occurrence, and whether one
// was found. Once Next returns false, it returns false on every
// subsequent call.
func (it *Iterator) Next() (int, bool) {
	if it.done || it.pos > len(it.haystack) {
		it.done = true
		return 0, false
	}
	i, ok := it.fwd.Find(it.haystack[it.pos:])
	if !ok {
		it.done = true
		return 0, false
	}
	abs := it.pos + i
	step := len(it.fwd.Needle())
	if step < 1 {
		step = 1
	}
	it.pos = abs + step
	return abs, true
}

// RIterator yields every non-overlapping reverse occurrence of a
// needle in a haystack, right to left. Its advancement rule is
// grounded on the reference crate's Memrmem iterator: the search
// window's upper bound tracks the start of the most recent match,
// except when that match's start equals the current bound (only
// possible for a zero-length needle), in which case the bound steps
// back by one so the iterator still makes progress.
type RIterator struct {
	rev      *dispatch.Reverse
	haystack []byte
	pos      int
	hasPos   bool
}

// Next returns the start position of the next (searching backward)
// occurrence, and whether one was found. Once Next returns false, it
// returns false on every subsequent call.
func (it *RIterator) Next() (int, bool) {
	if !it.hasPos {
		return 0, false
	}
	start, ok := it.rev.RFind(it.haystack[:it.pos])
	if !ok {
		it.hasPos = false
		return 0, false
	}
	if it.pos == start {
		if it.pos == 0 {
			it.hasPos = false
		} else {
			it.pos--
		}
	} else {
		it.pos = start
	}
	return start, true
}
