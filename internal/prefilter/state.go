package prefilter

// State tracks how effective a prefilter has been during one search, and
// renders it permanently inert once it stops skipping enough bytes to
// pay for itself.
//
// A State is created fresh per search (an iterator's repeated calls
// share one State across the whole walk of the haystack) and is never
// shared between concurrent searches.
type State struct {
	// skips is always one greater than the actual skip count; the
	// sentinel 0 means "inert; never call the prefilter again." This
	// avoids a separate boolean field.
	skips uint32
	// skipped is the cumulative number of haystack bytes skipped over.
	skipped uint32
}

// MinSkips is the minimum number of prefilter invocations to observe
// before effectiveness is judged at all — too few samples make the
// average meaningless.
const MinSkips = 50

// MinSkipBytes is the minimum average number of bytes a prefilter call
// must skip, once MinSkips samples are in, to be considered worth
// keeping around.
const MinSkipBytes = 8

// NewState returns a fresh, active prefilter state.
func NewState() State { return State{skips: 1} }

// Inert returns a state that is permanently disabled. Used when the
// needle analysis determined up front that no prefilter should run at
// all (needle too short, too long, or its rarest byte too common).
func Inert() State { return State{} }

// Update records that the last prefilter call skipped over `skipped`
// bytes before returning (or reaching the end of the haystack).
func (s *State) Update(skipped int) {
	s.skips = saturatingAdd32(s.skips, 1)
	if skipped < 0 {
		skipped = 0
	}
	s.skipped = saturatingAdd32(s.skipped, uint32clamp(skipped))
}

// IsEffective reports whether the prefilter should still be consulted.
// Once it returns false for a given State, it returns false for every
// subsequent call on that same State — effectiveness only ever turns
// off, never back on, within a single search.
func (s *State) IsEffective() bool {
	if s.isInert() {
		return false
	}
	if s.skipCount() < MinSkips {
		return true
	}
	if s.skipped >= MinSkipBytes*s.skipCount() {
		return true
	}
	s.skips = 0
	return false
}

func (s *State) isInert() bool { return s.skips == 0 }

func (s *State) skipCount() uint32 {
	if s.skips == 0 {
		return 0
	}
	return s.skips - 1
}

func saturatingAdd32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}

func uint32clamp(n int) uint32 {
	const max = ^uint32(0)
	if uint64(n) > uint64(max) {
		return max
	}
	return uint32(n)
}
