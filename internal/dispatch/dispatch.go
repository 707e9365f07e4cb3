// Package dispatch picks which search algorithm handles a given
// (needle, haystack) pair, and builds whichever internal searcher that
// choice requires. It is the single place the rest of this module
// consults to avoid re-deriving the size thresholds at every call site.
package dispatch

import (
	"github.com/coregx/memmem/internal/confirm"
	"github.com/coregx/memmem/internal/freq"
	"github.com/coregx/memmem/internal/memchr"
	"github.com/coregx/memmem/internal/prefilter"
	"github.com/coregx/memmem/internal/rabinkarp"
	"github.com/coregx/memmem/internal/twoway"
	"github.com/coregx/memmem/internal/vector"
)

// Algorithm names the strategy chosen for one needle/haystack/mode
// combination.
type Algorithm int

const (
	// Trivial handles the empty needle: always matches at position 0
	// (forward) or len(haystack) (reverse).
	Trivial Algorithm = iota
	// SingleByte scans for a one-byte needle with internal/memchr.
	SingleByte
	// RabinKarp handles haystacks too short to amortize a prefilter
	// or vector confirmer's setup cost.
	RabinKarp
	// Confirm uses the self-verifying vector confirmer for short needles.
	Confirm
	// TwoWay is the worst-case linear fallback, optionally paired with
	// a rare-byte prefilter.
	TwoWay
)

// String returns a human-readable name for the algorithm, mirroring
// the teacher's Strategy.String() idiom.
func (a Algorithm) String() string {
	switch a {
	case Trivial:
		return "Trivial"
	case SingleByte:
		return "SingleByte"
	case RabinKarp:
		return "RabinKarp"
	case Confirm:
		return "Confirm"
	case TwoWay:
		return "TwoWay"
	default:
		return "Unknown"
	}
}

// rabinKarpHaystackCeiling is the haystack length below which
// Rabin-Karp is chosen regardless of needle length: too little
// haystack for a prefilter or vector confirmer to pay for its own
// setup.
const rabinKarpHaystackCeiling = 64

// Choose selects an Algorithm for a forward search over the given
// needle and haystack lengths, per the module's dispatch table.
func Choose(needleLen, haystackLen int, usePrefilter bool) Algorithm {
	switch {
	case needleLen == 0:
		return Trivial
	case needleLen == 1:
		return SingleByte
	case haystackLen < rabinKarpHaystackCeiling:
		return RabinKarp
	case needleLen >= confirm.MinNeedleLen && needleLen <= confirm.MaxNeedleLen &&
		usePrefilter && vector.Detect() > 0:
		return Confirm
	default:
		return TwoWay
	}
}

// Reason explains why Choose returned a given Algorithm, for
// diagnostics.
func Reason(a Algorithm, needleLen, haystackLen int) string {
	switch a {
	case Trivial:
		return "empty needle always matches"
	case SingleByte:
		return "single-byte needle uses a direct byte scan"
	case RabinKarp:
		return "haystack too short to amortize a prefilter or confirmer"
	case Confirm:
		return "short needle, vector available: self-confirming scan skips Two-Way's verification cost"
	case TwoWay:
		return "needle outside the confirmer's length range, no vector support, or prefilter disabled; falling back to worst-case-linear search"
	default:
		return "unknown"
	}
}

// Forward is a constructed, ready-to-run forward searcher for one
// needle, holding whichever internal state its chosen Algorithm needs.
type Forward struct {
	algo Algorithm

	needle []byte
	ninfo  freq.NeedleInfo

	cf  confirm.Forward
	cfW int
	tw  *twoway.State
	pf  *prefilter.Prefilter
}

// NewForward builds a Forward searcher, deciding the algorithm once
// (based on needle length and prefilter availability) rather than
// per-call; the haystack-length branch of Choose is instead applied at
// Find time, since haystack length varies call to call.
func NewForward(needle []byte, usePrefilter bool) *Forward {
	f := &Forward{needle: needle}
	n := len(needle)
	if n == 0 {
		f.algo = Trivial
		return f
	}
	if n == 1 {
		f.algo = SingleByte
		return f
	}

	f.ninfo = freq.Analyze(needle, false)
	width := vector.Detect()
	if usePrefilter && n >= confirm.MinNeedleLen && n <= confirm.MaxNeedleLen && width > 0 {
		if cf, ok := confirm.New(f.ninfo, needle); ok {
			f.cf = cf
			f.cfW = width
			f.algo = Confirm
		}
	}
	if f.algo != Confirm {
		f.algo = TwoWay
		f.tw = twoway.New(needle)
		if usePrefilter && !f.ninfo.Inert {
			f.pf = prefilter.NewForward(f.ninfo)
		}
	}
	return f
}

// Find searches haystack for this Forward's needle, choosing
// Rabin-Karp for small haystacks regardless of the algorithm picked at
// construction time, per the dispatch table's haystack-length rule.
func (f *Forward) Find(haystack []byte) (int, bool) {
	n := len(f.needle)
	if n == 0 {
		return 0, true
	}
	if n == 1 {
		if i := memchr.Index(haystack, f.needle[0]); i >= 0 {
			return i, true
		}
		return 0, false
	}
	if len(haystack) < rabinKarpHaystackCeiling {
		return rabinkarp.FindWith(f.ninfo.Hash, haystack, f.needle)
	}

	if f.algo == Confirm {
		if len(haystack) >= f.cf.MinHaystackLen(f.cfW) {
			return confirm.Find(f.cf, haystack, f.needle, f.cfW)
		}
		// Haystack too short for even one vector load: fall through to
		// the Two-Way state built as a fallback would be nicer, but
		// Confirm-selected Forwards don't build one; Rabin-Karp already
		// covers anything under rabinKarpHaystackCeiling, and anything
		// at or above that easily clears MinHaystackLen for width 16,
		// so this path is unreachable in practice. Guard it anyway.
		return rabinkarp.FindWith(f.ninfo.Hash, haystack, f.needle)
	}

	if f.pf != nil {
		// Search with a private copy so every call starts from the
		// prefilter's construction-time state and f stays read-only.
		pf := *f.pf
		return f.tw.FindWithPrefilter(&pf, haystack)
	}
	return f.tw.Find(haystack)
}

// Needle returns the needle this Forward searches for.
func (f *Forward) Needle() []byte { return f.needle }

// Algorithm reports which strategy this Forward was built to use for
// haystacks at or above the Rabin-Karp ceiling.
func (f *Forward) Algorithm() Algorithm { return f.algo }

// PrefilterActive reports whether this Forward was built with a
// prefilter that is not inert. Diagnostic only; each Find works on its
// own copy of the prefilter's state, so this reflects construction-time
// eligibility and does not change as haystacks are searched.
func (f *Forward) PrefilterActive() bool {
	return f.pf != nil && f.pf.Active()
}

// Reverse is Forward for the reverse search direction. The reverse
// path never uses the vector confirmer (per the dispatch table, that
// strategy is forward-only).
type Reverse struct {
	needle []byte
	ninfo  freq.NeedleInfo
	tw     *twoway.State
	pf     *prefilter.Prefilter
}

// NewReverse builds a Reverse searcher.
func NewReverse(needle []byte, usePrefilter bool) *Reverse {
	r := &Reverse{needle: needle}
	n := len(needle)
	if n == 0 || n == 1 {
		return r
	}
	r.ninfo = freq.AnalyzeReverse(needle, false)
	r.tw = twoway.NewRev(needle)
	if usePrefilter && !r.ninfo.Inert {
		r.pf = prefilter.NewReverse(r.ninfo)
	}
	return r
}

// RFind searches haystack for this Reverse's needle, returning the
// start offset of the last occurrence.
func (r *Reverse) RFind(haystack []byte) (int, bool) {
	n := len(r.needle)
	if n == 0 {
		return len(haystack), true
	}
	if n == 1 {
		if i := memchr.LastIndex(haystack, r.needle[0]); i >= 0 {
			return i, true
		}
		return 0, false
	}
	if len(haystack) < rabinKarpHaystackCeiling {
		return rabinkarp.RFindWith(r.ninfo.Hash, haystack, r.needle)
	}
	return r.tw.RFind(haystack)
}

// Needle returns the needle this Reverse searches for.
func (r *Reverse) Needle() []byte { return r.needle }

// PrefilterActive reports whether this Reverse was built with a
// prefilter that is not inert. Diagnostic only; RFind never consults
// the reverse prefilter, so this reflects construction-time eligibility.
func (r *Reverse) PrefilterActive() bool {
	return r.pf != nil && r.pf.Active()
}
