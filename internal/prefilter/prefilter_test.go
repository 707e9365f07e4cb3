package prefilter

import (
	"strings"
	"testing"

	"github.com/coregx/memmem/internal/freq"
)

func TestNewForwardInertNeedle(t *testing.T) {
	ninfo := freq.Analyze([]byte("a"), false) // len 1 => Inert
	p := NewForward(ninfo)
	if !p.IsInert() {
		t.Fatal("single-byte needle should produce an inert prefilter")
	}
	if _, ok := p.Find([]byte("aaaa"), []byte("a")); ok {
		t.Fatal("inert prefilter must never report a candidate")
	}
}

func TestForwardFindLocatesMatch(t *testing.T) {
	needle := []byte("needle")
	ninfo := freq.Analyze(needle, false)
	p := NewForward(ninfo)
	haystack := []byte(strings.Repeat("hay ", 200) + "needle" + strings.Repeat(" hay", 200))
	realPos := strings.Index(string(haystack), "needle")

	pos, ok := p.Find(haystack, needle)
	if !ok {
		t.Fatal("expected a candidate, got none")
	}
	if pos > realPos {
		t.Fatalf("Find = %d, skipped past real match at %d", pos, realPos)
	}
}

func TestReverseFindLocatesMatch(t *testing.T) {
	needle := []byte("needle")
	ninfo := freq.AnalyzeReverse(needle, false)
	p := NewReverse(ninfo)
	haystack := []byte(strings.Repeat("hay ", 200) + "needle" + strings.Repeat(" hay", 200))
	realEnd := strings.LastIndex(string(haystack), "needle") + len(needle)

	pos, ok := p.RFind(haystack, needle)
	if !ok {
		t.Fatal("expected a candidate, got none")
	}
	if pos < realEnd {
		t.Fatalf("RFind = %d, skipped past real match ending at %d", pos, realEnd)
	}
}

func TestVectorFindAgainstScalar(t *testing.T) {
	needle := []byte("rareXY")
	ninfo := freq.Analyze(needle, false)
	haystack := []byte(strings.Repeat("common text filler ", 50) + "rareXY" + strings.Repeat(" more filler", 50))
	realPos := strings.Index(string(haystack), "rareXY")

	for _, width := range []int{16, 32} {
		s := NewState()
		pos, ok := VectorFind(&s, ninfo, haystack, needle, width)
		if !ok {
			t.Fatalf("width %d: expected a candidate, got none", width)
		}
		if pos > realPos {
			t.Fatalf("width %d: VectorFind = %d, skipped past real match at %d", width, pos, realPos)
		}
		ss := NewState()
		spos, sok := ScalarFind(&ss, ninfo, haystack, needle)
		if sok != ok || spos != pos {
			t.Fatalf("width %d: VectorFind = (%d, %v), ScalarFind = (%d, %v)", width, pos, ok, spos, sok)
		}
	}
}

func TestVectorFindNoMatch(t *testing.T) {
	needle := []byte("zzqq")
	ninfo := freq.Analyze(needle, false)
	haystack := []byte(strings.Repeat("abcdefgh", 30))
	s := NewState()
	if _, ok := VectorFind(&s, ninfo, haystack, needle, 16); ok {
		// A true candidate is allowed only if the two rare bytes
		// genuinely never align in haystack; verify that directly.
		rare1i, rare2i := ninfo.OrderedOffsets()
		b1, b2 := needle[rare1i], needle[rare2i]
		for i := 0; i+rare2i < len(haystack); i++ {
			if haystack[i+rare1i] == b1 && haystack[i+rare2i] == b2 {
				return
			}
		}
		t.Fatal("VectorFind reported a candidate where no byte alignment exists")
	}
}
