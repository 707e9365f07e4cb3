package memmem

import (
	"strings"
	"testing"
)

// TestFind covers the concrete scenarios from the module's worked
// examples: simple literal, no match, needle at the boundary, and the
// empty needle/haystack edge cases.
func TestFind(t *testing.T) {
	tests := []struct {
		name             string
		haystack, needle string
		want             int
		wantOK           bool
	}{
		{"simple literal", "foo bar baz", "foo", 0, true},
		{"mid haystack", "foo bar baz", "bar", 4, true},
		{"no match", "foo bar baz", "quux", 0, false},
		{"needle at end", "foo bar baz", "baz", 8, true},
		{"empty needle", "foo", "", 0, true},
		{"empty haystack", "", "foo", 0, false},
		{"both empty", "", "", 0, true},
		{"needle longer than haystack", "ab", "abc", 0, false},
		{"single byte", "abcabc", "c", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find([]byte(tt.haystack), []byte(tt.needle))
			if ok != tt.wantOK {
				t.Fatalf("Find(%q,%q) ok = %v, want %v", tt.haystack, tt.needle, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("Find(%q,%q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestRFind(t *testing.T) {
	tests := []struct {
		name             string
		haystack, needle string
		want             int
		wantOK           bool
	}{
		{"repeated", "foo bar foo baz foo", "foo", 16, true},
		{"no match", "foo bar baz", "quux", 0, false},
		{"empty needle", "foo", "", 3, true},
		{"single byte", "abcabc", "a", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RFind([]byte(tt.haystack), []byte(tt.needle))
			if ok != tt.wantOK {
				t.Fatalf("RFind(%q,%q) ok = %v, want %v", tt.haystack, tt.needle, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("RFind(%q,%q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

// TestFindIterNonOverlapping exercises forward iteration over
// back-to-back matches. The zero-length needle case is covered by
// TestFindIterEmptyNeedleTerminates.
func TestFindIterNonOverlapping(t *testing.T) {
	it := FindIter([]byte("abcabcabc"), []byte("abc"))
	var got []int
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	want := []int{0, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestRFindIterLiteralExample is the module's worked example:
// rfind_iter(b"foo bar foo baz foo", b"foo") yields [16, 8, 0].
func TestRFindIterLiteralExample(t *testing.T) {
	it := RFindIter([]byte("foo bar foo baz foo"), []byte("foo"))
	var got []int
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	want := []int{16, 8, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFindIterEmptyNeedleTerminates(t *testing.T) {
	it := FindIter([]byte("abc"), []byte(""))
	var got []int
	for i := 0; i < 100; i++ {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	want := []int{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v (iterator may not have terminated)", got, want)
	}
}

func TestRFindIterNonOverlapping(t *testing.T) {
	it := RFindIter([]byte("abcabcabc"), []byte("abc"))
	var got []int
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	want := []int{6, 3, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRFindIterEmptyNeedleTerminates(t *testing.T) {
	it := RFindIter([]byte("abc"), []byte(""))
	var got []int
	for i := 0; i < 100; i++ {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	want := []int{3, 2, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v (iterator may not have terminated)", got, want)
	}
}

// TestFindIterAgainstNaive cross-checks FindIter's full position list
// against repeated strings.Index calls, across overlapping-looking
// patterns where non-overlapping semantics matter.
func TestFindIterAgainstNaive(t *testing.T) {
	cases := []struct{ haystack, needle string }{
		{"aaaaaaaa", "aa"},
		{"abababab", "aba"},
		{strings.Repeat("xy", 30), "xyxy"},
		{"the fox the fox the fox", "the fox"},
	}
	for _, c := range cases {
		var want []int
		h := c.haystack
		base := 0
		for {
			i := strings.Index(h, c.needle)
			if i < 0 {
				break
			}
			want = append(want, base+i)
			adv := i + len(c.needle)
			if len(c.needle) == 0 {
				adv = i + 1
			}
			h = h[adv:]
			base += adv
		}

		var got []int
		it := FindIter([]byte(c.haystack), []byte(c.needle))
		for {
			pos, ok := it.Next()
			if !ok {
				break
			}
			got = append(got, pos)
		}
		if len(got) != len(want) {
			t.Fatalf("%q/%q: got %v, want %v", c.haystack, c.needle, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%q/%q: got %v, want %v", c.haystack, c.needle, got, want)
			}
		}
	}
}

func TestFinderReuse(t *testing.T) {
	f := NewFinder([]byte("needle"))
	haystacks := []string{
		"a needle in a haystack",
		"no match here",
		"needle at the very start",
	}
	wants := []struct {
		pos int
		ok  bool
	}{
		{2, true},
		{0, false},
		{0, true},
	}
	for i, h := range haystacks {
		pos, ok := f.Find([]byte(h))
		if ok != wants[i].ok || (ok && pos != wants[i].pos) {
			t.Fatalf("Find(%q) = (%d,%v), want (%d,%v)", h, pos, ok, wants[i].pos, wants[i].ok)
		}
	}
	if string(f.Needle()) != "needle" {
		t.Fatalf("Needle() = %q", f.Needle())
	}
}

func TestFinderRevReuse(t *testing.T) {
	f := NewFinderRev([]byte("needle"))
	pos, ok := f.RFind([]byte("needle one, needle two"))
	if !ok || pos != 12 {
		t.Fatalf("RFind = (%d,%v), want (12,true)", pos, ok)
	}
}

func TestFinderBuilderKeepOwned(t *testing.T) {
	needle := []byte("mutable")
	owned := NewFinderBuilder().KeepOwned(true).Build(needle)
	needle[0] = 'X'
	if string(owned.Needle()) == string(needle) {
		t.Fatal("KeepOwned Finder should not observe mutations to the original slice")
	}
	if string(owned.Needle()) != "mutable" {
		t.Fatalf("owned needle = %q, want %q", owned.Needle(), "mutable")
	}
}

func TestFinderBuilderBorrowedSharesMutations(t *testing.T) {
	needle := []byte("mutable")
	borrowed := NewFinderBuilder().Build(needle)
	needle[0] = 'X'
	if string(borrowed.Needle()) != string(needle) {
		t.Fatal("borrowed Finder should share the caller's backing array")
	}
}

func TestFinderBuilderPrefilterNone(t *testing.T) {
	f := NewFinderBuilder().Prefilter(PrefilterNone).Build([]byte("needle"))
	if f.PrefilterActive() {
		t.Fatal("PrefilterNone should never report an active prefilter")
	}
	haystack := []byte(strings.Repeat("x", 300) + "needle" + strings.Repeat("y", 300))
	pos, ok := f.Find(haystack)
	if !ok || pos != 300 {
		t.Fatalf("Find = (%d,%v), want (300,true)", pos, ok)
	}
}

// TestFindAgainstStdlib is the cross-algorithm property test (spec
// property 9): for many needle/haystack combinations spanning every
// dispatch bucket (trivial, single-byte, Rabin-Karp, vector confirm,
// Two-Way, periodic) under the default prefilter setting, Find/RFind
// must agree with strings.Index/strings.LastIndex.
func TestFindAgainstStdlib(t *testing.T) {
	haystacks := []string{
		"",
		"x",
		"the quick brown fox jumps over the lazy dog",
		strings.Repeat("a", 500) + "target" + strings.Repeat("a", 500),
		strings.Repeat("ab", 200) + "xyzzy",
		strings.Repeat("z", 10000),
	}
	needles := []string{
		"", "x", "q", "fox", "target", "xyzzy",
		strings.Repeat("ab", 10), "nomatch-anywhere-here",
		strings.Repeat("a", 50),
	}
	for _, h := range haystacks {
		for _, n := range needles {
			want := strings.Index(h, n)
			got, ok := Find([]byte(h), []byte(n))
			if want < 0 {
				if ok {
					t.Fatalf("Find(%q,%q) = %d, want none", h, n, got)
				}
			} else if !ok || got != want {
				t.Fatalf("Find(%q,%q) = (%d,%v), want (%d,true)", h, n, got, ok, want)
			}

			wantR := strings.LastIndex(h, n)
			gotR, okR := RFind([]byte(h), []byte(n))
			if wantR < 0 {
				if okR {
					t.Fatalf("RFind(%q,%q) = %d, want none", h, n, gotR)
				}
				continue
			}
			if !okR || gotR != wantR {
				t.Fatalf("RFind(%q,%q) = (%d,%v), want (%d,true)", h, n, gotR, okR, wantR)
			}
		}
	}
}

func FuzzFindAgainstStdlib(f *testing.F) {
	seeds := [][2]string{
		{"the quick brown fox", "fox"},
		{"aaaaaaaaaa", "aa"},
		{"", ""},
		{"abcabcabc", "bca"},
	}
	for _, s := range seeds {
		f.Add(s[0], s[1])
	}
	f.Fuzz(func(t *testing.T, haystack, needle string) {
		want := strings.Index(haystack, needle)
		got, ok := Find([]byte(haystack), []byte(needle))
		if want < 0 {
			if ok {
				t.Fatalf("Find(%q,%q) = %d, want none", haystack, needle, got)
			}
			return
		}
		if !ok || got != want {
			t.Fatalf("Find(%q,%q) = (%d,%v), want (%d,true)", haystack, needle, got, ok, want)
		}
	})
}
