package compare

import "testing"

func eqInt(a, b int) bool { return a == b }

func segSummary(segs []Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Type.String()
	}
	return out
}

func TestLCSIdenticalSequences(t *testing.T) {
	a := []int{1, 2, 3}
	segs, swapped := LCS(a, a, eqInt)
	if swapped {
		t.Errorf("equal-length identical sequences should not swap")
	}
	if len(segs) != 1 || segs[0].Type != Match || segs[0].Len1 != 3 {
		t.Errorf("expected a single MATCH(3) segment, got %+v", segs)
	}
}

func TestLCSDisjointSequences(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{4, 5, 6}
	segs, _ := LCS(a, b, eqInt)
	if got := segSummary(segs); len(got) != 2 || got[0] != "IN_1" || got[1] != "IN_2" {
		t.Errorf("expected IN_1 then IN_2, got %v", got)
	}
}

func TestLCSInsertInMiddle(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{1, 2, 99, 3}
	segs, _ := LCS(a, b, eqInt)
	got := segSummary(segs)
	want := []string{"MATCH", "IN_2", "MATCH"}
	if len(got) != len(want) {
		t.Fatalf("segment shape = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLCSSwapNormalizesLabels(t *testing.T) {
	// a is much longer than b, so internally the engine swaps for
	// efficiency (shorter sequence first); the returned segment types and
	// index spaces must still be expressed in terms of the caller's a/b,
	// not the internal order.
	a := []int{1, 2, 42, 3, 4, 5}
	b := []int{42}
	segs, swapped := LCS(a, b, eqInt)
	if !swapped {
		t.Fatalf("expected an internal swap when len(a) > len(b)")
	}
	var sawMatch bool
	for _, s := range segs {
		if s.Type == Match {
			sawMatch = true
			if s.Start1 != 2 || s.Len1 != 1 {
				t.Errorf("MATCH segment's a-coordinates wrong: %+v", s)
			}
			if s.Start2 != 0 || s.Len2 != 1 {
				t.Errorf("MATCH segment's b-coordinates wrong: %+v", s)
			}
		}
		if s.Type == In2 {
			t.Errorf("IN_2 segment should not appear: b is fully matched, got %+v", s)
		}
	}
	if !sawMatch {
		t.Fatalf("expected a MATCH segment, got %v", segs)
	}
}

func TestLCSEmptyBothSides(t *testing.T) {
	segs, _ := LCS([]int(nil), []int(nil), eqInt)
	if len(segs) != 0 {
		t.Errorf("expected no segments for two empty sequences, got %v", segs)
	}
}
