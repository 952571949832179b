package compare

import (
	"context"
	"testing"
)

func newTestCtx() context.Context { return context.Background() }

func TestFindBestMatchTieNullsResult(t *testing.T) {
	// One IN_1 line ("needle") and two equally good IN_2 candidates:
	// neither should win, matching the tie-nulls-the-match
	// rule carried over from the original engine.
	ci := &CompareInfo{
		Doc1: []NormalizedLine{{Index: 0, Hash: 1}},
		Doc2: []NormalizedLine{{Index: 0, Hash: 1}, {Index: 1, Hash: 1}},
	}
	ci.blocks = []BlockDiff{
		{Type: In1, Section: Section{Start: 0, End: 1}},
		{Type: In2, Section: Section{Start: 0, End: 1}},
		{Type: In2, Section: Section{Start: 1, End: 2}},
	}
	_, ok := findBestMatch(ci, 0, 0)
	if ok {
		t.Errorf("expected a tie to null the match, got a confirmed best match")
	}
}

func TestFindBestMatchExtendsLeftAndRight(t *testing.T) {
	// doc1's IN_1 block is "x a b c y"; doc2's IN_2 block is "a b c", a
	// contiguous sub-run. Looking up the middle position (b) should
	// extend left and right to the full 3-line run, not just match b.
	ci := &CompareInfo{
		Doc1: []NormalizedLine{{Hash: 10}, {Hash: 1}, {Hash: 2}, {Hash: 3}, {Hash: 20}},
		Doc2: []NormalizedLine{{Hash: 1}, {Hash: 2}, {Hash: 3}},
	}
	ci.blocks = []BlockDiff{
		{Type: In1, Section: Section{Start: 0, End: 5}},
		{Type: In2, Section: Section{Start: 0, End: 3}},
	}
	mi, ok := findBestMatch(ci, 0, 2) // lookup position 2 = line "b" (hash 2)
	if !ok {
		t.Fatalf("expected a match")
	}
	if mi.lookupStart != 1 || mi.length != 3 {
		t.Errorf("got lookupStart=%d length=%d, want lookupStart=1 length=3", mi.lookupStart, mi.length)
	}
	if mi.matchStart != 0 {
		t.Errorf("got matchStart=%d, want 0", mi.matchStart)
	}
}

func TestDetectMovesAllowsPartialInBlockMoves(t *testing.T) {
	// doc1: "moved1 keep moved2"; doc2: "moved2 keep moved1" — keep stays
	// matched in place (MATCH block) while moved1 and moved2 each move to
	// the opposite side of it, so neither IN_1 nor IN_2 block is moved in
	// its entirety; a per-position detector must still find both.
	doc := &fakeDoc{
		main: lines("moved1", "moved2"),
		sub:  lines("moved2", "moved1"),
	}
	opts := DefaultCompareOptions
	opts.MinMatchLength = 1
	sink := newRecordingSink()
	res := Run(newTestCtx(), doc, opts, sink, nil)
	if res.Code == ResultMatch {
		t.Fatalf("expected a non-trivial result")
	}
	if sink.markers[MainView][0]&MarkerMovedLine == 0 {
		t.Errorf("expected main line 0 moved, got %v", sink.markers[MainView])
	}
	if sink.markers[MainView][1]&MarkerMovedLine == 0 {
		t.Errorf("expected main line 1 moved, got %v", sink.markers[MainView])
	}
}
