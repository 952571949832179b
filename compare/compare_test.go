package compare

import (
	"context"
	"testing"
)

type fakeDoc struct {
	main, sub [][]byte
}

func (f *fakeDoc) LineCount(view ViewID) int {
	if view == MainView {
		return len(f.main)
	}
	return len(f.sub)
}

func (f *fakeDoc) LineBytes(view ViewID, line int) []byte {
	if view == MainView {
		return f.main[line]
	}
	return f.sub[line]
}

type recordingSink struct {
	markers map[ViewID]map[int]MarkerMask
	ranges  map[ViewID]map[int][]ChangeRange
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		markers: map[ViewID]map[int]MarkerMask{MainView: {}, SubView: {}},
		ranges:  map[ViewID]map[int][]ChangeRange{MainView: {}, SubView: {}},
	}
}

func (s *recordingSink) SetLineMarker(view ViewID, line int, mask MarkerMask) {
	s.markers[view][line] |= mask
}

func (s *recordingSink) AddChangeRange(view ViewID, line int, r ChangeRange) {
	s.ranges[view][line] = append(s.ranges[view][line], r)
}

func (s *recordingSink) SetMoveID(view ViewID, line int, moveID int) {}

func lines(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestRunIdenticalDocumentsIsMatch(t *testing.T) {
	doc := &fakeDoc{main: lines("a", "b", "c"), sub: lines("a", "b", "c")}
	res := Run(context.Background(), doc, DefaultCompareOptions, newRecordingSink(), nil)
	if res.Code != ResultMatch {
		t.Fatalf("Code = %v, want MATCH", res.Code)
	}
	if len(res.Alignment) != 3 {
		t.Fatalf("Alignment = %v, want 3 pairs", res.Alignment)
	}
}

func TestRunBothEmptyIsMatch(t *testing.T) {
	doc := &fakeDoc{}
	res := Run(context.Background(), doc, DefaultCompareOptions, newRecordingSink(), nil)
	if res.Code != ResultMatch {
		t.Fatalf("Code = %v, want MATCH", res.Code)
	}
}

func TestRunPureInsertMarksAdded(t *testing.T) {
	doc := &fakeDoc{main: lines("a", "b"), sub: lines("a", "x", "b")}
	sink := newRecordingSink()
	res := Run(context.Background(), doc, DefaultCompareOptions, sink, nil)
	if res.Code != ResultMismatch {
		t.Fatalf("Code = %v, want MISMATCH", res.Code)
	}
	if sink.markers[SubView][1]&MarkerAdded == 0 {
		t.Errorf("expected sub-view line 1 (\"x\") marked ADDED, markers=%v", sink.markers[SubView])
	}
}

func TestRunPureDeleteMarksRemoved(t *testing.T) {
	doc := &fakeDoc{main: lines("a", "x", "b"), sub: lines("a", "b")}
	sink := newRecordingSink()
	res := Run(context.Background(), doc, DefaultCompareOptions, sink, nil)
	if res.Code != ResultMismatch {
		t.Fatalf("Code = %v, want MISMATCH", res.Code)
	}
	if sink.markers[MainView][1]&MarkerRemoved == 0 {
		t.Errorf("expected main-view line 1 (\"x\") marked REMOVED, markers=%v", sink.markers[MainView])
	}
}

func TestRunDetectsMovedBlock(t *testing.T) {
	doc := &fakeDoc{
		main: lines("alpha", "beta", "gamma", "delta"),
		sub:  lines("gamma", "alpha", "beta", "delta"),
	}
	opts := DefaultCompareOptions
	opts.MinMatchLength = 1
	sink := newRecordingSink()
	res := Run(context.Background(), doc, opts, sink, nil)
	if res.Code == ResultMatch {
		t.Fatalf("expected a non-trivial result for reordered lines")
	}
	foundMove := false
	for _, m := range sink.markers[MainView] {
		if m&MarkerMovedLine != 0 {
			foundMove = true
		}
	}
	for _, m := range sink.markers[SubView] {
		if m&MarkerMovedLine != 0 {
			foundMove = true
		}
	}
	if !foundMove {
		t.Errorf("expected at least one MOVED_LINE marker, got main=%v sub=%v", sink.markers[MainView], sink.markers[SubView])
	}
}

func TestRunChangedLineGetsIntraLineRanges(t *testing.T) {
	doc := &fakeDoc{
		main: lines("foo = 1"),
		sub:  lines("foo = 2"),
	}
	sink := newRecordingSink()
	res := Run(context.Background(), doc, DefaultCompareOptions, sink, nil)
	if res.Code != ResultMismatch {
		t.Fatalf("Code = %v, want MISMATCH", res.Code)
	}
	if sink.markers[MainView][0]&MarkerChanged == 0 {
		t.Errorf("expected CHANGED marker on main line 0, got %v", sink.markers[MainView])
	}
	if len(sink.ranges[MainView][0]) == 0 {
		t.Errorf("expected at least one ChangeRange on main line 0")
	}
}

func TestRunCancellation(t *testing.T) {
	doc := &fakeDoc{main: lines("a"), sub: lines("b")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Run(ctx, doc, DefaultCompareOptions, newRecordingSink(), nil)
	if res.Code != ResultCancelled {
		t.Fatalf("Code = %v, want CANCELLED", res.Code)
	}
}

func TestFindUniqueShortcut(t *testing.T) {
	doc := &fakeDoc{main: lines("a", "b"), sub: lines("a", "b", "c")}
	res := FindUnique(doc, DefaultCompareOptions, NopProgress{})
	if res.Code != ResultMismatch {
		t.Fatalf("Code = %v, want MISMATCH", res.Code)
	}
	if res.Doc2Unique != 1 {
		t.Errorf("Doc2Unique = %d, want 1", res.Doc2Unique)
	}
	if res.Doc1Unique != 0 {
		t.Errorf("Doc1Unique = %d, want 0", res.Doc1Unique)
	}
}
