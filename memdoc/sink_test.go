package memdoc

import (
	"testing"

	"github.com/aligndiff/aligndiff/compare"
)

func TestRecorderAccumulatesMarkersRangesAndMoves(t *testing.T) {
	r := NewRecorder()
	r.SetLineMarker(compare.MainView, 3, compare.MarkerRemoved)
	r.SetLineMarker(compare.MainView, 3, compare.MarkerRemovedLocal)
	r.AddChangeRange(compare.SubView, 5, compare.ChangeRange{Start: 0, Length: 4})
	r.SetMoveID(compare.MainView, 3, 7)

	if got := r.Marker(compare.MainView, 3); got&compare.MarkerRemoved == 0 || got&compare.MarkerRemovedLocal == 0 {
		t.Errorf("Marker(main,3) = %v, want both REMOVED bits set", got)
	}
	if got := r.Ranges(compare.SubView, 5); len(got) != 1 || got[0].Length != 4 {
		t.Errorf("Ranges(sub,5) = %v, want one range of length 4", got)
	}
	id, ok := r.MoveID(compare.MainView, 3)
	if !ok || id != 7 {
		t.Errorf("MoveID(main,3) = (%d,%v), want (7,true)", id, ok)
	}
	if _, ok := r.MoveID(compare.MainView, 99); ok {
		t.Errorf("MoveID(main,99) should not be present")
	}
}
