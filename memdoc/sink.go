package memdoc

import "github.com/aligndiff/aligndiff/compare"

// Recorder is an in-memory compare.MarkerSink: it just accumulates every
// marker, change range and move ID it's given, keyed by view and line, for
// a caller (cmd/aligndiff's renderer, or a test) to read back afterwards.
// Grounded on compare_test.go's recordingSink fake, promoted from a
// test-only helper to the package's one concrete MarkerSink, since a
// runnable repo needs at least one real implementation and the test fake
// already had the right shape.
type Recorder struct {
	markers map[compare.ViewID]map[int]compare.MarkerMask
	ranges  map[compare.ViewID]map[int][]compare.ChangeRange
	moveID  map[compare.ViewID]map[int]int
}

var _ compare.MarkerSink = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		markers: map[compare.ViewID]map[int]compare.MarkerMask{compare.MainView: {}, compare.SubView: {}},
		ranges:  map[compare.ViewID]map[int][]compare.ChangeRange{compare.MainView: {}, compare.SubView: {}},
		moveID:  map[compare.ViewID]map[int]int{compare.MainView: {}, compare.SubView: {}},
	}
}

func (r *Recorder) SetLineMarker(view compare.ViewID, line int, mask compare.MarkerMask) {
	r.markers[view][line] |= mask
}

func (r *Recorder) AddChangeRange(view compare.ViewID, line int, rng compare.ChangeRange) {
	r.ranges[view][line] = append(r.ranges[view][line], rng)
}

func (r *Recorder) SetMoveID(view compare.ViewID, line int, moveID int) {
	r.moveID[view][line] = moveID
}

// Marker returns the accumulated mask for one line (zero if never touched).
func (r *Recorder) Marker(view compare.ViewID, line int) compare.MarkerMask {
	return r.markers[view][line]
}

// Ranges returns the intra-line change ranges recorded for one line, if any.
func (r *Recorder) Ranges(view compare.ViewID, line int) []compare.ChangeRange {
	return r.ranges[view][line]
}

// MoveID returns the move index recorded for one line, if it was part of a
// confirmed move.
func (r *Recorder) MoveID(view compare.ViewID, line int) (int, bool) {
	id, ok := r.moveID[view][line]
	return id, ok
}
