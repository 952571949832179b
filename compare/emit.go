package compare

// EmitMarkersAndAlignment walks the final block list in document order,
// pushes every per-line marker and intra-line change range into sink, and
// returns the ordered AlignmentPair sequence a caller can use to drive a
// side-by-side view. Grounded on Engine.cpp's markSection / markLineDiffs
// / markAllDiffs: an adjacent IN_1/IN_2 pair produced by the re-aligner is
// walked together and advances the block cursor by two. Every alignment
// entry covers one line on each side (or -1): around each changed line pair
// the walk emits the unpaired lines before the change (one entry each), the
// change itself (one entry pairing both lines), then the unpaired lines
// after it, rather than collapsing the whole pair into one entry. Entries
// carry no diff mask.
//
// Doc1 always corresponds to MAIN_VIEW and Doc2 to SUB_VIEW (see
// compare.go's Run); CompareOptions.OldFileView only decides which of the
// two gets the REMOVED vs ADDED marker, not which view a line lands on.
func EmitMarkersAndAlignment(ci *CompareInfo, opts CompareOptions, sink MarkerSink) []AlignmentPair {
	var out []AlignmentPair
	masks := addRemoveMasks(opts)

	i := 0
	for i < len(ci.blocks) {
		b := &ci.blocks[i]
		switch {
		case b.Type == Match:
			emitMatchBlock(ci, b, &out)
			i++
		case b.Type == In1 && i+1 < len(ci.blocks) && ci.blocks[i+1].Type == In2 && b.match.valid && ci.blocks[i+1].match.valid:
			emitChangedPair(ci, i, i+1, masks, sink, &out)
			i += 2
		case b.Type == In2 && i+1 < len(ci.blocks) && ci.blocks[i+1].Type == In1 && b.match.valid && ci.blocks[i+1].match.valid:
			emitChangedPair(ci, i+1, i, masks, sink, &out)
			i += 2
		default:
			emitPlainBlock(ci, b, masks, sink, &out)
			i++
		}
	}
	return out
}

// residualMasks bundles the normal/local marker pair for each of the IN_1
// and IN_2 sides, keyed by CompareOptions.OldFileView (which side colors as
// REMOVED vs ADDED).
type residualMasks struct {
	in1, in1Local MarkerMask
	in2, in2Local MarkerMask
}

// addRemoveMasks decides which marker (REMOVED or ADDED, plain or _LOCAL)
// an IN_1 (doc1-only) and an IN_2 (doc2-only) line each get, per
// CompareOptions.OldFileView.
func addRemoveMasks(opts CompareOptions) residualMasks {
	if opts.OldFileView == SubView {
		return residualMasks{in1: MarkerAdded, in1Local: MarkerAddedLocal, in2: MarkerRemoved, in2Local: MarkerRemovedLocal}
	}
	return residualMasks{in1: MarkerRemoved, in1Local: MarkerRemovedLocal, in2: MarkerAdded, in2Local: MarkerAddedLocal}
}

// pickMask chooses between a block-type's plain and _LOCAL marker for one
// line, based on whether CompareInfo.Uniqueness (§4.4) reports the line's
// hash also occurring somewhere in the opposite document.
func pickMask(ci *CompareInfo, b *BlockDiff, rel int, masks residualMasks) MarkerMask {
	plain, local := masks.in1, masks.in1Local
	if b.Type == In2 {
		plain, local = masks.in2, masks.in2Local
	}
	if ci.Uniqueness == nil {
		return plain
	}
	h := hashOf(ci, b, rel)
	if ci.Uniqueness.nonUniqueAcrossDocs(h, b.Type) {
		return local
	}
	return plain
}

func hashOf(ci *CompareInfo, b *BlockDiff, rel int) uint64 {
	if b.Type == In2 {
		return ci.Doc2[b.Section.Start+rel].Hash
	}
	return ci.Doc1[b.Section.Start+rel].Hash
}

func lineIndexOf(ci *CompareInfo, b *BlockDiff, rel int) int {
	if b.Type == In2 {
		return ci.Doc2[b.Section.Start+rel].Index
	}
	return ci.Doc1[b.Section.Start+rel].Index
}

func viewOf(b *BlockDiff) ViewID {
	if b.Type == In2 {
		return SubView
	}
	return MainView
}

func emitMatchBlock(ci *CompareInfo, b *BlockDiff, out *[]AlignmentPair) {
	for rel := 0; rel < b.Section.Len(); rel++ {
		doc1Line := ci.Doc1[b.Section.Start+rel].Index
		doc2Line := ci.Doc2[b.doc2Start+rel].Index
		*out = append(*out, AlignmentPair{MainLine: doc1Line, SubLine: doc2Line})
	}
}

func emitOneSidedLine(view ViewID, line int, mask MarkerMask, sink MarkerSink, out *[]AlignmentPair) {
	sink.SetLineMarker(view, line, mask)
	if view == MainView {
		*out = append(*out, AlignmentPair{MainLine: line, SubLine: -1})
	} else {
		*out = append(*out, AlignmentPair{MainLine: -1, SubLine: line})
	}
}

// emitPlainBlock emits an IN_1/IN_2 block that wasn't paired by the
// re-aligner with an adjacent opposite-type block. Any sub-ranges the move
// detector confirmed (b.moves, sorted ascending and disjoint per the §3
// invariant) are emitted as MOVED spans instead of REMOVED/ADDED; the rest
// of the block is plain added/removed lines.
func emitPlainBlock(ci *CompareInfo, b *BlockDiff, masks residualMasks, sink MarkerSink, out *[]AlignmentPair) {
	view := viewOf(b)
	n := b.Section.Len()
	for rel := 0; rel < n; {
		if m, ok := movedRun(b.moves, rel); ok {
			emitMoveSpan(ci, b, m, sink, out)
			rel = m.End
			continue
		}
		emitOneSidedLine(view, lineIndexOf(ci, b, rel), pickMask(ci, b, rel, masks), sink, out)
		rel++
	}
}

// emitChangedPair walks an adjacent IN_1/IN_2 pair the re-aligner has
// processed, emitting, in ascending per-side line order: MOVED spans for
// any sub-ranges the move detector claimed on either side (RealignBlock
// never builds candidates over those positions, so they never appear in
// changedLines), CHANGED markers with ranges for the lines the re-aligner
// paired, and REMOVED/ADDED for whatever's left over on either side.
//
// A pair's two rel-cursors don't generally reach their matched positions
// at the same step: bestAssignment's accepted pairs are only required to
// be non-crossing, not diagonal, so rel1 can have a pending pairing whose
// partner sits several positions ahead of rel2 (extra residual lines on
// side 2 before the change), or vice versa. Checking the pairing only at
// rel1==rel2 would silently drop it the moment the two cursors diverge;
// instead, whichever side currently has a pending pairing tells the walk
// which side to drain residuals from until its partner catches up.
func emitChangedPair(ci *CompareInfo, i1, i2 int, masks residualMasks, sink MarkerSink, out *[]AlignmentPair) {
	b1, b2 := &ci.blocks[i1], &ci.blocks[i2]
	n1, n2 := b1.Section.Len(), b2.Section.Len()
	view1, view2 := viewOf(b1), viewOf(b2)

	rel1, rel2 := 0, 0
	for rel1 < n1 || rel2 < n2 {
		if rel1 < n1 {
			if m, ok := movedRun(b1.moves, rel1); ok {
				emitMoveSpan(ci, b1, m, sink, out)
				rel1 = m.End
				continue
			}
		}
		if rel2 < n2 {
			if m, ok := movedRun(b2.moves, rel2); ok {
				emitMoveSpan(ci, b2, m, sink, out)
				rel2 = m.End
				continue
			}
		}

		if rel1 < n1 && rel2 < n2 {
			if target2, ok := pairedTarget(b1.changedLines, rel1, b2.Section.Start); ok {
				switch {
				case target2 == rel2:
					emitChangedLinePair(ci, b1, rel1, view1, b2, rel2, view2, sink, out)
					rel1++
					rel2++
					continue
				case target2 > rel2:
					// rel1's partner hasn't been reached yet; drain rel2's
					// residual so it can catch up.
					emitOneSidedLine(view2, lineIndexOf(ci, b2, rel2), pickMask(ci, b2, rel2, masks), sink, out)
					rel2++
					continue
				}
			} else if target1, ok := pairedTarget(b2.changedLines, rel2, b1.Section.Start); ok && target1 > rel1 {
				// Symmetric case: rel2 has a pending pairing further ahead
				// in rel1; drain rel1's residual instead.
				emitOneSidedLine(view1, lineIndexOf(ci, b1, rel1), pickMask(ci, b1, rel1, masks), sink, out)
				rel1++
				continue
			}
		}

		if rel1 < n1 {
			emitOneSidedLine(view1, lineIndexOf(ci, b1, rel1), pickMask(ci, b1, rel1, masks), sink, out)
			rel1++
		} else {
			emitOneSidedLine(view2, lineIndexOf(ci, b2, rel2), pickMask(ci, b2, rel2, masks), sink, out)
			rel2++
		}
	}
}

// pairedTarget reports the other side's rel-cursor position a changedLines
// entry for rel points to, translating its absolute otherLine back into
// that side's block-relative coordinate.
func pairedTarget(changedLines map[int]lineChange, rel, otherSectionStart int) (int, bool) {
	lc, ok := changedLines[rel]
	if !ok {
		return 0, false
	}
	return lc.otherLine - otherSectionStart, true
}

// emitChangedLinePair emits the CHANGED marker, recorded ChangeRanges and
// alignment entry for one re-aligner-paired line on each side.
func emitChangedLinePair(ci *CompareInfo, b1 *BlockDiff, rel1 int, view1 ViewID, b2 *BlockDiff, rel2 int, view2 ViewID, sink MarkerSink, out *[]AlignmentPair) {
	lc := b1.changedLines[rel1]
	l1 := lineIndexOf(ci, b1, rel1)
	l2 := lineIndexOf(ci, b2, rel2)
	sink.SetLineMarker(view1, l1, MarkerChanged)
	sink.SetLineMarker(view2, l2, MarkerChanged)
	for _, r := range lc.ranges1 {
		sink.AddChangeRange(view1, l1, r)
	}
	for _, r := range lc.ranges2 {
		sink.AddChangeRange(view2, l2, r)
	}
	if view1 == MainView {
		*out = append(*out, AlignmentPair{MainLine: l1, SubLine: l2})
	} else {
		*out = append(*out, AlignmentPair{MainLine: l2, SubLine: l1})
	}
}

// emitMoveSpan emits the MOVED_LINE/BEGIN/MID/END markers for one confirmed
// move span within block b, plus any CHANGED_LOCAL refinement the re-aligner
// or a future pass attached to individual lines inside it.
func emitMoveSpan(ci *CompareInfo, b *BlockDiff, span MoveSpan, sink MarkerSink, out *[]AlignmentPair) {
	view := viewOf(b)
	n := span.Len()
	for k := 0; k < n; k++ {
		rel := span.Start + k
		mask := MarkerMovedLine
		switch {
		case n == 1:
			mask |= MarkerMovedBegin | MarkerMovedEnd
		case k == 0:
			mask |= MarkerMovedBegin
		case k == n-1:
			mask |= MarkerMovedEnd
		default:
			mask |= MarkerMovedMid
		}
		line := lineIndexOf(ci, b, rel)
		if lc, ok := b.changedLines[rel]; ok {
			mask |= MarkerChangedLocal
			for _, r := range lc.ranges1 {
				sink.AddChangeRange(view, line, r)
			}
		}
		sink.SetLineMarker(view, line, mask)
		sink.SetMoveID(view, line, span.ID)
		if view == MainView {
			*out = append(*out, AlignmentPair{MainLine: line, SubLine: -1})
		} else {
			*out = append(*out, AlignmentPair{MainLine: -1, SubLine: line})
		}
	}
}
