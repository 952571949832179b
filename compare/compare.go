package compare

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
)

// Run performs a full comparison of the two views a TextProvider exposes
// and pushes the result into sink, returning the outcome and the
// cross-document alignment map. Grounded on dm/diff.go's PerformDiff for
// phase sequencing and Engine.cpp's runCompare/compareViews for the exact
// short-circuit conditions: both documents empty, or the LCS finding a
// single MATCH block spanning both in full, are reported as MATCH without
// running move detection or re-alignment at all.
func Run(ctx context.Context, tp TextProvider, opts CompareOptions, sink MarkerSink, prog Progress) Result {
	if prog == nil {
		prog = NopProgress{}
	}
	p := ctxProgress{ctx: ctx, inner: prog}

	p.Phase("extract")
	doc1 := ExtractLines(tp, MainView, opts.Selection1, opts, p)
	if p.Cancelled() {
		return Result{Code: ResultCancelled}
	}
	doc2 := ExtractLines(tp, SubView, opts.Selection2, opts, p)
	if p.Cancelled() {
		return Result{Code: ResultCancelled}
	}

	if len(doc1) == 0 && len(doc2) == 0 {
		return Result{Code: ResultMatch}
	}

	p.Phase("lcs")
	segs, swapped := LCS(doc1, doc2, func(x, y NormalizedLine) bool { return x.Hash == y.Hash })
	if p.Cancelled() {
		return Result{Code: ResultCancelled}
	}

	ci := &CompareInfo{Doc1: doc1, Doc2: doc2, Swapped: swapped}
	buildBlocks(ci, segs)

	if glog.V(2) {
		glog.Info(spew.Sdump(ci.blocks))
	}

	if len(ci.blocks) == 1 && ci.blocks[0].Type == Match {
		return Result{Code: ResultMatch, Alignment: EmitMarkersAndAlignment(ci, opts, sink)}
	}

	p.Phase("uniqueness")
	ci.Uniqueness = BuildUniquenessIndex(doc1, doc2)

	p.Phase("find-moves")
	DetectMoves(ci, opts)
	if p.Cancelled() {
		return Result{Code: ResultCancelled}
	}

	if opts.DetectSubLines {
		p.Phase("realign")
		realignAdjacentPairs(ci, tp, opts, p)
		if p.Cancelled() {
			return Result{Code: ResultCancelled}
		}
	}

	p.Phase("emit")
	alignment := EmitMarkersAndAlignment(ci, opts, sink)

	code := ResultMismatch
	if allMatch(ci.blocks) {
		code = ResultMatch
	}
	return Result{Code: code, Alignment: alignment}
}

func allMatch(blocks []BlockDiff) bool {
	for _, b := range blocks {
		if b.Type != Match {
			return false
		}
	}
	return true
}

// buildBlocks converts the LCS engine's Segment list into the CompareInfo
// block arena, one BlockDiff per segment, preserving segment order (the
// arena's iteration order is the document's top-to-bottom order, which
// every later phase relies on).
func buildBlocks(ci *CompareInfo, segs []Segment) {
	ci.blocks = make([]BlockDiff, 0, len(segs))
	for _, s := range segs {
		switch s.Type {
		case Match:
			ci.blocks = append(ci.blocks, BlockDiff{
				Type:      Match,
				Section:   Section{Start: s.Start1, End: s.Start1 + s.Len1},
				doc2Start: s.Start2,
			})
		case In1:
			ci.blocks = append(ci.blocks, BlockDiff{
				Type:    In1,
				Section: Section{Start: s.Start1, End: s.Start1 + s.Len1},
			})
		case In2:
			ci.blocks = append(ci.blocks, BlockDiff{
				Type:    In2,
				Section: Section{Start: s.Start2, End: s.Start2 + s.Len2},
			})
		}
	}
}

// realignAdjacentPairs runs the block re-aligner over every adjacent
// IN_1/IN_2 (or IN_2/IN_1) boundary whose blocks are not already paired by
// an earlier RealignBlock call, the only place re-alignment is meaningful:
// a block that border-shares no opposite-type neighbor has nothing to align
// against. Lines the move detector claimed are skipped inside RealignBlock.
func realignAdjacentPairs(ci *CompareInfo, tp TextProvider, opts CompareOptions, prog Progress) {
	for i := 0; i+1 < len(ci.blocks); i++ {
		if prog.Cancelled() {
			return
		}
		a, b := &ci.blocks[i], &ci.blocks[i+1]
		if a.match.valid || b.match.valid {
			continue
		}
		if a.Type == In1 && b.Type == In2 {
			RealignBlock(ci, tp, i, i+1, opts)
		} else if a.Type == In2 && b.Type == In1 {
			RealignBlock(ci, tp, i+1, i, opts)
		}
	}
}
