package compare

import "sort"

// movedRun returns the move span (if any) covering block-relative position
// pos. moves is kept sorted and disjoint by appendMove, so this binary
// searches for the first span starting after pos and checks only its
// immediate predecessor (the last span starting at or before pos), the same access pattern dm/interval_set.go uses for
// its "already claimed" queries — replacing this package's formerly
// standalone intervalSet with a direct search over the MoveSpan slice
// avoided keeping a second, ID-less bookkeeping structure in sync with it.
func movedRun(moves []MoveSpan, pos int) (MoveSpan, bool) {
	i := sort.Search(len(moves), func(i int) bool { return moves[i].Start > pos })
	if i > 0 && moves[i-1].End > pos {
		return moves[i-1], true
	}
	return MoveSpan{}, false
}

func movedAt(moves []MoveSpan, pos int) bool {
	_, ok := movedRun(moves, pos)
	return ok
}

// DetectMoves cross-references every IN_1 block against every IN_2 block to
// find moved sections: runs of lines that were deleted from one place and
// re-inserted, verbatim or near-verbatim, somewhere else. Unlike a
// whole-block comparison, the search operates per line position so that a
// block can end up with some lines moved and others left in place (§3 data
// model).
//
// Grounded on original_source/src/Engine/Engine.cpp's findMoves /
// findBestMatch / resolveMatch: for every unmoved line position i in an
// IN_1 block, findBestMatch scans every opposite-type block for positions
// whose hash matches, then extends as far left and right as hashes keep
// matching and neither side is already moved, keeping the single longest
// such run (a tie between equally long runs nulls the match). resolveMatch
// then checks that the matched block's own best match for that position
// points back at the original block (a mutual best match); if it instead
// points at some third block, the search recurses into that block before
// giving up. The fixed-point repeats because confirming one pair can free
// up a better match for a block considered earlier in the same pass.
func DetectMoves(ci *CompareInfo, opts CompareOptions) {
	if !opts.DetectMoves {
		return
	}
	nextID := 0
	for {
		repeat := false
		for i := range ci.blocks {
			if ci.blocks[i].Type != In1 {
				continue
			}
			for lookupEi := 0; lookupEi < ci.blocks[i].Section.Len(); lookupEi++ {
				if m, moved := movedRun(ci.blocks[i].moves, lookupEi); moved {
					lookupEi = m.End - 1
					continue
				}

				mi, ok := findBestMatch(ci, i, lookupEi)
				if !ok {
					continue
				}
				if resolveMatch(ci, i, lookupEi, &mi, opts, &nextID) {
					repeat = true
					if mi.length > 0 {
						lookupEi = mi.lookupStart + mi.length - 1
					} else {
						lookupEi--
					}
				}
			}
		}
		if !repeat {
			break
		}
	}
}

// moveMatch is the outcome of findBestMatch: the longest run of matching
// line positions straddling the looked-up position, and where that run
// starts in both the lookup block and the matched block.
type moveMatch struct {
	lookupStart int
	matchIndex  int
	matchStart  int
	length      int
}

// findBestMatch finds, for a single line position lookupPos within block
// lookupIdx, the longest run of matching, not-yet-moved line positions in
// any block of the opposite type. Ties between equally long runs (whether
// in the same or different candidate blocks) null the match out rather
// than picking either, matching Engine.cpp's `mi.matchDiff = nullptr`
// tie branch.
func findBestMatch(ci *CompareInfo, lookupIdx, lookupPos int) (moveMatch, bool) {
	lookup := &ci.blocks[lookupIdx]
	lookupLines := blockLines(ci, lookup)
	wantType := In2
	if lookup.Type == In2 {
		wantType = In1
	}

	best := moveMatch{matchIndex: -1}
	tied := false
	localMinLen := 1

	for j := range ci.blocks {
		cand := &ci.blocks[j]
		if j == lookupIdx || cand.Type != wantType || cand.Section.Len() < localMinLen {
			continue
		}
		candLines := blockLines(ci, cand)
		matchLastUnmoved := 0

		for matchOff := 0; matchOff < len(candLines); matchOff++ {
			if candLines[matchOff].Hash != lookupLines[lookupPos].Hash {
				continue
			}
			if m, moved := movedRun(cand.moves, matchOff); moved {
				matchLastUnmoved = m.End
				matchOff = m.End - 1
				continue
			}

			lookupStart, matchStart := lookupPos-1, matchOff-1
			for lookupStart >= 0 && matchStart >= matchLastUnmoved &&
				lookupLines[lookupStart].Hash == candLines[matchStart].Hash &&
				!movedAt(lookup.moves, lookupStart) && !movedAt(cand.moves, matchStart) {
				lookupStart--
				matchStart--
			}
			lookupStart++
			matchStart++

			lookupEnd, matchEnd := lookupPos+1, matchOff+1
			for lookupEnd < len(lookupLines) && matchEnd < len(candLines) &&
				lookupLines[lookupEnd].Hash == candLines[matchEnd].Hash &&
				!movedAt(lookup.moves, lookupEnd) && !movedAt(cand.moves, matchEnd) {
				lookupEnd++
				matchEnd++
			}

			length := lookupEnd - lookupStart
			switch {
			case length > best.length:
				best = moveMatch{lookupStart: lookupStart, matchIndex: j, matchStart: matchStart, length: length}
				localMinLen = length
				tied = false
			case length == best.length:
				tied = true
			}
		}
	}

	if best.matchIndex < 0 || tied {
		return moveMatch{matchIndex: -1}, false
	}
	return best, true
}

// resolveMatch tries to confirm the match mi found for (lookupIdx,
// lookupPos) as a real move: it re-runs findBestMatch from the matched
// block's side, at the position corresponding to lookupPos, and only
// commits the move if that reverse search points back at lookupIdx (a
// mutual best match). If the reverse search instead points at some third
// block, the search recurses into that block's perspective, matching
// Engine.cpp's resolveMatch chaining rather than giving up on the first
// non-reciprocal result; mi.length is reset to 0 in that case so the
// caller knows the original position didn't itself get a confirmed run and
// should be retried.
func resolveMatch(ci *CompareInfo, lookupIdx, lookupPos int, mi *moveMatch, opts CompareOptions, nextID *int) bool {
	if mi.matchIndex < 0 || mi.length < opts.MinMatchLength {
		return false
	}

	translatedPos := mi.matchStart + (lookupPos - mi.lookupStart)

	reverseMi, ok := findBestMatch(ci, mi.matchIndex, translatedPos)
	if ok && reverseMi.matchIndex == lookupIdx {
		id := *nextID
		*nextID++
		appendMove(ci, lookupIdx, mi.lookupStart, mi.length, id)
		appendMove(ci, mi.matchIndex, mi.matchStart, mi.length, id)
		return true
	}
	if ok {
		ret := resolveMatch(ci, mi.matchIndex, translatedPos, &reverseMi, opts, nextID)
		mi.length = 0
		return ret
	}
	return false
}

// appendMove records a confirmed move span on block idx, keeping moves
// sorted ascending (the §3 invariant that moves are "sorted and disjoint").
func appendMove(ci *CompareInfo, idx, start, length, id int) {
	b := &ci.blocks[idx]
	b.moves = append(b.moves, MoveSpan{Section: Section{Start: start, End: start + length}, ID: id})
	sort.Slice(b.moves, func(i, j int) bool { return b.moves[i].Start < b.moves[j].Start })
}

// blockLines returns the NormalizedLine slice covering a block's Section.
// The LCS engine normalizes its output before returning it (see lcs.go's
// swap contract), so IN_1 always indexes Doc1 and IN_2 always indexes Doc2
// regardless of which sequence was internally treated as shorter.
func blockLines(ci *CompareInfo, b *BlockDiff) []NormalizedLine {
	if b.Type == In2 {
		return ci.Doc2[b.Section.Start:b.Section.End]
	}
	return ci.Doc1[b.Section.Start:b.Section.End]
}
