package compare

import (
	"sort"

	"github.com/golang/glog"
)

// convergenceCandidate is one scored (line1,line2) pairing between an IN_1
// and an adjacent IN_2 block, ordered the way Engine.cpp's compareBlocks
// conv_key set is: highest convergence first, then by line1, then by
// line2, so that ties break deterministically and the greedy walk below
// always prefers the strongest, earliest candidate.
type convergenceCandidate struct {
	line1, line2 int
	convergence  float64
	// weight is convergence nudged by a tiny uniqueness bonus (§4.4's
	// UniquenessIndex): among candidates whose word-level convergence is
	// otherwise indistinguishable, one anchored on a rarer line pair is a
	// more trustworthy correspondence than one anchored on boilerplate that
	// recurs throughout both documents. The nudge is small enough that it
	// only ever breaks near-ties; a genuinely higher-convergence candidate
	// still always sorts and scores first.
	weight float64
}

// uniquenessBonusScale bounds how much rarity can shift a candidate's
// effective score: small relative to the [0,1] convergence range, so it
// only resolves ties rather than overriding real convergence differences.
const uniquenessBonusScale = 1e-6

func sortCandidates(cands []convergenceCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		if a.line1 != b.line1 {
			return a.line1 < b.line1
		}
		return a.line2 < b.line2
	})
}

// RealignBlock re-aligns the lines of one IN_1 block against an adjacent
// IN_2 block: it scores every (line1,line2) pair by word-level similarity,
// then builds a greedy non-crossing assignment (a match for line1=i,
// line2=j forbids any later match with line1>i,line2<=j or line1<=i,
// line2>j, preserving left-to-right order) starting from every candidate
// in turn, keeping whichever assignment's convergence-sum is highest
// (bestAssignment, §4.6 step 3), and then refines each accepted pair at
// word and character granularity to produce ChangeRanges. Grounded on
// Engine.cpp's compareBlocks (candidate scoring + restart-from-every-
// candidate greedy assignment) and compareLines (intra-line refinement,
// including the low-convergence whole-pair rejection at the end).
func RealignBlock(ci *CompareInfo, tp TextProvider, in1Idx, in2Idx int, opts CompareOptions) {
	b1, b2 := &ci.blocks[in1Idx], &ci.blocks[in2Idx]
	lines1 := blockLines(ci, b1)
	lines2 := blockLines(ci, b2)
	view1, view2 := blockView(ci, b1), blockView(ci, b2)

	var cands []convergenceCandidate
	for i := range lines1 {
		if movedAt(b1.moves, i) {
			continue
		}
		for j := range lines2 {
			if movedAt(b2.moves, j) {
				continue
			}
			line1 := tp.LineBytes(view1, lines1[i].Index)
			line2 := tp.LineBytes(view2, lines2[j].Index)
			if len(line1) == 0 || len(line2) == 0 {
				continue
			}
			// Character-count prefilter (§4.6 step 1): cheap rejection of
			// wildly mismatched line lengths before paying for word LCS.
			shortLen, longLen := minInt(len(line1), len(line2)), maxInt(len(line1), len(line2))
			if shortLen*100/longLen < opts.MatchPercentThreshold {
				continue
			}
			conv := wordConvergence(line1, line2, opts)
			if conv*100 >= float64(opts.MatchPercentThreshold) {
				weight := conv
				if ci.Uniqueness != nil {
					h1 := lines1[i].Hash
					h2 := lines2[j].Hash
					rarity := ci.Uniqueness.Rarity(h1) + ci.Uniqueness.Rarity(h2)
					weight += uniquenessBonusScale / float64(1+rarity)
				}
				cands = append(cands, convergenceCandidate{line1: i, line2: j, convergence: conv, weight: weight})
			}
		}
	}
	sortCandidates(cands)
	accepted := bestAssignment(cands)

	if b1.changedLines == nil {
		b1.changedLines = map[int]lineChange{}
	}
	if b2.changedLines == nil {
		b2.changedLines = map[int]lineChange{}
	}

	for i, j := range accepted {
		line1 := tp.LineBytes(view1, lines1[i].Index)
		line2 := tp.LineBytes(view2, lines2[j].Index)
		ranges1, ranges2, conv := refineLine(line1, line2, opts)
		if conv*100 < float64(opts.MatchPercentThreshold) {
			glog.V(1).Infof("RealignBlock: rejecting low-convergence pair (%d,%d) conv=%.2f", i, j, conv)
			continue
		}
		b1.changedLines[i] = lineChange{otherLine: b2.Section.Start + j, ranges1: ranges1, ranges2: ranges2, converged: true}
		b2.changedLines[j] = lineChange{otherLine: b1.Section.Start + i, ranges1: ranges2, ranges2: ranges1, converged: true}
	}

	// Mark both blocks as handled regardless of how many individual lines
	// converged, so compare.go's realignAdjacentPairs never re-pairs either
	// one with a further neighbor (the §3 matchBlock symmetry invariant).
	b1.match = matchBlockRef{valid: true, index: in2Idx}
	b2.match = matchBlockRef{valid: true, index: in1Idx}
}

// bestAssignment tries every candidate in cands as the forced first pick of
// a greedy monotonic assignment, builds out each such assignment over the
// rest of the (already convergence-sorted) list, and keeps whichever scores
// highest by convergence-sum (§4.6 step 3). A single greedy pass starting
// from cands[0] (the highest-convergence candidate overall) can lock that
// pair in and thereby exclude a cluster of slightly-lower-scoring pairs
// that, taken together, converge more of the two lines than the lone
// top pick plus whatever survives around it — re-starting from every
// candidate explores that trade-off instead of committing to the first
// pass's local optimum. Grounded on Engine.cpp's compareBlocks, which
// re-runs its assignment search from every candidate this same way.
func bestAssignment(cands []convergenceCandidate) map[int]int {
	best := map[int]int{}
	bestScore := -1.0
	for start := range cands {
		cand, score := greedyAssignmentFrom(cands, start)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// greedyAssignmentFrom forces cands[start] into the assignment, then walks
// the rest of cands in convergence order, accepting every candidate that
// doesn't reuse a line already claimed and doesn't cross (in line-index
// order) anything already accepted.
func greedyAssignmentFrom(cands []convergenceCandidate, start int) (map[int]int, float64) {
	seed := cands[start]
	accepted := map[int]int{seed.line1: seed.line2}
	score := seed.weight
	for i, c := range cands {
		if i == start {
			continue
		}
		if _, used := accepted[c.line1]; used {
			continue
		}
		if lineAlreadyUsed(accepted, c.line2) {
			continue
		}
		if violatesOrder(accepted, c.line1, c.line2) {
			continue
		}
		accepted[c.line1] = c.line2
		score += c.weight
	}
	return accepted, score
}

func lineAlreadyUsed(accepted map[int]int, j int) bool {
	for _, v := range accepted {
		if v == j {
			return true
		}
	}
	return false
}

// violatesOrder reports whether adding (i,j) would cross an already
// accepted pairing, which would imply the two lines were visually
// reordered without being reported as a move.
func violatesOrder(accepted map[int]int, i, j int) bool {
	for ai, aj := range accepted {
		if ai < i && aj >= j {
			return true
		}
		if ai > i && aj <= j {
			return true
		}
	}
	return false
}

// blockView returns which document view a block's lines come from: Doc1
// lines were extracted from MAIN_VIEW, Doc2 from SUB_VIEW (see
// compare.go's Run), and that mapping is fixed regardless of any internal
// LCS swap (see blockLines).
func blockView(ci *CompareInfo, b *BlockDiff) ViewID {
	if b.Type == In2 {
		return SubView
	}
	return MainView
}

// wordConvergence scores how similar two lines are by word-hash overlap,
// used to rank candidate pairings. refineLine's final acceptance check
// computes its own byte-based convergence instead.
func wordConvergence(line1, line2 []byte, opts CompareOptions) float64 {
	w1 := ExtractWords(line1, opts)
	w2 := ExtractWords(line2, opts)
	if len(w1) == 0 && len(w2) == 0 {
		return 1
	}
	segs, _ := LCS(w1, w2, func(x, y Word) bool { return x.Hash == y.Hash })
	matched := 0
	for _, s := range segs {
		if s.Type == Match {
			matched += s.Len1
		}
	}
	return 2 * float64(matched) / float64(len(w1)+len(w2))
}

// refineLine computes intra-line ChangeRanges for a pair of lines already
// accepted as corresponding, via word-granularity LCS. An unmatched word
// run on one side with no opposite-side run adjacent to it (a pure
// insertion or deletion within the line) is reported as one whole
// ChangeRange; an IN_1 run immediately followed by an IN_2 run (a
// substitution) instead goes to refineSubstitution for char-level
// drill-down. Falls back to a common-prefix/suffix diff when the
// word-level LCS finds no anchor at all (e.g. two totally different short
// lines), matching Engine.cpp's compareLines fallback.
func refineLine(line1, line2 []byte, opts CompareOptions) (ranges1, ranges2 []ChangeRange, convergence float64) {
	w1 := ExtractWords(line1, opts)
	w2 := ExtractWords(line2, opts)
	segs, _ := LCS(w1, w2, func(x, y Word) bool { return x.Hash == y.Hash })

	matchedLen := 0
	i := 0
	for i < len(segs) {
		seg := segs[i]
		switch seg.Type {
		case Match:
			for k := 0; k < seg.Len1; k++ {
				matchedLen += w1[seg.Start1+k].Length
			}
			i++
		case In1:
			// An IN_1 word run immediately followed by an IN_2 run is a
			// substitution (§4.6 step 4); with CharPrecision on, drill into
			// the replaced byte ranges instead of marking the whole words
			// changed.
			if opts.CharPrecision && i+1 < len(segs) && segs[i+1].Type == In2 {
				matchedLen += refineSubstitution(line1, w1, seg, line2, w2, segs[i+1], opts, &ranges1, &ranges2)
				i += 2
				continue
			}
			markWordRunChanged(w1, seg.Start1, seg.Len1, &ranges1)
			i++
		case In2:
			markWordRunChanged(w2, seg.Start2, seg.Len2, &ranges2)
			i++
		}
	}

	if len(ranges1) == 0 && len(ranges2) == 0 && (len(line1) != 0 || len(line2) != 0) {
		// Every word matched under the active options, so the word-level
		// pass reported nothing; fall back to a common-prefix/suffix byte
		// comparison of the raw lines so the byte-level difference still
		// gets a range.
		ranges1, ranges2 = commonPrefixSuffixDiff(line1, line2)
	}

	total := len(line1) + len(line2)
	if total == 0 {
		return ranges1, ranges2, 1
	}
	return ranges1, ranges2, 2 * float64(matchedLen) / float64(total)
}

// refineSubstitution handles an IN_1 word run paired with the IN_2 word run
// immediately following it in the word-level LCS — a substitution rather
// than a pure insertion or deletion. It tries, in order: char-level LCS
// over just the replaced byte ranges (kept if it covers enough of the
// shorter side to be worth reporting piecemeal); a common-prefix/suffix
// split of those same ranges; and, failing both, the whole IN_1 span as a
// single change (Engine.cpp's compareLines fallthrough — the IN_2 span is
// deliberately left unmarked in that last case, matching the original's
// asymmetric fallback). Returns the number of matched bytes to credit
// toward the line's overall convergence.
func refineSubstitution(line1 []byte, w1 []Word, seg1 Segment, line2 []byte, w2 []Word, seg2 Segment, opts CompareOptions, ranges1, ranges2 *[]ChangeRange) int {
	lo1 := w1[seg1.Start1].Start
	hi1 := w1[seg1.Start1+seg1.Len1-1].Start + w1[seg1.Start1+seg1.Len1-1].Length
	lo2 := w2[seg2.Start2].Start
	hi2 := w2[seg2.Start2+seg2.Len2-1].Start + w2[seg2.Start2+seg2.Len2-1].Length
	sub1, sub2 := line1[lo1:hi1], line2[lo2:hi2]

	c1 := ExtractChars(sub1, opts)
	c2 := ExtractChars(sub2, opts)
	csegs, _ := LCS(c1, c2, func(x, y Char) bool { return x.Hash == y.Hash })
	matchedChars := 0
	for _, cs := range csegs {
		if cs.Type == Match {
			for k := 0; k < cs.Len1; k++ {
				matchedChars += c1[cs.Start1+k].Length
			}
		}
	}
	shorter := minInt(len(sub1), len(sub2))
	if shorter > 0 && matchedChars*100/shorter >= opts.MatchPercentThreshold {
		for _, cs := range csegs {
			switch cs.Type {
			case In1:
				appendCharSpanRange(c1, cs.Start1, cs.Len1, lo1, ranges1)
			case In2:
				appendCharSpanRange(c2, cs.Start2, cs.Len2, lo2, ranges2)
			}
		}
		return matchedChars
	}

	prefix, suffix := commonAffixLen(sub1, sub2)
	if prefix > 0 || suffix > 0 {
		mid1 := Section{Start: lo1 + prefix, End: hi1 - suffix}
		mid2 := Section{Start: lo2 + prefix, End: hi2 - suffix}
		if !mid1.Empty() {
			*ranges1 = append(*ranges1, ChangeRange{Start: mid1.Start, Length: mid1.Len()})
		}
		if !mid2.Empty() {
			*ranges2 = append(*ranges2, ChangeRange{Start: mid2.Start, Length: mid2.Len()})
		}
		return prefix + suffix
	}

	*ranges1 = append(*ranges1, ChangeRange{Start: lo1, Length: hi1 - lo1})
	return 0
}

// appendCharSpanRange appends one ChangeRange covering chars[start:start+length]
// of a char sequence extracted from a byte sub-range starting at baseOffset
// within the full line, translating char-relative offsets back to full-line
// byte offsets.
func appendCharSpanRange(chars []Char, start, length, baseOffset int, out *[]ChangeRange) {
	if length == 0 {
		return
	}
	lo := baseOffset + chars[start].Start
	last := chars[start+length-1]
	hi := baseOffset + last.Start + last.Length
	*out = append(*out, ChangeRange{Start: lo, Length: hi - lo})
}

// commonAffixLen returns the maximal common prefix and suffix lengths
// between two byte slices, capping the suffix so an overlapping
// prefix/suffix (as in "ababababa" vs "ababa") never double-counts bytes
// the prefix already claimed.
func commonAffixLen(a, b []byte) (prefix, suffix int) {
	n := minInt(len(a), len(b))
	for prefix < n && a[prefix] == b[prefix] {
		prefix++
	}
	for suffix < n-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return prefix, suffix
}

// markWordRunChanged appends one ChangeRange spanning an unmatched word run
// that has no opposite-side run adjacent to it — a pure insertion or
// deletion within the line, with nothing on the other side to drill into
// at character granularity.
func markWordRunChanged(words []Word, start, length int, out *[]ChangeRange) {
	if length == 0 {
		return
	}
	lo := words[start].Start
	hi := words[start+length-1].Start + words[start+length-1].Length
	*out = append(*out, ChangeRange{Start: lo, Length: hi - lo})
}

// commonPrefixSuffixDiff reports the maximal common prefix and suffix
// between two lines as matched, and everything between them on each side
// as changed. Overlapping prefix/suffix (as in "ababababa" vs "ababa") is
// resolved by capping the suffix so it never re-consumes bytes the prefix
// already claimed, matching Engine.cpp's own note about this edge case.
func commonPrefixSuffixDiff(line1, line2 []byte) (ranges1, ranges2 []ChangeRange) {
	prefix, suffix := commonAffixLen(line1, line2)
	mid1 := Section{Start: prefix, End: len(line1) - suffix}
	mid2 := Section{Start: prefix, End: len(line2) - suffix}
	if !mid1.Empty() {
		ranges1 = append(ranges1, ChangeRange{Start: mid1.Start, Length: mid1.Len()})
	}
	if !mid2.Empty() {
		ranges2 = append(ranges2, ChangeRange{Start: mid2.Start, Length: mid2.Len()})
	}
	return ranges1, ranges2
}
