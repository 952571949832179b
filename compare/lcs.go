package compare

// Segment is one run produced by LCS: either a MATCH run of equal length
// in both sequences, or an IN_1/IN_2 run present only in one.
type Segment struct {
	Type        BlockType
	Start1, Len1 int // range in a, the first sequence the caller passed to LCS
	Start2, Len2 int // range in b, the second sequence the caller passed to LCS
}

// LCS computes the longest common subsequence of a and b under the given
// equality predicate and returns it as an ordered list of MATCH/IN_1/IN_2
// segments, plus whether the two sequences were internally swapped.
//
// The algorithm is Myers' shortest-edit-script search (the same family the
// rest of the pack's LCS-based tools use; see dm/lcs.go for the
// dynamic-programming-table variant this generalizes away from, traded for
// the O((N+M)*D) bound the spec calls for). Internally the shorter sequence
// is always treated as the "first" one, since the diagonal search's band
// width is bounded by the first sequence's length. When that happens,
// swapSegmentSides relabels every returned segment (IN_1<->IN_2, Start1/Len1
// swapped with Start2/Len2) before LCS returns, so the result is always
// expressed purely in terms of the caller's a and b. Swapped is reported for
// diagnostics only; no caller needs to branch on it or reinterpret IN_1/IN_2
// to get correct results.
func LCS[T any](a, b []T, equal func(x, y T) bool) (segs []Segment, swapped bool) {
	if len(a) > len(b) {
		segs, _ = lcsCore(b, a, func(x, y T) bool { return equal(y, x) })
		return swapSegmentSides(segs), true
	}
	segs, _ = lcsCore(a, b, equal)
	return segs, false
}

func swapSegmentSides(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		t := s.Type
		if t == In1 {
			t = In2
		} else if t == In2 {
			t = In1
		}
		out[i] = Segment{Type: t, Start1: s.Start2, Len1: s.Len2, Start2: s.Start1, Len2: s.Len1}
	}
	return out
}

// lcsCore runs Myers' algorithm assuming len(a) <= len(b).
func lcsCore[T any](a, b []T, equal func(x, y T) bool) (segs []Segment, matched []IndexPair) {
	n, m := len(a), len(b)
	matched = myersMatches(a, b, equal, n, m)
	return matchesToSegments(matched, n, m), matched
}

// IndexPair is one matched (aIndex,bIndex) position in the LCS.
type IndexPair struct {
	AIndex, BIndex int
}

// myersMatches returns the matched index pairs of the LCS, in increasing
// order, using Myers' O((N+M)*D) algorithm (D = edit distance).
func myersMatches[T any](a, b []T, equal func(x, y T) bool, n, m int) []IndexPair {
	max := n + m
	if max == 0 {
		return nil
	}
	offset := max
	size := 2*max + 1
	// trace[d] is a snapshot of the V array after round d, needed to walk
	// the path back from (n,m) to (0,0) once a solution is found.
	trace := make([][]int, 0, max+1)
	v := make([]int, size)

	var finalD int
	found := false

outer:
	for d := 0; d <= max; d++ {
		snapshot := append([]int(nil), v...)
		trace = append(trace, snapshot)
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && equal(a[x], b[y]) {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				finalD = d
				found = true
				break outer
			}
		}
	}
	if !found {
		finalD = max
	}

	// Walk the recorded trace backwards to recover the matched diagonal
	// steps, then reverse them into forward order.
	var pairs []IndexPair
	x, y := n, m
	for d := finalD; d > 0; d-- {
		vPrev := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && vPrev[offset+k-1] < vPrev[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vPrev[offset+prevK]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			x--
			y--
			pairs = append(pairs, IndexPair{AIndex: x, BIndex: y})
		}
		x, y = prevX, prevY
	}
	// x,y now at (startX,startY) of the d==0 diagonal run from the origin.
	for x > 0 && y > 0 {
		x--
		y--
		pairs = append(pairs, IndexPair{AIndex: x, BIndex: y})
	}
	// pairs was built back-to-front.
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return pairs
}

func matchesToSegments(matched []IndexPair, n, m int) []Segment {
	var segs []Segment
	a1, b1 := 0, 0
	flushGap := func(aEnd, bEnd int) {
		if aEnd > a1 {
			segs = append(segs, Segment{Type: In1, Start1: a1, Len1: aEnd - a1})
		}
		if bEnd > b1 {
			segs = append(segs, Segment{Type: In2, Start2: b1, Len2: bEnd - b1})
		}
	}
	i := 0
	for i < len(matched) {
		aStart, bStart := matched[i].AIndex, matched[i].BIndex
		flushGap(aStart, bStart)
		j := i
		for j < len(matched) && matched[j].AIndex == aStart+(j-i) && matched[j].BIndex == bStart+(j-i) {
			j++
		}
		runLen := j - i
		segs = append(segs, Segment{Type: Match, Start1: aStart, Len1: runLen, Start2: bStart, Len2: runLen})
		a1, b1 = aStart+runLen, bStart+runLen
		i = j
	}
	flushGap(n, m)
	return segs
}
