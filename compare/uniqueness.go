package compare

// UniquenessIndex counts, for every line hash, how many of the extracted
// lines of doc1 and of doc2 carry it. The marker emitter uses it
// (nonUniqueAcrossDocs) to choose the _LOCAL marker variants, and the
// re-aligner uses it (Rarity) to prefer candidates built from lines that
// are rare (ideally unique) across the pair: aligning on a common line is
// cheap but often wrong, since common lines (blank lines, closing braces,
// "#include") occur everywhere. The move detector does not use it.
//
// count1[h] / count2[h] count how many lines in each document hash to h; a candidate pairing built on a hash with count 1 on both sides is a
// genuinely unique correspondence.
type UniquenessIndex struct {
	count1, count2 map[uint64]int
}

func BuildUniquenessIndex(doc1, doc2 []NormalizedLine) *UniquenessIndex {
	idx := &UniquenessIndex{
		count1: make(map[uint64]int, len(doc1)),
		count2: make(map[uint64]int, len(doc2)),
	}
	for _, l := range doc1 {
		idx.count1[l.Hash]++
	}
	for _, l := range doc2 {
		idx.count2[l.Hash]++
	}
	return idx
}

// Rarity returns how many times h occurs across both documents combined;
// lower is rarer, 2 is the minimum possible for a matched line (once in
// each). realign.go's candidate scoring adds a small bonus inversely
// proportional to this to break near-ties in favor of rarer anchors.
func (idx *UniquenessIndex) Rarity(h uint64) int {
	return idx.count1[h] + idx.count2[h]
}

// nonUniqueAcrossDocs reports whether a line of the given type has a
// counterpart hash anywhere in the *other* document — the §4.4 test that
// picks REMOVED_LOCAL/ADDED_LOCAL over REMOVED/ADDED so the UI can dim a
// removed or added line that has an identical twin elsewhere in the file.
func (idx *UniquenessIndex) nonUniqueAcrossDocs(h uint64, t BlockType) bool {
	if t == In2 {
		return idx.count1[h] > 0
	}
	return idx.count2[h] > 0
}
