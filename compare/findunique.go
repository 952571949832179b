package compare

// FindUnique runs the cheaper "which lines exist only in one document"
// comparison instead of the full block/move/realign pipeline. Grounded on
// Engine.cpp's runFindUnique: build a hash->count map of doc1, then mark
// every doc2 line (and every colliding doc1 line) as non-unique if its
// hash also occurs in doc1. No LCS, no move detection, no alignment map is
// produced, since the point of this mode is to answer "is anything in
// document 2 genuinely new" as cheaply as possible.
func FindUnique(tp TextProvider, opts CompareOptions, prog Progress) Result {
	if prog == nil {
		prog = NopProgress{}
	}
	prog.Phase("extract")
	doc1 := ExtractLines(tp, MainView, opts.Selection1, opts, prog)
	if prog.Cancelled() {
		return Result{Code: ResultCancelled}
	}
	doc2 := ExtractLines(tp, SubView, opts.Selection2, opts, prog)
	if prog.Cancelled() {
		return Result{Code: ResultCancelled}
	}

	prog.Phase("find-unique")
	idx := BuildUniquenessIndex(doc1, doc2)

	doc1Unique, doc2Unique := 0, 0
	for _, l := range doc1 {
		if idx.count2[l.Hash] == 0 {
			doc1Unique++
		}
	}
	for _, l := range doc2 {
		if idx.count1[l.Hash] == 0 {
			doc2Unique++
		}
	}

	code := ResultMismatch
	if doc1Unique == 0 && doc2Unique == 0 {
		code = ResultMatch
	}
	return Result{Code: code, Doc1Unique: doc1Unique, Doc2Unique: doc2Unique}
}
