package compare

import "github.com/spf13/pflag"

// CompareOptions carries every tunable the comparison pipeline reads.
// Mirrors the teacher's DifferencerConfig shape (a plain struct plus a
// CreateFlags registration method) rather than functional options, since
// these are simple booleans a CLI or config file sets once up front.
type CompareOptions struct {
	IgnoreCase        bool
	IgnoreSpaces      bool
	IgnoreEmptyLines  bool
	DetectMoves       bool
	DetectSubLines    bool // run the block re-aligner at all (§4.6)
	MinMatchLength    int  // minimum number of lines a confirmed move must span

	// CharPrecision enables the char-level substitution drill-down in the
	// block re-aligner (§4.6 step 4): an IN_1 word run immediately followed
	// by an IN_2 word run is re-examined character by character instead of
	// being reported as one whole-word change.
	CharPrecision bool

	// MatchPercentThreshold gates every convergence check the re-aligner
	// makes (candidate line scoring, char-level substitution drill-down,
	// and the final whole-line reject), expressed as an integer 0..100.
	// 50 is the original engine's default.
	MatchPercentThreshold int

	// OldFileView controls which side is colored REMOVED vs ADDED. The
	// original engine hard-codes doc1 as "old"; real hosts let the user
	// diff in either direction.
	OldFileView ViewID

	// Selection1, Selection2, when non-nil, restrict the comparison to the
	// half-open source line range [Start, End) on the given side instead of
	// the whole document; an inclusive first..last selection is
	// Section{Start: first, End: last + 1}.
	Selection1, Selection2 *Section
}

// DefaultCompareOptions matches the original engine's defaults: exact
// comparison, moves and sub-line refinement both on, 50% match threshold.
var DefaultCompareOptions = CompareOptions{
	DetectMoves:           true,
	DetectSubLines:        true,
	MinMatchLength:        1,
	CharPrecision:         true,
	MatchPercentThreshold: 50,
	OldFileView:           MainView,
}

// CreateFlags registers each option as a pflag, in the teacher's
// CreateFlags idiom (dm/config.go), but using the GNU-style long flags
// pflag provides instead of the stdlib flag package.
func (o *CompareOptions) CreateFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.IgnoreCase, "ignore-case", o.IgnoreCase,
		"Treat upper- and lower-case letters as equivalent when hashing and comparing lines.")
	fs.BoolVar(&o.IgnoreSpaces, "ignore-spaces", o.IgnoreSpaces,
		"Skip whitespace entirely when hashing and comparing lines and words.")
	fs.BoolVar(&o.IgnoreEmptyLines, "ignore-empty-lines", o.IgnoreEmptyLines,
		"Treat blank lines as absent rather than as MATCH/IN_1/IN_2 content.")
	fs.BoolVar(&o.DetectMoves, "detect-moves", o.DetectMoves,
		"Cross-reference IN_1/IN_2 blocks to find moved sections.")
	fs.BoolVar(&o.DetectSubLines, "detect-sub-lines", o.DetectSubLines,
		"Refine paired IN_1/IN_2 lines at word and character granularity.")
	fs.IntVar(&o.MinMatchLength, "min-match-length", o.MinMatchLength,
		"Minimum number of lines a candidate move must span to be considered.")
	fs.BoolVar(&o.CharPrecision, "char-precision", o.CharPrecision,
		"Drill into character-level matching for IN_1/IN_2 word substitutions.")
	fs.IntVar(&o.MatchPercentThreshold, "match-percent-threshold", o.MatchPercentThreshold,
		"Minimum percentage of matched content for a candidate pairing to be kept (0-100).")
}
