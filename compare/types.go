// Package compare implements a line/word/character granularity comparison
// engine for two text documents, producing a block-level classification,
// intra-line change ranges, move detection and a cross-document alignment
// map suitable for driving a side-by-side display.
package compare

import "context"

// ViewID identifies one of the two documents being compared. The engine
// itself treats both views symmetrically; MAIN_VIEW/SUB_VIEW only matter to
// callers deciding how to label columns in a display.
type ViewID int

const (
	MainView ViewID = iota
	SubView
)

// BlockType classifies a contiguous run of lines within a Block diff.
type BlockType int

const (
	// Match is a run of lines present, in the same relative order, in both
	// documents.
	Match BlockType = iota
	// In1 is a run of lines found only in doc1. LCS's internal swap for
	// efficiency (see lcs.go) is fully normalized away before segments are
	// turned into blocks, so In1 always means doc1 here regardless of
	// whether that swap happened.
	In1
	// In2 is the complement of In1.
	In2
)

func (t BlockType) String() string {
	switch t {
	case Match:
		return "MATCH"
	case In1:
		return "IN_1"
	case In2:
		return "IN_2"
	default:
		return "UNKNOWN"
	}
}

// Section is a half-open [Start, End) range of line indices within one
// document's extracted line slice.
type Section struct {
	Start, End int
}

func (s Section) Len() int { return s.End - s.Start }
func (s Section) Empty() bool { return s.End <= s.Start }

// NormalizedLine is a single extracted line together with the metadata the
// rest of the pipeline needs: its case/whitespace-normalized hash and its
// source line index, so later stages can map back to host coordinates.
type NormalizedLine struct {
	Index int    // line index in the source document, as passed to TextProvider.LineBytes
	Hash  uint64 // see hash.go; equals hashSeed (isEmptyHash) iff the line is empty under the active options
}

// Word is an intra-line token produced by the Tokenizer (word granularity).
type Word struct {
	Start, Length int // byte offsets within the line
	Hash          uint64
}

// Char is an intra-line unit produced by the Tokenizer (character
// granularity), one rune wide.
type Char struct {
	Start, Length int // byte offsets within the line (Length>1 for multi-byte runes)
	Hash          uint64
}

// ChangeRange marks a contiguous intra-line byte range that differs between
// two otherwise-aligned lines.
type ChangeRange struct {
	Start, Length int
}

// matchBlockRef is an arena index into CompareInfo.blocks for the opposite
// document's matched block, used instead of a raw pointer so that
// BlockDiff values can be copied/resliced freely (see DESIGN.md, "arena and
// index" note).
type matchBlockRef struct {
	valid bool
	index int
}

// BlockDiff is one contiguous run of same-typed lines in one document,
// together with whatever move/change bookkeeping the later phases attach
// to it.
type BlockDiff struct {
	Type    BlockType
	Section Section // line range in the owning document (Doc1 coordinates for Match/IN_1, Doc2 for IN_2)

	// doc2Start is the Doc2 line index a MATCH block's Section.Start
	// corresponds to; MATCH blocks advance through both documents in
	// lock-step so this is the only extra field they need.
	doc2Start int

	// changedLines holds, for each line in this block that has been paired
	// with a corresponding line in the opposite-type block across the
	// boundary, that line's intra-line ChangeRanges. Keyed by line index
	// relative to Section.Start.
	changedLines map[int]lineChange

	// match is set on an IN_1/IN_2 block once the re-aligner has paired it
	// with its adjacent opposite-type block (see realignAdjacentPairs); it
	// is the arena index of that paired block. Unrelated to move detection.
	match matchBlockRef

	// moves records, for IN_1/IN_2 blocks, the sub-ranges (relative to
	// Section.Start) that the move detector confirmed via resolveMatch,
	// sorted ascending and disjoint. A block can contain moved and
	// non-moved lines side by side.
	moves []MoveSpan
}

// MoveSpan is one confirmed moved line-run within a block, expressed
// relative to the owning block's Section.Start. ID is shared with the
// reciprocal span recorded on the opposite-type block it was matched
// against, so a host can visually link the two sides of the same move.
type MoveSpan struct {
	Section
	ID int
}

type lineChange struct {
	otherLine int // paired line index in the opposite document
	ranges1   []ChangeRange
	ranges2   []ChangeRange
	converged bool
}

// CompareInfo is the working state of one full comparison pass: the
// extracted, normalized lines of both documents plus the arena of
// BlockDiff values produced by the LCS engine and mutated in place by the
// move detector and re-aligner.
type CompareInfo struct {
	Doc1, Doc2 []NormalizedLine
	blocks     []BlockDiff // shared arena; matchBlockRef indexes into this
	// Swapped records whether the LCS engine internally ran with Doc1/Doc2
	// reversed for efficiency. Every returned segment and block is already
	// normalized back to Doc1/Doc2 terms (see lcs.go), so this is purely
	// informational; nothing in this package branches on it.
	Swapped bool
	// Uniqueness is built right after the line-level LCS runs (§4.4). The
	// marker emitter consults it to choose REMOVED_LOCAL/ADDED_LOCAL over
	// REMOVED/ADDED, and the re-aligner consults its Rarity to break
	// near-ties between candidate pairings.
	Uniqueness *UniquenessIndex
}

// MarkerMask is a bitmask of per-line marker bits, matching the
// classification vocabulary of the original comparison engine this package
// is modeled on.
type MarkerMask uint32

const (
	MarkerAdded MarkerMask = 1 << iota
	MarkerAddedLocal
	MarkerRemoved
	MarkerRemovedLocal
	MarkerChanged
	MarkerChangedLocal
	MarkerMovedLine
	MarkerMovedBegin
	MarkerMovedMid
	MarkerMovedEnd
)

// AlignmentPair maps a line (or absence of one, via -1) in one document to
// its counterpart in the other, in display order. The "main" side of an
// AlignmentPair is always MAIN_VIEW's line, regardless of any internal LCS
// swap.
type AlignmentPair struct {
	MainLine int // -1 if nothing on the main side aligns here
	SubLine  int // -1 if nothing on the sub side aligns here
}

// ResultCode is the outcome of a Run call.
type ResultCode int

const (
	ResultMatch ResultCode = iota
	ResultMismatch
	ResultCancelled
	ResultError
)

func (c ResultCode) String() string {
	switch c {
	case ResultMatch:
		return "MATCH"
	case ResultMismatch:
		return "MISMATCH"
	case ResultCancelled:
		return "CANCELLED"
	case ResultError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of a full comparison run.
type Result struct {
	Code       ResultCode
	Err        error
	Alignment  []AlignmentPair
	Doc1Unique int // lines present only in doc1, valid for FindUnique too
	Doc2Unique int
}

// TextProvider is the host's read-only line/byte access abstraction. The
// engine never assumes a concrete editor or file; it only ever asks a
// TextProvider for line counts and line bytes.
type TextProvider interface {
	LineCount(view ViewID) int
	LineBytes(view ViewID, line int) []byte
}

// MarkerSink receives the per-line marker masks and intra-line change
// ranges the engine computes, so the host can render them however it
// likes.
type MarkerSink interface {
	SetLineMarker(view ViewID, line int, mask MarkerMask)
	AddChangeRange(view ViewID, line int, r ChangeRange)
	SetMoveID(view ViewID, line int, moveID int)
}

// Progress is a cooperative cancellation and phase-reporting capability.
// The engine polls it periodically (never on every line) instead of
// relying on any process-wide cancellation state, so multiple comparisons
// can run concurrently without interfering with each other.
type Progress interface {
	// Cancelled is polled periodically by long-running phases; once it
	// returns true the engine unwinds and Run returns ResultCancelled.
	Cancelled() bool
	// Phase is called at the start of each major pipeline stage.
	Phase(name string)
}

// NopProgress never cancels and ignores phase notifications.
type NopProgress struct{}

func (NopProgress) Cancelled() bool    { return false }
func (NopProgress) Phase(name string)  {}

// ctxProgress adapts a context.Context's cancellation into the Progress
// interface, so pipeline stages can just poll Progress even when the
// caller only supplied a context.
type ctxProgress struct {
	ctx   context.Context
	inner Progress
}

func (p ctxProgress) Cancelled() bool {
	if p.ctx != nil {
		select {
		case <-p.ctx.Done():
			return true
		default:
		}
	}
	if p.inner != nil {
		return p.inner.Cancelled()
	}
	return false
}

func (p ctxProgress) Phase(name string) {
	if p.inner != nil {
		p.inner.Phase(name)
	}
}
