package compare

import "github.com/golang/glog"

// progressPollInterval matches the original engine's choice to poll for
// cancellation every 500 lines rather than on every iteration, so that
// extracting a huge document doesn't pay a virtual-call-and-branch cost
// per line just to check a flag that almost never changes.
const progressPollInterval = 500

// ExtractLines pulls every line of one view out through a TextProvider and
// normalizes it into a NormalizedLine slice, honoring IgnoreCase/
// IgnoreSpaces/IgnoreEmptyLines and an optional Selection restricting the
// range considered. It polls prog.Cancelled() periodically and returns nil
// if cancellation is observed.
func ExtractLines(tp TextProvider, view ViewID, sel *Section, opts CompareOptions, prog Progress) []NormalizedLine {
	lineCount := tp.LineCount(view)
	start, end := 0, lineCount
	if sel != nil {
		start = maxInt(0, sel.Start)
		end = minInt(lineCount, sel.End)
	}

	lines := make([]NormalizedLine, 0, end-start)
	for i := start; i < end; i++ {
		if (i-start)%progressPollInterval == 0 && prog.Cancelled() {
			glog.V(1).Infof("ExtractLines: cancelled at line %d", i)
			return nil
		}
		b := tp.LineBytes(view, i)
		h := LineHash(b, opts)
		if opts.IgnoreEmptyLines && isEmptyHash(h) {
			continue
		}
		lines = append(lines, NormalizedLine{Index: i, Hash: h})
	}
	return lines
}
