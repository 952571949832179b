package memdoc

import "github.com/golang/glog"

// PhaseLogger is a compare.Progress that never cancels on its own (a
// one-shot CLI run has nothing else to do while comparing) but logs each
// phase transition at glog.Infof, the way dm/diff.go's PerformDiff logs its
// own stage boundaries.
type PhaseLogger struct{}

func (PhaseLogger) Cancelled() bool { return false }

func (PhaseLogger) Phase(name string) {
	glog.Infof("compare: entering phase %q", name)
}
