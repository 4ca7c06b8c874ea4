package spec

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sirupsen/logrus"
)

// PrintDiff logs what a tree mutation changed, as a character diff of the
// serialized tree before and after. Callers should gate on the trace level
// themselves; serializing the whole tree per mutation is not free.
func PrintDiff(before, after, method string) {
	if before == after {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	logrus.WithField("method", method).Tracef("[TREE]: %s", dmp.DiffPrettyText(diffs))
}
