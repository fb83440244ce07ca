package splu

import (
	"io"
	"os"

	"splu/kernel"
)

// Reporter receives the human-readable reports emitted when an operation
// runs with the verbose flag set. It never influences solver state.
type Reporter interface {
	Status(control *kernel.Control, stage string, status kernel.Status)
	Info(control *kernel.Control, info *kernel.Info)
}

// StreamReporter writes kernel reports to an io.Writer.
type StreamReporter struct {
	W io.Writer
}

func (r StreamReporter) Status(control *kernel.Control, stage string, status kernel.Status) {
	kernel.ReportStatus(r.W, control, stage, status)
}

func (r StreamReporter) Info(control *kernel.Control, info *kernel.Info) {
	kernel.ReportInfo(r.W, control, info)
}

var defaultReporter Reporter = StreamReporter{W: os.Stdout}
