package kernel

import (
	"fmt"
	"io"
)

// ReportStatus writes a one-line human-readable status report. Nothing is
// printed unless the control vector requests the verbose level.
func ReportStatus(w io.Writer, control *Control, stage string, status Status) {
	if w == nil || control == nil || control[CtrlPrintLevel] < PrintLevelVerbose {
		return
	}

	fmt.Fprintf(w, "%s: status = %d (%s)\n", stage, int32(status), status)
}

// ReportInfo writes the diagnostic record populated by the last operation.
// Nothing is printed unless the control vector requests the verbose level.
func ReportInfo(w io.Writer, control *Control, info *Info) {
	if w == nil || control == nil || info == nil || control[CtrlPrintLevel] < PrintLevelVerbose {
		return
	}

	fmt.Fprintf(w, "dimension        = %d\n", int64(info[InfoDimension]))
	fmt.Fprintf(w, "factor nonzeros  = %d\n", int64(info[InfoNonzeros]))
	fmt.Fprintf(w, "fill-ins         = %d\n", int64(info[InfoFillIns]))
	fmt.Fprintf(w, "refactorizations = %d\n", int64(info[InfoRefactorations]))

	switch int32(info[InfoOrderingUsed]) {
	case OrderingNone:
		fmt.Fprintf(w, "ordering used    = none\n")
	default:
		fmt.Fprintf(w, "ordering used    = amd\n")
	}

	switch byte(info[InfoPivotMethod]) {
	case 's':
		fmt.Fprintln(w, "last pivot search: singleton")
	case 'q':
		fmt.Fprintln(w, "last pivot search: quick diagonal")
	case 'd':
		fmt.Fprintln(w, "last pivot search: diagonal")
	case 'e':
		fmt.Fprintln(w, "last pivot search: entire matrix")
	}

	if row := int64(info[InfoSingularRow]); row > 0 {
		fmt.Fprintf(w, "singular at step %d,%d\n", row, int64(info[InfoSingularCol]))
	}
}

// ReportControl dumps the control vector in index order, a few entries per
// line.
func ReportControl(w io.Writer, control *Control) {
	if w == nil || control == nil || control[CtrlPrintLevel] < PrintLevelVerbose {
		return
	}

	perLine := minOf(ControlLen, 8)
	for i := 0; i < ControlLen; i += perLine {
		for j := i; j < minOf(i+perLine, ControlLen); j++ {
			fmt.Fprintf(w, "%10.4g  ", control[j])
		}
		fmt.Fprintln(w)
	}
}
