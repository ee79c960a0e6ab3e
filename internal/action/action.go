// Package action turns a reconciliation result into output and an exit code,
// and carries out certificate cleanup behind the apply/dry-run gate.
package action

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"tasnim.dev/lbcheck/internal/model"
)

// Mode selects how a result is acted upon.
type Mode int

const (
	ModeReport Mode = iota
	ModeMonitor
	ModeApply
	ModeDryRun
)

func (m Mode) String() string {
	switch m {
	case ModeMonitor:
		return "monitor"
	case ModeApply:
		return "apply"
	case ModeDryRun:
		return "dry-run"
	default:
		return "report"
	}
}

// Cleans reports whether the mode walks the removal plan.
func (m Mode) Cleans() bool {
	return m == ModeApply || m == ModeDryRun
}

// Act writes result to w and returns the process exit code. Monitor mode
// exits with the severity; every other mode exits 0.
func Act(w io.Writer, result model.Result, mode Mode, verbosity int) int {
	if mode == ModeMonitor {
		writeMonitor(w, result, verbosity)
		return int(result.Status)
	}
	writeReport(w, result, verbosity)
	return 0
}

// MonitorLine is the single status line understood by Nagios-style monitoring.
func MonitorLine(result model.Result) string {
	return fmt.Sprintf("%s - %s", result.Status, result.Message)
}

func writeMonitor(w io.Writer, result model.Result, verbosity int) {
	fmt.Fprintln(w, MonitorLine(result))
	if verbosity < 1 {
		return
	}
	for _, d := range result.Details {
		fmt.Fprintln(w, d)
	}
}

func writeReport(w io.Writer, result model.Result, verbosity int) {
	label := StatusStyle(result.Status).Render(result.Status.String())
	lipgloss.Fprintln(w, label+" "+result.Message)
	if verbosity < 1 || len(result.Details) == 0 {
		return
	}

	title := fmt.Sprintf("── details (%d) ", len(result.Details))
	lipgloss.Fprintln(w, SectionStyle.Render(title+strings.Repeat("─", max(40-len(title), 4))))
	for _, d := range result.Details {
		lipgloss.Fprintln(w, "  "+d)
	}
}
