package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/user/log_analyzer_go/internal/analysis"
)

// WriteText renders an analysis report as the plain-text summary consumed
// by test engineers: the detected phase segments with their time-ordered
// sub-segment dwells, the total per-(motor, state) averages, and the
// pairwise position deviations.
func WriteText(w io.Writer, r *analysis.Report) {
	if r.Empty() {
		fmt.Fprintln(w, "No phase-2 segments detected (check config thresholds).")
		return
	}

	fmt.Fprintln(w, "Detected phase-2 segments:")
	for _, seg := range r.Segments {
		s := seg.Segment
		fmt.Fprintf(w, "  Segment %d: samples=%d, t_sec=[%.3f, %.3f]\n",
			s.ID, s.Len(), s.TStart, s.TEnd)
		for _, sub := range seg.SubSegments {
			fmt.Fprintf(w, "    - %s: samples=%d, t_sec=[%.3f, %.3f], %s\n",
				sub.Label(), sub.Len(), sub.TStart, sub.TEnd,
				averagesText(sub.Averages, r.ReportMotorIDs))
		}
	}

	fmt.Fprintln(w, "\nTotal averages across all segments:")
	for _, total := range r.Totals {
		label := fmt.Sprintf("%s %s", total.Motor, total.State)
		if total.Averages == nil {
			fmt.Fprintf(w, "  %s: no samples\n", label)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", label, averagesText(total.Averages, r.ReportMotorIDs))
	}

	fmt.Fprintln(w, "\nPosition deviation:")
	if len(r.Deviations) == 0 {
		fmt.Fprintln(w, "  Requires at least two actuated motors.")
	}
	for _, dev := range r.Deviations {
		label := fmt.Sprintf("%s (%s vs %s)", titleCase(string(dev.State)), dev.MotorA, dev.MotorB)
		if dev.Deviations == nil {
			fmt.Fprintf(w, "  %s: insufficient data\n", label)
			continue
		}
		parts := make([]string, 0, len(r.ReportMotorIDs))
		for _, motorID := range r.ReportMotorIDs {
			parts = append(parts, fmt.Sprintf("M%d_dev=%.2f", motorID, dev.Deviations[motorID]))
		}
		fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(parts, ", "))
	}

	fmt.Fprintln(w, "Done.")
}

func averagesText(averages map[int]float64, reportMotorIDs []int) string {
	parts := make([]string, 0, len(reportMotorIDs))
	for _, motorID := range reportMotorIDs {
		parts = append(parts, fmt.Sprintf("M%d_avg=%.2f", motorID, averages[motorID]))
	}
	return strings.Join(parts, ", ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
