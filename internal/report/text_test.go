package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/log_analyzer_go/internal/analysis"
)

func renderText(r *analysis.Report) string {
	var buf bytes.Buffer
	WriteText(&buf, r)
	return buf.String()
}

func TestWriteTextEmptyReport(t *testing.T) {
	out := renderText(&analysis.Report{ReportMotorIDs: []int{1}})
	assert.Equal(t, "No phase-2 segments detected (check config thresholds).\n", out)
}

func TestWriteTextFullReport(t *testing.T) {
	r := &analysis.Report{
		ReportMotorIDs: []int{1, 2},
		Segments: []analysis.SegmentResult{{
			Segment: analysis.PhaseSegment{
				ID:       1,
				Interval: analysis.Interval{Start: 0, End: 19},
				TStart:   0, TEnd: 19,
			},
			SubSegments: []analysis.SubSegment{
				{
					Motor: "M3", State: analysis.StateStretched,
					Interval: analysis.Interval{Start: 2, End: 4},
					TStart:   2, TEnd: 4,
					Averages: map[int]float64{1: 2046.5, 2: 2047.25},
				},
				{
					Motor: "M3", State: analysis.StateRelaxed,
					Interval: analysis.Interval{Start: 6, End: 8},
					TStart:   6, TEnd: 8,
					Averages: map[int]float64{1: 2047, 2: 2047},
				},
			},
		}},
		Totals: []analysis.GroupAverage{
			{Motor: "M3", State: analysis.StateStretched, Samples: 3,
				Averages: map[int]float64{1: 2046.5, 2: 2047.25}},
			{Motor: "M3", State: analysis.StateRelaxed},
			{Motor: "M4", State: analysis.StateStretched, Samples: 2,
				Averages: map[int]float64{1: 2042.5, 2: 2047.25}},
			{Motor: "M4", State: analysis.StateRelaxed},
		},
		Deviations: []analysis.PairDeviation{
			{State: analysis.StateStretched, MotorA: "M3", MotorB: "M4",
				Deviations: map[int]float64{1: 4, 2: 0}},
			{State: analysis.StateRelaxed, MotorA: "M3", MotorB: "M4"},
		},
	}

	want := `Detected phase-2 segments:
  Segment 1: samples=20, t_sec=[0.000, 19.000]
    - M3 stretched: samples=3, t_sec=[2.000, 4.000], M1_avg=2046.50, M2_avg=2047.25
    - M3 relaxed: samples=3, t_sec=[6.000, 8.000], M1_avg=2047.00, M2_avg=2047.00

Total averages across all segments:
  M3 stretched: M1_avg=2046.50, M2_avg=2047.25
  M3 relaxed: no samples
  M4 stretched: M1_avg=2042.50, M2_avg=2047.25
  M4 relaxed: no samples

Position deviation:
  Stretched (M3 vs M4): M1_dev=4.00, M2_dev=0.00
  Relaxed (M3 vs M4): insufficient data
Done.
`
	assert.Equal(t, want, renderText(r))
}

func TestWriteTextSingleMotorDeviationNote(t *testing.T) {
	r := &analysis.Report{
		ReportMotorIDs: []int{1},
		Segments: []analysis.SegmentResult{{
			Segment: analysis.PhaseSegment{ID: 1, Interval: analysis.Interval{Start: 0, End: 9}, TEnd: 9},
		}},
		Totals: []analysis.GroupAverage{
			{Motor: "M3", State: analysis.StateStretched},
			{Motor: "M3", State: analysis.StateRelaxed},
		},
	}
	out := renderText(r)
	assert.Contains(t, out, "Requires at least two actuated motors.")
}
