package analysis

import "fmt"

// State names one of the two dwell states of an actuated motor.
type State string

const (
	StateStretched State = "stretched"
	StateRelaxed   State = "relaxed"
)

// Interval is an inclusive [Start, End] sample-index range.
type Interval struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the interval.
func (iv Interval) Len() int { return iv.End - iv.Start + 1 }

// PhaseSegment is a maximal contiguous range where every home motor is
// commanded to home, surviving the minimum-length filter. IDs are ordinal
// by ascending start index, starting at 1.
type PhaseSegment struct {
	ID int
	Interval
	TStart float64
	TEnd   float64
}

// SubSegment is one motor's stretched or relaxed dwell inside a phase
// segment. Averages holds the mean measured position of each report motor
// over the dwell's samples.
type SubSegment struct {
	Motor string
	State State
	Interval
	TStart   float64
	TEnd     float64
	Averages map[int]float64
}

// Label renders the reporting label, e.g. "M3 stretched".
func (s SubSegment) Label() string {
	return fmt.Sprintf("%s %s", s.Motor, s.State)
}

// SegmentResult pairs a phase segment with its time-ordered sub-segments.
type SegmentResult struct {
	Segment     PhaseSegment
	SubSegments []SubSegment
}

// GroupAverage is the global per-(motor, state) aggregate across all phase
// segments. A nil Averages map marks an empty group ("no samples").
type GroupAverage struct {
	Motor    string
	State    State
	Samples  int
	Averages map[int]float64
}

// PairDeviation is the absolute difference of two motors' per-report-motor
// group means for one state. A nil Deviations map marks insufficient data
// (at least one side of the pair had no samples).
type PairDeviation struct {
	State      State
	MotorA     string
	MotorB     string
	Deviations map[int]float64
}

// Report is the complete structured outcome of one analysis run.
type Report struct {
	ReportMotorIDs []int
	Segments       []SegmentResult
	Totals         []GroupAverage
	Deviations     []PairDeviation
}

// Empty reports whether no phase segments survived filtering. This is a
// valid terminal state, not a failure.
func (r *Report) Empty() bool { return len(r.Segments) == 0 }
