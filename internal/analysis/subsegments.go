package analysis

import (
	"sort"

	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

// MatchSubSegments finds the labeled stretched/relaxed dwells inside one
// phase segment. Every mask is restricted to the segment's range before
// interval extraction, and resulting intervals are translated back to
// absolute sample indices.
//
// For each motor, every stretched interval is emitted, then paired with
// the first relaxed interval whose start lies strictly after the stretched
// interval's end. The scan stops at the first match, so a later stretched
// interval (of this or another motor) may reuse the same relaxed interval.
// A stretched interval with no qualifying relaxed interval gets no relaxed
// dwell. The result is sorted by each dwell's first-sample elapsed time;
// the sort is stable, so ties keep emission order.
func MatchSubSegments(
	ds *dataset.Dataset,
	segment PhaseSegment,
	motors []config.MotorConfig,
	relaxedMask []bool,
	stretchMasks map[int][]bool,
	reportMotorIDs []int,
) []SubSegment {
	local := func(mask []bool) []bool {
		return mask[segment.Start : segment.End+1]
	}
	relaxedIntervals := FindIntervals(local(relaxedMask))

	var subs []SubSegment
	emit := func(motor string, state State, iv Interval) {
		abs := Interval{Start: segment.Start + iv.Start, End: segment.Start + iv.End}
		subs = append(subs, SubSegment{
			Motor:    motor,
			State:    state,
			Interval: abs,
			TStart:   ds.TSec[abs.Start],
			TEnd:     ds.TSec[abs.End],
			Averages: rowAverages(ds, abs, reportMotorIDs),
		})
	}

	for _, motor := range motors {
		stretchIntervals := FindIntervals(local(stretchMasks[motor.MotorID]))
		for _, stretch := range stretchIntervals {
			emit(motor.Label, StateStretched, stretch)

			for _, relaxed := range relaxedIntervals {
				if relaxed.Start > stretch.End {
					emit(motor.Label, StateRelaxed, relaxed)
					break
				}
			}
		}
	}

	sort.SliceStable(subs, func(i, j int) bool { return subs[i].TStart < subs[j].TStart })
	return subs
}
