package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

// nanMean is the arithmetic mean ignoring NaN entries. NaN when no valid
// value remains, mirroring how the measured columns treat unparsable
// samples elsewhere.
func nanMean(values []float64) float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return math.NaN()
	}
	return stat.Mean(valid, nil)
}

// rowAverages computes the mean measured position of each report motor over
// one interval's rows.
func rowAverages(ds *dataset.Dataset, iv Interval, reportMotorIDs []int) map[int]float64 {
	averages := make(map[int]float64, len(reportMotorIDs))
	for _, motorID := range reportMotorIDs {
		col := ds.Column(dataset.PosCol(motorID))
		averages[motorID] = nanMean(col[iv.Start : iv.End+1])
	}
	return averages
}

// Aggregate folds the sub-segments of all phase segments into global
// per-(motor, state) averages and pairwise deviations.
//
// Group membership follows the matcher's output: relaxed rows count only
// when their interval was paired with some stretched interval, and a
// relaxed interval reused by several stretched intervals contributes its
// rows once per pairing. Totals are ordered by motor configuration order,
// stretched before relaxed; deviations by state, then pair order.
func Aggregate(
	ds *dataset.Dataset,
	segments []SegmentResult,
	motors []config.MotorConfig,
	reportMotorIDs []int,
) (totals []GroupAverage, deviations []PairDeviation) {
	type groupKey struct {
		motor string
		state State
	}
	groups := make(map[groupKey][]Interval)
	for _, seg := range segments {
		for _, sub := range seg.SubSegments {
			key := groupKey{motor: sub.Motor, state: sub.State}
			groups[key] = append(groups[key], sub.Interval)
		}
	}

	states := []State{StateStretched, StateRelaxed}

	averagesFor := func(intervals []Interval) (map[int]float64, int) {
		if len(intervals) == 0 {
			return nil, 0
		}
		samples := 0
		for _, iv := range intervals {
			samples += iv.Len()
		}
		averages := make(map[int]float64, len(reportMotorIDs))
		for _, motorID := range reportMotorIDs {
			col := ds.Column(dataset.PosCol(motorID))
			rows := make([]float64, 0, samples)
			for _, iv := range intervals {
				rows = append(rows, col[iv.Start:iv.End+1]...)
			}
			averages[motorID] = nanMean(rows)
		}
		return averages, samples
	}

	averageByGroup := make(map[groupKey]map[int]float64)
	for _, motor := range motors {
		for _, state := range states {
			key := groupKey{motor: motor.Label, state: state}
			averages, samples := averagesFor(groups[key])
			averageByGroup[key] = averages
			totals = append(totals, GroupAverage{
				Motor:    motor.Label,
				State:    state,
				Samples:  samples,
				Averages: averages,
			})
		}
	}

	for _, state := range states {
		for i := 0; i < len(motors); i++ {
			for j := i + 1; j < len(motors); j++ {
				a, b := motors[i], motors[j]
				dev := PairDeviation{State: state, MotorA: a.Label, MotorB: b.Label}
				avgA := averageByGroup[groupKey{motor: a.Label, state: state}]
				avgB := averageByGroup[groupKey{motor: b.Label, state: state}]
				if avgA != nil && avgB != nil {
					dev.Deviations = make(map[int]float64, len(reportMotorIDs))
					for _, motorID := range reportMotorIDs {
						dev.Deviations[motorID] = math.Abs(avgA[motorID] - avgB[motorID])
					}
				}
				deviations = append(deviations, dev)
			}
		}
	}

	return totals, deviations
}
