package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

func subSeg(motor string, state State, iv Interval) SubSegment {
	return SubSegment{Motor: motor, State: state, Interval: iv}
}

func TestAggregatePairDeviation(t *testing.T) {
	// M3 stretched rows have report-motor mean 100.0, M4 stretched rows
	// 96.0 -> stretched deviation 4.00
	ds := newDataset(t, map[string][]float64{
		dataset.PosCol(1): {100, 100, 96, 96},
	})
	motors := []config.MotorConfig{motorM3(), motorM4()}
	segments := []SegmentResult{{
		SubSegments: []SubSegment{
			subSeg("M3", StateStretched, Interval{0, 1}),
			subSeg("M4", StateStretched, Interval{2, 3}),
		},
	}}

	totals, deviations := Aggregate(ds, segments, motors, []int{1})

	require.Len(t, totals, 4)
	assert.Equal(t, "M3", totals[0].Motor)
	assert.Equal(t, StateStretched, totals[0].State)
	assert.InDelta(t, 100.0, totals[0].Averages[1], 1e-9)
	assert.Equal(t, 2, totals[0].Samples)
	assert.InDelta(t, 96.0, totals[2].Averages[1], 1e-9)

	require.Len(t, deviations, 2)
	stretched := deviations[0]
	assert.Equal(t, StateStretched, stretched.State)
	assert.Equal(t, "M3", stretched.MotorA)
	assert.Equal(t, "M4", stretched.MotorB)
	require.NotNil(t, stretched.Deviations)
	assert.InDelta(t, 4.0, stretched.Deviations[1], 1e-9)
}

func TestAggregateEmptyGroupIsNoSamples(t *testing.T) {
	ds := newDataset(t, map[string][]float64{
		dataset.PosCol(1): {10, 20},
	})
	motors := []config.MotorConfig{motorM3()}
	segments := []SegmentResult{{
		SubSegments: []SubSegment{subSeg("M3", StateStretched, Interval{0, 1})},
	}}

	totals, _ := Aggregate(ds, segments, motors, []int{1})
	require.Len(t, totals, 2)

	assert.NotNil(t, totals[0].Averages) // stretched has rows
	assert.Nil(t, totals[1].Averages)    // relaxed never matched: no samples
	assert.Equal(t, 0, totals[1].Samples)
}

func TestAggregateDeviationInsufficientData(t *testing.T) {
	ds := newDataset(t, map[string][]float64{
		dataset.PosCol(1): {10, 20},
	})
	motors := []config.MotorConfig{motorM3(), motorM4()}
	// only M3 has a stretched dwell; M4 groups are empty
	segments := []SegmentResult{{
		SubSegments: []SubSegment{subSeg("M3", StateStretched, Interval{0, 1})},
	}}

	_, deviations := Aggregate(ds, segments, motors, []int{1})
	require.Len(t, deviations, 2)
	assert.Nil(t, deviations[0].Deviations)
	assert.Nil(t, deviations[1].Deviations)
}

func TestAggregateReusedRelaxedCountsPerPairing(t *testing.T) {
	// a relaxed interval matched twice contributes its rows to both
	// motors' relaxed groups
	ds := newDataset(t, map[string][]float64{
		dataset.PosCol(1): {1, 2, 3, 4},
	})
	motors := []config.MotorConfig{motorM3(), motorM4()}
	shared := Interval{2, 3}
	segments := []SegmentResult{{
		SubSegments: []SubSegment{
			subSeg("M3", StateStretched, Interval{0, 0}),
			subSeg("M4", StateStretched, Interval{1, 1}),
			subSeg("M3", StateRelaxed, shared),
			subSeg("M4", StateRelaxed, shared),
		},
	}}

	totals, deviations := Aggregate(ds, segments, motors, []int{1})
	var m3Relaxed, m4Relaxed GroupAverage
	for _, total := range totals {
		if total.State != StateRelaxed {
			continue
		}
		switch total.Motor {
		case "M3":
			m3Relaxed = total
		case "M4":
			m4Relaxed = total
		}
	}
	assert.Equal(t, 2, m3Relaxed.Samples)
	assert.Equal(t, 2, m4Relaxed.Samples)
	assert.InDelta(t, 3.5, m3Relaxed.Averages[1], 1e-9)
	assert.InDelta(t, 3.5, m4Relaxed.Averages[1], 1e-9)

	// identical relaxed groups -> zero relaxed deviation
	relaxedDev := deviations[1]
	assert.Equal(t, StateRelaxed, relaxedDev.State)
	require.NotNil(t, relaxedDev.Deviations)
	assert.InDelta(t, 0.0, relaxedDev.Deviations[1], 1e-9)
}

func TestAggregateSpansSegments(t *testing.T) {
	ds := newDataset(t, map[string][]float64{
		dataset.PosCol(1): {10, 0, 0, 30},
	})
	motors := []config.MotorConfig{motorM3()}
	segments := []SegmentResult{
		{SubSegments: []SubSegment{subSeg("M3", StateStretched, Interval{0, 0})}},
		{SubSegments: []SubSegment{subSeg("M3", StateStretched, Interval{3, 3})}},
	}

	totals, _ := Aggregate(ds, segments, motors, []int{1})
	assert.InDelta(t, 20.0, totals[0].Averages[1], 1e-9)
	assert.Equal(t, 2, totals[0].Samples)
}
