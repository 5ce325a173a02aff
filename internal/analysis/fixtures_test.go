package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

func constCol(n int, v float64) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = v
	}
	return col
}

// setRange assigns v to col[start..end] inclusive.
func setRange(col []float64, start, end int, v float64) {
	for i := start; i <= end; i++ {
		col[i] = v
	}
}

func newDataset(t *testing.T, columns map[string][]float64) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromColumns(columns, nil)
	require.NoError(t, err)
	return ds
}

// motorM3 uses zero tolerances so masks require exact position matches.
func motorM3() config.MotorConfig {
	return config.MotorConfig{
		MotorID: 3, Label: "M3",
		RelaxedTarget: 50, RelaxedTolerance: 0,
		StretchedTarget: 100, StretchedTolerance: 0,
	}
}

func motorM4() config.MotorConfig {
	return config.MotorConfig{
		MotorID: 4, Label: "M4",
		RelaxedTarget: 60, RelaxedTolerance: 0,
		StretchedTarget: 110, StretchedTolerance: 0,
	}
}

// singleMotorConfig: home motor 1 at position 0, one actuated motor M3,
// report motor 1.
func singleMotorConfig() *config.AnalysisConfig {
	return &config.AnalysisConfig{
		HomePosition:      0,
		HomeMotorIDs:      []int{1},
		ReportMotorIDs:    []int{1},
		MinSegmentSamples: 10,
		ActuatedMotors:    []config.MotorConfig{motorM3()},
	}
}

func dualMotorConfig() *config.AnalysisConfig {
	cfg := singleMotorConfig()
	cfg.ActuatedMotors = append(cfg.ActuatedMotors, motorM4())
	return cfg
}

// homeColumns returns 20-sample columns with motor 1 commanded to home for
// the whole run, yielding a single phase segment (0, 19).
func homeColumns(n int) map[string][]float64 {
	return map[string][]float64{
		dataset.TargetCol(1): constCol(n, 0),
		dataset.PosCol(1):    constCol(n, 0),
	}
}
