package analysis

import (
	"math"
	"sort"

	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

// Mask predicates compare float64 columns directly: any comparison
// involving NaN evaluates false, so unparsable samples never satisfy a
// mask.

// withinTolerance reports |value - target| <= tol, inclusive. False for NaN.
func withinTolerance(value, target, tol float64) bool {
	return math.Abs(value-target) <= tol
}

// PhaseMask is true at sample i iff every home motor's target equals the
// configured home position exactly, and, when RequireHomePositionMatch is
// set, its measured position is within the home tolerance as well. Target
// values are discrete commanded setpoints, so they are compared exactly,
// never with tolerance.
func PhaseMask(ds *dataset.Dataset, cfg *config.AnalysisConfig) []bool {
	mask := allTrue(ds.N())
	for _, motorID := range cfg.HomeMotorIDs {
		target := ds.Column(dataset.TargetCol(motorID))
		pos := ds.Column(dataset.PosCol(motorID))
		for i := range mask {
			if !mask[i] {
				continue
			}
			if target[i] != cfg.HomePosition {
				mask[i] = false
				continue
			}
			if cfg.RequireHomePositionMatch && !withinTolerance(pos[i], cfg.HomePosition, cfg.HomeTolerance) {
				mask[i] = false
			}
		}
	}
	return mask
}

// RelaxedMask is true at sample i iff every actuated motor is at its
// relaxed target (exact) with its measured position inside the relaxed
// tolerance band.
func RelaxedMask(ds *dataset.Dataset, motors []config.MotorConfig) []bool {
	mask := allTrue(ds.N())
	for _, motor := range motors {
		target := ds.Column(dataset.TargetCol(motor.MotorID))
		pos := ds.Column(dataset.PosCol(motor.MotorID))
		for i := range mask {
			if !mask[i] {
				continue
			}
			if target[i] != motor.RelaxedTarget ||
				!withinTolerance(pos[i], motor.RelaxedTarget, motor.RelaxedTolerance) {
				mask[i] = false
			}
		}
	}
	return mask
}

// StretchMask is true at sample i iff the given motor is at its stretched
// target (exact) with its measured position inside the stretched tolerance
// band.
func StretchMask(ds *dataset.Dataset, motor config.MotorConfig) []bool {
	target := ds.Column(dataset.TargetCol(motor.MotorID))
	pos := ds.Column(dataset.PosCol(motor.MotorID))
	mask := make([]bool, ds.N())
	for i := range mask {
		mask[i] = target[i] == motor.StretchedTarget &&
			withinTolerance(pos[i], motor.StretchedTarget, motor.StretchedTolerance)
	}
	return mask
}

func allTrue(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

// RequiredColumns lists every dataset column the configuration references,
// sorted for stable error reporting.
func RequiredColumns(cfg *config.AnalysisConfig) []string {
	required := make(map[string]bool)
	for _, motorID := range cfg.HomeMotorIDs {
		required[dataset.TargetCol(motorID)] = true
		required[dataset.PosCol(motorID)] = true
	}
	for _, motorID := range cfg.ReportMotorIDs {
		required[dataset.PosCol(motorID)] = true
	}
	for _, motor := range cfg.ActuatedMotors {
		required[dataset.TargetCol(motor.MotorID)] = true
		required[dataset.PosCol(motor.MotorID)] = true
	}

	columns := make([]string, 0, len(required))
	for col := range required {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

// RequiredPlotColumns extends RequiredColumns with the report motors'
// target columns, which the chart renderer traces alongside positions.
func RequiredPlotColumns(cfg *config.AnalysisConfig) []string {
	required := make(map[string]bool)
	for _, col := range RequiredColumns(cfg) {
		required[col] = true
	}
	for _, motorID := range cfg.ReportMotorIDs {
		required[dataset.TargetCol(motorID)] = true
	}

	columns := make([]string, 0, len(required))
	for col := range required {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
