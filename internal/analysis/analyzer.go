package analysis

import (
	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

// Analyze runs the full segmentation and state-classification pipeline over
// an in-memory dataset. It is a pure function of (dataset, config): no
// state is carried between runs and identical inputs produce identical
// reports.
//
// The dataset schema is checked up front; a missing column aborts before
// any mask is built. A run that finds no phase segments returns an empty
// (but valid) report.
func Analyze(ds *dataset.Dataset, cfg *config.AnalysisConfig) (*Report, error) {
	if err := ds.EnsureColumns(RequiredColumns(cfg)); err != nil {
		return nil, err
	}

	report := &Report{ReportMotorIDs: cfg.ReportMotorIDs}

	segments := Segments(ds, cfg)
	if len(segments) == 0 {
		return report, nil
	}

	relaxedMask := RelaxedMask(ds, cfg.ActuatedMotors)
	stretchMasks := make(map[int][]bool, len(cfg.ActuatedMotors))
	for _, motor := range cfg.ActuatedMotors {
		stretchMasks[motor.MotorID] = StretchMask(ds, motor)
	}

	for _, segment := range segments {
		subs := MatchSubSegments(ds, segment, cfg.ActuatedMotors, relaxedMask, stretchMasks, cfg.ReportMotorIDs)
		report.Segments = append(report.Segments, SegmentResult{
			Segment:     segment,
			SubSegments: subs,
		})
	}

	report.Totals, report.Deviations = Aggregate(ds, report.Segments, cfg.ActuatedMotors, cfg.ReportMotorIDs)
	return report, nil
}
