package analysis

import (
	"sort"

	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

// Segments extracts the phase segments of a run: intervals of the phase
// mask at least MinSegmentSamples long, ordered by start index, with
// ordinal ids assigned from 1. An empty result means no segment survived
// filtering; callers report that distinctly instead of treating it as an
// error.
func Segments(ds *dataset.Dataset, cfg *config.AnalysisConfig) []PhaseSegment {
	mask := PhaseMask(ds, cfg)

	var kept []Interval
	for _, iv := range FindIntervals(mask) {
		if iv.Len() >= cfg.MinSegmentSamples {
			kept = append(kept, iv)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	segments := make([]PhaseSegment, 0, len(kept))
	for i, iv := range kept {
		segments = append(segments, PhaseSegment{
			ID:       i + 1,
			Interval: iv,
			TStart:   ds.TSec[iv.Start],
			TEnd:     ds.TSec[iv.End],
		})
	}
	return segments
}
