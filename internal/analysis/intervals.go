package analysis

// FindIntervals returns the maximal contiguous index ranges where mask is
// true, ordered by start index. A single left-to-right scan: an interval
// opens on a false-to-true transition and closes on the sample before the
// next true-to-false transition, or at the last index if still open.
func FindIntervals(mask []bool) []Interval {
	var intervals []Interval
	inInterval := false
	start := 0

	for i, active := range mask {
		switch {
		case active && !inInterval:
			inInterval = true
			start = i
		case !active && inInterval:
			intervals = append(intervals, Interval{Start: start, End: i - 1})
			inInterval = false
		}
	}
	if inInterval {
		intervals = append(intervals, Interval{Start: start, End: len(mask) - 1})
	}

	return intervals
}
