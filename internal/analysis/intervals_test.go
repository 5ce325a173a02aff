package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maskFromString(s string) []bool {
	mask := make([]bool, len(s))
	for i, c := range s {
		mask[i] = c == '1'
	}
	return mask
}

func TestFindIntervals(t *testing.T) {
	tests := []struct {
		name string
		mask string
		want []Interval
	}{
		{"empty", "", nil},
		{"all false", "0000", nil},
		{"all true", "11111", []Interval{{0, 4}}},
		{"single sample", "1", []Interval{{0, 0}}},
		{"run at start", "11100", []Interval{{0, 2}}},
		{"run at end", "00111", []Interval{{2, 4}}},
		{"two runs", "1100110", []Interval{{0, 1}, {4, 5}}},
		{"alternating", "10101", []Interval{{0, 0}, {2, 2}, {4, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindIntervals(maskFromString(tt.mask))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Intervals must be disjoint, ordered by start, and cover exactly the true
// positions of the input.
func TestFindIntervalsCoverage(t *testing.T) {
	masks := []string{
		"0110100111010001",
		"1000000001",
		"0101010101010101",
		"1111011110111101",
	}
	for _, s := range masks {
		mask := maskFromString(s)
		intervals := FindIntervals(mask)

		covered := make([]bool, len(mask))
		prevEnd := -1
		for _, iv := range intervals {
			require.LessOrEqual(t, iv.Start, iv.End)
			require.Greater(t, iv.Start, prevEnd, "intervals must be ordered and disjoint")
			prevEnd = iv.End
			for i := iv.Start; i <= iv.End; i++ {
				covered[i] = true
			}
		}
		assert.Equal(t, mask, covered, "union of intervals must equal true positions")
	}
}

// Maximality: extending any interval by one sample on either side must hit
// a false sample or the sequence boundary.
func TestFindIntervalsMaximal(t *testing.T) {
	mask := maskFromString("0111001101")
	for _, iv := range FindIntervals(mask) {
		if iv.Start > 0 {
			assert.False(t, mask[iv.Start-1])
		}
		if iv.End < len(mask)-1 {
			assert.False(t, mask[iv.End+1])
		}
	}
}
