package dataset

import (
	"fmt"
	"strings"
	"time"
)

// TargetCol returns the dataset column name carrying the commanded setpoint
// for a motor id.
func TargetCol(motorID int) string {
	return fmt.Sprintf("target pos (%d)", motorID)
}

// PosCol returns the dataset column name carrying the measured position for
// a motor id.
func PosCol(motorID int) string {
	return fmt.Sprintf("pos (%d)", motorID)
}

// TimestampCol is the optional wall-clock column used to derive elapsed
// seconds.
const TimestampCol = "timestamp"

// Dataset is an ordered, fully materialized table of samples. Numeric cells
// that failed to parse are stored as NaN; every column has exactly N()
// entries. TSec holds the derived elapsed-seconds value per sample.
type Dataset struct {
	Header      []string
	Columns     map[string][]float64
	TSec        []float64
	Timestamps  []time.Time // zero-valued when the timestamp column is absent or unparsable
	ParseErrors []string
	n           int
}

// N returns the number of samples.
func (d *Dataset) N() int { return d.n }

// HasColumn reports whether a named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.Columns[name]
	return ok
}

// Column returns the values of a named column, or nil if absent.
func (d *Dataset) Column(name string) []float64 {
	return d.Columns[name]
}

// SchemaError reports every required column missing from a dataset. It is
// produced before any mask is built.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns in CSV: %s", strings.Join(e.Missing, ", "))
}

// EnsureColumns verifies all named columns exist, collecting every missing
// one into a single SchemaError.
func (d *Dataset) EnsureColumns(columns []string) error {
	var missing []string
	for _, col := range columns {
		if !d.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// timestampLayouts are tried in order when parsing the timestamp column.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// deriveElapsed fills TSec. With a fully parsable timestamp column the
// elapsed seconds run from the first sample; otherwise the sample index is
// used, matching arrival order.
func (d *Dataset) deriveElapsed(rawTimestamps []string) {
	d.TSec = make([]float64, d.n)

	if rawTimestamps != nil {
		parsed := make([]time.Time, d.n)
		ok := true
		for i, raw := range rawTimestamps {
			t, valid := parseTimestamp(raw)
			if !valid {
				ok = false
				break
			}
			parsed[i] = t
		}
		if ok && d.n > 0 {
			d.Timestamps = parsed
			for i, t := range parsed {
				d.TSec[i] = t.Sub(parsed[0]).Seconds()
			}
			return
		}
	}

	for i := range d.TSec {
		d.TSec[i] = float64(i)
	}
}

// FromColumns builds a dataset from already materialized columns, for
// callers that do not go through the CSV loader. Every column must share
// the same length. When tsec is nil, elapsed seconds default to the sample
// index.
func FromColumns(columns map[string][]float64, tsec []float64) (*Dataset, error) {
	n := -1
	header := make([]string, 0, len(columns))
	for name, col := range columns {
		if n >= 0 && len(col) != n {
			return nil, fmt.Errorf("column '%s' has %d samples, expected %d", name, len(col), n)
		}
		n = len(col)
		header = append(header, name)
	}
	if n < 0 {
		n = 0
	}
	if tsec != nil && len(tsec) != n {
		return nil, fmt.Errorf("t_sec has %d samples, expected %d", len(tsec), n)
	}

	ds := &Dataset{Header: header, Columns: columns, TSec: tsec, n: n}
	if ds.TSec == nil {
		ds.TSec = make([]float64, n)
		for i := range ds.TSec {
			ds.TSec[i] = float64(i)
		}
	}
	return ds, nil
}

