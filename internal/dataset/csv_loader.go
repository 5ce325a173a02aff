package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV reads a log file into a Dataset. The first record is the header;
// every later record is one sample. Cells that fail to parse as numbers
// become NaN with a warning collected in ParseErrors rather than aborting
// the load.
func LoadCSV(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("path does not exist: %s", path)
	}
	if info.IsDir() {
		return nil, errors.Errorf("not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open CSV %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read CSV data")
	}
	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	rows := records[1:]

	ds := &Dataset{
		Header:  header,
		Columns: make(map[string][]float64, len(header)),
		n:       len(rows),
	}

	tsIdx := -1
	for i, name := range header {
		if name == TimestampCol {
			tsIdx = i
			continue
		}
		ds.Columns[name] = make([]float64, len(rows))
	}

	var rawTimestamps []string
	if tsIdx >= 0 {
		rawTimestamps = make([]string, len(rows))
	}

	for rowIdx, row := range rows {
		for colIdx, name := range header {
			if colIdx == tsIdx {
				if colIdx < len(row) {
					rawTimestamps[rowIdx] = row[colIdx]
				}
				continue
			}
			col := ds.Columns[name]
			if colIdx >= len(row) {
				col[rowIdx] = math.NaN()
				ds.ParseErrors = append(ds.ParseErrors,
					fmt.Sprintf("row %d: missing value for column '%s', using NaN", rowIdx+2, name))
				continue
			}
			cell := strings.TrimSpace(row[colIdx])
			if cell == "" {
				col[rowIdx] = math.NaN()
				continue
			}
			val, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				col[rowIdx] = math.NaN()
				ds.ParseErrors = append(ds.ParseErrors,
					fmt.Sprintf("row %d: could not parse '%s' in column '%s', using NaN", rowIdx+2, cell, name))
				continue
			}
			col[rowIdx] = val
		}
	}

	ds.deriveElapsed(rawTimestamps)
	return ds, nil
}
