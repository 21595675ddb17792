package store

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/msto63/mRW/internal/calculator"
)

var csvHeader = []string{"operator", "operand_a", "operand_b", "result", "timestamp"}

// CSVFile stores the history as CSV, one calculation per row.
type CSVFile struct {
	path string
}

// NewCSVFile creates a CSV gateway for path.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// Path returns the history file path.
func (f *CSVFile) Path() string {
	return f.path
}

// Save writes entries in chronological order.
func (f *CSVFile) Save(entries []calculator.Calculation) error {
	return save(f.path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write(csvHeader); err != nil {
			return err
		}
		for _, c := range entries {
			row := []string{
				c.Operator.String(),
				formatFloat(c.OperandA),
				formatFloat(c.OperandB),
				formatFloat(c.Result),
				formatTime(c.Timestamp),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

// Load reads the history. Rows carry four fields, or five when a timestamp
// is present.
func (f *CSVFile) Load() ([]calculator.Calculation, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, persistenceError("load", f.path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var entries []calculator.Calculation
	row := 0
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, corruptError(f.path, row, "%v", parseErr.Err)
			}
			return nil, persistenceError("load", f.path, err)
		}

		if row == 1 && isHeader(fields) {
			continue
		}

		calc, err := f.parseRow(row, fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, calc)
	}

	return entries, nil
}

func (f *CSVFile) parseRow(row int, fields []string) (calculator.Calculation, error) {
	if len(fields) != 4 && len(fields) != 5 {
		return calculator.Calculation{}, corruptError(f.path, row, "expected 4 or 5 fields, got %d", len(fields))
	}

	var nums [3]float64
	for i := range nums {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
		if err != nil {
			return calculator.Calculation{}, corruptError(f.path, row, "invalid number %q in column %s", fields[i+1], csvHeader[i+1])
		}
		nums[i] = v
	}

	calc, err := record(f.path, row, fields[0], nums[0], nums[1], nums[2])
	if err != nil {
		return calculator.Calculation{}, err
	}

	if len(fields) == 5 && strings.TrimSpace(fields[4]) != "" {
		ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(fields[4]))
		if err != nil {
			return calculator.Calculation{}, corruptError(f.path, row, "invalid timestamp %q", fields[4])
		}
		calc.Timestamp = ts.UTC()
	}
	return calc, nil
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), csvHeader[0])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
