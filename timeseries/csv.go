package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Delimiter rune // Field delimiter (default: ',')
	SkipRows  int  // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Delimiter: ',',
	}
}

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("timeseries: csv has no header row")

// Table is a delimited file held in memory as raw cells.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
	lines []int
}

// Column returns the position of a header column, or -1.
func (t *Table) Column(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx
	}
	return -1
}

// Cell returns the trimmed cell at row, col. Cells beyond a short row are empty.
func (t *Table) Cell(row, col int) string {
	record := t.Rows[row]
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(record[col], "\""))
}

// Line returns the 1-based line in the source where row starts.
func (t *Table) Line(row int) int {
	if row < 0 || row >= len(t.lines) {
		return 0
	}
	return t.lines[row]
}

// LoadTable loads a table from a CSV file.
func LoadTable(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("timeseries: open %s: %w", filename, err)
	}
	defer file.Close()

	t, err := LoadTableFromReader(bufio.NewReader(file), opts)
	if err != nil {
		return nil, fmt.Errorf("timeseries: read %s: %w", filename, err)
	}
	return t, nil
}

// LoadTableFromReader loads a table from an io.Reader.
func LoadTableFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	// Rows may be short; missing trailing cells read as empty.
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		// Strip a UTF-8 byte order mark from the first column name.
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.TrimSpace(strings.Trim(h, "\""))
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		t.Rows = append(t.Rows, record)
		t.lines = append(t.lines, line)
	}

	return t, nil
}

// parseValue interprets a numeric cell. ok is false for the absent markers.
func parseValue(cell string) (v float64, ok bool, err error) {
	switch cell {
	case "", "NA", "NaN", "nan", "null":
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false, fmt.Errorf("non-finite value %q", cell)
	}
	return v, true, nil
}

// WriteFrameCSV writes a frame as CSV: a date column followed by every
// series in column order. Missing cells are written empty and Undefined
// cells as NaN.
func WriteFrameCSV(w io.Writer, f *Frame) error {
	writer := csv.NewWriter(w)

	header := append([]string{"date"}, f.Columns()...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, ts := range f.Dates {
		record[0] = ts.Format(DateFormat)
		for j, name := range f.order {
			v, flag := f.columns[name].At(i)
			switch flag {
			case Observed:
				record[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			case Undefined:
				record[j+1] = "NaN"
			default:
				record[j+1] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
