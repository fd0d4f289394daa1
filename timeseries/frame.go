package timeseries

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DateFormat is the layout of the date column.
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDate is returned when a selected row's date cannot be parsed.
	ErrInvalidDate = errors.New("timeseries: invalid date")
	// ErrDuplicateDate is returned when two selected rows share a date.
	ErrDuplicateDate = errors.New("timeseries: duplicate date")
	// ErrInvalidValue is returned when a numeric cell cannot be parsed.
	ErrInvalidValue = errors.New("timeseries: invalid value")
	// ErrMissingColumn is returned when a requested column is not in the header.
	ErrMissingColumn = errors.New("timeseries: missing column")
	// ErrColumnExists is returned when adding a column that is already present.
	ErrColumnExists = errors.New("timeseries: column exists")
)

// FrameOptions selects and normalizes the rows of a Table.
type FrameOptions struct {
	IDColumn     string   // Column identifying the entity (e.g. "location")
	IDFilter     string   // Exact, case-sensitive value to keep
	DateColumn   string   // Column holding dates (default: "date")
	DateFormat   string   // Date layout (default: DateFormat)
	ValueColumns []string // Numeric columns to load, in order
	FillZero     []string // Columns whose missing values become 0
}

// Frame is a set of series sharing one ascending date index.
//
// Columns are append-only: once added, a series is never replaced or removed.
type Frame struct {
	Name  string
	Dates []time.Time

	columns map[string]*Series
	order   []string
}

// NewFrame creates an empty frame over the given dates.
func NewFrame(name string, dates []time.Time) *Frame {
	return &Frame{
		Name:    name,
		Dates:   dates,
		columns: make(map[string]*Series),
	}
}

// Len returns the number of dates in the frame.
func (f *Frame) Len() int {
	return len(f.Dates)
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Column returns the named series.
func (f *Frame) Column(name string) (*Series, bool) {
	s, ok := f.columns[name]
	return s, ok
}

// MustColumn returns the named series or an error wrapping ErrMissingColumn.
func (f *Frame) MustColumn(name string) (*Series, error) {
	s, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return s, nil
}

// AddColumn appends a series to the frame under name.
func (f *Frame) AddColumn(name string, s *Series) error {
	if _, ok := f.columns[name]; ok {
		return fmt.Errorf("%w: %q", ErrColumnExists, name)
	}
	if s.Len() != f.Len() {
		return fmt.Errorf("%w: column %q has %d values, frame has %d", ErrLengthMismatch, name, s.Len(), f.Len())
	}
	s.Name = name
	f.columns[name] = s
	f.order = append(f.order, name)
	return nil
}

// FromTable builds a frame from the rows of t matching opts.IDFilter.
//
// Rows are sorted ascending by date. A row whose date cannot be parsed fails
// the whole call, as does a repeated date. No matching rows yields an empty
// frame, not an error.
func FromTable(t *Table, opts *FrameOptions) (*Frame, error) {
	dateCol := opts.DateColumn
	if dateCol == "" {
		dateCol = "date"
	}
	layout := opts.DateFormat
	if layout == "" {
		layout = DateFormat
	}

	idIdx := t.Column(opts.IDColumn)
	if idIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.IDColumn)
	}
	dateIdx := t.Column(dateCol)
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, dateCol)
	}
	valueIdx := make([]int, len(opts.ValueColumns))
	for i, name := range opts.ValueColumns {
		valueIdx[i] = t.Column(name)
		if valueIdx[i] < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	type row struct {
		pos  int
		date time.Time
	}
	var rows []row
	for i := range t.Rows {
		// The ID is compared untrimmed: " Afghanistan" is another location.
		if idIdx >= len(t.Rows[i]) || t.Rows[i][idIdx] != opts.IDFilter {
			continue
		}
		raw := t.Cell(i, dateIdx)
		ts, err := time.Parse(layout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidDate, t.Line(i), raw)
		}
		rows = append(rows, row{pos: i, date: ts})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].date.Before(rows[b].date)
	})

	dates := make([]time.Time, len(rows))
	for i, r := range rows {
		if i > 0 && !r.date.After(dates[i-1]) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, r.date.Format(layout))
		}
		dates[i] = r.date
	}

	fill := make(map[string]bool, len(opts.FillZero))
	for _, name := range opts.FillZero {
		fill[name] = true
	}

	f := NewFrame(opts.IDFilter, dates)
	for c, name := range opts.ValueColumns {
		s := newEmpty(name, dates)
		for i, r := range rows {
			v, ok, err := parseValue(t.Cell(r.pos, valueIdx[c]))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", ErrInvalidValue, t.Line(r.pos), name, err)
			}
			if ok {
				s.set(i, v)
			}
		}
		if fill[name] {
			s = s.FillMissing(0)
		}
		if err := f.AddColumn(name, s); err != nil {
			return nil, err
		}
	}

	return f, nil
}
