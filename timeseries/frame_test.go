package timeseries

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

const owidSample = `iso_code,location,date,new_cases,new_deaths,total_cases,stringency_index
AFG,Afghanistan,2020-02-26,,,,8.33
ALB,Albania,2020-02-24,1,0,1,
AFG,Afghanistan,2020-02-24,5,,5,8.33
AFG,Afghanistan,2020-02-25,0,0,5,
AFG,afghanistan,2020-02-27,9,9,9,9`

func loadSample(t *testing.T, data string) *Table {
	t.Helper()
	table, err := LoadTableFromReader(strings.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	return table
}

func sampleOptions(country string) *FrameOptions {
	return &FrameOptions{
		IDColumn:     "location",
		IDFilter:     country,
		ValueColumns: []string{"new_cases", "new_deaths", "total_cases", "stringency_index"},
		FillZero:     []string{"new_cases", "new_deaths"},
	}
}

func TestFromTableSelectsAndSorts(t *testing.T) {
	f, err := FromTable(loadSample(t, owidSample), sampleOptions("Afghanistan"))
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}

	// The lowercase row is a different location.
	if f.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", f.Len())
	}
	for i := 1; i < f.Len(); i++ {
		if !f.Dates[i].After(f.Dates[i-1]) {
			t.Errorf("Dates not strictly increasing at %d", i)
		}
	}
	want := time.Date(2020, 2, 24, 0, 0, 0, 0, time.UTC)
	if !f.Dates[0].Equal(want) {
		t.Errorf("Expected first date %v, got %v", want, f.Dates[0])
	}

	cases, _ := f.Column("new_cases")
	expected := []float64{5, 0, 0}
	for i, v := range expected {
		if cases.Values[i] != v || cases.Flags[i] != Observed {
			t.Errorf("new_cases[%d]: expected %f observed, got (%f, %v)", i, v, cases.Values[i], cases.Flags[i])
		}
	}
}

func TestFromTableFillsOnlyConfiguredColumns(t *testing.T) {
	f, err := FromTable(loadSample(t, owidSample), sampleOptions("Afghanistan"))
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}

	deaths, _ := f.Column("new_deaths")
	if deaths.Flags[0] != Observed || deaths.Values[0] != 0 {
		t.Errorf("Expected new_deaths[0] zero-filled, got (%f, %v)", deaths.Values[0], deaths.Flags[0])
	}

	total, _ := f.Column("total_cases")
	if total.Flags[2] != Missing || !math.IsNaN(total.Values[2]) {
		t.Errorf("Expected total_cases[2] missing, got (%f, %v)", total.Values[2], total.Flags[2])
	}

	stringency, _ := f.Column("stringency_index")
	if stringency.Flags[1] != Missing {
		t.Errorf("Expected stringency_index[1] missing, got %v", stringency.Flags[1])
	}
}

func TestFromTableNoMatch(t *testing.T) {
	f, err := FromTable(loadSample(t, owidSample), sampleOptions("Atlantis"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("Expected empty frame, got %d rows", f.Len())
	}
	if len(f.Columns()) != 4 {
		t.Errorf("Expected columns to exist on an empty frame, got %v", f.Columns())
	}
}

func TestFromTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		opts *FrameOptions
		want error
	}{
		{
			name: "invalid date",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\nX,2020-02-30,1,1,1,1",
			opts: sampleOptions("X"),
			want: ErrInvalidDate,
		},
		{
			name: "invalid date in another country is ignored",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\nY,garbage,1,1,1,1\nX,2020-02-01,1,1,1,1",
			opts: sampleOptions("X"),
			want: nil,
		},
		{
			name: "duplicate date",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\nX,2020-02-01,1,1,1,1\nX,2020-02-01,2,2,2,2",
			opts: sampleOptions("X"),
			want: ErrDuplicateDate,
		},
		{
			name: "invalid value",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\nX,2020-02-01,lots,1,1,1",
			opts: sampleOptions("X"),
			want: ErrInvalidValue,
		},
		{
			name: "infinite value",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\nX,2020-02-01,1,1,inf,1",
			opts: sampleOptions("X"),
			want: ErrInvalidValue,
		},
		{
			name: "negative infinity in a zero-filled column",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\nX,2020-02-01,-Infinity,1,1,1",
			opts: sampleOptions("X"),
			want: ErrInvalidValue,
		},
		{
			name: "missing column",
			data: "location,date,new_cases\nX,2020-02-01,1",
			opts: sampleOptions("X"),
			want: ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTable(loadSample(t, tt.data), tt.opts)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAddColumn(t *testing.T) {
	f := NewFrame("x", days(3))
	s, _ := New("a", days(3), []float64{1, 2, 3})

	if err := f.AddColumn("a", s); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if err := f.AddColumn("a", s.Copy()); !errors.Is(err, ErrColumnExists) {
		t.Errorf("Expected ErrColumnExists, got %v", err)
	}

	short, _ := New("b", days(2), []float64{1, 2})
	if err := f.AddColumn("b", short); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}

	if _, err := f.MustColumn("b"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestFromTablePaddedLocation(t *testing.T) {
	data := "location,date,new_cases,new_deaths,total_cases,stringency_index\n" +
		" Afghanistan,2020-02-01,1,1,1,1\n" +
		"Afghanistan ,2020-02-02,1,1,1,1\n" +
		"\" Afghanistan \",2020-02-03,1,1,1,1\n" +
		"\"Afghanistan\",2020-02-04,7,1,1,1\n"

	f, err := FromTable(loadSample(t, data), sampleOptions("Afghanistan"))
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if f.Len() != 1 {
		t.Fatalf("Expected only the exact location to match, got %d rows", f.Len())
	}
	want := time.Date(2020, 2, 4, 0, 0, 0, 0, time.UTC)
	if !f.Dates[0].Equal(want) {
		t.Errorf("Expected date %v, got %v", want, f.Dates[0])
	}
}

func TestFromTableErrorLine(t *testing.T) {
	tests := []struct {
		name string
		data string
		skip int
		want string
	}{
		{
			name: "date after skipped row",
			data: "# exported 2024-01-01\n" +
				"location,date,new_cases,new_deaths,total_cases,stringency_index\n" +
				"X,2020-02-01,1,1,1,1\n" +
				"X,2020-02-30,1,1,1,1\n",
			skip: 1,
			want: "line 4",
		},
		{
			name: "value after quoted newline",
			data: "location,date,new_cases,new_deaths,total_cases,stringency_index\n" +
				"\"Y\nZ\",2020-02-01,1,1,1,1\n" +
				"X,2020-02-01,lots,1,1,1\n",
			want: "line 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultCSVOptions()
			opts.SkipRows = tt.skip
			table, err := LoadTableFromReader(strings.NewReader(tt.data), opts)
			if err != nil {
				t.Fatalf("Failed to load CSV: %v", err)
			}
			_, err = FromTable(table, sampleOptions("X"))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error to name %s, got %v", tt.want, err)
			}
		})
	}
}
