package epi

import (
	"errors"
	"fmt"

	"github.com/sartorproj/covidstats/timeseries"
)

// Source columns of the Our World in Data table.
const (
	ColLocation         = "location"
	ColDate             = "date"
	ColNewCases         = "new_cases"
	ColNewDeaths        = "new_deaths"
	ColTotalCases       = "total_cases"
	ColTotalDeaths      = "total_deaths"
	ColNewCasesSmoothed = "new_cases_smoothed"
	ColStringency       = "stringency_index"
)

// Derived columns appended to the frame.
const (
	ColFatalityRate  = "case_fatality_rate"
	ColCases7DayAvg  = "cases_7day_avg"
	ColDeaths7DayAvg = "deaths_7day_avg"
)

// RollingWindow is the number of rows in a rolling average.
const RollingWindow = 7

// ErrEmptySeries is returned when a frame has no rows.
var ErrEmptySeries = errors.New("epi: no observations")

// SourceColumns lists the numeric columns loaded from the table.
var SourceColumns = []string{
	ColNewCases,
	ColNewDeaths,
	ColTotalCases,
	ColTotalDeaths,
	ColNewCasesSmoothed,
	ColStringency,
}

// SelectCountry builds the working frame for country.
//
// The match on location is exact. A country with no rows yields an empty
// frame; callers that need data should check Len or rely on Summarize
// returning ErrEmptySeries.
func SelectCountry(t *timeseries.Table, country string) (*timeseries.Frame, error) {
	f, err := timeseries.FromTable(t, &timeseries.FrameOptions{
		IDColumn:     ColLocation,
		IDFilter:     country,
		DateColumn:   ColDate,
		DateFormat:   timeseries.DateFormat,
		ValueColumns: SourceColumns,
		FillZero:     []string{ColNewCases, ColNewDeaths},
	})
	if err != nil {
		return nil, fmt.Errorf("epi: select %q: %w", country, err)
	}
	return f, nil
}
