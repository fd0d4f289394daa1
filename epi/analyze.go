package epi

import (
	"fmt"
	"log/slog"

	"github.com/sartorproj/covidstats/timeseries"
)

// Analysis collects every metric computed for one country.
type Analysis struct {
	Country string
	Frame   *timeseries.Frame
	Summary *Summary
	Monthly []MonthlyAggregate

	// CurrentFatalityRate is the fatality rate of the last row.
	CurrentFatalityRate Measure
}

// Analyze appends the derived columns to f and computes the summary and
// monthly aggregates. f must not be empty.
func Analyze(f *timeseries.Frame) (*Analysis, error) {
	if f.Len() == 0 {
		return nil, fmt.Errorf("%w for %q", ErrEmptySeries, f.Name)
	}

	cfr, err := AddFatalityRate(f)
	if err != nil {
		return nil, err
	}
	if err := AddRollingAverages(f, RollingWindow); err != nil {
		return nil, err
	}

	summary, err := Summarize(f)
	if err != nil {
		return nil, err
	}
	monthly, err := Monthly(f)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Country:             f.Name,
		Frame:               f,
		Summary:             summary,
		Monthly:             monthly,
		CurrentFatalityRate: measureOf(cfr.Last()),
	}

	slog.Debug("epi: analysis complete",
		"country", a.Country,
		"rows", f.Len(),
		"months", len(monthly),
		"first_date", summary.FirstDate.Format(timeseries.DateFormat),
	)
	return a, nil
}
