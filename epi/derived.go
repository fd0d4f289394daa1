package epi

import (
	"fmt"

	"github.com/sartorproj/covidstats/timeseries"
)

// FatalityRate computes total_deaths / total_cases × 100 for every row.
//
// Rows with zero cumulative cases are Undefined; rows where either total is
// missing are Missing. f is not modified.
func FatalityRate(f *timeseries.Frame) (*timeseries.Series, error) {
	cols, err := columns(f, ColTotalDeaths, ColTotalCases)
	if err != nil {
		return nil, err
	}
	return cols[0].Ratio(cols[1], 100, ColFatalityRate)
}

// AddFatalityRate computes the fatality rate and appends it to f.
func AddFatalityRate(f *timeseries.Frame) (*timeseries.Series, error) {
	cfr, err := FatalityRate(f)
	if err != nil {
		return nil, err
	}
	if err := f.AddColumn(ColFatalityRate, cfr); err != nil {
		return nil, fmt.Errorf("epi: %w", err)
	}
	return cfr, nil
}

// AddRollingAverages appends trailing window-row means of new cases and new
// deaths to f. The first window-1 rows of each are Missing.
func AddRollingAverages(f *timeseries.Frame, window int) error {
	if window <= 0 {
		return fmt.Errorf("epi: rolling window must be positive, got %d", window)
	}
	cols, err := columns(f, ColNewCases, ColNewDeaths)
	if err != nil {
		return err
	}
	if err := f.AddColumn(ColCases7DayAvg, cols[0].Rolling(window)); err != nil {
		return fmt.Errorf("epi: %w", err)
	}
	if err := f.AddColumn(ColDeaths7DayAvg, cols[1].Rolling(window)); err != nil {
		return fmt.Errorf("epi: %w", err)
	}
	return nil
}
