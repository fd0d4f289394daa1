package epi

import (
	"time"

	"github.com/sartorproj/covidstats/timeseries"
)

// MonthlyAggregate summarizes one calendar month of a frame.
type MonthlyAggregate struct {
	Month     time.Time // first day of the month
	NewCases  float64
	NewDeaths float64

	// TotalCases and TotalDeaths are the last observed values in the month,
	// Missing if the month has none.
	TotalCases  Measure
	TotalDeaths Measure
}

// Monthly groups f by calendar month. Months appear in chronological order,
// and only months with at least one row are emitted.
func Monthly(f *timeseries.Frame) ([]MonthlyAggregate, error) {
	cols, err := columns(f, ColNewCases, ColNewDeaths, ColTotalCases, ColTotalDeaths)
	if err != nil {
		return nil, err
	}

	buckets := timeseries.MonthBuckets(f.Dates)
	newCases := cols[0].Resample(buckets, timeseries.AggSum)
	newDeaths := cols[1].Resample(buckets, timeseries.AggSum)
	totalCases := cols[2].Resample(buckets, timeseries.AggLast)
	totalDeaths := cols[3].Resample(buckets, timeseries.AggLast)

	out := make([]MonthlyAggregate, len(buckets))
	for i, b := range buckets {
		out[i] = MonthlyAggregate{
			Month:       b.Start,
			NewCases:    newCases.Values[i],
			NewDeaths:   newDeaths.Values[i],
			TotalCases:  measureOf(totalCases.At(i)),
			TotalDeaths: measureOf(totalDeaths.At(i)),
		}
	}
	return out, nil
}
