// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for a single dated column, the Frame
// type for a set of aligned columns, and a CSV loader that reads a delimited
// file into a Table of raw cells.
//
// # Values and flags
//
// Every position of a Series carries a Flag alongside its value:
//
//	Observed   a real value
//	Missing    absent in the source, or not computable from absent inputs
//	Undefined  computed but meaningless, e.g. x/0
//
// Non-observed positions hold NaN, so the flag is the only way to tell a
// missing value from an undefined one. Aggregates (Sum, Max, ArgMax)
// consider observed positions only.
//
// # Loading from CSV
//
// Load a table and select the rows for one entity:
//
//	table, err := timeseries.LoadTable("owid-covid-data.csv", nil)
//
//	frame, err := timeseries.FromTable(table, &timeseries.FrameOptions{
//	    IDColumn:     "location",
//	    IDFilter:     "Afghanistan",
//	    ValueColumns: []string{"new_cases", "total_cases"},
//	    FillZero:     []string{"new_cases"},
//	})
//
// FromTable sorts by date, rejects unparsable or repeated dates, and returns
// an empty frame when nothing matches.
//
// # Transformations
//
//	avg := series.Rolling(7)                      // trailing mean, Missing until the window is full
//	pct, err := deaths.Ratio(cases, 100, "cfr")    // Undefined where cases == 0
//	monthly := series.Resample(timeseries.MonthBuckets(frame.Dates), timeseries.AggSum)
//
// # Writing
//
// WriteFrameCSV writes a frame with one column per series; Missing cells are
// empty and Undefined cells are written as NaN.
package timeseries
