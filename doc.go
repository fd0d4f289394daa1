// Package covidstats analyses one country's COVID-19 time series.
//
// The module reads the Our World in Data table, keeps the rows of a single
// location, and computes descriptive statistics and derived series from them.
// It follows a single one-way pipeline:
//
//	timeseries.LoadTable   delimited file → Table of raw cells
//	epi.SelectCountry      Table → Frame (sorted, zero-filled new counts)
//	epi.Analyze            Frame → summary, monthly totals, derived columns
//	report / chart         Analysis → text report, six PNG charts
//	output.Bundle          all files committed together
//
// # Quick Start
//
//	table, err := timeseries.LoadTable("owid-covid-data.csv", nil)
//	frame, err := epi.SelectCountry(table, "Afghanistan")
//	analysis, err := epi.Analyze(frame)
//	fmt.Print(report.Format(analysis))
//
// # Packages
//
//   - timeseries: Series, Frame and CSV loading
//   - epi: summary statistics, monthly aggregation, fatality rate, rolling averages
//   - report: text report and Prometheus textfile export
//   - chart: PNG rendering with gonum/plot
//   - output: all-or-nothing file commits
//   - config: optional YAML overrides of the built-in settings
//
// The command in cmd/covidstats wires these together.
package covidstats
