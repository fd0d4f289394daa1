// Package epi computes epidemiological metrics for one country's series.
//
// A Frame is produced by SelectCountry from the Our World in Data table. It is
// sorted by date and has new_cases and new_deaths zero-filled; every other
// column keeps missing values as missing.
//
// The metrics are independent, pure functions of the frame:
//
//   - Summarize: first date, latest cumulative totals, daily peaks
//   - Monthly: per-month sums and last observed cumulative totals
//   - AddFatalityRate: total_deaths / total_cases × 100 per row
//   - AddRollingAverages: trailing 7-row means of new cases and deaths
//
// Analyze runs all four and collects the results.
package epi
