// Package report renders an epi.Analysis as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sartorproj/covidstats/epi"
	"github.com/sartorproj/covidstats/timeseries"
)

const (
	notAvailable = "n/a"
	undefined    = "undefined"
)

// Format renders the fixed-order text report for a.
func Format(a *epi.Analysis) string {
	var b strings.Builder
	s := a.Summary

	fmt.Fprintf(&b, "COVID-19 in %s - Analysis Results\n", a.Country)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "First case reported on: %s\n", s.FirstDate.Format(timeseries.DateFormat))
	fmt.Fprintf(&b, "Total cases: %s\n", count(s.TotalCases))
	fmt.Fprintf(&b, "Total deaths: %s\n", count(s.TotalDeaths))
	fmt.Fprintf(&b, "Highest daily cases: %s\n", peak(s.PeakCases))
	fmt.Fprintf(&b, "Highest daily deaths: %s\n", peak(s.PeakDeaths))
	fmt.Fprintf(&b, "Current case fatality rate: %s\n", percent(a.CurrentFatalityRate))

	return b.String()
}

// Write renders the report for a to every writer.
func Write(a *epi.Analysis, writers ...io.Writer) error {
	_, err := io.WriteString(io.MultiWriter(writers...), Format(a))
	return err
}

// count formats a whole-number count with thousands separators.
func count(m epi.Measure) string {
	switch m.Flag {
	case timeseries.Observed:
		return humanize.Commaf(m.Value)
	case timeseries.Undefined:
		return undefined
	}
	return notAvailable
}

func peak(p epi.Peak) string {
	if !p.Valid() {
		return count(p.Measure)
	}
	return fmt.Sprintf("%s on %s", count(p.Measure), p.Date.Format(timeseries.DateFormat))
}

func percent(m epi.Measure) string {
	switch m.Flag {
	case timeseries.Observed:
		return fmt.Sprintf("%.2f%%", m.Value)
	case timeseries.Undefined:
		return undefined
	}
	return notAvailable
}
