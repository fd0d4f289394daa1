package epi

import (
	"fmt"
	"time"

	"github.com/sartorproj/covidstats/timeseries"
)

// Measure is a single value together with its state.
type Measure struct {
	Value float64
	Flag  timeseries.Flag
}

// Valid reports whether the measure holds a real value.
func (m Measure) Valid() bool {
	return m.Flag == timeseries.Observed
}

func measureOf(v float64, flag timeseries.Flag) Measure {
	return Measure{Value: v, Flag: flag}
}

// Peak is the largest daily value of a series and the date it occurred.
type Peak struct {
	Measure
	Date time.Time
}

// Summary holds the headline statistics of a frame.
type Summary struct {
	FirstDate time.Time
	LastDate  time.Time

	// TotalCases and TotalDeaths come from the last row by date, as stored.
	// A later downward correction is reported as-is.
	TotalCases  Measure
	TotalDeaths Measure

	PeakCases  Peak
	PeakDeaths Peak
}

// Summarize computes the summary statistics of f.
func Summarize(f *timeseries.Frame) (*Summary, error) {
	if f.Len() == 0 {
		return nil, ErrEmptySeries
	}

	cols, err := columns(f, ColNewCases, ColNewDeaths, ColTotalCases, ColTotalDeaths)
	if err != nil {
		return nil, err
	}

	return &Summary{
		FirstDate:   f.Dates[0],
		LastDate:    f.Dates[f.Len()-1],
		TotalCases:  measureOf(cols[2].Last()),
		TotalDeaths: measureOf(cols[3].Last()),
		PeakCases:   peakOf(f, cols[0]),
		PeakDeaths:  peakOf(f, cols[1]),
	}, nil
}

func peakOf(f *timeseries.Frame, s *timeseries.Series) Peak {
	i := s.ArgMax()
	if i < 0 {
		return Peak{Measure: Measure{Flag: timeseries.Missing}}
	}
	return Peak{Measure: measureOf(s.At(i)), Date: f.Dates[i]}
}

func columns(f *timeseries.Frame, names ...string) ([]*timeseries.Series, error) {
	out := make([]*timeseries.Series, len(names))
	for i, name := range names {
		s, err := f.MustColumn(name)
		if err != nil {
			return nil, fmt.Errorf("epi: %w", err)
		}
		out[i] = s
	}
	return out, nil
}
