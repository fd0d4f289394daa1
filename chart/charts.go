package chart

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"

	"github.com/sartorproj/covidstats/epi"
	"github.com/sartorproj/covidstats/timeseries"
)

// Image is one rendered chart.
type Image struct {
	Name string
	Data []byte
}

// RenderAll renders the six charts of a, in a fixed order.
func RenderAll(a *epi.Analysis) ([]Image, error) {
	renderers := []struct {
		name   string
		render func(*epi.Analysis) ([]byte, error)
	}{
		{DailyFile, Daily},
		{MonthlyFile, Monthly},
		{TotalFile, Totals},
		{FatalityFile, FatalityRate},
		{StringencyFile, StringencyVsCases},
		{WavesFile, Waves},
	}

	images := make([]Image, 0, len(renderers))
	for _, r := range renderers {
		data, err := r.render(a)
		if err != nil {
			return nil, fmt.Errorf("chart: render %s: %w", r.name, err)
		}
		images = append(images, Image{Name: r.name, Data: data})
	}
	return images, nil
}

func frameColumns(a *epi.Analysis, names ...string) ([]*timeseries.Series, error) {
	out := make([]*timeseries.Series, len(names))
	for i, name := range names {
		s, err := a.Frame.MustColumn(name)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Daily renders daily new cases above daily new deaths.
func Daily(a *epi.Analysis) ([]byte, error) {
	cols, err := frameColumns(a, epi.ColNewCases, epi.ColNewDeaths)
	if err != nil {
		return nil, err
	}
	dates := a.Frame.Dates

	cases := newPlot(fmt.Sprintf("Daily New COVID-19 Cases in %s", a.Country), "Cases")
	timeAxis(cases, dates)
	if err := addLine(cases, points(dates, cols[0]), blue, ""); err != nil {
		return nil, err
	}

	deaths := newPlot(fmt.Sprintf("Daily New COVID-19 Deaths in %s", a.Country), "Deaths")
	timeAxis(deaths, dates)
	if err := addLine(deaths, points(dates, cols[1]), red, ""); err != nil {
		return nil, err
	}

	return renderStacked(width, tallHeight, cases, deaths)
}

// Monthly renders monthly new cases above monthly new deaths as bars.
func Monthly(a *epi.Analysis) ([]byte, error) {
	months := make([]time.Time, len(a.Monthly))
	newCases := make([]float64, len(a.Monthly))
	newDeaths := make([]float64, len(a.Monthly))
	for i, m := range a.Monthly {
		months[i] = m.Month
		newCases[i] = m.NewCases
		newDeaths[i] = m.NewDeaths
	}

	cases := newPlot(fmt.Sprintf("Monthly New COVID-19 Cases in %s", a.Country), "Cases")
	if err := monthBars(cases, months, newCases, blue); err != nil {
		return nil, err
	}

	deaths := newPlot(fmt.Sprintf("Monthly New COVID-19 Deaths in %s", a.Country), "Deaths")
	if err := monthBars(deaths, months, newDeaths, red); err != nil {
		return nil, err
	}

	return renderStacked(width, tallHeight, cases, deaths)
}

// Totals renders cumulative cases and deaths on one chart.
func Totals(a *epi.Analysis) ([]byte, error) {
	cols, err := frameColumns(a, epi.ColTotalCases, epi.ColTotalDeaths)
	if err != nil {
		return nil, err
	}
	dates := a.Frame.Dates

	p := newPlot(fmt.Sprintf("Total COVID-19 Cases and Deaths in %s", a.Country), "Count")
	timeAxis(p, dates)
	p.Legend.Top = true
	p.Legend.Left = true
	if err := addLine(p, points(dates, cols[0]), blue, "Total Cases"); err != nil {
		return nil, err
	}
	if err := addLine(p, points(dates, cols[1]), red, "Total Deaths"); err != nil {
		return nil, err
	}

	return render(p, width, height)
}

// FatalityRate renders the case fatality rate. Undefined and missing rows
// are left out of the line.
func FatalityRate(a *epi.Analysis) ([]byte, error) {
	cols, err := frameColumns(a, epi.ColFatalityRate)
	if err != nil {
		return nil, err
	}
	dates := a.Frame.Dates

	p := newPlot(fmt.Sprintf("COVID-19 Case Fatality Rate in %s (%%)", a.Country), "Fatality Rate (%)")
	timeAxis(p, dates)
	if err := addLine(p, points(dates, cols[0]), purple, ""); err != nil {
		return nil, err
	}

	return render(p, width, height)
}

// StringencyVsCases renders smoothed new cases against the stringency index
// on a second Y axis.
func StringencyVsCases(a *epi.Analysis) ([]byte, error) {
	cols, err := frameColumns(a, epi.ColNewCasesSmoothed, epi.ColStringency)
	if err != nil {
		return nil, err
	}
	dates := a.Frame.Dates

	const casesLabel = "New Cases (7-day avg)"
	const stringencyLabel = "Stringency Index"

	p := newPlot(fmt.Sprintf("Stringency Index vs New COVID-19 Cases in %s", a.Country), casesLabel)
	timeAxis(p, dates)
	p.Legend.Top = true
	p.Legend.Left = true
	if err := addLine(p, points(dates, cols[0]), blue, casesLabel); err != nil {
		return nil, err
	}

	stringency, err := newLine(points(dates, cols[1]), green)
	if err != nil {
		return nil, err
	}
	if stringency != nil {
		p.Legend.Add(stringencyLabel, stringency)
	}

	// The index is a 0-100 score.
	secondary := plot.New()
	secondary.Y.Min = 0
	secondary.Y.Max = 100
	if top := cols[1].Max(); top > secondary.Y.Max {
		secondary.Y.Max = top
	}

	return renderDualAxis(p, secondary, stringency, stringencyLabel, width, height)
}

// Waves renders the 7-day rolling averages of new cases and new deaths.
func Waves(a *epi.Analysis) ([]byte, error) {
	cols, err := frameColumns(a, epi.ColCases7DayAvg, epi.ColDeaths7DayAvg)
	if err != nil {
		return nil, err
	}
	dates := a.Frame.Dates

	p := newPlot(fmt.Sprintf("COVID-19 Waves in %s (7-day averages)", a.Country), "Count")
	timeAxis(p, dates)
	p.Legend.Top = true
	p.Legend.Left = true
	if err := addLine(p, points(dates, cols[0]), blue, "New Cases (7-day avg)"); err != nil {
		return nil, err
	}
	if err := addLine(p, points(dates, cols[1]), red, "New Deaths (7-day avg)"); err != nil {
		return nil, err
	}

	return render(p, width, height)
}
