// Package chart renders the six PNG charts of an analysis.
//
// Every renderer returns encoded PNG bytes instead of writing a file, so the
// caller can stage all outputs before any of them reaches disk.
package chart

import (
	"bytes"
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sartorproj/covidstats/timeseries"
)

// Output file names.
const (
	DailyFile      = "daily_cases_deaths.png"
	MonthlyFile    = "monthly_cases_deaths.png"
	TotalFile      = "total_cases_deaths.png"
	FatalityFile   = "fatality_rate.png"
	StringencyFile = "stringency_vs_cases.png"
	WavesFile      = "covid_waves.png"
)

// Figure sizes.
const (
	width      = 14 * vg.Inch
	tallHeight = 8 * vg.Inch
	height     = 6 * vg.Inch
)

// tab10 colours.
var (
	blue   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	red    = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	purple = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}
	green  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}

	gridColor = color.Gray{Y: 0xdd}
)

const monthFormat = "Jan 2006"

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	return p
}

// timeAxis fixes the X range of p to dates and labels it by month.
func timeAxis(p *plot.Plot, dates []time.Time) {
	p.X.Tick.Marker = plot.TimeTicks{Format: monthFormat}
	if len(dates) == 0 {
		return
	}
	p.X.Min = float64(dates[0].Unix())
	p.X.Max = float64(dates[len(dates)-1].Unix())
	if p.X.Min == p.X.Max {
		p.X.Min -= 12 * 60 * 60
		p.X.Max += 12 * 60 * 60
	}
}

// points returns the observed positions of s as plot coordinates.
func points(dates []time.Time, s *timeseries.Series) plotter.XYs {
	pts := make(plotter.XYs, 0, s.Len())
	for i, d := range dates {
		if !s.IsObserved(i) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(d.Unix()), Y: s.Values[i]})
	}
	return pts
}

// newLine builds a styled line, or nil when there is nothing to draw.
func newLine(pts plotter.XYs, c color.Color) (*plotter.Line, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	return l, nil
}

func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, label string) error {
	l, err := newLine(pts, c)
	if err != nil || l == nil {
		return err
	}
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

func monthBars(p *plot.Plot, months []time.Time, values []float64, c color.Color) error {
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(8))
	if err != nil {
		return err
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = m.Format(monthFormat)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return nil
}

// render draws a single plot.
func render(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	img := vgimg.New(w, h)
	p.Draw(draw.New(img))
	return encode(img)
}

// renderStacked draws plots one above the other with aligned data areas.
func renderStacked(w, h vg.Length, plots ...*plot.Plot) ([]byte, error) {
	img := vgimg.New(w, h)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}

	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}
	return encode(img)
}

func encode(img *vgimg.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
