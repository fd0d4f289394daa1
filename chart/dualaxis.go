package chart

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// rightAxisWidth is the space reserved to the right of the primary plot for
// the secondary axis ticks and label.
const rightAxisWidth = 0.9 * vg.Inch

// renderDualAxis draws primary with its own left axis, then draws line over
// the same data area scaled by secondary's Y range, with that range shown on
// a right-hand axis.
func renderDualAxis(primary, secondary *plot.Plot, line *plotter.Line, label string, w, h vg.Length) ([]byte, error) {
	img := vgimg.New(w, h)
	c := draw.New(img)

	left := draw.Crop(c, 0, -rightAxisWidth, 0, 0)
	primary.Draw(left)
	dc := primary.DataCanvas(left)

	secondary.X.Min, secondary.X.Max = primary.X.Min, primary.X.Max
	if line != nil {
		line.Plot(dc, secondary)
	}
	drawRightAxis(dc, secondary, label)

	return encode(img)
}

func drawRightAxis(dc draw.Canvas, p *plot.Plot, label string) {
	x := dc.Max.X
	_, trY := p.Transforms(&dc)

	dc.StrokeLine2(p.Y.LineStyle, x, dc.Min.Y, x, dc.Max.Y)

	sty := p.Y.Tick.Label
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YCenter
	for _, t := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		if t.IsMinor() {
			continue
		}
		y := trY(t.Value)
		dc.StrokeLine2(p.Y.Tick.LineStyle, x, y, x+p.Y.Tick.Length, y)
		dc.FillText(sty, vg.Point{X: x + p.Y.Tick.Length + vg.Points(2), Y: y}, t.Label)
	}

	lsty := p.Y.Label.TextStyle
	lsty.Rotation = -math.Pi / 2
	lsty.XAlign = draw.XCenter
	lsty.YAlign = draw.YCenter
	dc.FillText(lsty, vg.Point{X: x + rightAxisWidth - vg.Points(10), Y: (dc.Min.Y + dc.Max.Y) / 2}, label)
}
