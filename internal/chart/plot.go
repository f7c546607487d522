package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sandeepzgk/ESR-System-sub000/internal/format"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// ErrNoData is returned when a series has nothing drawable on log axes
var ErrNoData = errors.New("no drawable frequency response data")

var (
	impedanceColor = color.RGBA{R: 0x19, G: 0x87, B: 0xc7, A: 0xff}
	markerColor    = color.RGBA{R: 0xc7, G: 0x19, B: 0x79, A: 0xff}
)

// RenderSVG writes a static log-log plot of impedance against frequency with
// the operating point marked. Used where a script-free image is needed.
func RenderSVG(w io.Writer, resp models.FrequencyResponse) error {
	xys := make(plotter.XYs, 0, len(resp.Points))
	for _, p := range resp.Samples() {
		if !drawable(p.Frequency) || !drawable(p.Impedance) {
			continue
		}
		xys = append(xys, plotter.XY{X: p.Frequency, Y: p.Impedance})
	}
	// log axes need at least one strictly positive point to size the range
	if len(xys) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Impedance, operating point %s", format.Frequency(resp.OperatingFrequency))
	p.X.Label.Text = "f (Hz)"
	p.Y.Label.Text = "|Z| (Ω)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to build impedance line: %w", err)
	}
	line.Color = impedanceColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("|Z|", line)

	if op, ok := resp.OperatingPoint(); ok && drawable(op.Impedance) {
		marker, err := plotter.NewScatter(plotter.XYs{{X: op.Frequency, Y: op.Impedance}})
		if err != nil {
			return fmt.Errorf("failed to build operating marker: %w", err)
		}
		marker.Color = markerColor
		marker.Radius = vg.Points(4)
		p.Add(marker)
		p.Legend.Add("operating point", marker)
	}

	// a flat series would otherwise be padded by ±1, which is not positive
	// for impedances at or below 1 Ω
	xmin, xmax, ymin, ymax := plotter.XYRange(xys)
	widenFlat(&p.X, xmin, xmax)
	widenFlat(&p.Y, ymin, ymax)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return fmt.Errorf("failed to create svg canvas: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func widenFlat(axis *plot.Axis, lo, hi float64) {
	if lo < hi {
		return
	}
	axis.Min = lo / 2
	axis.Max = hi * 2
}

func drawable(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
