// Package chart renders the frequency response as a standalone HTML page.
package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/sandeepzgk/ESR-System-sub000/internal/format"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

const pageTitle = "RC Network Frequency Response"

// Render writes an HTML page plotting impedance, total current and phase
// against a logarithmic frequency axis, with the operating and transition
// frequencies marked. An empty series renders a page carrying its error.
func Render(w io.Writer, resp models.FrequencyResponse, result models.CircuitResult) error {
	page := components.NewPage()
	page.PageTitle = pageTitle
	page.SetLayout(components.PageFlexLayout)

	if len(resp.Points) == 0 {
		page.AddCharts(unavailable(resp, result))
		return page.Render(w)
	}

	subtitle := fmt.Sprintf("Operating point %s: %s total, %s",
		format.Frequency(resp.OperatingFrequency), format.SI(result.TotalCurrent, "A"), result.Regime)

	impedance := newLine("Impedance", subtitle, "|Z| (Ω)", "log")
	impedance.AddSeries("Impedance", series(resp, func(p models.FrequencyPoint) float64 { return p.Impedance }, true),
		markers(resp)...)

	current := newLine("Total current", subtitle, "I (A)", "log")
	current.AddSeries("Total current", series(resp, func(p models.FrequencyPoint) float64 { return p.Current }, true),
		markers(resp)...)

	phase := newLine("Phase angle", subtitle, "φ (°)", "value")
	phase.AddSeries("Phase angle", series(resp, func(p models.FrequencyPoint) float64 { return p.PhaseAngle }, false),
		markers(resp)...)

	page.AddCharts(impedance, current, phase)
	return page.Render(w)
}

func newLine(title, subtitle, yName, yType string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle,
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f (Hz)",
			Type: "log",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Type:  yType,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	return line
}

// series pairs each frequency with its value. Values that cannot be drawn are
// skipped: non-finite ones always, non-positive ones on a log axis.
func series(resp models.FrequencyResponse, value func(models.FrequencyPoint) float64, logAxis bool) []opts.LineData {
	data := make([]opts.LineData, 0, len(resp.Points))
	for _, p := range resp.Samples() {
		v := value(p)
		if math.IsNaN(v) || math.IsInf(v, 0) || (logAxis && v <= 0) {
			continue
		}
		data = append(data, opts.LineData{Value: []float64{p.Frequency, v}})
	}
	return data
}

func markers(resp models.FrequencyResponse) []charts.SeriesOpts {
	items := []opts.MarkLineNameXAxisItem{
		{Name: "Operating " + format.Frequency(resp.OperatingFrequency), XAxis: resp.OperatingFrequency},
	}
	if resp.TransitionFrequency > 0 {
		items = append(items, opts.MarkLineNameXAxisItem{
			Name:  "Transition " + format.Frequency(resp.TransitionFrequency),
			XAxis: resp.TransitionFrequency,
		})
	}
	return []charts.SeriesOpts{
		charts.WithMarkLineNameXAxisItemOpts(items...),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol: []string{"none"},
			Label:  &opts.Label{Show: opts.Bool(true), Formatter: "{b}"},
		}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	}
}

func unavailable(resp models.FrequencyResponse, result models.CircuitResult) *charts.Line {
	reason := resp.Error
	if reason == "" {
		reason = "No frequency response data"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle,
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Frequency response unavailable",
			Subtitle: fmt.Sprintf("%s. Total current %s, %s", reason, format.SI(result.TotalCurrent, "A"), result.Regime),
		}),
	)
	return line
}
