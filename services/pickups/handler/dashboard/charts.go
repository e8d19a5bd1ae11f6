package dashboard

import (
	"bytes"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/services/pickups/stats"
)

const (
	hourChartWidth    = 480
	hourChartHeight   = 200
	minuteChartWidth  = 960
	minuteChartHeight = 240
)

var (
	colorArea      = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorAreaFill  = drawing.Color{R: 31, G: 119, B: 180, A: 96}
	colorRule      = drawing.Color{R: 220, G: 38, B: 38, A: 255}
	colorBar       = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorHexagon   = drawing.Color{R: 255, G: 140, B: 0, A: 200}
	colorInvisible = drawing.Color{R: 255, G: 255, B: 255, A: 0}
)

// dotWidths grow with the share of the busiest cell, standing in for extrusion
var dotWidths = []float64{2, 3.5, 5, 7}

// RenderHourChart draws pickups per hour as an area with a rule at the selected hour
func RenderHourChart(hist []int, selected int) ([]byte, error) {
	xs := make([]float64, len(hist))
	ys := make([]float64, len(hist))
	for i, count := range hist {
		xs[i] = float64(i)
		ys[i] = float64(count)
	}
	top := yMax(hist)

	graph := chart.Chart{
		Width:      hourChartWidth,
		Height:     hourChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 8}},
		XAxis: chart.XAxis{
			Name:  "hour",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(stats.HoursPerDay - 1)},
			Ticks: ticks(stats.HoursPerDay, 3),
		},
		YAxis: chart.YAxis{
			Name:  "pickups",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "pickups",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: colorArea,
					StrokeWidth: 1.5,
					FillColor:   colorAreaFill,
				},
			},
			chart.ContinuousSeries{
				Name:    "selected",
				XValues: []float64{float64(selected), float64(selected)},
				YValues: []float64{0, top},
				Style: chart.Style{
					StrokeColor: colorRule,
					StrokeWidth: 2,
				},
			},
		},
	}

	return render(graph.Render)
}

// RenderMinuteChart draws pickups per minute of an hour as bars
func RenderMinuteChart(minutes []int) ([]byte, error) {
	bars := make([]chart.Value, len(minutes))
	for i, count := range minutes {
		label := ""
		if i%5 == 0 {
			label = fmt.Sprintf("%d", i)
		}
		bars[i] = chart.Value{
			Value: float64(count),
			Label: label,
			Style: chart.Style{FillColor: colorBar, StrokeColor: colorBar, StrokeWidth: 0},
		}
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no minutes to render")
	}

	graph := chart.BarChart{
		Width:      minuteChartWidth,
		Height:     minuteChartHeight,
		BarWidth:   10,
		BarSpacing: 4,
		Background: chart.Style{Padding: chart.Box{Top: 24}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: yMax(minutes)},
		},
		Bars: bars,
	}

	return render(graph.Render)
}

// RenderMap draws the binned pickups of a view as a scatter panel.
// Empty views still render their bounds.
func RenderMap(view models.MapView) ([]byte, error) {
	bounds := stats.ViewBounds(view.View, stats.MapWidth, stats.MapHeight)

	maxCount := 0
	for _, bin := range view.Bins {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}

	groups := make([][2][]float64, len(dotWidths))
	for _, bin := range view.Bins {
		class := sizeClass(bin.Count, maxCount)
		groups[class][0] = append(groups[class][0], bin.Longitude)
		groups[class][1] = append(groups[class][1], bin.Latitude)
	}

	series := make([]chart.Series, 0, len(groups)+1)
	for class, group := range groups {
		if len(group[0]) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			XValues: group[0],
			YValues: group[1],
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    dotWidths[class],
				DotColor:    colorHexagon,
			},
		})
	}
	if len(series) == 0 {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{view.Longitude},
			YValues: []float64{view.Latitude},
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    1,
				DotColor:    colorInvisible,
			},
		})
	}

	graph := chart.Chart{
		Width:  stats.MapWidth,
		Height: stats.MapHeight,
		XAxis: chart.XAxis{
			Range:          &chart.ContinuousRange{Min: bounds.MinLon, Max: bounds.MaxLon},
			ValueFormatter: coordinateFormatter,
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: bounds.MinLat, Max: bounds.MaxLat},
			ValueFormatter: coordinateFormatter,
		},
		Series: series,
	}

	return render(graph.Render)
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// sizeClass buckets count into one of the dot widths relative to max
func sizeClass(count, max int) int {
	if max <= 0 {
		return 0
	}
	class := (count*len(dotWidths) - 1) / max
	if class < 0 {
		return 0
	}
	if class >= len(dotWidths) {
		return len(dotWidths) - 1
	}
	return class
}

// yMax keeps the value axis non-degenerate for all-zero data
func yMax(counts []int) float64 {
	top := 1
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	return float64(top)
}

// ticks labels every nth value of [0, n) and always the last one, since
// explicit ticks also fix the axis range
func ticks(n, every int) []chart.Tick {
	out := make([]chart.Tick, 0, n/every+2)
	for i := 0; i < n; i += every {
		out = append(out, chart.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	if (n-1)%every != 0 {
		out = append(out, chart.Tick{Value: float64(n - 1), Label: fmt.Sprintf("%d", n-1)})
	}
	return out
}

func coordinateFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.3f", f)
	}
	return ""
}
