package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"

	"population-dashboard-go/pkg/model"
)

func provider(f Format) gochart.RendererProvider {
	if f == PNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Comparison draws one bar per selected country for a metric, coloured in selection order
func Comparison(w io.Writer, rows []model.Country, metric model.Metric, f Format) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	bars := make([]gochart.Value, 0, len(rows))
	top := 0.0
	for i, r := range rows {
		v := metric.Value(r)
		if v > top {
			top = v
		}
		bars = append(bars, gochart.Value{
			Label: r.Country,
			Value: v,
			Style: gochart.Style{
				FillColor:   colorAt(i),
				StrokeColor: colorAt(i),
				StrokeWidth: 1,
			},
		})
	}
	if top <= 0 {
		top = 1
	}

	bc := gochart.BarChart{
		Title:      fmt.Sprintf("Comparison of %s", metric.Label()),
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		Width:      800,
		Height:     420,
		BarWidth:   60,
		YAxis: gochart.YAxis{
			Name:  metric.Label(),
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	if err := bc.Render(provider(f), w); err != nil {
		return fmt.Errorf("render comparison of %s: %w", metric, err)
	}
	return nil
}

// AgeDonut draws the three age brackets of one country
func AgeDonut(w io.Writer, shares []model.AgeShare, title string, f Format) error {
	values := make([]gochart.Value, 0, len(shares))
	total := 0.0
	for i, s := range shares {
		if s.Percentage <= 0 {
			continue
		}
		total += s.Percentage
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", s.Category, s.Percentage),
			Value: s.Percentage,
			Style: gochart.Style{FillColor: colorAt(i)},
		})
	}
	if len(values) == 0 || total <= 0 {
		return ErrNoData
	}

	dc := gochart.DonutChart{
		Title:  title,
		Width:  480,
		Height: 480,
		Values: values,
	}
	if err := dc.Render(provider(f), w); err != nil {
		return fmt.Errorf("render age donut: %w", err)
	}
	return nil
}
