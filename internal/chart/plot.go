package chart

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"population-dashboard-go/pkg/model"
)

// SexRatioBins is the number of histogram bins for sex ratios
const SexRatioBins = 50

// parity is the sex ratio at which males and females are equal
const parity = 100.0

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, w io.Writer, f Format) error {
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, string(f))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// groupByContinent splits points into per-continent series in a fixed continent order
func groupByContinent(points []model.ScatterPoint, keep func(model.ScatterPoint) bool) ([]string, map[string]plotter.XYs) {
	groups := make(map[string]plotter.XYs)
	for _, pt := range points {
		if keep != nil && !keep(pt) {
			continue
		}
		groups[pt.Continent] = append(groups[pt.Continent], plotter.XY{X: pt.X, Y: pt.Y})
	}

	var order []string
	for _, c := range continentOrder {
		if _, ok := groups[c]; ok {
			order = append(order, c)
		}
	}
	var extra []string
	for c := range groups {
		if !slices.Contains(continentOrder, c) {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(order, extra...), groups
}

func addScatters(p *plot.Plot, order []string, groups map[string]plotter.XYs) error {
	for _, c := range order {
		s, err := plotter.NewScatter(groups[c])
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = continentColor(c)
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(c, s)
	}
	p.Legend.Top = true
	return nil
}

// AgeStructure plots young share against old share, coloured by continent
func AgeStructure(w io.Writer, points []model.ScatterPoint, f Format) error {
	if len(points) == 0 {
		return ErrNoData
	}

	p := newPlot("Age Structure: Young vs. Old Population",
		model.ColYoung, model.ColOld)
	order, groups := groupByContinent(points, nil)
	if err := addScatters(p, order, groups); err != nil {
		return fmt.Errorf("age structure: %w", err)
	}
	if err := save(p, w, f); err != nil {
		return fmt.Errorf("render age structure: %w", err)
	}
	return nil
}

// SexRatio draws the distribution of sex ratios with a dashed line at parity
func SexRatio(w io.Writer, ratios []float64, f Format) error {
	if len(ratios) == 0 {
		return ErrNoData
	}

	p := newPlot("Distribution of Sex Ratios", model.ColSexRatio, "Countries")
	h, err := plotter.NewHist(plotter.Values(ratios), SexRatioBins)
	if err != nil {
		return fmt.Errorf("sex ratio histogram: %w", err)
	}
	h.FillColor = colorAt(0)
	p.Add(h)

	peak := 1.0
	for _, b := range h.Bins {
		if b.Weight > peak {
			peak = b.Weight
		}
	}
	ref, err := plotter.NewLine(plotter.XYs{{X: parity, Y: 0}, {X: parity, Y: peak}})
	if err != nil {
		return fmt.Errorf("sex ratio reference line: %w", err)
	}
	ref.Color = color.RGBA{R: 220, A: 255}
	ref.Width = vg.Points(1.5)
	ref.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(ref)
	p.Legend.Add("Equal (100)", ref)
	p.Legend.Top = true

	if err := save(p, w, f); err != nil {
		return fmt.Errorf("render sex ratio: %w", err)
	}
	return nil
}

// Density plots population against density on log-log axes; non-positive values are skipped
func Density(w io.Writer, points []model.ScatterPoint, f Format) error {
	order, groups := groupByContinent(points, func(pt model.ScatterPoint) bool {
		return pt.X > 0 && pt.Y > 0
	})
	if len(order) == 0 {
		return ErrNoData
	}

	p := newPlot("Population vs. Population Density", model.ColPopulation, model.ColDensity)
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	if err := addScatters(p, order, groups); err != nil {
		return fmt.Errorf("density: %w", err)
	}
	// a degenerate range would be widened through zero, which a log axis cannot show
	widenLog(&p.X.Min, &p.X.Max)
	widenLog(&p.Y.Min, &p.Y.Max)
	if err := save(p, w, f); err != nil {
		return fmt.Errorf("render density: %w", err)
	}
	return nil
}

func widenLog(lo, hi *float64) {
	if *lo == *hi {
		*lo /= 2
		*hi *= 2
	}
}
