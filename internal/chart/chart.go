package chart

import (
	"errors"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"population-dashboard-go/internal/geo"
	"population-dashboard-go/pkg/model"
)

// ErrNoData is returned when a chart has nothing to draw
var ErrNoData = errors.New("no data to plot")

// Format is an output image format
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat returns the format named by s, or fallback when s is empty or unknown
func ParseFormat(s string, fallback Format) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case SVG:
		return SVG
	case PNG:
		return PNG
	}
	return fallback
}

// ContentType returns the MIME type of images in this format
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
	drawing.ColorFromHex("ff97ff"),
	drawing.ColorFromHex("fecb52"),
}

var continentOrder = []string{
	geo.Africa, geo.Asia, geo.Europe, geo.NorthAmerica, geo.SouthAmerica, geo.Oceania, geo.Antarctica,
	model.OtherContinent,
}

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// continentColor gives every continent the same colour across charts
func continentColor(continent string) drawing.Color {
	for i, c := range continentOrder {
		if c == continent {
			return colorAt(i)
		}
	}
	return colorAt(len(continentOrder))
}
