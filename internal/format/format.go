// Package format renders numbers for metric cards and tables with thousands grouping.
package format

import (
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// message.Printer is not safe for concurrent use, so every call gets its own
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Millions formats a population total, e.g. "7,954 Million"
func Millions(v float64) string {
	return printer().Sprintf("%.0f Million", v)
}

// MillionsShort formats a single country's population, e.g. "1,428.6 M"
func MillionsShort(v float64) string {
	return printer().Sprintf("%.1f M", v)
}

// AvgDensity formats a mean density, e.g. "58.21 / km²"
func AvgDensity(v float64) string {
	return printer().Sprintf("%.2f / km²", v)
}

// Density formats a single country's density, e.g. "473.4 / km²"
func Density(v float64) string {
	return printer().Sprintf("%.1f / km²", v)
}

// AvgSexRatio formats a mean sex ratio, e.g. "101.2 m / 100 f"
func AvgSexRatio(v float64) string {
	return printer().Sprintf("%.1f m / 100 f", v)
}

// Decimal formats a value with one decimal
func Decimal(v float64) string {
	return printer().Sprintf("%.1f", v)
}

// Percent formats a share, e.g. "60.0%"
func Percent(v float64) string {
	return printer().Sprintf("%.1f%%", v)
}

// FuncMap exposes the formatters to HTML templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"millions":      Millions,
		"millionsShort": MillionsShort,
		"avgDensity":    AvgDensity,
		"density":       Density,
		"avgSexRatio":   AvgSexRatio,
		"decimal":       Decimal,
		"percent":       Percent,
	}
}
