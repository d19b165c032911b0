package service

import (
	"sort"

	"population-dashboard-go/pkg/model"
)

// DefaultRankingSize is the length of top/bottom tables
const DefaultRankingSize = 10

// Summarize computes the aggregate figures of a row set
func Summarize(rows []model.Country) model.Summary {
	if len(rows) == 0 {
		return model.Summary{Empty: true}
	}

	var pop, density, sexRatio float64
	for _, r := range rows {
		pop += r.Population
		density += r.Density
		sexRatio += r.SexRatio
	}
	n := float64(len(rows))
	return model.Summary{
		Countries:       len(rows),
		TotalPopulation: pop,
		AvgDensity:      density / n,
		AvgSexRatio:     sexRatio / n,
	}
}

// Top returns the n rows with the highest metric values, ties in row order
func Top(rows []model.Country, metric model.Metric, n int) []model.Country {
	return rank(rows, metric, n, true)
}

// Bottom returns the n rows with the lowest metric values, ties in row order
func Bottom(rows []model.Country, metric model.Metric, n int) []model.Country {
	return rank(rows, metric, n, false)
}

func rank(rows []model.Country, metric model.Metric, n int, desc bool) []model.Country {
	sorted := make([]model.Country, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := metric.Value(sorted[i]), metric.Value(sorted[j])
		if desc {
			return a > b
		}
		return a < b
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Ranking builds a ranking table for a metric
func Ranking(rows []model.Country, metric model.Metric, order string, n int) model.Ranking {
	var ranked []model.Country
	if order == "bottom" {
		ranked = Bottom(rows, metric, n)
	} else {
		order = "top"
		ranked = Top(rows, metric, n)
	}

	entries := make([]model.RankingEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = model.RankingEntry{Rank: i + 1, Country: r.Country, Value: metric.Value(r)}
	}
	return model.Ranking{
		Metric:  metric,
		Label:   metric.Label(),
		Order:   order,
		Entries: entries,
	}
}
