package service

import (
	"errors"
	"fmt"
	"strings"

	"population-dashboard-go/internal/dataset"
	"population-dashboard-go/pkg/model"
)

var (
	// ErrUnknownMetric is returned for a metric name the dashboard does not offer
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrCountryNotFound is returned when a single-country lookup has no row
	ErrCountryNotFound = errors.New("country not found")
)

// DefaultComparison is the initial selection of the comparison view
var DefaultComparison = []string{"United States of America", "China", "India", "Kenya"}

// OverviewRankings are the metrics ranked on the overview page
var OverviewRankings = []model.Metric{
	model.MetricPopulation, model.MetricDensity, model.MetricYouthDependency,
}

// DashboardService assembles dashboard views from the read-only table
type DashboardService struct {
	table *dataset.Table
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(table *dataset.Table) *DashboardService {
	return &DashboardService{table: table}
}

// ParseMetric validates a metric name; an empty name yields fallback
func ParseMetric(name string, fallback model.Metric) (model.Metric, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, nil
	}
	m := model.Metric(name)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return m, nil
}

// Len returns the number of countries loaded
func (s *DashboardService) Len() int {
	return s.table.Len()
}

// Continents returns the continent options, "Other" last
func (s *DashboardService) Continents() []string {
	return s.table.Continents()
}

// Countries returns the sorted country names of a continent ("All" for every country)
func (s *DashboardService) Countries(continent string) []string {
	return s.table.CountryNames(continent)
}

// Rows returns the rows of a continent in row order
func (s *DashboardService) Rows(continent string) []model.Country {
	return FilterByContinent(s.table.Rows(), continent)
}

// Country returns a single country's row
func (s *DashboardService) Country(name string) (model.Country, error) {
	c, ok := s.table.Find(name)
	if !ok {
		return model.Country{}, fmt.Errorf("%w: %q", ErrCountryNotFound, name)
	}
	return c, nil
}

// Summary aggregates the rows of a continent
func (s *DashboardService) Summary(continent string) model.Summary {
	return Summarize(s.Rows(continent))
}

// Ranking ranks the rows of a continent by a metric
func (s *DashboardService) Ranking(continent string, metric model.Metric, order string, n int) (model.Ranking, error) {
	if !metric.Valid() {
		return model.Ranking{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if n <= 0 {
		n = DefaultRankingSize
	}
	return Ranking(s.Rows(continent), metric, order, n), nil
}

// Map returns choropleth points for the mappable rows of a continent
func (s *DashboardService) Map(continent string, metric model.Metric) (model.MapResponse, error) {
	if !metric.Valid() {
		return model.MapResponse{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	rows := s.Rows(continent)
	resp := model.MapResponse{
		Metric:   metric,
		Label:    metric.Label(),
		Points:   []model.MapPoint{},
		Unmapped: []string{},
	}
	for _, r := range rows {
		if !r.Mappable() {
			resp.Unmapped = append(resp.Unmapped, r.Country)
			continue
		}
		resp.Points = append(resp.Points, model.MapPoint{
			ISOAlpha3: r.ISOAlpha3,
			Country:   r.Country,
			Value:     metric.Value(r),
		})
	}
	return resp, nil
}

// Overview assembles the Global Overview view
func (s *DashboardService) Overview(continent string, mapMetric model.Metric) (model.OverviewResponse, error) {
	m, err := s.Map(continent, mapMetric)
	if err != nil {
		return model.OverviewResponse{}, err
	}

	rows := s.Rows(continent)
	rankings := make([]model.Ranking, 0, len(OverviewRankings))
	for _, metric := range OverviewRankings {
		rankings = append(rankings, Ranking(rows, metric, "top", DefaultRankingSize))
	}

	return model.OverviewResponse{
		Continent: continentLabel(continent),
		Summary:   Summarize(rows),
		Map:       m,
		Rankings:  rankings,
	}, nil
}

// DeepDive assembles the Demographic Deep-Dive view
func (s *DashboardService) DeepDive(continent string) model.DeepDiveResponse {
	rows := s.Rows(continent)
	resp := model.DeepDiveResponse{
		Continent:    continentLabel(continent),
		AgeStructure: make([]model.ScatterPoint, 0, len(rows)),
		SexRatios:    make([]float64, 0, len(rows)),
		Density:      make([]model.ScatterPoint, 0, len(rows)),
	}
	for _, r := range rows {
		resp.AgeStructure = append(resp.AgeStructure, model.ScatterPoint{
			Country: r.Country, Continent: r.ContinentGroup(), X: r.Young, Y: r.Old,
		})
		resp.SexRatios = append(resp.SexRatios, r.SexRatio)
		resp.Density = append(resp.Density, model.ScatterPoint{
			Country: r.Country, Continent: r.ContinentGroup(), X: r.Population, Y: r.Density,
		})
	}
	return resp
}

// CountryProfile assembles the Country-Specific Analysis view. When country is empty
// or outside the continent, the first country of the continent is profiled.
func (s *DashboardService) CountryProfile(continent, country string) model.CountryProfileResponse {
	continent = continentLabel(continent)
	resp := model.CountryProfileResponse{
		Continent:  continent,
		Continents: append([]string{model.AllContinents}, s.Continents()...),
		Countries:  s.Countries(continent),
	}
	if len(resp.Countries) == 0 {
		return resp
	}

	selected := resp.Countries[0]
	country = strings.TrimSpace(country)
	for _, name := range resp.Countries {
		if name == country {
			selected = name
			break
		}
	}

	c, ok := s.table.Find(selected)
	if !ok {
		return resp
	}
	resp.Country = &c
	resp.AgeShares = AgeShares(c)
	return resp
}

// AgeShares splits a country into its three age brackets
func AgeShares(c model.Country) []model.AgeShare {
	return []model.AgeShare{
		{Category: "Aged 0-14", Percentage: c.Young},
		{Category: "Aged 15-59 (Working Age)", Percentage: c.WorkingAge},
		{Category: "Aged 60+", Percentage: c.Old},
	}
}

// Compare assembles the Country Comparison view for the selected countries
func (s *DashboardService) Compare(names []string) model.CompareResponse {
	rows := SelectCountries(s.table.Rows(), names)
	resp := model.CompareResponse{
		Selected: make([]string, 0, len(rows)),
		Rows:     rows,
		Values:   make([]model.MetricValue, 0, len(rows)*len(model.MapMetrics)),
	}
	for _, r := range rows {
		resp.Selected = append(resp.Selected, r.Country)
	}
	// long format: one entry per metric and country
	for _, m := range model.MapMetrics {
		for _, r := range rows {
			resp.Values = append(resp.Values, model.MetricValue{
				Country: r.Country, Metric: m, Label: m.Label(), Value: m.Value(r),
			})
		}
	}
	return resp
}

func continentLabel(continent string) string {
	continent = strings.TrimSpace(continent)
	if continent == "" {
		return model.AllContinents
	}
	return continent
}
