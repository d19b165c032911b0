package model

// Metric identifies a numeric column the dashboard can rank, map or compare
type Metric string

const (
	MetricPopulation       Metric = "population"
	MetricDensity          Metric = "density"
	MetricTotalDependency  Metric = "total_dependency"
	MetricSexRatio         Metric = "sex_ratio"
	MetricYouthDependency  Metric = "youth_dependency"
	MetricOldAgeDependency Metric = "old_age_dependency"
	MetricWorkingAge       Metric = "working_age"
	MetricYoung            Metric = "young"
	MetricOld              Metric = "old"
)

// MapMetrics are the metrics offered on the choropleth and comparison views
var MapMetrics = []Metric{
	MetricPopulation, MetricDensity, MetricTotalDependency, MetricSexRatio,
}

var metricLabels = map[Metric]string{
	MetricPopulation:       ColPopulation,
	MetricDensity:          ColDensity,
	MetricTotalDependency:  ColTotalDependency,
	MetricSexRatio:         ColSexRatio,
	MetricYouthDependency:  ColYouthDependency,
	MetricOldAgeDependency: ColOldAgeDependency,
	MetricWorkingAge:       ColWorkingAge,
	MetricYoung:            ColYoung,
	MetricOld:              ColOld,
}

// Valid reports whether m is a known metric
func (m Metric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}

// Label returns the column header shown for the metric
func (m Metric) Label() string {
	return metricLabels[m]
}

// Value returns the metric's value for a row
func (m Metric) Value(c Country) float64 {
	switch m {
	case MetricPopulation:
		return c.Population
	case MetricDensity:
		return c.Density
	case MetricTotalDependency:
		return c.TotalDependency
	case MetricSexRatio:
		return c.SexRatio
	case MetricYouthDependency:
		return c.YouthDependency
	case MetricOldAgeDependency:
		return c.OldAgeDependency
	case MetricWorkingAge:
		return c.WorkingAge
	case MetricYoung:
		return c.Young
	case MetricOld:
		return c.Old
	}
	return 0
}
