package model

// Summary holds the aggregate figures of a row set
type Summary struct {
	Countries       int     `json:"countries"`
	TotalPopulation float64 `json:"total_population"` // millions
	AvgDensity      float64 `json:"avg_density"`
	AvgSexRatio     float64 `json:"avg_sex_ratio"`
	Empty           bool    `json:"empty"`
}

// RankingEntry is one line of a top-N or bottom-N table
type RankingEntry struct {
	Rank    int     `json:"rank"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Ranking is an ordered list of countries by a metric
type Ranking struct {
	Metric  Metric         `json:"metric"`
	Label   string         `json:"label"`
	Order   string         `json:"order"` // "top" or "bottom"
	Entries []RankingEntry `json:"entries"`
}

// MapPoint is one shaded region of the choropleth
type MapPoint struct {
	ISOAlpha3 string  `json:"iso_alpha3"`
	Country   string  `json:"country"`
	Value     float64 `json:"value"`
}

// MapResponse carries the choropleth data for a metric
type MapResponse struct {
	Metric   Metric     `json:"metric"`
	Label    string     `json:"label"`
	Points   []MapPoint `json:"points"`
	Unmapped []string   `json:"unmapped"` // countries without an ISO code
}

// OverviewResponse is the Global Overview view
type OverviewResponse struct {
	Continent string      `json:"continent"`
	Summary   Summary     `json:"summary"`
	Map       MapResponse `json:"map"`
	Rankings  []Ranking   `json:"rankings"`
}

// ScatterPoint is a labelled point for scatter charts
type ScatterPoint struct {
	Country   string  `json:"country"`
	Continent string  `json:"continent"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// DeepDiveResponse is the Demographic Deep-Dive view
type DeepDiveResponse struct {
	Continent    string         `json:"continent"`
	AgeStructure []ScatterPoint `json:"age_structure"`
	SexRatios    []float64      `json:"sex_ratios"`
	Density      []ScatterPoint `json:"density"`
}

// AgeShare is one slice of a country's age structure
type AgeShare struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

// CountryProfileResponse is the Country-Specific Analysis view
type CountryProfileResponse struct {
	Continent  string     `json:"continent"`
	Continents []string   `json:"continents"`
	Countries  []string   `json:"countries"`
	Country    *Country   `json:"country"`
	AgeShares  []AgeShare `json:"age_shares,omitempty"`
}

// MetricValue is one long-format cell of the comparison table
type MetricValue struct {
	Country string  `json:"country"`
	Metric  Metric  `json:"metric"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
}

// CompareResponse is the Country Comparison view
type CompareResponse struct {
	Selected []string      `json:"selected"`
	Rows     []Country     `json:"rows"`
	Values   []MetricValue `json:"values"`
}
