package model

// Column headers of the raw and enriched tables
const (
	ColCountry          = "Country"
	ColYoung            = "Population Aged 0 to 14 (%)"
	ColOld              = "Population Aged 60 and Over (%)"
	ColDensity          = "Population density"
	ColPopulation       = "Population(in millions)"
	ColFemale           = "Population female (in millions)"
	ColMale             = "Population male (in millions)"
	ColSexRatio         = "Sex ratio (males per 100 females)"
	ColWorkingAge       = "Working-Age (15-59) %"
	ColYouthDependency  = "Youth Dependency Ratio"
	ColOldAgeDependency = "Old-Age Dependency Ratio"
	ColTotalDependency  = "Total Dependency Ratio"
	ColISOAlpha3        = "iso_alpha3"
	ColContinent        = "Continent"
)

// RawColumns lists the eight columns of the raw input table
var RawColumns = []string{
	ColCountry, ColYoung, ColOld, ColDensity,
	ColPopulation, ColFemale, ColMale, ColSexRatio,
}

// DerivedColumns lists the columns added by enrichment, in output order
var DerivedColumns = []string{
	ColWorkingAge, ColYouthDependency, ColOldAgeDependency, ColTotalDependency,
	ColISOAlpha3, ColContinent,
}

// EnrichedColumns lists every column of the enriched table
var EnrichedColumns = append(append([]string{}, RawColumns...), DerivedColumns...)

// OtherContinent groups rows whose continent could not be resolved
const OtherContinent = "Other"

// AllContinents is the filter value that matches every row
const AllContinents = "All"

// Country represents one row of the enriched dataset
type Country struct {
	Country          string  `json:"country" db:"country"`
	Young            float64 `json:"young_pct" db:"young_pct"`
	Old              float64 `json:"old_pct" db:"old_pct"`
	Density          float64 `json:"density" db:"density"`
	Population       float64 `json:"population" db:"population"`
	Female           float64 `json:"female" db:"female"`
	Male             float64 `json:"male" db:"male"`
	SexRatio         float64 `json:"sex_ratio" db:"sex_ratio"`
	WorkingAge       float64 `json:"working_age_pct" db:"working_age_pct"`
	YouthDependency  float64 `json:"youth_dependency" db:"youth_dependency"`
	OldAgeDependency float64 `json:"old_age_dependency" db:"old_age_dependency"`
	TotalDependency  float64 `json:"total_dependency" db:"total_dependency"`
	ISOAlpha3        string  `json:"iso_alpha3,omitempty" db:"-"`
	Continent        string  `json:"continent,omitempty" db:"-"`
}

// Mappable reports whether the row can be placed on a choropleth
func (c Country) Mappable() bool {
	return c.ISOAlpha3 != ""
}

// ContinentGroup returns the continent used for grouping, with unresolved rows under "Other"
func (c Country) ContinentGroup() string {
	if c.Continent == "" {
		return OtherContinent
	}
	return c.Continent
}
