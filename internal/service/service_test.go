package service

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"population-dashboard-go/internal/dataset"
	"population-dashboard-go/pkg/model"
)

func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	tbl, err := dataset.LoadFile("../dataset/testdata/enriched.csv")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	return NewDashboardService(tbl)
}

func names(rows []model.Country) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country
	}
	return out
}

func TestFilterByContinent(t *testing.T) {
	rows := newTestService(t).Rows("")

	tests := []struct {
		continent string
		want      []string
	}{
		{"", names(rows)},
		{"All", names(rows)},
		{"Asia", []string{"India", "China", "Japan"}},
		{"Africa", []string{"Kenya"}},
		{"Other", []string{"Atlantis"}},
		{"Antarctica", []string{}},
	}
	for _, tc := range tests {
		got := FilterByContinent(rows, tc.continent)
		if !reflect.DeepEqual(names(got), tc.want) {
			t.Errorf("FilterByContinent(%q) = %v; want %v", tc.continent, names(got), tc.want)
		}
		for _, r := range got {
			if tc.continent != "" && tc.continent != "All" && r.ContinentGroup() != tc.continent {
				t.Errorf("FilterByContinent(%q) returned %s from %s", tc.continent, r.Country, r.ContinentGroup())
			}
		}
	}
}

func TestFilterByCountry(t *testing.T) {
	rows := newTestService(t).Rows("")
	if got := FilterByCountry(rows, "Kenya"); len(got) != 1 || got[0].Country != "Kenya" {
		t.Errorf("FilterByCountry(Kenya) = %v; want [Kenya]", names(got))
	}
	got := FilterByCountry(rows, "Narnia")
	if got == nil || len(got) != 0 {
		t.Errorf("FilterByCountry(Narnia) = %#v; want empty non-nil slice", got)
	}
}

func TestSelectCountries(t *testing.T) {
	rows := newTestService(t).Rows("")
	got := SelectCountries(rows, []string{"Kenya", "Narnia", "India", "Kenya", " China "})
	want := []string{"Kenya", "India", "China"}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("SelectCountries = %v; want %v", names(got), want)
	}
	if got := SelectCountries(rows, nil); len(got) != 0 {
		t.Errorf("SelectCountries(nil) = %v; want empty", names(got))
	}
}

func TestMappable(t *testing.T) {
	rows := newTestService(t).Rows("")
	got := Mappable(rows)
	if len(got) != len(rows)-1 {
		t.Errorf("len(Mappable) = %d; want %d", len(got), len(rows)-1)
	}
	for _, r := range got {
		if r.Country == "Atlantis" {
			t.Error("Mappable kept Atlantis")
		}
	}
}

func TestSummarize(t *testing.T) {
	rows := SelectCountries(newTestService(t).Rows(""), []string{"India", "China"})
	s := Summarize(rows)
	if s.Countries != 2 || s.Empty {
		t.Errorf("Summarize = %+v; want 2 countries", s)
	}
	if math.Abs(s.TotalPopulation-2854.3) > 1e-9 {
		t.Errorf("TotalPopulation = %v; want 2854.3", s.TotalPopulation)
	}
	if math.Abs(s.AvgDensity-312.75) > 1e-9 {
		t.Errorf("AvgDensity = %v; want 312.75", s.AvgDensity)
	}
	if math.Abs(s.AvgSexRatio-105.45) > 1e-9 {
		t.Errorf("AvgSexRatio = %v; want 105.45", s.AvgSexRatio)
	}

	empty := Summarize(nil)
	if !empty.Empty || empty.Countries != 0 || empty.AvgDensity != 0 {
		t.Errorf("Summarize(nil) = %+v; want empty", empty)
	}
}

func TestTop_FewerRowsThanN(t *testing.T) {
	rows := newTestService(t).Rows("")
	got := Top(rows, model.MetricPopulation, 10)
	want := []string{"India", "China", "United States of America", "Brazil", "Japan", "Germany", "Kenya", "Atlantis"}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("Top(population, 10) = %v; want %v", names(got), want)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Population < got[i].Population {
			t.Errorf("Top not descending at %d", i)
		}
	}
}

func TestTopBottom_Ties(t *testing.T) {
	rows := []model.Country{
		{Country: "A", Density: 5},
		{Country: "B", Density: 9},
		{Country: "C", Density: 5},
		{Country: "D", Density: 1},
		{Country: "E", Density: 5},
	}
	if got, want := names(Top(rows, model.MetricDensity, 3)), []string{"B", "A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Top = %v; want %v", got, want)
	}
	if got, want := names(Bottom(rows, model.MetricDensity, 3)), []string{"D", "A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Bottom = %v; want %v", got, want)
	}
	if got := names(rows); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestRanking(t *testing.T) {
	rows := newTestService(t).Rows("")
	r := Ranking(rows, model.MetricYouthDependency, "bottom", 2)
	if r.Order != "bottom" || r.Label != model.ColYouthDependency {
		t.Errorf("Ranking order/label = %q/%q", r.Order, r.Label)
	}
	if len(r.Entries) != 2 || r.Entries[0].Country != "Japan" || r.Entries[0].Rank != 1 {
		t.Errorf("Ranking entries = %+v; want Japan first", r.Entries)
	}
	if r := Ranking(rows, model.MetricDensity, "sideways", 1); r.Order != "top" || r.Entries[0].Country != "India" {
		t.Errorf("Ranking with unknown order = %+v; want top with India", r)
	}
}

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric("", model.MetricPopulation); err != nil || m != model.MetricPopulation {
		t.Errorf("ParseMetric(\"\") = %v, %v; want population", m, err)
	}
	if m, err := ParseMetric("sex_ratio", model.MetricPopulation); err != nil || m != model.MetricSexRatio {
		t.Errorf("ParseMetric(sex_ratio) = %v, %v", m, err)
	}
	if _, err := ParseMetric("gdp", model.MetricPopulation); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("ParseMetric(gdp) err = %v; want ErrUnknownMetric", err)
	}
}

func TestDashboardService_Map(t *testing.T) {
	s := newTestService(t)
	m, err := s.Map("", model.MetricDensity)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if len(m.Points) != 7 {
		t.Errorf("len(Points) = %d; want 7", len(m.Points))
	}
	if !reflect.DeepEqual(m.Unmapped, []string{"Atlantis"}) {
		t.Errorf("Unmapped = %v; want [Atlantis]", m.Unmapped)
	}
	if m.Points[0].ISOAlpha3 != "IND" || m.Points[0].Value != 473.4 {
		t.Errorf("Points[0] = %+v; want IND 473.4", m.Points[0])
	}

	unmapped := []struct {
		continent string
		want      []string
	}{
		{"All", []string{"Atlantis"}},
		{"Other", []string{"Atlantis"}},
		{"Asia", []string{}},
	}
	for _, tc := range unmapped {
		m, err := s.Map(tc.continent, model.MetricPopulation)
		if err != nil {
			t.Fatalf("Map(%s) failed: %v", tc.continent, err)
		}
		if !reflect.DeepEqual(m.Unmapped, tc.want) {
			t.Errorf("Map(%s).Unmapped = %v; want %v", tc.continent, m.Unmapped, tc.want)
		}
	}

	if _, err := s.Map("", model.Metric("gdp")); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("Map(gdp) err = %v; want ErrUnknownMetric", err)
	}
}

func TestDashboardService_Overview(t *testing.T) {
	s := newTestService(t)
	o, err := s.Overview("Asia", model.MetricPopulation)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if o.Continent != "Asia" || o.Summary.Countries != 3 {
		t.Errorf("Overview = %s/%d; want Asia/3", o.Continent, o.Summary.Countries)
	}
	if len(o.Rankings) != 3 {
		t.Fatalf("len(Rankings) = %d; want 3", len(o.Rankings))
	}
	if o.Rankings[1].Metric != model.MetricDensity || o.Rankings[1].Entries[0].Country != "India" {
		t.Errorf("density ranking = %+v", o.Rankings[1])
	}

	empty, err := s.Overview("Antarctica", model.MetricPopulation)
	if err != nil {
		t.Fatalf("Overview(Antarctica) failed: %v", err)
	}
	if !empty.Summary.Empty || len(empty.Map.Points) != 0 || len(empty.Rankings[0].Entries) != 0 {
		t.Errorf("Overview(Antarctica) = %+v; want empty state", empty)
	}
}

func TestDashboardService_DeepDive(t *testing.T) {
	d := newTestService(t).DeepDive("")
	if d.Continent != "All" || len(d.AgeStructure) != 8 || len(d.SexRatios) != 8 || len(d.Density) != 8 {
		t.Errorf("DeepDive sizes = %d/%d/%d", len(d.AgeStructure), len(d.SexRatios), len(d.Density))
	}
	if p := d.AgeStructure[3]; p.Country != "Atlantis" || p.Continent != "Other" {
		t.Errorf("AgeStructure[3] = %+v; want Atlantis in Other", p)
	}
}

func TestDashboardService_CountryProfile(t *testing.T) {
	s := newTestService(t)

	p := s.CountryProfile("Asia", "Japan")
	if p.Country == nil || p.Country.Country != "Japan" {
		t.Fatalf("CountryProfile(Asia, Japan) = %+v", p)
	}
	if p.Continents[0] != "All" || p.Continents[len(p.Continents)-1] != "Other" {
		t.Errorf("Continents = %v; want All first and Other last", p.Continents)
	}
	var sum float64
	for _, a := range p.AgeShares {
		sum += a.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("age shares sum = %v; want 100", sum)
	}

	// Kenya is not in Asia, so the first Asian country is shown
	if p := s.CountryProfile("Asia", "Kenya"); p.Country == nil || p.Country.Country != "China" {
		t.Errorf("CountryProfile(Asia, Kenya) country = %+v; want China", p.Country)
	}
	if p := s.CountryProfile("", ""); p.Continent != "All" || p.Country == nil || p.Country.Country != "Atlantis" {
		t.Errorf("CountryProfile(\"\", \"\") = %+v", p)
	}
	if p := s.CountryProfile("Antarctica", ""); p.Country != nil || len(p.Countries) != 0 {
		t.Errorf("CountryProfile(Antarctica) = %+v; want no country", p)
	}
}

func TestDashboardService_Compare(t *testing.T) {
	s := newTestService(t)
	c := s.Compare(DefaultComparison)
	want := []string{"United States of America", "China", "India", "Kenya"}
	if !reflect.DeepEqual(c.Selected, want) {
		t.Errorf("Selected = %v; want %v", c.Selected, want)
	}
	if len(c.Values) != len(want)*len(model.MapMetrics) {
		t.Errorf("len(Values) = %d; want %d", len(c.Values), len(want)*len(model.MapMetrics))
	}
	if v := c.Values[0]; v.Country != "United States of America" || v.Metric != model.MetricPopulation || v.Value != 340 {
		t.Errorf("Values[0] = %+v", v)
	}

	empty := s.Compare(nil)
	if len(empty.Rows) != 0 || len(empty.Values) != 0 {
		t.Errorf("Compare(nil) = %+v; want empty", empty)
	}
}

func TestDashboardService_Country(t *testing.T) {
	s := newTestService(t)
	if c, err := s.Country("Germany"); err != nil || c.ISOAlpha3 != "DEU" {
		t.Errorf("Country(Germany) = %+v, %v", c, err)
	}
	if _, err := s.Country("Narnia"); !errors.Is(err, ErrCountryNotFound) {
		t.Errorf("Country(Narnia) err = %v; want ErrCountryNotFound", err)
	}
}
