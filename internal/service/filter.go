package service

import (
	"strings"

	"population-dashboard-go/pkg/model"
)

// FilterByContinent narrows rows to a continent group. "All" or empty keeps every row,
// "Other" keeps rows whose continent is unknown.
func FilterByContinent(rows []model.Country, continent string) []model.Country {
	continent = strings.TrimSpace(continent)
	if continent == "" || continent == model.AllContinents {
		return rows
	}

	out := make([]model.Country, 0, len(rows))
	for _, r := range rows {
		if r.ContinentGroup() == continent {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCountry narrows rows to a single country; an unknown name yields no rows
func FilterByCountry(rows []model.Country, country string) []model.Country {
	country = strings.TrimSpace(country)
	for _, r := range rows {
		if r.Country == country {
			return []model.Country{r}
		}
	}
	return []model.Country{}
}

// SelectCountries returns the rows of the named countries in selection order.
// Unknown and repeated names are skipped.
func SelectCountries(rows []model.Country, names []string) []model.Country {
	byName := make(map[string]model.Country, len(rows))
	for _, r := range rows {
		byName[r.Country] = r
	}

	out := make([]model.Country, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		r, ok := byName[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, r)
	}
	return out
}

// Mappable keeps the rows that have an ISO code
func Mappable(rows []model.Country) []model.Country {
	out := make([]model.Country, 0, len(rows))
	for _, r := range rows {
		if r.Mappable() {
			out = append(out, r)
		}
	}
	return out
}
