// Package geo resolves country names to ISO alpha-3 codes and continents.
package geo

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed countries.csv
var countriesCSV []byte

// Continent names used in the enriched dataset
const (
	Africa       = "Africa"
	Antarctica   = "Antarctica"
	Asia         = "Asia"
	Europe       = "Europe"
	NorthAmerica = "North America"
	Oceania      = "Oceania"
	SouthAmerica = "South America"
)

// Place holds the metadata joined onto a country row
type Place struct {
	ISOAlpha3 string
	Continent string
	Name      string
}

// Resolver looks up places by country name
type Resolver struct {
	byKey map[string]Place
}

var defaultResolver *Resolver

func init() {
	r, err := parseTable(countriesCSV)
	if err != nil {
		panic(fmt.Sprintf("geo: embedded country table: %v", err))
	}
	defaultResolver = r
}

// Default returns the resolver backed by the embedded country table
func Default() *Resolver {
	return defaultResolver
}

// Lookup resolves a country name using the embedded table
func Lookup(name string) (Place, bool) {
	return defaultResolver.Lookup(name)
}

// Lookup resolves a country name. Matching ignores case, diacritics and punctuation.
func (r *Resolver) Lookup(name string) (Place, bool) {
	key := normalizeName(name)
	if key == "" {
		return Place{}, false
	}
	p, ok := r.byKey[key]
	return p, ok
}

// Len returns the number of distinct names the resolver knows
func (r *Resolver) Len() int {
	return len(r.byKey)
}

// parseTable reads rows of alpha3,continent,name,aliases where aliases are '|' separated
func parseTable(data []byte) (*Resolver, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no rows")
	}

	r := &Resolver{byKey: make(map[string]Place, len(records)*2)}
	for i, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("line %d: want 4 fields, got %d", i+2, len(rec))
		}
		p := Place{
			ISOAlpha3: strings.TrimSpace(rec[0]),
			Continent: strings.TrimSpace(rec[1]),
			Name:      strings.TrimSpace(rec[2]),
		}
		if len(p.ISOAlpha3) != 3 || p.Continent == "" || p.Name == "" {
			return nil, fmt.Errorf("line %d: incomplete row", i+2)
		}

		names := []string{p.Name}
		if rec[3] != "" {
			names = append(names, strings.Split(rec[3], "|")...)
		}
		for _, n := range names {
			key := normalizeName(n)
			if key == "" {
				continue
			}
			if prev, ok := r.byKey[key]; ok && prev.ISOAlpha3 != p.ISOAlpha3 {
				return nil, fmt.Errorf("line %d: %q already maps to %s", i+2, n, prev.ISOAlpha3)
			}
			r.byKey[key] = p
		}
	}
	return r, nil
}

// normalizeName folds a name to lowercase ASCII letters and digits
func normalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
