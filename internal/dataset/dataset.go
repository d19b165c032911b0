// Package dataset holds the enriched country table the dashboard reads from.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"population-dashboard-go/pkg/model"
)

// ErrMalformed is returned when the enriched table cannot be loaded
var ErrMalformed = errors.New("malformed dataset")

// invariantTolerance absorbs the rounding of derived columns written as text
const invariantTolerance = 0.01

// Table is the immutable, in-memory enriched dataset.
// It is safe for concurrent readers.
type Table struct {
	rows  []model.Country
	index map[string]int
}

// LoadFile loads the enriched CSV at path
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", path, err)
	}
	log.Printf("[DATASET] Loaded %d countries from %s", t.Len(), path)
	return t, nil
}

// Load parses an enriched CSV table. Any malformed cell fails the whole load.
func Load(r io.Reader) (*Table, error) {
	types := map[string]series.Type{
		model.ColCountry:   series.String,
		model.ColISOAlpha3: series.String,
		model.ColContinent: series.String,
	}
	numeric := numericColumns()
	for _, col := range numeric {
		types[col] = series.Float
	}

	df := dataframe.ReadCSV(r, dataframe.WithTypes(types), dataframe.NaNValues(nil))
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	var missing []string
	for _, col := range model.EnrichedColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrMalformed, strings.Join(missing, ", "))
	}

	values := make(map[string][]float64, len(numeric))
	for _, col := range numeric {
		vals := df.Col(col).Float()
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d: column %q is not a number", ErrMalformed, i+1, col)
			}
		}
		values[col] = vals
	}

	names := df.Col(model.ColCountry).Records()
	iso := df.Col(model.ColISOAlpha3).Records()
	continents := df.Col(model.ColContinent).Records()

	rows := make([]model.Country, df.Nrow())
	for i := range rows {
		rows[i] = model.Country{
			Country:          strings.TrimSpace(names[i]),
			Young:            values[model.ColYoung][i],
			Old:              values[model.ColOld][i],
			Density:          values[model.ColDensity][i],
			Population:       values[model.ColPopulation][i],
			Female:           values[model.ColFemale][i],
			Male:             values[model.ColMale][i],
			SexRatio:         values[model.ColSexRatio][i],
			WorkingAge:       values[model.ColWorkingAge][i],
			YouthDependency:  values[model.ColYouthDependency][i],
			OldAgeDependency: values[model.ColOldAgeDependency][i],
			TotalDependency:  values[model.ColTotalDependency][i],
			ISOAlpha3:        strings.TrimSpace(iso[i]),
			Continent:        strings.TrimSpace(continents[i]),
		}
	}

	return FromRows(rows)
}

// FromRows builds a table from rows in row order
func FromRows(rows []model.Country) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}

	t := &Table{
		rows:  make([]model.Country, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		if row.Country == "" {
			return nil, fmt.Errorf("%w: row %d: empty %s", ErrMalformed, i+1, model.ColCountry)
		}
		if prev, ok := t.index[row.Country]; ok {
			return nil, fmt.Errorf("%w: row %d: %q duplicates row %d", ErrMalformed, i+1, row.Country, prev+1)
		}
		if err := checkInvariants(row); err != nil {
			return nil, fmt.Errorf("%w: row %d (%s): %v", ErrMalformed, i+1, row.Country, err)
		}
		t.rows[i] = row
		t.index[row.Country] = i
	}
	return t, nil
}

func checkInvariants(c model.Country) error {
	if sum := c.Young + c.Old + c.WorkingAge; math.Abs(sum-100) > invariantTolerance {
		return fmt.Errorf("age brackets sum to %.4f", sum)
	}
	if sum := c.YouthDependency + c.OldAgeDependency; math.Abs(sum-c.TotalDependency) > invariantTolerance {
		return fmt.Errorf("total dependency %.4f differs from youth + old-age %.4f", c.TotalDependency, sum)
	}
	return nil
}

func numericColumns() []string {
	return []string{
		model.ColYoung, model.ColOld, model.ColDensity, model.ColPopulation,
		model.ColFemale, model.ColMale, model.ColSexRatio, model.ColWorkingAge,
		model.ColYouthDependency, model.ColOldAgeDependency, model.ColTotalDependency,
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of all rows in row order
func (t *Table) Rows() []model.Country {
	out := make([]model.Country, len(t.rows))
	copy(out, t.rows)
	return out
}

// Find returns the row for a country name
func (t *Table) Find(country string) (model.Country, bool) {
	i, ok := t.index[strings.TrimSpace(country)]
	if !ok {
		return model.Country{}, false
	}
	return t.rows[i], true
}

// Continents returns the continent groups present, sorted, with "Other" last
func (t *Table) Continents() []string {
	seen := make(map[string]bool)
	var names []string
	hasOther := false
	for _, row := range t.rows {
		g := row.ContinentGroup()
		if g == model.OtherContinent {
			hasOther = true
			continue
		}
		if !seen[g] {
			seen[g] = true
			names = append(names, g)
		}
	}
	SortNames(names)
	if hasOther {
		names = append(names, model.OtherContinent)
	}
	return names
}

// CountryNames returns the sorted country names of a continent group.
// "All" or an empty continent lists every country.
func (t *Table) CountryNames(continent string) []string {
	names := []string{}
	all := continent == "" || continent == model.AllContinents
	for _, row := range t.rows {
		if all || row.ContinentGroup() == continent {
			names = append(names, row.Country)
		}
	}
	SortNames(names)
	return names
}

// SortNames sorts names in English collation order
func SortNames(names []string) {
	// Collators keep internal buffers, so each call gets its own
	collate.New(language.English).SortStrings(names)
}
