package enrich

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"population-dashboard-go/internal/geo"
	"population-dashboard-go/pkg/model"
)

// ErrMalformed is returned when the raw table cannot be enriched
var ErrMalformed = errors.New("malformed input table")

// Resolver maps a country name to its ISO code and continent
type Resolver interface {
	Lookup(name string) (geo.Place, bool)
}

// Ratios holds the columns derived from a row's age brackets
type Ratios struct {
	WorkingAge       float64
	YouthDependency  float64
	OldAgeDependency float64
	TotalDependency  float64
}

// Derive computes the working-age share and dependency ratios from the
// 0-14 and 60+ percentages
func Derive(young, old float64) (Ratios, error) {
	working := 100 - young - old
	if working <= 0 {
		return Ratios{}, fmt.Errorf("working-age share is %.2f%% (young %.2f%%, old %.2f%%)", working, young, old)
	}

	youth := young / working * 100
	oldAge := old / working * 100
	return Ratios{
		WorkingAge:       working,
		YouthDependency:  youth,
		OldAgeDependency: oldAge,
		TotalDependency:  youth + oldAge,
	}, nil
}

// Report summarises an enrichment run
type Report struct {
	Rows       int      `json:"rows"`
	Unresolved []string `json:"unresolved"` // country names without ISO code or continent
}

// Enricher adds derived columns and country metadata to a raw table
type Enricher struct {
	resolver Resolver
}

// NewEnricher creates an enricher; a nil resolver uses the embedded country table
func NewEnricher(resolver Resolver) *Enricher {
	if resolver == nil {
		resolver = geo.Default()
	}
	return &Enricher{resolver: resolver}
}

// Enrich validates the raw frame and returns it with the derived columns appended.
// Derived columns already present in the frame are replaced. Raw cells are kept
// as read; numbers are parsed only to compute the derived values.
func (e *Enricher) Enrich(df dataframe.DataFrame) (dataframe.DataFrame, Report, error) {
	if df.Err != nil {
		return dataframe.DataFrame{}, Report{}, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}
	if err := checkColumns(df); err != nil {
		return dataframe.DataFrame{}, Report{}, err
	}

	countries := df.Col(model.ColCountry).Records()
	if err := checkCountries(countries); err != nil {
		return dataframe.DataFrame{}, Report{}, err
	}
	young, err := floatColumn(df, model.ColYoung)
	if err != nil {
		return dataframe.DataFrame{}, Report{}, err
	}
	old, err := floatColumn(df, model.ColOld)
	if err != nil {
		return dataframe.DataFrame{}, Report{}, err
	}
	for _, col := range []string{model.ColDensity, model.ColPopulation, model.ColFemale, model.ColMale, model.ColSexRatio} {
		if _, err := floatColumn(df, col); err != nil {
			return dataframe.DataFrame{}, Report{}, err
		}
	}

	n := df.Nrow()
	working := make([]string, n)
	youth := make([]string, n)
	oldAge := make([]string, n)
	total := make([]string, n)
	iso := make([]string, n)
	continent := make([]string, n)
	report := Report{Rows: n, Unresolved: []string{}}

	for i := 0; i < n; i++ {
		r, err := Derive(young[i], old[i])
		if err != nil {
			return dataframe.DataFrame{}, Report{}, fmt.Errorf("%w: row %d (%s): %v", ErrMalformed, i+1, countries[i], err)
		}
		working[i] = formatFloat(r.WorkingAge)
		youth[i] = formatFloat(r.YouthDependency)
		oldAge[i] = formatFloat(r.OldAgeDependency)
		total[i] = formatFloat(r.TotalDependency)

		if place, ok := e.resolver.Lookup(countries[i]); ok {
			iso[i] = place.ISOAlpha3
			continent[i] = place.Continent
		} else {
			report.Unresolved = append(report.Unresolved, countries[i])
		}
	}

	out := df.
		Mutate(series.New(working, series.String, model.ColWorkingAge)).
		Mutate(series.New(youth, series.String, model.ColYouthDependency)).
		Mutate(series.New(oldAge, series.String, model.ColOldAgeDependency)).
		Mutate(series.New(total, series.String, model.ColTotalDependency)).
		Mutate(series.New(iso, series.String, model.ColISOAlpha3)).
		Mutate(series.New(continent, series.String, model.ColContinent))
	if out.Err != nil {
		return dataframe.DataFrame{}, Report{}, fmt.Errorf("adding derived columns: %w", out.Err)
	}

	if len(report.Unresolved) > 0 {
		log.Printf("[ENRICH] %d of %d countries could not be resolved to an ISO code or continent", len(report.Unresolved), n)
	}
	return out, report, nil
}

// Run reads a raw CSV table from in and writes the enriched CSV to out.
// Nothing is written when the input is malformed.
func (e *Enricher) Run(in io.Reader, out io.Writer) (Report, error) {
	df, err := ReadCSV(in)
	if err != nil {
		return Report{}, err
	}

	enriched, report, err := e.Enrich(df)
	if err != nil {
		return Report{}, err
	}

	data, err := encode(enriched)
	if err != nil {
		return Report{}, err
	}
	if _, err := out.Write(data); err != nil {
		return Report{}, fmt.Errorf("writing enriched table: %w", err)
	}
	return report, nil
}

// RunFile enriches the raw .csv or .xlsx table at inPath into the CSV file at outPath.
// The output file is left untouched when the input is malformed.
func (e *Enricher) RunFile(inPath, outPath string) (Report, error) {
	df, err := ReadFile(inPath)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", inPath, err)
	}

	enriched, report, err := e.Enrich(df)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", inPath, err)
	}

	data, err := encode(enriched)
	if err != nil {
		return Report{}, err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return Report{}, fmt.Errorf("writing %s: %w", outPath, err)
	}
	log.Printf("[ENRICH] Wrote %d countries to %s", report.Rows, outPath)
	return report, nil
}

func encode(df dataframe.DataFrame) ([]byte, error) {
	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("writing enriched table: %w", err)
	}
	return buf.Bytes(), nil
}

func checkColumns(df dataframe.DataFrame) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	var missing []string
	for _, col := range model.RawColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column(s) %s", ErrMalformed, strings.Join(missing, ", "))
	}
	if df.Nrow() == 0 {
		return fmt.Errorf("%w: no rows", ErrMalformed)
	}
	return nil
}

func checkCountries(countries []string) error {
	seen := make(map[string]int, len(countries))
	for i, c := range countries {
		name := strings.TrimSpace(c)
		if name == "" || name == "NaN" {
			return fmt.Errorf("%w: row %d: empty %s", ErrMalformed, i+1, model.ColCountry)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: row %d: %s %q duplicates row %d", ErrMalformed, i+1, model.ColCountry, name, prev)
		}
		seen[name] = i + 1
	}
	return nil
}

// floatColumn parses a numeric column, rejecting cells that are empty or not finite numbers
func floatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("%w: column %s: %v", ErrMalformed, name, col.Err)
	}
	cells := col.Records()
	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: row %d: column %s is not a number", ErrMalformed, i+1, name)
		}
		values[i] = v
	}
	return values, nil
}

// formatFloat writes the shortest text that parses back to v
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
