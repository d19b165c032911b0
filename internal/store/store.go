package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"population-dashboard-go/pkg/model"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by default
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS countries (
    row_order          INTEGER PRIMARY KEY,
    country            TEXT NOT NULL UNIQUE,
    young_pct          DOUBLE PRECISION NOT NULL,
    old_pct            DOUBLE PRECISION NOT NULL,
    density            DOUBLE PRECISION NOT NULL,
    population         DOUBLE PRECISION NOT NULL,
    female             DOUBLE PRECISION NOT NULL,
    male               DOUBLE PRECISION NOT NULL,
    sex_ratio          DOUBLE PRECISION NOT NULL,
    working_age_pct    DOUBLE PRECISION NOT NULL,
    youth_dependency   DOUBLE PRECISION NOT NULL,
    old_age_dependency DOUBLE PRECISION NOT NULL,
    total_dependency   DOUBLE PRECISION NOT NULL,
    iso_alpha3         TEXT NULL,
    continent          TEXT NULL
)`

const selectColumns = `row_order, country, young_pct, old_pct, density, population, female, male,
       sex_ratio, working_age_pct, youth_dependency, old_age_dependency, total_dependency,
       iso_alpha3, continent`

// countryRow is the database shape of model.Country
type countryRow struct {
	RowOrder int `db:"row_order"`
	model.Country
	ISOAlpha3 sql.NullString `db:"iso_alpha3"`
	Continent sql.NullString `db:"continent"`
}

// CountryStore mirrors the enriched table in a SQL database
type CountryStore struct {
	db *sqlx.DB
}

// Open connects to the database. driver is "postgres" or "sqlite".
func Open(driver, dsn string) (*CountryStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// every connection to an in-memory database is a different database
		db.SetMaxOpenConns(1)
	}
	return NewCountryStore(db), nil
}

// NewCountryStore creates a store on an existing connection
func NewCountryStore(db *sqlx.DB) *CountryStore {
	return &CountryStore{db: db}
}

// Close closes the underlying connection
func (s *CountryStore) Close() error {
	return s.db.Close()
}

// Migrate creates the countries table if it does not exist
func (s *CountryStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating countries table: %w", err)
	}
	return nil
}

// Publish replaces the table contents with rows in one transaction
func (s *CountryStore) Publish(ctx context.Context, rows []model.Country) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM countries"); err != nil {
		return fmt.Errorf("clearing countries: %w", err)
	}

	insert := `
        INSERT INTO countries (row_order, country, young_pct, old_pct, density, population, female, male,
                               sex_ratio, working_age_pct, youth_dependency, old_age_dependency,
                               total_dependency, iso_alpha3, continent)
        VALUES (:row_order, :country, :young_pct, :old_pct, :density, :population, :female, :male,
                :sex_ratio, :working_age_pct, :youth_dependency, :old_age_dependency,
                :total_dependency, :iso_alpha3, :continent)`
	for i, c := range rows {
		if _, err := tx.NamedExecContext(ctx, insert, toRow(i, c)); err != nil {
			return fmt.Errorf("inserting %s: %w", c.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("[STORE] Published %d countries", len(rows))
	return nil
}

// LoadAll returns every row in row order
func (s *CountryStore) LoadAll(ctx context.Context) ([]model.Country, error) {
	var rows []countryRow
	err := s.db.SelectContext(ctx, &rows, "SELECT "+selectColumns+" FROM countries ORDER BY row_order")
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}

	out := make([]model.Country, len(rows))
	for i, r := range rows {
		out[i] = r.toCountry()
	}
	return out, nil
}

// Count returns the number of stored rows
func (s *CountryStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM countries")
	return n, err
}

func toRow(i int, c model.Country) countryRow {
	return countryRow{
		RowOrder:  i,
		Country:   c,
		ISOAlpha3: sql.NullString{String: c.ISOAlpha3, Valid: c.ISOAlpha3 != ""},
		Continent: sql.NullString{String: c.Continent, Valid: c.Continent != ""},
	}
}

func (r countryRow) toCountry() model.Country {
	c := r.Country
	c.ISOAlpha3 = r.ISOAlpha3.String
	c.Continent = r.Continent.String
	return c
}
