package enrich

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// loadOptions reads every column as text so cells pass through enrichment unchanged.
// Numeric columns are parsed separately by floatColumn.
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	}
}

// ReadCSV loads a raw CSV table into a dataframe
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}
	return df, nil
}

// ReadXLSX loads a sheet of a workbook into a dataframe. The first row is the header.
// An empty sheet name selects the first sheet.
func ReadXLSX(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: sheet %q has no data rows", ErrMalformed, sheet)
	}

	// GetRows drops trailing empty cells
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > width {
			row = row[:width]
		}
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}

	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}
	return df, nil
}

// ReadFile loads a raw table from a .csv or .xlsx file
func ReadFile(path string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, "")
	default:
		f, err := os.Open(path)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		defer f.Close()
		return ReadCSV(f)
	}
}
