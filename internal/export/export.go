package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"population-dashboard-go/pkg/model"
)

// SheetName is the worksheet holding the exported rows
const SheetName = "Countries"

// CountryColumnWidth is the width of the country name column
const CountryColumnWidth = 28

// ContentType is the MIME type of the workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func values(c model.Country) []any {
	vals := []any{
		c.Country, c.Young, c.Old, c.Density, c.Population, c.Female, c.Male, c.SexRatio,
		c.WorkingAge, c.YouthDependency, c.OldAgeDependency, c.TotalDependency,
		nil, nil,
	}
	// null metadata stays an empty cell
	if c.ISOAlpha3 != "" {
		vals[12] = c.ISOAlpha3
	}
	if c.Continent != "" {
		vals[13] = c.Continent
	}
	return vals
}

// WriteXLSX writes rows as a single-sheet workbook with the enriched CSV header
func WriteXLSX(w io.Writer, rows []model.Country) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, name := range model.EnrichedColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", i+1, err)
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(model.EnrichedColumns), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for rowIdx, r := range rows {
		for colIdx, v := range values(r) {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("row %d cell %d: %w", rowIdx+2, colIdx+1, err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", CountryColumnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
