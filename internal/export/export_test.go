package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"population-dashboard-go/pkg/model"
)

func TestWriteXLSX(t *testing.T) {
	rows := []model.Country{
		{Country: "India", Young: 25, Old: 15, Population: 1428.6, WorkingAge: 60, ISOAlpha3: "IND", Continent: "Asia"},
		{Country: "Atlantis", Young: 20, Old: 20, Population: 1, WorkingAge: 60},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(rows) = %d; want 3", len(got))
	}
	for i, name := range model.EnrichedColumns {
		if got[0][i] != name {
			t.Errorf("header[%d] = %q; want %q", i, got[0][i], name)
		}
	}
	if got[1][0] != "India" || got[1][4] != "1428.6" || got[1][12] != "IND" || got[1][13] != "Asia" {
		t.Errorf("India row = %v", got[1])
	}
	if w, err := f.GetColWidth(SheetName, "A"); err != nil || w != CountryColumnWidth {
		t.Errorf("column A width = %v, %v; want %v", w, err, CountryColumnWidth)
	}
	styleID, err := f.GetCellStyle(SheetName, "N1")
	if err != nil {
		t.Fatalf("GetCellStyle(N1) failed: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style.Font == nil || !style.Font.Bold {
		t.Errorf("header N1 style = %+v, %v; want bold", style, err)
	}

	// GetRows trims trailing empty cells
	if len(got[2]) != 12 {
		t.Errorf("Atlantis row has %d cells; want 12 without metadata", len(got[2]))
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("WriteXLSX(nil) failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()
	got, _ := f.GetRows(SheetName)
	if len(got) != 1 {
		t.Errorf("len(rows) = %d; want header only", len(got))
	}
}
