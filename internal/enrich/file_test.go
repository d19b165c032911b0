package enrich

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"population-dashboard-go/pkg/model"
)

func writeXLSX(t *testing.T, path, csvText string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for rowIdx, line := range strings.Split(strings.TrimSpace(csvText), "\n") {
		for colIdx, v := range strings.Split(line, ",") {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			f.SetCellValue("Sheet1", cell, v)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

func TestEnricher_RunFile(t *testing.T) {
	dir := t.TempDir()
	csvIn := filepath.Join(dir, "raw.csv")
	xlsxIn := filepath.Join(dir, "raw.xlsx")
	if err := os.WriteFile(csvIn, []byte(rawCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	writeXLSX(t, xlsxIn, rawCSV)

	var outputs []string
	for _, in := range []string{csvIn, xlsxIn} {
		out := filepath.Join(dir, filepath.Base(in)+".enriched.csv")
		report, err := NewEnricher(nil).RunFile(in, out)
		if err != nil {
			t.Fatalf("RunFile(%s) failed: %v", in, err)
		}
		if report.Rows != 4 || len(report.Unresolved) != 1 {
			t.Errorf("RunFile(%s) report = %+v", in, report)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), model.ColCountry+",") {
			t.Errorf("output of %s does not start with the header", in)
		}
		outputs = append(outputs, string(data))
	}
	if outputs[0] != outputs[1] {
		t.Errorf("csv and xlsx inputs enrich differently:\n%s\n---\n%s", outputs[0], outputs[1])
	}
}

func TestEnricher_RunFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.csv")
	out := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(in, []byte(header+"India,abc,15,473.4,1428.6,691.3,737.3,106.6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewEnricher(nil).RunFile(in, out); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v; want ErrMalformed", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed run")
	}
}
