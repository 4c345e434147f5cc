package xlsx

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/opc"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
)

func buildWorkbook(t *testing.T) *workbook.Workbook {
	t.Helper()
	wb := workbook.New()
	ws := wb.Active()
	for ref, v := range map[string]any{
		"A1": "name",
		"B1": 12.25,
		"C1": true,
		"D1": time.Date(2011, 10, 31, 0, 0, 0, 0, time.UTC),
		"E1": " padded ",
	} {
		if err := ws.Set(ref, v); err != nil {
			t.Fatalf("Set(%s) failed: %v", ref, err)
		}
	}
	ws.MustCell("A2").SetFormulaResult("B1*2", value.Number(24.5))
	if err := ws.SetNumberFormat("B1", "0.000"); err != nil {
		t.Fatal(err)
	}
	if err := ws.MergeCells("A4:B5"); err != nil {
		t.Fatal(err)
	}
	if err := ws.FreezePanes("B2"); err != nil {
		t.Fatal(err)
	}
	if err := ws.SetHyperlink("A1", "https://example.com/docs"); err != nil {
		t.Fatal(err)
	}
	ws.PageSetup.Orientation = workbook.OrientationLandscape
	ws.HeaderFooter.Footer.Center.Text = "Page &[Page]"

	data, err := wb.CreateSheet("Data Two")
	if err != nil {
		t.Fatal(err)
	}
	if err := data.Set("C3", "name"); err != nil {
		t.Fatal(err)
	}
	if err := wb.CreateNamedRange("first_cell", data, "C3"); err != nil {
		t.Fatal(err)
	}
	if err := wb.SetActive(1); err != nil {
		t.Fatal(err)
	}
	wb.Properties.Title = "Round trip"
	wb.Properties.Created = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return wb
}

func saveBytes(t *testing.T, wb *workbook.Workbook, opts ...SaveOption) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Save(wb, &buf, opts...); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return buf.Bytes()
}

func TestSaveParts(t *testing.T) {
	a, err := archive.Open(saveBytes(t, buildWorkbook(t), WithCompressionLevel(flate.BestCompression)))
	if err != nil {
		t.Fatalf("saved package does not open: %v", err)
	}
	for _, part := range []string{
		"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml", "xl/_rels/workbook.xml.rels",
		"xl/styles.xml", "xl/sharedStrings.xml", "xl/worksheets/sheet1.xml", "xl/worksheets/sheet2.xml",
		"xl/worksheets/_rels/sheet1.xml.rels", "docProps/core.xml",
	} {
		if !a.Has(part) {
			t.Errorf("missing part %s", part)
		}
	}

	sheets, err := opc.DetectWorksheets(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 2 || sheets[1].Name != "Data Two" || sheets[1].Part != "xl/worksheets/sheet2.xml" {
		t.Errorf("DetectWorksheets() = %+v", sheets)
	}

	entries, err := opc.ReadContentTypes(a)
	if err != nil {
		t.Fatal(err)
	}
	types := make(map[string]string)
	for _, e := range entries {
		types[e.PartName] = e.MediaType
	}
	if types["xl/worksheets/sheet2.xml"] != opc.MediaWorksheet || types["xl/styles.xml"] != opc.MediaStyles {
		t.Errorf("content types = %v", types)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.xlsx")
	if err := SaveFile(buildWorkbook(t), path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	wb, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := wb.SheetTitles(); len(got) != 2 || got[0] != "Sheet1" || got[1] != "Data Two" {
		t.Fatalf("SheetTitles() = %v", got)
	}
	if wb.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", wb.ActiveIndex())
	}
	ws := firstSheet(t, wb)

	for ref, want := range map[string]value.Value{
		"A1": value.String("name"),
		"B1": value.Number(12.25),
		"C1": value.Bool(true),
		"D1": value.Number(40847),
		"E1": value.String(" padded "),
		"A2": value.Number(24.5),
	} {
		if got := mustCell(t, ws, ref).Value(); !got.Equal(want) {
			t.Errorf("%s = %v, want %v", ref, got, want)
		}
	}
	if f, _ := mustCell(t, ws, "A2").Formula(); f != "B1*2" {
		t.Errorf("A2 formula = %q", f)
	}
	if code, _ := ws.NumberFormat("B1"); code != "0.000" {
		t.Errorf("B1 format = %q", code)
	}
	if !ws.IsDate("D1") {
		t.Error("D1 lost its date format")
	}
	if m := ws.MergedCells(); len(m) != 1 || m[0].String() != "A4:B5" {
		t.Errorf("MergedCells() = %v", m)
	}
	if top, ok := ws.FrozenPanes(); !ok || top.String() != "B2" {
		t.Errorf("FrozenPanes() = %v, %v", top, ok)
	}
	if url, ok := ws.Hyperlink("A1"); !ok || url != "https://example.com/docs" {
		t.Errorf("Hyperlink(A1) = %q, %v", url, ok)
	}
	if ws.PageSetup.Orientation != workbook.OrientationLandscape {
		t.Errorf("Orientation = %v", ws.PageSetup.Orientation)
	}
	if got := ws.HeaderFooter.Footer.Center.Text; got != "Page &[Page]" {
		t.Errorf("footer = %q", got)
	}

	nr, err := wb.NamedRange("first_cell")
	if err != nil || nr.Worksheet.Title() != "Data Two" || nr.Range.Relative().String() != "C3:C3" {
		t.Errorf("NamedRange(first_cell) = %+v, %v", nr, err)
	}
	if wb.Properties.Title != "Round trip" || !wb.Properties.Created.Equal(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)) {
		t.Errorf("Properties = %+v", wb.Properties)
	}
	if wb.SharedStrings().Len() != 2 {
		t.Errorf("shared strings = %v, want name and the padded text", wb.SharedStrings().Strings())
	}
}

func TestSaveMac1904(t *testing.T) {
	wb := workbook.New()
	wb.SetEpoch(value.Mac1904)
	if err := wb.Active().Set("A1", time.Date(2011, 10, 31, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadBytes(saveBytes(t, wb))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Epoch() != value.Mac1904 {
		t.Fatalf("Epoch() = %v", loaded.Epoch())
	}
	if v := mustCell(t, firstSheet(t, loaded), "A1").Value(); !v.Equal(value.Number(39385)) {
		t.Errorf("A1 = %v, want 39385", v)
	}
}

func TestSaveRejectsEmptyWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := Save(workbook.NewEmpty(), &buf); !errors.Is(err, workbook.ErrSheetNotFound) {
		t.Errorf("error = %v, want ErrSheetNotFound", err)
	}
}

func TestLoadExcelizeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Header1")
	f.SetCellValue("Sheet1", "B1", 200.5)
	f.SetCellValue("Sheet1", "C1", true)
	if err := f.SetCellFormula("Sheet1", "D1", "B1*2"); err != nil {
		t.Fatal(err)
	}
	if err := f.MergeCell("Sheet1", "A3", "B4"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Second"); err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("Second", "B2", 100)
	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("Second", "C2", 40847)
	if err := f.SetCellStyle("Second", "C2", "C2", style); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	wb, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if got := wb.SheetTitles(); len(got) != 2 || got[0] != "Sheet1" || got[1] != "Second" {
		t.Fatalf("SheetTitles() = %v", got)
	}
	ws := firstSheet(t, wb)
	if v := mustCell(t, ws, "A1").Value(); !v.Equal(value.String("Header1")) {
		t.Errorf("A1 = %v", v)
	}
	if v := mustCell(t, ws, "B1").Value(); !v.Equal(value.Number(200.5)) {
		t.Errorf("B1 = %v", v)
	}
	if v := mustCell(t, ws, "C1").Value(); !v.Equal(value.Bool(true)) {
		t.Errorf("C1 = %v", v)
	}
	if f, ok := mustCell(t, ws, "D1").Formula(); !ok || f != "B1*2" {
		t.Errorf("D1 formula = %q, %v", f, ok)
	}
	if m := ws.MergedCells(); len(m) != 1 || m[0].String() != "A3:B4" {
		t.Errorf("MergedCells() = %v", m)
	}

	second, err := wb.SheetByTitle("Second")
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.TimeValue("C2")
	if err != nil || !got.Equal(time.Date(2011, 10, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("TimeValue(C2) = %v, %v", got, err)
	}
	if !second.IsDate("C2") {
		t.Error("C2 should carry a date format")
	}
}

func TestExcelizeReadsSavedWorkbook(t *testing.T) {
	f, err := excelize.OpenReader(bytes.NewReader(saveBytes(t, buildWorkbook(t))))
	if err != nil {
		t.Fatalf("excelize could not open the package: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[1] != "Data Two" {
		t.Errorf("GetSheetList() = %v", got)
	}
	tests := []struct {
		sheet, cell, want string
	}{
		{"Sheet1", "A1", "name"},
		{"Sheet1", "C1", "TRUE"},
		{"Data Two", "C3", "name"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil || got != tt.want {
			t.Errorf("GetCellValue(%s, %s) = %q, %v; want %q", tt.sheet, tt.cell, got, err, tt.want)
		}
	}
	formula, err := f.GetCellFormula("Sheet1", "A2")
	if err != nil || formula != "B1*2" {
		t.Errorf("GetCellFormula(A2) = %q, %v", formula, err)
	}
	merged, err := f.GetMergeCells("Sheet1")
	if err != nil || len(merged) != 1 || merged[0].GetStartAxis() != "A4" {
		t.Errorf("GetMergeCells() = %v, %v", merged, err)
	}
}
