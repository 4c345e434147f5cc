package workbook

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/value"
)

func TestGarbageCollection(t *testing.T) {
	ws := New().Active()

	ws.MustCell("A1").SetValue(value.Null())
	ws.MustCell("B2").SetValue(value.String("0"))
	ws.MustCell("C4").SetValue(value.Number(0))
	if err := ws.SetComment("D1", Comment{Text: "comment"}); err != nil {
		t.Fatalf("SetComment failed: %v", err)
	}

	ws.GarbageCollect()

	var got []string
	for _, c := range ws.Cells() {
		got = append(got, c.Reference().String())
	}
	want := []string{"D1", "B2", "C4"}
	if len(got) != len(want) {
		t.Fatalf("cells = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cells[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if len(ws.cells) != 3 {
		t.Errorf("storage holds %d cells after collection, want 3", len(ws.cells))
	}
}

func TestCellCreatedLazily(t *testing.T) {
	ws := New().Active()
	c := ws.MustCell("B3")
	if ws.CellCount() != 0 {
		t.Error("an untouched cell should not count")
	}
	if ws.MustCell("b3") != c {
		t.Error("the same reference should return the same cell")
	}
	if ws.Describe(c) != "<Cell Sheet1.B3>" {
		t.Errorf("Describe = %s", ws.Describe(c))
	}
	if c.String() != "<Cell B3>" {
		t.Errorf("String = %s", c)
	}
	if _, err := ws.Cell("AQ0"); !errors.Is(err, cellref.ErrCoordinate) {
		t.Errorf("Cell(AQ0): got %v", err)
	}
}

func TestDimension(t *testing.T) {
	ws := New().Active()
	if got := ws.Dimension().String(); got != "A1:A1" {
		t.Errorf("empty dimension = %s", got)
	}

	_ = ws.Set("B3", 1)
	_ = ws.Set("D2", "x")
	ws.MustCell("Z99")
	if got := ws.Dimension().String(); got != "B2:D3" {
		t.Errorf("dimension = %s, want B2:D3", got)
	}
}

func TestRangeRowsColumns(t *testing.T) {
	ws := New().Active()

	cells, err := ws.Range("A1:C4")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if len(cells) != 4 || len(cells[0]) != 3 {
		t.Fatalf("Range shape = %dx%d, want 4x3", len(cells), len(cells[0]))
	}
	if cells[3][2].Reference().String() != "C4" {
		t.Errorf("last cell = %s", cells[3][2].Reference())
	}

	_ = ws.Set("C3", "x")
	rows := ws.Rows()
	if len(rows) != 3 || len(rows[0]) != 3 {
		t.Errorf("Rows shape = %dx%d, want 3x3", len(rows), len(rows[0]))
	}
	cols := ws.Columns()
	if len(cols) != 3 || cols[2][2].Reference().String() != "C3" {
		t.Errorf("Columns = %v", cols)
	}
}

func TestAppend(t *testing.T) {
	ws := New().Active()

	if err := ws.Append([]any{"This is A1", "This is B1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := ws.AppendMap(map[string]any{"A": "This is A2", "C": "This is C2"}); err != nil {
		t.Fatalf("AppendMap failed: %v", err)
	}
	if err := ws.AppendIndexed(map[int]any{0: "This is A3", 2: 3.5}); err != nil {
		t.Fatalf("AppendIndexed failed: %v", err)
	}

	tests := map[string]string{
		"A1": "This is A1",
		"B1": "This is B1",
		"A2": "This is A2",
		"C2": "This is C2",
		"A3": "This is A3",
	}
	for ref, want := range tests {
		got, err := ws.MustCell(ref).Value().AsString()
		if err != nil || got != want {
			t.Errorf("%s = %q, %v; want %q", ref, got, err, want)
		}
	}
	if n, _ := ws.MustCell("C3").Value().AsNumber(); n != 3.5 {
		t.Errorf("C3 = %v, want 3.5", n)
	}

	if err := ws.Append([]any{struct{}{}}); !errors.Is(err, value.ErrDataType) {
		t.Errorf("unsupported type: got %v", err)
	}
}

func TestSetTextGuessing(t *testing.T) {
	wb := New()
	ws := wb.Active()

	_ = ws.SetText("A1", "42")
	if ws.MustCell("A1").DataType() != value.KindString {
		t.Error("without guessing, text stays a string")
	}

	wb.GuessTypes = true
	_ = ws.SetText("A2", "42")
	_ = ws.SetText("A3", "3.14%")
	_ = ws.SetText("A4", "03:40:16")
	_ = ws.SetText("A5", "0800")

	if ws.MustCell("A2").DataType() != value.KindNumber {
		t.Error("A2 should be numeric")
	}
	if code, _ := ws.NumberFormat("A3"); code != "0%" {
		t.Errorf("A3 format = %q, want 0%%", code)
	}
	if !ws.IsDate("A4") {
		t.Error("A4 should be a time")
	}
	if ws.MustCell("A5").DataType() != value.KindString {
		t.Error("A5 should stay a string")
	}
}

func TestDateHandling(t *testing.T) {
	wb := New()
	ws := wb.Active()
	when := time.Date(2010, 7, 13, 6, 37, 41, 0, time.UTC)

	if err := ws.SetTime("A1", when); err != nil {
		t.Fatalf("SetTime failed: %v", err)
	}
	n, _ := ws.MustCell("A1").Value().AsNumber()
	if math.Abs(n-40372.27616898148) > 1e-9 {
		t.Errorf("serial = %v", n)
	}
	if !ws.IsDate("A1") {
		t.Error("A1 should be a date")
	}
	got, err := ws.TimeValue("A1")
	if err != nil || !got.Equal(when) {
		t.Errorf("TimeValue = %v, %v", got, err)
	}

	// A string written over a date is not a date.
	_ = ws.SetText("A1", "testme")
	if ws.IsDate("A1") {
		t.Error("A1 should no longer be a date")
	}
	if s, _ := ws.MustCell("A1").Value().AsString(); s != "testme" {
		t.Errorf("A1 = %q", s)
	}

	_ = ws.SetTime("B1", time.Date(2010, 7, 13, 0, 0, 0, 0, time.UTC))
	if code, _ := ws.NumberFormat("B1"); code != DateFormat {
		t.Errorf("date-only format = %q", code)
	}

	_ = ws.SetDuration("C1", 27*time.Hour)
	if n, _ := ws.MustCell("C1").Value().AsNumber(); n != 1.125 {
		t.Errorf("duration serial = %v", n)
	}
}

func TestEpochEquivalence(t *testing.T) {
	date := time.Date(2011, 10, 31, 0, 0, 0, 0, time.UTC)

	win := New()
	mac := New()
	mac.SetEpoch(value.Mac1904)
	_ = win.Active().SetTime("A1", date)
	_ = mac.Active().SetTime("A1", date)

	wn, _ := win.Active().MustCell("A1").Value().AsNumber()
	mn, _ := mac.Active().MustCell("A1").Value().AsNumber()
	if wn == mn {
		t.Error("serials should differ between epochs")
	}

	wt, _ := win.Active().TimeValue("A1")
	mt, _ := mac.Active().TimeValue("A1")
	if !wt.Equal(mt) || !wt.Equal(date) {
		t.Errorf("decoded %v and %v, want %v", wt, mt, date)
	}
}

func TestFormulaCells(t *testing.T) {
	ws := New().Active()
	c := ws.MustCell("A1")

	c.SetValue(value.Formula("=SUM(B1:B4)"))
	if c.DataType() != value.KindFormula {
		t.Errorf("DataType = %s", c.DataType())
	}
	if text, ok := c.Formula(); !ok || text != "SUM(B1:B4)" {
		t.Errorf("Formula = %q, %v", text, ok)
	}

	c.SetFormulaResult("SUM(B1:B4)", value.Number(10))
	if n, _ := c.Value().AsNumber(); n != 10 {
		t.Errorf("cached result = %v", n)
	}

	c.SetValue(value.Number(3))
	if c.HasFormula() {
		t.Error("assigning a literal should drop the formula")
	}
}

func TestSetError(t *testing.T) {
	ws := New().Active()
	if err := ws.SetError("A1", "#DIV/0!"); err != nil {
		t.Fatalf("SetError failed: %v", err)
	}
	if code, _ := ws.MustCell("A1").Value().AsError(); code != value.ErrorDiv0 {
		t.Errorf("code = %s", code)
	}
	if err := ws.SetError("A2", "#WHAT?"); !errors.Is(err, value.ErrDataType) {
		t.Errorf("arbitrary error string: got %v", err)
	}
}

func TestMergeCells(t *testing.T) {
	ws := New().Active()
	_ = ws.Set("A1", "keep")
	_ = ws.Set("B2", "also kept")

	if err := ws.MergeCells("a1:b2"); err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}
	if err := ws.MergeCells("A1:B2"); err != nil {
		t.Fatalf("second MergeCells failed: %v", err)
	}
	merged := ws.MergedCells()
	if len(merged) != 1 || merged[0].String() != "A1:B2" {
		t.Errorf("MergedCells = %v", merged)
	}
	if ws.CellCount() != 2 {
		t.Errorf("merging should not clear cells, have %d", ws.CellCount())
	}

	if err := ws.UnmergeCells("A1:B2"); err != nil {
		t.Fatalf("UnmergeCells failed: %v", err)
	}
	if err := ws.UnmergeCells("A1:B2"); !errors.Is(err, cellref.ErrCoordinate) {
		t.Errorf("unmerging twice: got %v", err)
	}
}

func TestFreezePanes(t *testing.T) {
	ws := New().Active()

	if err := ws.FreezePanes("B2"); err != nil {
		t.Fatalf("FreezePanes failed: %v", err)
	}
	ref, ok := ws.FrozenPanes()
	if !ok || ref.String() != "B2" {
		t.Errorf("FrozenPanes = %s, %v", ref, ok)
	}

	_ = ws.FreezePanes("A1")
	if _, ok := ws.FrozenPanes(); ok {
		t.Error("freezing at A1 should unfreeze")
	}

	_ = ws.FreezePanes("C1")
	ws.UnfreezePanes()
	if _, ok := ws.FrozenPanes(); ok {
		t.Error("UnfreezePanes should clear the pane")
	}
}

func TestAutoFilter(t *testing.T) {
	ws := New().Active()
	if err := ws.SetAutoFilter("a1:f1"); err != nil {
		t.Fatalf("SetAutoFilter failed: %v", err)
	}
	rr, ok := ws.AutoFilter()
	if !ok || rr.String() != "A1:F1" {
		t.Errorf("AutoFilter = %s, %v", rr, ok)
	}
	ws.UnsetAutoFilter()
	if _, ok := ws.AutoFilter(); ok {
		t.Error("UnsetAutoFilter should clear the filter")
	}
}

func TestHyperlinks(t *testing.T) {
	ws := New().Active()

	if err := ws.SetHyperlink("A1", "1"); !errors.Is(err, value.ErrDataType) {
		t.Errorf("SetHyperlink(1): got %v", err)
	}

	if err := ws.SetHyperlink("A1", "http://test.com"); err != nil {
		t.Fatalf("SetHyperlink failed: %v", err)
	}
	if err := ws.SetHyperlink("B1", "mailto:someone@example.com"); err != nil {
		t.Fatalf("SetHyperlink(mailto) failed: %v", err)
	}
	if got, _ := ws.Hyperlink("A1"); got != "http://test.com" {
		t.Errorf("Hyperlink(A1) = %q", got)
	}

	rels := ws.Relationships()
	if len(rels) != 2 || rels[0].ID != "rId1" || rels[1].ID != "rId2" {
		t.Fatalf("relationships = %+v", rels)
	}

	_ = ws.SetHyperlink("A1", "http://other.com")
	if len(ws.Relationships()) != 2 {
		t.Error("relinking a cell should reuse its relationship")
	}

	_ = ws.ClearHyperlink("A1")
	if _, ok := ws.Hyperlink("A1"); ok {
		t.Error("ClearHyperlink should remove the link")
	}
	if ws.MustCell("A1").IsDefault() != true {
		t.Error("a cell with only a cleared link is default again")
	}
}

func TestComments(t *testing.T) {
	ws := New().Active()
	_ = ws.SetComment("A1", Comment{Text: "one", Author: "a"})
	_ = ws.SetComment("B2", Comment{Text: "two", Author: "b"})
	if ws.CommentCount() != 2 {
		t.Errorf("CommentCount = %d", ws.CommentCount())
	}
	_ = ws.ClearComment("A1")
	if ws.CommentCount() != 1 {
		t.Errorf("CommentCount after clear = %d", ws.CommentCount())
	}
}

func TestPointPosAndAnchor(t *testing.T) {
	ws := New().Active()

	if got := ws.PointPos(150, 40).String(); got != "C3" {
		t.Errorf("PointPos(150, 40) = %s, want C3", got)
	}
	if got := ws.PointPos(0, 0).String(); got != "A1" {
		t.Errorf("PointPos(0, 0) = %s, want A1", got)
	}

	ref := cellref.MustParse("D52")
	left, top := ws.Anchor(ref)
	if got := ws.PointPos(left, top); !got.Equal(ref) {
		t.Errorf("PointPos(Anchor(D52)) = %s", got)
	}
}

func TestPageDefaults(t *testing.T) {
	ws := New().Active()
	if !ws.PageSetup.IsDefault() {
		t.Error("new sheet page setup should be default")
	}
	if ws.PageMargins != DefaultPageMargins() {
		t.Errorf("margins = %+v", ws.PageMargins)
	}
	if !ws.HeaderFooter.IsEmpty() {
		t.Error("header/footer should start empty")
	}
	ws.PageSetup.Orientation = OrientationLandscape
	if ws.PageSetup.IsDefault() {
		t.Error("landscape is not default")
	}
}
