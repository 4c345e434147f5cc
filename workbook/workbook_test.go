package workbook

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/xlkit/cellref"
)

func TestNewWorkbook(t *testing.T) {
	wb := New()
	if wb.SheetCount() != 1 {
		t.Fatalf("SheetCount() = %d, want 1", wb.SheetCount())
	}
	if got := wb.Active().Title(); got != "Sheet1" {
		t.Errorf("active title = %q, want Sheet1", got)
	}
	if wb.Active().String() != `<Worksheet "Sheet1">` {
		t.Errorf("String() = %s", wb.Active())
	}
}

func TestCreateSheet(t *testing.T) {
	wb := New()

	ws, err := wb.CreateSheet("")
	if err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	if ws.Title() != "Sheet2" {
		t.Errorf("auto title = %q, want Sheet2", ws.Title())
	}

	for _, want := range []string{"Test", "Test1", "Test2"} {
		ws, err := wb.CreateSheet("Test")
		if err != nil {
			t.Fatalf("CreateSheet(Test) failed: %v", err)
		}
		if ws.Title() != want {
			t.Errorf("title = %q, want %q", ws.Title(), want)
		}
	}

	if _, err := wb.SheetByTitle("test1"); err != nil {
		t.Errorf("SheetByTitle should ignore case: %v", err)
	}
	if _, err := wb.SheetByTitle("Missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("SheetByTitle(Missing): got %v", err)
	}
}

func TestBadTitles(t *testing.T) {
	wb := New()
	tests := []string{
		strings.Repeat("a", 32),
		"bad[title",
		"bad]title",
		"bad*title",
		"bad:title",
		"bad?title",
		"bad/title",
		`bad\title`,
	}
	for _, title := range tests {
		if _, err := wb.CreateSheet(title); !errors.Is(err, ErrSheetTitle) {
			t.Errorf("CreateSheet(%q): got %v, want ErrSheetTitle", title, err)
		}
	}

	if _, err := wb.CreateSheet(strings.Repeat("a", 31)); err != nil {
		t.Errorf("31-character title should be accepted: %v", err)
	}
	if _, err := wb.CreateSheet(strings.Repeat("a", 31)); !errors.Is(err, ErrSheetTitle) {
		t.Errorf("suffixing a 31-character title should fail: %v", err)
	}
}

func TestSetTitle(t *testing.T) {
	wb := New()
	other, _ := wb.CreateSheet("Other")
	if err := other.SetTitle("sheet1"); !errors.Is(err, ErrSheetTitle) {
		t.Errorf("renaming onto an existing title: got %v", err)
	}
	if err := other.SetTitle("Renamed"); err != nil || other.Title() != "Renamed" {
		t.Errorf("SetTitle = %v, title %q", err, other.Title())
	}
}

func TestRemoveSheet(t *testing.T) {
	wb := New()
	second, _ := wb.CreateSheet("Second")
	if err := wb.CreateNamedRange("here", second, "A1"); err != nil {
		t.Fatalf("CreateNamedRange failed: %v", err)
	}
	if err := wb.SetActive(1); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if err := wb.RemoveSheet(second); err != nil {
		t.Fatalf("RemoveSheet failed: %v", err)
	}
	if wb.SheetCount() != 1 || wb.ActiveIndex() != 0 {
		t.Errorf("after removal: %d sheets, active %d", wb.SheetCount(), wb.ActiveIndex())
	}
	if wb.HasNamedRange("here") {
		t.Error("named ranges of a removed sheet should go with it")
	}
	if err := wb.RemoveSheet(second); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("second removal: got %v", err)
	}

	if err := second.SetText("A1", "12%"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("SetText on a removed sheet: got %v", err)
	}
	if err := second.Set("B1", time.Now()); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Set on a removed sheet: got %v", err)
	}
	if err := second.Append([]any{"x"}); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Append on a removed sheet: got %v", err)
	}
	if _, err := second.NumberFormat("A1"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("NumberFormat on a removed sheet: got %v", err)
	}
	if second.IsDate("A1") {
		t.Error("IsDate on a removed sheet should be false")
	}
}

func TestNamedRanges(t *testing.T) {
	wb := New()
	ws := wb.Active()
	other, _ := wb.CreateSheet("Other")

	if err := wb.CreateNamedRange("test_range", ws, "C5"); err != nil {
		t.Fatalf("CreateNamedRange failed: %v", err)
	}

	rr, err := ws.NamedRange("test_range")
	if err != nil {
		t.Fatalf("NamedRange failed: %v", err)
	}
	if rr.String() != "C5:C5" {
		t.Errorf("range = %s, want C5:C5", rr)
	}

	if _, err := ws.NamedRange("nope"); !errors.Is(err, ErrNamedRange) {
		t.Errorf("undefined name: got %v", err)
	}
	if _, err := other.NamedRange("test_range"); !errors.Is(err, ErrNamedRange) {
		t.Errorf("name on another sheet: got %v", err)
	}
	if _, err := ws.Cell("test_range"); !errors.Is(err, cellref.ErrCoordinate) {
		t.Errorf("a name is not a coordinate: got %v", err)
	}
	if err := wb.CreateNamedRange("C5", ws, "A1"); !errors.Is(err, ErrNamedRange) {
		t.Errorf("cell-like name: got %v", err)
	}

	cells, err := ws.Range("test_range")
	if err != nil || len(cells) != 1 || len(cells[0]) != 1 {
		t.Fatalf("Range(test_range) = %v, %v", cells, err)
	}
	if cells[0][0].Reference().String() != "C5" {
		t.Errorf("Range(test_range) cell = %s", cells[0][0].Reference())
	}

	if err := wb.RemoveNamedRange("TEST_RANGE"); err != nil {
		t.Errorf("RemoveNamedRange failed: %v", err)
	}
	if err := wb.RemoveNamedRange("test_range"); !errors.Is(err, ErrNamedRange) {
		t.Errorf("removing twice: got %v", err)
	}
}

func TestClone(t *testing.T) {
	wb := New()
	ws := wb.Active()
	_ = ws.SetText("A1", "original")
	_ = ws.SetComment("B2", Comment{Text: "note", Author: "me"})
	_ = ws.MergeCells("C1:D2")
	_ = ws.SetHyperlink("E5", "https://example.com/")
	ws.HeaderFooter.Header.Center.Text = "Title"
	wb.Properties.Keywords = []string{"one"}
	_ = wb.CreateNamedRange("spot", ws, "A1")

	snap, err := wb.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	_ = ws.SetText("A1", "changed")
	_ = ws.SetComment("B2", Comment{Text: "edited"})
	_ = ws.UnmergeCells("C1:D2")
	ws.HeaderFooter.Header.Center.Text = "Changed"
	wb.Properties.Keywords[0] = "two"

	cws := snap.Active()
	if s, _ := cws.MustCell("A1").Value().AsString(); s != "original" {
		t.Errorf("cloned A1 = %q", s)
	}
	if cm, _ := cws.MustCell("B2").Comment(); cm.Text != "note" {
		t.Errorf("cloned comment = %q", cm.Text)
	}
	if len(cws.MergedCells()) != 1 {
		t.Errorf("cloned merges = %v", cws.MergedCells())
	}
	if url, ok := cws.Hyperlink("E5"); !ok || url != "https://example.com/" {
		t.Errorf("cloned hyperlink = %q, %v", url, ok)
	}
	if cws.HeaderFooter.Header.Center.Text != "Title" {
		t.Errorf("cloned header = %q", cws.HeaderFooter.Header.Center.Text)
	}
	if snap.Properties.Keywords[0] != "one" {
		t.Errorf("cloned keywords = %v", snap.Properties.Keywords)
	}
	if _, err := cws.NamedRange("spot"); err != nil {
		t.Errorf("named range should follow the cloned sheet: %v", err)
	}
}
