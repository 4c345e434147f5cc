package cellref

import "testing"

func TestParseRange(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantW   int
		wantH   int
		wantErr bool
	}{
		{"A1:C4", "A1:C4", 3, 4, false},
		{"a1:f1", "A1:F1", 6, 1, false},
		{"C5", "C5:C5", 1, 1, false},
		{"C4:A1", "A1:C4", 3, 4, false},
		{"A1:B2:C3", "", 0, 0, true},
		{"A1:", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rr, err := ParseRange(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRange(%q) expected error", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q): %v", tt.text, err)
			}
			if rr.String() != tt.want {
				t.Errorf("String() = %q, want %q", rr.String(), tt.want)
			}
			if rr.Width() != tt.wantW || rr.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", rr.Width(), rr.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRangeOffset(t *testing.T) {
	rr, err := MustParseRange("A1:C4").Offset(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rr.String() != "D2:F5" {
		t.Errorf("offset = %s, want D2:F5", rr)
	}
	if rr.Width() != 3 || rr.Height() != 4 {
		t.Errorf("offset changed size to %dx%d", rr.Width(), rr.Height())
	}
}

func TestRangeContainsAndIntersects(t *testing.T) {
	rr := MustParseRange("B2:D4")
	if !rr.Contains(MustParse("C3")) {
		t.Error("expected C3 inside B2:D4")
	}
	if rr.Contains(MustParse("A1")) {
		t.Error("A1 should be outside B2:D4")
	}
	if !rr.Intersects(MustParseRange("D4:F9")) {
		t.Error("expected B2:D4 to intersect D4:F9")
	}
	if rr.Intersects(MustParseRange("E1:E9")) {
		t.Error("B2:D4 should not intersect E1:E9")
	}
}

func TestRangeCells(t *testing.T) {
	cells := MustParseRange("A1:B2").Cells()
	if len(cells) != 2 || len(cells[0]) != 2 {
		t.Fatalf("Cells() shape = %d rows", len(cells))
	}
	if cells[1][0].String() != "A2" || cells[0][1].String() != "B1" {
		t.Errorf("unexpected order: %v", cells)
	}
}

func TestParseQualified(t *testing.T) {
	tests := []struct {
		text      string
		wantSheet string
		wantRange string
		wantErr   bool
	}{
		{"Sheet1!$A$1:$B$2", "Sheet1", "$A$1:$B$2", false},
		{"'My Sheet'!C5", "My Sheet", "C5:C5", false},
		{"'It''s'!A1", "It's", "A1:A1", false},
		{"A1", "", "", true},
		{"'Bad!A1", "", "", true},
	}
	for _, tt := range tests {
		sheet, rr, err := ParseQualified(tt.text)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQualified(%q) expected error", tt.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQualified(%q): %v", tt.text, err)
			continue
		}
		if sheet != tt.wantSheet || rr.String() != tt.wantRange {
			t.Errorf("ParseQualified(%q) = %q, %q", tt.text, sheet, rr)
		}
	}

	if got := FormatQualified("My Sheet", MustParseRange("A1:B2")); got != "'My Sheet'!A1:B2" {
		t.Errorf("FormatQualified = %q", got)
	}
}
