package formula

import "testing"

func TestShift(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		dCol, dRow int
		want       string
	}{
		{"relative cell", "A1*2", 0, 1, "A2*2"},
		{"function range", "SUM(A1:B2)", 1, 2, "SUM(B3:C4)"},
		{"absolute kept", "$A$1+A1", 2, 2, "$A$1+C3"},
		{"mixed markers", "$A1+A$1", 1, 1, "$A2+B$1"},
		{"sheet qualified", "Data!B2*3", 0, 5, "Data!B7*3"},
		{"column range", "SUM(A:A)", 2, 0, "SUM(C:C)"},
		{"row range", "SUM(1:1)", 0, 3, "SUM(4:4)"},
		{"text untouched", `IF(A1>0,"A1",B1)`, 0, 1, `IF(A2>0,"A1",B2)`},
		{"off the grid", "A1+B2", 0, -1, "#REF!+B1"},
		{"no offset", "A1", 0, 0, "A1"},
		{"spaced operators", "A1 + B1", 0, 1, "A2 + B2"},
		{"spaced arguments", "SUM(A1, B1)", 0, 2, "SUM(A3, B3)"},
		{"leading equals", "= A1*2", 1, 0, "= B1*2"},
		{"quoted sheet", "'My Data'!A1+'It''s'!$B$2", 0, 1, "'My Data'!A2+'It''s'!$B$2"},
		{"unary plus", "+A1-(-B1)", 1, 0, "+B1-(-C1)"},
		{"intersection", "SUM(A1:C3 B2:B4)", 0, 1, "SUM(A2:C4 B3:B5)"},
		{"array constant", "SUM(A1*{1,2;3,4})", 0, 1, "SUM(A2*{1,2;3,4})"},
		{"spaced text with refs", `IF(A1 = "B1 ""x""", B1, "")`, 0, 1, `IF(A2 = "B1 ""x""", B2, "")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Shift(tt.text, tt.dCol, tt.dRow)
			if !ok {
				t.Fatalf("Shift(%q) could not translate", tt.text)
			}
			if got != tt.want {
				t.Errorf("Shift(%q, %d, %d) = %q, want %q", tt.text, tt.dCol, tt.dRow, got, tt.want)
			}
		})
	}
}

func TestShiftKeepsDefinedNames(t *testing.T) {
	got, ok := Shift("SalesTotal*A1", 0, 1)
	if !ok {
		t.Fatal("Shift could not translate")
	}
	if got != "SalesTotal*A2" {
		t.Errorf("Shift = %q, want SalesTotal*A2", got)
	}
}
