package numfmt

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want Category
	}{
		{"", CategoryGeneral},
		{"General", CategoryGeneral},
		{"0", CategoryNumeric},
		{"0.00", CategoryNumeric},
		{"#,##0.00", CategoryNumeric},
		{"0%", CategoryPercentage},
		{"0.00%", CategoryPercentage},
		{"mm-dd-yy", CategoryDate},
		{"yyyy-mm-dd", CategoryDate},
		{"d-mmm-yy", CategoryDate},
		{"h:mm:ss", CategoryTime},
		{"h:mm AM/PM", CategoryTime},
		{"mm:ss", CategoryTime},
		{"[h]:mm:ss", CategoryTime},
		{"yyyy-mm-dd h:mm:ss", CategoryDateTime},
		{"m/d/yy h:mm", CategoryDateTime},
		{`0.00_);[Red]\(0.00\)`, CategoryNumeric},
		{"@", CategoryText},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Classify(tt.code); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	code, ok := Builtin(14)
	if !ok || code != DateXLSX14 {
		t.Errorf("Builtin(14) = %q, %v", code, ok)
	}
	if !IsDateFormat(code) {
		t.Errorf("built-in 14 should be a date format")
	}
	id, ok := BuiltinID("0.00%")
	if !ok || id != 10 {
		t.Errorf("BuiltinID(0.00%%) = %d, %v", id, ok)
	}
	if _, ok := Builtin(200); ok {
		t.Error("Builtin(200) should not exist")
	}
}
