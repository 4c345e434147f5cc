package numfmt

// FirstCustomID is the lowest id a workbook may assign to its own format codes.
const FirstCustomID = 164

var builtin = map[int]string{
	0:  General,
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

var builtinByCode = func() map[string]int {
	m := make(map[string]int, len(builtin))
	for id, code := range builtin {
		m[code] = id
	}
	return m
}()

// Builtin returns the format code for a built-in id.
func Builtin(id int) (string, bool) {
	code, ok := builtin[id]
	return code, ok
}

// BuiltinID returns the built-in id for code, if it has one.
func BuiltinID(code string) (int, bool) {
	id, ok := builtinByCode[code]
	return id, ok
}
