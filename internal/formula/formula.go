// Package formula translates formula text for shared formulas.
//
// A shared formula is stored once on its master cell. Every other cell of the
// shared range uses the same text with relative references moved by the
// cell's distance from the master. Formulas are never evaluated.
package formula

import (
	"strconv"
	"strings"

	"github.com/xuri/efp"

	"github.com/tsawler/xlkit/cellref"
)

const refError = "#REF!"

// Shift moves the relative references in text by dCol columns and dRow rows.
// Only reference spans are rewritten, so spacing and the rest of the text stay
// as written. The boolean is false when the tokens could not be matched back
// to text, in which case text is returned unchanged.
func Shift(text string, dCol, dRow int) (string, bool) {
	if dCol == 0 && dRow == 0 {
		return text, true
	}

	ps := efp.ExcelParser()
	sp := &splicer{text: text}
	sp.pos = len(text) - len(strings.TrimLeft(text, " ="))
	for i, tok := range ps.Parse(text) {
		if i == 0 && tok.TType == efp.TokenTypeOperatorInfix && tok.TValue == "=" {
			continue
		}
		if !sp.consume(tok, dCol, dRow) {
			return text, false
		}
	}
	sp.out.WriteString(text[sp.copied:])
	return sp.out.String(), true
}

// splicer walks the source text alongside its tokens. Text between copied and
// pos has been matched but not yet written.
type splicer struct {
	text   string
	pos    int
	copied int
	out    strings.Builder
	stack  []string
}

func (sp *splicer) consume(tok efp.Token, dCol, dRow int) bool {
	forms := sp.forms(tok)
	for {
		for sp.pos < len(sp.text) && sp.text[sp.pos] == ' ' {
			sp.pos++
		}
		for _, form := range forms {
			if !strings.HasPrefix(sp.text[sp.pos:], form) {
				continue
			}
			if tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeRange {
				sp.out.WriteString(sp.text[sp.copied:sp.pos])
				sp.out.WriteString(shiftSpan(form, dCol, dRow))
				sp.copied = sp.pos + len(form)
			}
			sp.pos += len(form)
			return true
		}
		// Unary plus and the implicit-intersection marker produce no token.
		if sp.pos < len(sp.text) && (sp.text[sp.pos] == '+' || sp.text[sp.pos] == '@') {
			sp.pos++
			continue
		}
		return false
	}
}

// forms lists the ways tok can appear in the source text.
func (sp *splicer) forms(tok efp.Token) []string {
	switch tok.TType {
	case efp.TokenTypeFunction, efp.TokenTypeSubexpression:
		if tok.TSubType == efp.TokenSubTypeStart {
			sp.stack = append(sp.stack, tok.TValue)
			switch {
			case tok.TType == efp.TokenTypeSubexpression:
				return []string{"("}
			case tok.TValue == "ARRAY":
				return []string{"{"}
			case tok.TValue == "ARRAYROW":
				return []string{""}
			}
			return []string{tok.TValue + "("}
		}
		name := ""
		if n := len(sp.stack); n > 0 {
			name, sp.stack = sp.stack[n-1], sp.stack[:n-1]
		}
		switch name {
		case "ARRAY":
			return []string{"}"}
		case "ARRAYROW":
			return []string{""}
		}
		return []string{")"}
	case efp.TokenTypeArgument:
		if n := len(sp.stack); n > 0 && sp.stack[n-1] == "ARRAY" {
			return []string{";"}
		}
		return []string{","}
	case efp.TokenTypeOperand:
		switch tok.TSubType {
		case efp.TokenSubTypeText:
			return []string{`"` + strings.ReplaceAll(tok.TValue, `"`, `""`) + `"`}
		case efp.TokenSubTypeRange:
			forms := []string{tok.TValue}
			if i := strings.LastIndex(tok.TValue, "!"); i >= 0 {
				sheet := strings.ReplaceAll(tok.TValue[:i], "'", "''")
				forms = append(forms, "'"+sheet+"'"+tok.TValue[i:])
			}
			return forms
		}
	}
	return []string{tok.TValue}
}

// shiftSpan shifts the reference after any sheet prefix, keeping the prefix
// exactly as it was written.
func shiftSpan(span string, dCol, dRow int) string {
	i := strings.LastIndex(span, "!")
	return span[:i+1] + shiftReference(span[i+1:], dCol, dRow)
}

// shiftReference moves one range operand. Operands that are not cell, column
// or row references (defined names, structured references) are kept.
func shiftReference(operand string, dCol, dRow int) string {
	prefix, ref := "", operand
	if i := strings.LastIndex(operand, "!"); i >= 0 {
		prefix, ref = operand[:i+1], operand[i+1:]
	}

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return operand
	}

	shifted := make([]string, len(parts))
	for i, part := range parts {
		if out, ok := shiftCell(part, dCol, dRow); ok {
			shifted[i] = out
			continue
		}
		if len(parts) != 2 {
			return operand
		}
		if out, ok := shiftColumn(part, dCol); ok {
			shifted[i] = out
			continue
		}
		if out, ok := shiftRow(part, dRow); ok {
			shifted[i] = out
			continue
		}
		return operand
	}

	for _, s := range shifted {
		if s == refError {
			return prefix + refError
		}
	}
	return prefix + strings.Join(shifted, ":")
}

func shiftCell(text string, dCol, dRow int) (string, bool) {
	ref, err := cellref.Parse(text)
	if err != nil {
		return "", false
	}
	if !ref.ColumnAbsolute {
		ref.Column += dCol
	}
	if !ref.RowAbsolute {
		ref.Row += dRow
	}
	if ref.Validate() != nil {
		return refError, true
	}
	return ref.String(), true
}

func shiftColumn(text string, dCol int) (string, bool) {
	abs := strings.HasPrefix(text, "$")
	col, err := cellref.ColumnIndex(strings.TrimPrefix(text, "$"))
	if err != nil {
		return "", false
	}
	if abs {
		return text, true
	}
	s, err := cellref.ColumnString(col + dCol)
	if err != nil {
		return refError, true
	}
	return s, true
}

func shiftRow(text string, dRow int) (string, bool) {
	abs := strings.HasPrefix(text, "$")
	row, err := strconv.Atoi(strings.TrimPrefix(text, "$"))
	if err != nil || row < 1 {
		return "", false
	}
	if abs {
		return text, true
	}
	if row+dRow < 1 {
		return refError, true
	}
	return strconv.Itoa(row + dRow), true
}
