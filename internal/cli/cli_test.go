package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/xlkit"
	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/internal/config"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
)

// writeWorkbook saves a small two-sheet workbook under dir.
func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()

	wb := xlkit.New()
	ws := wb.Active()
	require.NoError(t, ws.Set("A1", "label"))
	require.NoError(t, ws.Set("B1", 2.5))
	ws.MustCell("B2").SetFormulaResult("B1*2", value.Number(5))
	require.NoError(t, ws.SetHyperlink("A1", "https://example.com/"))

	other, err := wb.CreateSheet("Data")
	require.NoError(t, err)
	require.NoError(t, other.Set("C3", true))

	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, xlkit.Save(wb, path))
	return path
}

// run executes the root command and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestInspectText(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	out, err := run(t, "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Format:   XLSX")
	assert.Contains(t, out, "Repaired: false")
	assert.Contains(t, out, "xl/workbook.xml")
	assert.Contains(t, out, "https://example.com/ (external)")
	assert.Contains(t, out, "xl/worksheets/sheet2.xml")
}

func TestInspectJSON(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	out, err := run(t, "inspect", path, "-o", "json")
	require.NoError(t, err)

	var report inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "XLSX", report.Format)
	assert.Equal(t, []sheetSummary{
		{Name: "Sheet1", Part: "xl/worksheets/sheet1.xml"},
		{Name: "Data", Part: "xl/worksheets/sheet2.xml"},
	}, report.Worksheets)

	types := make(map[string]string)
	for _, p := range report.Parts {
		types[p.Name] = p.ContentType
	}
	assert.Contains(t, types["xl/workbook.xml"], "sheet.main+xml")
	assert.NotEmpty(t, types["xl/_rels/workbook.xml.rels"], "rels parts take the default type")

	var sources []string
	for _, r := range report.Relationships {
		if r.Type == "hyperlink" {
			assert.True(t, r.External)
			sources = append(sources, r.Source)
		}
	}
	assert.Equal(t, []string{"xl/worksheets/sheet1.xml"}, sources)
}

func TestInspectInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := run(t, "inspect", path)
	assert.ErrorIs(t, err, archive.ErrInvalidFile)
}

func TestCellsText(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	out, err := run(t, "cells", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Sheet1!A1"))
	assert.Contains(t, lines[0], "label")
	assert.Contains(t, lines[2], "=B1*2")
	assert.True(t, strings.HasPrefix(lines[3], "Data!C3"))
	assert.Contains(t, lines[3], "TRUE")
}

func TestCellsJSON(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	out, err := run(t, "cells", path, "--output", "json")
	require.NoError(t, err)

	var records []cellRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 4)

	assert.Equal(t, cellRecord{Sheet: "Sheet1", Cell: "B1", Type: "numeric", Value: 2.5}, records[1])
	assert.Equal(t, "B1*2", records[2].Formula)
	assert.Equal(t, true, records[3].Value)
}

func TestCellsYAMLWithSheetFilter(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	out, err := run(t, "cells", path, "-o", "yaml", "--sheet", "Data")
	require.NoError(t, err)

	var records []cellRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Data", records[0].Sheet)
	assert.Equal(t, "C3", records[0].Cell)
	assert.Equal(t, "boolean", records[0].Type)
}

func TestCellsDataOnly(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	out, err := run(t, "cells", path, "--data-only", "-o", "json")
	require.NoError(t, err)

	var records []cellRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 4)
	assert.Empty(t, records[2].Formula)
	assert.Equal(t, 5.0, records[2].Value)
}

func TestCellsUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	_, err := run(t, "cells", path, "--sheet", "Nope")
	assert.ErrorIs(t, err, workbook.ErrSheetNotFound)
}

func TestRepair(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir)
	good, err := os.ReadFile(path)
	require.NoError(t, err)

	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, append(append([]byte{}, good...), "garbage"...), 0o644))

	fixed := filepath.Join(dir, "fixed.xlsx")
	out, err := run(t, "repair", broken, fixed)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "repaired:"))

	data, err := os.ReadFile(fixed)
	require.NoError(t, err)
	assert.Equal(t, good, data)

	again := filepath.Join(dir, "again.xlsx")
	out, err = run(t, "repair", fixed, again)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "unchanged:"))
}

func TestRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir)
	outPath := filepath.Join(dir, "out.xlsx")

	out, err := run(t, "roundtrip", path, outPath, "--level", "9")
	require.NoError(t, err)
	assert.Equal(t, "wrote 2 sheet(s) to "+outPath+"\n", out)

	wb, err := xlkit.Open(outPath).Workbook()
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Data"}, wb.SheetTitles())

	ws, err := wb.SheetByTitle("Sheet1")
	require.NoError(t, err)
	f, ok := ws.MustCell("B2").Formula()
	assert.True(t, ok)
	assert.Equal(t, "B1*2", f)
	link, ok := ws.Hyperlink("A1")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/", link)
}

func TestRoundtripBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir)

	_, err := run(t, "roundtrip", path, filepath.Join(dir, "out.xlsx"), "--level", "12")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir)
	cfgPath := filepath.Join(dir, "xlkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\ndata_only: true\n"), 0o644))

	out, err := run(t, "cells", path, "--config", cfgPath)
	require.NoError(t, err)
	var records []cellRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records), "config selects JSON output")
	assert.Empty(t, records[2].Formula, "config enables data-only")

	out, err = run(t, "cells", path, "--config", cfgPath, "-o", "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Sheet1!A1"), "flag overrides config")
}

func TestInvalidSettings(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	_, err := run(t, "cells", path, "-o", "csv")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "cells", path, "--log-level", "loud")
	assert.ErrorIs(t, err, config.ErrInvalid)
}
