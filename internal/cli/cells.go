package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/xlkit"
	"github.com/tsawler/xlkit/value"
)

// cellRecord is one non-default cell as printed by the cells command.
type cellRecord struct {
	Sheet   string `json:"sheet" yaml:"sheet"`
	Cell    string `json:"cell" yaml:"cell"`
	Type    string `json:"type" yaml:"type"`
	Value   any    `json:"value" yaml:"value"`
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`
}

type cellsFlags struct {
	sheets []string
}

func newCellsCommand(a *app) *cobra.Command {
	flags := &cellsFlags{}

	cmd := &cobra.Command{
		Use:   "cells FILE",
		Short: "Print the non-empty cells of a workbook",
		Long: `Print every cell that holds a value, formula, or style, in sheet
order and then row-major order.

Examples:
  xlkit cells book.xlsx
  xlkit cells book.xlsx --sheet Summary -o yaml
  xlkit cells book.xlsx --data-only --guess-types`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.cells(args[0], flags.sheets)
			if err != nil {
				return err
			}
			return a.render(records, func(w io.Writer) error {
				return writeCellsText(w, records)
			})
		},
	}

	cmd.Flags().StringSliceVar(&flags.sheets, "sheet", nil, "only print these sheets (repeatable)")
	return cmd
}

// cells loads path with the configured options and collects its cells.
func (a *app) cells(path string, sheets []string) ([]cellRecord, error) {
	l := xlkit.Open(path).Logger(a.log).Sheets(sheets...)
	if a.cfg.DataOnly {
		l = l.DataOnly()
	}
	if a.cfg.GuessTypes {
		l = l.GuessTypes()
	}

	cells, err := l.Cells()
	if err != nil {
		return nil, err
	}

	records := make([]cellRecord, 0, len(cells))
	for _, c := range cells {
		records = append(records, cellRecord{
			Sheet:   c.Sheet,
			Cell:    c.Reference,
			Type:    c.Value.Kind().String(),
			Value:   nativeValue(c.Value),
			Formula: c.Formula,
			Format:  c.Format,
		})
	}
	a.log.WithField("count", len(records)).Debug("cells collected")
	return records, nil
}

// nativeValue converts v into a JSON and YAML friendly Go value.
func nativeValue(v value.Value) any {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindNumber:
		f, _ := v.AsNumber()
		return f
	default:
		return v.String()
	}
}

func writeCellsText(w io.Writer, records []cellRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range records {
		line := fmt.Sprintf("%s!%s\t%s\t%v", r.Sheet, r.Cell, r.Type, valueText(r.Value))
		if r.Formula != "" {
			line += "\t=" + r.Formula
		}
		if r.Format != "" {
			line += "\t[" + r.Format + "]"
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func valueText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return value.FormatNumber(x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(x)
	}
}
