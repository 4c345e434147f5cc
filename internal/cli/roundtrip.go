package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/xlkit"
	"github.com/tsawler/xlkit/xlsx"
)

type roundtripFlags struct {
	level int
}

func newRoundtripCommand(a *app) *cobra.Command {
	flags := &roundtripFlags{}

	cmd := &cobra.Command{
		Use:   "roundtrip IN OUT",
		Short: "Load a workbook and save it again",
		Long: `Load IN into the workbook model and write it to OUT. Parts the model
does not represent, such as charts and drawings, are not carried over.

Examples:
  xlkit roundtrip in.xlsx out.xlsx
  xlkit roundtrip in.xlsx out.xlsx --data-only --level 9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.level < -2 || flags.level > 9 {
				return fmt.Errorf("invalid --level %d: must be between -2 and 9", flags.level)
			}
			sheets, err := a.roundtrip(args[0], args[1], flags.level)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "wrote %d sheet(s) to %s\n", sheets, args[1])
			return err
		},
	}

	cmd.Flags().IntVar(&flags.level, "level", -1, "deflate level: -2 (huffman only), -1 (default), 0 (store) to 9")
	return cmd
}

// roundtrip loads in and saves it to out, returning the sheet count.
func (a *app) roundtrip(in, out string, level int) (int, error) {
	l := xlkit.Open(in).Logger(a.log)
	if a.cfg.DataOnly {
		l = l.DataOnly()
	}
	if a.cfg.GuessTypes {
		l = l.GuessTypes()
	}

	wb, err := l.Workbook()
	if err != nil {
		return 0, err
	}
	err = xlsx.SaveFile(wb, out,
		xlsx.WithCompressionLevel(level),
		xlsx.WithSaveLogger(a.log),
	)
	if err != nil {
		return 0, err
	}
	return wb.SheetCount(), nil
}
