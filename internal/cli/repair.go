package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/xlkit/archive"
)

func newRepairCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repair IN OUT",
		Short: "Cut trailing bytes after the central directory",
		Long: `Write a copy of IN to OUT with any bytes after the end-of-central-directory
record removed. Files that need no repair are copied unchanged.

Examples:
  xlkit repair broken.xlsx fixed.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repaired, err := a.repair(args[0], args[1])
			if err != nil {
				return err
			}
			status := "unchanged"
			if repaired {
				status = "repaired"
			}
			_, err = fmt.Fprintf(a.out, "%s: %s -> %s\n", status, args[0], args[1])
			return err
		},
	}
}

// repair copies in to out, reporting whether the central directory was cut.
func (a *app) repair(in, out string) (bool, error) {
	pkg, err := archive.OpenFile(in)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(out, pkg.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", out, err)
	}
	a.log.WithFields(logrus.Fields{
		"in":       in,
		"out":      out,
		"repaired": pkg.Repaired,
	}).Info("package written")
	return pkg.Repaired, nil
}
