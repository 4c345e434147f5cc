package cli

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/format"
	"github.com/tsawler/xlkit/opc"
)

// inspectReport describes the structure of a package.
type inspectReport struct {
	File          string         `json:"file" yaml:"file"`
	Format        string         `json:"format" yaml:"format"`
	Repaired      bool           `json:"repaired" yaml:"repaired"`
	Parts         []partEntry    `json:"parts" yaml:"parts"`
	Relationships []relEntry     `json:"relationships" yaml:"relationships"`
	Worksheets    []sheetSummary `json:"worksheets" yaml:"worksheets"`
}

type partEntry struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
}

type relEntry struct {
	Source   string `json:"source" yaml:"source"`
	ID       string `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Target   string `json:"target" yaml:"target"`
	External bool   `json:"external,omitempty" yaml:"external,omitempty"`
}

type sheetSummary struct {
	Name string `json:"name" yaml:"name"`
	Part string `json:"part" yaml:"part"`
}

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List parts, content types, relationships, and worksheets",
		Long: `List the parts of a workbook package with their content types,
the package, workbook, and worksheet relationships, and the worksheets
in workbook order.

Examples:
  xlkit inspect book.xlsx
  xlkit inspect book.xlsx -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.inspect(args[0])
			if err != nil {
				return err
			}
			return a.render(report, report.writeText)
		},
	}
}

// inspect builds the report for the package at path.
func (a *app) inspect(path string) (*inspectReport, error) {
	pkg, err := archive.OpenFile(path)
	if err != nil {
		return nil, err
	}
	data := pkg.Bytes()
	ft, err := format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	report := &inspectReport{
		File:     path,
		Format:   ft.String(),
		Repaired: pkg.Repaired,
	}
	if pkg.Repaired {
		a.log.WithField("file", path).Warn("central directory repaired")
	}

	types := make(map[string]string)
	entries, err := opc.ReadContentTypes(pkg)
	if err != nil {
		a.log.WithError(err).Warn("content types unavailable")
	}
	for _, e := range entries {
		types[e.PartName] = e.MediaType
	}
	for _, name := range pkg.Parts() {
		report.Parts = append(report.Parts, partEntry{Name: name, ContentType: types[name]})
	}

	owners := []string{""}
	if ft.Supported() {
		wbPart, err := opc.WorkbookPart(pkg)
		if err != nil {
			return nil, err
		}
		owners = append(owners, wbPart)

		sheets, err := opc.DetectWorksheets(pkg)
		if err != nil {
			return nil, err
		}
		for _, s := range sheets {
			report.Worksheets = append(report.Worksheets, sheetSummary{Name: s.Name, Part: s.Part})
			owners = append(owners, s.Part)
		}
		a.log.WithField("count", len(sheets)).Debug("worksheets detected")
	}

	for _, owner := range owners {
		rels, err := opc.ReadRelationships(pkg, owner)
		if err != nil {
			return nil, err
		}
		source := owner
		if source == "" {
			source = "/"
		}
		for _, r := range rels {
			report.Relationships = append(report.Relationships, relEntry{
				Source:   source,
				ID:       r.ID,
				Type:     r.Type.String(),
				Target:   r.Target,
				External: r.Mode == opc.External,
			})
		}
	}
	return report, nil
}

func (r *inspectReport) writeText(w io.Writer) error {
	fmt.Fprintf(w, "File:     %s\n", r.File)
	fmt.Fprintf(w, "Format:   %s\n", r.Format)
	fmt.Fprintf(w, "Repaired: %t\n", r.Repaired)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\nPARTS\tCONTENT TYPE\n")
	for _, p := range r.Parts {
		ct := p.ContentType
		if ct == "" {
			ct = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.Name, ct)
	}
	fmt.Fprintf(tw, "\nSOURCE\tID\tTYPE\tTARGET\n")
	for _, rel := range r.Relationships {
		target := rel.Target
		if rel.External {
			target += " (external)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rel.Source, rel.ID, rel.Type, target)
	}
	fmt.Fprintf(tw, "\nWORKSHEET\tPART\n")
	for _, s := range r.Worksheets {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Part)
	}
	return tw.Flush()
}
