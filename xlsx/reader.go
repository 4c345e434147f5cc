package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/cellref"
	"github.com/tsawler/xlkit/format"
	"github.com/tsawler/xlkit/internal/xmlutil"
	"github.com/tsawler/xlkit/opc"
	"github.com/tsawler/xlkit/value"
	"github.com/tsawler/xlkit/workbook"
)

// Load reads a workbook file.
func Load(path string, opts ...LoadOption) (*workbook.Workbook, error) {
	a, err := archive.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return load(a, newLoadConfig(opts))
}

// LoadBytes reads a workbook held in memory.
func LoadBytes(data []byte, opts ...LoadOption) (*workbook.Workbook, error) {
	a, err := archive.Open(data)
	if err != nil {
		return nil, err
	}
	return load(a, newLoadConfig(opts))
}

// LoadReader reads a workbook of the given size from r.
func LoadReader(r io.ReaderAt, size int64, opts ...LoadOption) (*workbook.Workbook, error) {
	a, err := archive.OpenReader(r, size)
	if err != nil {
		return nil, err
	}
	return load(a, newLoadConfig(opts))
}

type loader struct {
	a   *archive.Archive
	cfg loadConfig
	wb  *workbook.Workbook

	workbookPart string
	sst          []string
	styles       []string
}

func load(a *archive.Archive, cfg loadConfig) (*workbook.Workbook, error) {
	log := cfg.logger
	if a.Repaired {
		log.Debug("Repaired trailing bytes after the end of central directory")
	}

	data := a.Bytes()
	f, err := format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", archive.ErrInvalidFile, err)
	}
	if !f.Supported() {
		return nil, fmt.Errorf("%w: %s packages are not supported", archive.ErrInvalidFile, f)
	}

	l := &loader{a: a, cfg: cfg, wb: workbook.NewEmpty()}
	l.wb.GuessTypes = cfg.guessTypes
	if err := l.run(); err != nil {
		return nil, err
	}
	log.WithField("sheets", l.wb.SheetCount()).Debug("Loaded workbook")
	return l.wb, nil
}

func (l *loader) run() error {
	log := l.cfg.logger

	if _, err := opc.ReadContentTypes(l.a); err != nil {
		return err
	}
	part, err := opc.WorkbookPart(l.a)
	if err != nil {
		return err
	}
	l.workbookPart = part
	log.Debugf("Workbook part is %s", part)

	wx, err := l.readWorkbook()
	if err != nil {
		return err
	}
	if wx.WorkbookPr != nil && parseBool(wx.WorkbookPr.Date1904) {
		l.wb.SetEpoch(value.Mac1904)
	}

	rels, err := opc.ReadRelationships(l.a, part)
	if err != nil {
		return err
	}
	if err := l.readShared(rels); err != nil {
		return err
	}

	sheets, err := opc.DetectWorksheets(l.a)
	if err != nil {
		return err
	}
	for _, sp := range sheets {
		if err := l.readSheet(sp); err != nil {
			return err
		}
	}
	if l.wb.SheetCount() == 0 {
		return fmt.Errorf("%w: workbook has no worksheets", archive.ErrInvalidFile)
	}

	l.definedNames(wx)
	if wx.BookViews != nil && len(wx.BookViews.WorkbookView) > 0 {
		if err := l.wb.SetActive(wx.BookViews.WorkbookView[0].ActiveTab); err != nil {
			log.Debugf("Ignoring active tab: %v", err)
		}
	}
	return l.readProperties()
}

func (l *loader) readWorkbook() (*workbookXML, error) {
	data, err := l.a.ReadPart(l.workbookPart)
	if err != nil {
		return nil, opc.NewPartError(l.workbookPart, err)
	}
	var wx workbookXML
	if err := xmlutil.Unmarshal(data, &wx); err != nil {
		return nil, opc.NewPartError(l.workbookPart, err)
	}
	return &wx, nil
}

// readShared loads the styles and shared strings named by the workbook
// relationships. Both parts are optional.
func (l *loader) readShared(rels []opc.Relationship) error {
	l.styles = []string{"General"}
	if rel, ok := opc.FindByType(rels, opc.RelStyles); ok {
		part := opc.ResolveTarget(l.workbookPart, rel.Target)
		data, err := l.a.ReadPart(part)
		if err != nil {
			return opc.NewPartError(part, err)
		}
		if l.styles, err = parseStyles(part, data, l.cfg.logger); err != nil {
			return err
		}
	}

	if rel, ok := opc.FindByType(rels, opc.RelSharedStrings); ok {
		part := opc.ResolveTarget(l.workbookPart, rel.Target)
		data, err := l.a.ReadPart(part)
		if err != nil {
			return opc.NewPartError(part, err)
		}
		if l.sst, err = parseSharedStrings(part, data); err != nil {
			return err
		}
		l.wb.SetSharedStrings(workbook.NewSharedStrings(l.sst))
	}
	l.cfg.logger.Debugf("Read %d cell formats and %d shared strings", len(l.styles), len(l.sst))
	return nil
}

func (l *loader) readSheet(sp opc.WorksheetPart) error {
	ws, err := l.wb.CreateSheet(sp.Name)
	if err != nil {
		return opc.NewPartError(sp.Part, err)
	}

	rels, err := opc.ReadRelationships(l.a, sp.Part)
	if err != nil {
		return err
	}
	for _, rel := range rels {
		if rel.Type == opc.RelHyperlink {
			ws.AddRelationship(rel)
		}
	}

	rc, err := l.a.OpenPart(sp.Part)
	if err != nil {
		return opc.NewPartError(sp.Part, err)
	}
	defer rc.Close()

	l.cfg.logger.Debugf("Processing worksheet %q from %s", sp.Name, sp.Part)
	opts := []LoadOption{WithLogger(l.cfg.logger)}
	if l.cfg.dataOnly {
		opts = append(opts, WithDataOnly())
	}
	if l.cfg.guessTypes {
		opts = append(opts, WithGuessTypes())
	}
	if err := FastParse(ws, rc, l.sst, l.styles, 0, opts...); err != nil {
		return opc.NewPartError(sp.Part, err)
	}

	if rel, ok := opc.FindByType(rels, opc.RelComments); ok {
		return l.readComments(ws, opc.ResolveTarget(sp.Part, rel.Target))
	}
	return nil
}

func (l *loader) readComments(ws *workbook.Worksheet, part string) error {
	data, err := l.a.ReadPart(part)
	if err != nil {
		return opc.NewPartError(part, err)
	}
	var cx commentsXML
	if err := xmlutil.Unmarshal(data, &cx); err != nil {
		return opc.NewPartError(part, err)
	}
	authors := cx.Authors.Author
	for _, c := range cx.CommentList.Comment {
		comment := workbook.Comment{Text: richText(c.Text)}
		if c.AuthorID >= 0 && c.AuthorID < len(authors) {
			comment.Author = authors[c.AuthorID]
		}
		if err := ws.SetComment(c.Ref, comment); err != nil {
			return opc.NewPartError(part, err)
		}
	}
	return nil
}

// definedNames turns workbook-level names over one sheet range into named
// ranges. Built-in and sheet-scoped names are skipped.
func (l *loader) definedNames(wx *workbookXML) {
	if wx.DefinedNames == nil {
		return
	}
	for _, dn := range wx.DefinedNames.DefinedName {
		if strings.HasPrefix(dn.Name, "_xlnm.") || dn.LocalSheetID != nil {
			continue
		}
		sheet, rr, err := cellref.ParseQualified(strings.TrimSpace(dn.Value))
		if err != nil {
			l.cfg.logger.Debugf("Skipping defined name %q: %v", dn.Name, err)
			continue
		}
		ws, err := l.wb.SheetByTitle(sheet)
		if err != nil {
			l.cfg.logger.Debugf("Skipping defined name %q: %v", dn.Name, err)
			continue
		}
		if err := l.wb.CreateNamedRange(dn.Name, ws, rr.String()); err != nil {
			l.cfg.logger.Debugf("Skipping defined name %q: %v", dn.Name, err)
		}
	}
}

func (l *loader) readProperties() error {
	rels, err := opc.ReadRelationships(l.a, "")
	if err != nil {
		return err
	}
	rel, ok := opc.FindByType(rels, opc.RelCoreProperties)
	if !ok {
		return nil
	}
	part := opc.ResolveTarget("", rel.Target)
	if !l.a.Has(part) {
		return nil
	}
	data, err := l.a.ReadPart(part)
	if err != nil {
		return opc.NewPartError(part, err)
	}
	var cp corePropertiesXML
	if err := xmlutil.Unmarshal(data, &cp); err != nil {
		return opc.NewPartError(part, err)
	}

	p := &l.wb.Properties
	p.Title = cp.Title
	p.Subject = cp.Subject
	p.Creator = cp.Creator
	p.Description = cp.Description
	p.LastModifiedBy = cp.LastModBy
	p.Keywords = splitKeywords(cp.Keywords)
	p.Created, _ = time.Parse(time.RFC3339, strings.TrimSpace(cp.Created))
	p.Modified, _ = time.Parse(time.RFC3339, strings.TrimSpace(cp.Modified))
	return nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
