package workbook

import (
	"fmt"
	"net/url"

	"github.com/tsawler/xlkit/opc"
	"github.com/tsawler/xlkit/value"
)

// SetHyperlink links the cell at ref to an absolute URL. The target is kept
// as an external relationship of the sheet.
func (ws *Worksheet) SetHyperlink(ref, target string) error {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return fmt.Errorf("%w: %q is not an absolute URL", value.ErrDataType, target)
	}
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}

	if c.hyperlink != "" {
		for i := range ws.rels {
			if ws.rels[i].ID == c.hyperlink {
				ws.rels[i].Target = target
				return nil
			}
		}
	}
	c.hyperlink = ws.AddRelationship(opc.Relationship{
		Type:   opc.RelHyperlink,
		Target: target,
		Mode:   opc.External,
	})
	return nil
}

// LinkCell attaches an existing relationship id to the cell at ref.
func (ws *Worksheet) LinkCell(ref, relID string) error {
	if _, ok := opc.FindByID(ws.rels, relID); !ok {
		return fmt.Errorf("%w: unknown relationship %q", value.ErrDataType, relID)
	}
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	c.hyperlink = relID
	return nil
}

// Hyperlink returns the URL linked from the cell at ref.
func (ws *Worksheet) Hyperlink(ref string) (string, bool) {
	c, err := ws.Cell(ref)
	if err != nil || c.hyperlink == "" {
		return "", false
	}
	rel, ok := opc.FindByID(ws.rels, c.hyperlink)
	if !ok {
		return "", false
	}
	return rel.Target, true
}

// ClearHyperlink removes the link and its relationship.
func (ws *Worksheet) ClearHyperlink(ref string) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	if c.hyperlink == "" {
		return nil
	}
	for i := range ws.rels {
		if ws.rels[i].ID == c.hyperlink {
			ws.rels = append(ws.rels[:i], ws.rels[i+1:]...)
			break
		}
	}
	c.hyperlink = ""
	return nil
}

// SetComment attaches a comment to the cell at ref.
func (ws *Worksheet) SetComment(ref string, comment Comment) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	c.comment = &comment
	return nil
}

// ClearComment removes the comment of the cell at ref.
func (ws *Worksheet) ClearComment(ref string) error {
	c, err := ws.Cell(ref)
	if err != nil {
		return err
	}
	c.comment = nil
	return nil
}

// CommentCount returns the number of cells with a comment.
func (ws *Worksheet) CommentCount() int {
	n := 0
	for _, c := range ws.cells {
		if c.comment != nil {
			n++
		}
	}
	return n
}
