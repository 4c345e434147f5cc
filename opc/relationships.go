package opc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/internal/xmlutil"
)

const nsPackageRels = "http://schemas.openxmlformats.org/package/2006/relationships"

// RelationshipType classifies a relationship by the last segment of its type URI.
type RelationshipType int

const (
	RelUnknown RelationshipType = iota
	RelOfficeDocument
	RelWorksheet
	RelChartsheet
	RelStyles
	RelTheme
	RelSharedStrings
	RelCustomXML
	RelHyperlink
	RelComments
	RelDrawing
	RelVMLDrawing
	RelCoreProperties
	RelExtendedProperties
	RelPrinterSettings
	RelCalcChain
	RelTable
)

var relTypeNames = map[RelationshipType]string{
	RelOfficeDocument:     "officeDocument",
	RelWorksheet:          "worksheet",
	RelChartsheet:         "chartsheet",
	RelStyles:             "styles",
	RelTheme:              "theme",
	RelSharedStrings:      "sharedStrings",
	RelCustomXML:          "customXml",
	RelHyperlink:          "hyperlink",
	RelComments:           "comments",
	RelDrawing:            "drawing",
	RelVMLDrawing:         "vmlDrawing",
	RelCoreProperties:     "core-properties",
	RelExtendedProperties: "extended-properties",
	RelPrinterSettings:    "printerSettings",
	RelCalcChain:          "calcChain",
	RelTable:              "table",
}

const (
	officeRelsBase  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	packageRelsBase = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/"
)

// String returns the type's URI segment, or "unknown".
func (t RelationshipType) String() string {
	if s, ok := relTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// URI returns the transitional type URI written for t.
func (t RelationshipType) URI() string {
	switch t {
	case RelUnknown:
		return ""
	case RelCoreProperties:
		return packageRelsBase + relTypeNames[t]
	default:
		return officeRelsBase + relTypeNames[t]
	}
}

// ParseRelationshipType maps a type URI (transitional or strict) to its type.
func ParseRelationshipType(uri string) RelationshipType {
	segment := uri[strings.LastIndex(uri, "/")+1:]
	for t, name := range relTypeNames {
		if strings.EqualFold(segment, name) {
			return t
		}
	}
	return RelUnknown
}

// TargetMode tells whether a target is a part of the package.
type TargetMode int

const (
	Internal TargetMode = iota
	External
)

// String returns the attribute value for the mode.
func (m TargetMode) String() string {
	if m == External {
		return "External"
	}
	return "Internal"
}

// Relationship is one entry of a relationship part.
type Relationship struct {
	ID      string
	Type    RelationshipType
	TypeURI string
	Target  string
	Mode    TargetMode
}

// URI returns the type URI as read, or the canonical URI for Type.
func (r Relationship) URI() string {
	if r.TypeURI != "" {
		return r.TypeURI
	}
	return r.Type.URI()
}

type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Xmlns        string            `xml:"xmlns,attr,omitempty"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// RelsPartFor returns the relationship part of owner. The empty owner is the
// package itself.
func RelsPartFor(owner string) string {
	owner = strings.TrimPrefix(owner, "/")
	if owner == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(owner)
	return dir + "_rels/" + file + ".rels"
}

// ResolveTarget turns an internal target into a part name. Targets are
// relative to the owner's directory unless they start with a slash.
func ResolveTarget(owner, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	dir := path.Dir(strings.TrimPrefix(owner, "/"))
	if owner == "" {
		dir = ""
	}
	return strings.TrimPrefix(path.Join(dir, target), "/")
}

// ParseRelationships decodes a relationship part in document order.
func ParseRelationships(part string, data []byte) ([]Relationship, error) {
	var rx relationshipsXML
	if err := xmlutil.Unmarshal(data, &rx); err != nil {
		return nil, NewPartError(part, err)
	}

	rels := make([]Relationship, 0, len(rx.Relationship))
	for _, r := range rx.Relationship {
		if r.ID == "" {
			return nil, NewPartError(part, errors.New("relationship without Id"))
		}
		rel := Relationship{
			ID:      r.ID,
			Type:    ParseRelationshipType(r.Type),
			TypeURI: r.Type,
			Target:  r.Target,
		}
		if strings.EqualFold(r.TargetMode, "External") {
			rel.Mode = External
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

// ReadRelationships parses the relationship part of owner. A missing part
// means no relationships.
func ReadRelationships(a *archive.Archive, owner string) ([]Relationship, error) {
	part := RelsPartFor(owner)
	if !a.Has(part) {
		return nil, nil
	}
	data, err := a.ReadPart(part)
	if err != nil {
		return nil, NewPartError(part, err)
	}
	return ParseRelationships(part, data)
}

// MarshalRelationships encodes rels in order.
func MarshalRelationships(rels []Relationship) ([]byte, error) {
	rx := relationshipsXML{Xmlns: nsPackageRels}
	for _, r := range rels {
		x := relationshipXML{ID: r.ID, Type: r.URI(), Target: r.Target}
		if r.Mode == External {
			x.TargetMode = External.String()
		}
		rx.Relationship = append(rx.Relationship, x)
	}
	out, err := xml.Marshal(rx)
	if err != nil {
		return nil, fmt.Errorf("encoding relationships: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// FindByType returns the first relationship of type t.
func FindByType(rels []Relationship, t RelationshipType) (Relationship, bool) {
	for _, r := range rels {
		if r.Type == t {
			return r, true
		}
	}
	return Relationship{}, false
}

// FindByID returns the relationship with the given id.
func FindByID(rels []Relationship, id string) (Relationship, bool) {
	for _, r := range rels {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}
