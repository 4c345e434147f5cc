package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/tsawler/xlkit/archive"
	"github.com/tsawler/xlkit/internal/xmlutil"
)

// ContentTypesPart is the name of the content-type declaration part.
const ContentTypesPart = "[Content_Types].xml"

const nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"

// Media types written by the package writer.
const (
	MediaRelationships  = "application/vnd.openxmlformats-package.relationships+xml"
	MediaXML            = "application/xml"
	MediaWorkbook       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	MediaWorksheet      = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	MediaStyles         = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	MediaSharedStrings  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	MediaCoreProperties = "application/vnd.openxmlformats-package.core-properties+xml"
)

// ContentTypeEntry maps a part to its media type.
type ContentTypeEntry struct {
	PartName  string
	MediaType string
}

// Default declares the media type of every part with an extension.
type Default struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Override declares the media type of a single part.
type Override struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypes holds the declarations in document order.
type ContentTypes struct {
	Defaults  []Default
	Overrides []Override
}

type typesXML struct {
	XMLName   xml.Name   `xml:"Types"`
	Xmlns     string     `xml:"xmlns,attr,omitempty"`
	Defaults  []Default  `xml:"Default"`
	Overrides []Override `xml:"Override"`
}

// ParseContentTypes decodes a content-type declaration part.
func ParseContentTypes(data []byte) (*ContentTypes, error) {
	var t typesXML
	if err := xmlutil.Unmarshal(data, &t); err != nil {
		return nil, NewPartError(ContentTypesPart, err)
	}
	return &ContentTypes{Defaults: t.Defaults, Overrides: t.Overrides}, nil
}

// Lookup returns the media type of part. An Override for the exact path wins
// over the Default for its extension.
func (ct *ContentTypes) Lookup(part string) (string, bool) {
	name := "/" + strings.TrimPrefix(part, "/")
	for _, o := range ct.Overrides {
		if strings.EqualFold(o.PartName, name) {
			return o.ContentType, true
		}
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "", false
	}
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType, true
		}
	}
	return "", false
}

// AddDefault declares a media type for an extension unless one exists.
func (ct *ContentTypes) AddDefault(ext, mediaType string) {
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return
		}
	}
	ct.Defaults = append(ct.Defaults, Default{Extension: ext, ContentType: mediaType})
}

// AddOverride declares or replaces the media type of a part.
func (ct *ContentTypes) AddOverride(part, mediaType string) {
	name := "/" + strings.TrimPrefix(part, "/")
	for i, o := range ct.Overrides {
		if o.PartName == name {
			ct.Overrides[i].ContentType = mediaType
			return
		}
	}
	ct.Overrides = append(ct.Overrides, Override{PartName: name, ContentType: mediaType})
}

// Marshal encodes the declarations, defaults first.
func (ct *ContentTypes) Marshal() ([]byte, error) {
	out, err := xml.Marshal(typesXML{Xmlns: nsContentTypes, Defaults: ct.Defaults, Overrides: ct.Overrides})
	if err != nil {
		return nil, fmt.Errorf("encoding content types: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// ReadContentTypes lists every typed part: overrides in declaration order,
// then remaining archive parts whose extension has a default, in archive order.
func ReadContentTypes(a *archive.Archive) ([]ContentTypeEntry, error) {
	data, err := a.ReadPart(ContentTypesPart)
	if err != nil {
		return nil, NewPartError(ContentTypesPart, err)
	}
	ct, err := ParseContentTypes(data)
	if err != nil {
		return nil, err
	}

	var entries []ContentTypeEntry
	seen := make(map[string]bool)
	for _, o := range ct.Overrides {
		name := strings.TrimPrefix(o.PartName, "/")
		if seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		entries = append(entries, ContentTypeEntry{PartName: name, MediaType: o.ContentType})
	}
	for _, part := range a.Parts() {
		if part == ContentTypesPart || seen[strings.ToLower(part)] {
			continue
		}
		if mediaType, ok := ct.Lookup(part); ok {
			entries = append(entries, ContentTypeEntry{PartName: part, MediaType: mediaType})
		}
	}
	return entries, nil
}
