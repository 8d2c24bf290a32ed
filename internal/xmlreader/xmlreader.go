// Package xmlreader flattens a draw.io-style mxCell diagram into a cell
// dictionary, reconstructing parent/child relationships and normalizing
// cell text for downstream parsing.
package xmlreader

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/erdc/erdc/internal/schema"
)

// rawCell mirrors the subset of mxCell attributes this reader consults.
// Unknown attributes and unknown element types are ignored.
type rawCell struct {
	XMLName xml.Name `xml:"mxCell"`
	ID      string   `xml:"id,attr"`
	Parent  string   `xml:"parent,attr"`
	Value   string   `xml:"value,attr"`
	Style   string   `xml:"style,attr"`
	Vertex  string   `xml:"vertex,attr"`
	Edge    string   `xml:"edge,attr"`
	Source  string   `xml:"source,attr"`
	Target  string   `xml:"target,attr"`
}

var (
	tagBreakRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagDivRe     = regexp.MustCompile(`(?i)</?div[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText strips <br/>/<div> markup, HTML-unescapes entities,
// collapses whitespace runs to a single space, and trims. All subsequent
// parsing in the extractor and resolver operates on normalized text.
func NormalizeText(raw string) string {
	s := tagBreakRe.ReplaceAllString(raw, " ")
	s = tagDivRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseStyle splits an mxCell style attribute ("shape=table;rounded=0;...")
// into a key=value map. A bare token with no "=" is stored with an empty
// value (draw.io styles sometimes carry bare flags like "rounded").
func ParseStyle(style string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(style, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.IndexByte(part, '='); i >= 0 {
			out[part[:i]] = part[i+1:]
		} else {
			out[part] = ""
		}
	}
	return out
}

// Read walks every mxCell element in document order, building a map from
// cell id to *schema.CellData plus the document-order slice of cell ids. A
// second pass appends each cell's id to its parent's Children slice,
// preserving document order (which later determines column order within a
// table). A cell whose parent id is unknown is still kept (orphan
// tolerant). The returned order slice lets callers walk cells
// deterministically, since the returned map does not preserve order.
func Read(r io.Reader) (map[string]*schema.CellData, []string, error) {
	dec := xml.NewDecoder(r)
	cells := make(map[string]*schema.CellData)
	var order []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("xmlreader: malformed document: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "mxCell" {
			continue
		}

		var raw rawCell
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, nil, fmt.Errorf("xmlreader: malformed mxCell: %w", err)
		}
		if raw.ID == "" {
			continue
		}

		cell := &schema.CellData{
			ID:     raw.ID,
			Value:  NormalizeText(raw.Value),
			Style:  raw.Style,
			Parent: raw.Parent,
			Vertex: raw.Vertex == "1",
			Edge:   raw.Edge == "1",
			Source: raw.Source,
			Target: raw.Target,
		}
		cells[cell.ID] = cell
		order = append(order, cell.ID)
	}

	for _, id := range order {
		cell := cells[id]
		if cell.Parent == "" {
			continue
		}
		parent, ok := cells[cell.Parent]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, cell.ID)
	}

	return cells, order, nil
}
