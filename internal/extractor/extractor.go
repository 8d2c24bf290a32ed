// Package extractor walks the cell dictionary produced by xmlreader,
// identifies table-shaped cells and their row-shaped children, and parses
// each row into a typed Field, populating per-table field lists, primary
// key sets, and explicitly annotated foreign keys.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/erdc/erdc/internal/schema"
	"github.com/erdc/erdc/internal/xmlreader"
)

// fieldLineRe matches "<name> : <type> <constraints>" where type may carry
// a parenthesized length ("VARCHAR(50)").
var fieldLineRe = regexp.MustCompile(`^(?P<name>\w+)\s*:\s*(?P<type>[\w()]+)\s*(?P<constraints>.*)$`)

// fkAnnotationRe matches an inline "fk <table>(<column>)" constraint note.
var fkAnnotationRe = regexp.MustCompile(`(?i)fk\s+(\w+)\s*\(\s*(\w+)\s*\)`)

// boldTagRe strips <b>/<strong> markup once bold detection has consulted it.
var boldTagRe = regexp.MustCompile(`(?i)</?(?:b|strong)>`)

// Extract walks cells in document order (ids) and returns the populated
// Schema. Non-table cells are ignored except as table children.
func Extract(cells map[string]*schema.CellData, order []string) *schema.Schema {
	s := schema.New()
	for _, id := range order {
		cell := cells[id]
		if !isTableCell(cell) {
			continue
		}
		name := cell.Value
		if name == "" {
			continue
		}
		tbl := schema.NewTable(name, cell.ID)
		for _, rowID := range cell.Children {
			row, ok := cells[rowID]
			if !ok || !isRowCell(row) {
				continue
			}
			extractRow(cells, row, tbl)
		}
		s.AddTable(tbl)
	}
	return s
}

// isTableCell reports whether cell is a table per spec §4.2/§6: a vertex
// whose style contains shape=table, or the legacy rounded=0;whiteSpace=wrap
// combination.
func isTableCell(cell *schema.CellData) bool {
	if cell == nil || !cell.Vertex {
		return false
	}
	style := xmlreader.ParseStyle(cell.Style)
	if style["shape"] == "table" {
		return true
	}
	return style["rounded"] == "0" && style["whiteSpace"] == "wrap"
}

// isRowCell reports whether cell is a table row per spec §4.2/§6.
func isRowCell(cell *schema.CellData) bool {
	style := xmlreader.ParseStyle(cell.Style)
	_, has := style["shape"]
	return has && style["shape"] == "tableRow"
}

// extractRow parses one row's up-to-three column cells (marker, column
// name, type) positionally and, if a field results, annotates and appends
// it to tbl.
func extractRow(cells map[string]*schema.CellData, row *schema.CellData, tbl *schema.Table) {
	if len(row.Children) < 2 {
		return
	}

	var markerCell, nameCell, typeCell *schema.CellData
	for i, childID := range row.Children {
		child := cells[childID]
		if child == nil {
			continue
		}
		switch i {
		case 0:
			markerCell = child
		case 1:
			nameCell = child
		case 2:
			typeCell = child
		}
	}
	if nameCell == nil {
		return
	}

	marker := ""
	if markerCell != nil {
		marker = markerCell.Value
	}
	columnText := stripBoldTags(nameCell.Value)
	if columnText == "" {
		return
	}
	typeText := ""
	if typeCell != nil {
		typeText = stripBoldTags(typeCell.Value)
	}

	field := parseFieldLine(columnText, typeText)
	bold := isBold(nameCell)

	f := tbl.AddField(field)

	upperMarker := strings.ToUpper(marker)
	if strings.Contains(upperMarker, "PK") {
		tbl.AddPK(f.Name)
		f.AddConstraint("PRIMARY KEY")
	}
	if strings.Contains(upperMarker, "FK") {
		f.IsFK = true
		if m := fkAnnotationRe.FindStringSubmatch(f.Constraints); m != nil {
			tbl.AddForeignKey(schema.ForeignKey{
				ChildFields: []string{f.Name},
				RefTable:    m[1],
				RefColumns:  []string{m[2]},
			})
		}
	}
	if bold {
		f.IsUnique = true
		f.AddConstraint("UNIQUE")
	}
}

// parseFieldLine applies the field grammar to "<name> : <type>", falling
// back to treating the raw column/type text as name/type with empty
// constraints if the grammar does not match.
func parseFieldLine(columnText, typeText string) schema.Field {
	line := columnText + " : " + typeText
	m := fieldLineRe.FindStringSubmatch(line)
	if m == nil {
		return schema.Field{Name: columnText, Type: typeText}
	}
	return schema.Field{
		Name:        m[1],
		Type:        m[2],
		Constraints: strings.TrimSpace(m[3]),
	}
}

// isBold reports whether a column-name cell renders bold: HTML <b>/<strong>
// markup in its value, or the style's fontStyle integer having bit 0 set.
// Bit 0 also fires for italic+bold combinations and ignores underline —
// deliberate, not a bug.
func isBold(cell *schema.CellData) bool {
	lower := strings.ToLower(cell.Value)
	if strings.Contains(lower, "<b>") || strings.Contains(lower, "<strong>") {
		return true
	}
	style := xmlreader.ParseStyle(cell.Style)
	fs, ok := style["fontStyle"]
	if !ok {
		return false
	}
	n, err := strconv.Atoi(fs)
	if err != nil {
		return false
	}
	return n&1 == 1
}

func stripBoldTags(s string) string {
	return strings.TrimSpace(boldTagRe.ReplaceAllString(s, ""))
}
