// Package resolver classifies each diagram edge by cardinality and either
// injects a foreign key into the appropriate child table or synthesizes a
// junction table for many-to-many associations.
package resolver

import (
	"sort"
	"strings"

	"github.com/erdc/erdc/internal/schema"
	"github.com/erdc/erdc/internal/xmlreader"
)

// multiplicity is the (min, max) pair from spec §4.3: Min is 0 or 1, and
// MaxMany is true when the max side is "N" rather than "1".
type multiplicity struct {
	Min     int
	MaxMany bool
}

// Resolve walks every edge cell in document order and mutates schema s in
// place: injecting FK columns into child tables or adding junction tables,
// exactly as spec.md §4.3 describes.
func Resolve(s *schema.Schema, cells map[string]*schema.CellData, order []string) {
	tableByCellID := make(map[string]*schema.Table)
	for _, t := range s.AllTables() {
		if t.CellID != "" {
			tableByCellID[t.CellID] = t
		}
	}

	junctions := make(map[string]*schema.Table)

	for _, id := range order {
		cell := cells[id]
		if cell == nil || !cell.Edge || cell.Source == "" || cell.Target == "" {
			continue
		}
		src, ok1 := resolveEndpoint(cell.Source, cells, tableByCellID)
		dst, ok2 := resolveEndpoint(cell.Target, cells, tableByCellID)
		if !ok1 || !ok2 || src == dst {
			continue
		}
		sm, em, ok := classifyCardinality(cell)
		if !ok {
			continue
		}
		applyRelationship(s, src, dst, sm, em, junctions)
	}
}

// resolveEndpoint walks upward via parent links starting at cellID until it
// hits a cell that is the origin cell of some table. Cycles during ascent
// are broken by a visited set.
func resolveEndpoint(cellID string, cells map[string]*schema.CellData, tableByCellID map[string]*schema.Table) (*schema.Table, bool) {
	visited := make(map[string]bool)
	id := cellID
	for id != "" {
		if visited[id] {
			return nil, false
		}
		visited[id] = true
		if t, ok := tableByCellID[id]; ok {
			return t, true
		}
		cell, ok := cells[id]
		if !ok {
			return nil, false
		}
		id = cell.Parent
	}
	return nil, false
}

var cardinalityLabels = []struct {
	tokens []string
	src    multiplicity
	dst    multiplicity
}{
	{[]string{"1:N"}, multiplicity{Min: 1}, multiplicity{Min: 0, MaxMany: true}},
	{[]string{"N:1"}, multiplicity{Min: 0, MaxMany: true}, multiplicity{Min: 1}},
	{[]string{"1:1"}, multiplicity{Min: 1}, multiplicity{Min: 1}},
	{[]string{"N:N", "M:M", "M:N", "N:M"}, multiplicity{Min: 0, MaxMany: true}, multiplicity{Min: 0, MaxMany: true}},
}

// classifyCardinality determines the edge's (source, target) multiplicity
// pair: the edge label takes priority over style-parsed arrows.
func classifyCardinality(cell *schema.CellData) (multiplicity, multiplicity, bool) {
	upperLabel := strings.ToUpper(cell.Value)
	for _, c := range cardinalityLabels {
		for _, tok := range c.tokens {
			if strings.Contains(upperLabel, tok) {
				return c.src, c.dst, true
			}
		}
	}

	style := xmlreader.ParseStyle(cell.Style)
	sm, sOK := arrowMultiplicity(style["startArrow"])
	em, eOK := arrowMultiplicity(style["endArrow"])
	if !sOK || !eOK {
		return multiplicity{}, multiplicity{}, false
	}
	return sm, em, true
}

func arrowMultiplicity(code string) (multiplicity, bool) {
	switch code {
	case "ERone", "ERmandOne":
		return multiplicity{Min: 1}, true
	case "ERzeroToOne":
		return multiplicity{Min: 0}, true
	case "ERmany", "ERoneToMany":
		return multiplicity{Min: 1, MaxMany: true}, true
	case "ERzeroToMany":
		return multiplicity{Min: 0, MaxMany: true}, true
	}
	return multiplicity{}, false
}

// applyRelationship classifies the (s_max, e_max) pair into a relationship
// kind and performs the corresponding rewrite.
func applyRelationship(s *schema.Schema, src, dst *schema.Table, sm, em multiplicity, junctions map[string]*schema.Table) {
	switch {
	case sm.MaxMany && em.MaxMany:
		ensureJunction(s, src, dst, junctions)
	case !sm.MaxMany && em.MaxMany:
		// one-to-many: source is parent. The parent endpoint's own min is
		// the count of parents required per child row, so it (not the
		// child endpoint's min) is what makes the child's FK mandatory or
		// nullable — see boundary scenario 1, where a mandatory "1" parent
		// produces a NOT NULL child FK regardless of the child endpoint's
		// own (informational) multiplicity.
		ensureFK(dst, src, sm.Min == 0)
	case sm.MaxMany && !em.MaxMany:
		// many-to-one: target is parent, same reasoning mirrored.
		ensureFK(src, dst, em.Min == 0)
	default:
		applyOneToOne(src, dst, sm, em)
	}
}

func applyOneToOne(src, dst *schema.Table, sm, em multiplicity) {
	var parent, child *schema.Table
	var childMin int
	switch {
	case sm.Min == 0 && em.Min != 0:
		parent, child, childMin = dst, src, sm.Min
	case em.Min == 0 && sm.Min != 0:
		parent, child, childMin = src, dst, em.Min
	default:
		if src.Name < dst.Name {
			parent, child, childMin = src, dst, em.Min
		} else {
			parent, child, childMin = dst, src, sm.Min
		}
	}
	ensureFK(child, parent, childMin == 0)
}

// parentPKColumns returns the parent's PK field names and their types. A
// table with no declared PK falls back to a single synthetic "id"/"INT"
// pair, matching the original compiler's default.
func parentPKColumns(p *schema.Table) ([]string, []string) {
	if len(p.PKFields) == 0 {
		return []string{"id"}, []string{"INT"}
	}
	names := append([]string(nil), p.PKFields...)
	types := make([]string, len(names))
	for i, n := range names {
		if f := p.FieldByName(n); f != nil {
			types[i] = f.Type
		} else {
			types[i] = "INT"
		}
	}
	return names, types
}

// ensureFK implements spec.md §4.3's five-step ensure_fk procedure.
func ensureFK(child, parent *schema.Table, optional bool) {
	pkNames, pkTypes := parentPKColumns(parent)

	// Step 1: already satisfied.
	if _, ok := child.HasForeignKeyTo(parent.Name, pkNames); ok {
		return
	}

	// Step 2: composite reuse — every parent PK column already present as
	// an FK-flagged field of the child.
	if len(pkNames) >= 2 {
		allPresent := true
		for _, n := range pkNames {
			f := child.FieldByName(n)
			if f == nil || !f.IsFK {
				allPresent = false
				break
			}
		}
		if allPresent {
			child.AddForeignKey(schema.ForeignKey{
				ChildFields: append([]string(nil), pkNames...),
				RefTable:    parent.Name,
				RefColumns:  append([]string(nil), pkNames...),
			})
			for _, n := range pkNames {
				f := child.FieldByName(n)
				f.IsFK = true
				if !optional {
					f.AddConstraint("NOT NULL")
				}
			}
			return
		}
	}

	// Step 3: reuse scan — an already-FK-flagged, unbound field whose name
	// mentions the parent table or its first PK column.
	lowerParent := strings.ToLower(parent.Name)
	lowerFirstPK := strings.ToLower(pkNames[0])
	bound := boundChildFields(child)
	for i := range child.Fields {
		f := &child.Fields[i]
		if !f.IsFK || bound[f.Name] {
			continue
		}
		lname := strings.ToLower(f.Name)
		if strings.Contains(lname, lowerParent) || strings.Contains(lname, lowerFirstPK) {
			bindSingleColumnFK(child, f, parent.Name, pkNames[0], optional)
			return
		}
	}

	// Step 4: named match — P, P_id, P_code, or <name>_id/<name>_code where
	// <name> equals P.
	named := []string{parent.Name, parent.Name + "_id", parent.Name + "_code"}
	var matched *schema.Field
	for _, n := range named {
		if f := child.FieldByName(n); f != nil {
			matched = f
			break
		}
	}
	if matched == nil {
		for i := range child.Fields {
			f := &child.Fields[i]
			stripped := strings.TrimSuffix(f.Name, "_id")
			stripped = strings.TrimSuffix(stripped, "_code")
			if stripped == parent.Name {
				matched = f
				break
			}
		}
	}
	if matched != nil {
		bindSingleColumnFK(child, matched, parent.Name, pkNames[0], optional)
		return
	}

	// Step 5: synthesize a new field.
	newField := schema.Field{Name: parent.Name + "_id", Type: pkTypes[0], IsFK: true}
	f := child.AddField(newField)
	bindSingleColumnFK(child, f, parent.Name, pkNames[0], optional)
}

func bindSingleColumnFK(child *schema.Table, f *schema.Field, refTable, refColumn string, optional bool) {
	f.IsFK = true
	if !optional {
		f.AddConstraint("NOT NULL")
	}
	child.AddForeignKey(schema.ForeignKey{
		ChildFields: []string{f.Name},
		RefTable:    refTable,
		RefColumns:  []string{refColumn},
	})
}

func boundChildFields(t *schema.Table) map[string]bool {
	out := make(map[string]bool)
	for _, fk := range t.FKs {
		for _, cf := range fk.ChildFields {
			out[cf] = true
		}
	}
	return out
}

// ensureJunction synthesizes (or returns the existing) junction table for
// the unordered pair {a, b}. The junction's name sorts the two table names
// lexicographically, but its PK column order follows a, b exactly as
// passed — the insertion order of the endpoints at edge creation — which
// may differ from the name's sorted order (spec.md §9 open question).
func ensureJunction(s *schema.Schema, a, b *schema.Table, created map[string]*schema.Table) *schema.Table {
	key := pairKey(a.Name, b.Name)
	if existing, ok := created[key]; ok {
		return existing
	}

	jt := schema.NewTable(junctionName(a.Name, b.Name), "")
	jt.IsJunction = true

	aNames, aTypes := parentPKColumns(a)
	bNames, bTypes := parentPKColumns(b)

	aCol := a.Name + "_id"
	bCol := b.Name + "_id"

	aField := jt.AddField(schema.Field{Name: aCol, Type: aTypes[0], IsFK: true})
	aField.AddConstraint("NOT NULL")
	bField := jt.AddField(schema.Field{Name: bCol, Type: bTypes[0], IsFK: true})
	bField.AddConstraint("NOT NULL")

	jt.AddPK(aCol)
	jt.AddPK(bCol)

	jt.AddForeignKey(schema.ForeignKey{ChildFields: []string{aCol}, RefTable: a.Name, RefColumns: []string{aNames[0]}})
	jt.AddForeignKey(schema.ForeignKey{ChildFields: []string{bCol}, RefTable: b.Name, RefColumns: []string{bNames[0]}})

	s.AddTable(jt)
	created[key] = jt
	return jt
}

func junctionName(a, b string) string {
	names := []string{a, b}
	sort.Strings(names)
	return names[0] + "_" + names[1] + "_rel"
}

func pairKey(a, b string) string {
	names := []string{a, b}
	sort.Strings(names)
	return names[0] + "\x00" + names[1]
}
