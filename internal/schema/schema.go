// Package schema contains the shared in-memory data model produced by the
// extractor and resolver and consumed by the dependency analyzer, DDL
// emitter, and validator. It exists to avoid import cycles between those
// packages.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Field is a single column within a table.
type Field struct {
	Name        string
	Type        string
	Constraints string
	IsFK        bool
	IsUnique    bool
}

// HasConstraint reports whether the given token (case-insensitive) is
// already present in the field's constraints text. A multi-word token such
// as "NOT NULL" matches as a consecutive run of words.
func (f *Field) HasConstraint(token string) bool {
	want := strings.Fields(token)
	have := strings.Fields(f.Constraints)
	if len(want) == 0 {
		return false
	}
	for i := 0; i+len(want) <= len(have); i++ {
		match := true
		for j, w := range want {
			if !strings.EqualFold(have[i+j], w) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// AddConstraint appends token to the constraints text unless already present.
func (f *Field) AddConstraint(token string) {
	if f.HasConstraint(token) {
		return
	}
	if f.Constraints == "" {
		f.Constraints = token
		return
	}
	f.Constraints = f.Constraints + " " + token
}

// RemoveConstraint strips token (case-insensitive, whole-word) from the
// constraints text. Used by the emitter when a field's PRIMARY KEY marker
// must be suppressed because the table already carries a table-level PK
// clause.
func (f *Field) RemoveConstraint(token string) {
	fields := strings.Fields(f.Constraints)
	out := fields[:0]
	for _, tok := range fields {
		if !strings.EqualFold(tok, token) {
			out = append(out, tok)
		}
	}
	f.Constraints = strings.Join(out, " ")
}

// ForeignKey is a directed referential link from a table's child fields to
// another table's columns. ChildFields and RefColumns are parallel ordered
// tuples; composite FKs have len > 1.
type ForeignKey struct {
	ChildFields []string
	RefTable    string
	RefColumns  []string
}

// key returns the identity used for FK-set deduplication: two FKs are equal
// iff their child-field tuple, referenced table, and referenced-column
// tuple all coincide.
func (fk ForeignKey) key() string {
	return strings.Join(fk.ChildFields, ",") + "->" + fk.RefTable + "(" + strings.Join(fk.RefColumns, ",") + ")"
}

// SortKey returns the key used to order FKs deterministically for
// emission: the child-field tuple, joined.
func (fk ForeignKey) SortKey() string {
	return strings.Join(fk.ChildFields, ",")
}

// Table is a relation: a name, its originating cell id, an ordered field
// list, an ordered PK field-name list, and a duplicate-free FK set.
type Table struct {
	Name       string
	CellID     string
	Fields     []Field
	PKFields   []string
	FKs        map[string]ForeignKey
	IsJunction bool
}

// NewTable constructs an empty table.
func NewTable(name, cellID string) *Table {
	return &Table{
		Name:   name,
		CellID: cellID,
		FKs:    make(map[string]ForeignKey),
	}
}

// FieldByName returns a pointer to the named field, or nil.
func (t *Table) FieldByName(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// HasField reports whether the table already declares a field by that name.
func (t *Table) HasField(name string) bool {
	return t.FieldByName(name) != nil
}

// AddField appends a new field unless one of the same name already exists,
// in which case it returns the existing field. Field names within a table
// are unique (spec invariant).
func (t *Table) AddField(f Field) *Field {
	if existing := t.FieldByName(f.Name); existing != nil {
		return existing
	}
	t.Fields = append(t.Fields, f)
	return &t.Fields[len(t.Fields)-1]
}

// AddPK appends name to the PK field list if not already present.
func (t *Table) AddPK(name string) {
	for _, n := range t.PKFields {
		if n == name {
			return
		}
	}
	t.PKFields = append(t.PKFields, name)
}

// AddForeignKey inserts fk into the table's FK set, deduplicating by
// (child fields, referenced table, referenced columns). Returns false if an
// equal FK was already present.
func (t *Table) AddForeignKey(fk ForeignKey) bool {
	k := fk.key()
	if _, ok := t.FKs[k]; ok {
		return false
	}
	t.FKs[k] = fk
	return true
}

// HasForeignKeyTo reports whether the table already has a ForeignKey with
// the given referenced table and referenced-column tuple.
func (t *Table) HasForeignKeyTo(refTable string, refColumns []string) (ForeignKey, bool) {
	want := ForeignKey{RefTable: refTable, RefColumns: refColumns}
	for _, fk := range t.FKs {
		if fk.RefTable == want.RefTable && sameTuple(fk.RefColumns, want.RefColumns) {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

func sameTuple(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SortedForeignKeys returns the table's FKs ordered by child-field tuple,
// satisfying the determinism requirement on emission.
func (t *Table) SortedForeignKeys() []ForeignKey {
	out := make([]ForeignKey, 0, len(t.FKs))
	for _, fk := range t.FKs {
		out = append(out, fk)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// CellData is the raw, transient node shape read off the input diagram.
type CellData struct {
	ID       string
	Value    string
	Style    string
	Parent   string
	Vertex   bool
	Edge     bool
	Source   string
	Target   string
	Children []string
}

// Schema owns every table produced by a single compilation. Tables is an
// insertion-ordered map so that iteration — and therefore emitted output —
// is deterministic; plain Go maps randomize iteration order, which would
// violate the "running the compiler twice yields byte-identical output"
// invariant.
type Schema struct {
	Tables *orderedmap.OrderedMap[string, *Table]
}

// New constructs an empty Schema.
func New() *Schema {
	return &Schema{Tables: orderedmap.NewOrderedMap[string, *Table]()}
}

// AddTable registers t, keyed by name. Re-adding the same name replaces the
// existing entry in place but preserves its original insertion position.
func (s *Schema) AddTable(t *Table) {
	s.Tables.Set(t.Name, t)
}

// GetTable returns the table by name, or nil if absent.
func (s *Schema) GetTable(name string) *Table {
	t, ok := s.Tables.Get(name)
	if !ok {
		return nil
	}
	return t
}

// HasTable reports whether name is already registered.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.Tables.Get(name)
	return ok
}

// TableNames returns table names in insertion order.
func (s *Schema) TableNames() []string {
	return s.Tables.Keys()
}

// AllTables returns tables in insertion order.
func (s *Schema) AllTables() []*Table {
	out := make([]*Table, 0, s.Tables.Len())
	for el := s.Tables.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// String renders a short diagnostic summary, useful in error messages and
// the validate subcommand.
func (s *Schema) String() string {
	var b strings.Builder
	for el := s.Tables.Front(); el != nil; el = el.Next() {
		t := el.Value
		fmt.Fprintf(&b, "%s (%d fields, %d FKs)\n", t.Name, len(t.Fields), len(t.FKs))
	}
	return b.String()
}
