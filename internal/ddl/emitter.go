// Package ddl assembles the final SQL text artifact from a resolved schema
// and its dependency graph: DROP statements, CREATE TABLE blocks, deferred
// ALTER TABLE constraints, and foreign-key indexes, in the exact section
// order the compiler promises.
package ddl

import (
	"fmt"
	"strings"

	"github.com/erdc/erdc/internal/graph"
	"github.com/erdc/erdc/internal/schema"
)

// Emit assembles the complete DDL text for s, using g's topological order
// and the foreign keys deferred during graph construction.
func Emit(s *schema.Schema, g *graph.Graph, deferred []graph.DeferredFK, opts Options) string {
	tableOrder := s.TableNames()
	createOrder := g.TopologicalSort(tableOrder)
	dropOrder := g.DropOrder(tableOrder)

	var b strings.Builder

	if opts.IncludeHeaderComments {
		b.WriteString("-- Generated DDL\n")
		b.WriteString("-- Review before executing against a live database\n")
	}

	b.WriteString("-- Drop existing tables (in reverse dependency order)\n")
	if len(deferred) > 0 {
		fmt.Fprintf(&b, "-- %d foreign key(s) deferred to avoid a dependency cycle\n", len(deferred))
	}
	for _, name := range dropOrder {
		fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s CASCADE;\n", name)
	}
	b.WriteString("\n")

	deferredIdx := deferredLookup(deferred)

	for _, name := range createOrder {
		writeCreateTable(&b, s.GetTable(name), deferredIdx, opts)
		b.WriteString("\n")
	}

	if len(deferred) > 0 {
		b.WriteString("-- Deferred foreign key constraints\n")
		for _, d := range deferred {
			writeAlterTable(&b, d)
		}
		b.WriteString("\n")
	}

	b.WriteString("-- Indexes for foreign key columns\n")
	counts := make(map[string]int)
	for _, name := range createOrder {
		tbl := s.GetTable(name)
		for _, fk := range tbl.SortedForeignKeys() {
			writeIndex(&b, tbl.Name, fk, counts, opts)
		}
	}

	return b.String()
}

// writeCreateTable emits one CREATE TABLE block per spec.md §4.5's
// structure: field lines, a table-level PRIMARY KEY clause (or a fallback
// if none was declared), UNIQUE clauses for unique fields not already in
// the PK, and a FOREIGN KEY clause per non-deferred FK.
func writeCreateTable(b *strings.Builder, tbl *schema.Table, deferredIdx map[string]bool, opts Options) {
	fmt.Fprintf(b, "CREATE TABLE %s (\n", tbl.Name)

	hasPK := len(tbl.PKFields) > 0
	var lines []string
	fallbackPK := ""

	for i := range tbl.Fields {
		f := &tbl.Fields[i]
		typ := f.Type
		if typ == "" {
			typ = fmt.Sprintf("VARCHAR(%d)", opts.DefaultVarcharLength)
		}
		constraints := f.Constraints
		if hasPK && f.HasConstraint("PRIMARY") {
			stripped := *f
			stripped.RemoveConstraint("PRIMARY")
			stripped.RemoveConstraint("KEY")
			constraints = stripped.Constraints
		}

		line := fmt.Sprintf("    %s %s", f.Name, typ)
		if constraints != "" {
			line += " " + constraints
		}
		lines = append(lines, line)

		if !hasPK && fallbackPK == "" && !f.IsFK && f.HasConstraint("NOT") {
			fallbackPK = f.Name
		}
	}

	pkFields := tbl.PKFields
	if !hasPK && fallbackPK != "" {
		pkFields = []string{fallbackPK}
	}
	if len(pkFields) > 0 {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(pkFields, ", ")))
	}

	pkSet := make(map[string]bool, len(pkFields))
	for _, n := range pkFields {
		pkSet[n] = true
	}
	for i := range tbl.Fields {
		f := &tbl.Fields[i]
		if f.IsUnique && !pkSet[f.Name] {
			lines = append(lines, fmt.Sprintf("    UNIQUE (%s)", f.Name))
		}
	}

	for _, fk := range tbl.SortedForeignKeys() {
		if deferredIdx[fkKey(tbl.Name, fk)] {
			continue
		}
		action := "CASCADE"
		if fk.RefTable == tbl.Name {
			action = "SET NULL"
		}
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s",
			strings.Join(fk.ChildFields, ", "), fk.RefTable, strings.Join(fk.RefColumns, ", "), action))
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
}

func writeAlterTable(b *strings.Builder, d graph.DeferredFK) {
	name := fmt.Sprintf("fk_%s_%s", d.Child, d.FK.RefTable)
	fmt.Fprintf(b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE RESTRICT;\n",
		d.Child, name, strings.Join(d.FK.ChildFields, ", "), d.FK.RefTable, strings.Join(d.FK.RefColumns, ", "))
}

// writeIndex emits one CREATE INDEX statement per FK. IndexNameCollision
// governs what happens when two FKs of the same table would otherwise
// produce the same index name.
func writeIndex(b *strings.Builder, table string, fk schema.ForeignKey, counts map[string]int, opts Options) {
	base := fmt.Sprintf("idx_%s_%s", table, strings.Join(fk.ChildFields, "_"))
	counts[base]++
	occurrence := counts[base]

	name := base
	if occurrence > 1 {
		if opts.IndexNameCollision == "skip" {
			return
		}
		name = fmt.Sprintf("%s_%d", base, occurrence)
	}
	fmt.Fprintf(b, "CREATE INDEX %s ON %s(%s);\n", name, table, strings.Join(fk.ChildFields, ", "))
}

func deferredLookup(deferred []graph.DeferredFK) map[string]bool {
	out := make(map[string]bool, len(deferred))
	for _, d := range deferred {
		out[fkKey(d.Child, d.FK)] = true
	}
	return out
}

func fkKey(table string, fk schema.ForeignKey) string {
	return table + "\x00" + strings.Join(fk.ChildFields, ",") + "\x00" + fk.RefTable + "\x00" + strings.Join(fk.RefColumns, ",")
}
