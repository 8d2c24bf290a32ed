// Package validator cross-checks a resolved schema before it is handed to
// the DDL emitter: every foreign key must reference a real table and
// column, and the child/referenced column types must agree at the base
// type level. All errors are accumulated and returned together rather than
// failing on the first one.
package validator

import (
	"fmt"
	"strings"

	"github.com/erdc/erdc/internal/schema"
	"github.com/erdc/erdc/internal/sqlutil"
)

// Error is one validation failure, naming the table/column(s) involved.
type Error struct {
	Table   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// Errors is the accumulated set of validation failures. A nil or empty
// Errors means the schema passed validation.
type Errors []*Error

func (errs Errors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Validate runs every cross-check against s and returns the accumulated
// Errors, or nil if the schema is valid. Per table, per FK, per column
// position: the child field must exist, the referenced table must exist,
// the referenced column must exist on it, and the two columns' base types
// (the text before any "(", uppercased; a missing type compares as
// "VARCHAR") must match.
func Validate(s *schema.Schema) error {
	var errs Errors

	for _, tbl := range s.AllTables() {
		for _, fk := range tbl.SortedForeignKeys() {
			errs = append(errs, validateForeignKey(s, tbl, fk)...)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateForeignKey(s *schema.Schema, tbl *schema.Table, fk schema.ForeignKey) []*Error {
	var errs []*Error

	refTable := s.GetTable(fk.RefTable)
	if refTable == nil {
		errs = append(errs, &Error{
			Table:   tbl.Name,
			Message: fmt.Sprintf("foreign key references unknown table %q", fk.RefTable),
		})
		return errs
	}

	n := len(fk.ChildFields)
	if len(fk.RefColumns) < n {
		n = len(fk.RefColumns)
	}
	for i := 0; i < n; i++ {
		childName := fk.ChildFields[i]
		refName := fk.RefColumns[i]

		childField := tbl.FieldByName(childName)
		if childField == nil {
			errs = append(errs, &Error{
				Table:   tbl.Name,
				Message: fmt.Sprintf("foreign key column %q does not exist on %q", childName, tbl.Name),
			})
			continue
		}

		refField := refTable.FieldByName(refName)
		if refField == nil {
			errs = append(errs, &Error{
				Table:   tbl.Name,
				Message: fmt.Sprintf("foreign key references %s(%s), which does not exist", fk.RefTable, refName),
			})
			continue
		}

		childType := sqlutil.BaseType(childField.Type)
		refType := sqlutil.BaseType(refField.Type)
		if childType != refType {
			errs = append(errs, &Error{
				Table: tbl.Name,
				Message: fmt.Sprintf("foreign key %s.%s (%s) does not match referenced column %s.%s (%s)",
					tbl.Name, childName, childType, fk.RefTable, refName, refType),
			})
		}
	}

	return errs
}
