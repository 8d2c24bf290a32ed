package validator

import (
	"strings"
	"testing"

	"github.com/erdc/erdc/internal/schema"
)

func TestValidatePassesOnWellFormedSchema(t *testing.T) {
	s := schema.New()

	author := schema.NewTable("author", "t-author")
	author.AddField(schema.Field{Name: "id", Type: "INT"})
	author.AddPK("id")
	s.AddTable(author)

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "author_id", Type: "INT", IsFK: true})
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	if err := Validate(s); err != nil {
		t.Fatalf("expected no validation errors, got %v", err)
	}
}

func TestValidateReportsMissingReferencedTable(t *testing.T) {
	s := schema.New()

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "author_id", Type: "INT", IsFK: true})
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	err := Validate(s)
	if err == nil {
		t.Fatalf("expected an error for a foreign key referencing an unknown table")
	}
	if !strings.Contains(err.Error(), "unknown table") {
		t.Errorf("expected message to mention unknown table, got %v", err)
	}
}

func TestValidateReportsMissingReferencedColumn(t *testing.T) {
	s := schema.New()

	author := schema.NewTable("author", "t-author")
	author.AddField(schema.Field{Name: "id", Type: "INT"})
	author.AddPK("id")
	s.AddTable(author)

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "author_code", Type: "INT", IsFK: true})
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_code"}, RefTable: "author", RefColumns: []string{"code"}})
	s.AddTable(book)

	err := Validate(s)
	if err == nil {
		t.Fatalf("expected an error for a reference to a nonexistent column")
	}
	if !strings.Contains(err.Error(), "author(code)") {
		t.Errorf("expected message to name author(code), got %v", err)
	}
}

func TestValidateReportsBaseTypeMismatch(t *testing.T) {
	s := schema.New()

	author := schema.NewTable("author", "t-author")
	author.AddField(schema.Field{Name: "id", Type: "VARCHAR(36)"})
	author.AddPK("id")
	s.AddTable(author)

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "author_id", Type: "INT", IsFK: true})
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	err := Validate(s)
	if err == nil {
		t.Fatalf("expected a base type mismatch error (INT vs VARCHAR)")
	}
	if !strings.Contains(err.Error(), "INT") || !strings.Contains(err.Error(), "VARCHAR") {
		t.Errorf("expected both base types named in the message, got %v", err)
	}
}

func TestValidateTreatsMissingTypeAsVarchar(t *testing.T) {
	s := schema.New()

	author := schema.NewTable("author", "t-author")
	author.AddField(schema.Field{Name: "id", Type: ""})
	author.AddPK("id")
	s.AddTable(author)

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "author_id", Type: "varchar(10)", IsFK: true})
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	if err := Validate(s); err != nil {
		t.Errorf("expected a missing type to compare equal to VARCHAR, got %v", err)
	}
}

func TestValidateAccumulatesMultipleErrors(t *testing.T) {
	s := schema.New()

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "author_id", Type: "INT", IsFK: true})
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	review := schema.NewTable("review", "t-review")
	review.AddField(schema.Field{Name: "book_ref", Type: "INT", IsFK: true})
	review.AddForeignKey(schema.ForeignKey{ChildFields: []string{"book_ref"}, RefTable: "publisher", RefColumns: []string{"id"}})
	s.AddTable(review)

	err := Validate(s)
	errs, ok := err.(Errors)
	if !ok {
		t.Fatalf("expected Errors type, got %T", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected both unrelated FK errors to accumulate, got %d: %v", len(errs), errs)
	}
}

func TestValidateReportsMissingChildField(t *testing.T) {
	s := schema.New()

	author := schema.NewTable("author", "t-author")
	author.AddField(schema.Field{Name: "id", Type: "INT"})
	author.AddPK("id")
	s.AddTable(author)

	book := schema.NewTable("book", "t-book")
	// FK recorded without the backing child field actually existing.
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	err := Validate(s)
	if err == nil {
		t.Fatalf("expected an error for a missing child field")
	}
	if !strings.Contains(err.Error(), "does not exist on") {
		t.Errorf("expected message about the missing child field, got %v", err)
	}
}
