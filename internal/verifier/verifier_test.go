package verifier

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/erdc/erdc/internal/ddl"
	"github.com/erdc/erdc/internal/graph"
	"github.com/erdc/erdc/internal/schema"
)

func TestApplyStatementsCountsTablesAndIndexes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	statements := []string{
		"DROP TABLE IF EXISTS book CASCADE;",
		"DROP TABLE IF EXISTS author CASCADE;",
		"CREATE TABLE author (\n    id INT,\n    PRIMARY KEY (id)\n);",
		"CREATE TABLE book (\n    id INT,\n    author_id INT NOT NULL,\n    PRIMARY KEY (id)\n);",
		"CREATE INDEX idx_book_author_id ON book(author_id);",
	}
	for _, stmt := range statements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	report, err := ApplyStatements(context.Background(), db, statements)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.StatementsApplied != 5 {
		t.Errorf("expected 5 statements applied, got %d", report.StatementsApplied)
	}
	if report.TablesCreated != 2 {
		t.Errorf("expected 2 tables created, got %d", report.TablesCreated)
	}
	if report.IndexesCreated != 1 {
		t.Errorf("expected 1 index created, got %d", report.IndexesCreated)
	}
	if report.Duration <= 0 {
		t.Errorf("expected a positive duration")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet mock expectations: %v", err)
	}
}

func TestApplyStatementsStopsAtFirstFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	statements := []string{
		"DROP TABLE IF EXISTS book CASCADE;",
		"CREATE TABLE book (\n    id INT BADTYPE,\n    PRIMARY KEY (id)\n);",
		"CREATE INDEX idx_book_author_id ON book(author_id);",
	}

	mock.ExpectExec(regexp.QuoteMeta(statements[0])).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(statements[1])).WillReturnError(sqlmock.ErrCancelled)

	report, err := ApplyStatements(context.Background(), db, statements)
	if err == nil {
		t.Fatalf("expected an error from the second statement")
	}
	if report.StatementsApplied != 1 {
		t.Errorf("expected exactly 1 statement applied before the failure, got %d", report.StatementsApplied)
	}
	if report.IndexesCreated != 0 {
		t.Errorf("expected the index statement to never run, got %d indexes created", report.IndexesCreated)
	}
}

// TestApplyStatementsRoundTripsEmittedDDL proves that ddl.Emit's output,
// split by ddl.Statements, applies cleanly and in order against a database
// that starts empty.
func TestApplyStatementsRoundTripsEmittedDDL(t *testing.T) {
	s := schema.New()

	author := schema.NewTable("author", "t-author")
	author.AddField(schema.Field{Name: "id", Type: "INT"})
	author.AddPK("id")
	author.AddField(schema.Field{Name: "name", Type: "VARCHAR(50)"})
	s.AddTable(author)

	book := schema.NewTable("book", "t-book")
	book.AddField(schema.Field{Name: "id", Type: "INT"})
	book.AddPK("id")
	book.AddField(schema.Field{Name: "title", Type: "VARCHAR(100)"})
	f := book.AddField(schema.Field{Name: "author_id", Type: "INT", IsFK: true})
	f.AddConstraint("NOT NULL")
	book.AddForeignKey(schema.ForeignKey{ChildFields: []string{"author_id"}, RefTable: "author", RefColumns: []string{"id"}})
	s.AddTable(book)

	g, deferred, err := graph.BuildFromSchema(s)
	if err != nil {
		t.Fatalf("expected BuildFromSchema to succeed, got %v", err)
	}
	out := ddl.Emit(s, g, deferred, ddl.DefaultOptions())
	statements := ddl.Statements(out)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	for _, stmt := range statements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	report, err := ApplyStatements(context.Background(), db, statements)
	if err != nil {
		t.Fatalf("expected the emitted DDL to apply cleanly, got %v", err)
	}
	if report.StatementsApplied != len(statements) {
		t.Errorf("expected every statement applied, got %d of %d", report.StatementsApplied, len(statements))
	}
	if report.TablesCreated != 2 {
		t.Errorf("expected 2 tables created, got %d", report.TablesCreated)
	}
	if report.IndexesCreated != 1 {
		t.Errorf("expected 1 index created, got %d", report.IndexesCreated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet mock expectations: %v", err)
	}
}
