package ddl

import "strings"

// Statements splits Emit's output into individual executable statements,
// dropping comment-only lines and blank lines. Used by tests that apply the
// emitted DDL against a database one statement at a time.
func Statements(text string) []string {
	var statements []string
	for _, chunk := range strings.Split(text, ";\n") {
		var lines []string
		for _, ln := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(ln)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, ln)
		}
		if len(lines) == 0 {
			continue
		}
		stmt := strings.TrimRight(strings.Join(lines, "\n"), "\n")
		statements = append(statements, stmt+";")
	}
	return statements
}
