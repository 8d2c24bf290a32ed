// Package sqlutil provides small SQL text helpers. The validator uses
// BaseType for its type-equality check.
package sqlutil

import (
	"regexp"
	"strings"
)

// validIdentifierRegex matches valid, unquoted SQL identifier characters.
// The emitted dialect never quotes identifiers (spec §6), so a name outside
// this set cannot be emitted safely. No pipeline stage currently applies
// this check; the validator does not call IsValidIdentifier.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier reports whether name is safe to emit unquoted.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// BaseType returns the portion of a SQL type string before any parenthesized
// length/precision suffix, uppercased — e.g. "varchar(50)" -> "VARCHAR",
// "INT" -> "INT". A missing/empty type is treated as "VARCHAR", matching
// the validator's "missing types compared as VARCHAR" rule.
func BaseType(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return "VARCHAR"
	}
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	return strings.ToUpper(strings.TrimSpace(t))
}
