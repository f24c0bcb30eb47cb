package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Statement rendering errors.
var (
	ErrEmptyIdentifier   = errors.New("identifier must not be empty")
	ErrInvalidIdentifier = errors.New("identifier must not contain NUL")
	ErrInvalidType       = errors.New("invalid column type")
)

// columnType accepts SQLite type names: one or more words, optionally
// followed by one or two signed integer arguments, e.g. "VARCHAR(255)",
// "DOUBLE PRECISION", "DECIMAL(10, 2)".
var columnType = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*( +[A-Za-z_][A-Za-z0-9_]*)* *(\( *[+-]?[0-9]+ *(, *[+-]?[0-9]+ *)?\))?$`)

// numericLiteral matches integer, decimal, exponent, and hex literals.
var numericLiteral = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$|^[+-]?0[xX][0-9A-Fa-f]+$`)

// quotedLiteral matches a complete single-quoted string with '' escapes.
var quotedLiteral = regexp.MustCompile(`^'([^']|'')*'$`)

// doubleQuotedLiteral matches a complete double-quoted token, which SQLite
// reads as a string in a DEFAULT clause.
var doubleQuotedLiteral = regexp.MustCompile(`^"([^"]|"")*"$`)

// blobLiteral matches X'...' with an even number of hex digits.
var blobLiteral = regexp.MustCompile(`^[xX]'([0-9A-Fa-f]{2})*'$`)

// defaultKeywords are bare words SQLite accepts as a column default.
var defaultKeywords = map[string]bool{
	"NULL":              true,
	"TRUE":              true,
	"FALSE":             true,
	"CURRENT_TIME":      true,
	"CURRENT_DATE":      true,
	"CURRENT_TIMESTAMP": true,
}

// quoteIdent is the single place table and column names enter SQL text.
// The name is wrapped in double quotes with embedded quotes doubled, so any
// non-empty name without NUL reaches the engine as one identifier.
func quoteIdent(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyIdentifier
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`, nil
}

// checkType validates a declared column type against columnType.
func checkType(typ string) error {
	if !columnType.MatchString(strings.TrimSpace(typ)) {
		return fmt.Errorf("%w %q", ErrInvalidType, typ)
	}
	return nil
}

// defaultLiteral renders v for a DEFAULT clause. Literals SQLite accepts as
// a default are kept as written: numbers, the keywords in defaultKeywords,
// quoted strings, blobs and parenthesized expressions. Anything else, the
// empty string included, becomes a quoted string literal.
func defaultLiteral(v string) string {
	trimmed := strings.TrimSpace(v)
	switch {
	case trimmed == "":
	case numericLiteral.MatchString(trimmed):
		return trimmed
	case defaultKeywords[strings.ToUpper(trimmed)]:
		return strings.ToUpper(trimmed)
	case quotedLiteral.MatchString(trimmed),
		doubleQuotedLiteral.MatchString(trimmed),
		blobLiteral.MatchString(trimmed),
		parenthesized(trimmed):
		return trimmed
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// parenthesized reports whether s is one balanced group: the opening
// parenthesis closes at the last byte and no statement separator appears.
// Quoted strings are skipped.
func parenthesized(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return false
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && quote == 0
}

// quotePair quotes a table and a column name.
func quotePair(table, field string) (string, string, error) {
	t, err := quoteIdent(table)
	if err != nil {
		return "", "", fmt.Errorf("table: %w", err)
	}
	f, err := quoteIdent(field)
	if err != nil {
		return "", "", fmt.Errorf("field: %w", err)
	}
	return t, f, nil
}

func addColumnSQL(table, field, typ, initValue string) (string, error) {
	t, f, err := quotePair(table, field)
	if err != nil {
		return "", err
	}
	if err := checkType(typ); err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s DEFAULT %s",
		t, f, strings.TrimSpace(typ), defaultLiteral(initValue)), nil
}

func dropColumnSQL(table, field string) (string, error) {
	t, f, err := quotePair(table, field)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", t, f), nil
}

// updateOneSQL binds the value first and the row id second.
func updateOneSQL(table, field string) (string, error) {
	t, f, err := quotePair(table, field)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", t, f), nil
}

func updateAllSQL(table, field string) (string, error) {
	t, f, err := quotePair(table, field)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s = ?", t, f), nil
}
