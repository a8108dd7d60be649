package dsl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xentlabs/xent-sub001/internal/xerr"
)

func regexpMustCompileLabel() *regexp.Regexp {
	return regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):$`)
}

// stripComment removes a trailing `#`-comment, ignoring `#` characters that
// appear inside a double-quoted string literal.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// splitCall splits a line of the form `name(inner)` into its function name
// and inner argument text.
func splitCall(text string, lineNum int) (name, inner string, err error) {
	idx := strings.IndexByte(text, '(')
	if idx < 0 || !strings.HasSuffix(text, ")") {
		return "", "", xerr.WithLine(fmt.Errorf("malformed instruction %q, expected name(...): %w", text, xerr.ErrSyntax), lineNum)
	}
	name = strings.TrimSpace(text[:idx])
	inner = text[idx+1 : len(text)-1]
	return name, inner, nil
}

// splitTopLevel splits s on delim, ignoring occurrences nested inside
// parentheses or double-quoted strings.
func splitTopLevel(s string, delim byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			// inside a string literal, nothing else matters
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == delim && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// topLevelIndex returns the index of the first occurrence of delim outside
// any parens/quotes, or -1 if none exists.
func topLevelIndex(s string, delim byte) int {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == delim && depth == 0:
			return i
		}
	}
	return -1
}

// topLevelIndexOfString returns the index of the first occurrence of op
// outside any parens/quotes, or -1 if none exists.
func topLevelIndexOfString(s string, op string) int {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && strings.HasPrefix(s[i:], op):
			return i
		}
	}
	return -1
}
