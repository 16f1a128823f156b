package pygen

import "strings"

// singleQuote wraps s in single quotes, normalising embedded quote escapes so
// that requoting an already-escaped source string does not double its
// backslashes.
func singleQuote(s string) string {
	s = strings.ReplaceAll(s, `\'`, "'")
	s = strings.ReplaceAll(s, "'", `\'`)

	return "'" + s + "'"
}

// doubleQuote wraps s in double quotes, used for raw-string regex bodies.
func doubleQuote(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"` + s + `"`
}

// stripQuotes removes one matching pair of surrounding quotes, if present.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}

	return s
}
