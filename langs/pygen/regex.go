package pygen

import (
	"fmt"
	"sort"
	"strings"

	transpiler "github.com/isabella232/bson-transpilers"
	"github.com/isabella232/bson-transpilers/parser"
)

// nativeRegexFlags remaps source regex flags to Python's inline flag
// characters. Flags with no counterpart map to the empty string and are
// dropped, since the output targets Python's own engine.
var nativeRegexFlags = map[rune]string{
	'i': "i",
	'm': "m",
	'u': "a",
	'y': "",
	'g': "s",
}

// docRegexFlags is the accepted flag set of the document-reference regex
// dialect.
var docRegexFlags = map[rune]bool{
	'i': true,
	'm': true,
	'x': true,
	's': true,
	'l': true,
	'u': true,
}

// visitRegexLiteral translates a native regex literal. The literal is folded
// through the sandbox to obtain the canonical (pattern, flags) pair, the
// flags are remapped, sorted, and appended as an inline flag group, and the
// pattern is emitted inside a raw double-quoted string.
func visitRegexLiteral(t *Translator, n *parser.Node) (result, error) {
	v, err := t.eval(n.Text)
	if err != nil {
		return result{}, evalError(err)
	}

	flags := make([]string, 0, len(v.Flags))

	for _, flag := range v.Flags {
		remapped, ok := nativeRegexFlags[flag]
		if !ok || remapped == "" {
			continue
		}

		flags = append(flags, remapped)
	}

	sort.Strings(flags)

	body := escapeRegexPattern(v.Pattern)
	if len(flags) > 0 {
		body += "(?" + strings.Join(flags, "") + ")"
	}

	return result{text: "re.compile(r" + doubleQuote(body) + ")", typ: transpiler.TypeRegex}, nil
}

// escapeRegexPattern doubles a backslash unless it is followed by a forward
// slash. Only the first qualifying occurrence is escaped; the behaviour is
// carried over from the source rule set as-is.
func escapeRegexPattern(pattern string) string {
	runes := []rune(pattern)
	for i, r := range runes {
		if r != '\\' {
			continue
		}

		if i+1 < len(runes) && runes[i+1] == '/' {
			continue
		}

		return string(runes[:i]) + `\` + string(runes[i:])
	}

	return pattern
}

// visitRegExp translates the document-reference regex dialect. Unknown flag
// characters are rejected with a diagnostic naming exactly the unsupported
// characters found, in encounter order.
func visitRegExp(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 1 && len(args) != 2 {
		return result{}, arityErrorf("RegExp requires one or two arguments")
	}

	pattern, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	if pattern.typ != transpiler.TypeString {
		return result{}, typeErrorf("RegExp requires pattern to be a string")
	}

	text := fmt.Sprintf("RegExp(%s", singleQuote(stripQuotes(pattern.text)))

	if len(args) == 2 {
		flags, err := t.visit(args[1])
		if err != nil {
			return result{}, err
		}

		if flags.typ != transpiler.TypeString {
			return result{}, typeErrorf("RegExp requires flags to be a string")
		}

		var unsupported []rune

		for _, flag := range stripQuotes(flags.text) {
			if !docRegexFlags[flag] {
				unsupported = append(unsupported, flag)
			}
		}

		if len(unsupported) > 0 {
			return result{}, valueErrorf("the regular expression contains unsuppoted '%s' flag", string(unsupported))
		}

		text += ", " + singleQuote(stripQuotes(flags.text))
	}

	return result{text: text + ")", typ: transpiler.TypeRegex}, nil
}
