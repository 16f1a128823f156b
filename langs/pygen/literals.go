package pygen

import (
	"strings"

	transpiler "github.com/isabella232/bson-transpilers"
	"github.com/isabella232/bson-transpilers/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// String literals are always re-quoted with single quotes, regardless of the
// quoting used in the source.
func visitString(t *Translator, n *parser.Node) (result, error) {
	return result{text: singleQuote(stripQuotes(n.Value)), typ: transpiler.TypeString}, nil
}

// visitInteger strips redundant leading zeros: the source grammar reads 09
// as the integer 9, and Python rejects a zero-prefixed decimal literal.
func visitInteger(t *Translator, n *parser.Node) (result, error) {
	text := n.Value

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	text = strings.TrimLeft(text, "0")
	if text == "" {
		text = "0"
	}

	return result{text: sign + text, typ: transpiler.TypeInteger}, nil
}

func visitDecimal(t *Translator, n *parser.Node) (result, error) {
	return result{text: n.Value, typ: transpiler.TypeDecimal}, nil
}

// visitOctal normalises the three accepted source prefixes (bare leading
// zero, 0o, 0O) to Python's single 0o prefix, preserving the digits.
func visitOctal(t *Translator, n *parser.Node) (result, error) {
	text := n.Value

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	switch {
	case strings.HasPrefix(text, "0o"), strings.HasPrefix(text, "0O"):
		text = text[2:]
	case strings.HasPrefix(text, "0"):
		text = text[1:]
	}

	return result{text: sign + "0o" + text, typ: transpiler.TypeOctal}, nil
}

func visitHex(t *Translator, n *parser.Node) (result, error) {
	return result{text: n.Value, typ: transpiler.TypeInteger}, nil
}

// Python boolean tokens are titlecase.
func visitBoolean(t *Translator, n *parser.Node) (result, error) {
	return result{text: cases.Title(language.English).String(n.Value), typ: transpiler.TypeBool}, nil
}

func visitNull(t *Translator, n *parser.Node) (result, error) {
	return result{text: "None", typ: transpiler.TypeNull}, nil
}

func visitUndefined(t *Translator, n *parser.Node) (result, error) {
	return result{text: "None", typ: transpiler.TypeUndefined}, nil
}

// An elision translates to the target null token and shares its semantic
// type with null.
func visitElision(t *Translator, n *parser.Node) (result, error) {
	return result{text: "None", typ: transpiler.TypeNull}, nil
}

// Identifiers pass through unchanged. They carry no semantic type, so an
// identifier argument never satisfies a constructor's type requirement.
func visitIdentifier(t *Translator, n *parser.Node) (result, error) {
	return result{text: n.Value, typ: transpiler.TypeUnset}, nil
}

// Object keys are re-quoted with the single-quote convention regardless of
// source quoting.
func visitObject(t *Translator, n *parser.Node) (result, error) {
	pairs := make([]string, 0, len(n.Properties()))

	for _, property := range n.Properties() {
		r, err := visitProperty(t, property)
		if err != nil {
			return result{}, err
		}

		pairs = append(pairs, r.text)
	}

	return result{text: "{" + strings.Join(pairs, ", ") + "}", typ: transpiler.TypeObject}, nil
}

func visitProperty(t *Translator, n *parser.Node) (result, error) {
	value, err := t.visit(n.Val())
	if err != nil {
		return result{}, err
	}

	return result{text: singleQuote(stripQuotes(n.Key())) + ": " + value.text}, nil
}

func visitArray(t *Translator, n *parser.Node) (result, error) {
	text, err := t.visitAll(n.Elements(), ", ")
	if err != nil {
		return result{}, err
	}

	return result{text: "[" + text + "]", typ: transpiler.TypeArray}, nil
}

// An instantiation wrapper has no Python equivalent: the "new" token is
// dropped and the wrapped expression's inferred type is carried through.
func visitNew(t *Translator, n *parser.Node) (result, error) {
	return t.visit(n.Target())
}
