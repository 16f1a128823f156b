package pygen

import (
	"strings"

	transpiler "github.com/isabella232/bson-transpilers"
	"github.com/isabella232/bson-transpilers/parser"
	"github.com/isabella232/bson-transpilers/sandbox"
)

// result is what every rule returns on success: the generated Python text and
// the semantic type inferred for the node. Types travel with results instead
// of being written back onto tree nodes, so distinct trees can be translated
// concurrently without synchronisation.
type result struct {
	text string
	typ  transpiler.SemanticType
}

// ruleFunc translates a single node. Rules are total over syntactically valid
// input: they return an error value for every validation or evaluation
// failure and never panic.
type ruleFunc func(t *Translator, n *parser.Node) (result, error)

// Translator holds the per-kind rule table, the default handler used for
// kinds with no registered rule, and the sandbox evaluator used for constant
// folding. It keeps no per-call state.
type Translator struct {
	rules    map[parser.Kind]ruleFunc
	fallback ruleFunc
	eval     func(src string) (sandbox.Value, error)
}

// Option is a function that configures Translator
type Option func(*Translator)

// WithEvaluator replaces the sandbox evaluator used for constant folding.
func WithEvaluator(eval func(src string) (sandbox.Value, error)) Option {
	return func(t *Translator) {
		t.eval = eval
	}
}

// WithFallback replaces the default handler invoked for node kinds that have
// no registered rule.
func WithFallback(fallback ruleFunc) Option {
	return func(t *Translator) {
		t.fallback = fallback
	}
}

// New creates a new Translator
func New(opts ...Option) *Translator {
	t := &Translator{
		eval:     sandbox.Eval,
		fallback: joinChildren(""),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.rules = newRuleTable()

	return t
}

// Translate parses a source snippet and renders it as Python. The returned
// string is either generated source text or a diagnostic prefixed with
// "Error: "; it is always safe to display.
func Translate(source string) string {
	root, err := parser.Parse(source)
	if err != nil {
		return "Error: " + err.Error()
	}

	return New().Translate(root)
}

// Translate renders a parsed tree as Python. Failures are rendered as
// "Error: <message>".
func (t *Translator) Translate(n *parser.Node) string {
	r, err := t.visit(n)
	if err != nil {
		return "Error: " + err.Error()
	}

	return r.text
}

// visit dispatches a node to its rule, falling back to the default handler
// for unregistered kinds.
func (t *Translator) visit(n *parser.Node) (result, error) {
	rule, ok := t.rules[n.Kind]
	if !ok {
		rule = t.fallback
	}

	return rule(t, n)
}

// visitAll translates a set of child nodes and joins their texts with the
// given separator. A failing child aborts the whole translation; its text is
// never interpolated into the output.
func (t *Translator) visitAll(children []*parser.Node, separator string) (string, error) {
	parts := make([]string, 0, len(children))

	for _, child := range children {
		r, err := t.visit(child)
		if err != nil {
			return "", err
		}

		parts = append(parts, r.text)
	}

	return strings.Join(parts, separator), nil
}

// joinChildren builds the default handler: visit every child and concatenate
// the translations with the given separator.
func joinChildren(separator string) ruleFunc {
	return func(t *Translator, n *parser.Node) (result, error) {
		text, err := t.visitAll(n.Children, separator)
		if err != nil {
			return result{}, err
		}

		return result{text: text}, nil
	}
}

// newRuleTable registers one rule per node kind. The set of kinds is closed;
// anything missing here deliberately falls through to the default handler.
func newRuleTable() map[parser.Kind]ruleFunc {
	return map[parser.Kind]ruleFunc{
		parser.KindString:     visitString,
		parser.KindInteger:    visitInteger,
		parser.KindDecimal:    visitDecimal,
		parser.KindOctal:      visitOctal,
		parser.KindHex:        visitHex,
		parser.KindBoolean:    visitBoolean,
		parser.KindNull:       visitNull,
		parser.KindUndefined:  visitUndefined,
		parser.KindElision:    visitElision,
		parser.KindIdentifier: visitIdentifier,
		parser.KindObject:     visitObject,
		parser.KindProperty:   visitProperty,
		parser.KindArray:      visitArray,
		parser.KindNew:        visitNew,
		parser.KindCall:       visitCall,
		parser.KindRegex:      visitRegexLiteral,
	}
}
