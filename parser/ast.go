package parser

import (
	"strings"

	"github.com/isabella232/bson-transpilers/tokenizer"
)

// Kind identifies the grammar production a node was built from. The set is
// closed; translation dispatches on it exhaustively.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindOctal
	KindHex
	KindBoolean
	KindNull
	KindUndefined
	KindElision
	KindIdentifier
	KindObject
	KindProperty
	KindArray
	KindNew
	KindCall
	KindRegex
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindOctal:
		return "octal"
	case KindHex:
		return "hex"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindElision:
		return "elision"
	case KindIdentifier:
		return "identifier"
	case KindObject:
		return "object"
	case KindProperty:
		return "property"
	case KindArray:
		return "array"
	case KindNew:
		return "new"
	case KindCall:
		return "call"
	case KindRegex:
		return "regex"
	default:
		return "invalid"
	}
}

// Node is an immutable syntax tree node. Value holds the raw literal text,
// the identifier name, or the (possibly dotted) callee name. Text holds the
// verbatim source slice covering the node, which constant-folding rules hand
// to the sandbox evaluator.
type Node struct {
	Kind     Kind
	Value    string
	Text     string
	Children []*Node
	Pos      tokenizer.Position
}

// Callee returns the callee name of a call node. Dotted callees such as
// Object.create are returned as written.
func (n *Node) Callee() string {
	if n.Kind != KindCall {
		return ""
	}

	return n.Value
}

// Args returns the argument nodes of a call node.
func (n *Node) Args() []*Node {
	if n.Kind != KindCall {
		return nil
	}

	return n.Children
}

// Properties returns the property nodes of an object literal.
func (n *Node) Properties() []*Node {
	if n.Kind != KindObject {
		return nil
	}

	return n.Children
}

// Key returns the raw key text of a property node (quotes preserved as
// written in the source).
func (n *Node) Key() string {
	if n.Kind != KindProperty {
		return ""
	}

	return n.Value
}

// Val returns the value node of a property node.
func (n *Node) Val() *Node {
	if n.Kind != KindProperty || len(n.Children) == 0 {
		return nil
	}

	return n.Children[0]
}

// Elements returns the element nodes of an array literal, including explicit
// elision nodes for empty slots.
func (n *Node) Elements() []*Node {
	if n.Kind != KindArray {
		return nil
	}

	return n.Children
}

// Target returns the wrapped expression of a new-expression node.
func (n *Node) Target() *Node {
	if n.Kind != KindNew || len(n.Children) == 0 {
		return nil
	}

	return n.Children[0]
}

// RegexParts splits a regex literal node into its pattern and flags.
func (n *Node) RegexParts() (pattern, flags string) {
	if n.Kind != KindRegex {
		return "", ""
	}

	end := strings.LastIndex(n.Value, "/")
	if end <= 0 {
		return "", ""
	}

	return n.Value[1:end], n.Value[end+1:]
}
