package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/isabella232/bson-transpilers/tokenizer"
)

// ErrInvalidExpression indicates that a source snippet could not be parsed.
var ErrInvalidExpression = errors.New("invalid expression")

// Parse parses a single expression of the extended query grammar and returns
// the root of its syntax tree.
func Parse(source string) (*Node, error) {
	tokens, err := tokenizer.Tokenize(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExpression, err.Error())
	}

	p := &parser{src: []rune(source), tokens: tokens}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != tokenizer.EOF {
		return nil, p.errorf("unexpected %s after expression", p.peek().Type)
	}

	return node, nil
}

type parser struct {
	src    []rune
	tokens []tokenizer.Token
	pos    int
}

func (p *parser) parseExpression() (*Node, error) {
	token := p.peek()

	switch token.Type {
	case tokenizer.STRING:
		p.next()
		return p.leaf(KindString, token), nil
	case tokenizer.NUMBER:
		p.next()
		return p.leaf(classifyNumber(token.Value), token), nil
	case tokenizer.MINUS:
		p.next()

		number := p.peek()
		if number.Type != tokenizer.NUMBER {
			return nil, p.errorf("expected number after '-'")
		}

		p.next()

		node := p.leaf(classifyNumber(number.Value), token)
		node.Value = "-" + number.Value
		p.finish(node, token)

		return node, nil
	case tokenizer.TRUE, tokenizer.FALSE:
		p.next()
		return p.leaf(KindBoolean, token), nil
	case tokenizer.NULL:
		p.next()
		return p.leaf(KindNull, token), nil
	case tokenizer.UNDEFINED:
		p.next()
		return p.leaf(KindUndefined, token), nil
	case tokenizer.REGEX:
		p.next()
		return p.leaf(KindRegex, token), nil
	case tokenizer.IDENT:
		return p.parseCallOrIdentifier()
	case tokenizer.NEW:
		return p.parseNew()
	case tokenizer.OPEN_BRACKET:
		return p.parseArray()
	case tokenizer.OPEN_BRACE:
		return p.parseObject()
	default:
		return nil, p.errorf("unexpected %s", token.Type)
	}
}

func (p *parser) parseCallOrIdentifier() (*Node, error) {
	start := p.peek()
	name := start.Value

	p.next()

	for p.peek().Type == tokenizer.DOT {
		p.next()

		part := p.peek()
		if part.Type != tokenizer.IDENT {
			return nil, p.errorf("expected identifier after '.'")
		}

		p.next()

		name += "." + part.Value
	}

	if p.peek().Type != tokenizer.OPEN_PAREN {
		node := &Node{Kind: KindIdentifier, Value: name}
		p.finish(node, start)

		return node, nil
	}

	p.next()

	node := &Node{Kind: KindCall, Value: name}

	for p.peek().Type != tokenizer.CLOSE_PAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, arg)

		if p.peek().Type == tokenizer.COMMA {
			p.next()
			continue
		}

		if p.peek().Type != tokenizer.CLOSE_PAREN {
			return nil, p.errorf("expected ',' or ')' in argument list of %s", name)
		}
	}

	p.next()
	p.finish(node, start)

	return node, nil
}

func (p *parser) parseNew() (*Node, error) {
	start := p.peek()

	p.next()

	if p.peek().Type != tokenizer.IDENT {
		return nil, p.errorf("expected constructor name after 'new'")
	}

	target, err := p.parseCallOrIdentifier()
	if err != nil {
		return nil, err
	}

	// "new Date" without parentheses calls the constructor with no arguments.
	if target.Kind == KindIdentifier {
		target = &Node{Kind: KindCall, Value: target.Value, Text: target.Text, Pos: target.Pos}
	}

	node := &Node{Kind: KindNew, Children: []*Node{target}}
	p.finish(node, start)

	return node, nil
}

func (p *parser) parseArray() (*Node, error) {
	start := p.peek()

	p.next()

	node := &Node{Kind: KindArray}

	for p.peek().Type != tokenizer.CLOSE_BRACKET {
		if p.peek().Type == tokenizer.COMMA {
			elision := &Node{Kind: KindElision}
			p.finish(elision, p.peek())
			node.Children = append(node.Children, elision)

			p.next()

			continue
		}

		element, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, element)

		if p.peek().Type == tokenizer.COMMA {
			p.next()
			continue
		}

		if p.peek().Type != tokenizer.CLOSE_BRACKET {
			return nil, p.errorf("expected ',' or ']' in array literal")
		}
	}

	p.next()
	p.finish(node, start)

	return node, nil
}

func (p *parser) parseObject() (*Node, error) {
	start := p.peek()

	p.next()

	node := &Node{Kind: KindObject}

	for p.peek().Type != tokenizer.CLOSE_BRACE {
		property, err := p.parseProperty()
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, property)

		if p.peek().Type == tokenizer.COMMA {
			p.next()
			continue
		}

		if p.peek().Type != tokenizer.CLOSE_BRACE {
			return nil, p.errorf("expected ',' or '}' in object literal")
		}
	}

	p.next()
	p.finish(node, start)

	return node, nil
}

func (p *parser) parseProperty() (*Node, error) {
	key := p.peek()

	switch key.Type {
	case tokenizer.IDENT, tokenizer.STRING, tokenizer.NUMBER:
	default:
		return nil, p.errorf("expected property key, found %s", key.Type)
	}

	p.next()

	if p.peek().Type != tokenizer.COLON {
		return nil, p.errorf("expected ':' after property key %s", key.Value)
	}

	p.next()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	node := &Node{Kind: KindProperty, Value: key.Value, Children: []*Node{value}}
	p.finish(node, key)

	return node, nil
}

// leaf builds a childless node directly from a single token.
func (p *parser) leaf(kind Kind, token tokenizer.Token) *Node {
	return &Node{
		Kind:  kind,
		Value: token.Value,
		Text:  token.Value,
		Pos:   token.Pos,
	}
}

// finish stamps a node with the source span from the start token through the
// most recently consumed token, and captures the verbatim text slice.
func (p *parser) finish(node *Node, start tokenizer.Token) {
	end := start.Pos.Offset + start.Pos.Length
	if p.pos > 0 {
		last := p.tokens[p.pos-1].Pos
		if last.Offset+last.Length > end {
			end = last.Offset + last.Length
		}
	}

	node.Pos = tokenizer.Position{
		Offset: start.Pos.Offset,
		Line:   start.Pos.Line,
		Column: start.Pos.Column,
		Length: end - start.Pos.Offset,
	}
	node.Text = strings.TrimSpace(string(p.src[start.Pos.Offset:end]))
}

func (p *parser) peek() tokenizer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	token := p.peek()

	detail := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w: %s at line %d, column %d", ErrInvalidExpression, detail, token.Pos.Line, token.Pos.Column)
}

// classifyNumber assigns a literal kind from the numeric token text. A bare
// leading zero followed by octal digits is an octal literal, matching the
// source grammar's legacy form; a leading zero followed by digits outside
// 0-7 (such as 09) falls back to a plain integer, as the source grammar
// treats it.
func classifyNumber(text string) Kind {
	digits := strings.TrimPrefix(text, "-")

	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return KindHex
	}

	if strings.HasPrefix(digits, "0o") || strings.HasPrefix(digits, "0O") {
		return KindOctal
	}

	if strings.ContainsAny(digits, ".eE") {
		return KindDecimal
	}

	if len(digits) > 1 && digits[0] == '0' && isOctalDigits(digits[1:]) {
		return KindOctal
	}

	return KindInteger
}

func isOctalDigits(digits string) bool {
	for _, r := range digits {
		if r < '0' || r > '7' {
			return false
		}
	}

	return true
}
