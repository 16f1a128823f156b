package tokenizer

import (
	"fmt"
	"unicode"
)

// Tokenize splits the input into tokens, terminated by an EOF token.
// Offsets in token positions are rune indices into the input.
func Tokenize(input string) ([]Token, error) {
	t := &tokenizer{src: []rune(input), line: 1, column: 1}

	var tokens []Token

	for {
		token, err := t.nextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == EOF {
			return tokens, nil
		}

		t.prev = token.Type
	}
}

type tokenizer struct {
	src    []rune
	pos    int
	line   int
	column int
	prev   TokenType
	began  bool
}

func (t *tokenizer) nextToken() (Token, error) {
	t.skipWhitespace()

	if t.eof() {
		return t.newToken(EOF, t.pos, ""), nil
	}

	start := t.pos
	r := t.peek()

	switch {
	case r == '\'' || r == '"':
		return t.readString(r)
	case unicode.IsDigit(r):
		return t.readNumber()
	case isIdentStart(r):
		return t.readWord()
	case r == '/':
		if t.regexAllowed() {
			return t.readRegex()
		}

		return Token{}, fmt.Errorf("%w: '/' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column)
	}

	var tokenType TokenType

	switch r {
	case '(':
		tokenType = OPEN_PAREN
	case ')':
		tokenType = CLOSE_PAREN
	case '[':
		tokenType = OPEN_BRACKET
	case ']':
		tokenType = CLOSE_BRACKET
	case '{':
		tokenType = OPEN_BRACE
	case '}':
		tokenType = CLOSE_BRACE
	case ',':
		tokenType = COMMA
	case ':':
		tokenType = COLON
	case '.':
		tokenType = DOT
	case '-':
		tokenType = MINUS
	default:
		return Token{}, fmt.Errorf("%w: %q at line %d, column %d", ErrUnexpectedCharacter, r, t.line, t.column)
	}

	t.readChar()

	return t.newToken(tokenType, start, string(r)), nil
}

// regexAllowed reports whether a '/' at the current position begins a regular
// expression literal. Inside this expression grammar a regex may only appear
// where a value is expected, so any token that ends a value rules it out.
func (t *tokenizer) regexAllowed() bool {
	if !t.began {
		return true
	}

	switch t.prev {
	case OPEN_PAREN, OPEN_BRACKET, OPEN_BRACE, COMMA, COLON, MINUS, NEW:
		return true
	default:
		return false
	}
}

func (t *tokenizer) readString(delimiter rune) (Token, error) {
	start := t.pos
	startLine, startColumn := t.line, t.column

	t.readChar()

	for !t.eof() {
		r := t.peek()
		if r == '\\' {
			t.readChar()

			if !t.eof() {
				t.readChar()
			}

			continue
		}

		if r == delimiter {
			t.readChar()

			return t.newToken(STRING, start, string(t.src[start:t.pos])), nil
		}

		if r == '\n' {
			break
		}

		t.readChar()
	}

	return Token{}, fmt.Errorf("%w: started at line %d, column %d", ErrUnterminatedString, startLine, startColumn)
}

func (t *tokenizer) readRegex() (Token, error) {
	start := t.pos
	startLine, startColumn := t.line, t.column

	t.readChar()

	inClass := false

	for !t.eof() {
		r := t.peek()

		switch {
		case r == '\\':
			t.readChar()

			if !t.eof() {
				t.readChar()
			}

			continue
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case r == '/' && !inClass:
			t.readChar()

			for !t.eof() && unicode.IsLetter(t.peek()) {
				t.readChar()
			}

			return t.newToken(REGEX, start, string(t.src[start:t.pos])), nil
		case r == '\n':
			return Token{}, fmt.Errorf("%w: started at line %d, column %d", ErrUnterminatedRegex, startLine, startColumn)
		}

		t.readChar()
	}

	return Token{}, fmt.Errorf("%w: started at line %d, column %d", ErrUnterminatedRegex, startLine, startColumn)
}

func (t *tokenizer) readNumber() (Token, error) {
	start := t.pos

	if t.peek() == '0' && (t.peekAt(1) == 'x' || t.peekAt(1) == 'X') {
		t.readChar()
		t.readChar()

		digits := 0
		for isHexDigit(t.peek()) {
			t.readChar()

			digits++
		}

		if digits == 0 {
			return Token{}, fmt.Errorf("%w: missing hex digits at line %d, column %d", ErrInvalidNumber, t.line, t.column)
		}

		return t.newToken(NUMBER, start, string(t.src[start:t.pos])), nil
	}

	if t.peek() == '0' && (t.peekAt(1) == 'o' || t.peekAt(1) == 'O') {
		t.readChar()
		t.readChar()

		digits := 0
		for isOctalDigit(t.peek()) {
			t.readChar()

			digits++
		}

		if digits == 0 {
			return Token{}, fmt.Errorf("%w: missing octal digits at line %d, column %d", ErrInvalidNumber, t.line, t.column)
		}

		return t.newToken(NUMBER, start, string(t.src[start:t.pos])), nil
	}

	for unicode.IsDigit(t.peek()) {
		t.readChar()
	}

	if t.peek() == '.' && unicode.IsDigit(t.peekAt(1)) {
		t.readChar()

		for unicode.IsDigit(t.peek()) {
			t.readChar()
		}
	}

	if t.peek() == 'e' || t.peek() == 'E' {
		t.readChar()

		if t.peek() == '+' || t.peek() == '-' {
			t.readChar()
		}

		if !unicode.IsDigit(t.peek()) {
			return Token{}, fmt.Errorf("%w: missing exponent digits at line %d, column %d", ErrInvalidNumber, t.line, t.column)
		}

		for unicode.IsDigit(t.peek()) {
			t.readChar()
		}
	}

	return t.newToken(NUMBER, start, string(t.src[start:t.pos])), nil
}

func (t *tokenizer) readWord() (Token, error) {
	start := t.pos

	t.readChar()
	for isIdentPart(t.peek()) {
		t.readChar()
	}

	word := string(t.src[start:t.pos])
	if tokenType, ok := keywords[word]; ok {
		return t.newToken(tokenType, start, word), nil
	}

	return t.newToken(IDENT, start, word), nil
}

func (t *tokenizer) skipWhitespace() {
	for !t.eof() && unicode.IsSpace(t.peek()) {
		t.readChar()
	}
}

func (t *tokenizer) readChar() {
	if t.eof() {
		return
	}

	if t.src[t.pos] == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}

	t.pos++
}

func (t *tokenizer) peek() rune {
	return t.peekAt(0)
}

func (t *tokenizer) peekAt(offset int) rune {
	if t.pos+offset >= len(t.src) {
		return 0
	}

	return t.src[t.pos+offset]
}

func (t *tokenizer) eof() bool {
	return t.pos >= len(t.src)
}

func (t *tokenizer) newToken(tokenType TokenType, start int, value string) Token {
	t.began = true

	length := t.pos - start

	return Token{
		Type:  tokenType,
		Value: value,
		Pos: Position{
			Offset: start,
			Line:   t.line,
			Column: t.column - length,
			Length: length,
		},
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}
