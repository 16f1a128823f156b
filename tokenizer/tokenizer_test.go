package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "constructor call",
			input: "ObjectId('abc')",
			want:  []TokenType{IDENT, OPEN_PAREN, STRING, CLOSE_PAREN, EOF},
		},
		{
			name:  "object literal",
			input: `{x: 1, "y": 2.5}`,
			want:  []TokenType{OPEN_BRACE, IDENT, COLON, NUMBER, COMMA, STRING, COLON, NUMBER, CLOSE_BRACE, EOF},
		},
		{
			name:  "array with elision",
			input: "[1,,2]",
			want:  []TokenType{OPEN_BRACKET, NUMBER, COMMA, COMMA, NUMBER, CLOSE_BRACKET, EOF},
		},
		{
			name:  "keywords",
			input: "new true false null undefined",
			want:  []TokenType{NEW, TRUE, FALSE, NULL, UNDEFINED, EOF},
		},
		{
			name:  "regex literal at expression start",
			input: "/ab+c/im",
			want:  []TokenType{REGEX, EOF},
		},
		{
			name:  "regex literal in object value",
			input: "{x: /a\\/b/g}",
			want:  []TokenType{OPEN_BRACE, IDENT, COLON, REGEX, CLOSE_BRACE, EOF},
		},
		{
			name:  "dotted call",
			input: "Object.create({})",
			want:  []TokenType{IDENT, DOT, IDENT, OPEN_PAREN, OPEN_BRACE, CLOSE_BRACE, CLOSE_PAREN, EOF},
		},
		{
			name:  "negative number",
			input: "-10",
			want:  []TokenType{MINUS, NUMBER, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			assert.NoError(t, err)

			got := make([]TokenType, 0, len(tokens))
			for _, token := range tokens {
				got = append(got, token.Type)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeNumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"010", "010"},
		{"0o10", "0o10"},
		{"0O10", "0O10"},
		{"0x1F", "0x1F"},
		{"1.5e3", "1.5e3"},
		{"100", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, NUMBER, tokens[0].Type)
			assert.Equal(t, tt.want, tokens[0].Value)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated string", "'abc", ErrUnterminatedString},
		{"unterminated regex", "/abc", ErrUnterminatedRegex},
		{"missing hex digits", "0x", ErrInvalidNumber},
		{"stray character", "@", ErrUnexpectedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			assert.IsError(t, err, tt.want)
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("Code('fn')")
	assert.NoError(t, err)

	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1, Length: 4}, tokens[0].Pos)
	assert.Equal(t, Position{Offset: 5, Line: 1, Column: 6, Length: 4}, tokens[2].Pos)
}
