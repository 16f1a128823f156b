package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrUnterminatedRegex   = errors.New("unterminated regular expression literal")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF    TokenType = iota
	STRING           // string literals ('text', "text")
	NUMBER           // numeric literals (integer, decimal, octal, hex)
	IDENT            // identifiers and constructor names
	REGEX            // regular expression literals (/pattern/flags)

	// Keywords
	TRUE      // true
	FALSE     // false
	NULL      // null
	UNDEFINED // undefined
	NEW       // new

	// Punctuation
	OPEN_PAREN    // (
	CLOSE_PAREN   // )
	OPEN_BRACKET  // [
	CLOSE_BRACKET // ]
	OPEN_BRACE    // {
	CLOSE_BRACE   // }
	COMMA         // ,
	COLON         // :
	DOT           // .
	MINUS         // -
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case IDENT:
		return "IDENT"
	case REGEX:
		return "REGEX"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case NULL:
		return "NULL"
	case UNDEFINED:
		return "UNDEFINED"
	case NEW:
		return "NEW"
	case OPEN_PAREN:
		return "OPEN_PAREN"
	case CLOSE_PAREN:
		return "CLOSE_PAREN"
	case OPEN_BRACKET:
		return "OPEN_BRACKET"
	case CLOSE_BRACKET:
		return "CLOSE_BRACKET"
	case OPEN_BRACE:
		return "OPEN_BRACE"
	case CLOSE_BRACE:
		return "CLOSE_BRACE"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case DOT:
		return "DOT"
	case MINUS:
		return "MINUS"
	default:
		return "UNKNOWN"
	}
}

// Position represents the location of a token or node within the source.
// Offset is the rune index (0-based), Line/Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
	Length int
}

// Token represents a single lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"undefined": UNDEFINED,
	"new":       NEW,
}
