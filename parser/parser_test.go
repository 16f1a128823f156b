package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  Kind
		wantValue string
	}{
		{"single quoted string", "'abc'", KindString, "'abc'"},
		{"double quoted string", `"abc"`, KindString, `"abc"`},
		{"integer", "42", KindInteger, "42"},
		{"negative integer", "-42", KindInteger, "-42"},
		{"decimal", "1.5", KindDecimal, "1.5"},
		{"exponent decimal", "1e3", KindDecimal, "1e3"},
		{"legacy octal", "010", KindOctal, "010"},
		{"leading zero with eight", "08", KindInteger, "08"},
		{"leading zero with nine", "09", KindInteger, "09"},
		{"negative leading zero with nine", "-09", KindInteger, "-09"},
		{"lowercase octal", "0o10", KindOctal, "0o10"},
		{"uppercase octal", "0O10", KindOctal, "0O10"},
		{"hex", "0x1F", KindHex, "0x1F"},
		{"true", "true", KindBoolean, "true"},
		{"false", "false", KindBoolean, "false"},
		{"null", "null", KindNull, "null"},
		{"undefined", "undefined", KindUndefined, "undefined"},
		{"regex", "/ab+c/im", KindRegex, "/ab+c/im"},
		{"identifier", "field", KindIdentifier, "field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, node.Kind)
			assert.Equal(t, tt.wantValue, node.Value)
		})
	}
}

func TestParseCall(t *testing.T) {
	node, err := Parse("Code('fn', {x: 1})")
	require.NoError(t, err)

	assert.Equal(t, KindCall, node.Kind)
	assert.Equal(t, "Code", node.Callee())
	require.Len(t, node.Args(), 2)
	assert.Equal(t, KindString, node.Args()[0].Kind)
	assert.Equal(t, KindObject, node.Args()[1].Kind)
	assert.Equal(t, "Code('fn', {x: 1})", node.Text)
}

func TestParseDottedCallee(t *testing.T) {
	node, err := Parse("Object.create({})")
	require.NoError(t, err)

	assert.Equal(t, KindCall, node.Kind)
	assert.Equal(t, "Object.create", node.Callee())
	require.Len(t, node.Args(), 1)
}

func TestParseNew(t *testing.T) {
	node, err := Parse("new ObjectId()")
	require.NoError(t, err)

	assert.Equal(t, KindNew, node.Kind)
	require.NotNil(t, node.Target())
	assert.Equal(t, KindCall, node.Target().Kind)
	assert.Equal(t, "ObjectId", node.Target().Callee())
	assert.Equal(t, "ObjectId()", node.Target().Text)
}

func TestParseNewWithoutParens(t *testing.T) {
	node, err := Parse("new Date")
	require.NoError(t, err)

	assert.Equal(t, KindNew, node.Kind)
	assert.Equal(t, KindCall, node.Target().Kind)
	assert.Equal(t, "Date", node.Target().Callee())
	assert.Empty(t, node.Target().Args())
}

func TestParseArray(t *testing.T) {
	node, err := Parse("[1, , 'a']")
	require.NoError(t, err)

	assert.Equal(t, KindArray, node.Kind)
	require.Len(t, node.Elements(), 3)
	assert.Equal(t, KindInteger, node.Elements()[0].Kind)
	assert.Equal(t, KindElision, node.Elements()[1].Kind)
	assert.Equal(t, KindString, node.Elements()[2].Kind)
}

func TestParseArrayTrailingComma(t *testing.T) {
	node, err := Parse("[1,]")
	require.NoError(t, err)
	require.Len(t, node.Elements(), 1)
}

func TestParseObject(t *testing.T) {
	node, err := Parse(`{x: 1, "y": [2]}`)
	require.NoError(t, err)

	assert.Equal(t, KindObject, node.Kind)
	require.Len(t, node.Properties(), 2)

	first := node.Properties()[0]
	assert.Equal(t, KindProperty, first.Kind)
	assert.Equal(t, "x", first.Key())
	assert.Equal(t, KindInteger, first.Val().Kind)

	second := node.Properties()[1]
	assert.Equal(t, `"y"`, second.Key())
	assert.Equal(t, KindArray, second.Val().Kind)
}

func TestParseRegexParts(t *testing.T) {
	node, err := Parse(`/a\/b/gi`)
	require.NoError(t, err)

	pattern, flags := node.RegexParts()
	assert.Equal(t, `a\/b`, pattern)
	assert.Equal(t, "gi", flags)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"trailing tokens", "1 2"},
		{"missing colon", "{x 1}"},
		{"unclosed array", "[1"},
		{"unclosed call", "ObjectId("},
		{"dangling new", "new"},
		{"dangling minus", "-"},
		{"unterminated string", "'abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, ErrInvalidExpression)
		})
	}
}
