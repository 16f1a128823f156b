package pygen

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/isabella232/bson-transpilers/parser"
	"github.com/isabella232/bson-transpilers/sandbox"
)

func TestTranslateLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single quoted string", "'abc'", "'abc'"},
		{"double quoted string", `"abc"`, "'abc'"},
		{"string with embedded quote", `"don't"`, `'don\'t'`},
		{"integer", "42", "42"},
		{"negative integer", "-42", "-42"},
		{"decimal", "1.5", "1.5"},
		{"legacy octal", "010", "0o10"},
		{"leading zero with nine", "09", "9"},
		{"negative leading zero with nine", "-09", "-9"},
		{"leading zero in document", "{x: 09}", "{'x': 9}"},
		{"lowercase octal", "0o10", "0o10"},
		{"uppercase octal", "0O10", "0o10"},
		{"hex", "0x1F", "0x1F"},
		{"true", "true", "True"},
		{"false", "false", "False"},
		{"null", "null", "None"},
		{"undefined", "undefined", "None"},
		{"identifier", "field", "field"},
		{"empty object", "{}", "{}"},
		{"object", `{x: 1, "y": 'z'}`, "{'x': 1, 'y': 'z'}"},
		{"nested object", "{a: {b: [1]}}", "{'a': {'b': [1]}}"},
		{"array", "[1, 'a', true]", "[1, 'a', True]"},
		{"array with elision", "[1, , 2]", "[1, None, 2]"},
		{"empty array", "[]", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.input))
		})
	}
}

func TestTranslateConstructors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"object id without arguments", "ObjectId()", "ObjectId()"},
		{"object id with hex", "ObjectId('5AB901D24FE85A5796EB34B3')", "ObjectId('5ab901d24fe85a5796eb34b3')"},
		{"new object id", "new ObjectId()", "ObjectId()"},
		{"code", `Code("fn")`, "Code('fn')"},
		{"code with scope", `Code("fn", {x: 1})`, "Code('fn', {'x': 1})"},
		{"binary", "Binary('abc')", "Binary(bytes('abc', 'utf-8'))"},
		{"binary with subtype", "Binary('abc', 4)", "Binary(bytes('abc', 'utf-8'), binary.UUID_SUBTYPE)"},
		{"binary default subtype", "Binary('abc', 0)", "Binary(bytes('abc', 'utf-8'), binary.BINARY_SUBTYPE)"},
		{"binary user subtype", "Binary('abc', 128)", "Binary(bytes('abc', 'utf-8'), binary.USER_DEFINED_SUBTYPE)"},
		{"double from decimal", "Double(1.5)", "float(1.5)"},
		{"double from string", "Double('1.5')", "float(1.5)"},
		{"double from integer", "Double(5)", "float(5)"},
		{"number from string", `Number("5")`, "int(5)"},
		{"number from integer", "Number(5)", "int(5)"},
		{"long", "Long(5)", "Int64(5)"},
		{"long from pair", "Long(1, 2)", "Int64(8589934593)"},
		{"number long", "NumberLong('12')", "Int64(12)"},
		{"date now form", "Date()", "datetime.datetime.utcnow()"},
		{"date now property", "Date.now()", "datetime.datetime.utcnow()"},
		{"iso date", "ISODate('2012-12-19T06:01:17Z')", "datetime.datetime(2012, 12, 19, 6, 1, 17, tzinfo=datetime.timezone.utc)"},
		{"new date with fields", "new Date(2012, 11, 19)", "datetime.datetime(2012, 12, 19, 0, 0, 0, tzinfo=datetime.timezone.utc)"},
		{"max key", "MaxKey()", "MaxKey()"},
		{"min key", "MinKey()", "MinKey()"},
		{"symbol", "Symbol('s')", "unicode('s', 'utf-8')"},
		{"timestamp", "Timestamp(1, 2)", "Timestamp(1, 2)"},
		{"dbref", `DBRef("db.coll", {x: 1})`, "DBRef('db.coll', {'x': 1})"},
		{"dbref with collection", `DBRef("db", {x: 1}, "coll")`, "DBRef('db', {'x': 1}, 'coll')"},
		{"object create", "Object.create({x: 1})", "{'x': 1}"},
		{"unknown call passes through", "foo(1, 'a')", "foo(1, 'a')"},
		{"constructor nested in document", "{_id: ObjectId(), n: Long(7)}", "{'_id': ObjectId(), 'n': Int64(7)}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.input))
		})
	}
}

func TestTranslateRegex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain literal", "/ab+c/", `re.compile(r"ab+c")`},
		{"remapped flags", "/ab+c/im", `re.compile(r"ab+c(?im)")`},
		{"sticky flag dropped", "/ab+c/y", `re.compile(r"ab+c")`},
		{"global becomes dotall", "/ab+c/g", `re.compile(r"ab+c(?s)")`},
		{"unicode becomes ascii", "/ab+c/u", `re.compile(r"ab+c(?a)")`},
		{"flags sorted", "/ab+c/mi", `re.compile(r"ab+c(?im)")`},
		{"first backslash doubled", `/a\d\w/`, `re.compile(r"a\\d\w")`},
		{"backslash before slash kept", `/a\/b\d/`, `re.compile(r"a\/b\\d")`},
		{"doc regex", `RegExp("a")`, "RegExp('a')"},
		{"doc regex with flags", `RegExp("a", "im")`, "RegExp('a', 'im')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.input))
		})
	}
}

func TestTranslateDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"code scope not object", `Code("fn", "notAnObject")`, "Error: Code requires scope to be an object"},
		{"timestamp first argument", `Timestamp("a", 2)`, "Error: Timestamp first argument requires integer arguments"},
		{"timestamp second argument", `Timestamp(1, "b")`, "Error: Timestamp second argument requires integer arguments"},
		{"unsupported regex flag", `RegExp("a", "z")`, "Error: the regular expression contains unsuppoted 'z' flag"},
		{"multiple unsupported regex flags", `RegExp("a", "zq")`, "Error: the regular expression contains unsuppoted 'zq' flag"},
		{"dbref oid not object", `DBRef("db", 1)`, "Error: DBRef requires object OID"},
		{"dbref namespace not string", "DBRef(1, {x: 1})", "Error: DBRef requires string namespace"},
		{"double wrong type", "Double(true)", "Error: Double requires a number or a string argument"},
		{"double not a number", "Double('abc')", "Error: Double requires a number, got 'abc'"},
		{"number wrong type", "Number([1])", "Error: Number requires a number or a string argument"},
		{"symbol wrong type", "Symbol(1)", "Error: Symbol requires a string argument"},
		{"object create wrong type", "Object.create(1)", "Error: Object.create requires an object argument"},
		{"binary unsupported subtype", "Binary('abc', 99)", "Error: unsupported binary subtype: 99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.input))
		})
	}
}

// Every constructor called with an argument count outside its accepted set
// returns a diagnostic mentioning the construct name, never a crash.
func TestTranslateArityDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		name  string
	}{
		{"Code()", "Code"},
		{"ObjectId(1, 2)", "ObjectId"},
		{"Binary()", "Binary"},
		{"Double()", "Double"},
		{"Double(1, 2)", "Double"},
		{"Number()", "Number"},
		{"Long()", "Long"},
		{"NumberLong()", "NumberLong"},
		{"Int64()", "Int64"},
		{"MaxKey(1)", "MaxKey"},
		{"MinKey(1)", "MinKey"},
		{"Symbol()", "Symbol"},
		{"Timestamp(1)", "Timestamp"},
		{"Timestamp(1, 2, 3)", "Timestamp"},
		{"DBRef('a')", "DBRef"},
		{"RegExp()", "RegExp"},
		{"Object.create()", "Object.create"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Translate(tt.input)
			assert.True(t, strings.HasPrefix(got, "Error:"), "got %q", got)
			assert.Contains(t, got, tt.name)
		})
	}
}

func TestTranslateInvalidObjectID(t *testing.T) {
	got := Translate("ObjectId('xyz')")
	assert.True(t, strings.HasPrefix(got, "Error:"), "got %q", got)
}

// A failing child is never interpolated into the parent's output; the first
// failure becomes the whole translation's diagnostic.
func TestFailingChildAbortsParent(t *testing.T) {
	got := Translate(`{x: Timestamp("a", 2)}`)
	assert.Equal(t, "Error: Timestamp first argument requires integer arguments", got)
}

func TestEvaluatorFailurePassesThrough(t *testing.T) {
	failure := errors.New("sandbox exploded")
	translator := New(WithEvaluator(func(string) (sandbox.Value, error) {
		return sandbox.Value{}, failure
	}))

	root, err := parser.Parse("ObjectId('5ab901d24fe85a5796eb34b3')")
	assert.NoError(t, err)

	assert.Equal(t, "Error: sandbox exploded", translator.Translate(root))
}

func TestFailureClassDiscriminant(t *testing.T) {
	translator := New()

	root, err := parser.Parse("Timestamp(1)")
	assert.NoError(t, err)

	_, visitErr := translator.visit(root)

	var translationErr *TranslationError

	assert.True(t, errors.As(visitErr, &translationErr))
	assert.Equal(t, FailureArity, translationErr.Class)
}

func TestDefaultHandlerJoinsChildren(t *testing.T) {
	translator := New(WithFallback(joinChildren(" ")))

	node := &parser.Node{
		Kind: parser.KindInvalid,
		Children: []*parser.Node{
			{Kind: parser.KindInteger, Value: "1"},
			{Kind: parser.KindBoolean, Value: "true"},
		},
	}

	assert.Equal(t, "1 True", translator.Translate(node))
}

// Translation is idempotent: the same tree translated twice yields the same
// output.
func TestTranslateIdempotent(t *testing.T) {
	root, err := parser.Parse(`{x: Long(1, 2), y: /a/i}`)
	assert.NoError(t, err)

	translator := New()
	first := translator.Translate(root)
	second := translator.Translate(root)

	assert.Equal(t, first, second)
	assert.Equal(t, `{'x': Int64(8589934593), 'y': re.compile(r"a(?i)")}`, first)
}
