package pygen

import (
	"fmt"
	"strconv"

	transpiler "github.com/isabella232/bson-transpilers"
	"github.com/isabella232/bson-transpilers/parser"
	"github.com/shopspring/decimal"
)

// binarySubtypes maps the numeric BSON binary subtype to the symbolic
// constant of the Python driver.
var binarySubtypes = map[int]string{
	0:   "binary.BINARY_SUBTYPE",
	1:   "binary.FUNCTION_SUBTYPE",
	2:   "binary.OLD_BINARY_SUBTYPE",
	3:   "binary.OLD_UUID_SUBTYPE",
	4:   "binary.UUID_SUBTYPE",
	5:   "binary.MD5_SUBTYPE",
	6:   "binary.CSHARP_LEGACY",
	128: "binary.USER_DEFINED_SUBTYPE",
}

// visitCall routes a call expression to its constructor rule. Callee names
// without a rule are emitted as an ordinary call so that user-defined
// functions survive translation untouched.
func visitCall(t *Translator, n *parser.Node) (result, error) {
	switch n.Callee() {
	case "Code":
		return visitCode(t, n)
	case "ObjectId", "ObjectID":
		return visitObjectID(t, n)
	case "Binary", "BinData":
		return visitBinary(t, n)
	case "Double":
		return visitNumeric(t, n, "Double", "float", transpiler.TypeDecimal)
	case "Number", "NumberInt":
		return visitNumeric(t, n, "Number", "int", transpiler.TypeInteger)
	case "Long", "NumberLong", "Int64":
		return visitLong(t, n)
	case "Date", "ISODate":
		return visitDate(t, n)
	case "Date.now":
		return result{text: "datetime.datetime.utcnow()", typ: transpiler.TypeDate}, nil
	case "MaxKey":
		return visitSentinelKey(t, n, "MaxKey", transpiler.TypeMaxKey)
	case "MinKey":
		return visitSentinelKey(t, n, "MinKey", transpiler.TypeMinKey)
	case "Symbol":
		return visitSymbol(t, n)
	case "Timestamp":
		return visitTimestamp(t, n)
	case "DBRef":
		return visitDBRef(t, n)
	case "RegExp", "BSONRegExp":
		return visitRegExp(t, n)
	case "Object.create":
		return visitObjectCreate(t, n)
	default:
		args, err := t.visitAll(n.Args(), ", ")
		if err != nil {
			return result{}, err
		}

		return result{text: n.Callee() + "(" + args + ")"}, nil
	}
}

func visitCode(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 1 && len(args) != 2 {
		return result{}, arityErrorf("Code requires one or two arguments")
	}

	code, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	text := singleQuote(stripQuotes(code.text))

	if len(args) == 2 {
		scope, err := t.visit(args[1])
		if err != nil {
			return result{}, err
		}

		if scope.typ != transpiler.TypeObject {
			return result{}, typeErrorf("Code requires scope to be an object")
		}

		return result{text: fmt.Sprintf("Code(%s, %s)", text, scope.text), typ: transpiler.TypeCode}, nil
	}

	return result{text: fmt.Sprintf("Code(%s)", text), typ: transpiler.TypeCode}, nil
}

// The hex value of a one-argument ObjectId cannot be derived from syntax
// alone, so the full source text is folded through the sandbox and the
// canonical hex representation of the resulting id is emitted.
func visitObjectID(t *Translator, n *parser.Node) (result, error) {
	switch len(n.Args()) {
	case 0:
		return result{text: "ObjectId()", typ: transpiler.TypeObjectID}, nil
	case 1:
		v, err := t.eval(n.Text)
		if err != nil {
			return result{}, evalError(err)
		}

		return result{text: fmt.Sprintf("ObjectId(%s)", singleQuote(v.Str)), typ: transpiler.TypeObjectID}, nil
	default:
		return result{}, arityErrorf("ObjectId requires zero or one argument")
	}
}

func visitBinary(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 1 && len(args) != 2 {
		return result{}, arityErrorf("Binary requires one or two arguments")
	}

	data, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	payload := fmt.Sprintf("bytes(%s, 'utf-8')", singleQuote(stripQuotes(data.text)))

	if len(args) == 1 {
		return result{text: fmt.Sprintf("Binary(%s)", payload), typ: transpiler.TypeBinary}, nil
	}

	v, err := t.eval(n.Text)
	if err != nil {
		return result{}, evalError(err)
	}

	constant, ok := binarySubtypes[v.Subtype]
	if !ok {
		return result{}, valueErrorf("unsupported binary subtype: %d", v.Subtype)
	}

	return result{text: fmt.Sprintf("Binary(%s, %s)", payload, constant), typ: transpiler.TypeBinary}, nil
}

// visitNumeric implements Double and Number, which share the same validation
// shape: a single string, integer, or decimal argument whose quote-stripped
// text parses as a number.
func visitNumeric(t *Translator, n *parser.Node, name, wrapper string, typ transpiler.SemanticType) (result, error) {
	args := n.Args()
	if len(args) != 1 {
		return result{}, arityErrorf("%s requires one argument", name)
	}

	arg, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	if !arg.typ.OneOf(transpiler.TypeString, transpiler.TypeDecimal, transpiler.TypeInteger) {
		return result{}, typeErrorf("%s requires a number or a string argument", name)
	}

	text := stripQuotes(arg.text)
	if _, err := decimal.NewFromString(text); err != nil {
		return result{}, valueErrorf("%s requires a number, got '%s'", name, text)
	}

	return result{text: fmt.Sprintf("%s(%s)", wrapper, text), typ: typ}, nil
}

// The textual form of a 64-bit integer is obtained by folding the full
// expression: a low/high bit pair has no syntactic representation of its
// combined value.
func visitLong(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 1 && len(args) != 2 {
		return result{}, arityErrorf("%s requires one or two arguments", n.Callee())
	}

	v, err := t.eval(n.Text)
	if err != nil {
		return result{}, evalError(err)
	}

	return result{text: fmt.Sprintf("Int64(%s)", strconv.FormatInt(v.Int, 10)), typ: transpiler.TypeLong}, nil
}

func visitDate(t *Translator, n *parser.Node) (result, error) {
	if len(n.Args()) == 0 {
		return result{text: "datetime.datetime.utcnow()", typ: transpiler.TypeDate}, nil
	}

	v, err := t.eval(n.Text)
	if err != nil {
		return result{}, evalError(err)
	}

	utc := v.Time.UTC()
	year, month, day := utc.Date()
	hour, minute, second := utc.Clock()

	text := fmt.Sprintf("datetime.datetime(%d, %d, %d, %d, %d, %d, tzinfo=datetime.timezone.utc)",
		year, int(month), day, hour, minute, second)

	return result{text: text, typ: transpiler.TypeDate}, nil
}

func visitSentinelKey(t *Translator, n *parser.Node, name string, typ transpiler.SemanticType) (result, error) {
	if len(n.Args()) != 0 {
		return result{}, arityErrorf("%s takes no arguments", name)
	}

	return result{text: name + "()", typ: typ}, nil
}

func visitSymbol(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 1 {
		return result{}, arityErrorf("Symbol requires one argument")
	}

	arg, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	if arg.typ != transpiler.TypeString {
		return result{}, typeErrorf("Symbol requires a string argument")
	}

	return result{text: fmt.Sprintf("unicode(%s, 'utf-8')", singleQuote(stripQuotes(arg.text))), typ: transpiler.TypeSymbol}, nil
}

func visitTimestamp(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 2 {
		return result{}, arityErrorf("Timestamp requires two arguments")
	}

	low, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	if low.typ != transpiler.TypeInteger {
		return result{}, typeErrorf("Timestamp first argument requires integer arguments")
	}

	high, err := t.visit(args[1])
	if err != nil {
		return result{}, err
	}

	if high.typ != transpiler.TypeInteger {
		return result{}, typeErrorf("Timestamp second argument requires integer arguments")
	}

	return result{text: fmt.Sprintf("Timestamp(%s, %s)", low.text, high.text), typ: transpiler.TypeTimestamp}, nil
}

func visitDBRef(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 2 && len(args) != 3 {
		return result{}, arityErrorf("DBRef requires two or three arguments")
	}

	namespace, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	if namespace.typ != transpiler.TypeString {
		return result{}, typeErrorf("DBRef requires string namespace")
	}

	oid, err := t.visit(args[1])
	if err != nil {
		return result{}, err
	}

	if oid.typ != transpiler.TypeObject {
		return result{}, typeErrorf("DBRef requires object OID")
	}

	text := fmt.Sprintf("DBRef(%s, %s", singleQuote(stripQuotes(namespace.text)), oid.text)

	if len(args) == 3 {
		collection, err := t.visit(args[2])
		if err != nil {
			return result{}, err
		}

		if collection.typ != transpiler.TypeString {
			return result{}, typeErrorf("DBRef requires string collection")
		}

		text += ", " + singleQuote(stripQuotes(collection.text))
	}

	return result{text: text + ")", typ: transpiler.TypeDBRef}, nil
}

// Object.create has no Python counterpart; the object argument is passed
// through unchanged.
func visitObjectCreate(t *Translator, n *parser.Node) (result, error) {
	args := n.Args()
	if len(args) != 1 {
		return result{}, arityErrorf("Object.create requires one argument")
	}

	arg, err := t.visit(args[0])
	if err != nil {
		return result{}, err
	}

	if arg.typ != transpiler.TypeObject {
		return result{}, typeErrorf("Object.create requires an object argument")
	}

	return result{text: arg.text, typ: transpiler.TypeObject}, nil
}
