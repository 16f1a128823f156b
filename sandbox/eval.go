package sandbox

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/isabella232/bson-transpilers/parser"
)

// Evaluation is bounded so that pathological input cannot hang translation.
const (
	maxSteps = 10000
	maxDepth = 64
)

// Sentinel errors
var (
	ErrBudgetExceeded   = errors.New("expression exceeds the evaluation budget")
	ErrUnsupported      = errors.New("unsupported expression in constant context")
	ErrInvalidObjectID  = errors.New("invalid object id")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Eval executes a verbatim source snippet of the extended query grammar and
// returns its runtime value. The evaluator is hermetic: it performs no I/O,
// reads no host state, and accepts only the constant-foldable subset of the
// grammar. Every failure is returned as an error whose message is safe to
// surface to the user unmodified.
func Eval(src string) (Value, error) {
	root, err := parser.Parse(src)
	if err != nil {
		return Value{}, err
	}

	e := &evaluator{}

	return e.eval(root, 0)
}

type evaluator struct {
	steps int
}

func (e *evaluator) eval(n *parser.Node, depth int) (Value, error) {
	e.steps++
	if e.steps > maxSteps {
		return Value{}, ErrBudgetExceeded
	}

	if depth > maxDepth {
		return Value{}, fmt.Errorf("%w: nesting too deep", ErrBudgetExceeded)
	}

	switch n.Kind {
	case parser.KindString:
		return Value{Kind: KindString, Str: unescapeString(stripQuotes(n.Value))}, nil
	case parser.KindInteger:
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(n.Value, 64)
			if ferr != nil {
				return Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidArguments, n.Value)
			}

			return Value{Kind: KindFloat, Float: f}, nil
		}

		return Value{Kind: KindInt, Int: i}, nil
	case parser.KindDecimal:
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidArguments, n.Value)
		}

		return Value{Kind: KindFloat, Float: f}, nil
	case parser.KindOctal:
		i, err := parseOctal(n.Value)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an octal number", ErrInvalidArguments, n.Value)
		}

		return Value{Kind: KindInt, Int: i}, nil
	case parser.KindHex:
		text := strings.TrimPrefix(n.Value, "-")
		i, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a hex number", ErrInvalidArguments, n.Value)
		}

		if strings.HasPrefix(n.Value, "-") {
			i = -i
		}

		return Value{Kind: KindInt, Int: i}, nil
	case parser.KindBoolean:
		return Value{Kind: KindBool, Bool: n.Value == "true"}, nil
	case parser.KindNull, parser.KindUndefined, parser.KindElision:
		return Value{Kind: KindNull}, nil
	case parser.KindRegex:
		pattern, flags := n.RegexParts()

		return Value{Kind: KindRegex, Pattern: pattern, Flags: flags}, nil
	case parser.KindArray:
		value := Value{Kind: KindArray}
		for _, element := range n.Elements() {
			elem, err := e.eval(element, depth+1)
			if err != nil {
				return Value{}, err
			}

			value.Elems = append(value.Elems, elem)
		}

		return value, nil
	case parser.KindObject:
		value := Value{Kind: KindDocument}
		for _, property := range n.Properties() {
			val, err := e.eval(property.Val(), depth+1)
			if err != nil {
				return Value{}, err
			}

			value.Doc = append(value.Doc, Entry{Key: stripQuotes(property.Key()), Val: val})
		}

		return value, nil
	case parser.KindNew:
		return e.eval(n.Target(), depth+1)
	case parser.KindCall:
		return e.call(n, depth)
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind)
	}
}

func (e *evaluator) call(n *parser.Node, depth int) (Value, error) {
	args := make([]Value, 0, len(n.Args()))
	for _, arg := range n.Args() {
		value, err := e.eval(arg, depth+1)
		if err != nil {
			return Value{}, err
		}

		args = append(args, value)
	}

	switch n.Callee() {
	case "ObjectId", "ObjectID":
		return evalObjectID(args)
	case "Long", "NumberLong", "Int64":
		return evalLong(args)
	case "Binary", "BinData":
		return evalBinary(args)
	case "Date", "ISODate":
		return evalDate(args)
	case "Date.now":
		return Value{Kind: KindDateTime, Time: time.Now().UTC()}, nil
	case "Number", "NumberInt":
		return evalNumber(args)
	default:
		return Value{}, fmt.Errorf("%w: call to %s", ErrUnsupported, n.Callee())
	}
}

func evalObjectID(args []Value) (Value, error) {
	switch len(args) {
	case 0:
		return Value{Kind: KindObjectID, Str: generateObjectIDHex()}, nil
	case 1:
		if args[0].Kind != KindString {
			return Value{}, fmt.Errorf("%w: argument must be a string of 24 hex characters", ErrInvalidObjectID)
		}

		hexValue := strings.ToLower(args[0].Str)
		if len(hexValue) != 24 {
			return Value{}, fmt.Errorf("%w: argument must be a string of 24 hex characters", ErrInvalidObjectID)
		}

		if _, err := hex.DecodeString(hexValue); err != nil {
			return Value{}, fmt.Errorf("%w: argument must be a string of 24 hex characters", ErrInvalidObjectID)
		}

		return Value{Kind: KindObjectID, Str: hexValue}, nil
	default:
		return Value{}, fmt.Errorf("%w: ObjectId takes at most one argument", ErrInvalidArguments)
	}
}

func evalLong(args []Value) (Value, error) {
	switch len(args) {
	case 1:
		if args[0].Kind == KindString {
			i, err := strconv.ParseInt(args[0].Str, 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("%w: %q is not a 64-bit integer", ErrInvalidArguments, args[0].Str)
			}

			return Value{Kind: KindLong, Int: i}, nil
		}

		i, ok := asInt64(args[0])
		if !ok {
			return Value{}, fmt.Errorf("%w: Long requires an integer argument", ErrInvalidArguments)
		}

		return Value{Kind: KindLong, Int: i}, nil
	case 2:
		low, okLow := asInt64(args[0])

		high, okHigh := asInt64(args[1])
		if !okLow || !okHigh {
			return Value{}, fmt.Errorf("%w: Long requires integer low and high bits", ErrInvalidArguments)
		}

		return Value{Kind: KindLong, Int: high<<32 | int64(uint32(low))}, nil
	default:
		return Value{}, fmt.Errorf("%w: Long requires one or two arguments", ErrInvalidArguments)
	}
}

func evalBinary(args []Value) (Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return Value{}, fmt.Errorf("%w: Binary requires one or two arguments", ErrInvalidArguments)
	}

	if args[0].Kind != KindString {
		return Value{}, fmt.Errorf("%w: Binary requires string data", ErrInvalidArguments)
	}

	value := Value{Kind: KindBinary, Str: args[0].Str}

	if len(args) == 2 {
		subtype, ok := asInt64(args[1])
		if !ok {
			return Value{}, fmt.Errorf("%w: Binary requires a numeric subtype", ErrInvalidArguments)
		}

		value.Subtype = int(subtype)
	}

	return value, nil
}

func evalDate(args []Value) (Value, error) {
	switch len(args) {
	case 0:
		return Value{Kind: KindDateTime, Time: time.Now().UTC()}, nil
	case 1:
		if args[0].Kind == KindString {
			parsed, err := parseDateString(args[0].Str)
			if err != nil {
				return Value{}, err
			}

			return Value{Kind: KindDateTime, Time: parsed}, nil
		}

		millis, ok := asInt64(args[0])
		if !ok {
			return Value{}, fmt.Errorf("%w: Date requires a string or numeric argument", ErrInvalidDate)
		}

		return Value{Kind: KindDateTime, Time: time.UnixMilli(millis).UTC()}, nil
	default:
		fields := [6]int64{0, 0, 1, 0, 0, 0}
		for i, arg := range args {
			if i >= len(fields) {
				break
			}

			field, ok := asInt64(arg)
			if !ok {
				return Value{}, fmt.Errorf("%w: Date calendar fields must be numbers", ErrInvalidDate)
			}

			fields[i] = field
		}

		// The source grammar counts months from zero.
		t := time.Date(int(fields[0]), time.Month(fields[1])+1, int(fields[2]),
			int(fields[3]), int(fields[4]), int(fields[5]), 0, time.UTC)

		return Value{Kind: KindDateTime, Time: t}, nil
	}
}

func evalNumber(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, fmt.Errorf("%w: Number requires one argument", ErrInvalidArguments)
	}

	switch args[0].Kind {
	case KindInt, KindLong:
		return Value{Kind: KindInt, Int: args[0].Int}, nil
	case KindFloat:
		return Value{Kind: KindFloat, Float: args[0].Float}, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidArguments, args[0].Str)
		}

		return Value{Kind: KindFloat, Float: f}, nil
	default:
		return Value{}, fmt.Errorf("%w: Number requires a numeric or string argument", ErrInvalidArguments)
	}
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
}

func parseDateString(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, s); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: could not parse %q", ErrInvalidDate, s)
}

// generateObjectIDHex builds a fresh 12-byte id: a big-endian unix timestamp
// followed by eight random bytes.
func generateObjectIDHex() string {
	var raw [12]byte

	binary.BigEndian.PutUint32(raw[0:4], uint32(time.Now().Unix()))

	_, _ = rand.Read(raw[4:])

	return hex.EncodeToString(raw[:])
}

func asInt64(v Value) (int64, bool) {
	switch v.Kind {
	case KindInt, KindLong:
		return v.Int, true
	case KindFloat:
		if v.Float == float64(int64(v.Float)) {
			return int64(v.Float), true
		}

		return 0, false
	default:
		return 0, false
	}
}

func parseOctal(text string) (int64, error) {
	digits := strings.TrimPrefix(text, "-")
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0o"), "0O")
	digits = strings.TrimLeft(digits, "0")

	if digits == "" {
		digits = "0"
	}

	i, err := strconv.ParseInt(digits, 8, 64)
	if err != nil {
		return 0, err
	}

	if strings.HasPrefix(text, "-") {
		i = -i
	}

	return i, nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}

	return s
}

func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}

		i++

		switch runes[i] {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		case 'r':
			sb.WriteRune('\r')
		case '\\', '\'', '"', '/':
			sb.WriteRune(runes[i])
		default:
			sb.WriteRune('\\')
			sb.WriteRune(runes[i])
		}
	}

	return sb.String()
}
