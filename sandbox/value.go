package sandbox

import (
	"strconv"
	"time"
)

// ValueKind discriminates the runtime values the evaluator can produce.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindDocument
	KindObjectID
	KindLong
	KindDateTime
	KindBinary
	KindRegex
)

// String returns the string representation of ValueKind
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDocument:
		return "document"
	case KindObjectID:
		return "object id"
	case KindLong:
		return "64-bit integer"
	case KindDateTime:
		return "datetime"
	case KindBinary:
		return "binary"
	case KindRegex:
		return "regular expression"
	default:
		return "unknown"
	}
}

// Entry is a single key/value pair of a document value. Order is preserved.
type Entry struct {
	Key string
	Val Value
}

// Value is the runtime result of evaluating a constant-foldable expression.
// Only the fields relevant to Kind are populated.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Int     int64 // KindInt, KindLong
	Float   float64
	Str     string    // KindString data, KindObjectID canonical hex, KindBinary payload
	Subtype int       // KindBinary
	Time    time.Time // KindDateTime, always UTC
	Pattern string    // KindRegex
	Flags   string    // KindRegex
	Elems   []Value
	Doc     []Entry
}

// Canonical returns the canonical textual representation used when a folded
// value is embedded into generated output.
func (v Value) Canonical() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt, KindLong:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindObjectID:
		return v.Str
	case KindDateTime:
		return v.Time.UTC().Format(time.RFC3339)
	case KindRegex:
		return "/" + v.Pattern + "/" + v.Flags
	default:
		return ""
	}
}
