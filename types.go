package transpiler

// SemanticType is the closed set of semantic types assigned to expression
// nodes during translation. Primitive kinds mirror the source literal forms,
// structural kinds cover containers, and the remaining kinds correspond to
// BSON document-literal constructors that have no direct Python literal.
type SemanticType int

const (
	// TypeUnset marks a node whose type cannot be determined syntactically
	// (for example a bare identifier). It never satisfies a type requirement.
	TypeUnset SemanticType = iota
	TypeString
	TypeInteger
	TypeDecimal
	TypeOctal
	TypeBool
	TypeNull
	TypeUndefined
	TypeObject
	TypeArray
	TypeRegex
	TypeObjectID
	TypeBinary
	TypeCode
	TypeDate
	TypeTimestamp
	TypeLong
	TypeSymbol
	TypeMinKey
	TypeMaxKey
	TypeDBRef
)

// String returns the string representation of SemanticType
func (t SemanticType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeOctal:
		return "octal"
	case TypeBool:
		return "boolean"
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeRegex:
		return "regular expression"
	case TypeObjectID:
		return "object id"
	case TypeBinary:
		return "binary"
	case TypeCode:
		return "code"
	case TypeDate:
		return "date"
	case TypeTimestamp:
		return "timestamp"
	case TypeLong:
		return "64-bit integer"
	case TypeSymbol:
		return "symbol"
	case TypeMinKey:
		return "min key"
	case TypeMaxKey:
		return "max key"
	case TypeDBRef:
		return "database reference"
	default:
		return "unset"
	}
}

// OneOf reports whether t equals any of the candidate types.
func (t SemanticType) OneOf(candidates ...SemanticType) bool {
	for _, c := range candidates {
		if t == c {
			return true
		}
	}

	return false
}

// Numeric reports whether t is one of the numeric literal types.
func (t SemanticType) Numeric() bool {
	return t.OneOf(TypeInteger, TypeDecimal, TypeOctal)
}
