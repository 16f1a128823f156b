package pygen

import "fmt"

// FailureClass discriminates the kinds of translation failure. Callers can
// branch on the class without parsing the message text.
type FailureClass int

const (
	// FailureArity is a wrong argument count for a constructor.
	FailureArity FailureClass = iota
	// FailureType is an argument whose inferred semantic type does not match
	// the constructor's requirement.
	FailureType
	// FailureValue is a syntactically accepted argument failing a secondary
	// check, such as non-numeric text passed to a numeric constructor.
	FailureValue
	// FailureEvaluation is reported when the sandbox could not execute a
	// folded expression; the message is the evaluator's, passed through
	// unmodified.
	FailureEvaluation
)

// String returns the string representation of FailureClass
func (c FailureClass) String() string {
	switch c {
	case FailureArity:
		return "arity"
	case FailureType:
		return "type"
	case FailureValue:
		return "value"
	case FailureEvaluation:
		return "evaluation"
	default:
		return "unknown"
	}
}

// TranslationError is a translation failure with a user-facing message. The
// message is stable for arity/type/value failures and verbatim evaluator
// output for evaluation failures.
type TranslationError struct {
	Class   FailureClass
	Message string
}

func (e *TranslationError) Error() string {
	return e.Message
}

func arityErrorf(format string, args ...any) error {
	return &TranslationError{Class: FailureArity, Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) error {
	return &TranslationError{Class: FailureType, Message: fmt.Sprintf(format, args...)}
}

func valueErrorf(format string, args ...any) error {
	return &TranslationError{Class: FailureValue, Message: fmt.Sprintf(format, args...)}
}

func evalError(err error) error {
	return &TranslationError{Class: FailureEvaluation, Message: err.Error()}
}
