package shunt

import str "strings"

// ErrorKind names the taxonomy of failures described in spec §7. It
// is exposed so hosts can branch on the kind of failure without
// string-matching error text, the way expect_args()-style helpers in
// the teacher's standard library return typed failures rather than
// bare strings.
type ErrorKind int

const (
	ErrSyntaxError ErrorKind = iota
	ErrMalformedUTF8
	ErrEmptyExpression
	ErrUnknownVariable
	ErrTypeError
	ErrMissingOperator
	ErrIndexOutOfRange
	ErrFormatError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntaxError:
		return "SyntaxError"
	case ErrMalformedUTF8:
		return "MalformedUTF8"
	case ErrEmptyExpression:
		return "EmptyExpression"
	case ErrUnknownVariable:
		return "UnknownVariable"
	case ErrTypeError:
		return "TypeError"
	case ErrMissingOperator:
		return "MissingOperator"
	case ErrIndexOutOfRange:
		return "IndexOutOfRange"
	case ErrFormatError:
		return "FormatError"
	}
	return "Error"
}

// SyntaxError reports a malformed expression: unclosed string or
// bracket or comment, a stray operator, an empty expression, or a
// malformed UTF-8 identifier. Raised by compile; Evaluate also
// returns one when a queue does not reduce to a single value, and the
// JSON bridge returns one for malformed JSON or jq input.
type SyntaxError struct {
	Kind    ErrorKind
	Message string
	Pos     int
}

func (e *SyntaxError) Error() string {
	var b str.Builder
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func newSyntaxError(kind ErrorKind, pos int, msg string) *SyntaxError {
	return &SyntaxError{Kind: kind, Message: msg, Pos: pos}
}

// EvalError reports a failure during evaluation: an unbound name, a
// coercion failure, a dispatch miss, an out-of-range index, or a bad
// % format call.
type EvalError struct {
	Kind    ErrorKind
	Name    string // ErrUnknownVariable
	Op      string // ErrMissingOperator
	Left    Kind   // ErrMissingOperator
	Right   Kind   // ErrMissingOperator
	Message string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case ErrUnknownVariable:
		return "UnknownVariable: " + e.Name
	case ErrMissingOperator:
		return "MissingOperator: no overload for " + e.Left.String() + " " + e.Op + " " + e.Right.String()
	default:
		var b str.Builder
		b.WriteString(e.Kind.String())
		if e.Message != "" {
			b.WriteString(": ")
			b.WriteString(e.Message)
		}
		return b.String()
	}
}

// reject is the internal-only sentinel an overload function returns
// to decline a match without reporting a real error: dispatch then
// continues with the next candidate for the same operator. It never
// escapes to a caller.
var reject = &rejectError{}

type rejectError struct{}

func (*rejectError) Error() string { return "operator rejected" }

// Reject is the value overload implementations return as their error
// to signal the Reject condition of spec §4.3.
func Reject() error { return reject }

func isReject(err error) bool { return err == reject }
