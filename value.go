package shunt

import (
	"strconv"
	str "strings"
)

// Value is the tagged union every compiled expression produces and
// consumes. It is deliberately small and copyable: container kinds
// (list, map, tuple, function) hold a pointer to their shared backing
// storage, everything else is carried inline.
type Value struct {
	kind Kind

	num float64 // REAL
	i   int64   // INT
	b   bool    // BOOL
	s   string  // STR

	list *List
	m    *Map
	tup  *Tuple
	fn   *Function
	it   Iterator
	ref  *Reference
}

// None is the singleton "no value" result. Equality with any other
// None is always true, regardless of how each was produced.
var None = Value{kind: KNone}

func Number(f float64) Value { return Value{kind: KReal, num: f} }
func Int(i int64) Value      { return Value{kind: KInt, i: i} }
func Bool(b bool) Value      { return Value{kind: KBool, b: b} }
func Str(s string) Value     { return Value{kind: KStr, s: s} }
func ListVal(l *List) Value  { return Value{kind: KList, list: l} }
func MapVal(m *Map) Value    { return Value{kind: KMap, m: m} }
func TupleVal(t *Tuple) Value {
	k := KTuple
	if t.isStuple {
		k = KStuple
	}
	return Value{kind: k, tup: t}
}
func FuncVal(f *Function) Value { return Value{kind: KFunc, fn: f} }
func IterVal(it Iterator) Value { return Value{kind: KIt, it: it} }
func RefVal(r *Reference) Value { return Value{kind: r.snapshot.kind.AsRef(), ref: r} }

// unaryOperand is the dummy value passed on the missing side of a
// unary dispatch; its kind is KUnary and nothing else reads its
// payload.
var unaryOperand = Value{kind: KUnary}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNone() bool { return v.kind == KNone }

// Resolve dereferences a Reference down to its underlying value,
// leaving every other kind untouched. It is an error to call Resolve
// on an unbound bare-name reference; ResolveErr reports that case.
func (v Value) Resolve() Value {
	if v.ref == nil {
		return v
	}
	return v.ref.snapshot
}

// ResolveErr behaves like Resolve but fails with UnknownVariable if v
// is a reference to a name that was never bound.
func (v Value) ResolveErr() (Value, error) {
	if v.ref == nil {
		return v, nil
	}
	if v.ref.unbound {
		return None, &EvalError{Kind: ErrUnknownVariable, Name: v.ref.key.s}
	}
	return v.ref.snapshot, nil
}

// AsReal coerces v to a float64. Bool and Int promote; non-numeric,
// non-numeric-string kinds fail with TypeError.
func (v Value) AsReal() (float64, error) {
	v = v.Resolve()
	switch v.kind {
	case KReal:
		return v.num, nil
	case KInt:
		return float64(v.i), nil
	case KBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KStr:
		f, err := strconv.ParseFloat(str.TrimSpace(v.s), 64)
		if err != nil {
			return 0, &EvalError{Kind: ErrTypeError, Message: "cannot convert string " + strconv.Quote(v.s) + " to a number"}
		}
		return f, nil
	}
	return 0, &EvalError{Kind: ErrTypeError, Message: "cannot convert " + v.kind.String() + " to a number"}
}

// AsInt coerces v to an int64, truncating reals towards zero.
func (v Value) AsInt() (int64, error) {
	v = v.Resolve()
	switch v.kind {
	case KInt:
		return v.i, nil
	case KBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KReal:
		return int64(v.num), nil
	case KStr:
		i, err := strconv.ParseInt(str.TrimSpace(v.s), 0, 64)
		if err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(str.TrimSpace(v.s), 64)
		if err != nil {
			return 0, &EvalError{Kind: ErrTypeError, Message: "cannot convert string " + strconv.Quote(v.s) + " to an integer"}
		}
		return int64(f), nil
	}
	return 0, &EvalError{Kind: ErrTypeError, Message: "cannot convert " + v.kind.String() + " to an integer"}
}

// AsBool coerces v to a boolean: None is false, numbers are
// non-zero-ness, strings are non-empty-ness, containers are
// non-empty-ness.
func (v Value) AsBool() bool {
	v = v.Resolve()
	switch v.kind {
	case KNone:
		return false
	case KBool:
		return v.b
	case KInt:
		return v.i != 0
	case KReal:
		return v.num != 0
	case KStr:
		return v.s != ""
	case KList:
		return v.list.Len() > 0
	case KMap:
		return v.m.Len() > 0
	case KTuple, KStuple:
		return v.tup.Len() > 0
	case KFunc, KIt:
		return true
	}
	return false
}

// strHook is the map-method name consulted by AsString when coercing
// a map: m.asString() fails unless m defines a callable under this
// key, in which case the result of calling it with m as scope is used.
const strHook = "__str__"

// AsString coerces v to a string. Maps fail unless they define
// __str__; every other kind falls back to Format(v) formatting.
func (v Value) AsString() (string, error) {
	v = v.Resolve()
	if v.kind == KStr {
		return v.s, nil
	}
	if v.kind == KMap {
		if fnVal, ok := v.m.entries[strHook]; ok {
			fn := fnVal.Resolve()
			if fn.kind == KFunc {
				scope := v.m.Child()
				result, err := fn.fn.Call(TupleVal(newTuple(nil, false)), scope)
				if err != nil {
					return "", err
				}
				return result.AsString()
			}
		}
		return "", &EvalError{Kind: ErrTypeError, Message: "map has no __str__ method"}
	}
	return Format(v), nil
}

// Equal implements structural equality. None only equals None.
// Numbers compare by value regardless of subkind (bool counts as
// 0/1). Containers compare structurally; functions and iterators
// compare by identity.
func (v Value) Equal(o Value) bool {
	v, o = v.Resolve(), o.Resolve()
	if v.kind == KNone || o.kind == KNone {
		return v.kind == o.kind
	}
	if v.kind.IsNumeric() && o.kind.IsNumeric() {
		vf, _ := v.AsReal()
		of, _ := o.AsReal()
		return vf == of
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KStr:
		return v.s == o.s
	case KList:
		return v.list.equal(o.list)
	case KMap:
		return v.m.equal(o.m)
	case KTuple, KStuple:
		return v.tup.equal(o.tup)
	case KFunc:
		return v.fn == o.fn
	case KIt:
		return v.it == o.it
	}
	return false
}

// Compare orders two numbers or two strings; any other pairing fails.
// It returns -1, 0 or 1.
func (v Value) Compare(o Value) (int, error) {
	v, o = v.Resolve(), o.Resolve()
	if v.kind.IsNumeric() && o.kind.IsNumeric() {
		vf, _ := v.AsReal()
		of, _ := o.AsReal()
		switch {
		case vf < of:
			return -1, nil
		case vf > of:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if v.kind == KStr && o.kind == KStr {
		return str.Compare(v.s, o.s), nil
	}
	return 0, &EvalError{Kind: ErrTypeError, Message: "cannot compare " + v.kind.String() + " and " + o.kind.String()}
}

// Clone duplicates v. Value kinds (number, bool, string, none) are
// copied outright; container kinds (list, map, function) share their
// backing storage — only the reference is duplicated, per §4.1.
func (v Value) Clone() Value {
	return v
}

// Format renders v the canonical way: the stable text representation
// used both by the `str` surface function and by container
// pretty-printing.
func Format(v Value) string {
	var b str.Builder
	writeValue(&b, v.Resolve(), false)
	return b.String()
}

func writeValue(b *str.Builder, v Value, nested bool) {
	switch v.kind {
	case KNone:
		b.WriteString("None")
	case KBool:
		if v.b {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case KInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KReal:
		b.WriteString(formatReal(v.num))
	case KStr:
		if nested {
			b.WriteString(strconv.Quote(v.s))
		} else {
			b.WriteString(v.s)
		}
	case KList:
		b.WriteString("[ ")
		for i, e := range v.list.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e, true)
		}
		b.WriteString(" ]")
	case KMap:
		b.WriteString("{ ")
		for i, k := range v.m.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			writeValue(b, v.m.entries[k], true)
		}
		b.WriteString(" }")
	case KTuple:
		b.WriteString("(")
		for i, e := range v.tup.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e, true)
		}
		b.WriteString(")")
	case KStuple:
		writeValue(b, v.tup.elems[0], true)
		b.WriteString(": ")
		writeValue(b, v.tup.elems[1], true)
	case KFunc:
		b.WriteString("[Function: " + v.fn.Name + "]")
	case KIt:
		b.WriteString("[Iterator]")
	default:
		b.WriteString("[" + v.kind.String() + "]")
	}
}

// formatReal renders a float64 as decimal with trailing zeros
// trimmed, always keeping at least one fractional digit so reals are
// visibly distinct from ints (e.g. 42 -> "42.0").
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !str.ContainsRune(s, '.') && !str.ContainsAny(s, "eE") {
		s += ".0"
	}
	return s
}
