package shunt

import (
	"math"
	"strconv"
	str "strings"
)

// seedBuiltins installs the operator surface of spec §4.7: arithmetic,
// comparison, logical, string/list/map indexing and concatenation,
// member access (lowered to "[]" by the compiler, so it needs no
// overload of its own), call, assignment, and tuple/stuple building.
// Arithmetic and comparison overloads are registered broadly under
// KAny/KAny. Arithmetic Rejects when the operands turn out not to fit,
// the same "broad candidate, narrow acceptance" shape the registry's
// dispatch loop is built to support; comparison instead fails with the
// TypeError from Value.Compare.
func seedBuiltins(reg *Registry) {
	reg.RegisterOperator(",", 2)
	reg.RegisterOperator(":", 3)
	reg.RegisterOperator("||", 4)
	reg.RegisterOperator("&&", 5)
	reg.RegisterOperator("==", 6)
	reg.RegisterOperator("!=", 6)
	reg.RegisterOperator("<", 7)
	reg.RegisterOperator("<=", 7)
	reg.RegisterOperator(">", 7)
	reg.RegisterOperator(">=", 7)
	reg.RegisterOperator("<<", 8)
	reg.RegisterOperator("+", 9)
	reg.RegisterOperator("-", 9)
	reg.RegisterOperator("*", 10)
	reg.RegisterOperator("/", 10)
	reg.RegisterOperator("%", 10)
	reg.RegisterOperator("**", -11)

	reg.RegisterUnary("-", 12)
	reg.RegisterUnary("!", 12)

	registerArithmetic(reg)
	registerComparison(reg)
	registerLogical(reg)
	registerIndexing(reg)
	registerCallAndAssign(reg)
	registerTuples(reg)
	registerLiterals(reg)
	registerComments(reg)
}

func bothNumeric(l, r Value) bool { return l.Kind().IsNumeric() && r.Kind().IsNumeric() }

func isIntegral(v Value) bool {
	k := v.Kind().Resolved()
	return k == KInt || k == KBool
}

func bothIntegral(l, r Value) bool { return isIntegral(l) && isIntegral(r) }

func registerArithmetic(reg *Registry) {
	arith := func(op string, intOp func(a, b int64) (int64, error), realOp func(a, b float64) float64) {
		reg.RegisterOverload(KAny, op, KAny, func(left, right Value, ev *Evaluator) (Value, error) {
			if !bothNumeric(left, right) {
				return None, Reject()
			}
			if bothIntegral(left, right) {
				a, _ := left.AsInt()
				b, _ := right.AsInt()
				i, err := intOp(a, b)
				if err != nil {
					return None, err
				}
				return Int(i), nil
			}
			a, _ := left.AsReal()
			b, _ := right.AsReal()
			return Number(realOp(a, b)), nil
		})
	}

	arith("+",
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) float64 { return a + b },
	)
	arith("-",
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) float64 { return a - b },
	)
	arith("*",
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) float64 { return a * b },
	)
	arith("/",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, &EvalError{Kind: ErrTypeError, Message: "integer division by zero"}
			}
			return a / b, nil
		},
		func(a, b float64) float64 { return a / b },
	)
	arith("%",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, &EvalError{Kind: ErrTypeError, Message: "integer modulo by zero"}
			}
			return a % b, nil
		},
		math.Mod,
	)
	arith("**",
		func(a, b int64) (int64, error) {
			if b < 0 {
				return 0, &EvalError{Kind: ErrTypeError, Message: "negative exponent for integer '**'"}
			}
			result := int64(1)
			for ; b > 0; b-- {
				result *= a
			}
			return result, nil
		},
		math.Pow,
	)

	reg.RegisterOverload(KAny, "<<", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		if !bothIntegral(left, right) {
			return None, Reject()
		}
		a, _ := left.AsInt()
		b, _ := right.AsInt()
		if b < 0 {
			return None, &EvalError{Kind: ErrTypeError, Message: "negative shift count"}
		}
		return Int(a << uint(b)), nil
	})

	reg.RegisterOverload(KStr, "+", KStr, func(left, right Value, ev *Evaluator) (Value, error) {
		ls, _ := left.AsString()
		rs, _ := right.AsString()
		return Str(ls + rs), nil
	})
	reg.RegisterOverload(KList, "+", KList, func(left, right Value, ev *Evaluator) (Value, error) {
		return ListVal(left.list.Concat(right.list)), nil
	})

	reg.RegisterOverload(KStr, "%", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		args := tupleOrSingleElems(right)
		out, err := formatPercent(left.s, args)
		if err != nil {
			return None, err
		}
		return Str(out), nil
	})

	reg.RegisterOverload(KUnary, "L-", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		if !right.Kind().IsNumeric() {
			return None, Reject()
		}
		if isIntegral(right) {
			i, _ := right.AsInt()
			return Int(-i), nil
		}
		f, _ := right.AsReal()
		return Number(-f), nil
	})
	reg.RegisterOverload(KUnary, "L!", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return Bool(!right.AsBool()), nil
	})
}

func registerComparison(reg *Registry) {
	cmp := func(op string, ok func(c int) bool) {
		reg.RegisterOverload(KAny, op, KAny, func(left, right Value, ev *Evaluator) (Value, error) {
			c, err := left.Compare(right)
			if err != nil {
				return None, err
			}
			return Bool(ok(c)), nil
		})
	}
	cmp("<", func(c int) bool { return c < 0 })
	cmp("<=", func(c int) bool { return c <= 0 })
	cmp(">", func(c int) bool { return c > 0 })
	cmp(">=", func(c int) bool { return c >= 0 })

	reg.RegisterOverload(KAny, "==", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return Bool(left.Equal(right)), nil
	})
	reg.RegisterOverload(KAny, "!=", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return Bool(!left.Equal(right)), nil
	})
}

func registerLogical(reg *Registry) {
	reg.RegisterOverload(KAny, "&&", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return Bool(left.AsBool() && right.AsBool()), nil
	})
	reg.RegisterOverload(KAny, "||", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return Bool(left.AsBool() || right.AsBool()), nil
	})
}

// listMethods is the method surface a string-keyed "[]" lookup (i.e.
// a `.name` member access, per the compiler's dot-lowering) exposes on
// a list, each bound to its receiver as a zero-or-one-arg native
// Function. push/pop mutate the receiver in place, matching List's own
// Push/Pop semantics.
var listMethods = map[string]func(l *List) *Function{
	"len": func(l *List) *Function {
		return NewNativeFunction("len", nil, func(scope *Map) (Value, error) {
			return Int(int64(l.Len())), nil
		})
	},
	"push": func(l *List) *Function {
		return NewNativeFunction("push", []string{"value"}, func(scope *Map) (Value, error) {
			v, _ := scope.Get("value")
			l.Push(v)
			return None, nil
		})
	},
	"pop": func(l *List) *Function {
		return NewNativeFunction("pop", nil, func(scope *Map) (Value, error) {
			v, ok := l.Pop()
			if !ok {
				return None, &EvalError{Kind: ErrIndexOutOfRange, Message: "pop from empty list"}
			}
			return v, nil
		})
	},
}

func registerIndexing(reg *Registry) {
	reg.RegisterOverload(KStr, "[]", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		idx, err := right.AsInt()
		if err != nil {
			return None, err
		}
		n := int64(len(left.s))
		i := idx
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return None, &EvalError{Kind: ErrIndexOutOfRange, Message: "string index out of range"}
		}
		return Str(string(left.s[i])), nil
	})
	reg.RegisterOverload(KList, "[]", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		if right.Kind().Resolved() == KStr {
			name, err := right.AsString()
			if err != nil {
				return None, err
			}
			make, ok := listMethods[name]
			if !ok {
				return None, &EvalError{Kind: ErrTypeError, Message: "list has no method " + strconv.Quote(name)}
			}
			return FuncVal(make(left.list)), nil
		}
		idx, err := right.AsInt()
		if err != nil {
			return None, err
		}
		ref, err := newListRef(left.list, idx)
		if err != nil {
			return None, err
		}
		return RefVal(ref), nil
	})
	reg.RegisterOverload(KMap, "[]", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		key, err := right.AsString()
		if err != nil {
			return None, err
		}
		return RefVal(newMapRef(left.m, key)), nil
	})
}

func registerCallAndAssign(reg *Registry) {
	reg.RegisterOverload(KFunc, "()", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return left.fn.Call(right, ev.Scope)
	})
	reg.RegisterOverload(KAny, "=", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		if left.ref == nil {
			return None, &EvalError{Kind: ErrTypeError, Message: "left side of '=' is not assignable"}
		}
		if err := left.ref.assign(right); err != nil {
			return None, err
		}
		return right, nil
	})
}

func registerTuples(reg *Registry) {
	reg.RegisterOverload(KAny, ",", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		if left.Kind() == KTuple {
			return TupleVal(left.tup.Append(right)), nil
		}
		return TupleVal(newTuple([]Value{left, right}, false)), nil
	})
	reg.RegisterOverload(KAny, ":", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return TupleVal(NewSTuple(left, right)), nil
	})
}

// registerLiterals wires the reserved words True/False/None directly
// into the postfix queue as literals: no operator dispatch involved.
func registerLiterals(reg *Registry) {
	lit := func(word string, v Value) {
		reg.RegisterReservedWord(word, func(input string, pos int, b *rpnBuilder) (int, error) {
			if !b.expectOperand {
				return pos, newSyntaxError(ErrSyntaxError, pos, "unexpected '"+word+"'")
			}
			b.markContent()
			b.pushLiteral(v)
			return pos, nil
		})
	}
	lit("True", Bool(true))
	lit("False", Bool(false))
	lit("None", None)
}

// registerComments wires '#' line comments and C-style '/*...*/' block
// comments as reserved-character hooks, and leaves plain '/' to fall
// through to the division operator.
func registerComments(reg *Registry) {
	reg.RegisterReservedChar('#', func(input string, pos int, b *rpnBuilder) (int, error) {
		i := str.IndexByte(input[pos:], '\n')
		if i < 0 {
			return len(input), nil
		}
		return pos + i, nil
	})
	reg.RegisterReservedChar('/', func(input string, pos int, b *rpnBuilder) (int, error) {
		if pos+1 < len(input) && input[pos+1] == '*' {
			end := str.Index(input[pos+2:], "*/")
			if end < 0 {
				return pos, newSyntaxError(ErrSyntaxError, pos, "unterminated block comment")
			}
			return pos + 2 + end + 2, nil
		}
		op, next := scanOperator(input, pos, b.registry, b.expectOperand)
		if op == "" {
			return pos, newSyntaxError(ErrSyntaxError, pos, "unexpected character '/'")
		}
		b.markContent()
		if err := b.handleOp(op, pos); err != nil {
			return pos, err
		}
		return next, nil
	})
}

// tupleOrSingleElems splits v into a flat element slice: a (non-s)
// Tuple expands to its elements, anything else is a single-element
// slice. Used by function-call argument flattening's string-sibling,
// the "%" format operator.
func tupleOrSingleElems(v Value) []Value {
	v = v.Resolve()
	if v.Kind() == KTuple {
		return v.tup.Elems()
	}
	if v.Kind() == KNone {
		return nil
	}
	return []Value{v}
}

// formatPercent implements the printf-style subset spec §4.7
// promises: %% escapes a literal percent, %s stringifies the next
// argument. Argument count must match exactly.
func formatPercent(format string, args []Value) (string, error) {
	var b str.Builder
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == '%' && i+1 < len(format) {
			switch format[i+1] {
			case '%':
				b.WriteByte('%')
				i++
				continue
			case 's':
				if ai >= len(args) {
					return "", &EvalError{Kind: ErrFormatError, Message: "not enough arguments for '%' format"}
				}
				s, err := args[ai].AsString()
				if err != nil {
					return "", err
				}
				b.WriteString(s)
				ai++
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	if ai != len(args) {
		return "", &EvalError{Kind: ErrFormatError, Message: "too many arguments for '%' format"}
	}
	return b.String(), nil
}
