package shunt

// Function is an opaque callable: either a host-provided native
// callback or a compiled postfix queue, with an optional capture
// environment for closures defined inside an expression.
type Function struct {
	Name    string
	Params  []string
	Native  func(scope *Map) (Value, error)
	Body    *CompiledExpression
	Capture *Map
}

// NewNativeFunction wraps a Go callback as a callable Value. scope
// passed to fn already has Params bound (any left unsupplied are
// None) plus, if the call supplied extra arguments, the
// "args"/"kwargs" overflow bindings described in spec §4.7.
func NewNativeFunction(name string, params []string, fn func(scope *Map) (Value, error)) *Function {
	return &Function{Name: name, Params: params, Native: fn}
}

// NewCompiledFunction wraps a postfix queue compiled from an
// expression body, evaluated in a child of capture (or of the
// caller's scope, when capture is nil) extended with the bound
// arguments.
func NewCompiledFunction(name string, params []string, body *CompiledExpression, capture *Map) *Function {
	return &Function{Name: name, Params: params, Body: body, Capture: capture}
}

// Call binds arg (a single value, or a Tuple/STuple mix built up by
// the comma/colon operators) to f's declared parameters and executes
// f in a fresh child scope. Positional arguments bind to Params in
// order; STuple arguments bind by name. Extra positionals collect
// into "args"; extra named bindings collect into "kwargs".
func (f *Function) Call(arg Value, callerScope *Map) (Value, error) {
	positional, named, err := flattenCallArg(arg)
	if err != nil {
		return None, err
	}

	base := f.Capture
	if base == nil {
		base = callerScope
	}
	scope := base.Child()

	used := make(map[string]bool, len(named))
	extraKwargs := NewMap()
	for k, v := range named {
		if idx := indexOf(f.Params, k); idx >= 0 {
			scope.SetLocal(k, v)
			used[k] = true
		} else {
			extraKwargs.SetLocal(k, v)
		}
	}

	pi := 0
	var extraArgs []Value
	for _, v := range positional {
		for pi < len(f.Params) && used[f.Params[pi]] {
			pi++
		}
		if pi < len(f.Params) {
			scope.SetLocal(f.Params[pi], v)
			used[f.Params[pi]] = true
			pi++
		} else {
			extraArgs = append(extraArgs, v)
		}
	}
	for _, p := range f.Params {
		if !used[p] {
			scope.SetLocal(p, None)
		}
	}
	if len(extraArgs) > 0 {
		scope.SetLocal("args", ListVal(NewList(extraArgs...)))
	}
	if extraKwargs.Len() > 0 {
		scope.SetLocal("kwargs", MapVal(extraKwargs))
	}

	if f.Native != nil {
		return f.Native(scope)
	}
	return Evaluate(f.Body, scope, false)
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

// flattenCallArg splits a call's argument value into a positional
// slice and a name->value map, unwrapping any top-level Tuple built by
// chained commas and pulling STuples out as named bindings.
func flattenCallArg(arg Value) ([]Value, map[string]Value, error) {
	named := map[string]Value{}
	switch arg.kind {
	case KNone:
		return nil, named, nil
	case KStuple:
		key, err := arg.tup.Key().AsString()
		if err != nil {
			return nil, nil, err
		}
		named[key] = arg.tup.Value()
		return nil, named, nil
	case KTuple:
		var positional []Value
		for _, e := range arg.tup.elems {
			if e.Kind() == KStuple {
				key, err := e.tup.Key().AsString()
				if err != nil {
					return nil, nil, err
				}
				named[key] = e.tup.Value()
				continue
			}
			positional = append(positional, e)
		}
		return positional, named, nil
	default:
		return []Value{arg}, named, nil
	}
}
