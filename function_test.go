package shunt

import "testing"

func TestFunctionCallPositionalBinding(t *testing.T) {
	f := NewNativeFunction("add", []string{"a", "b"}, func(scope *Map) (Value, error) {
		a, _ := scope.entries["a"]
		b, _ := scope.entries["b"]
		return Int(a.i + b.i), nil
	})
	scope := NewRootEnv()
	arg := TupleVal(NewTuple(Int(2), Int(3)))
	got, err := f.Call(arg, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.i != 5 {
		t.Fatalf("Call() = %v, want 5", got)
	}
}

func TestFunctionCallNamedBindingViaSTuple(t *testing.T) {
	f := NewNativeFunction("greet", []string{"name"}, func(scope *Map) (Value, error) {
		v, _ := scope.Get("name")
		return v, nil
	})
	arg := TupleVal(NewSTuple(Str("name"), Str("Ada")))
	got, err := f.Call(arg, NewRootEnv())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.s != "Ada" {
		t.Fatalf("Call() = %v, want Ada", got)
	}
}

func TestFunctionCallOverflowArgsAndKwargs(t *testing.T) {
	var seenArgs, seenKwargs Value
	f := NewNativeFunction("f", []string{"a"}, func(scope *Map) (Value, error) {
		seenArgs, _ = scope.Get("args")
		seenKwargs, _ = scope.Get("kwargs")
		return None, nil
	})
	mixed := NewTuple(Int(1), Int(2), Int(3))
	mixed.elems = append(mixed.elems, TupleVal(NewSTuple(Str("extra"), Int(9))))
	if _, err := f.Call(TupleVal(mixed), NewRootEnv()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenArgs.Kind() != KList || seenArgs.list.Len() != 2 {
		t.Fatalf("overflow args = %v, want a 2-element list", seenArgs)
	}
	if seenKwargs.Kind() != KMap || seenKwargs.m.Len() != 1 {
		t.Fatalf("overflow kwargs = %v, want a 1-entry map", seenKwargs)
	}
}

func TestFunctionCallUnboundParamsDefaultToNone(t *testing.T) {
	var seen Value
	f := NewNativeFunction("f", []string{"a", "b"}, func(scope *Map) (Value, error) {
		seen, _ = scope.Get("b")
		return None, nil
	})
	if _, err := f.Call(Int(1), NewRootEnv()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen.IsNone() {
		t.Fatalf("unbound parameter b = %v, want None", seen)
	}
}

func TestFunctionCallCompiledBody(t *testing.T) {
	reg := DefaultRegistry()
	ce, err := Compile("a + b", reg)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	f := NewCompiledFunction("add", []string{"a", "b"}, ce, nil)
	got, err := f.Call(TupleVal(NewTuple(Int(2), Int(3))), NewRootEnv())
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if got.i != 5 {
		t.Fatalf("Call() = %v, want 5", got)
	}
}
