package shunt

import "testing"

// End-to-end properties a host embedding the engine relies on: a
// CompiledExpression is immutable and reusable, scope resolution
// shadows correctly, and slave parsing reports where it stopped.

func TestCompiledExpressionIsReusableAcrossScopes(t *testing.T) {
	reg := NewRegistry()
	ce, err := Compile("x * 2", reg)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	scopeA := NewRootEnv()
	scopeA.SetLocal("x", Int(5))
	scopeB := NewRootEnv()
	scopeB.SetLocal("x", Int(10))

	va, err := Evaluate(ce, scopeA, false)
	if err != nil {
		t.Fatalf("Evaluate(A) error: %v", err)
	}
	vb, err := Evaluate(ce, scopeB, false)
	if err != nil {
		t.Fatalf("Evaluate(B) error: %v", err)
	}
	if va.i != 10 || vb.i != 20 {
		t.Fatalf("va=%v vb=%v, want 10, 20", va, vb)
	}
}

func TestScopeChildShadowsParent(t *testing.T) {
	root := NewRootEnv()
	root.SetLocal("x", Int(1))
	child := root.Child()
	child.SetLocal("x", Int(2))

	reg := NewRegistry()
	ce, _ := Compile("x", reg)
	v, err := Evaluate(ce, child, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.i != 2 {
		t.Fatalf("x in child = %v, want 2 (shadowed)", v)
	}
	rv, _ := root.Get("x")
	if rv.i != 1 {
		t.Fatal("shadowing in a child scope must not mutate the parent")
	}
}

func TestCalculateOneShotConvenience(t *testing.T) {
	scope := NewRootEnv()
	v, err := Calculate("3 * 4", scope, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.i != 12 {
		t.Fatalf("Calculate(3*4) = %v, want 12", v)
	}
}

func TestCalculateUsesSuppliedRegistryOverDefault(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterOperator("@@", 50)
	reg.RegisterOverload(KAny, "@@", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		return Str("custom"), nil
	})
	v, err := Calculate("1 @@ 2", NewRootEnv(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.s != "custom" {
		t.Fatalf("Calculate with a custom registry = %v, want custom", v)
	}
}

func TestContainerFormattingRoundTripsThroughStr(t *testing.T) {
	reg := NewRegistry()
	ce, _ := Compile(`[1, "two", 3.0, [4]]`, reg)
	v, err := Evaluate(ce, NewRootEnv(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Format(v)
	want := `[ 1, "two", 3.0, [ 4 ] ]`
	if got != want {
		t.Fatalf("Format(nested list) = %q, want %q", got, want)
	}
	back, err := Calculate(got, NewRootEnv(), reg)
	if err != nil {
		t.Fatalf("Calculate(%q) error: %v", got, err)
	}
	if !back.Equal(v) {
		t.Fatalf("Calculate(Format(v)) = %q, want a value equal to %q", Format(back), got)
	}
}

func TestUTF8IdentifierAcceptedEndToEnd(t *testing.T) {
	reg := NewRegistry()
	scope := NewRootEnv()
	scope.SetLocal("café", Int(9))
	ce, err := Compile("café + 1", reg)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	v, err := Evaluate(ce, scope, false)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if v.i != 10 {
		t.Fatalf("café+1 = %v, want 10", v)
	}
}

func TestSlaveParseReportsStopPositionForHostEmbedding(t *testing.T) {
	// A host grammar like "if (<expr>) then ..." hands the compiler the
	// text just past its own '(' and learns where the expression ended.
	text := "1 + 2) then 3"
	ce, stop, err := CompileSlave(text, 0, NewRegistry(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text[stop] != ')' {
		t.Fatalf("stop landed on %q, want ')'", text[stop])
	}
	v, err := Evaluate(ce, NewRootEnv(), false)
	if err != nil || v.i != 3 {
		t.Fatalf("Evaluate = %v, %v, want 3, nil", v, err)
	}
}

func TestOverloadResolutionOrderNarrowBeatsBroadWhenRegisteredFirst(t *testing.T) {
	reg := NewRegistry()
	var order []string
	reg.RegisterOperator("##", 9)
	reg.RegisterOverload(KInt, "##", KInt, func(left, right Value, ev *Evaluator) (Value, error) {
		order = append(order, "narrow")
		return Int(1), nil
	})
	reg.RegisterOverload(KAny, "##", KAny, func(left, right Value, ev *Evaluator) (Value, error) {
		order = append(order, "broad")
		return Int(2), nil
	})
	ev := &Evaluator{Scope: NewRootEnv()}
	v, err := reg.dispatch("##", Int(1), Int(2), ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 1 || order[0] != "narrow" || v.i != 1 {
		t.Fatalf("order=%v v=%v, want only the first-registered (narrow) candidate to run", order, v)
	}
}
