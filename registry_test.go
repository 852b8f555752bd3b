package shunt

import "testing"

func TestRegistryRegisterOperatorAssociativity(t *testing.T) {
	r := NewRegistry()
	r.RegisterOperator("@@", -7)
	p, right, ok := r.precOf("@@")
	if !ok || p != 7 || !right {
		t.Fatalf("precOf(@@) = %d, %v, %v, want 7, true, true", p, right, ok)
	}
}

func TestRegistryRegisterUnarySeedsBinaryExistence(t *testing.T) {
	r := NewRegistry()
	r.RegisterUnary("~", 12)
	if !r.exists("~") {
		t.Fatal("RegisterUnary must seed the bare operator's existence too")
	}
	if !r.exists("L~") {
		t.Fatal("RegisterUnary must register the left-unary form")
	}
}

func TestRegistryAssignmentOperatorIsRegistered(t *testing.T) {
	r := NewRegistry()
	if !r.exists("=") {
		t.Fatal("'=' must be registered by NewRegistry")
	}
}

func TestRegistryDispatchBroadCandidateMatches(t *testing.T) {
	r := NewRegistry()
	ev := &Evaluator{Scope: NewRootEnv()}
	v, err := r.dispatch("+", Int(2), Int(3), ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.i != 5 {
		t.Fatalf("dispatch(+) = %v, want 5", v)
	}
}

func TestRegistryDispatchRejectFallsThroughToNarrowerCandidate(t *testing.T) {
	r := NewRegistry()
	ev := &Evaluator{Scope: NewRootEnv()}
	// "+" is registered broadly (KAny,KAny) rejecting non-numeric pairs,
	// and narrowly for (KStr,KStr): a string pair must reach the narrow one.
	v, err := r.dispatch("+", Str("a"), Str("b"), ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.s != "ab" {
		t.Fatalf("dispatch(+) on strings = %v, want ab", v)
	}
}

func TestRegistryDispatchMissingOperator(t *testing.T) {
	r := NewRegistry()
	ev := &Evaluator{Scope: NewRootEnv()}
	_, err := r.dispatch("+", Int(1), ListVal(NewList()), ev)
	if err == nil {
		t.Fatal("expected MissingOperator for INT + LIST")
	}
	evalErr, ok := err.(*EvalError)
	if !ok || evalErr.Kind != ErrMissingOperator {
		t.Fatalf("err = %v, want an EvalError{Kind: ErrMissingOperator}", err)
	}
}

func TestRegistryReservedWordAndCharHooks(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.findReservedWord("True"); !ok {
		t.Fatal("True must be a registered reserved word")
	}
	if _, ok := r.findReservedChar('#'); !ok {
		t.Fatal("'#' must be a registered reserved char for comments")
	}
}
