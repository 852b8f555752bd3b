package shunt

import "testing"

func TestListGetNegativeIndexWraps(t *testing.T) {
	l := NewList(Int(1), Int(2), Int(3))
	v, err := l.Get(-1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.i != 3 {
		t.Fatalf("l[-1] = %v, want 3", v)
	}
}

func TestListGetOutOfRange(t *testing.T) {
	l := NewList(Int(1))
	if _, err := l.Get(5); err == nil {
		t.Fatal("expected IndexOutOfRange")
	}
	if _, err := l.Get(-2); err == nil {
		t.Fatal("expected IndexOutOfRange for negative overflow")
	}
}

func TestListSetInPlace(t *testing.T) {
	l := NewList(Int(1), Int(2))
	if err := l.Set(0, Int(9)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := l.Get(0)
	if v.i != 9 {
		t.Fatalf("l[0] = %v, want 9", v)
	}
}

func TestListPushPop(t *testing.T) {
	l := NewList()
	l.Push(Int(1))
	l.Push(Int(2))
	v, ok := l.Pop()
	if !ok || v.i != 2 {
		t.Fatalf("Pop() = %v, %v, want 2, true", v, ok)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
}

func TestListConcatDoesNotMutateOperands(t *testing.T) {
	a := NewList(Int(1))
	b := NewList(Int(2))
	c := a.Concat(b)
	if c.Len() != 2 {
		t.Fatalf("Concat len = %d, want 2", c.Len())
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatal("Concat must not mutate its operands")
	}
}

func TestListIteratorOrder(t *testing.T) {
	l := NewList(Int(1), Int(2), Int(3))
	it := l.Iterator()
	var got []int64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v.i)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("iterator order = %v, want [1 2 3]", got)
	}
}

func TestListEqual(t *testing.T) {
	a := NewList(Int(1), Str("x"))
	b := NewList(Int(1), Str("x"))
	if !a.equal(b) {
		t.Fatal("structurally identical lists must be equal")
	}
	c := NewList(Int(1), Str("y"))
	if a.equal(c) {
		t.Fatal("lists differing by one element must not be equal")
	}
}
