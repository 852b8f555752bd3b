package shunt

// List is an ordered, mutable sequence shared by reference: every
// Value wrapping the same *List sees the same contents.
type List struct {
	elems []Value
}

func NewList(elems ...Value) *List {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return &List{elems: cp}
}

func (l *List) Len() int { return len(l.elems) }

// resolveIndex applies negative-wrap (-1 is last) and range-checks
// against [-len, len).
func (l *List) resolveIndex(i int64) (int, error) {
	n := int64(len(l.elems))
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, &EvalError{Kind: ErrIndexOutOfRange, Message: "list index out of range"}
	}
	return int(idx), nil
}

func (l *List) Get(i int64) (Value, error) {
	idx, err := l.resolveIndex(i)
	if err != nil {
		return None, err
	}
	return l.elems[idx], nil
}

// Set writes at i without growing the list; out-of-range fails the
// same way Get does.
func (l *List) Set(i int64, v Value) error {
	idx, err := l.resolveIndex(i)
	if err != nil {
		return err
	}
	l.elems[idx] = v
	return nil
}

func (l *List) Push(v Value) { l.elems = append(l.elems, v) }

func (l *List) Pop() (Value, bool) {
	if len(l.elems) == 0 {
		return None, false
	}
	last := l.elems[len(l.elems)-1]
	l.elems = l.elems[:len(l.elems)-1]
	return last, true
}

func (l *List) Slice() []Value {
	out := make([]Value, len(l.elems))
	copy(out, l.elems)
	return out
}

func (l *List) Concat(o *List) *List {
	out := make([]Value, 0, len(l.elems)+len(o.elems))
	out = append(out, l.elems...)
	out = append(out, o.elems...)
	return &List{elems: out}
}

func (l *List) equal(o *List) bool {
	if l == o {
		return true
	}
	if len(l.elems) != len(o.elems) {
		return false
	}
	for i := range l.elems {
		if !l.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// listIterator walks a List forward-only.
type listIterator struct {
	l   *List
	pos int
}

func (l *List) Iterator() Iterator { return &listIterator{l: l} }

func (it *listIterator) Next() (Value, bool) {
	if it.pos >= len(it.l.elems) {
		return None, false
	}
	v := it.l.elems[it.pos]
	it.pos++
	return v, true
}
