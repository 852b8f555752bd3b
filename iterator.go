package shunt

// Iterator is a stateful, forward-only cursor. Next reports false
// once exhausted; it must keep reporting false afterwards.
type Iterator interface {
	Next() (Value, bool)
}

// funcIterator adapts a host callable of no arguments into an
// Iterator, for built-ins that want to hand back a lazy sequence
// (e.g. a generator function). Each call to Next invokes fn; fn
// signals exhaustion by returning None together with ok=false.
type funcIterator struct {
	next func() (Value, bool)
}

func NewFuncIterator(next func() (Value, bool)) Iterator {
	return &funcIterator{next: next}
}

func (it *funcIterator) Next() (Value, bool) { return it.next() }

// Drain collects every remaining value from it into a slice. Useful
// for built-ins that need a materialized sequence (e.g. converting an
// iterator back into a list).
func Drain(it Iterator) []Value {
	var out []Value
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
