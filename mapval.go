package shunt

// Map is both a value (the language's map/object type) and the unit
// of lexical scoping (the evaluator's environment): an
// insertion-ordered string-keyed mapping, mutable and shared by
// reference, with an optional parent pointer that lookups walk but
// writes through the index/member operators never do.
type Map struct {
	keys    []string
	entries map[string]Value
	parent  *Map
}

func newMap(parent *Map) *Map {
	return &Map{entries: make(map[string]Value), parent: parent}
}

// NewMap constructs a fresh, parentless map value (a map literal).
func NewMap() *Map { return newMap(nil) }

// defaultGlobal is the distinguished root map every top-level scope
// chains to. It is a package-level singleton that starts empty
// (seedBuiltins registers operators on a Registry, not entries here)
// and is never mutated by ordinary bare-name assignment (see Set).
var defaultGlobal = newMap(nil)

// NewRootEnv returns a fresh scope whose parent is the default
// global map, ready to be populated with a host's variables.
func NewRootEnv() *Map { return newMap(defaultGlobal) }

// Child returns a new, empty map with m as parent.
func (m *Map) Child() *Map { return newMap(m) }

func (m *Map) Len() int { return len(m.keys) }

// Has reports local membership only, no chain walk.
func (m *Map) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Get reads the local entry only.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Find walks the parent chain, returning the nearest map that defines
// key together with the bound value.
func (m *Map) Find(key string) (*Map, Value, bool) {
	for cur := m; cur != nil; cur = cur.parent {
		if v, ok := cur.entries[key]; ok {
			return cur, v, true
		}
	}
	return nil, None, false
}

// SetLocal writes key into m itself, never a parent — the semantics
// of `m[k] = v` and `m.k = v`.
func (m *Map) SetLocal(key string, v Value) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Remove deletes key from m itself.
func (m *Map) Remove(key string) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Set implements bare-name assignment (`x = v`): it writes into the
// nearest ancestor map that already defines key, or into m itself if
// none does. The one exception is the default global map: names that
// only exist there are shadowed into m rather than overwritten
// directly, so host-registered functions can be locally redefined
// without corrupting the shared root.
func (m *Map) Set(key string, v Value) {
	owner, _, found := m.Find(key)
	if found && owner != defaultGlobal {
		owner.SetLocal(key, v)
		return
	}
	m.SetLocal(key, v)
}

func (m *Map) equal(o *Map) bool {
	if m == o {
		return true
	}
	if len(m.keys) != len(o.keys) {
		return false
	}
	for _, k := range m.keys {
		ov, ok := o.entries[k]
		if !ok || !m.entries[k].Equal(ov) {
			return false
		}
	}
	return true
}

// mapIterator yields (key, value) STuples in insertion order.
type mapIterator struct {
	m   *Map
	pos int
}

func (m *Map) Iterator() Iterator { return &mapIterator{m: m} }

func (it *mapIterator) Next() (Value, bool) {
	if it.pos >= len(it.m.keys) {
		return None, false
	}
	k := it.m.keys[it.pos]
	it.pos++
	return TupleVal(newTuple([]Value{Str(k), it.m.entries[k]}, true)), true
}
