package shunt

// Reference is the evaluator-time value produced by reading a bare
// name or by the index/member operators, so that a following `=` can
// bind at the correct scope. It is never produced by the compiler
// directly — only the evaluator constructs one, when it resolves a
// VAR token or dispatches `[]`.
type Reference struct {
	key      Value // name (map key) or index (list)
	snapshot Value // value seen at reference-construction time
	unbound  bool  // true if key was not found anywhere (bare name only)

	// Exactly one of mapOrigin/listOrigin is set for an index/member
	// reference, and scope is nil. A bare-name reference sets scope to
	// the scope it was created in and mapOrigin to the nearest ancestor
	// that defines the name (nil if none does) — see assign.
	mapOrigin  *Map
	listOrigin *List
	scope      *Map
}

func newBareRef(name string, scope *Map) *Reference {
	owner, v, found := scope.Find(name)
	r := &Reference{key: Str(name), snapshot: v, scope: scope, unbound: !found}
	if found {
		r.mapOrigin = owner
	}
	return r
}

func newMapRef(m *Map, key string) *Reference {
	_, v, _ := m.Find(key)
	return &Reference{key: Str(key), snapshot: v, mapOrigin: m}
}

func newListRef(l *List, idx int64) (*Reference, error) {
	v, err := l.Get(idx)
	if err != nil {
		return nil, err
	}
	return &Reference{key: Int(idx), snapshot: v, listOrigin: l}, nil
}

// assign writes v into the location this reference denotes, following
// the rules of §3/§4.2: index/member references always write into
// their exact origin container; bare-name references write into the
// defining ancestor, or shadow into the reference's creation scope
// when the only definition is the default global map or there is none
// at all.
func (r *Reference) assign(v Value) error {
	switch {
	case r.listOrigin != nil:
		idx, err := r.key.AsInt()
		if err != nil {
			return err
		}
		return r.listOrigin.Set(idx, v)
	case r.mapOrigin != nil && r.scope == nil:
		key, _ := r.key.AsString()
		r.mapOrigin.SetLocal(key, v)
		return nil
	default:
		key, _ := r.key.AsString()
		if r.mapOrigin != nil && r.mapOrigin != defaultGlobal {
			r.mapOrigin.SetLocal(key, v)
			return nil
		}
		r.scope.SetLocal(key, v)
		return nil
	}
}
