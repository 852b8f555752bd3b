package shunt

import "sync"

var (
	defaultRegistryOnce sync.Once
	defaultRegistryVal  *Registry
)

// DefaultRegistry returns the package-level Registry seeded by
// seedBuiltins, built once on first use and shared by every Calculate
// call that doesn't supply its own. Hosts that register custom
// operators for one expression language should build and keep their
// own Registry via NewRegistry instead of mutating this one.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() { defaultRegistryVal = NewRegistry() })
	return defaultRegistryVal
}

// Calculate compiles text against registry (DefaultRegistry if nil)
// and evaluates it immediately against scope. It is the one-shot
// convenience wrapper spec §6 describes; callers evaluating the same
// text repeatedly should Compile once and call Evaluate per call
// instead.
func Calculate(text string, scope *Map, registry *Registry) (Value, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	ce, err := Compile(text, registry)
	if err != nil {
		return None, err
	}
	return Evaluate(ce, scope, false)
}
