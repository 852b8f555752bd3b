package shunt

import (
	// Same reader-biased mutex Registry uses, guarding a compiled-
	// expression cache instead of an operator table.
	"github.com/puzpuzpuz/xsync"
)

// Cache memoizes Compile by source text against a fixed Registry, so
// a host re-evaluating the same handful of expression strings many
// times (a rule engine, a templating loop) pays the shunting-yard
// cost once per distinct string rather than once per call.
type Cache struct {
	xsync.RBMutex
	registry *Registry
	entries  map[string]*CompiledExpression
}

func NewCache(registry *Registry) *Cache {
	return &Cache{registry: registry, entries: make(map[string]*CompiledExpression)}
}

// CalculateCached compiles text once (caching the result keyed by the
// exact source string) and evaluates the cached queue against scope.
func (c *Cache) CalculateCached(text string, scope *Map) (Value, error) {
	ce, err := c.compileCached(text)
	if err != nil {
		return None, err
	}
	return Evaluate(ce, scope, false)
}

func (c *Cache) compileCached(text string) (*CompiledExpression, error) {
	tk := c.RLock()
	ce, ok := c.entries[text]
	c.RUnlock(tk)
	if ok {
		return ce, nil
	}

	ce, err := Compile(text, c.registry)
	if err != nil {
		return nil, err
	}

	c.Lock()
	c.entries[text] = ce
	c.Unlock()
	return ce, nil
}

// Len reports how many distinct expressions are currently cached,
// mostly useful for tests and diagnostics.
func (c *Cache) Len() int {
	tk := c.RLock()
	defer c.RUnlock(tk)
	return len(c.entries)
}
