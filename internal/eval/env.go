package eval

import "sort"

// Env resolves names for a single evaluation. Lookup is layered: caller
// bindings shadow the builtin catalog, and neither layer is ever written to
// during evaluation, so an Env may be shared across concurrent evaluations
// as long as the caller does not mutate its own map.
type Env struct {
	vars map[string]Value
}

// NewEnv builds an environment from caller-supplied Go values. A nil map is
// a valid, empty environment over the builtin catalog alone.
func NewEnv(vars map[string]interface{}) *Env {
	if len(vars) == 0 {
		return &Env{}
	}
	converted := make(map[string]Value, len(vars))
	for name, v := range vars {
		converted[name] = FromGo(v)
	}
	return &Env{vars: converted}
}

// Lookup resolves a name, checking caller bindings before the catalog.
func (e *Env) Lookup(name string) (Value, bool) {
	if e != nil {
		if v, ok := e.vars[name]; ok {
			return v, true
		}
	}
	v, ok := catalog[name]
	return v, ok
}

// BuiltinNames returns the builtin catalog's names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
