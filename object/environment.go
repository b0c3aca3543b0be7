package object

import "sort"

// Environment is a chain of name bindings used by the tree-walk evaluator.
// Lookups walk outward through enclosing scopes; Define always binds in the
// innermost scope.
type Environment struct {
	vars  map[string]Object
	outer *Environment
}

// NewEnvironment creates an empty top-level environment.
func NewEnvironment() *Environment {
	return &Environment{vars: map[string]Object{}}
}

// NewEnclosedEnvironment creates an environment nested inside outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{vars: map[string]Object{}, outer: outer}
}

// Get returns the value bound to name, searching enclosing scopes.
func (e *Environment) Get(name string) (Object, bool) {
	if value, ok := e.vars[name]; ok {
		return value, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Define binds name in the innermost scope, shadowing any outer binding.
func (e *Environment) Define(name string, value Object) {
	e.vars[name] = value
}

// Set updates an existing binding wherever it lives in the chain, or binds
// in the innermost scope when the name is new.
func (e *Environment) Set(name string, value Object) {
	if env := e.find(name); env != nil {
		env.vars[name] = value
		return
	}
	e.vars[name] = value
}

func (e *Environment) find(name string) *Environment {
	if _, ok := e.vars[name]; ok {
		return e
	}
	if e.outer != nil {
		return e.outer.find(name)
	}
	return nil
}

// Names returns the sorted set of names visible from this environment.
// Shadowed names appear once.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	var names []string
	for env := e; env != nil; env = env.outer {
		for name := range env.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
