package evaluator

import (
	"sort"
	"sync"
)

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment maps variable names to values.
type Environment struct {
	mu    sync.RWMutex
	store map[string]Object
	outer *Environment
}

func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name in this environment.
func (e *Environment) Set(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
	return val
}

// Clone flattens this environment and its outer chain into a new
// environment. Later writes to either side are not seen by the other.
func (e *Environment) Clone() *Environment {
	clone := NewEnvironment()
	e.copyInto(clone.store)
	return clone
}

func (e *Environment) copyInto(dst map[string]Object) {
	if e.outer != nil {
		e.outer.copyInto(dst)
	}
	e.mu.RLock()
	for k, v := range e.store {
		dst[k] = v
	}
	e.mu.RUnlock()
}

// GetStore returns a copy of the store
func (e *Environment) GetStore() map[string]Object {
	e.mu.RLock()
	defer e.mu.RUnlock()
	copy := make(map[string]Object, len(e.store))
	for k, v := range e.store {
		copy[k] = v
	}
	return copy
}

// Names returns the variables bound directly in this environment, sorted.
func (e *Environment) Names() []string {
	e.mu.RLock()
	names := make([]string, 0, len(e.store))
	for k := range e.store {
		names = append(names, k)
	}
	e.mu.RUnlock()
	sort.Strings(names)
	return names
}
