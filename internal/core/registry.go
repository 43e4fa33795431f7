package core

import (
	"fmt"
)

// Definition describes one dataset file and what the aggregator needs from it.
type Definition struct {
	Key             string   // Unique identifier: "voyage_products"
	File            string   // File name inside the data directory
	Label           string   // Display name: "Voyage Products"
	Section         string   // HTML id fragment: "voyage-products"
	RequiredColumns []string // Columns the aggregator or page depends on
	FilterColumn    string   // Column backing the page's dropdown filter, if any
}

// Registry is an ordered set of dataset definitions. It is built once at
// startup and read-only afterwards.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a definition. Duplicate keys and missing file names
// are rejected.
func (r *Registry) Register(def Definition) error {
	if def.Key == "" {
		return fmt.Errorf("register dataset: empty key")
	}
	if def.File == "" {
		return fmt.Errorf("register dataset %s: empty file name", def.Key)
	}
	if _, exists := r.index[def.Key]; exists {
		return fmt.Errorf("dataset already registered: %s", def.Key)
	}

	if def.Section == "" {
		def.Section = def.Key
	}
	if def.Label == "" {
		def.Label = def.Key
	}

	r.index[def.Key] = len(r.defs)
	r.defs = append(r.defs, def)
	return nil
}

// MustRegister is Register for static tables of definitions.
// Panics on error.
func (r *Registry) MustRegister(defs ...Definition) *Registry {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Get returns a definition by key.
// Returns false if not found.
func (r *Registry) Get(key string) (Definition, bool) {
	i, ok := r.index[key]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	return append([]Definition(nil), r.defs...)
}

// Keys returns every dataset key in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.defs))
	for i, def := range r.defs {
		keys[i] = def.Key
	}
	return keys
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	return len(r.defs)
}
