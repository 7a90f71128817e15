// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/ikmak/typedjson/schema"
)

// A TypeRegistry maps discriminator names to concrete Go types. It is used
// only during deserialization, when the target class is not explicitly
// known. It is never populated automatically: a class takes part in
// polymorphic resolution only after an explicit Register call, even when its
// schema carries a discriminator name. All methods are safe for concurrent
// use.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeRegistry creates an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]reflect.Type)}
}

// Register maps name to the prototype's type. Registering a name twice
// overwrites the earlier mapping.
func (r *TypeRegistry) Register(name string, prototype interface{}) error {
	if name == "" {
		return fmt.Errorf("cannot register a class under an empty name")
	}
	t := schema.TypeOf(prototype)
	if t == nil {
		return schema.ErrNilPrototype
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
	return nil
}

// Lookup returns the type registered under name.
func (r *TypeRegistry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Unregister removes the mapping for name. Unknown names are a no-op.
func (r *TypeRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, name)
}

// Names returns the registered discriminator names in sorted order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes every registered mapping.
func (r *TypeRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]reflect.Type)
}
