// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNilPrototype is returned when a registry operation is given a nil
// prototype.
var ErrNilPrototype = errors.New("cannot resolve a class from <nil>")

// A Registry stores class declarations keyed by struct type. All methods are
// safe for concurrent use. Declarations are append-only; there is no
// eviction. A fresh Registry is the reset operation.
type Registry struct {
	mu      sync.RWMutex
	classes map[reflect.Type]*classEntry
}

type classEntry struct {
	name    string
	props   []Property
	byField map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[reflect.Type]*classEntry)}
}

func (r *Registry) entryLocked(t reflect.Type) *classEntry {
	e, ok := r.classes[t]
	if !ok {
		e = &classEntry{byField: make(map[string]int)}
		r.classes[t] = e
	}
	return e
}

func (r *Registry) resolve(prototype interface{}) (reflect.Type, error) {
	t := TypeOf(prototype)
	if t == nil {
		return nil, ErrNilPrototype
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot register a schema for %s, only struct types carry declarations", t)
	}
	return t, nil
}

// AddProperty registers one property descriptor for the prototype's class.
// Registration is idempotent per internal field name: adding a descriptor
// for a field name that is already declared is a no-op and the first
// registration is kept.
func (r *Registry) AddProperty(prototype interface{}, p Property) error {
	t, err := r.resolve(prototype)
	if err != nil {
		return err
	}
	if p.FieldName == "" || p.Name == "" {
		return fmt.Errorf("property for %s must carry both a field name and an external name", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(t)
	if _, exists := e.byField[p.FieldName]; exists {
		return nil
	}
	e.byField[p.FieldName] = len(e.props)
	e.props = append(e.props, p)
	return nil
}

// Properties returns the ordered property descriptors declared for the
// prototype's class. Classes with no declarations yield an empty slice, not
// an error. The returned slice is a copy.
func (r *Registry) Properties(prototype interface{}) []Property {
	t := TypeOf(prototype)
	if t == nil {
		return []Property{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.classes[t]
	if !ok {
		return []Property{}
	}
	props := make([]Property, len(e.props))
	copy(props, e.props)
	return props
}

// SetClassName sets the discriminator name under which the prototype's class
// serializes.
func (r *Registry) SetClassName(prototype interface{}, name string) error {
	t, err := r.resolve(prototype)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryLocked(t).name = name
	return nil
}

// ClassName returns the discriminator name for the prototype's class. The
// second return value is false when the class never declared one.
func (r *Registry) ClassName(prototype interface{}) (string, bool) {
	t := TypeOf(prototype)
	if t == nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.classes[t]
	if !ok || e.name == "" {
		return "", false
	}
	return e.name, true
}

// Register stores a complete class declaration for the prototype. Property
// registration follows AddProperty semantics, so duplicate field names in
// cls keep their first occurrence, as do fields already declared for the
// type.
func (r *Registry) Register(prototype interface{}, cls *Class) error {
	t, err := r.resolve(prototype)
	if err != nil {
		return err
	}
	if cls == nil {
		return fmt.Errorf("cannot register a nil class declaration for %s", t)
	}
	for _, p := range cls.Properties {
		if p.FieldName == "" || p.Name == "" {
			return fmt.Errorf("property for %s must carry both a field name and an external name", t)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(t)
	if cls.Name != "" {
		e.name = cls.Name
	}
	for _, p := range cls.Properties {
		if _, exists := e.byField[p.FieldName]; exists {
			continue
		}
		e.byField[p.FieldName] = len(e.props)
		e.props = append(e.props, p)
	}
	return nil
}

// Lookup returns a snapshot of the declaration for the prototype's class.
// The snapshot is detached from the registry; later registrations do not
// mutate it.
func (r *Registry) Lookup(prototype interface{}) (*Class, bool) {
	t := TypeOf(prototype)
	if t == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.classes[t]
	if !ok {
		return nil, false
	}
	props := make([]Property, len(e.props))
	copy(props, e.props)
	return &Class{Name: e.name, Properties: props}, true
}
