// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"reflect"
	"sync"

	"github.com/ikmak/typedjson/options"
	"github.com/ikmak/typedjson/schema"
)

// DefaultDiscriminatorProperty is the external field name carrying the
// discriminator unless a Mapper is configured otherwise.
const DefaultDiscriminatorProperty = "$type"

// A Mapper is the serialization context. It owns a schema registry, a type
// registry for polymorphic resolution, and the discriminator configuration.
// Callers create one Mapper, register their classes on it, and pass it into
// every (de)serialization call site; constructing a fresh Mapper is the
// reset operation. Mappers are safe for concurrent use once registration is
// complete.
type Mapper struct {
	schemas *schema.Registry
	types   *TypeRegistry

	mu            sync.RWMutex
	discriminator string
	inference     bool
}

// NewMapper creates a Mapper with empty registries.
func NewMapper(opts ...*options.MapperOptions) *Mapper {
	opt := options.MergeMapperOptions(opts...)
	m := &Mapper{
		schemas:       schema.NewRegistry(),
		types:         NewTypeRegistry(),
		discriminator: DefaultDiscriminatorProperty,
		inference:     true,
	}
	if opt.DiscriminatorProperty != nil && *opt.DiscriminatorProperty != "" {
		m.discriminator = *opt.DiscriminatorProperty
	}
	if opt.StructuralInference != nil {
		m.inference = *opt.StructuralInference
	}
	return m
}

// Schemas returns the Mapper's schema registry, for property-level
// registration.
func (m *Mapper) Schemas() *schema.Registry { return m.schemas }

// RegisterSchema stores a complete class declaration for the prototype.
func (m *Mapper) RegisterSchema(prototype interface{}, cls *schema.Class) error {
	return m.schemas.Register(prototype, cls)
}

// RegisterStruct derives the prototype's declaration from `typedjson` struct
// tags and registers it. See schema.ParseStructTags for the tag format. The
// derived declaration carries no discriminator name.
func (m *Mapper) RegisterStruct(prototype interface{}) error {
	cls, err := schema.ParseStructTags(prototype)
	if err != nil {
		return err
	}
	return m.schemas.Register(prototype, cls)
}

// RegisterType makes the prototype's type resolvable under name during
// discriminator-driven deserialization.
func (m *Mapper) RegisterType(name string, prototype interface{}) error {
	return m.types.Register(name, prototype)
}

// RegisterTypes registers each prototype under its schema's discriminator
// name. Prototypes whose schema carries no discriminator name are silently
// skipped. It returns the number of types registered.
func (m *Mapper) RegisterTypes(prototypes ...interface{}) int {
	registered := 0
	for _, prototype := range prototypes {
		name, ok := m.schemas.ClassName(prototype)
		if !ok {
			continue
		}
		if err := m.types.Register(name, prototype); err == nil {
			registered++
		}
	}
	return registered
}

// RegisteredType returns the type registered under name.
func (m *Mapper) RegisteredType(name string) (reflect.Type, bool) {
	return m.types.Lookup(name)
}

// ClearTypeRegistry removes every name-to-type mapping. Schema declarations
// are unaffected.
func (m *Mapper) ClearTypeRegistry() {
	m.types.Clear()
}

// SetDiscriminatorProperty changes the external field name carrying the
// discriminator. The change affects every subsequent call on this Mapper.
// An empty name is ignored.
func (m *Mapper) SetDiscriminatorProperty(name string) {
	if name == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discriminator = name
}

// DiscriminatorProperty returns the external field name carrying the
// discriminator.
func (m *Mapper) DiscriminatorProperty() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.discriminator
}

func (m *Mapper) structuralInference() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inference
}
