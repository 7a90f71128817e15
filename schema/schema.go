// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package schema holds the declarative metadata the typedjson engines run
// on: per-class property descriptors, type tags, and the registry that maps
// Go struct types to their declarations.
//
// Declarations are explicit and eager. A class participates in
// (de)serialization only after its schema is registered, either property by
// property via Registry.AddProperty, in bulk via a Builder, or derived from
// `typedjson` struct tags with ParseStructTags.
package schema

// Context is passed to every converter invocation. Parent is the instance
// containing the property being converted; during deserialization it is the
// partially populated target instance. Property is the external name of the
// property.
type Context struct {
	Parent   interface{}
	Property string
}

// ConverterFunc converts a single value in one direction.
type ConverterFunc func(ctx Context, value interface{}) (interface{}, error)

// Converter is a pair of user-supplied functions that fully override default
// type-based conversion for one property. When a property carries both a
// type tag and a converter, the converter takes precedence and its output is
// never re-validated or coerced. For array-valued properties the converter
// is applied element by element; nil elements are passed through unchanged.
type Converter struct {
	Serialize   ConverterFunc
	Deserialize ConverterFunc
}

// Property describes one declared property of a class.
//
// Name, the external wire name, is always explicit and never derived from
// FieldName. FieldName is the Go struct field the property maps to.
type Property struct {
	FieldName string
	Name      string
	Type      Tag
	Optional  bool
	Converter *Converter
}

// Class is the full declaration for one struct type: an optional
// discriminator name and the ordered property list. Property order is the
// declaration order; it affects only iteration, not correctness.
type Class struct {
	Name       string
	Properties []Property
}

// Property returns the descriptor with the given internal field name.
func (c *Class) Property(fieldName string) (Property, bool) {
	for _, p := range c.Properties {
		if p.FieldName == fieldName {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyByName returns the descriptor with the given external name.
func (c *Class) PropertyByName(name string) (Property, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
