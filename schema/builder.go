// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

// A Builder assembles a Class declaration fluently. This type is not
// goroutine safe.
//
//	cls := schema.NewBuilder().
//		Named("Circle").
//		String("ID", "id").
//		Number("Radius", "radius").
//		Build()
//
// Optional and WithConverter modify the most recently added property.
type Builder struct {
	name  string
	props []Property
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Named sets the discriminator name the class serializes under.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Prop appends a fully specified property descriptor.
func (b *Builder) Prop(p Property) *Builder {
	b.props = append(b.props, p)
	return b
}

// String appends a String-tagged property.
func (b *Builder) String(fieldName, name string) *Builder {
	return b.Prop(Property{FieldName: fieldName, Name: name, Type: Primitive(String)})
}

// Number appends a Number-tagged property.
func (b *Builder) Number(fieldName, name string) *Builder {
	return b.Prop(Property{FieldName: fieldName, Name: name, Type: Primitive(Number)})
}

// Boolean appends a Boolean-tagged property.
func (b *Builder) Boolean(fieldName, name string) *Builder {
	return b.Prop(Property{FieldName: fieldName, Name: name, Type: Primitive(Boolean)})
}

// Object appends a class-referencing property.
func (b *Builder) Object(fieldName, name string, prototype interface{}) *Builder {
	return b.Prop(Property{FieldName: fieldName, Name: name, Type: ClassOf(prototype)})
}

// Array appends an array-tagged property with the given element tag.
func (b *Builder) Array(fieldName, name string, elem Tag) *Builder {
	return b.Prop(Property{FieldName: fieldName, Name: name, Type: Array(elem)})
}

// Untyped appends a property with no declared type; its values go through
// structural inference.
func (b *Builder) Untyped(fieldName, name string) *Builder {
	return b.Prop(Property{FieldName: fieldName, Name: name})
}

// Optional marks the most recently added property optional. It is a no-op
// on an empty builder.
func (b *Builder) Optional() *Builder {
	if len(b.props) > 0 {
		b.props[len(b.props)-1].Optional = true
	}
	return b
}

// WithConverter attaches a converter to the most recently added property.
// It is a no-op on an empty builder.
func (b *Builder) WithConverter(c *Converter) *Builder {
	if len(b.props) > 0 {
		b.props[len(b.props)-1].Converter = c
	}
	return b
}

// Build returns the assembled declaration. Duplicate internal field names
// keep their first occurrence, matching Registry.AddProperty semantics.
func (b *Builder) Build() *Class {
	seen := make(map[string]struct{}, len(b.props))
	props := make([]Property, 0, len(b.props))
	for _, p := range b.props {
		if _, dup := seen[p.FieldName]; dup {
			continue
		}
		seen[p.FieldName] = struct{}{}
		props = append(props, p)
	}
	return &Class{Name: b.name, Properties: props}
}
