// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"fmt"
	"reflect"

	"github.com/ikmak/typedjson/schema"
)

// Serialize converts an instance of a registered class into an external
// record (a string-keyed map). A slice input is mapped element by element
// and yields a slice of records; nil elements are preserved in place. A nil
// instance yields nil.
//
// When the instance's class declares a discriminator name, the record
// carries it under the Mapper's discriminator property.
func (m *Mapper) Serialize(v interface{}) (interface{}, error) {
	return m.serializeRoot(v, nil)
}

// SerializeAs serializes v using the declared schema of class rather than
// v's runtime class. Properties v's class declares beyond the given class
// are silently omitted, which permits serializing a specialized type under
// its base type's declaration. The class may be an instance, a pointer, or a
// reflect.Type.
func (m *Mapper) SerializeAs(v interface{}, class interface{}) (interface{}, error) {
	t := schema.TypeOf(class)
	if t == nil {
		return nil, schema.ErrNilPrototype
	}
	return m.serializeRoot(v, t)
}

func (m *Mapper) serializeRoot(v interface{}, explicit reflect.Type) (interface{}, error) {
	if isNilValue(v) {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if kind := rv.Kind(); kind == reflect.Slice || kind == reflect.Array {
		elems, _ := arrayElements(v)
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			rec, err := m.serializeRoot(e, explicit)
			if err != nil {
				return nil, err
			}
			out[i] = rec
		}
		return out, nil
	}

	return m.serializeInstance(v, explicit)
}

// serializeInstance walks the effective class's declared properties over one
// instance and emits the external record.
func (m *Mapper) serializeInstance(v interface{}, explicit reflect.Type) (map[string]interface{}, error) {
	t := explicit
	if t == nil {
		t = schema.TypeOf(v)
	}
	cls, ok := m.schemas.Lookup(t)
	if !ok {
		return nil, SchemaNotRegisteredError{Type: t}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot serialize %s as %s, only struct instances carry properties", schema.TypeNameOf(v), t)
	}

	rec := make(map[string]interface{}, len(cls.Properties)+1)
	if cls.Name != "" {
		rec[m.DiscriminatorProperty()] = cls.Name
	}

	for _, p := range cls.Properties {
		fv := rv.FieldByName(p.FieldName)
		if isUnsetField(fv) {
			if p.Optional {
				continue
			}
			// A declared converter is exclusive: a required property's nil
			// still goes through it, mirroring how an explicit null is
			// handed to the converter when deserializing.
			if p.Converter != nil && p.Converter.Serialize != nil {
				out, err := applyConverter(p.Converter.Serialize, p, nil, v)
				if err != nil {
					return nil, err
				}
				rec[p.Name] = out
				continue
			}
			rec[p.Name] = nil
			continue
		}
		out, err := m.serializeValue(p, fv.Interface(), v)
		if err != nil {
			return nil, err
		}
		rec[p.Name] = out
	}
	return rec, nil
}

// serializeValue converts one property value to its external form. Dispatch
// order: converter, array of class, array of primitive, class, inference.
func (m *Mapper) serializeValue(p schema.Property, v interface{}, parent interface{}) (interface{}, error) {
	if p.Converter != nil && p.Converter.Serialize != nil {
		return applyConverter(p.Converter.Serialize, p, v, parent)
	}

	switch {
	case p.Type.IsArray():
		elems, ok := arrayElements(v)
		if !ok {
			return nil, TypeMismatchError{Property: p.Name, Expected: "Array", Actual: schema.TypeNameOf(v)}
		}
		return m.serializeElements(p.Type.Elem(), elems)
	case p.Type.IsClass():
		return m.serializeNested(v, p.Type.Type())
	case p.Type.IsPrimitive():
		return convertPrimitive(p.Type, v), nil
	}
	return m.inferSerialize(v)
}

func (m *Mapper) serializeElements(elem schema.Tag, elems []interface{}) ([]interface{}, error) {
	out := make([]interface{}, len(elems))
	for i, e := range elems {
		if e == nil {
			continue
		}
		switch {
		case elem.IsPrimitive():
			out[i] = convertPrimitive(elem, e)
		case elem.IsClass():
			rec, err := m.serializeNested(e, elem.Type())
			if err != nil {
				return nil, err
			}
			out[i] = rec
		default:
			rec, err := m.inferSerialize(e)
			if err != nil {
				return nil, err
			}
			out[i] = rec
		}
	}
	return out, nil
}

// serializeNested serializes a class-typed value. The element's runtime
// class takes priority so specialized instances emit their own
// discriminators; the declared class is the fallback. Instances of entirely
// undeclared classes pass through as-is rather than erroring, matching how
// plain values behave under inference.
func (m *Mapper) serializeNested(v interface{}, declared reflect.Type) (interface{}, error) {
	if isNilValue(v) {
		return nil, nil
	}
	if runtime := schema.TypeOf(v); runtime != nil && runtime.Kind() == reflect.Struct {
		if cls, ok := m.schemas.Lookup(runtime); ok && (len(cls.Properties) > 0 || cls.Name != "") {
			return m.serializeInstance(v, runtime)
		}
	}
	if declared != nil {
		if _, ok := m.schemas.Lookup(declared); ok {
			return m.serializeInstance(v, declared)
		}
	}
	return v, nil
}

// isUnsetField reports whether a struct field holds no value: the field does
// not exist on the instance, or it is a nil pointer, interface, slice, or
// map. Optional properties with unset fields are omitted from the record.
func isUnsetField(fv reflect.Value) bool {
	if !fv.IsValid() {
		return true
	}
	switch fv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return fv.IsNil()
	}
	return false
}

// isNilValue reports whether v is nil directly or through a nil pointer,
// interface, slice, or map.
func isNilValue(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
