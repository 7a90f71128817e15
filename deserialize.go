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

// Deserialize parses external data into instances resolved purely through
// the discriminator: every record must carry the Mapper's discriminator
// property with a registered string value. A slice input yields a slice of
// instances with nil elements preserved. Raw []byte or string input is
// parsed as JSON first.
//
// It returns ErrDiscriminatorMissing, a DiscriminatorTypeError, or an
// UnknownDiscriminatorError when resolution fails.
func (m *Mapper) Deserialize(data interface{}) (interface{}, error) {
	raw, err := m.decodeRaw(data)
	if err != nil || raw == nil {
		return nil, err
	}

	if elems, ok := raw.([]interface{}); ok {
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			inst, err := m.Deserialize(e)
			if err != nil {
				return nil, err
			}
			out[i] = inst
		}
		return out, nil
	}

	rec, ok := raw.(map[string]interface{})
	if !ok {
		return nil, ErrDiscriminatorMissing
	}
	dv, present := rec[m.DiscriminatorProperty()]
	if !present {
		return nil, ErrDiscriminatorMissing
	}
	name, ok := dv.(string)
	if !ok {
		return nil, DiscriminatorTypeError{Actual: schema.TypeNameOf(dv)}
	}
	t, registered := m.types.Lookup(name)
	if !registered {
		return nil, UnknownDiscriminatorError{Name: name}
	}
	return m.populate(rec, t)
}

// DeserializeNamed resolves the target class from its registered name and
// deserializes data into it. It returns an UnregisteredNameError when no
// class is registered under name.
func (m *Mapper) DeserializeNamed(data interface{}, name string) (interface{}, error) {
	t, ok := m.types.Lookup(name)
	if !ok {
		return nil, UnregisteredNameError{Name: name}
	}
	return m.DeserializeAs(data, t)
}

// DeserializeAs parses external data into an instance of the given class. A
// slice input is mapped element by element with the same class; nil elements
// are preserved. Raw []byte or string input is parsed as JSON first.
//
// When the data carries the discriminator property and its value names a
// registered class, that class is used even when it disagrees with the
// class supplied here: the discriminator always wins. The explicit class is
// only a fallback for records that carry no resolvable discriminator. This
// mirrors how polymorphic payloads are serialized and is intentional; pass
// data without a discriminator property if the explicit class must be
// authoritative.
func (m *Mapper) DeserializeAs(data interface{}, class interface{}) (interface{}, error) {
	t := schema.TypeOf(class)
	if t == nil {
		return nil, schema.ErrNilPrototype
	}

	raw, err := m.decodeRaw(data)
	if err != nil || raw == nil {
		return nil, err
	}

	if elems, ok := raw.([]interface{}); ok {
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			inst, err := m.DeserializeAs(e, t)
			if err != nil {
				return nil, err
			}
			out[i] = inst
		}
		return out, nil
	}

	rec, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("cannot deserialize %s into %s, expected an Object", schema.TypeNameOf(raw), t)
	}
	return m.deserializeRecord(rec, t)
}

// DeserializeSlice parses a list of external records into instances, using
// each record's discriminator when it names a registered class and falling
// back to base otherwise. The result can mix concrete types. Nil elements
// are preserved in place.
func (m *Mapper) DeserializeSlice(data interface{}, base interface{}) ([]interface{}, error) {
	baseT := schema.TypeOf(base)
	if baseT == nil {
		return nil, schema.ErrNilPrototype
	}

	raw, err := m.decodeRaw(data)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	elems, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("cannot deserialize %s into a list of %s, expected an Array", schema.TypeNameOf(raw), baseT)
	}

	out := make([]interface{}, len(elems))
	for i, e := range elems {
		if e == nil {
			continue
		}
		rec, ok := e.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot deserialize %s element into %s, expected an Object", schema.TypeNameOf(e), baseT)
		}
		inst, err := m.deserializeRecord(rec, baseT)
		if err != nil {
			return nil, err
		}
		out[i] = inst
	}
	return out, nil
}

// deserializeRecord applies the discriminator-wins rule to one record and
// populates the resolved class.
func (m *Mapper) deserializeRecord(rec map[string]interface{}, t reflect.Type) (interface{}, error) {
	if name, ok := rec[m.DiscriminatorProperty()].(string); ok {
		if rt, registered := m.types.Lookup(name); registered {
			t = rt
		}
	}
	return m.populate(rec, t)
}

// populate constructs a new instance of t and fills its declared properties
// from rec: presence check, validation, conversion, assignment, in that
// order per property.
func (m *Mapper) populate(rec map[string]interface{}, t reflect.Type) (interface{}, error) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, InstantiationError{Type: t}
	}
	cls, ok := m.schemas.Lookup(t)
	if !ok {
		return nil, SchemaNotRegisteredError{Type: t}
	}

	pv := reflect.New(t)
	inst := pv.Interface()
	sv := pv.Elem()

	for _, p := range cls.Properties {
		raw, present := rec[p.Name]
		if !present {
			if p.Optional {
				continue
			}
			return nil, MissingPropertyError{Property: p.Name}
		}
		if err := validateValue(p, raw); err != nil {
			return nil, err
		}
		val, err := m.deserializeValue(p, raw, inst)
		if err != nil {
			return nil, err
		}
		field := sv.FieldByName(p.FieldName)
		if !field.IsValid() {
			return nil, fmt.Errorf("%s has no field %q for property %q", t, p.FieldName, p.Name)
		}
		if err := assignProperty(p, field, val); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// deserializeValue converts one external value to its in-memory form.
// Dispatch order matches serializeValue: converter, array of class, array of
// primitive, class, inference.
func (m *Mapper) deserializeValue(p schema.Property, raw interface{}, parent interface{}) (interface{}, error) {
	if p.Converter != nil && p.Converter.Deserialize != nil {
		return applyConverter(p.Converter.Deserialize, p, raw, parent)
	}

	switch {
	case p.Type.IsArray():
		elems, _ := arrayElements(raw)
		return m.deserializeElements(p, p.Type.Elem(), elems, parent)
	case p.Type.IsClass():
		if rec, ok := raw.(map[string]interface{}); ok {
			return m.deserializeRecord(rec, p.Type.Type())
		}
		// Already-constructed instances pass through when deserializing
		// in-memory data.
		return raw, nil
	case p.Type.IsPrimitive():
		return convertPrimitive(p.Type, raw), nil
	}
	return m.inferDeserialize(raw)
}

func (m *Mapper) deserializeElements(p schema.Property, elem schema.Tag, elems []interface{}, parent interface{}) ([]interface{}, error) {
	out := make([]interface{}, len(elems))
	for i, e := range elems {
		if e == nil {
			continue
		}
		switch {
		case elem.IsPrimitive():
			out[i] = convertPrimitive(elem, e)
		case elem.IsClass():
			rec, ok := e.(map[string]interface{})
			if !ok {
				return nil, TypeMismatchError{Property: p.Name, Expected: elem.String(), Actual: schema.TypeNameOf(e)}
			}
			inst, err := m.deserializeRecord(rec, elem.Type())
			if err != nil {
				return nil, err
			}
			out[i] = inst
		default:
			inst, err := m.inferDeserialize(e)
			if err != nil {
				return nil, err
			}
			out[i] = inst
		}
	}
	return out, nil
}

// assignProperty stores a deserialized value into the instance field backing
// the property, applying standard Go conversions where the in-memory field
// type differs from the canonical wire representation.
func assignProperty(p schema.Property, field reflect.Value, val interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field %q for property %q is not settable", p.FieldName, p.Name)
	}
	if val == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	return setValue(p, field, reflect.ValueOf(val))
}

func setValue(p schema.Property, dst reflect.Value, src reflect.Value) error {
	for src.Kind() == reflect.Interface {
		src = src.Elem()
	}
	if !src.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	dt := dst.Type()
	if src.Type().AssignableTo(dt) {
		dst.Set(src)
		return nil
	}

	// Instances are constructed as pointers; deref when the field wants the
	// value, and take a pointer when the field wants one.
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			dst.Set(reflect.Zero(dt))
			return nil
		}
		if src.Type().Elem().AssignableTo(dt) {
			dst.Set(src.Elem())
			return nil
		}
	}
	if dt.Kind() == reflect.Ptr && src.Type().AssignableTo(dt.Elem()) {
		pv := reflect.New(dt.Elem())
		pv.Elem().Set(src)
		dst.Set(pv)
		return nil
	}

	if convertibleKinds(src.Kind(), dt.Kind()) && src.Type().ConvertibleTo(dt) {
		dst.Set(src.Convert(dt))
		return nil
	}

	if dt.Kind() == reflect.Slice {
		if elems, ok := src.Interface().([]interface{}); ok {
			out := reflect.MakeSlice(dt, len(elems), len(elems))
			for i, e := range elems {
				if e == nil {
					continue
				}
				if err := setValue(p, out.Index(i), reflect.ValueOf(e)); err != nil {
					return err
				}
			}
			dst.Set(out)
			return nil
		}
	}

	return TypeMismatchError{Property: p.Name, Expected: dt.String(), Actual: schema.TypeNameOf(src.Interface())}
}

// convertibleKinds restricts reflect conversions to within a kind class, so
// numeric wire values convert to any numeric field but never to a string
// field (Go would otherwise permit int-to-string rune conversions).
func convertibleKinds(src, dst reflect.Kind) bool {
	return kindClass(src) != 0 && kindClass(src) == kindClass(dst)
}

func kindClass(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return 1
	case reflect.String:
		return 2
	case reflect.Bool:
		return 3
	}
	return 0
}
