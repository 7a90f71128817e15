// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"reflect"
)

// Kind identifies a primitive wire type.
type Kind byte

// The primitive kinds a property can declare.
const (
	String Kind = iota + 1
	Number
	Boolean
)

// String returns the human-readable name for the kind. These names appear in
// type mismatch errors.
func (k Kind) String() string {
	switch k {
	case String:
		return "String"
	case Number:
		return "Number"
	case Boolean:
		return "Boolean"
	}
	return "Unspecified"
}

// Tag is the declared expected shape of a property's value. It is a closed
// variant over {Unspecified, Primitive(Kind), ClassOf(type), Array(elem)}. The
// zero value is Unspecified, which routes the property through structural
// inference instead of declared-type handling.
//
// Arrays carry exactly one element tag and classification recurses one level
// only; an array tag whose element is itself an array is handled by inference.
type Tag struct {
	kind  Kind
	class reflect.Type
	elem  *Tag
}

// Primitive returns a Tag declaring a primitive kind.
func Primitive(k Kind) Tag {
	return Tag{kind: k}
}

// ClassOf returns a Tag referencing another registered class. The prototype
// may be an instance, a pointer to an instance, or a reflect.Type.
func ClassOf(prototype interface{}) Tag {
	t := TypeOf(prototype)
	if t == nil {
		return Tag{}
	}
	return Tag{class: t}
}

// Array returns a Tag declaring a homogeneous array of elem.
func Array(elem Tag) Tag {
	return Tag{elem: &elem}
}

// IsUnspecified reports whether the tag declares nothing. Malformed tags
// (for example a class tag built from a nil prototype) classify as
// unspecified rather than erroring.
func (t Tag) IsUnspecified() bool {
	return t.kind == 0 && t.class == nil && t.elem == nil
}

// IsPrimitive reports whether the tag declares a primitive kind.
func (t Tag) IsPrimitive() bool { return t.kind != 0 }

// IsClass reports whether the tag references a class.
func (t Tag) IsClass() bool { return t.class != nil }

// IsArray reports whether the tag declares an array.
func (t Tag) IsArray() bool { return t.elem != nil }

// Kind returns the declared primitive kind, or zero if the tag is not
// primitive.
func (t Tag) Kind() Kind { return t.kind }

// Type returns the referenced class type, or nil if the tag is not a class
// reference.
func (t Tag) Type() reflect.Type { return t.class }

// Elem returns the element tag of an array tag. For non-array tags it
// returns the unspecified tag.
func (t Tag) Elem() Tag {
	if t.elem == nil {
		return Tag{}
	}
	return *t.elem
}

// String returns the name used for this tag in error messages.
func (t Tag) String() string {
	switch {
	case t.IsPrimitive():
		return t.kind.String()
	case t.IsArray():
		return "Array"
	case t.IsClass():
		return t.class.Name()
	}
	return "Unspecified"
}

// TypeOf normalizes a prototype to the struct (or other underlying) type it
// describes. Pointers are indirected; a reflect.Type is used as given after
// indirection. A nil prototype yields nil.
func TypeOf(prototype interface{}) reflect.Type {
	if prototype == nil {
		return nil
	}
	t, ok := prototype.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(prototype)
	}
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// TypeNameOf returns the runtime category name of a raw value, matching the
// names declared tags use. It backs the "actual" half of type mismatch
// errors.
func TypeNameOf(v interface{}) string {
	if v == nil {
		return "Null"
	}
	switch v.(type) {
	case string:
		return "String"
	case bool:
		return "Boolean"
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "Number"
	case []interface{}:
		return "Array"
	case map[string]interface{}:
		return "Object"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return "String"
	case reflect.Bool:
		return "Boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "Number"
	case reflect.Slice, reflect.Array:
		return "Array"
	case reflect.Map, reflect.Struct:
		return "Object"
	case reflect.Ptr:
		if rv.IsNil() {
			return "Null"
		}
		return TypeNameOf(rv.Elem().Interface())
	}
	return rv.Type().String()
}
