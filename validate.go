// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"reflect"

	"github.com/ikmak/typedjson/schema"
)

// validateValue checks that a raw external value's runtime shape matches the
// property's declared type tag. It runs before conversion.
//
// Unspecified tags and nil values always pass: the inference path trusts the
// data, and nullability is the presence check's concern, not the
// validator's. Array tags require only an array shape here; element-level
// mismatches surface during conversion so errors stay localized to the
// element that produced them.
func validateValue(p schema.Property, raw interface{}) error {
	if p.Type.IsUnspecified() || raw == nil {
		return nil
	}

	switch {
	case p.Type.IsArray():
		if !isArrayValue(raw) {
			return TypeMismatchError{Property: p.Name, Expected: "Array", Actual: schema.TypeNameOf(raw)}
		}
	case p.Type.IsClass():
		if !isObjectValue(raw) {
			return TypeMismatchError{Property: p.Name, Expected: p.Type.String(), Actual: schema.TypeNameOf(raw)}
		}
	default:
		if actual := schema.TypeNameOf(raw); actual != p.Type.String() {
			return TypeMismatchError{Property: p.Name, Expected: p.Type.String(), Actual: actual}
		}
	}
	return nil
}

func isArrayValue(v interface{}) bool {
	if _, ok := v.([]interface{}); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isObjectValue(v interface{}) bool {
	if _, ok := v.(map[string]interface{}); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	}
	return false
}
