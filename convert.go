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

// convertPrimitive coerces a raw value to the canonical representation of
// the declared primitive kind: string, float64, or bool. It coerces, it does
// not validate; shape checking happens in validateValue before conversion
// reaches this point. Nil passes through unchanged.
//
// String coercion accepts any value via fmt. Number and Boolean coerce only
// from kinds of their own class; a value outside it passes through unchanged
// rather than failing, so an in-memory value whose Go type contradicts its
// declared tag surfaces as-is in the record.
func convertPrimitive(tag schema.Tag, raw interface{}) interface{} {
	if raw == nil {
		return nil
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch tag.Kind() {
	case schema.String:
		if rv.Kind() == reflect.String {
			return rv.String()
		}
		return fmt.Sprint(rv.Interface())
	case schema.Number:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return rv.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint())
		}
		return rv.Interface()
	case schema.Boolean:
		if rv.Kind() == reflect.Bool {
			return rv.Bool()
		}
		return rv.Interface()
	}
	return raw
}

// applyConverter routes a property's value through its user-supplied
// converter. Array values are mapped element by element with nil elements
// passed through unchanged; scalar values are converted directly. Every call
// receives a Context carrying the containing instance and the external
// property name. Converter output is final: it is never re-validated or
// coerced.
func applyConverter(fn schema.ConverterFunc, p schema.Property, v interface{}, parent interface{}) (interface{}, error) {
	ctx := schema.Context{Parent: parent, Property: p.Name}

	elems, ok := arrayElements(v)
	if !ok {
		return fn(ctx, v)
	}
	out := make([]interface{}, len(elems))
	for i, e := range elems {
		if e == nil {
			continue
		}
		converted, err := fn(ctx, e)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

// arrayElements normalizes an array-shaped value to []interface{}. Nil
// slice/array elements (nil pointers, nil interfaces) become untyped nils.
func arrayElements(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if elems, ok := v.([]interface{}); ok {
		return elems, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	elems := make([]interface{}, rv.Len())
	for i := range elems {
		ev := rv.Index(i)
		switch ev.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			if ev.IsNil() {
				continue
			}
		}
		elems[i] = ev.Interface()
	}
	return elems, true
}
