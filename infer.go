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

// Structural inference handles properties that declare no type tag. It
// classifies raw values by shape alone, so correctness is best-effort: the
// path exists for declaring code that omitted a tag, not as a substitute for
// declarations. It can be disabled entirely through
// options.Mapper().SetStructuralInference(false), in which case untyped
// values pass through unchanged in both directions.

// inferSerialize serializes a value with no declarative help. Instances of
// registered classes serialize as records, arrays map element by element,
// maps recurse into their values, and everything else passes through
// unchanged.
func (m *Mapper) inferSerialize(v interface{}) (interface{}, error) {
	if isNilValue(v) || !m.structuralInference() {
		return v, nil
	}

	if t := schema.TypeOf(v); t != nil && t.Kind() == reflect.Struct {
		if cls, ok := m.schemas.Lookup(t); ok && (len(cls.Properties) > 0 || cls.Name != "") {
			return m.serializeInstance(v, t)
		}
		return v, nil
	}

	if rec, ok := v.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(rec))
		for k, fv := range rec {
			inferred, err := m.inferSerialize(fv)
			if err != nil {
				return nil, err
			}
			out[k] = inferred
		}
		return out, nil
	}

	if elems, ok := arrayElements(v); ok {
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			inferred, err := m.inferSerialize(e)
			if err != nil {
				return nil, err
			}
			out[i] = inferred
		}
		return out, nil
	}

	return v, nil
}

// inferDeserialize reconstructs a value with no declared type. Objects
// carrying the active discriminator property deserialize as the named class
// when it is registered; other objects are rebuilt field by field; arrays
// map element by element; all other values pass through unchanged.
func (m *Mapper) inferDeserialize(raw interface{}) (interface{}, error) {
	if raw == nil || !m.structuralInference() {
		return raw, nil
	}

	switch data := raw.(type) {
	case []interface{}:
		out := make([]interface{}, len(data))
		for i, e := range data {
			inferred, err := m.inferDeserialize(e)
			if err != nil {
				return nil, err
			}
			out[i] = inferred
		}
		return out, nil
	case map[string]interface{}:
		if name, ok := data[m.DiscriminatorProperty()].(string); ok {
			if t, registered := m.types.Lookup(name); registered {
				return m.populate(data, t)
			}
		}
		out := make(map[string]interface{}, len(data))
		for k, fv := range data {
			inferred, err := m.inferDeserialize(fv)
			if err != nil {
				return nil, err
			}
			out[k] = inferred
		}
		return out, nil
	}
	return raw, nil
}
