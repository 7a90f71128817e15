// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// ParseStructTags derives a Class declaration from `typedjson` struct tags.
//
// The tag format is:
//
//	`typedjson:"<name>[,optional]"`
//
// An example:
//
//	type Product struct {
//		ID    string   `typedjson:"product_id"`
//		Price float64  `typedjson:"price"`
//		Note  *string  `typedjson:"note,optional"`
//		Tags  []string `typedjson:"tags,optional"`
//		cache []byte
//	}
//
// External names are always explicit: fields without a typedjson tag, with a
// tag of "-", and unexported fields are skipped rather than named after the
// field. A tag with flags but no name (`typedjson:",optional"`) is an error.
//
// The type tag is inferred from the Go field type: string kinds declare
// String, numeric kinds declare Number, bool declares Boolean, structs and
// pointers to structs declare a class reference, and slices and arrays
// declare an array of the element's inferred tag. Interface-typed fields are
// left unspecified and flow through structural inference.
//
// The derived class carries no discriminator name; set one with
// Registry.SetClassName or declare the schema with a Builder when the class
// participates in polymorphic resolution.
func ParseStructTags(prototype interface{}) (*Class, error) {
	t := TypeOf(prototype)
	if t == nil {
		return nil, ErrNilPrototype
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("cannot parse struct tags of %s, it is not a struct type", t)
	}

	b := NewBuilder()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		tag, ok := sf.Tag.Lookup("typedjson")
		if !ok || tag == "-" {
			continue
		}

		name := tag
		optional := false
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			name = tag[:idx]
			for _, flag := range strings.Split(tag[idx+1:], ",") {
				switch flag {
				case "optional":
					optional = true
				case "":
				default:
					return nil, errors.Errorf("unknown typedjson tag flag %q on field %s of %s", flag, sf.Name, t)
				}
			}
		}
		if name == "" {
			return nil, errors.Errorf("typedjson tag on field %s of %s must carry an external name", sf.Name, t)
		}

		b.Prop(Property{
			FieldName: sf.Name,
			Name:      name,
			Type:      tagForType(sf.Type, true),
			Optional:  optional,
		})
	}
	return b.Build(), nil
}

// tagForType infers the declared tag for a Go type. Arrays recurse one level
// only; deeper nesting is left unspecified and handled by inference.
func tagForType(t reflect.Type, nested bool) Tag {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return Primitive(String)
	case reflect.Bool:
		return Primitive(Boolean)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Primitive(Number)
	case reflect.Struct:
		return ClassOf(t)
	case reflect.Slice, reflect.Array:
		if !nested {
			return Tag{}
		}
		return Array(tagForType(t.Elem(), false))
	}
	return Tag{}
}
