// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package typedjson converts registered Go struct instances to plain JSON
// data and back, driven entirely by declared per-class schemas: explicit
// wire names, declared value types, optional-field semantics, custom
// converters, and runtime type discrimination across polymorphic type sets.
//
// All state lives on a Mapper, the serialization context. Create one, attach
// class declarations, and use it everywhere; a fresh Mapper is a clean
// slate.
//
//	m := typedjson.NewMapper()
//	err := m.RegisterSchema(Circle{}, schema.NewBuilder().
//		Named("Circle").
//		String("ID", "id").
//		Number("Radius", "radius").
//		Build())
//
// Serialize walks the declared properties and produces a
// map[string]interface{} record under the declared external names; Marshal
// additionally encodes it to JSON bytes.
//
//	rec, err := m.Serialize(&Circle{ID: "c1", Radius: 2})
//	// map[$type:Circle id:c1 radius:2]
//
// Classes that should resolve from data at run time register their
// discriminator name in the type registry. Deserialization then picks the
// concrete class from the record's discriminator property ("$type" unless
// configured otherwise):
//
//	m.RegisterTypes(Circle{}, Rectangle{})
//	shapes, err := m.DeserializeSlice(payload, (*Shape)(nil))
//
// Declarations can also be derived from struct tags when no polymorphism is
// involved:
//
//	type Product struct {
//		ID    string  `typedjson:"product_id"`
//		Price float64 `typedjson:"price"`
//		Note  *string `typedjson:"note,optional"`
//	}
//	err := m.RegisterStruct(Product{})
//
// Wire names are always explicit, never derived from field names. Required
// properties missing from incoming data, values whose shape disagrees with
// the declared type, and unresolvable discriminators all surface as typed
// errors; see errors.go.
package typedjson
