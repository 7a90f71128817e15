// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ikmak/typedjson/schema"
)

// Shape is the polymorphic base used across the engine tests.
type Shape interface {
	Area() float64
}

type Circle struct {
	ID     string
	Radius float64
}

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

type Rectangle struct {
	ID     string
	Width  float64
	Height float64
}

func (r Rectangle) Area() float64 { return r.Width * r.Height }

type Product struct {
	ID     string
	Price  float64
	Active bool
	Note   *string
}

// newShapeMapper declares Circle and Rectangle under base Shape and
// registers both for discriminator resolution.
func newShapeMapper(t *testing.T) *Mapper {
	t.Helper()
	m := NewMapper()
	require.NoError(t, m.RegisterSchema(Circle{}, schema.NewBuilder().
		Named("Circle").
		String("ID", "id").
		Number("Radius", "radius").
		Build()))
	require.NoError(t, m.RegisterSchema(Rectangle{}, schema.NewBuilder().
		Named("Rectangle").
		String("ID", "id").
		Number("Width", "width").
		Number("Height", "height").
		Build()))
	require.Equal(t, 2, m.RegisterTypes(Circle{}, Rectangle{}))
	return m
}

// newProductMapper declares a non-polymorphic class with a custom-named
// required property and an optional one.
func newProductMapper(t *testing.T) *Mapper {
	t.Helper()
	m := NewMapper()
	require.NoError(t, m.RegisterSchema(Product{}, schema.NewBuilder().
		String("ID", "product_id").
		Number("Price", "price").
		Boolean("Active", "active").
		String("Note", "note").Optional().
		Build()))
	return m
}

func strptr(s string) *string { return &s }
