// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ikmak/typedjson/schema"
)

func TestConvertPrimitive(t *testing.T) {
	num := schema.Primitive(schema.Number)
	str := schema.Primitive(schema.String)
	boolean := schema.Primitive(schema.Boolean)

	t.Run("numeric kinds widen to float64", func(t *testing.T) {
		require.Equal(t, 3.0, convertPrimitive(num, 3))
		require.Equal(t, 3.0, convertPrimitive(num, uint8(3)))
		require.Equal(t, 3.5, convertPrimitive(num, float32(3.5)))
	})

	t.Run("pointers are indirected", func(t *testing.T) {
		v := "hi"
		require.Equal(t, "hi", convertPrimitive(str, &v))
		require.Nil(t, convertPrimitive(str, (*string)(nil)))
	})

	t.Run("string coercion accepts any value", func(t *testing.T) {
		require.Equal(t, "42", convertPrimitive(str, 42))
		require.Equal(t, "true", convertPrimitive(str, true))
	})

	t.Run("values outside the kind class pass through unchanged", func(t *testing.T) {
		require.Equal(t, "not a number", convertPrimitive(num, "not a number"))
		require.Equal(t, 1, convertPrimitive(boolean, 1))
	})

	t.Run("nil passes through", func(t *testing.T) {
		require.Nil(t, convertPrimitive(num, nil))
	})
}
