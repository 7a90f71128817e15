// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type builderTestNested struct {
	Label string
}

func TestBuilder(t *testing.T) {
	t.Run("assembles declarations in order", func(t *testing.T) {
		got := NewBuilder().
			Named("BuilderTest").
			String("ID", "id").
			Number("Count", "count").Optional().
			Boolean("Active", "active").
			Object("Nested", "nested", builderTestNested{}).
			Array("Tags", "tags", Primitive(String)).
			Untyped("Meta", "meta").
			Build()

		want := &Class{
			Name: "BuilderTest",
			Properties: []Property{
				{FieldName: "ID", Name: "id", Type: Primitive(String)},
				{FieldName: "Count", Name: "count", Type: Primitive(Number), Optional: true},
				{FieldName: "Active", Name: "active", Type: Primitive(Boolean)},
				{FieldName: "Nested", Name: "nested", Type: ClassOf(builderTestNested{})},
				{FieldName: "Tags", Name: "tags", Type: Array(Primitive(String))},
				{FieldName: "Meta", Name: "meta"},
			},
		}
		if diff := cmp.Diff(want, got, cmpTags); diff != "" {
			t.Errorf("class mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicate field names keep first occurrence", func(t *testing.T) {
		got := NewBuilder().
			String("ID", "id").
			Number("ID", "identifier").
			Build()
		require.Len(t, got.Properties, 1)
		require.Equal(t, "id", got.Properties[0].Name)
	})

	t.Run("WithConverter attaches to last property", func(t *testing.T) {
		conv := &Converter{
			Serialize: func(ctx Context, v interface{}) (interface{}, error) {
				return strings.ToUpper(v.(string)), nil
			},
		}
		got := NewBuilder().
			String("ID", "id").
			String("Code", "code").WithConverter(conv).
			Build()
		require.Nil(t, got.Properties[0].Converter)
		require.Same(t, conv, got.Properties[1].Converter)
	})

	t.Run("modifiers on empty builder are no-ops", func(t *testing.T) {
		got := NewBuilder().Optional().WithConverter(&Converter{}).Build()
		require.Empty(t, got.Properties)
	})
}
