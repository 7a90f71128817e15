// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type registryTestClass struct {
	ID    string
	Count int
}

func TestRegistry(t *testing.T) {
	t.Run("AddProperty", func(t *testing.T) {
		t.Run("stores in declaration order", func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID", Name: "id", Type: Primitive(String)}))
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "Count", Name: "count", Type: Primitive(Number)}))

			got := r.Properties(registryTestClass{})
			want := []Property{
				{FieldName: "ID", Name: "id", Type: Primitive(String)},
				{FieldName: "Count", Name: "count", Type: Primitive(Number)},
			}
			if diff := cmp.Diff(want, got, cmpTags); diff != "" {
				t.Errorf("properties mismatch (-want +got):\n%s", diff)
			}
		})
		t.Run("duplicate field name keeps first registration", func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID", Name: "id", Type: Primitive(String)}))
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID", Name: "identifier", Type: Primitive(Number)}))

			got := r.Properties(registryTestClass{})
			require.Len(t, got, 1)
			require.Equal(t, "id", got[0].Name)
			require.Equal(t, "String", got[0].Type.String())
		})
		t.Run("rejects incomplete descriptors", func(t *testing.T) {
			r := NewRegistry()
			require.Error(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID"}))
			require.Error(t, r.AddProperty(registryTestClass{}, Property{Name: "id"}))
		})
		t.Run("rejects non-struct prototypes", func(t *testing.T) {
			r := NewRegistry()
			require.Error(t, r.AddProperty("a string", Property{FieldName: "ID", Name: "id"}))
			require.ErrorIs(t, r.AddProperty(nil, Property{FieldName: "ID", Name: "id"}), ErrNilPrototype)
		})
	})

	t.Run("Properties", func(t *testing.T) {
		t.Run("unknown class yields empty slice", func(t *testing.T) {
			r := NewRegistry()
			got := r.Properties(registryTestClass{})
			require.NotNil(t, got)
			require.Empty(t, got)
		})
		t.Run("returns a copy", func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID", Name: "id"}))
			got := r.Properties(registryTestClass{})
			got[0].Name = "mutated"
			require.Equal(t, "id", r.Properties(registryTestClass{})[0].Name)
		})
	})

	t.Run("ClassName", func(t *testing.T) {
		r := NewRegistry()
		_, ok := r.ClassName(registryTestClass{})
		require.False(t, ok)

		require.NoError(t, r.SetClassName(registryTestClass{}, "RegistryTest"))
		name, ok := r.ClassName(registryTestClass{})
		require.True(t, ok)
		require.Equal(t, "RegistryTest", name)
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("bulk declaration", func(t *testing.T) {
			r := NewRegistry()
			cls := NewBuilder().
				Named("RegistryTest").
				String("ID", "id").
				Number("Count", "count").Optional().
				Build()
			require.NoError(t, r.Register(registryTestClass{}, cls))

			got, ok := r.Lookup(registryTestClass{})
			require.True(t, ok)
			require.Equal(t, "RegistryTest", got.Name)
			require.Len(t, got.Properties, 2)
			require.True(t, got.Properties[1].Optional)
		})
		t.Run("existing fields keep first registration", func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID", Name: "id"}))
			require.NoError(t, r.Register(registryTestClass{}, NewBuilder().String("ID", "identifier").Number("Count", "count").Build()))

			props := r.Properties(registryTestClass{})
			require.Len(t, props, 2)
			require.Equal(t, "id", props[0].Name)
		})
	})

	// Run with -race.
	t.Run("concurrent declaration and lookup", func(t *testing.T) {
		r := NewRegistry()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(3)
			go func(n int) {
				defer wg.Done()
				err := r.AddProperty(registryTestClass{}, Property{
					FieldName: fmt.Sprintf("F%d", n),
					Name:      fmt.Sprintf("f%d", n),
				})
				if err != nil {
					t.Error(err)
				}
			}(i)
			go func() {
				defer wg.Done()
				_ = r.Properties(registryTestClass{})
			}()
			go func() {
				defer wg.Done()
				_, _ = r.Lookup(registryTestClass{})
			}()
		}
		wg.Wait()
		require.Len(t, r.Properties(registryTestClass{}), 10)
	})

	t.Run("Lookup", func(t *testing.T) {
		t.Run("snapshot is detached", func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "ID", Name: "id"}))
			snap, ok := r.Lookup(registryTestClass{})
			require.True(t, ok)

			require.NoError(t, r.AddProperty(registryTestClass{}, Property{FieldName: "Count", Name: "count"}))
			require.Len(t, snap.Properties, 1)
			require.Len(t, r.Properties(registryTestClass{}), 2)
		})
		t.Run("unknown class", func(t *testing.T) {
			r := NewRegistry()
			_, ok := r.Lookup(registryTestClass{})
			require.False(t, ok)
		})
	})
}

func TestClassPropertyLookup(t *testing.T) {
	cls := NewBuilder().String("ID", "product_id").Number("Count", "count").Build()

	p, ok := cls.Property("ID")
	require.True(t, ok)
	require.Equal(t, "product_id", p.Name)

	p, ok = cls.PropertyByName("count")
	require.True(t, ok)
	require.Equal(t, "Count", p.FieldName)

	_, ok = cls.Property("Missing")
	require.False(t, ok)
	_, ok = cls.PropertyByName("missing")
	require.False(t, ok)
}
