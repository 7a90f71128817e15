// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"
)

func TestMarshal(t *testing.T) {
	t.Run("encodes the serialized record", func(t *testing.T) {
		m := newShapeMapper(t)
		got, err := m.Marshal(&Circle{ID: "c1", Radius: 2.5})
		require.NoError(t, err)
		require.JSONEq(t, `{"$type":"Circle","id":"c1","radius":2.5}`, string(got))
	})

	t.Run("list input encodes as a JSON array", func(t *testing.T) {
		m := newShapeMapper(t)
		got, err := m.Marshal([]Shape{Circle{ID: "c1", Radius: 1}, Rectangle{ID: "r1", Width: 2, Height: 3}})
		require.NoError(t, err)
		require.JSONEq(t, `[
			{"$type":"Circle","id":"c1","radius":1},
			{"$type":"Rectangle","id":"r1","width":2,"height":3}
		]`, string(got))
	})

	t.Run("MarshalAs uses the explicit class", func(t *testing.T) {
		m := newShapeMapper(t)
		got, err := m.MarshalAs(&Circle{ID: "c1", Radius: 1}, Circle{})
		require.NoError(t, err)
		require.JSONEq(t, `{"$type":"Circle","id":"c1","radius":1}`, string(got))
	})

	t.Run("serialization errors propagate", func(t *testing.T) {
		type unknown struct{ A string }
		m := newShapeMapper(t)
		_, err := m.Marshal(&unknown{})
		var snr SchemaNotRegisteredError
		require.ErrorAs(t, err, &snr)
	})
}

func TestMarshalIndent(t *testing.T) {
	m := newShapeMapper(t)
	indented, err := m.MarshalIndent(&Circle{ID: "c1", Radius: 2.5})
	require.NoError(t, err)

	compact, err := m.Marshal(&Circle{ID: "c1", Radius: 2.5})
	require.NoError(t, err)

	require.NotEqual(t, string(compact), string(indented))
	require.Equal(t, string(compact), string(pretty.Ugly(indented)))
}

func TestUnmarshal(t *testing.T) {
	t.Run("round trips through bytes", func(t *testing.T) {
		m := newShapeMapper(t)
		buf, err := m.Marshal(&Rectangle{ID: "r1", Width: 2, Height: 3})
		require.NoError(t, err)

		got, err := m.Unmarshal(buf, Rectangle{})
		require.NoError(t, err)
		require.Equal(t, &Rectangle{ID: "r1", Width: 2, Height: 3}, got)
	})

	t.Run("malformed bytes", func(t *testing.T) {
		m := newShapeMapper(t)
		_, err := m.Unmarshal([]byte(`{"id":`), Rectangle{})
		var mie MalformedInputError
		require.ErrorAs(t, err, &mie)
	})
}
