// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal serializes v and encodes the resulting record as JSON bytes.
func (m *Mapper) Marshal(v interface{}) ([]byte, error) {
	rec, err := m.Serialize(v)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode serialized record")
	}
	return buf, nil
}

// MarshalAs serializes v under the given class's declaration and encodes the
// result as JSON bytes.
func (m *Mapper) MarshalAs(v interface{}, class interface{}) ([]byte, error) {
	rec, err := m.SerializeAs(v, class)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode serialized record")
	}
	return buf, nil
}

// MarshalIndent is Marshal with human-readable formatting.
func (m *Mapper) MarshalIndent(v interface{}) ([]byte, error) {
	buf, err := m.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(buf), nil
}

// Unmarshal decodes JSON bytes and deserializes them into an instance of
// class, honoring discriminators the same way DeserializeAs does.
func (m *Mapper) Unmarshal(data []byte, class interface{}) (interface{}, error) {
	return m.DeserializeAs(data, class)
}

// decodeRaw normalizes external input: []byte and string inputs are parsed
// as JSON text, everything else is taken as already-parsed data. A parse
// failure is reported as a MalformedInputError wrapping the parser's error.
func (m *Mapper) decodeRaw(data interface{}) (interface{}, error) {
	var buf []byte
	switch d := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		buf = d
	case jsoniter.RawMessage:
		buf = d
	case string:
		buf = []byte(d)
	default:
		return data, nil
	}

	var v interface{}
	if err := json.Unmarshal(buf, &v); err != nil {
		return nil, MalformedInputError{Err: err}
	}
	return v, nil
}
