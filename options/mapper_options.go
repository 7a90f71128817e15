// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package options defines the optional configuration for constructing a
// typedjson Mapper.
package options

// MapperOptions represents all possible options for constructing a Mapper.
type MapperOptions struct {
	// DiscriminatorProperty is the external field name carrying the
	// discriminator. Defaults to "$type".
	DiscriminatorProperty *string

	// StructuralInference specifies whether values of properties with no
	// declared type tag are classified structurally. When disabled such
	// values pass through unchanged. Defaults to true.
	StructuralInference *bool
}

// Mapper creates a new *MapperOptions.
func Mapper() *MapperOptions {
	return &MapperOptions{}
}

// SetDiscriminatorProperty sets the external field name carrying the
// discriminator. Defaults to "$type".
func (m *MapperOptions) SetDiscriminatorProperty(name string) *MapperOptions {
	m.DiscriminatorProperty = &name
	return m
}

// SetStructuralInference specifies whether values of properties with no
// declared type tag are classified structurally. Defaults to true.
func (m *MapperOptions) SetStructuralInference(b bool) *MapperOptions {
	m.StructuralInference = &b
	return m
}

// MergeMapperOptions combines the given *MapperOptions into a single
// *MapperOptions in a last one wins fashion.
func MergeMapperOptions(opts ...*MapperOptions) *MapperOptions {
	merged := Mapper()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.DiscriminatorProperty != nil {
			merged.DiscriminatorProperty = opt.DiscriminatorProperty
		}
		if opt.StructuralInference != nil {
			merged.StructuralInference = opt.StructuralInference
		}
	}
	return merged
}
