// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package typedjson

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrDiscriminatorMissing is returned by discriminator-driven
// deserialization when the data carries no discriminator property.
var ErrDiscriminatorMissing = errors.New("data carries no discriminator property")

// TypeMismatchError is returned when an external value's runtime shape
// disagrees with the property's declared type tag.
type TypeMismatchError struct {
	Property string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("property %q expected %s, got %s", e.Property, e.Expected, e.Actual)
}

// MissingPropertyError is returned when a required property's external field
// is absent from the data being deserialized.
type MissingPropertyError struct {
	Property string
}

func (e MissingPropertyError) Error() string {
	return fmt.Sprintf("required property %q is missing", e.Property)
}

// UnregisteredNameError is returned when name-based target resolution finds
// no registered class.
type UnregisteredNameError struct {
	Name string
}

func (e UnregisteredNameError) Error() string {
	return fmt.Sprintf("no class registered under name %q", e.Name)
}

// UnknownDiscriminatorError is returned when the data's discriminator value
// names no registered class.
type UnknownDiscriminatorError struct {
	Name string
}

func (e UnknownDiscriminatorError) Error() string {
	return fmt.Sprintf("discriminator %q names no registered class", e.Name)
}

// DiscriminatorTypeError is returned when a discriminator field is present
// but its value is not a string.
type DiscriminatorTypeError struct {
	Actual string
}

func (e DiscriminatorTypeError) Error() string {
	return fmt.Sprintf("discriminator property must be a String, got %s", e.Actual)
}

// SchemaNotRegisteredError is returned when (de)serialization targets a type
// with no registered schema. Schemas are registered explicitly; there is no
// lazy discovery.
type SchemaNotRegisteredError struct {
	Type reflect.Type
}

func (e SchemaNotRegisteredError) Error() string {
	return fmt.Sprintf("no schema registered for %s", e.Type)
}

// InstantiationError is returned when a resolved class cannot be
// constructed, for example an interface base type reached without a
// discriminator naming a concrete class.
type InstantiationError struct {
	Type reflect.Type
}

func (e InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %s", e.Type)
}

// MalformedInputError wraps a parse failure of raw JSON input. The
// underlying parser error is available via Unwrap.
type MalformedInputError struct {
	Err error
}

func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %v", e.Err)
}

// Unwrap returns the underlying parser error.
func (e MalformedInputError) Unwrap() error { return e.Err }
