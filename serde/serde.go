// Package serde provides small generic serialization capabilities and a JSON
// implementation on top of encoding/json.
package serde

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrParse is reported when input text cannot be decoded.
var ErrParse = errors.New("malformed input")

// Serializer renders a value of type T to its textual representation.
type Serializer[T any] interface {
	Serialize(v T) (string, error)
}

// SerializerFunc adapts a function to the Serializer interface.
type SerializerFunc[T any] func(v T) (string, error)

func (fn SerializerFunc[T]) Serialize(v T) (string, error) { return fn(v) }

// Deserializer decodes textual representation into a value of type T.
type Deserializer[T any] interface {
	Deserialize(text string) (T, error)
}

// DeserializerFunc adapts a function to the Deserializer interface.
type DeserializerFunc[T any] func(text string) (T, error)

func (fn DeserializerFunc[T]) Deserialize(text string) (T, error) { return fn(text) }

// JSON is a serde over encoding/json. The type parameter carries the behavior
// set of the decoded value: deserializing into a concrete type yields a value
// with that type's full method set.
type JSON[T any] struct{}

// Serialize returns the JSON text of v. Object key order is whatever
// encoding/json produces (struct field order, sorted map keys).
func (JSON[T]) Serialize(v T) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("unable to serialize value: %w", err)
	}
	return string(data), nil
}

// Deserialize parses text into a value of type T. Fields present in the text
// but absent from T are dropped, fields absent from the text keep their zero
// values.
func (JSON[T]) Deserialize(text string) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return v, nil
}

// Serialize is a convenience wrapper over JSON[T].Serialize.
func Serialize[T any](v T) (string, error) {
	return JSON[T]{}.Serialize(v)
}

// Deserialize is a convenience wrapper over JSON[T].Deserialize.
func Deserialize[T any](text string) (T, error) {
	return JSON[T]{}.Deserialize(text)
}
