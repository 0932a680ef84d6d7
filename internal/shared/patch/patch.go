// Package patch models partial-update fields where an absent key, an explicit
// JSON null and a value mean three different things.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state request field: not sent, sent as null (clear), or sent
// with a value.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a Field carrying v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that clears the stored value.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key is present, including for null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// HasValue reports whether the field was sent with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Apply merges the field onto the current optional value.
func (f Field[T]) Apply(current *T) *T {
	if !f.Set {
		return current
	}
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Ptr returns the value as an optional, nil when not sent or null.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}
