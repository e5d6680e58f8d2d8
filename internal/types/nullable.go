package types

import "github.com/oapi-codegen/nullable"

// Value returns the decoded value and true when the key was present with a
// non-null value.
func Value[T any](n nullable.Nullable[T]) (T, bool) {
	v, err := n.Get()
	return v, err == nil
}

// Ptr is nil for an omitted or null key.
func Ptr[T any](n nullable.Nullable[T]) *T {
	v, ok := Value(n)

	if !ok {
		return nil
	}

	return &v
}
