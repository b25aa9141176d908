// Package transform provides pure helpers for immutable map manipulation.
//
// None of the helpers modify their inputs. Maps handed to them are treated as
// immutable snapshots; callers get a fresh map back whenever something changed.
package transform

import "reflect"

// Same reports whether a and b are the same map value, not merely equal.
func Same[K comparable, V any](a, b map[K]V) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}

// Omitting returns a shallow copy of m without key k. If k is not present,
// m itself is returned so callers can detect the no-op by identity.
func Omitting[K comparable, V any](m map[K]V, k K) map[K]V {
	if _, ok := m[k]; !ok {
		return m
	}
	out := make(map[K]V, len(m)-1)
	for key, v := range m {
		if key != k {
			out[key] = v
		}
	}
	return out
}

// Replacing returns a shallow copy of m with k set to v.
func Replacing[K comparable, V any](m map[K]V, k K, v V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for key, val := range m {
		out[key] = val
	}
	out[k] = v
	return out
}

// FromSlice builds a map by calling fn on every item to obtain its key and
// value. Later items win on duplicate keys.
func FromSlice[T any, K comparable, V any](items []T, fn func(T) (K, V)) map[K]V {
	out := make(map[K]V, len(items))
	for _, item := range items {
		k, v := fn(item)
		out[k] = v
	}
	return out
}

// SetDifference returns the members of a that are not in b, in a's order and
// without duplicates.
func SetDifference[T comparable](a, b []T) []T {
	exclude := make(map[T]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}
	seen := make(map[T]struct{}, len(a))
	var out []T
	for _, v := range a {
		if _, skip := exclude[v]; skip {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
