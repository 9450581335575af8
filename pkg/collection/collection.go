// Package collection provides generic slice helpers.
//
//	names := collection.Map(users, func(u models.User) string { return u.Name })
//	mine := collection.Filter(carts, func(c models.CartItem) bool { return c.Email == email })
package collection

import "sort"

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true. The result is
// never nil, so it encodes as [] rather than null.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reject is the inverse of Filter.
func Reject[T any](s []T, fn func(T) bool) []T {
	return Filter(s, func(v T) bool { return !fn(v) })
}

// KeyBy indexes s by the key fn produces. Later elements win on collision.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// Set returns the distinct elements of s as a membership map.
func Set[T comparable](s []T) map[T]bool {
	out := make(map[T]bool, len(s))
	for _, v := range s {
		out[v] = true
	}
	return out
}

// SortBy returns a stably sorted copy of s.
func SortBy[T any](s []T, less func(a, b T) bool) []T {
	out := make([]T, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
