// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package slice complements the standard [slices] package with the few generic
helpers the stores and handlers share.
*/
package slice

// Map maps a slice of type T to a slice of type U. A nil input yields an empty, non-nil slice.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Take returns at most the first n elements of input.
func Take[T any](input []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(input) > n {
		return input[:n]
	}
	return input
}

// Values dereferences every element. The result is never nil.
func Values[T any](input []*T) []T {
	return Map(input, func(p *T) T { return *p })
}
