// Package collection holds the pure cache transforms applied to cached
// resource collections. Every mutation a resource service performs on its
// cache goes through one of these, so reconciliation behavior is testable
// without any service wiring.
package collection

// Keyed is any record addressable by its numeric id.
type Keyed interface {
	Key() int64
}

// Append returns the list with created added at the end. New records always
// go to the tail regardless of any natural ordering the domain implies.
func Append[T Keyed](list []T, created T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, created)
}

// Replace returns the list with the entry matching updated's key swapped for
// updated. It is a mapping transform: untouched entries keep their value and
// position exactly, and the length never changes. If no entry matches, the
// list is returned unchanged (still a fresh slice).
func Replace[T Keyed](list []T, updated T) []T {
	out := make([]T, len(list))
	for i, item := range list {
		if item.Key() == updated.Key() {
			out[i] = updated
		} else {
			out[i] = item
		}
	}
	return out
}

// Remove returns the list without the entry matching key, preserving the
// order of the remainder.
func Remove[T Keyed](list []T, key int64) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if item.Key() != key {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the entry matching key, if present.
func Find[T Keyed](list []T, key int64) (T, bool) {
	for _, item := range list {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}
