// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// This file defines the value containers that accumulate records while a
// declaration is open.

package metadata

import "slices"

// List accumulates zero or more records of one kind in insertion order.
// Records are neither deduplicated nor validated.
type List[T any] struct {
	items    []T
	declared bool
}

// Add appends one record and returns the list for chaining.
func (l *List[T]) Add(item T) *List[T] {
	l.declared = true
	l.items = append(l.items, item)
	return l
}

// Snapshot returns a copy of the records. An undeclared list yields nil and
// a declared but empty list yields a non-nil empty slice.
func (l *List[T]) Snapshot() []T {
	if !l.declared {
		return nil
	}
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) declare() { l.declared = true }

// replace swaps the whole content, used when a group is set from a slice.
func (l *List[T]) replace(items []T) {
	l.declared = true
	l.items = slices.Clone(items)
}

// Singleton holds at most one record; every Set replaces the previous one.
type Singleton[T comparable] struct {
	value *T
}

// Set replaces the current value.
func (s *Singleton[T]) Set(v T) *Singleton[T] {
	s.value = &v
	return s
}

// Snapshot returns a copy of the current value, or nil when unset or when
// the stored record has no field set.
func (s *Singleton[T]) Snapshot() *T {
	var zero T
	if s.value == nil || *s.value == zero {
		return nil
	}
	v := *s.value
	return &v
}
