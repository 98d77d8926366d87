// SGI FREE SOFTWARE LICENSE B (Version 2.0, Sept. 18, 2008)
// Copyright (C) [dates of first publication] Silicon Graphics, Inc.
// All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice including the dates of first publication and either this
// permission notice or a reference to http://oss.sgi.com/projects/FreeB/ shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED,
// INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A
// PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL SILICON GRAPHICS, INC.
// BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
// TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE
// OR OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name of Silicon Graphics, Inc. shall not
// be used in advertising or otherwise to promote the sale, use or other dealings in
// this Software without prior written authorization from Silicon Graphics, Inc.

package polymesh

import (
	"iter"

	"github.com/pkg/errors"
)

// Tombstoner is implemented by arena values. A value reports whether it is a
// tombstone, and produces the tombstone that replaces it on removal.
type Tombstoner[V any] interface {
	IsDeleted() bool
	DeletedClone() V
}

// Arena is a dense list of values keyed by their index. Removing a value
// leaves a tombstone in its slot so that keys held elsewhere stay valid; a
// tombstoned slot can be brought back with Respawn.
//
// Iteration skips tombstones and costs O(capacity).
type Arena[K ~int, V Tombstoner[V]] struct {
	values []V
	live   int
}

// NewArena returns an empty arena with room for capacity values.
func NewArena[K ~int, V Tombstoner[V]](capacity int) *Arena[K, V] {
	return &Arena[K, V]{
		values: make([]V, 0, capacity),
	}
}

// Add appends value and returns its key. A tombstone value may be added; it
// occupies a slot but is not counted or iterated.
func (a *Arena[K, V]) Add(value V) K {
	k := K(len(a.values))
	a.values = append(a.values, value)
	if !value.IsDeleted() {
		a.live++
	}
	return k
}

// Remove replaces the value at k with its tombstone.
func (a *Arena[K, V]) Remove(k K) error {
	if !a.inRange(k) {
		return errors.Wrapf(ErrNotFound, "polymesh: remove of key %d out of range", int(k))
	}
	v := a.values[k]
	if v.IsDeleted() {
		return errors.Wrapf(ErrDeleted, "polymesh: key %d is already deleted", int(k))
	}
	a.values[k] = v.DeletedClone()
	a.live--
	return nil
}

// Respawn puts a live value back into the tombstoned slot k.
func (a *Arena[K, V]) Respawn(k K, value V) error {
	if !a.inRange(k) {
		return errors.Wrapf(ErrNotFound, "polymesh: respawn of key %d out of range", int(k))
	}
	if !a.values[k].IsDeleted() {
		return errors.Wrapf(ErrNotDeleted, "polymesh: respawn of live key %d", int(k))
	}
	if value.IsDeleted() {
		return errors.Wrapf(ErrInvalidInput, "polymesh: respawn of key %d with a tombstone", int(k))
	}
	a.values[k] = value
	a.live++
	return nil
}

// Contains reports whether k refers to a live value.
func (a *Arena[K, V]) Contains(k K) bool {
	return a.inRange(k) && !a.values[k].IsDeleted()
}

// Get returns the live value at k.
func (a *Arena[K, V]) Get(k K) (V, bool) {
	if !a.Contains(k) {
		var zero V
		return zero, false
	}
	return a.values[k], true
}

// At returns the value stored at k, tombstone or not. It panics if k is out of
// range.
func (a *Arena[K, V]) At(k K) V {
	return a.values[k]
}

// Set overwrites the live value at k.
func (a *Arena[K, V]) Set(k K, value V) error {
	if !a.inRange(k) {
		return errors.Wrapf(ErrNotFound, "polymesh: set of key %d out of range", int(k))
	}
	if a.values[k].IsDeleted() {
		return errors.Wrapf(ErrDeleted, "polymesh: set of deleted key %d", int(k))
	}
	if value.IsDeleted() {
		return errors.Wrapf(ErrInvalidInput, "polymesh: set of key %d to a tombstone", int(k))
	}
	a.values[k] = value
	return nil
}

// put overwrites a slot without any checks. The caller guarantees that k is
// in range and that the live count does not change.
func (a *Arena[K, V]) put(k K, value V) {
	a.values[k] = value
}

// Len returns the number of live values.
func (a *Arena[K, V]) Len() int {
	return a.live
}

// Cap returns the number of slots, live or tombstoned.
func (a *Arena[K, V]) Cap() int {
	return len(a.values)
}

// Keys yields the keys of live values in ascending order.
func (a *Arena[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range a.values {
			if a.values[i].IsDeleted() {
				continue
			}
			if !yield(K(i)) {
				return
			}
		}
	}
}

// Values yields live values in key order.
func (a *Arena[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range a.values {
			if a.values[i].IsDeleted() {
				continue
			}
			if !yield(a.values[i]) {
				return
			}
		}
	}
}

// All yields live key/value pairs in key order.
func (a *Arena[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range a.values {
			if a.values[i].IsDeleted() {
				continue
			}
			if !yield(K(i), a.values[i]) {
				return
			}
		}
	}
}

func (a *Arena[K, V]) inRange(k K) bool {
	return k >= 0 && int(k) < len(a.values)
}
