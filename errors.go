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

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned for malformed input: a degenerate edge or
	// triangle, a face with too few indices, an index out of range.
	ErrInvalidInput = errors.New("polymesh: invalid input")

	// ErrDeleted is returned when an operation needs a live element but finds
	// a tombstone.
	ErrDeleted = errors.New("polymesh: element is deleted")

	// ErrNotDeleted is returned when respawning a live element.
	ErrNotDeleted = errors.New("polymesh: element is not deleted")

	// ErrNotFound is returned when a key or an edge does not exist.
	ErrNotFound = errors.New("polymesh: not found")

	// ErrNonManifold is returned by construction under NonManifoldReject, and
	// by edits that meet a configuration they cannot resolve.
	ErrNonManifold = errors.New("polymesh: non-manifold configuration")

	// ErrInvariant is returned by Check. It means a structural edit left the
	// mesh inconsistent, which is a bug in this package.
	ErrInvariant = errors.New("polymesh: invariant violation")
)

func assert(cond bool) {
	if !cond {
		panic("polymesh: assertion error")
	}
}
