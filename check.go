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
	"github.com/pkg/errors"
)

// Check verifies the structure of m and returns an error wrapping
// ErrInvariant for the first violation found.
//
// Every live face must have a live member whose cycle closes and stays on
// the face. Every live vertex must have a live member pointing at it. Every
// live halfedge must have a live opposite, a live next that leaves its
// destination, a live or absent face shared with its next, and must be the
// next of exactly one halfedge.
func (m *HalfedgeMesh) Check() error {
	limit := m.halfedges.Cap()

	for f, fc := range m.faces.All() {
		if !m.isLive(fc.Member) {
			return errors.Wrapf(ErrInvariant, "polymesh: face %v has dead member %v", f, fc.Member)
		}
		h := fc.Member
		for steps := 0; ; steps++ {
			if steps > limit {
				return errors.Wrapf(ErrInvariant, "polymesh: cycle of face %v does not close", f)
			}
			he, ok := m.halfedges.Get(h)
			if !ok {
				return errors.Wrapf(ErrInvariant, "polymesh: cycle of face %v reaches dead halfedge %v", f, h)
			}
			if he.Face != f {
				return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v in cycle of face %v belongs to %v", h, f, he.Face)
			}
			h = he.Next
			if h == fc.Member {
				break
			}
		}
	}

	for v, vx := range m.vertices.All() {
		he, ok := m.halfedges.Get(vx.Member)
		if !ok {
			return errors.Wrapf(ErrInvariant, "polymesh: vertex %v has dead member %v", v, vx.Member)
		}
		if he.Vertex != v {
			return errors.Wrapf(ErrInvariant, "polymesh: member %v of vertex %v points at %v", vx.Member, v, he.Vertex)
		}
	}

	valence := make([]int, len(m.valence))
	prevs := make([]int, limit)
	for h, he := range m.halfedges.All() {
		if !m.vertices.Contains(he.Vertex) {
			return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v points at dead vertex %v", h, he.Vertex)
		}
		valence[he.Vertex]++
		if !m.isLive(h ^ 1) {
			return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v has dead opposite", h)
		}
		if !he.Face.IsNone() && !m.faces.Contains(he.Face) {
			return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v has dead face %v", h, he.Face)
		}
		next, ok := m.halfedges.Get(he.Next)
		if !ok {
			return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v has dead next %v", h, he.Next)
		}
		if m.halfedges.At(he.Next^1).Vertex != he.Vertex {
			return errors.Wrapf(ErrInvariant, "polymesh: next %v of halfedge %v does not leave %v", he.Next, h, he.Vertex)
		}
		if next.Face != he.Face {
			return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v and its next %v lie on faces %v and %v", h, he.Next, he.Face, next.Face)
		}
		prevs[he.Next]++
	}
	for h := range m.halfedges.Keys() {
		if prevs[h] != 1 {
			return errors.Wrapf(ErrInvariant, "polymesh: halfedge %v is the next of %d halfedges", h, prevs[h])
		}
	}
	for v := range valence {
		if valence[v] != m.valence[v] {
			return errors.Wrapf(ErrInvariant, "polymesh: vertex %d has valence %d, counted %d", v, m.valence[v], valence[v])
		}
		if m.vertices.Contains(VertexRef(v)) && valence[v] == 0 {
			return errors.Wrapf(ErrInvariant, "polymesh: vertex %d is isolated", v)
		}
	}
	return nil
}
