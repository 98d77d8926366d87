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
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Halfedge is one directed side of an edge. Vertex is the destination, Face
// is the face on the left or NoFace on a boundary.
type Halfedge struct {
	Vertex VertexRef
	Face   FaceRef
	Next   HalfedgeRef
}

func (h Halfedge) IsDeleted() bool { return h.Vertex.IsNone() }

func (h Halfedge) DeletedClone() Halfedge {
	return Halfedge{Vertex: NoVertex, Face: h.Face, Next: h.Next}
}

func (h Halfedge) String() string {
	return fmt.Sprintf("v: %v f: %v n: %v", h.Vertex, h.Face, h.Next)
}

// HalfedgeVertex is a vertex of a HalfedgeMesh. Member is one of the
// halfedges pointing at the vertex.
type HalfedgeVertex struct {
	Position r3.Vector
	Member   HalfedgeRef
}

func (v HalfedgeVertex) IsDeleted() bool { return v.Member.IsNone() }

func (v HalfedgeVertex) DeletedClone() HalfedgeVertex {
	return HalfedgeVertex{Position: v.Position, Member: NoHalfedge}
}

// HalfedgeFace is a face of a HalfedgeMesh. Member is one of the halfedges of
// its cycle.
type HalfedgeFace struct {
	Member HalfedgeRef
}

func (f HalfedgeFace) IsDeleted() bool { return f.Member.IsNone() }

func (f HalfedgeFace) DeletedClone() HalfedgeFace {
	return HalfedgeFace{Member: NoHalfedge}
}

// IndexedEdge is an undirected edge with V1 < V2.
type IndexedEdge struct {
	V1, V2 VertexRef
}

// NewIndexedEdge returns the canonical edge between a and b. Both must be
// real vertices.
func NewIndexedEdge(a, b VertexRef) (IndexedEdge, error) {
	if a.IsNone() || b.IsNone() {
		return IndexedEdge{}, errors.Wrapf(ErrInvalidInput, "polymesh: edge (%v, %v) has no vertex", a, b)
	}
	if a == b {
		return IndexedEdge{}, errors.Wrapf(ErrInvalidInput, "polymesh: degenerate edge (%v, %v)", a, b)
	}
	return edgeOf(a, b), nil
}

// edgeOf is NewIndexedEdge for callers that already know a != b.
func edgeOf(a, b VertexRef) IndexedEdge {
	assert(a != b)
	if b < a {
		a, b = b, a
	}
	return IndexedEdge{V1: a, V2: b}
}

// Contains reports whether v is an endpoint of e.
func (e IndexedEdge) Contains(v VertexRef) bool {
	return e.V1 == v || e.V2 == v
}

// Other returns the endpoint of e that is not v.
func (e IndexedEdge) Other(v VertexRef) VertexRef {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

func (e IndexedEdge) String() string {
	return fmt.Sprintf("(%v, %v)", e.V1, e.V2)
}

// IndexedTriangle is a face of a SimpleMesh.
type IndexedTriangle struct {
	v [3]VertexRef
}

// NewIndexedTriangle returns the triangle a, b, c. All three vertices must
// differ. Three none refs make the deleted triangle.
func NewIndexedTriangle(a, b, c VertexRef) (IndexedTriangle, error) {
	if a.IsNone() && b.IsNone() && c.IsNone() {
		return IndexedTriangle{}.DeletedClone(), nil
	}
	if a.IsNone() || b.IsNone() || c.IsNone() {
		return IndexedTriangle{}, errors.Wrapf(ErrInvalidInput, "polymesh: triangle (%v, %v, %v) has no vertex", a, b, c)
	}
	if a == b || a == c || b == c {
		return IndexedTriangle{}, errors.Wrapf(ErrInvalidInput, "polymesh: invalid triangle (%v, %v, %v)", a, b, c)
	}
	return IndexedTriangle{v: [3]VertexRef{a, b, c}}, nil
}

func (t IndexedTriangle) IsDeleted() bool {
	return t.v[0].IsNone() && t.v[1].IsNone() && t.v[2].IsNone()
}

func (t IndexedTriangle) DeletedClone() IndexedTriangle {
	return IndexedTriangle{v: [3]VertexRef{NoVertex, NoVertex, NoVertex}}
}

// Vertices returns the three corners in order.
func (t IndexedTriangle) Vertices() [3]VertexRef {
	return t.v
}

// HasVertex reports whether v is a corner of t.
func (t IndexedTriangle) HasVertex(v VertexRef) bool {
	return t.v[0] == v || t.v[1] == v || t.v[2] == v
}

// ReplaceVertex returns t with old replaced by repl. It fails if repl is
// already a corner or old is not.
func (t IndexedTriangle) ReplaceVertex(old, repl VertexRef) (IndexedTriangle, error) {
	if repl.IsNone() {
		return t, errors.Wrap(ErrInvalidInput, "polymesh: replacement is none")
	}
	if t.HasVertex(repl) {
		return t, errors.Wrapf(ErrInvalidInput, "polymesh: triangle already contains vertex %v", repl)
	}
	for i := range t.v {
		if t.v[i] == old {
			t.v[i] = repl
			return t, nil
		}
	}
	return t, errors.Wrapf(ErrNotFound, "polymesh: triangle does not contain vertex %v", old)
}

// Edges returns the edges (v0,v1), (v1,v2) and (v2,v0).
func (t IndexedTriangle) Edges() [3]IndexedEdge {
	return [3]IndexedEdge{
		edgeOf(t.v[0], t.v[1]),
		edgeOf(t.v[1], t.v[2]),
		edgeOf(t.v[2], t.v[0]),
	}
}

func (t IndexedTriangle) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.v[0], t.v[1], t.v[2])
}

// VertexWithFaceBindings is a vertex of a SimpleMesh. ConnectedFaces lists
// every face using the vertex, in the order they were attached.
type VertexWithFaceBindings struct {
	Position       r3.Vector
	Normal         r3.Vector
	ConnectedFaces []FaceRef
	Deleted        bool
}

func (v VertexWithFaceBindings) IsDeleted() bool { return v.Deleted }

func (v VertexWithFaceBindings) DeletedClone() VertexWithFaceBindings {
	v.Deleted = true
	return v
}

// Clone returns a copy of v that does not share ConnectedFaces.
func (v VertexWithFaceBindings) Clone() VertexWithFaceBindings {
	faces := make([]FaceRef, len(v.ConnectedFaces))
	copy(faces, v.ConnectedFaces)
	v.ConnectedFaces = faces
	return v
}
