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
	"github.com/golang/geo/r3"
)

// RenderData is a mesh flattened for drawing. Vertices and Normals are
// indexed by VertexRef and sized to the highest live vertex; slots of
// deleted vertices are zero and no index refers to them. FaceIndices holds
// three indices per triangle and EdgeIndices two per edge.
type RenderData struct {
	Vertices    []r3.Vector
	Normals     []r3.Vector
	FaceIndices []int
	EdgeIndices []int
	Bounds      AABB
}

func newRenderData(vertexSlots int) *RenderData {
	return &RenderData{
		Vertices: make([]r3.Vector, vertexSlots),
		Normals:  make([]r3.Vector, vertexSlots),
		Bounds:   EmptyAABB(),
	}
}

func (r *RenderData) setVertex(v VertexRef, p, n r3.Vector) {
	r.Vertices[v] = p
	r.Normals[v] = n
	r.Bounds = r.Bounds.AddPoint(p)
}

func vertexSlots[V Tombstoner[V]](vs *Arena[VertexRef, V]) int {
	n := 0
	for v := range vs.Keys() {
		n = int(v) + 1
	}
	return n
}

// RenderData flattens m. Vertex normals are the mean of the face normals
// around each vertex, and polygons are fanned into triangles.
func (m *HalfedgeMesh) RenderData() *RenderData {
	r := newRenderData(vertexSlots(m.vertices))
	for v, vx := range m.vertices.All() {
		r.setVertex(v, vx.Position, m.VertexNormal(v))
	}
	var corners []VertexRef
	for f := range m.faces.Keys() {
		corners = corners[:0]
		for v := range m.EnumerateVertices(f) {
			corners = append(corners, v)
		}
		for i := 1; i+1 < len(corners); i++ {
			r.FaceIndices = append(r.FaceIndices, int(corners[0]), int(corners[i]), int(corners[i+1]))
		}
	}
	for e := range m.Edges() {
		r.EdgeIndices = append(r.EdgeIndices, int(e.V1), int(e.V2))
	}
	return r
}

// FaceNormal returns the unit normal of f.
func (m *HalfedgeMesh) FaceNormal(f FaceRef) r3.Vector {
	var ps []r3.Vector
	for v := range m.EnumerateVertices(f) {
		ps = append(ps, m.Position(v))
	}
	return PolygonNormal(ps)
}

// VertexNormal returns the mean normal of the faces around v's one-ring.
func (m *HalfedgeMesh) VertexNormal(v VertexRef) r3.Vector {
	var ns []r3.Vector
	for f := range m.EnumerateFaces(v) {
		ns = append(ns, m.FaceNormal(f))
	}
	return averageNormal(ns)
}

// RenderData flattens m using the normals stored on its vertices.
func (m *SimpleMesh) RenderData() *RenderData {
	r := newRenderData(vertexSlots(m.vertices))
	for v, vx := range m.vertices.All() {
		r.setVertex(v, vx.Position, vx.Normal)
	}
	seen := map[IndexedEdge]bool{}
	for _, t := range m.faces.All() {
		vs := t.Vertices()
		r.FaceIndices = append(r.FaceIndices, int(vs[0]), int(vs[1]), int(vs[2]))
		for _, e := range t.Edges() {
			if seen[e] {
				continue
			}
			seen[e] = true
			r.EdgeIndices = append(r.EdgeIndices, int(e.V1), int(e.V2))
		}
	}
	return r
}
