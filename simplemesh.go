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
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// SimpleMesh is a triangle mesh where every vertex lists the faces using it.
// It is the working copy of the simplifier: edits return an
// OperationSnapshot that RevertChanges undoes exactly.
type SimpleMesh struct {
	vertices *Arena[VertexRef, VertexWithFaceBindings]
	faces    *Arena[FaceRef, IndexedTriangle]
}

// NewSimpleMesh builds a SimpleMesh from data. Every face must be a
// triangle. Vertices used by no face stay live until CleanVertices. Without
// normals in data, vertex normals are computed from the faces.
func NewSimpleMesh(data *MeshData) (*SimpleMesh, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	m := &SimpleMesh{
		vertices: NewArena[VertexRef, VertexWithFaceBindings](len(data.Vertices)),
		faces:    NewArena[FaceRef, IndexedTriangle](data.Faces.Len()),
	}
	for i, p := range data.Vertices {
		vx := VertexWithFaceBindings{Position: p}
		if i < len(data.Normals) {
			vx.Normal = data.Normals[i]
		}
		m.vertices.Add(vx)
	}
	for fi, face := range data.Faces.All() {
		if len(face) != 3 {
			return nil, errors.Wrapf(ErrInvalidInput, "polymesh: face %d has %d corners, not 3", fi, len(face))
		}
		t, err := NewIndexedTriangle(VertexRef(face[0]), VertexRef(face[1]), VertexRef(face[2]))
		if err != nil {
			return nil, errors.Wrapf(err, "polymesh: face %d", fi)
		}
		f := m.faces.Add(t)
		for _, v := range t.Vertices() {
			m.attach(v, f)
		}
	}
	if len(data.Normals) == 0 {
		m.RecalculateNormals()
	}
	return m, nil
}

// Vertices returns the live vertices. ConnectedFaces of the values is owned
// by the mesh and must not be modified.
func (m *SimpleMesh) Vertices() Elements[VertexRef, VertexWithFaceBindings] { return m.vertices }

// Faces returns the live faces.
func (m *SimpleMesh) Faces() Elements[FaceRef, IndexedTriangle] { return m.faces }

// Position returns the position of v.
func (m *SimpleMesh) Position(v VertexRef) r3.Vector {
	return m.vertices.At(v).Position
}

func (m *SimpleMesh) attach(v VertexRef, f FaceRef) {
	vx := m.vertices.At(v)
	vx.ConnectedFaces = append(vx.ConnectedFaces, f)
	m.vertices.put(v, vx)
}

func (m *SimpleMesh) detach(v VertexRef, f FaceRef) {
	vx := m.vertices.At(v)
	i := slices.Index(vx.ConnectedFaces, f)
	assert(i >= 0)
	vx.ConnectedFaces = slices.Delete(slices.Clone(vx.ConnectedFaces), i, i+1)
	m.vertices.put(v, vx)
}

// checkVertex tombstones v when it has no faces and brings it back when it
// has some.
func (m *SimpleMesh) checkVertex(v VertexRef) {
	vx := m.vertices.At(v)
	switch {
	case len(vx.ConnectedFaces) == 0 && !vx.Deleted:
		err := m.vertices.Remove(v)
		assert(err == nil)
	case len(vx.ConnectedFaces) > 0 && vx.Deleted:
		vx.Deleted = false
		err := m.vertices.Respawn(v, vx)
		assert(err == nil)
	}
}

func (m *SimpleMesh) capture(s *OperationSnapshot, f FaceRef) IndexedTriangle {
	t := m.faces.At(f)
	s.captureFace(f, t)
	for _, v := range t.Vertices() {
		s.captureVertex(v, m.vertices.At(v))
	}
	return t
}

// ContractEdge merges e.V2 into e.V1 and moves e.V1 to pos. Faces using both
// endpoints are deleted; the other faces of e.V2 are rewired to e.V1.
// Vertices left without faces are tombstoned. The returned snapshot undoes
// the edit through RevertChanges.
func (m *SimpleMesh) ContractEdge(e IndexedEdge, pos r3.Vector) (*OperationSnapshot, error) {
	v1, v2 := e.V1, e.V2
	if v1 == v2 {
		return nil, errors.Wrapf(ErrInvalidInput, "polymesh: contraction of degenerate edge %v", e)
	}
	for _, v := range [2]VertexRef{v1, v2} {
		if !m.vertices.inRange(v) {
			return nil, errors.Wrapf(ErrNotFound, "polymesh: vertex %v", v)
		}
		if !m.vertices.Contains(v) {
			return nil, errors.Wrapf(ErrDeleted, "polymesh: vertex %v", v)
		}
	}

	s := newOperationSnapshot()
	s.captureVertex(v1, m.vertices.At(v1))
	s.captureVertex(v2, m.vertices.At(v2))

	// Faces using both endpoints collapse to a line.
	var shared []FaceRef
	for _, f := range m.vertices.At(v1).ConnectedFaces {
		if m.faces.At(f).HasVertex(v2) {
			shared = append(shared, f)
		}
	}
	for _, f := range shared {
		t := m.capture(s, f)
		for _, v := range t.Vertices() {
			m.detach(v, f)
		}
		err := m.faces.Remove(f)
		assert(err == nil)
		for _, v := range t.Vertices() {
			m.checkVertex(v)
		}
	}

	var rest []FaceRef
	rest = append(rest, m.vertices.At(v1).ConnectedFaces...)
	for _, f := range m.vertices.At(v2).ConnectedFaces {
		if !slices.Contains(rest, f) {
			rest = append(rest, f)
		}
	}
	for _, f := range rest {
		t := m.capture(s, f)
		if !t.HasVertex(v2) {
			continue
		}
		t, err := t.ReplaceVertex(v2, v1)
		if err != nil {
			return nil, err
		}
		m.faces.put(f, t)
		m.detach(v2, f)
		m.attach(v1, f)
	}

	m.checkVertex(v1)
	m.checkVertex(v2)
	if vx, ok := m.vertices.Get(v1); ok {
		vx.Position = pos
		m.vertices.put(v1, vx)
	}
	return s, nil
}

// RevertChanges restores every vertex and face captured in s.
func (m *SimpleMesh) RevertChanges(s *OperationSnapshot) error {
	for v, vx := range s.Vertices() {
		if err := m.restoreVertex(v, vx.Clone()); err != nil {
			return err
		}
	}
	for f, t := range s.Faces() {
		var err error
		if m.faces.Contains(f) {
			err = m.faces.Set(f, t)
		} else {
			err = m.faces.Respawn(f, t)
		}
		if err != nil {
			return errors.Wrapf(err, "polymesh: revert face %v", f)
		}
		for _, v := range t.Vertices() {
			m.checkVertex(v)
		}
	}
	return nil
}

func (m *SimpleMesh) restoreVertex(v VertexRef, vx VertexWithFaceBindings) error {
	var err error
	if m.vertices.Contains(v) {
		err = m.vertices.Set(v, vx)
	} else {
		vx.Deleted = false
		err = m.vertices.Respawn(v, vx)
	}
	return errors.Wrapf(err, "polymesh: revert vertex %v", v)
}

// VertexEdges returns the distinct edges from v to its neighbours, in the
// order they are met on v's faces.
func (m *SimpleMesh) VertexEdges(v VertexRef) []IndexedEdge {
	vx, ok := m.vertices.Get(v)
	if !ok {
		return nil
	}
	var edges []IndexedEdge
	for _, f := range vx.ConnectedFaces {
		for _, e := range m.faces.At(f).Edges() {
			if e.Contains(v) && !slices.Contains(edges, e) {
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// FaceNormal returns the unit normal of f.
func (m *SimpleMesh) FaceNormal(f FaceRef) r3.Vector {
	vs := m.faces.At(f).Vertices()
	return TriangleNormal(m.Position(vs[0]), m.Position(vs[1]), m.Position(vs[2]))
}

// RecalculateNormals sets the normal of every live vertex to the mean of its
// faces' normals.
func (m *SimpleMesh) RecalculateNormals() {
	var ns []r3.Vector
	for v, vx := range m.vertices.All() {
		ns = ns[:0]
		for _, f := range vx.ConnectedFaces {
			ns = append(ns, m.FaceNormal(f))
		}
		vx.Normal = averageNormal(ns)
		m.vertices.put(v, vx)
	}
}

// CleanVertices tombstones every live vertex without faces and returns how
// many there were.
func (m *SimpleMesh) CleanVertices() int {
	var n int
	for v, vx := range m.vertices.All() {
		if len(vx.ConnectedFaces) == 0 {
			m.checkVertex(v)
			n++
		}
	}
	return n
}
