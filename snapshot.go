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

import "iter"

// OperationSnapshot holds the state of every vertex and face a SimpleMesh
// edit touched, as it was before the edit. Each element is captured once, and
// iteration follows the order elements were first captured.
type OperationSnapshot struct {
	vertexKeys []VertexRef
	vertices   map[VertexRef]VertexWithFaceBindings
	faceKeys   []FaceRef
	faces      map[FaceRef]IndexedTriangle
}

func newOperationSnapshot() *OperationSnapshot {
	return &OperationSnapshot{
		vertices: map[VertexRef]VertexWithFaceBindings{},
		faces:    map[FaceRef]IndexedTriangle{},
	}
}

func (s *OperationSnapshot) captureVertex(v VertexRef, value VertexWithFaceBindings) {
	if _, ok := s.vertices[v]; ok {
		return
	}
	s.vertexKeys = append(s.vertexKeys, v)
	s.vertices[v] = value.Clone()
}

func (s *OperationSnapshot) captureFace(f FaceRef, t IndexedTriangle) {
	if _, ok := s.faces[f]; ok {
		return
	}
	s.faceKeys = append(s.faceKeys, f)
	s.faces[f] = t
}

// Vertex returns the captured state of v.
func (s *OperationSnapshot) Vertex(v VertexRef) (VertexWithFaceBindings, bool) {
	vx, ok := s.vertices[v]
	return vx, ok
}

// Face returns the captured state of f.
func (s *OperationSnapshot) Face(f FaceRef) (IndexedTriangle, bool) {
	t, ok := s.faces[f]
	return t, ok
}

// Vertices yields the captured vertices in capture order. The values share
// storage with the snapshot and must not be modified.
func (s *OperationSnapshot) Vertices() iter.Seq2[VertexRef, VertexWithFaceBindings] {
	return func(yield func(VertexRef, VertexWithFaceBindings) bool) {
		for _, v := range s.vertexKeys {
			if !yield(v, s.vertices[v]) {
				return
			}
		}
	}
}

// Faces yields the captured faces in capture order.
func (s *OperationSnapshot) Faces() iter.Seq2[FaceRef, IndexedTriangle] {
	return func(yield func(FaceRef, IndexedTriangle) bool) {
		for _, f := range s.faceKeys {
			if !yield(f, s.faces[f]) {
				return
			}
		}
	}
}

// VertexCount returns the number of captured vertices.
func (s *OperationSnapshot) VertexCount() int {
	return len(s.vertexKeys)
}

// FaceCount returns the number of captured faces.
func (s *OperationSnapshot) FaceCount() int {
	return len(s.faceKeys)
}
