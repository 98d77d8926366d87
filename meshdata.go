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

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// FaceList is a packed list of polygons. Each face is stored as its index
// count followed by the indices, e.g. 3 1 2 4 4 5 7 9 4 for a triangle and a
// quad.
type FaceList struct {
	bindings []int
	starts   []int
}

// NewFaceList returns an empty list sized for faceHint faces of
// indicesPerFaceHint indices each.
func NewFaceList(faceHint, indicesPerFaceHint int) *FaceList {
	return &FaceList{
		bindings: make([]int, 0, faceHint*(1+indicesPerFaceHint)),
		starts:   make([]int, 0, faceHint),
	}
}

// AddFace appends a polygon. A face needs at least 3 indices.
func (l *FaceList) AddFace(indices ...int) error {
	if len(indices) < 3 {
		return errors.Wrapf(ErrInvalidInput, "polymesh: a face must have at least 3 vertices, got %d", len(indices))
	}
	for _, i := range indices {
		if i < 0 {
			return errors.Wrapf(ErrInvalidInput, "polymesh: negative vertex index %d", i)
		}
	}
	l.starts = append(l.starts, len(l.bindings))
	l.bindings = append(l.bindings, len(indices))
	l.bindings = append(l.bindings, indices...)
	return nil
}

// Len returns the number of faces.
func (l *FaceList) Len() int {
	return len(l.starts)
}

// Face returns the indices of face i. The slice aliases the list and must not
// be modified.
func (l *FaceList) Face(i int) []int {
	s := l.starts[i]
	n := l.bindings[s]
	return l.bindings[s+1 : s+1+n : s+1+n]
}

// All yields the faces in insertion order.
func (l *FaceList) All() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		for i := range l.starts {
			if !yield(i, l.Face(i)) {
				return
			}
		}
	}
}

// MeshData is the input both mesh representations are built from: vertex
// positions, optional per-vertex normals and polygons indexing the positions.
type MeshData struct {
	Vertices []r3.Vector
	Normals  []r3.Vector
	Faces    *FaceList
}

// NewMeshData returns mesh data over vertices and faces.
func NewMeshData(vertices []r3.Vector, faces *FaceList) *MeshData {
	if faces == nil {
		faces = NewFaceList(0, 0)
	}
	return &MeshData{
		Vertices: vertices,
		Faces:    faces,
	}
}

// validate checks every face index against the vertex count.
func (d *MeshData) validate() error {
	if d == nil || d.Faces == nil {
		return errors.Wrap(ErrInvalidInput, "polymesh: mesh data has no face list")
	}
	for fi, face := range d.Faces.All() {
		for _, i := range face {
			if i >= len(d.Vertices) {
				return errors.Wrapf(ErrInvalidInput, "polymesh: face %d references vertex %d of %d", fi, i, len(d.Vertices))
			}
		}
	}
	return nil
}
