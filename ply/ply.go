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

// Package ply reads and writes polygon meshes in the PLY format. ASCII
// files are parsed with goply and binary files with polyform; meshes are
// written as binary.
package ply

import (
	"bufio"
	"io"
	"os"
	"strings"

	polyply "github.com/EliCDavis/polyform/formats/ply"
	"github.com/EliCDavis/polyform/modeling"
	"github.com/EliCDavis/vector/vector3"
	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-polymesh"
)

// headerPeek bounds how much of a stream is inspected for its format line.
const headerPeek = 4096

// Read parses a PLY stream into mesh data. The vertex element must have x,
// y and z properties and may have nx, ny and nz; the face element must have
// a vertex_indices or vertex_index list.
func Read(r io.Reader) (data *polymesh.MeshData, err error) {
	// goply panics on malformed input.
	defer func() {
		if rec := recover(); rec != nil {
			data = nil
			err = errors.Errorf("ply: malformed input: %v", rec)
		}
	}()

	br := bufio.NewReaderSize(r, headerPeek)
	if isBinary(br) {
		return readBinary(br)
	}

	p := goply.New(br)
	vertices := p.Elements("vertex")
	faces := p.Elements("face")

	positions := make([]r3.Vector, 0, len(vertices))
	var normals []r3.Vector
	for i, v := range vertices {
		pos, err := vector(v, "x", "y", "z")
		if err != nil {
			return nil, errors.Wrapf(err, "ply: vertex %d", i)
		}
		positions = append(positions, pos)

		if _, ok := v["nx"]; !ok {
			continue
		}
		n, err := vector(v, "nx", "ny", "nz")
		if err != nil {
			return nil, errors.Wrapf(err, "ply: vertex %d", i)
		}
		if normals == nil {
			normals = make([]r3.Vector, 0, len(vertices))
		}
		normals = append(normals, n)
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, errors.New("ply: only some vertices have normals")
	}

	list := polymesh.NewFaceList(len(faces), 3)
	for i, f := range faces {
		raw, ok := f["vertex_indices"]
		if !ok {
			raw, ok = f["vertex_index"]
		}
		if !ok {
			return nil, errors.Errorf("ply: face %d has no vertex_indices", i)
		}
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.Errorf("ply: face %d: vertex_indices is %T, not a list", i, raw)
		}
		indices := make([]int, 0, len(items))
		for _, item := range items {
			idx, err := integer(item)
			if err != nil {
				return nil, errors.Wrapf(err, "ply: face %d", i)
			}
			indices = append(indices, idx)
		}
		if err := list.AddFace(indices...); err != nil {
			return nil, errors.Wrapf(err, "ply: face %d", i)
		}
	}

	data = polymesh.NewMeshData(positions, list)
	data.Normals = normals
	return data, nil
}

// isBinary reports whether the header in br declares a binary format. It
// does not consume anything.
func isBinary(br *bufio.Reader) bool {
	head, _ := br.Peek(headerPeek)
	for _, line := range strings.Split(string(head), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			return len(fields) > 1 && fields[1] != "ascii"
		case "end_header":
			return false
		}
	}
	return false
}

func readBinary(r io.Reader) (*polymesh.MeshData, error) {
	mesh, err := polyply.ReadMesh(r)
	if err != nil {
		return nil, errors.Wrap(err, "ply")
	}
	view := mesh.View()

	src := view.Float3Data[modeling.PositionAttribute]
	positions := make([]r3.Vector, 0, len(src))
	for _, p := range src {
		positions = append(positions, r3.Vector{X: p.X(), Y: p.Y(), Z: p.Z()})
	}
	var normals []r3.Vector
	if ns := view.Float3Data[modeling.NormalAttribute]; len(ns) > 0 {
		if len(ns) != len(positions) {
			return nil, errors.New("ply: only some vertices have normals")
		}
		normals = make([]r3.Vector, 0, len(ns))
		for _, n := range ns {
			normals = append(normals, r3.Vector{X: n.X(), Y: n.Y(), Z: n.Z()})
		}
	}

	list := polymesh.NewFaceList(len(view.Indices)/3, 3)
	if mesh.Topology() == modeling.TriangleTopology {
		indices := view.Indices
		for i := 0; i+2 < len(indices); i += 3 {
			if err := list.AddFace(indices[i], indices[i+1], indices[i+2]); err != nil {
				return nil, errors.Wrapf(err, "ply: face %d", i/3)
			}
		}
	}

	data := polymesh.NewMeshData(positions, list)
	data.Normals = normals
	return data, nil
}

// Load reads the PLY file at path.
func Load(path string) (*polymesh.MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "ply")
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the triangles of d as binary PLY. Only vertices used by a
// face are written, renumbered densely in index order, with their normals.
func Write(w io.Writer, d *polymesh.RenderData) error {
	if len(d.FaceIndices)%3 != 0 {
		return errors.Wrapf(polymesh.ErrInvalidInput, "ply: %d face indices is not a whole number of triangles", len(d.FaceIndices))
	}
	used := make([]bool, len(d.Vertices))
	for _, i := range d.FaceIndices {
		if i < 0 || i >= len(d.Vertices) {
			return errors.Wrapf(polymesh.ErrInvalidInput, "ply: face index %d of %d vertices", i, len(d.Vertices))
		}
		used[i] = true
	}

	remap := make([]int, len(d.Vertices))
	var positions, normals []vector3.Float64
	for i, u := range used {
		if !u {
			continue
		}
		remap[i] = len(positions)
		p := d.Vertices[i]
		positions = append(positions, vector3.New(p.X, p.Y, p.Z))
		var n r3.Vector
		if i < len(d.Normals) {
			n = d.Normals[i]
		}
		normals = append(normals, vector3.New(n.X, n.Y, n.Z))
	}
	indices := make([]int, len(d.FaceIndices))
	for k, i := range d.FaceIndices {
		indices[k] = remap[i]
	}

	mesh := modeling.NewTriangleMesh(indices).
		SetFloat3Attribute(modeling.PositionAttribute, positions).
		SetFloat3Attribute(modeling.NormalAttribute, normals)
	if err := polyply.WriteBinary(w, mesh); err != nil {
		return errors.Wrap(err, "ply")
	}
	return nil
}

// Save writes d to the PLY file at path.
func Save(path string, d *polymesh.RenderData) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "ply")
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, d); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "ply")
	}
	return errors.Wrap(f.Close(), "ply")
}

func vector(props map[string]interface{}, x, y, z string) (r3.Vector, error) {
	var v [3]float64
	for i, name := range [3]string{x, y, z} {
		raw, ok := props[name]
		if !ok {
			return r3.Vector{}, errors.Errorf("missing property %s", name)
		}
		f, err := float(raw)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "property %s", name)
		}
		v[i] = f
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

func float(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	i, err := integer(v)
	return float64(i), err
}

func integer(v interface{}) (int, error) {
	switch v := v.(type) {
	case int8:
		return int(v), nil
	case uint8:
		return int(v), nil
	case int16:
		return int(v), nil
	case uint16:
		return int(v), nil
	case int32:
		return int(v), nil
	case uint32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case int:
		return v, nil
	}
	return 0, errors.Errorf("unexpected value %v of type %T", v, v)
}
