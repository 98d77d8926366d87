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

// Package meshgen generates meshes for tests and demos.
package meshgen

import (
	"math"
	"math/rand"

	"github.com/fogleman/delaunay"
	"github.com/golang/geo/r3"
	"github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-polymesh"
)

// Fan returns n triangles around a center vertex 0 on the z=0 plane. Rim
// vertex i (1 <= i <= n) lies on the unit circle, and face i-1 is
// (0, i, i%n+1).
func Fan(n int) (*polymesh.MeshData, error) {
	if n < 3 {
		return nil, errors.Wrapf(polymesh.ErrInvalidInput, "meshgen: fan of %d triangles", n)
	}
	vs := make([]r3.Vector, 0, n+1)
	vs = append(vs, r3.Vector{})
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		vs = append(vs, r3.Vector{X: math.Cos(a), Y: math.Sin(a)})
	}
	faces := polymesh.NewFaceList(n, 3)
	for i := 1; i <= n; i++ {
		if err := faces.AddFace(0, i, i%n+1); err != nil {
			return nil, err
		}
	}
	return polymesh.NewMeshData(vs, faces), nil
}

// Grid returns a flat w by h grid of unit squares, each split into two
// triangles. Vertex (x, y) has index y*(w+1)+x.
func Grid(w, h int) (*polymesh.MeshData, error) {
	if w < 1 || h < 1 {
		return nil, errors.Wrapf(polymesh.ErrInvalidInput, "meshgen: grid of %dx%d", w, h)
	}
	vs := make([]r3.Vector, 0, (w+1)*(h+1))
	for y := 0; y <= h; y++ {
		for x := 0; x <= w; x++ {
			vs = append(vs, r3.Vector{X: float64(x), Y: float64(y)})
		}
	}
	faces := polymesh.NewFaceList(2*w*h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*(w+1) + x
			if err := faces.AddFace(i, i+1, i+w+2); err != nil {
				return nil, err
			}
			if err := faces.AddFace(i, i+w+2, i+w+1); err != nil {
				return nil, err
			}
		}
	}
	return polymesh.NewMeshData(vs, faces), nil
}

// Tetrahedron returns a closed tetrahedron with outward facing triangles.
func Tetrahedron() *polymesh.MeshData {
	vs := []r3.Vector{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}
	faces := polymesh.NewFaceList(4, 3)
	for _, f := range [][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		if err := faces.AddFace(f[:]...); err != nil {
			panic(err)
		}
	}
	return polymesh.NewMeshData(vs, faces)
}

const (
	terrainOctaves     = 4
	terrainPersistence = 0.5
	terrainFrequency   = 3
	terrainHeight      = 0.25
)

// Terrain returns a height field over the unit square: points random points
// plus the four corners, triangulated in the plane, with heights taken from
// fractal simplex noise. The same seed gives the same mesh.
func Terrain(points int, seed int64) (*polymesh.MeshData, error) {
	if points < 0 {
		return nil, errors.Wrapf(polymesh.ErrInvalidInput, "meshgen: %d terrain points", points)
	}
	r := rand.New(rand.NewSource(seed))
	pts := []delaunay.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i := 0; i < points; i++ {
		pts = append(pts, delaunay.Point{X: r.Float64(), Y: r.Float64()})
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, errors.Wrap(err, "meshgen")
	}

	noise := opensimplex.NewNormalized(seed)
	vs := make([]r3.Vector, 0, len(pts))
	for _, p := range pts {
		vs = append(vs, r3.Vector{X: p.X, Y: p.Y, Z: terrainHeight * fractal(noise, p.X, p.Y)})
	}
	faces := polymesh.NewFaceList(len(tri.Triangles)/3, 3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		if err := faces.AddFace(tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]); err != nil {
			return nil, err
		}
	}
	return polymesh.NewMeshData(vs, faces), nil
}

// fractal sums octaves of noise, each at twice the frequency and
// terrainPersistence times the amplitude of the previous one, normalized to
// [0, 1].
func fractal(n opensimplex.Noise, x, y float64) float64 {
	var sum, amplitudes float64
	amp := 1.0
	for o := 0; o < terrainOctaves; o++ {
		f := terrainFrequency * float64(int(1)<<o)
		sum += amp * n.Eval2(x*f, y*f)
		amplitudes += amp
		amp *= terrainPersistence
	}
	return sum / amplitudes
}
