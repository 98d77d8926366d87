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
	"math"

	"github.com/golang/geo/r3"
)

// TriangleNormal returns the unit normal of the triangle (a, b, c), oriented
// by the right-hand rule. A degenerate triangle has the zero normal.
func TriangleNormal(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// PolygonNormal returns the unit normal of a polygon given by its corners.
//
// The normal is computed with Newell's method: the sum over all edges
// (u, v) of (u.y-v.y)(u.z+v.z), (u.z-v.z)(u.x+v.x), (u.x-v.x)(u.y+v.y).
// For a planar polygon this equals twice the area times the normal; for a
// non-planar one it approximates the normal of the best fitting plane.
func PolygonNormal(ps []r3.Vector) r3.Vector {
	var n r3.Vector
	for i, u := range ps {
		v := ps[(i+1)%len(ps)]
		n.X += (u.Y - v.Y) * (u.Z + v.Z)
		n.Y += (u.Z - v.Z) * (u.X + v.X)
		n.Z += (u.X - v.X) * (u.Y + v.Y)
	}
	return n.Normalize()
}

// PlaneDistance returns the unsigned distance from p to the plane through the
// triangle (a, b, c). A degenerate triangle has no plane and the result is 0.
func PlaneDistance(p, a, b, c r3.Vector) float64 {
	n := TriangleNormal(a, b, c)
	if n == (r3.Vector{}) {
		return 0
	}
	return math.Abs(p.Sub(a).Dot(n))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r3.Vector) r3.Vector {
	return a.Add(b).Mul(0.5)
}

// averageNormal returns the normalized mean of ns, or the zero vector.
func averageNormal(ns []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, n := range ns {
		sum = sum.Add(n)
	}
	return sum.Normalize()
}

// AABB is an axis-aligned bounding box. The zero AABB is not empty; use
// EmptyAABB as the start of an accumulation.
type AABB struct {
	Min r3.Vector
	Max r3.Vector
}

// EmptyAABB returns a box that contains nothing and grows to the first point
// added.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether b contains no point.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// AddPoint returns the smallest box containing b and p.
func (b AABB) AddPoint(p r3.Vector) AABB {
	return AABB{
		Min: r3.Vector{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: r3.Vector{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Center returns the center of b.
func (b AABB) Center() r3.Vector {
	return Midpoint(b.Min, b.Max)
}

// Size returns the extent of b along each axis.
func (b AABB) Size() r3.Vector {
	if b.IsEmpty() {
		return r3.Vector{}
	}
	return b.Max.Sub(b.Min)
}
