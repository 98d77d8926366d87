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

import "strconv"

// VertexRef, FaceRef and HalfedgeRef are opaque handles into the arenas of a
// mesh. A negative value means "none".
type (
	VertexRef   int
	FaceRef     int
	HalfedgeRef int
)

const (
	NoVertex   VertexRef   = -1
	NoFace     FaceRef     = -1
	NoHalfedge HalfedgeRef = -1
)

func (v VertexRef) IsNone() bool   { return v < 0 }
func (f FaceRef) IsNone() bool     { return f < 0 }
func (h HalfedgeRef) IsNone() bool { return h < 0 }

func (v VertexRef) String() string   { return refString(int(v)) }
func (f FaceRef) String() string     { return refString(int(f)) }
func (h HalfedgeRef) String() string { return refString(int(h)) }

func refString(i int) string {
	if i < 0 {
		return "none"
	}
	return strconv.Itoa(i)
}
