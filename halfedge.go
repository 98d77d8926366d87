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

// NonManifoldPolicy decides what construction does with input that does not
// describe an oriented 2-manifold (with boundary).
type NonManifoldPolicy int

const (
	// NonManifoldReject fails construction with ErrNonManifold.
	NonManifoldReject NonManifoldPolicy = iota

	// NonManifoldFirstMatch resolves conflicts deterministically. An edge
	// already used in the same direction by another face, or used by two
	// faces already, gets a separate halfedge pair. Boundary halfedges are
	// linked in ascending index order, each to the lowest-index unmatched
	// boundary halfedge leaving its destination.
	NonManifoldFirstMatch
)

// HalfedgeOptions configures a HalfedgeMesh.
type HalfedgeOptions struct {
	NonManifold NonManifoldPolicy

	// SanityCheck runs Check after every structural edit and returns its
	// error from the edit.
	SanityCheck bool
}

// Elements is a read-only view of an arena.
type Elements[K ~int, V any] interface {
	Len() int
	Contains(k K) bool
	Get(k K) (V, bool)
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	All() iter.Seq2[K, V]
}

// HalfedgeMesh is a polygon mesh stored as halfedges. Halfedges are
// allocated in pairs: the opposite of h is always h^1.
type HalfedgeMesh struct {
	halfedges *Arena[HalfedgeRef, Halfedge]
	faces     *Arena[FaceRef, HalfedgeFace]
	vertices  *Arena[VertexRef, HalfedgeVertex]

	// valence counts the live halfedges pointing at each vertex.
	valence []int

	opts    HalfedgeOptions
	pending []nextEdit
}

type nextEdit struct {
	h    HalfedgeRef
	next HalfedgeRef
}

type directedEdge struct {
	from, to VertexRef
}

// NewHalfedgeMesh builds a halfedge mesh from data. Face i of data becomes
// FaceRef(i) and vertex i becomes VertexRef(i); vertices used by no face are
// left deleted. opts may be nil.
func NewHalfedgeMesh(data *MeshData, opts *HalfedgeOptions) (*HalfedgeMesh, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	m := &HalfedgeMesh{
		halfedges: NewArena[HalfedgeRef, Halfedge](data.Faces.Len() * 6),
		faces:     NewArena[FaceRef, HalfedgeFace](data.Faces.Len()),
		vertices:  NewArena[VertexRef, HalfedgeVertex](len(data.Vertices)),
		valence:   make([]int, len(data.Vertices)),
	}
	if opts != nil {
		m.opts = *opts
	}
	for _, p := range data.Vertices {
		m.vertices.Add(HalfedgeVertex{Position: p, Member: NoHalfedge})
	}
	if err := m.build(data.Faces); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *HalfedgeMesh) build(faces *FaceList) error {
	// waiting maps a directed edge a->b to the faceless b->a halfedge
	// allocated with it, until a face claims that direction.
	waiting := map[directedEdge]HalfedgeRef{}
	bound := map[directedEdge]bool{}
	var cycle []HalfedgeRef

	for fi, face := range faces.All() {
		f := m.faces.Add(HalfedgeFace{Member: NoHalfedge})
		assert(int(f) == fi)
		if err := checkFaceIndices(fi, face); err != nil {
			return err
		}

		cycle = cycle[:0]
		for i := range face {
			a := VertexRef(face[i])
			b := VertexRef(face[(i+1)%len(face)])
			ab := directedEdge{a, b}

			if bound[ab] {
				if m.opts.NonManifold == NonManifoldReject {
					return errors.Wrapf(ErrNonManifold, "polymesh: face %d reuses directed edge %v->%v", fi, a, b)
				}
				cycle = append(cycle, m.makeEdge(a, b, f))
				continue
			}
			bound[ab] = true

			ba := directedEdge{b, a}
			if h, ok := waiting[ba]; ok {
				delete(waiting, ba)
				m.setFace(h, f)
				cycle = append(cycle, h)
				continue
			}
			h := m.makeEdge(a, b, f)
			waiting[ab] = h ^ 1
			cycle = append(cycle, h)
		}

		for i, h := range cycle {
			m.setNext(h, cycle[(i+1)%len(cycle)])
		}
		if err := m.faces.Respawn(f, HalfedgeFace{Member: cycle[0]}); err != nil {
			return err
		}
	}
	return m.linkBoundaries()
}

func checkFaceIndices(fi int, face []int) error {
	for i := range face {
		for j := i + 1; j < len(face); j++ {
			if face[i] == face[j] {
				return errors.Wrapf(ErrInvalidInput, "polymesh: face %d repeats vertex %d", fi, face[i])
			}
		}
	}
	return nil
}

// makeEdge allocates the pair a->b (bound to f) and b->a (faceless) and
// returns the a->b halfedge.
func (m *HalfedgeMesh) makeEdge(a, b VertexRef, f FaceRef) HalfedgeRef {
	h := m.halfedges.Add(Halfedge{Vertex: b, Face: f, Next: NoHalfedge})
	o := m.halfedges.Add(Halfedge{Vertex: a, Face: NoFace, Next: NoHalfedge})
	assert(o == h^1)

	m.valence[a]++
	m.valence[b]++
	m.adoptMember(b, h)
	m.adoptMember(a, o)
	return h
}

func (m *HalfedgeMesh) adoptMember(v VertexRef, h HalfedgeRef) {
	vx := m.vertices.At(v)
	if !vx.Member.IsNone() {
		return
	}
	vx.Member = h
	// v was a tombstone until its first halfedge.
	err := m.vertices.Respawn(v, vx)
	assert(err == nil)
}

// linkBoundaries closes the boundary loops: every halfedge still without a
// next is a boundary halfedge, and its next is the boundary halfedge leaving
// its destination.
func (m *HalfedgeMesh) linkBoundaries() error {
	var boundary []HalfedgeRef
	leaving := map[VertexRef][]HalfedgeRef{}
	for h, he := range m.halfedges.All() {
		if !he.Next.IsNone() {
			continue
		}
		from := m.halfedges.At(h ^ 1).Vertex
		if len(leaving[from]) > 0 && m.opts.NonManifold == NonManifoldReject {
			return errors.Wrapf(ErrNonManifold, "polymesh: vertex %v has more than one boundary", from)
		}
		leaving[from] = append(leaving[from], h)
		boundary = append(boundary, h)
	}
	for _, h := range boundary {
		to := m.halfedges.At(h).Vertex
		out := leaving[to]
		if len(out) == 0 {
			return errors.Wrapf(ErrNonManifold, "polymesh: boundary halfedge %v has no continuation", h)
		}
		m.setNext(h, out[0])
		leaving[to] = out[1:]
	}
	return nil
}

// Halfedges returns the live halfedges.
func (m *HalfedgeMesh) Halfedges() Elements[HalfedgeRef, Halfedge] { return m.halfedges }

// Faces returns the live faces.
func (m *HalfedgeMesh) Faces() Elements[FaceRef, HalfedgeFace] { return m.faces }

// Vertices returns the live vertices.
func (m *HalfedgeMesh) Vertices() Elements[VertexRef, HalfedgeVertex] { return m.vertices }

// Halfedge returns the halfedge h, live or not. It panics if h was never
// allocated.
func (m *HalfedgeMesh) Halfedge(h HalfedgeRef) Halfedge {
	return m.halfedges.At(h)
}

// Position returns the position of v.
func (m *HalfedgeMesh) Position(v VertexRef) r3.Vector {
	return m.vertices.At(v).Position
}

// Opposite returns the other halfedge of h's pair.
func (m *HalfedgeMesh) Opposite(h HalfedgeRef) HalfedgeRef {
	return h ^ 1
}

// Next returns the halfedge following h around its face or boundary loop.
func (m *HalfedgeMesh) Next(h HalfedgeRef) HalfedgeRef {
	return m.halfedges.At(h).Next
}

// Previous returns the halfedge whose next is h. It walks h's loop, so it
// costs the length of the loop.
func (m *HalfedgeMesh) Previous(h HalfedgeRef) HalfedgeRef {
	cur := m.Next(h)
	for steps := 0; !cur.IsNone(); steps++ {
		n := m.Next(cur)
		if n == h {
			return cur
		}
		if steps > m.halfedges.Cap() {
			break
		}
		cur = n
	}
	return NoHalfedge
}

// EnumerateHalfedges yields the cycle of f starting at its member halfedge.
func (m *HalfedgeMesh) EnumerateHalfedges(f FaceRef) iter.Seq[HalfedgeRef] {
	return func(yield func(HalfedgeRef) bool) {
		fc, ok := m.faces.Get(f)
		if !ok {
			return
		}
		h := fc.Member
		for {
			if !yield(h) {
				return
			}
			h = m.Next(h)
			if h == fc.Member || h.IsNone() {
				return
			}
		}
	}
}

// EnumerateVertices yields the corners of f in cycle order.
func (m *HalfedgeMesh) EnumerateVertices(f FaceRef) iter.Seq[VertexRef] {
	return func(yield func(VertexRef) bool) {
		for h := range m.EnumerateHalfedges(f) {
			if !yield(m.halfedges.At(h).Vertex) {
				return
			}
		}
	}
}

// EnumerateOneRing yields the halfedges pointing at v, starting at its member
// and rotating with opposite(next(h)). The sequence ends early when the
// rotation runs into a missing halfedge.
func (m *HalfedgeMesh) EnumerateOneRing(v VertexRef) iter.Seq[HalfedgeRef] {
	return func(yield func(HalfedgeRef) bool) {
		vx, ok := m.vertices.Get(v)
		if !ok {
			return
		}
		h := vx.Member
		for {
			if !m.isLive(h) {
				return
			}
			if !yield(h) {
				return
			}
			n := m.Next(h)
			if n.IsNone() {
				return
			}
			h = n ^ 1
			if h == vx.Member {
				return
			}
		}
	}
}

// EnumerateFaces yields the faces around v's one-ring.
func (m *HalfedgeMesh) EnumerateFaces(v VertexRef) iter.Seq[FaceRef] {
	return func(yield func(FaceRef) bool) {
		for h := range m.EnumerateOneRing(v) {
			f := m.halfedges.At(h).Face
			if f.IsNone() {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// EnumerateEdgeFaces yields the faces on either side of e.
func (m *HalfedgeMesh) EnumerateEdgeFaces(e IndexedEdge) iter.Seq[FaceRef] {
	return func(yield func(FaceRef) bool) {
		h := m.HalfedgeForEdge(e)
		if h.IsNone() {
			return
		}
		for _, x := range [2]HalfedgeRef{h, h ^ 1} {
			f := m.halfedges.At(x).Face
			if f.IsNone() {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// EnumerateNeighbourFaces yields every other face sharing a vertex with f,
// each once.
func (m *HalfedgeMesh) EnumerateNeighbourFaces(f FaceRef) iter.Seq[FaceRef] {
	return func(yield func(FaceRef) bool) {
		seen := map[FaceRef]bool{f: true}
		for v := range m.EnumerateVertices(f) {
			for g := range m.EnumerateFaces(v) {
				if seen[g] {
					continue
				}
				seen[g] = true
				if !yield(g) {
					return
				}
			}
		}
	}
}

// HalfedgeForEdge returns the halfedge going from e.V1 to e.V2, or
// NoHalfedge.
func (m *HalfedgeMesh) HalfedgeForEdge(e IndexedEdge) HalfedgeRef {
	for _, h := range m.incoming(e.V1) {
		if m.halfedges.At(h^1).Vertex == e.V2 {
			return h ^ 1
		}
	}
	return NoHalfedge
}

// EdgeForHalfedge returns the undirected edge of h.
func (m *HalfedgeMesh) EdgeForHalfedge(h HalfedgeRef) IndexedEdge {
	return edgeOf(m.halfedges.At(h).Vertex, m.halfedges.At(h^1).Vertex)
}

// Edges yields one edge per live halfedge pair, in pair order.
func (m *HalfedgeMesh) Edges() iter.Seq[IndexedEdge] {
	return func(yield func(IndexedEdge) bool) {
		for h := HalfedgeRef(0); int(h) < m.halfedges.Cap(); h += 2 {
			if !m.halfedges.Contains(h) {
				continue
			}
			if !yield(m.EdgeForHalfedge(h)) {
				return
			}
		}
	}
}

// EdgeCount returns the number of live edges.
func (m *HalfedgeMesh) EdgeCount() int {
	return m.halfedges.Len() / 2
}

// incoming returns every live halfedge pointing at v. The one-ring covers a
// manifold vertex; the arena is scanned only when v has halfedges outside
// the fan of its member.
func (m *HalfedgeMesh) incoming(v VertexRef) []HalfedgeRef {
	if !m.vertices.Contains(v) {
		return nil
	}
	var hs []HalfedgeRef
	for h := range m.EnumerateOneRing(v) {
		hs = append(hs, h)
	}
	if len(hs) >= m.valence[v] {
		return hs
	}
	hs = hs[:0]
	for h, he := range m.halfedges.All() {
		if he.Vertex == v {
			hs = append(hs, h)
		}
	}
	return hs
}

func (m *HalfedgeMesh) isLive(h HalfedgeRef) bool {
	return m.halfedges.Contains(h)
}

func (m *HalfedgeMesh) setNext(h, next HalfedgeRef) {
	he := m.halfedges.At(h)
	he.Next = next
	m.halfedges.put(h, he)
}

func (m *HalfedgeMesh) setFace(h HalfedgeRef, f FaceRef) {
	he := m.halfedges.At(h)
	he.Face = f
	m.halfedges.put(h, he)
}

func (m *HalfedgeMesh) setVertex(h HalfedgeRef, v VertexRef) {
	he := m.halfedges.At(h)
	assert(!he.IsDeleted() && !v.IsNone())
	he.Vertex = v
	m.halfedges.put(h, he)
}
