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
	"github.com/pkg/errors"
)

// killPair deletes the halfedge pair of h. The caller has already rerouted
// every next pointer that referred to the pair.
func (m *HalfedgeMesh) killPair(h HalfedgeRef) {
	for _, x := range [2]HalfedgeRef{h, h ^ 1} {
		v := m.halfedges.At(x).Vertex
		m.valence[v]--
		assert(m.valence[v] >= 0)
		err := m.halfedges.Remove(x)
		assert(err == nil)
	}
}

// killVertex deletes v if no halfedge points at it any more. Otherwise it makes
// sure v's member is a live halfedge pointing at v, taken from hints when
// possible.
func (m *HalfedgeMesh) killVertex(v VertexRef, hints []HalfedgeRef) {
	vx, ok := m.vertices.Get(v)
	if !ok {
		return
	}
	if m.valence[v] == 0 {
		err := m.vertices.Remove(v)
		assert(err == nil)
		return
	}
	if m.isLive(vx.Member) && m.halfedges.At(vx.Member).Vertex == v {
		return
	}
	for _, h := range hints {
		if m.isLive(h) && m.halfedges.At(h).Vertex == v {
			vx.Member = h
			m.vertices.put(v, vx)
			return
		}
	}
	// v is shared by fans that do not meet; look for any of its halfedges.
	for h, he := range m.halfedges.All() {
		if he.Vertex == v {
			vx.Member = h
			m.vertices.put(v, vx)
			return
		}
	}
	assert(false)
}

func (m *HalfedgeMesh) flushEdits() {
	for _, e := range m.pending {
		m.setNext(e.h, e.next)
	}
	m.pending = m.pending[:0]
}

// zapFace destroys f. Every halfedge of its cycle loses its face; pairs that
// are then faceless on both sides are deleted along with the vertices left
// without halfedges. Loops around deleted pairs are closed by rerouting the
// previous halfedge to the next survivor around the vertex. It returns the
// vertices it touched.
func (m *HalfedgeMesh) zapFace(f FaceRef) []VertexRef {
	var cycle []HalfedgeRef
	for h := range m.EnumerateHalfedges(f) {
		cycle = append(cycle, h)
	}
	for _, h := range cycle {
		m.setFace(h, NoFace)
	}

	doomed := map[HalfedgeRef]bool{}
	var order []HalfedgeRef
	for _, h := range cycle {
		if doomed[h] || !m.halfedges.At(h^1).Face.IsNone() {
			continue
		}
		doomed[h] = true
		doomed[h^1] = true
		order = append(order, h, h^1)
	}

	var hints []HalfedgeRef
	for _, d := range order {
		p := m.Previous(d)
		if p.IsNone() || doomed[p] {
			continue
		}
		n := d
		for doomed[n] {
			n = m.Next(n ^ 1)
		}
		m.pending = append(m.pending, nextEdit{p, n})
		hints = append(hints, p)
	}
	m.flushEdits()

	var touched []VertexRef
	for i := 0; i < len(order); i += 2 {
		touched = append(touched, m.halfedges.At(order[i]).Vertex, m.halfedges.At(order[i+1]).Vertex)
		m.killPair(order[i])
	}
	for _, v := range touched {
		m.killVertex(v, hints)
	}

	err := m.faces.Remove(f)
	assert(err == nil)
	return touched
}

// RemoveFace deletes f. Edges no other face uses are deleted too, and so are
// vertices left without edges.
func (m *HalfedgeMesh) RemoveFace(f FaceRef) error {
	if !m.faces.Contains(f) {
		return errors.Wrapf(ErrNotFound, "polymesh: face %v", f)
	}
	m.zapFace(f)
	return m.sanityCheck()
}

// RemoveVertex deletes every face around v, and with them v itself.
func (m *HalfedgeMesh) RemoveVertex(v VertexRef) error {
	if !m.vertices.Contains(v) {
		return errors.Wrapf(ErrNotFound, "polymesh: vertex %v", v)
	}
	var faces []FaceRef
	seen := map[FaceRef]bool{}
	for _, h := range m.incoming(v) {
		f := m.halfedges.At(h).Face
		if f.IsNone() || seen[f] {
			continue
		}
		seen[f] = true
		faces = append(faces, f)
	}
	for _, f := range faces {
		m.zapFace(f)
	}
	// Wire edges with no face on either side cannot exist, so v is gone now.
	assert(!m.vertices.Contains(v))
	return m.sanityCheck()
}

// wing is the pair of edges of a triangle collapsed by a contraction: x
// touches the removed vertex and y the kept one. Both are faceless
// halfedges of the zapped triangle.
type wing struct {
	x, y HalfedgeRef
}

// ContractEdge merges e.V2 into e.V1 and moves e.V1 to pos. Triangles on
// either side of e disappear and their two other edges merge into one;
// larger faces lose one corner.
func (m *HalfedgeMesh) ContractEdge(e IndexedEdge, pos r3.Vector) error {
	a, b := e.V1, e.V2
	if a == b {
		return errors.Wrapf(ErrInvalidInput, "polymesh: contraction of degenerate edge %v", e)
	}
	if !m.vertices.Contains(a) || !m.vertices.Contains(b) {
		return errors.Wrapf(ErrNotFound, "polymesh: edge %v has a deleted endpoint", e)
	}
	hab := m.HalfedgeForEdge(e)
	if hab.IsNone() {
		return errors.Wrapf(ErrNotFound, "polymesh: edge %v", e)
	}
	pairs := 0
	for _, h := range m.incoming(a) {
		if m.halfedges.At(h^1).Vertex == b {
			pairs++
		}
	}
	if pairs > 1 {
		return errors.Wrapf(ErrNonManifold, "polymesh: %d edges join %v and %v", pairs, a, b)
	}
	into := m.incoming(b)
	touched := []VertexRef{a}
	var hints []HalfedgeRef

	// Zap the triangles on both sides, remembering their other edges.
	var wings []wing
	for _, s := range [2]HalfedgeRef{hab, hab ^ 1} {
		if !m.isLive(s) {
			continue
		}
		f := m.halfedges.At(s).Face
		if f.IsNone() || m.degree(f) != 3 {
			continue
		}
		n1 := m.Next(s)
		n2 := m.Next(n1)
		w := wing{x: n1, y: n2}
		if m.halfedges.At(n1^1).Vertex != b && m.halfedges.At(n1).Vertex != b {
			w = wing{x: n2, y: n1}
		}
		wings = append(wings, w)
		touched = append(touched, m.zapFace(f)...)
	}

	// The pair survives when a side is not a triangle or has no face at
	// all; cut it out of its loops.
	if m.isLive(hab) {
		doomed := map[HalfedgeRef]bool{hab: true, hab ^ 1: true}
		for _, d := range [2]HalfedgeRef{hab, hab ^ 1} {
			n := m.Next(d)
			for doomed[n] && n != d {
				n = m.Next(n)
			}
			if f := m.halfedges.At(d).Face; !f.IsNone() && m.faces.At(f).Member == d {
				m.faces.put(f, HalfedgeFace{Member: n})
			}
			p := m.Previous(d)
			if doomed[p] {
				continue
			}
			m.pending = append(m.pending, nextEdit{p, n})
			hints = append(hints, p)
		}
		m.flushEdits()
		m.killPair(hab)
	}

	// Merge the two remaining edges of every zapped triangle.
	for _, w := range wings {
		if !m.isLive(w.x) || !m.isLive(w.y) {
			continue
		}
		m.mergeWing(w)
		hints = append(hints, w.y, w.y^1)
		touched = append(touched, m.halfedges.At(w.y).Vertex, m.halfedges.At(w.y^1).Vertex)
	}

	for _, h := range into {
		if !m.isLive(h) || m.halfedges.At(h).Vertex != b {
			continue
		}
		m.setVertex(h, a)
		m.valence[b]--
		m.valence[a]++
		hints = append(hints, h)
	}
	assert(m.valence[b] == 0)
	// a may have lost all of its own edges to the zapped triangles.
	if !m.vertices.Contains(a) && m.valence[a] > 0 {
		vx := m.vertices.At(a)
		for _, h := range hints {
			if m.isLive(h) && m.halfedges.At(h).Vertex == a {
				vx.Member = h
				break
			}
		}
		err := m.vertices.Respawn(a, vx)
		assert(err == nil)
	}
	if m.vertices.Contains(b) {
		err := m.vertices.Remove(b)
		assert(err == nil)
	}
	for _, v := range touched {
		if v != b {
			m.killVertex(v, hints)
		}
	}
	if vx, ok := m.vertices.Get(a); ok {
		vx.Position = pos
		m.vertices.put(a, vx)
	}
	return m.sanityCheck()
}

// mergeWing lets w.y take the place of the faced halfedge opposite w.x, and
// deletes the x pair. After the contraction both run between the same two
// vertices.
func (m *HalfedgeMesh) mergeWing(w wing) {
	tx := w.x ^ 1
	assert(m.halfedges.At(w.x).Face.IsNone() && m.halfedges.At(w.y).Face.IsNone())

	// Take x and y out of the hole loop they share.
	first, second := w.x, w.y
	if m.Next(w.x) != w.y {
		first, second = w.y, w.x
		assert(m.Next(w.y) == w.x)
	}
	if p := m.Previous(first); p != second {
		m.pending = append(m.pending, nextEdit{p, m.Next(second)})
	}

	// Put y in tx's loop.
	ptx := m.Previous(tx)
	txe := m.halfedges.At(tx)
	m.pending = append(m.pending, nextEdit{ptx, w.y}, nextEdit{w.y, txe.Next})
	m.flushEdits()
	m.setFace(w.y, txe.Face)
	if !txe.Face.IsNone() && m.faces.At(txe.Face).Member == tx {
		m.faces.put(txe.Face, HalfedgeFace{Member: w.y})
	}
	m.killPair(w.x)
}

func (m *HalfedgeMesh) degree(f FaceRef) int {
	n := 0
	for range m.EnumerateHalfedges(f) {
		n++
	}
	return n
}

func (m *HalfedgeMesh) sanityCheck() error {
	if !m.opts.SanityCheck {
		return nil
	}
	return m.Check()
}
