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

// Package simplify reduces a triangle mesh by repeated edge contraction.
//
// The cost of contracting an edge places the merged vertex at the edge
// midpoint and sums the distances from that point to the planes of the
// faces around both endpoints, plus the cost already paid by each endpoint.
// It is a cheap stand-in for a quadric error metric. Distances are measured
// to unit-normal planes, not weighted by face area, and a face around both
// endpoints counts once.
package simplify

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-polymesh"
)

// State is the lifecycle state of a Simplifier.
type State int

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	}
	return "unknown"
}

type step struct {
	edge      polymesh.IndexedEdge
	snapshot  *polymesh.OperationSnapshot
	prevError float64
}

// Simplifier contracts the cheapest edge of a SimpleMesh one step at a
// time, and undoes steps in reverse order.
type Simplifier struct {
	mesh         *polymesh.SimpleMesh
	candidates   *CandidateIndex
	vertexErrors []float64
	undo         []step
	state        State
	initial      int
}

// New returns a Simplifier working on mesh. Initialize must be called before
// stepping.
func New(mesh *polymesh.SimpleMesh) *Simplifier {
	return &Simplifier{
		mesh:       mesh,
		candidates: NewCandidateIndex(),
	}
}

// Mesh returns the mesh being simplified.
func (s *Simplifier) Mesh() *polymesh.SimpleMesh {
	return s.mesh
}

// Candidates returns the candidate index.
func (s *Simplifier) Candidates() *CandidateIndex {
	return s.candidates
}

// State returns the lifecycle state.
func (s *Simplifier) State() State {
	return s.state
}

// VertexError returns the cost accumulated on v by contractions into it.
func (s *Simplifier) VertexError(v polymesh.VertexRef) float64 {
	if int(v) >= len(s.vertexErrors) {
		return 0
	}
	return s.vertexErrors[v]
}

// InitialVertexCount returns the live vertex count at Initialize.
func (s *Simplifier) InitialVertexCount() int {
	return s.initial
}

// Initialize registers every edge of the mesh as a candidate, drops vertices
// without faces, and prices every candidate. Calling it again starts over
// from the current mesh and forgets the undo history.
func (s *Simplifier) Initialize() error {
	s.candidates = NewCandidateIndex()
	s.undo = nil

	n := 0
	for v := range s.mesh.Vertices().Keys() {
		n = int(v) + 1
	}
	for f := range s.mesh.Faces().Values() {
		for _, v := range f.Vertices() {
			n = max(n, int(v)+1)
		}
		for _, e := range f.Edges() {
			s.candidates.Add(e)
		}
	}
	s.vertexErrors = make([]float64, n)
	s.mesh.CleanVertices()

	edges := slices.Collect(s.candidates.Edges())
	for _, e := range edges {
		if err := s.UpdateContractionCost(e); err != nil {
			return err
		}
	}
	s.state = Initialized
	s.initial = s.mesh.Vertices().Len()
	return nil
}

// HasSnapshots reports whether there is a step to revert.
func (s *Simplifier) HasSnapshots() bool {
	return len(s.undo) > 0
}

// SimplifyOneStep contracts the cheapest candidate. It returns false when no
// candidate is left.
func (s *Simplifier) SimplifyOneStep() (bool, error) {
	if s.state != Initialized {
		return false, ErrNotInitialized
	}
	best, ok := s.candidates.GetBest()
	if !ok {
		return false, nil
	}
	snapshot, err := s.mesh.ContractEdge(best.Edge, best.Position)
	if err != nil {
		return false, errors.Wrapf(err, "simplify: contract %v", best.Edge)
	}

	// Deleted faces come first in the snapshot, so edges they share with
	// surviving faces are removed before being added back.
	for f, old := range snapshot.Faces() {
		for _, e := range old.Edges() {
			s.candidates.Remove(e)
		}
		if t, ok := s.mesh.Faces().Get(f); ok {
			for _, e := range t.Edges() {
				s.candidates.Add(e)
			}
		}
	}

	v1 := best.Edge.V1
	s.undo = append(s.undo, step{
		edge:      best.Edge,
		snapshot:  snapshot,
		prevError: s.vertexErrors[v1],
	})
	s.vertexErrors[v1] = best.Cost

	if err := s.reprice(best.Edge, snapshot); err != nil {
		return false, err
	}
	return true, nil
}

// RevertOneStep undoes the last contraction. It returns false when there is
// nothing to undo.
func (s *Simplifier) RevertOneStep() (bool, error) {
	if s.state != Initialized {
		return false, ErrNotInitialized
	}
	if len(s.undo) == 0 {
		return false, nil
	}
	st := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	for f := range st.snapshot.Faces() {
		t, ok := s.mesh.Faces().Get(f)
		if !ok {
			continue
		}
		for _, e := range t.Edges() {
			s.candidates.Remove(e)
		}
	}
	if err := s.mesh.RevertChanges(st.snapshot); err != nil {
		return false, errors.Wrapf(err, "simplify: revert %v", st.edge)
	}
	for f := range st.snapshot.Faces() {
		t, ok := s.mesh.Faces().Get(f)
		if !ok {
			continue
		}
		for _, e := range t.Edges() {
			s.candidates.Add(e)
		}
	}
	s.vertexErrors[st.edge.V1] = st.prevError

	if err := s.reprice(st.edge, st.snapshot); err != nil {
		return false, err
	}
	return true, nil
}

// reprice updates the cost of every edge around the vertices touched by an
// edit: the endpoints of edge and the corners of the faces in snapshot.
func (s *Simplifier) reprice(edge polymesh.IndexedEdge, snapshot *polymesh.OperationSnapshot) error {
	vertices := []polymesh.VertexRef{edge.V1, edge.V2}
	for _, t := range snapshot.Faces() {
		for _, v := range t.Vertices() {
			if !slices.Contains(vertices, v) {
				vertices = append(vertices, v)
			}
		}
	}
	seen := map[polymesh.IndexedEdge]bool{}
	for _, v := range vertices {
		for _, e := range s.mesh.VertexEdges(v) {
			if seen[e] {
				continue
			}
			seen[e] = true
			if err := s.UpdateContractionCost(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// UpdateContractionCost prices the candidate for e from the current mesh.
func (s *Simplifier) UpdateContractionCost(e polymesh.IndexedEdge) error {
	cand, ok := s.candidates.Get(e)
	if !ok {
		return errors.Wrapf(ErrCandidateNotFound, "simplify: edge %v", e)
	}
	p1 := s.mesh.Position(e.V1)
	p2 := s.mesh.Position(e.V2)
	opt := polymesh.Midpoint(p1, p2)

	cost := s.VertexError(e.V1) + s.VertexError(e.V2)
	var faces []polymesh.FaceRef
	for _, v := range [2]polymesh.VertexRef{e.V1, e.V2} {
		vx, ok := s.mesh.Vertices().Get(v)
		if !ok {
			continue
		}
		for _, f := range vx.ConnectedFaces {
			if slices.Contains(faces, f) {
				continue
			}
			faces = append(faces, f)
			t, _ := s.mesh.Faces().Get(f)
			vs := t.Vertices()
			cost += polymesh.PlaneDistance(opt, s.mesh.Position(vs[0]), s.mesh.Position(vs[1]), s.mesh.Position(vs[2]))
		}
	}

	if cand.Priced && cand.Cost == cost && cand.Position == opt {
		return nil
	}
	return s.candidates.UpdateCandidate(Candidate{Edge: e, Cost: cost, Position: opt})
}

// SimplifyTo steps toward target live vertices: forward while there are more,
// back while there are fewer. It stops after maxIterations steps, when the
// target is reached or passed, or when no step is possible, and reports
// whether the target was reached or passed. progress, if not nil, is called
// after every step with the number of vertices moved so far and the number
// to move in total.
func (s *Simplifier) SimplifyTo(target, maxIterations int, progress func(done, total int)) (bool, error) {
	if s.state != Initialized {
		return false, ErrNotInitialized
	}
	start := s.mesh.Vertices().Len()
	forward := start > target
	total := start - target
	if !forward {
		total = -total
	}

	for i := 0; i < maxIterations; i++ {
		n := s.mesh.Vertices().Len()
		if (forward && n <= target) || (!forward && n >= target) {
			return true, nil
		}
		var ok bool
		var err error
		if forward {
			ok, err = s.SimplifyOneStep()
		} else {
			ok, err = s.RevertOneStep()
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if progress != nil {
			done := start - s.mesh.Vertices().Len()
			if !forward {
				done = -done
			}
			progress(min(done, total), total)
		}
	}
	n := s.mesh.Vertices().Len()
	return (forward && n <= target) || (!forward && n >= target), nil
}
