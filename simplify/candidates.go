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

package simplify

import (
	"iter"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-polymesh"
)

// Candidate is a prospective edge contraction. A candidate is priced once it
// has been given a cost; only priced candidates are ordered by cost.
type Candidate struct {
	Edge     polymesh.IndexedEdge
	Cost     float64
	Position r3.Vector
	Priced   bool
}

type entry struct {
	candidate Candidate
	bucket    *costBucket
}

// CandidateIndex holds contraction candidates, bucketed by the lower vertex
// of their edge and ordered by cost.
//
// Candidates with equal cost are ordered by the time they were given that
// cost: GetBest returns the one priced first.
type CandidateIndex struct {
	byVertex [][]*entry
	costs    *costIndex
	n        int
}

// NewCandidateIndex returns an empty index.
func NewCandidateIndex() *CandidateIndex {
	return &CandidateIndex{
		costs: newCostIndex(),
	}
}

func (c *CandidateIndex) bucket(v polymesh.VertexRef) []*entry {
	if v.IsNone() || int(v) >= len(c.byVertex) {
		return nil
	}
	return c.byVertex[v]
}

func (c *CandidateIndex) find(e polymesh.IndexedEdge) (int, *entry) {
	for i, x := range c.bucket(e.V1) {
		if x.candidate.Edge == e {
			return i, x
		}
	}
	return -1, nil
}

// Add inserts an unpriced candidate for e. It returns false if e is already
// present or has a none endpoint.
func (c *CandidateIndex) Add(e polymesh.IndexedEdge) bool {
	if e.V1.IsNone() || e.V2.IsNone() {
		return false
	}
	if _, x := c.find(e); x != nil {
		return false
	}
	for int(e.V1) >= len(c.byVertex) {
		c.byVertex = append(c.byVertex, nil)
	}
	c.byVertex[e.V1] = append(c.byVertex[e.V1], &entry{
		candidate: Candidate{Edge: e},
	})
	c.n++
	return true
}

// Remove deletes the candidate for e. It returns false if e is absent.
func (c *CandidateIndex) Remove(e polymesh.IndexedEdge) bool {
	i, x := c.find(e)
	if x == nil {
		return false
	}
	c.costs.delete(x)
	b := c.byVertex[e.V1]
	c.byVertex[e.V1] = append(b[:i], b[i+1:]...)
	c.n--
	return true
}

// UpdateCandidate gives the candidate for cand.Edge the cost and position of
// cand and reorders it.
func (c *CandidateIndex) UpdateCandidate(cand Candidate) error {
	if math.IsNaN(cand.Cost) {
		return errors.Wrapf(polymesh.ErrInvalidInput, "simplify: NaN cost for edge %v", cand.Edge)
	}
	_, x := c.find(cand.Edge)
	if x == nil {
		return errors.Wrapf(ErrCandidateNotFound, "simplify: edge %v", cand.Edge)
	}
	c.costs.delete(x)
	x.candidate.Cost = cand.Cost
	x.candidate.Position = cand.Position
	x.candidate.Priced = true
	c.costs.insert(x)
	return nil
}

// GetBest returns the priced candidate with the lowest cost.
func (c *CandidateIndex) GetBest() (Candidate, bool) {
	x := c.costs.minimum()
	if x == nil {
		return Candidate{}, false
	}
	return x.candidate, true
}

// Get returns the candidate for e.
func (c *CandidateIndex) Get(e polymesh.IndexedEdge) (Candidate, bool) {
	_, x := c.find(e)
	if x == nil {
		return Candidate{}, false
	}
	return x.candidate, true
}

// Contains reports whether e has a candidate.
func (c *CandidateIndex) Contains(e polymesh.IndexedEdge) bool {
	_, x := c.find(e)
	return x != nil
}

// Len returns the number of candidates, priced or not.
func (c *CandidateIndex) Len() int {
	return c.n
}

// Edges yields the edges of all candidates, by lower vertex and then by
// insertion.
func (c *CandidateIndex) Edges() iter.Seq[polymesh.IndexedEdge] {
	return func(yield func(polymesh.IndexedEdge) bool) {
		for _, b := range c.byVertex {
			for _, x := range b {
				if !yield(x.candidate.Edge) {
					return
				}
			}
		}
	}
}

// costBucketEdges returns the edges sharing cost, in tie-break order.
func (c *CandidateIndex) costBucketEdges(cost float64) []polymesh.IndexedEdge {
	b, ok := c.costs.buckets[cost]
	if !ok {
		return nil
	}
	edges := make([]polymesh.IndexedEdge, 0, len(b.entries))
	for _, x := range b.entries {
		edges = append(edges, x.candidate.Edge)
	}
	return edges
}
