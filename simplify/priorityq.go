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
	"container/heap"
)

// costBucket holds the candidates sharing one cost, in the order they were
// priced.
type costBucket struct {
	cost    float64
	entries []*entry
	index   int
}

// costQueue is a min-heap of buckets ordered by cost.
type costQueue []*costBucket

func (q costQueue) Len() int {
	return len(q)
}

func (q costQueue) Less(i, j int) bool {
	return q[i].cost < q[j].cost
}

func (q costQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *costQueue) Push(x interface{}) {
	b := x.(*costBucket)
	b.index = len(*q)
	*q = append(*q, b)
}

func (q *costQueue) Pop() interface{} {
	old := *q
	b := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	b.index = -1
	return b
}

// costIndex maps every distinct cost to its bucket and keeps the buckets in
// cost order.
type costIndex struct {
	buckets map[float64]*costBucket
	queue   costQueue
}

func newCostIndex() *costIndex {
	c := &costIndex{
		buckets: map[float64]*costBucket{},
	}
	heap.Init(&c.queue)
	return c
}

func (c *costIndex) insert(e *entry) {
	b, ok := c.buckets[e.candidate.Cost]
	if !ok {
		b = &costBucket{cost: e.candidate.Cost}
		c.buckets[b.cost] = b
		heap.Push(&c.queue, b)
	}
	b.entries = append(b.entries, e)
	e.bucket = b
}

func (c *costIndex) delete(e *entry) {
	b := e.bucket
	if b == nil {
		return
	}
	e.bucket = nil
	for i, x := range b.entries {
		if x == e {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			break
		}
	}
	if len(b.entries) > 0 {
		return
	}
	delete(c.buckets, b.cost)
	heap.Remove(&c.queue, b.index)
}

// minimum returns the first entry of the cheapest bucket, or nil.
func (c *costIndex) minimum() *entry {
	if len(c.queue) == 0 {
		return nil
	}
	return c.queue[0].entries[0]
}

func (c *costIndex) len() int {
	return len(c.queue)
}
