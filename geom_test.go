package polymesh_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	. "github.com/hajimehoshi/go-polymesh"
	"github.com/hajimehoshi/go-polymesh/meshgen"
)

func TestPlaneDistance(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 1}
	b := r3.Vector{X: 1, Y: 0, Z: 1}
	c := r3.Vector{X: 0, Y: 1, Z: 1}
	tests := []struct {
		p    r3.Vector
		want float64
	}{
		{r3.Vector{X: 5, Y: -3, Z: 1}, 0},
		{r3.Vector{X: 0.2, Y: 0.2, Z: 3}, 2},
		{r3.Vector{X: 0.2, Y: 0.2, Z: -1.5}, 2.5},
	}
	for _, tc := range tests {
		if got := PlaneDistance(tc.p, a, b, c); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("PlaneDistance(%v): got %v, want %v", tc.p, got, tc.want)
		}
	}
	if got := PlaneDistance(r3.Vector{Z: 4}, a, a, b); got != 0 {
		t.Errorf("degenerate triangle: got %v, want 0", got)
	}
}

func TestPolygonNormal(t *testing.T) {
	square := []r3.Vector{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if got, want := PolygonNormal(square), (r3.Vector{Z: 1}); got != want {
		t.Errorf("PolygonNormal: got %v, want %v", got, want)
	}
	tri := TriangleNormal(square[0], square[1], square[2])
	if want := (r3.Vector{Z: 1}); tri != want {
		t.Errorf("TriangleNormal: got %v, want %v", tri, want)
	}
}

func TestAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.IsEmpty() {
		t.Errorf("EmptyAABB is not empty")
	}
	if got := b.Size(); got != (r3.Vector{}) {
		t.Errorf("Size of empty box: got %v", got)
	}
	b = b.AddPoint(r3.Vector{X: 1, Y: -2, Z: 3}).AddPoint(r3.Vector{X: -1, Y: 4, Z: 3})
	if b.IsEmpty() {
		t.Errorf("box with points is empty")
	}
	if got, want := b.Center(), (r3.Vector{X: 0, Y: 1, Z: 3}); got != want {
		t.Errorf("Center: got %v, want %v", got, want)
	}
	if got, want := b.Size(), (r3.Vector{X: 2, Y: 6, Z: 0}); got != want {
		t.Errorf("Size: got %v, want %v", got, want)
	}
}

func TestRenderData(t *testing.T) {
	data, err := meshgen.Fan(6)
	if err != nil {
		t.Fatal(err)
	}

	hm, err := NewHalfedgeMesh(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := hm.RemoveVertex(6); err != nil {
		t.Fatal(err)
	}
	r := hm.RenderData()
	if got, want := len(r.Vertices), 6; got != want {
		t.Errorf("halfedge vertices: got %d, want %d", got, want)
	}
	if got, want := len(r.FaceIndices), 3*4; got != want {
		t.Errorf("halfedge face indices: got %d, want %d", got, want)
	}
	if got, want := len(r.EdgeIndices), 2*9; got != want {
		t.Errorf("halfedge edge indices: got %d, want %d", got, want)
	}
	if got := r.Normals[0]; got.X != 0 || got.Y != 0 || math.Abs(got.Z-1) > 1e-12 {
		t.Errorf("normal of the center: got %v, want (0, 0, 1)", got)
	}

	sm, err := NewSimpleMesh(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sm.ContractEdge(IndexedEdge{V1: 0, V2: 3}, r3.Vector{}); err != nil {
		t.Fatal(err)
	}
	r = sm.RenderData()
	if got, want := len(r.Vertices), 7; got != want {
		t.Errorf("simple vertices: got %d, want %d", got, want)
	}
	for _, i := range r.FaceIndices {
		if i == 3 {
			t.Errorf("face index refers to deleted vertex 3")
		}
	}
	if got, want := len(r.FaceIndices), 3*4; got != want {
		t.Errorf("simple face indices: got %d, want %d", got, want)
	}
	if got, want := len(r.EdgeIndices), 2*9; got != want {
		t.Errorf("simple edge indices: got %d, want %d", got, want)
	}
	if r.Bounds.IsEmpty() {
		t.Errorf("bounds are empty")
	}
}
