package ply_test

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-polymesh"
	"github.com/hajimehoshi/go-polymesh/meshgen"
	. "github.com/hajimehoshi/go-polymesh/ply"
)

const square = `ply
format ascii 1.0
comment unit square
element vertex 4
property float x
property float y
property float z
property float nx
property float ny
property float nz
element face 2
property list uchar int vertex_indices
end_header
0 0 0 0 0 1
1 0 0 0 0 1
1 1 0 0 0 1
0 1 0.5 0 0 1
3 0 1 2
3 0 2 3`

const quad = `ply
format ascii 1.0
element vertex 4
property double x
property double y
property double z
element face 1
property list uchar uint vertex_index
end_header
0 0 0
2 0 0
2 2 0
0 2 -1.25
4 0 1 2 3`

func TestRead(t *testing.T) {
	for _, tc := range []struct {
		name      string
		in        string
		vertices  []r3.Vector
		hasNormal bool
		faces     [][]int
	}{
		{
			name: "triangles with normals",
			in:   square,
			vertices: []r3.Vector{
				{X: 0, Y: 0, Z: 0},
				{X: 1, Y: 0, Z: 0},
				{X: 1, Y: 1, Z: 0},
				{X: 0, Y: 1, Z: 0.5},
			},
			hasNormal: true,
			faces:     [][]int{{0, 1, 2}, {0, 2, 3}},
		},
		{
			name: "quad",
			in:   quad,
			vertices: []r3.Vector{
				{X: 0, Y: 0, Z: 0},
				{X: 2, Y: 0, Z: 0},
				{X: 2, Y: 2, Z: 0},
				{X: 0, Y: 2, Z: -1.25},
			},
			faces: [][]int{{0, 1, 2, 3}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Read(strings.NewReader(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(data.Vertices, tc.vertices) {
				t.Errorf("vertices: got %v, want %v", data.Vertices, tc.vertices)
			}
			if got := data.Normals != nil; got != tc.hasNormal {
				t.Errorf("has normals: got %v, want %v", got, tc.hasNormal)
			}
			for _, n := range data.Normals {
				if n != (r3.Vector{Z: 1}) {
					t.Errorf("normal: got %v, want (0, 0, 1)", n)
				}
			}
			var faces [][]int
			for _, f := range data.Faces.All() {
				faces = append(faces, slices.Clone(f))
			}
			if !slices.EqualFunc(faces, tc.faces, slices.Equal[[]int]) {
				t.Errorf("faces: got %v, want %v", faces, tc.faces)
			}
		})
	}
}

func TestReadBuildsMeshes(t *testing.T) {
	data, err := Read(strings.NewReader(square))
	if err != nil {
		t.Fatal(err)
	}
	hm, err := polymesh.NewHalfedgeMesh(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := hm.EdgeCount(), 5; got != want {
		t.Errorf("edges: got %d, want %d", got, want)
	}
	sm, err := polymesh.NewSimpleMesh(data)
	if err != nil {
		t.Fatal(err)
	}
	vx, _ := sm.Vertices().Get(3)
	if vx.Normal != (r3.Vector{Z: 1}) {
		t.Errorf("normal of vertex 3: got %v", vx.Normal)
	}
}

func TestReadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"empty", ``},
		{"not ply", "obj\n"},
		{
			name: "missing z",
			in: `ply
format ascii 1.0
element vertex 1
property float x
property float y
end_header
0 0`,
		},
		{
			name: "missing indices",
			in: `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int corners
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2`,
		},
		{
			name: "short face",
			in: `ply
format ascii 1.0
element vertex 2
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
2 0 1`,
		},
		{
			name: "truncated",
			in: `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
end_header
0 0 0`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.in)); err == nil {
				t.Errorf("Read succeeded")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Errorf("Load succeeded")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	data, err := meshgen.Grid(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	m, err := polymesh.NewSimpleMesh(data)
	if err != nil {
		t.Fatal(err)
	}
	// Leave a hole in the vertex numbering.
	if _, err := m.ContractEdge(polymesh.IndexedEdge{V1: 5, V2: 6}, r3.Vector{X: 1.5, Y: 1}); err != nil {
		t.Fatal(err)
	}
	src := m.RenderData()

	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if g, w := len(got.Vertices), m.Vertices().Len(); g != w {
		t.Errorf("vertices: got %d, want %d", g, w)
	}
	if g, w := got.Faces.Len(), m.Faces().Len(); g != w {
		t.Fatalf("faces: got %d, want %d", g, w)
	}
	for i, face := range got.Faces.All() {
		for k, v := range face {
			if v < 0 || v >= len(got.Vertices) {
				t.Fatalf("face %d: index %d out of range", i, v)
			}
			want := src.Vertices[src.FaceIndices[3*i+k]]
			if p := got.Vertices[v]; p.Sub(want).Norm() > 1e-6 {
				t.Errorf("face %d corner %d: got %v, want %v", i, k, p, want)
			}
			if len(got.Normals) > 0 {
				wantN := src.Normals[src.FaceIndices[3*i+k]]
				if n := got.Normals[v]; n.Sub(wantN).Norm() > 1e-6 {
					t.Errorf("face %d corner %d normal: got %v, want %v", i, k, n, wantN)
				}
			}
		}
	}
	if _, err := polymesh.NewSimpleMesh(got); err != nil {
		t.Errorf("mesh from written data: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	data, err := meshgen.Fan(5)
	if err != nil {
		t.Fatal(err)
	}
	m, err := polymesh.NewHalfedgeMesh(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.RemoveVertex(3); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "fan.ply")
	if err := Save(path, m.RenderData()); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if g, w := len(got.Vertices), 5; g != w {
		t.Errorf("vertices: got %d, want %d", g, w)
	}
	if g, w := got.Faces.Len(), 3; g != w {
		t.Errorf("faces: got %d, want %d", g, w)
	}
}

func TestWriteInvalidInput(t *testing.T) {
	for _, d := range []*polymesh.RenderData{
		{Vertices: make([]r3.Vector, 3), FaceIndices: []int{0, 1}},
		{Vertices: make([]r3.Vector, 3), FaceIndices: []int{0, 1, 3}},
		{Vertices: make([]r3.Vector, 3), FaceIndices: []int{0, -1, 2}},
	} {
		if err := Write(&bytes.Buffer{}, d); errors.Cause(err) != polymesh.ErrInvalidInput {
			t.Errorf("Write(%v): got %v, want %v", d.FaceIndices, err, polymesh.ErrInvalidInput)
		}
	}
}
