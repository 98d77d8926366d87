package polymesh_test

import (
	"math"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	. "github.com/hajimehoshi/go-polymesh"
	"github.com/hajimehoshi/go-polymesh/meshgen"
)

func mustData(data *MeshData, err error) *MeshData {
	if err != nil {
		panic(err)
	}
	return data
}

func newSimpleMesh(t *testing.T, data *MeshData) *SimpleMesh {
	t.Helper()
	m, err := NewSimpleMesh(data)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

type simpleState struct {
	vertices map[VertexRef]VertexWithFaceBindings
	faces    map[FaceRef]IndexedTriangle
}

func stateOf(m *SimpleMesh) simpleState {
	s := simpleState{
		vertices: map[VertexRef]VertexWithFaceBindings{},
		faces:    map[FaceRef]IndexedTriangle{},
	}
	for v, vx := range m.Vertices().All() {
		s.vertices[v] = vx.Clone()
	}
	for f, t := range m.Faces().All() {
		s.faces[f] = t
	}
	return s
}

func (s simpleState) diff(other simpleState) string {
	if len(s.vertices) != len(other.vertices) {
		return "vertex count differs"
	}
	if len(s.faces) != len(other.faces) {
		return "face count differs"
	}
	for v, a := range s.vertices {
		b, ok := other.vertices[v]
		if !ok {
			return "vertex " + v.String() + " is missing"
		}
		if a.Position != b.Position || a.Normal != b.Normal || a.Deleted != b.Deleted {
			return "vertex " + v.String() + " differs"
		}
		if !slices.Equal(a.ConnectedFaces, b.ConnectedFaces) {
			return "faces of vertex " + v.String() + " differ"
		}
	}
	for f, a := range s.faces {
		if b, ok := other.faces[f]; !ok || a != b {
			return "face " + f.String() + " differs"
		}
	}
	return ""
}

func TestNewSimpleMeshInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data *MeshData
	}{
		{"quad", meshData(t, 4, []int{0, 1, 2, 3})},
		{"out of range", meshData(t, 3, []int{0, 1, 5})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSimpleMesh(tc.data); errors.Cause(err) != ErrInvalidInput {
				t.Errorf("got %v, want %v", err, ErrInvalidInput)
			}
		})
	}

	// A repeated corner is caught by the triangle itself.
	l := NewFaceList(1, 3)
	if err := l.AddFace(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSimpleMesh(NewMeshData(make([]r3.Vector, 2), l)); errors.Cause(err) != ErrInvalidInput {
		t.Errorf("repeated corner: got %v, want %v", err, ErrInvalidInput)
	}
}

func TestSimpleMeshContractFanSpoke(t *testing.T) {
	m := newSimpleMesh(t, mustData(meshgen.Fan(6)))
	pos := r3.Vector{X: 0.5}
	s, err := m.ContractEdge(IndexedEdge{V1: 0, V2: 1}, pos)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := m.Faces().Len(), 4; got != want {
		t.Errorf("faces: got %d, want %d", got, want)
	}
	if m.Vertices().Contains(1) {
		t.Errorf("vertex 1 survived")
	}
	center, ok := m.Vertices().Get(0)
	if !ok {
		t.Fatal("vertex 0 was deleted")
	}
	if want := []FaceRef{1, 2, 3, 4}; !slices.Equal(center.ConnectedFaces, want) {
		t.Errorf("faces of 0: got %v, want %v", center.ConnectedFaces, want)
	}
	if center.Position != pos {
		t.Errorf("position of 0: got %v, want %v", center.Position, pos)
	}

	var faces []FaceRef
	for f := range s.Faces() {
		faces = append(faces, f)
	}
	if want := []FaceRef{0, 5, 1, 2, 3, 4}; !slices.Equal(faces, want) {
		t.Errorf("snapshot faces: got %v, want %v", faces, want)
	}
	var vertices []VertexRef
	for v := range s.Vertices() {
		vertices = append(vertices, v)
	}
	if want := []VertexRef{0, 1, 2, 6, 3, 4, 5}; !slices.Equal(vertices, want) {
		t.Errorf("snapshot vertices: got %v, want %v", vertices, want)
	}
	if old, ok := s.Vertex(0); !ok || old.Position != (r3.Vector{}) {
		t.Errorf("snapshot of vertex 0: got %v, %v", old, ok)
	}
}

func TestSimpleMeshContractSingleTriangle(t *testing.T) {
	m := newSimpleMesh(t, meshData(t, 3, []int{0, 1, 2}))
	before := stateOf(m)
	s, err := m.ContractEdge(IndexedEdge{V1: 0, V2: 2}, r3.Vector{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Faces().Len() != 0 || m.Vertices().Len() != 0 {
		t.Errorf("got %d faces and %d vertices, want none", m.Faces().Len(), m.Vertices().Len())
	}
	if err := m.RevertChanges(s); err != nil {
		t.Fatal(err)
	}
	if d := before.diff(stateOf(m)); d != "" {
		t.Error(d)
	}
}

func TestSimpleMeshContractRevertRoundTrip(t *testing.T) {
	m := newSimpleMesh(t, mustData(meshgen.Grid(3, 3)))
	m.RecalculateNormals()
	edges := map[IndexedEdge]bool{}
	var order []IndexedEdge
	for _, tri := range m.Faces().All() {
		for _, e := range tri.Edges() {
			if !edges[e] {
				edges[e] = true
				order = append(order, e)
			}
		}
	}

	before := stateOf(m)
	for _, e := range order {
		s, err := m.ContractEdge(e, Midpoint(m.Position(e.V1), m.Position(e.V2)))
		if err != nil {
			t.Fatalf("ContractEdge(%v): %v", e, err)
		}
		if m.Vertices().Contains(e.V2) {
			t.Errorf("ContractEdge(%v): vertex %v survived", e, e.V2)
		}
		if err := m.RevertChanges(s); err != nil {
			t.Fatalf("RevertChanges after %v: %v", e, err)
		}
		if d := before.diff(stateOf(m)); d != "" {
			t.Errorf("round trip of %v: %s", e, d)
		}
	}
}

func TestSimpleMeshNestedRevert(t *testing.T) {
	m := newSimpleMesh(t, mustData(meshgen.Grid(3, 2)))
	before := stateOf(m)

	var snapshots []*OperationSnapshot
	for _, e := range []IndexedEdge{{V1: 5, V2: 6}, {V1: 5, V2: 9}, {V1: 1, V2: 5}} {
		s, err := m.ContractEdge(e, m.Position(e.V1))
		if err != nil {
			t.Fatalf("ContractEdge(%v): %v", e, err)
		}
		snapshots = append(snapshots, s)
	}
	for i := len(snapshots) - 1; i >= 0; i-- {
		if err := m.RevertChanges(snapshots[i]); err != nil {
			t.Fatal(err)
		}
	}
	if d := before.diff(stateOf(m)); d != "" {
		t.Error(d)
	}
}

func TestSimpleMeshContractErrors(t *testing.T) {
	m := newSimpleMesh(t, mustData(meshgen.Fan(4)))
	if _, err := m.ContractEdge(IndexedEdge{V1: 0, V2: 1}, r3.Vector{}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		edge IndexedEdge
		want error
	}{
		{"degenerate", IndexedEdge{V1: 2, V2: 2}, ErrInvalidInput},
		{"deleted endpoint", IndexedEdge{V1: 0, V2: 1}, ErrDeleted},
		{"out of range", IndexedEdge{V1: 0, V2: 9}, ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := m.ContractEdge(tc.edge, r3.Vector{}); errors.Cause(err) != tc.want {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSimpleMeshVertexEdges(t *testing.T) {
	m := newSimpleMesh(t, mustData(meshgen.Fan(6)))
	got := m.VertexEdges(0)
	want := []IndexedEdge{{V1: 0, V2: 1}, {V1: 0, V2: 2}, {V1: 0, V2: 3}, {V1: 0, V2: 4}, {V1: 0, V2: 5}, {V1: 0, V2: 6}}
	if !slices.Equal(got, want) {
		t.Errorf("VertexEdges(0): got %v, want %v", got, want)
	}
	if got, want := m.VertexEdges(3), []IndexedEdge{{V1: 2, V2: 3}, {V1: 0, V2: 3}, {V1: 3, V2: 4}}; !slices.Equal(got, want) {
		t.Errorf("VertexEdges(3): got %v, want %v", got, want)
	}
}

func TestNewSimpleMeshNormals(t *testing.T) {
	data := mustData(meshgen.Fan(6))
	data.Vertices = append(data.Vertices, r3.Vector{X: 9})
	m := newSimpleMesh(t, data)
	for v, vx := range m.Vertices().All() {
		n := vx.Normal
		if v == 7 {
			if n != (r3.Vector{}) {
				t.Errorf("normal of the lone vertex: got %v, want zero", n)
			}
			continue
		}
		if math.Abs(n.X) > 1e-12 || math.Abs(n.Y) > 1e-12 || math.Abs(n.Z-1) > 1e-12 {
			t.Errorf("normal of %v: got %v, want (0, 0, 1)", v, n)
		}
	}
	r := m.RenderData()
	if n := r.Normals[0]; math.Abs(n.Z-1) > 1e-12 {
		t.Errorf("exported normal of the center: got %v", n)
	}

	// Normals in the input are kept as they are.
	data = mustData(meshgen.Fan(3))
	for range data.Vertices {
		data.Normals = append(data.Normals, r3.Vector{X: 1})
	}
	m = newSimpleMesh(t, data)
	for v, vx := range m.Vertices().All() {
		if vx.Normal != (r3.Vector{X: 1}) {
			t.Errorf("normal of %v: got %v, want (1, 0, 0)", v, vx.Normal)
		}
	}
}

func TestSimpleMeshNormalsAndCleanup(t *testing.T) {
	data, err := meshgen.Grid(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	data.Vertices = append(data.Vertices, r3.Vector{X: 9})
	m := newSimpleMesh(t, data)

	m.RecalculateNormals()
	for v, vx := range m.Vertices().All() {
		if len(vx.ConnectedFaces) == 0 {
			continue
		}
		if vx.Normal != (r3.Vector{Z: 1}) {
			t.Errorf("normal of %v: got %v, want (0, 0, 1)", v, vx.Normal)
		}
	}

	if got, want := m.CleanVertices(), 1; got != want {
		t.Errorf("CleanVertices: got %d, want %d", got, want)
	}
	if got, want := m.Vertices().Len(), 6; got != want {
		t.Errorf("vertices: got %d, want %d", got, want)
	}
	if got := m.CleanVertices(); got != 0 {
		t.Errorf("second CleanVertices: got %d, want 0", got)
	}
}
