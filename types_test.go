package polymesh_test

import (
	"testing"

	"github.com/pkg/errors"

	. "github.com/hajimehoshi/go-polymesh"
)

func TestIndexedEdge(t *testing.T) {
	e, err := NewIndexedEdge(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := (IndexedEdge{V1: 2, V2: 5}); e != want {
		t.Errorf("got %v, want %v", e, want)
	}
	if !e.Contains(5) || e.Contains(3) {
		t.Errorf("Contains is wrong for %v", e)
	}
	if got := e.Other(2); got != 5 {
		t.Errorf("Other(2): got %v, want 5", got)
	}
	for _, tc := range []struct {
		a, b VertexRef
	}{
		{3, 3},
		{NoVertex, 3},
		{3, NoVertex},
		{NoVertex, NoVertex},
		{-7, 2},
	} {
		if _, err := NewIndexedEdge(tc.a, tc.b); errors.Cause(err) != ErrInvalidInput {
			t.Errorf("NewIndexedEdge(%v, %v): got %v, want %v", tc.a, tc.b, err, ErrInvalidInput)
		}
	}
}

func TestIndexedTriangle(t *testing.T) {
	for _, vs := range [][3]VertexRef{
		{1, 1, 2},
		{NoVertex, 1, 2},
		{1, NoVertex, NoVertex},
	} {
		if _, err := NewIndexedTriangle(vs[0], vs[1], vs[2]); errors.Cause(err) != ErrInvalidInput {
			t.Errorf("NewIndexedTriangle%v: got %v, want %v", vs, err, ErrInvalidInput)
		}
	}
	none, err := NewIndexedTriangle(NoVertex, NoVertex, NoVertex)
	if err != nil {
		t.Fatal(err)
	}
	if !none.IsDeleted() {
		t.Errorf("triangle of none refs is not deleted")
	}

	tri, err := NewIndexedTriangle(4, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := [3]IndexedEdge{{V1: 4, V2: 7}, {V1: 1, V2: 7}, {V1: 1, V2: 4}}
	if got := tri.Edges(); got != want {
		t.Errorf("Edges: got %v, want %v", got, want)
	}

	replaced, err := tri.ReplaceVertex(7, 9)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := replaced.Vertices(), [3]VertexRef{4, 9, 1}; got != want {
		t.Errorf("ReplaceVertex: got %v, want %v", got, want)
	}
	if got, want := tri.Vertices(), [3]VertexRef{4, 7, 1}; got != want {
		t.Errorf("ReplaceVertex modified the receiver: %v", got)
	}
	if _, err := tri.ReplaceVertex(7, 1); errors.Cause(err) != ErrInvalidInput {
		t.Errorf("replace with existing corner: got %v, want %v", err, ErrInvalidInput)
	}
	if _, err := tri.ReplaceVertex(7, NoVertex); errors.Cause(err) != ErrInvalidInput {
		t.Errorf("replace with none: got %v, want %v", err, ErrInvalidInput)
	}
	if _, err := tri.ReplaceVertex(8, 2); errors.Cause(err) != ErrNotFound {
		t.Errorf("replace missing corner: got %v, want %v", err, ErrNotFound)
	}

	if tri.IsDeleted() || !tri.DeletedClone().IsDeleted() {
		t.Errorf("deleted state is wrong")
	}
}

func TestVertexWithFaceBindingsClone(t *testing.T) {
	v := VertexWithFaceBindings{ConnectedFaces: []FaceRef{1, 2}}
	c := v.Clone()
	c.ConnectedFaces[0] = 9
	if v.ConnectedFaces[0] != 1 {
		t.Errorf("Clone shares ConnectedFaces")
	}
	if !v.DeletedClone().IsDeleted() || v.IsDeleted() {
		t.Errorf("deleted state is wrong")
	}
}

func TestFaceList(t *testing.T) {
	l := NewFaceList(2, 4)
	if err := l.AddFace(1, 2, 4); err != nil {
		t.Fatal(err)
	}
	if err := l.AddFace(5, 7, 9, 4); err != nil {
		t.Fatal(err)
	}
	if err := l.AddFace(1, 2); errors.Cause(err) != ErrInvalidInput {
		t.Errorf("two indices: got %v, want %v", err, ErrInvalidInput)
	}
	if err := l.AddFace(1, -2, 3); errors.Cause(err) != ErrInvalidInput {
		t.Errorf("negative index: got %v, want %v", err, ErrInvalidInput)
	}
	if got, want := l.Len(), 2; got != want {
		t.Fatalf("Len: got %d, want %d", got, want)
	}
	var sizes []int
	for _, f := range l.All() {
		sizes = append(sizes, len(f))
	}
	if len(sizes) != 2 || sizes[0] != 3 || sizes[1] != 4 {
		t.Errorf("face sizes: got %v", sizes)
	}
	if got := l.Face(1)[3]; got != 4 {
		t.Errorf("Face(1)[3]: got %d, want 4", got)
	}
}
