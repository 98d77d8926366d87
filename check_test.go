package polymesh

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

func triangleMesh(t *testing.T) *HalfedgeMesh {
	t.Helper()
	faces := NewFaceList(1, 3)
	if err := faces.AddFace(0, 1, 2); err != nil {
		t.Fatal(err)
	}
	m, err := NewHalfedgeMesh(NewMeshData(make([]r3.Vector, 3), faces), nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCheckDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(m *HalfedgeMesh)
	}{
		{"next loops on itself", func(m *HalfedgeMesh) { m.setNext(0, 0) }},
		{"next leaves the wrong vertex", func(m *HalfedgeMesh) { m.setNext(0, 1) }},
		{"face on a boundary halfedge", func(m *HalfedgeMesh) { m.setFace(1, 0) }},
		{"dead face member", func(m *HalfedgeMesh) { m.faces.put(0, HalfedgeFace{Member: 40}) }},
		{"vertex member points elsewhere", func(m *HalfedgeMesh) {
			vx := m.vertices.At(0)
			vx.Member = 0
			m.vertices.put(0, vx)
		}},
		{"valence out of date", func(m *HalfedgeMesh) { m.valence[2]++ }},
		{"dead opposite", func(m *HalfedgeMesh) {
			if err := m.halfedges.Remove(1); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := triangleMesh(t)
			if err := m.Check(); err != nil {
				t.Fatalf("before corruption: %v", err)
			}
			tc.corrupt(m)
			if err := m.Check(); errors.Cause(err) != ErrInvariant {
				t.Errorf("got %v, want %v", err, ErrInvariant)
			}
		})
	}
}

func TestAssert(t *testing.T) {
	defer func() {
		if r := recover(); r != "polymesh: assertion error" {
			t.Errorf("recovered %v", r)
		}
	}()
	assert(false)
}
