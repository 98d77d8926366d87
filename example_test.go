package polymesh_test

import (
	"fmt"

	. "github.com/hajimehoshi/go-polymesh"
	"github.com/hajimehoshi/go-polymesh/meshgen"
)

func ExampleHalfedgeMesh() {
	data, err := meshgen.Grid(2, 1)
	if err != nil {
		panic(err)
	}
	m, err := NewHalfedgeMesh(data, nil)
	if err != nil {
		panic(err)
	}
	show := func() {
		fmt.Printf("%d vertices, %d faces, %d edges\n", m.Vertices().Len(), m.Faces().Len(), m.EdgeCount())
	}

	show()
	if err := m.RemoveFace(0); err != nil {
		panic(err)
	}
	show()
	if err := m.RemoveVertex(4); err != nil {
		panic(err)
	}
	show()

	// Output:
	// 6 vertices, 4 faces, 9 edges
	// 6 vertices, 3 faces, 8 edges
	// 3 vertices, 1 faces, 3 edges
}
