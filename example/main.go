//go:build example
// +build example

package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"

	"github.com/hajimehoshi/go-polymesh"
	"github.com/hajimehoshi/go-polymesh/meshgen"
	"github.com/hajimehoshi/go-polymesh/ply"
	"github.com/hajimehoshi/go-polymesh/simplify"
)

const (
	screenWidth  = 640
	screenHeight = 480
	tilt         = math.Pi / 5
)

var (
	flagPLY    = flag.String("ply", "", "PLY file to load; a generated terrain is used if empty")
	flagPoints = flag.Int("points", 400, "number of random points of the generated terrain")
	flagSeed   = flag.Int64("seed", 1, "seed of the generated terrain")
	flagRatio  = flag.Float64("ratio", 0.25, "fraction of vertices to keep on Space")
	flagOut    = flag.String("out", "simplified.ply", "PLY file written on S")
)

type viewer struct {
	simplifier *simplify.Simplifier
	render     *polymesh.RenderData
	angle      float64
	status     string
}

func (v *viewer) refresh() {
	m := v.simplifier.Mesh()
	m.RecalculateNormals()
	v.render = m.RenderData()
	v.status = fmt.Sprintf("vertices: %d faces: %d candidates: %d",
		m.Vertices().Len(), m.Faces().Len(), v.simplifier.Candidates().Len())
}

func (v *viewer) step(forward bool) error {
	var err error
	if forward {
		_, err = v.simplifier.SimplifyOneStep()
	} else {
		_, err = v.simplifier.RevertOneStep()
	}
	return err
}

func (v *viewer) handleInput() error {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyRight):
		if err := v.step(true); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		if err := v.step(false); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		target := int(float64(v.simplifier.InitialVertexCount()) * *flagRatio)
		if _, err := v.simplifier.SimplifyTo(target, math.MaxInt32, func(done, total int) {
			if done%100 == 0 {
				log.Printf("simplified %d/%d", done, total)
			}
		}); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := ply.Save(*flagOut, v.render); err != nil {
			return err
		}
		log.Printf("saved %s", *flagOut)
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		for v.simplifier.HasSnapshots() {
			if err := v.step(false); err != nil {
				return err
			}
		}
	default:
		return nil
	}
	v.refresh()
	return nil
}

func (v *viewer) project(p r3.Vector) (float64, float64) {
	b := v.render.Bounds
	size := b.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent == 0 {
		extent = 1
	}
	p = p.Sub(b.Center()).Mul(1 / extent)

	sin, cos := math.Sincos(v.angle)
	x := cos*p.X - sin*p.Y
	y := sin*p.X + cos*p.Y
	y = y*math.Cos(tilt) - p.Z*math.Sin(tilt)

	scale := 0.8 * screenHeight
	return screenWidth/2 + x*scale, screenHeight/2 - y*scale
}

func (v *viewer) update(screen *ebiten.Image) error {
	if err := v.handleInput(); err != nil {
		return err
	}
	v.angle += 0.005

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	lineColor := color.RGBA{0x80, 0xc0, 0xff, 0xff}
	es := v.render.EdgeIndices
	for i := 0; i+1 < len(es); i += 2 {
		x0, y0 := v.project(v.render.Vertices[es[i]])
		x1, y1 := v.project(v.render.Vertices[es[i+1]])
		ebitenutil.DrawLine(screen, x0, y0, x1, y1, lineColor)
	}
	msg := v.status + "\n[Right] simplify [Left] revert [Space] to ratio [S] save [R] reset"
	return ebitenutil.DebugPrint(screen, msg)
}

func load() (*polymesh.MeshData, error) {
	if *flagPLY != "" {
		return ply.Load(*flagPLY)
	}
	return meshgen.Terrain(*flagPoints, *flagSeed)
}

func main() {
	flag.Parse()

	data, err := load()
	if err != nil {
		log.Fatal(err)
	}
	mesh, err := polymesh.NewSimpleMesh(data)
	if err != nil {
		log.Fatal(err)
	}
	s := simplify.New(mesh)
	if err := s.Initialize(); err != nil {
		log.Fatal(err)
	}

	v := &viewer{simplifier: s}
	v.refresh()
	if err := ebiten.Run(v.update, screenWidth, screenHeight, 1, "polymesh"); err != nil {
		log.Fatal(err)
	}
}
