package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices keeps a batch inside uint16 indices
const maxBatchVertices = 60000

var whiteImage *ebiten.Image

// solidSource returns a white image to sample flat colours from
func solidSource() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// Rasterize paints a draw list onto screen in list order, then the car
func Rasterize(screen *ebiten.Image, dl DrawList, frame int) {
	var vs []ebiten.Vertex
	var is []uint16

	flush := func() {
		if len(is) == 0 {
			return
		}
		op := &ebiten.DrawTrianglesOptions{}
		op.FillRule = ebiten.FillRuleNonZero
		screen.DrawTriangles(vs, is, solidSource(), op)
		vs, is = vs[:0], is[:0]
	}

	for _, q := range dl.Quads {
		if len(vs)+8 > maxBatchVertices {
			flush()
		}
		base := len(vs)

		var path vector.Path
		path.MoveTo(q.Points[0].X, q.Points[0].Y)
		for _, p := range q.Points[1:] {
			path.LineTo(p.X, p.Y)
		}
		path.Close()
		vs, is = path.AppendVerticesAndIndicesForFilling(vs, is)

		r, g, b, a := float32(q.Color.R)/255, float32(q.Color.G)/255, float32(q.Color.B)/255, float32(q.Color.A)/255
		for i := base; i < len(vs); i++ {
			vs[i].SrcX = 1
			vs[i].SrcY = 1
			vs[i].ColorR = r
			vs[i].ColorG = g
			vs[i].ColorB = b
			vs[i].ColorA = a
		}
	}
	flush()

	if dl.Car.Width > 0 {
		DrawCar(screen, shake(dl.Car, frame))
	}
}

// shake offsets the silhouette by a deterministic jitter for the frame
func shake(s Silhouette, frame int) Silhouette {
	if s.Vibration <= 0 {
		return s
	}
	f := float64(frame)
	s.X += math.Sin(f*2.3) * s.Vibration
	s.Y += math.Cos(f*3.7) * s.Vibration * 0.5
	return s
}
