package background

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Layer is one strip of scenery scrolled at its own rate
type Layer struct {
	Image    *ebiten.Image
	Parallax float64 // Share of the scroll this layer follows
}

// Generator creates seeded horizon scenery
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a generator for strips of the given size. Strips are
// drawn twice side by side, so Width should be at least the screen width.
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// Backdrop is the sky and the layered skyline behind the road
type Backdrop struct {
	Sky    color.RGBA
	Layers []Layer
	scroll float64
}

// Generate builds a backdrop from seed
func (g *Generator) Generate(seed int64) *Backdrop {
	rng := rand.New(rand.NewSource(seed))
	return &Backdrop{
		Sky: color.RGBA{10, 12, 30, 255},
		Layers: []Layer{
			{Image: g.stars(rng), Parallax: 0.05},
			{Image: g.ridge(rng, color.RGBA{28, 22, 60, 255}, 0.9, 3), Parallax: 0.25},
			{Image: g.ridge(rng, color.RGBA{18, 14, 40, 255}, 0.55, 7), Parallax: 0.6},
			{Image: g.skyline(rng), Parallax: 1},
		},
	}
}

// stars scatters single pixels over a transparent strip
func (g *Generator) stars(rng *rand.Rand) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	for i := 0; i < g.Width*g.Height/300; i++ {
		shade := uint8(120 + rng.Intn(135))
		img.Set(rng.Intn(g.Width), rng.Intn(g.Height), color.RGBA{shade, shade, 255, 255})
	}
	return img
}

// ridge draws a band of hills whose sine harmonics tile across the strip
func (g *Generator) ridge(rng *rand.Rand, c color.RGBA, height float64, harmonics int) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	phases := make([]float64, harmonics)
	for i := range phases {
		phases[i] = rng.Float64() * 2 * math.Pi
	}

	for x := 0; x < g.Width; x++ {
		u := float64(x) / float64(g.Width) * 2 * math.Pi
		h := 0.0
		for i, p := range phases {
			k := float64(i + 1)
			h += math.Sin(u*k+p) / k
		}
		top := int(float64(g.Height) * (1 - height*(0.6+0.25*h)))
		for y := max(top, 0); y < g.Height; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// skyline draws lit towers standing on the horizon
func (g *Generator) skyline(rng *rand.Rand) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	body := color.RGBA{8, 8, 20, 255}
	for x := 0; x < g.Width; {
		w := 8 + rng.Intn(20)
		h := g.Height/6 + rng.Intn(g.Height/3)
		g.drawTower(img, x, w, h, body, rng)
		x += w + rng.Intn(12)
	}
	return img
}

// drawTower draws a block with a few lit windows
func (g *Generator) drawTower(img *ebiten.Image, x, w, h int, body color.RGBA, rng *rand.Rand) {
	lit := color.RGBA{255, 210, 120, 255}
	for ty := g.Height - h; ty < g.Height; ty++ {
		for tx := x; tx < x+w && tx < g.Width; tx++ {
			c := body
			if tx%3 == 1 && ty%4 == 1 && rng.Float64() < 0.15 {
				c = lit
			}
			img.Set(tx, ty, c)
		}
	}
}

// Scroll moves the backdrop by the curvature under the car. Scenery drifts
// against the direction of the turn.
func (b *Backdrop) Scroll(curvature, speedRatio, dt float64) {
	b.scroll -= curvature * speedRatio * dt * 40
}

// Offset is the current scroll position in pixels for a layer
func (b *Backdrop) Offset(l Layer) float64 {
	w := float64(l.Image.Bounds().Dx())
	return wrap(b.scroll*l.Parallax, w)
}

// Draw fills the sky and stands every layer on the horizon line
func (b *Backdrop) Draw(screen *ebiten.Image, horizon float64) {
	screen.Fill(b.Sky)
	for _, l := range b.Layers {
		w := float64(l.Image.Bounds().Dx())
		h := float64(l.Image.Bounds().Dy())
		x := b.Offset(l) - w
		for ; x < float64(screen.Bounds().Dx()); x += w {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x, horizon-h)
			screen.DrawImage(l.Image, op)
		}
	}
}

// wrap maps v into [0, w)
func wrap(v, w float64) float64 {
	if w <= 0 {
		return 0
	}
	v = math.Mod(v, w)
	if v < 0 {
		v += w
	}
	return v
}
