package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite size in texels, scaled to the projected width when drawn
const (
	spriteWidth  = 64
	spriteHeight = 36
)

// CarColor is the body colour of the player's car
var CarColor = color.RGBA{220, 30, 60, 255}

var carSprite *ebiten.Image

// rect fills a w x h block of img at x, y
func rect(img *ebiten.Image, x, y, w, h int, c color.Color) {
	block := ebiten.NewImage(w, h)
	block.Fill(c)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	img.DrawImage(block, op)
}

// buildCarSprite draws the rear view of the car once
func buildCarSprite() *ebiten.Image {
	img := ebiten.NewImage(spriteWidth, spriteHeight)

	// Tyres sit outside the body
	tyre := color.RGBA{20, 20, 24, 255}
	rect(img, 0, 22, 10, 14, tyre)
	rect(img, spriteWidth-10, 22, 10, 14, tyre)

	// Body and cabin
	rect(img, 4, 14, spriteWidth-8, 18, CarColor)
	cabin := color.RGBA{darken(CarColor.R), darken(CarColor.G), darken(CarColor.B), 255}
	rect(img, 12, 2, spriteWidth-24, 13, cabin)

	// Rear window
	rect(img, 15, 4, spriteWidth-30, 8, color.RGBA{110, 170, 220, 230})

	// Taillights and plate
	taillight := color.RGBA{255, 40, 40, 255}
	rect(img, 6, 17, 12, 5, taillight)
	rect(img, spriteWidth-18, 17, 12, 5, taillight)
	rect(img, spriteWidth/2-8, 24, 16, 5, color.RGBA{235, 235, 220, 255})

	// Bumper
	rect(img, 4, 30, spriteWidth-8, 3, color.RGBA{30, 30, 36, 255})
	return img
}

func darken(v uint8) uint8 {
	return uint8(int(v) * 3 / 4)
}

// DrawCar draws the car sprite standing on the silhouette's bottom centre
func DrawCar(screen *ebiten.Image, s Silhouette) {
	if carSprite == nil {
		carSprite = buildCarSprite()
	}

	scale := s.Width / spriteWidth
	op := &ebiten.DrawImageOptions{}

	// Pivot on the bottom centre so lean tilts the car over its tyres
	op.GeoM.Translate(-spriteWidth/2, -spriteHeight)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(s.Rotation)
	op.GeoM.Translate(s.X, s.Y)

	if s.Crashed {
		op.ColorScale.Scale(0.8, 0.7, 0.7, 1)
	}
	screen.DrawImage(carSprite, op)
}
