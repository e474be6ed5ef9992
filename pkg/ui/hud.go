package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// KPHAtTopSpeed is what the speedometer reads at full speed
const KPHAtTopSpeed = 280.0

// flashSeconds is how long an apex rating stays on screen
const flashSeconds = 0.9

// Readout is what the HUD shows for one frame
type Readout struct {
	Score      int
	Best       int
	SpeedRatio float64
	OffRoad    bool
}

// HUD draws the score, the speedometer and apex rating flashes
type HUD struct {
	rating string
	age    float64
}

// NewHUD creates an empty HUD
func NewHUD() *HUD {
	return &HUD{age: flashSeconds}
}

// Flash shows an apex rating
func (h *HUD) Flash(rating string) {
	h.rating = rating
	h.age = 0
}

// Update ages the rating flash
func (h *HUD) Update(dt float64) {
	h.age += dt
}

// Flashing returns the rating on screen and its remaining opacity
func (h *HUD) Flashing() (string, float64) {
	if h.age >= flashSeconds || h.rating == "" {
		return "", 0
	}
	return h.rating, 1 - h.age/flashSeconds
}

// Draw renders the HUD over the road
func (h *HUD) Draw(screen *ebiten.Image, r Readout) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	drawAt(screen, fmt.Sprintf("SCORE %d", r.Score), 20, 16, 2, color.RGBA{240, 240, 255, 255})
	drawAt(screen, fmt.Sprintf("BEST  %d", r.Best), 20, 48, 1.5, color.RGBA{255, 200, 40, 255})

	h.drawSpeedometer(screen, float64(width)-200, float64(height)-130, r.SpeedRatio)

	if r.OffRoad {
		drawCentered(screen, "OFF ROAD", float64(width)/2, 90, 2, color.RGBA{255, 90, 60, 255})
	}

	if rating, alpha := h.Flashing(); rating != "" {
		c := color.RGBA{255, 200, 40, 255}
		if rating == "PERFECT" {
			c = color.RGBA{80, 240, 255, 255}
		}
		scale := 3 + (1-alpha)*2
		drawCentered(screen, rating, float64(width)/2, float64(height)/4, scale, fadeColor(c, alpha))
	}
}

// drawSpeedometer draws a panel with the speed in KPH and a gauge bar
func (h *HUD) drawSpeedometer(screen *ebiten.Image, x, y, ratio float64) {
	width, height := 180.0, 110.0

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{20, 20, 30, 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 2, color.RGBA{100, 100, 120, 255}, false)

	kph := ratio * KPHAtTopSpeed
	drawCentered(screen, fmt.Sprintf("%.0f", kph), x+width/2, y+14, 3, speedColor(ratio))
	drawCentered(screen, "KPH", x+width/2, y+58, 1.5, color.RGBA{200, 200, 200, 255})

	drawGauge(screen, x+10, y+height-25, width-20, 15, ratio)
}

// drawGauge draws a horizontal bar filled to ratio
func drawGauge(screen *ebiten.Image, x, y, width, height, ratio float64) {
	ratio = math.Max(0, math.Min(ratio, 1))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{40, 40, 40, 255}, false)
	if ratio > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*ratio), float32(height), gaugeColor(ratio), false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, color.RGBA{150, 150, 150, 255}, false)
}

// speedColor is green when slow, yellow when fast and red near the top
func speedColor(ratio float64) color.RGBA {
	switch {
	case ratio < 0.5:
		return color.RGBA{100, 255, 100, 255}
	case ratio < 0.8:
		return color.RGBA{255, 255, 100, 255}
	}
	return color.RGBA{255, 100, 100, 255}
}

// gaugeColor blends green to yellow to red
func gaugeColor(ratio float64) color.RGBA {
	if ratio < 0.5 {
		k := ratio / 0.5
		return color.RGBA{uint8(100 + k*155), 255, 100, 255}
	}
	k := (ratio - 0.5) / 0.5
	return color.RGBA{255, uint8(255 - k*155), uint8(100 - k*100), 255}
}

// fadeColor premultiplies alpha
func fadeColor(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		uint8(float64(c.R) * alpha),
		uint8(float64(c.G) * alpha),
		uint8(float64(c.B) * alpha),
		uint8(float64(c.A) * alpha),
	}
}
