package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleScreen represents the main title screen
type TitleScreen struct {
	startTime      time.Time
	best           int
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen showing the best score
func NewTitleScreen(best int, onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		best:           best,
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if confirmPressed() && ts.onStartPressed != nil {
		ts.onStartPressed()
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{10, 12, 30, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	drawVanishingLines(screen, width, height, elapsed)

	// Pulsing title
	pulse := 1.0 + 0.08*sinWave(elapsed*2.0)
	titleScale := 7.0 * pulse
	brightness := math.Min(0.85+0.15*sinWave(elapsed*1.5), 1)
	titleColor := color.RGBA{
		uint8(80 * brightness),
		uint8(240 * brightness),
		uint8(255 * brightness),
		255,
	}
	drawCentered(screen, "APEX DRIFT", centerX, centerY-8*titleScale/2, titleScale, titleColor)
	drawCentered(screen, "Lean into every apex", centerX, centerY+70, 2, color.RGBA{180, 180, 210, 255})

	if ts.best > 0 {
		drawCentered(screen, fmt.Sprintf("BEST %d", ts.best), centerX, centerY+110, 2, color.RGBA{255, 200, 40, 255})
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		drawCentered(screen, "Press ENTER, SPACE or tap to start", centerX, float64(height)-100, 1.5, color.RGBA{150, 200, 255, 255})
	}
	drawCentered(screen, "Steer with LEFT/RIGHT or A/D", centerX, float64(height)-60, 1, color.RGBA{120, 120, 150, 255})
}

// sinWave returns a sine wave value between -1 and 1
func sinWave(t float64) float64 {
	return math.Sin(t)
}

// drawVanishingLines draws road edges converging on the horizon, scrolling over time
func drawVanishingLines(screen *ebiten.Image, width, height int, elapsed float64) {
	cx := float32(width) / 2
	horizon := float32(height) / 2
	lineColor := color.RGBA{60, 40, 120, 255}

	vector.StrokeLine(screen, cx, horizon, 0, float32(height), 2, lineColor, false)
	vector.StrokeLine(screen, cx, horizon, float32(width), float32(height), 2, lineColor, false)

	// Cross stripes run towards the viewer
	for i := 0; i < 8; i++ {
		u := math.Mod(float64(i)/8+elapsed*0.25, 1)
		y := horizon + float32(u*u)*(float32(height)-horizon)
		half := (y - horizon) / (float32(height) - horizon) * cx
		vector.StrokeLine(screen, cx-half, y, cx+half, y, 1, lineColor, false)
	}
}
