package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// inputDelay keeps a held steering key from skipping the screen
const inputDelay = 700 * time.Millisecond

// GameOverScreen shows the final score over the frozen road
type GameOverScreen struct {
	shownAt   time.Time
	score     int
	best      int
	newBest   bool
	distance  float64
	backdrop  func(screen *ebiten.Image)
	onRestart func()
}

// NewGameOverScreen creates the screen. backdrop redraws the last frame behind the panel.
func NewGameOverScreen(score, best int, newBest bool, distance float64, backdrop func(*ebiten.Image), onRestart func()) *GameOverScreen {
	return &GameOverScreen{
		shownAt:   time.Now(),
		score:     score,
		best:      best,
		newBest:   newBest,
		distance:  distance,
		backdrop:  backdrop,
		onRestart: onRestart,
	}
}

// Update waits for a confirm press
func (gs *GameOverScreen) Update() error {
	if time.Since(gs.shownAt) < inputDelay {
		return nil
	}
	if confirmPressed() && gs.onRestart != nil {
		gs.onRestart()
	}
	return nil
}

// Draw renders the result panel
func (gs *GameOverScreen) Draw(screen *ebiten.Image) {
	if gs.backdrop != nil {
		gs.backdrop(screen)
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), color.RGBA{0, 0, 0, 150}, false)

	cx := float64(width) / 2
	cy := float64(height) / 3
	drawCentered(screen, "CRASHED", cx, cy-40, 5, color.RGBA{255, 80, 80, 255})
	drawCentered(screen, fmt.Sprintf("SCORE %d", gs.score), cx, cy+40, 3, color.RGBA{240, 240, 255, 255})
	drawCentered(screen, fmt.Sprintf("%.1f km", gs.distance/100000), cx, cy+90, 1.5, color.RGBA{180, 180, 210, 255})

	if gs.newBest {
		drawCentered(screen, "NEW BEST!", cx, cy+125, 2, color.RGBA{255, 200, 40, 255})
	} else {
		drawCentered(screen, fmt.Sprintf("BEST %d", gs.best), cx, cy+125, 2, color.RGBA{255, 200, 40, 255})
	}

	if time.Since(gs.shownAt) >= inputDelay {
		drawCentered(screen, "Press ENTER, SPACE or tap to drive again", cx, float64(height)-100, 1.5, color.RGBA{150, 200, 255, 255})
	}
}
