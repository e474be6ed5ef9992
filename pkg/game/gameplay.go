package game

import (
	"time"

	"github.com/golangdaddy/apexdrift/pkg/background"
	"github.com/golangdaddy/apexdrift/pkg/render"
	"github.com/golangdaddy/apexdrift/pkg/ui"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
)

// crashTail is how long the crash plays before the game over panel
const crashTail = 1.6 * float64(time.Second)

// GameplayScreen represents the main driving gameplay
type GameplayScreen struct {
	session   *Session
	hud       *ui.HUD
	backdrop  *background.Backdrop
	lastTick  time.Time
	crashedAt time.Time
	frame     int
	width     int
	onGameEnd func(score int, distance float64) // Callback when the crash has played out
}

// NewGameplayScreen creates a driving screen for a started session
func NewGameplayScreen(session *Session, hud *ui.HUD, backdrop *background.Backdrop, onGameEnd func(int, float64)) *GameplayScreen {
	return &GameplayScreen{
		session:   session,
		hud:       hud,
		backdrop:  backdrop,
		lastTick:  time.Now(),
		onGameEnd: onGameEnd,
	}
}

// Update advances the session by the wall-clock time since the last frame
func (gs *GameplayScreen) Update() error {
	now := time.Now()
	realDt := now.Sub(gs.lastTick).Seconds()
	gs.lastTick = now
	gs.frame++

	if err := gs.session.Tick(realDt, readIntents(gs.width)); err != nil {
		return err
	}

	sig := gs.session.Signals()
	gs.hud.Update(realDt)
	gs.backdrop.Scroll(sig.Curvature, sig.SpeedRatio, realDt*sig.SlowMo)

	if sig.Phase == PhaseCrashed {
		if gs.crashedAt.IsZero() {
			gs.crashedAt = now
		}
		if float64(now.Sub(gs.crashedAt)) >= crashTail && gs.onGameEnd != nil {
			gs.onGameEnd(sig.Score, sig.Distance)
		}
	}
	return nil
}

// Draw renders the backdrop, the road and the HUD
func (gs *GameplayScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	gs.width = width

	dl := gs.session.DrawList(render.Viewport{W: float64(width), H: float64(height)})
	horizon := dl.Horizon
	if horizon == 0 {
		horizon = float64(height) / 2
	}
	gs.backdrop.Draw(screen, horizon)
	render.Rasterize(screen, dl, gs.frame)

	sig := gs.session.Signals()
	gs.hud.Draw(screen, ui.Readout{
		Score:      sig.Score,
		Best:       sig.Best,
		SpeedRatio: sig.SpeedRatio,
		OffRoad:    sig.OffRoad,
	})
}

// readIntents maps the keyboard and touches to steering intents
func readIntents(width int) vehicle.Intents {
	in := vehicle.Intents{
		SteerLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		SteerRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
	var xs []int
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		xs = append(xs, x)
	}
	return mergeTouches(in, xs, width)
}

// mergeTouches adds touches to intents: the left half of the screen steers
// left, the right half steers right
func mergeTouches(in vehicle.Intents, xs []int, width int) vehicle.Intents {
	if width <= 0 {
		return in
	}
	for _, x := range xs {
		if x < width/2 {
			in.SteerLeft = true
		} else {
			in.SteerRight = true
		}
	}
	return in
}
