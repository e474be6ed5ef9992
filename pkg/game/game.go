package game

import (
	"time"

	"github.com/golangdaddy/apexdrift/pkg/background"
	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/golangdaddy/apexdrift/pkg/log"
	"github.com/golangdaddy/apexdrift/pkg/models"
	"github.com/golangdaddy/apexdrift/pkg/sound"
	"github.com/golangdaddy/apexdrift/pkg/ui"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Options configure a windowed game
type Options struct {
	Width, Height int
	Seed          int64 // 0 picks a new seed per run
	Muted         bool
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	opts          Options
	session       *Session
	scores        *models.HighScoreStore
	sink          *sound.Sink
	hud           *ui.HUD
	backdrop      *background.Backdrop
	currentScreen Screen
	logger        *zap.Logger
}

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// NewGame creates a new game instance
func NewGame(tuning *config.Tuning, scores *models.HighScoreStore, opts Options) *Game {
	g := &Game{
		opts:     opts,
		session:  NewSession(tuning),
		scores:   scores,
		sink:     sound.NewSink(opts.Muted),
		hud:      ui.NewHUD(),
		backdrop: background.NewGenerator(opts.Width, opts.Height/3).Generate(opts.Seed),
		logger:   log.Named("game"),
	}
	g.session.SetBest(scores.Best().Score)

	g.session.OnEvent(g.sink.HandleEvent)
	g.session.OnEvent(func(e vehicle.Event) {
		if e.Kind == vehicle.EventApexHit {
			g.hud.Flash(e.Rating.String())
		}
	})

	g.showTitle()
	return g
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.opts.Width, g.opts.Height
}

func (g *Game) showTitle() {
	g.session.Stop()
	g.currentScreen = ui.NewTitleScreen(g.scores.Best().Score, g.startGameplay)
}

// startGameplay begins a run and switches to the driving screen
func (g *Game) startGameplay() {
	seed := g.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.session.Start(seed)
	g.currentScreen = NewGameplayScreen(g.session, g.hud, g.backdrop, g.endRun)
}

// endRun records the result and shows the game over panel over the last frame
func (g *Game) endRun(score int, distance float64) {
	gameplay := g.currentScreen
	improved, err := g.scores.Submit(score, distance, g.session.Seed())
	if err != nil {
		g.logger.Warn("high score not saved", zap.Error(err))
	}

	g.currentScreen = ui.NewGameOverScreen(score, g.scores.Best().Score, improved, distance, gameplay.Draw, g.startGameplay)
}
