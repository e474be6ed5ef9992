package game

import (
	"errors"
	"math"
	"math/rand"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/golangdaddy/apexdrift/pkg/log"
	"github.com/golangdaddy/apexdrift/pkg/render"
	"github.com/golangdaddy/apexdrift/pkg/road"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"go.uber.org/zap"
)

// ErrNoActiveRun is returned when ticking a session that has no run
var ErrNoActiveRun = errors.New("game: no active run")

// Phase is the session's position in the menu/run cycle
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseDriving
	PhaseCrashed
)

func (p Phase) String() string {
	switch p {
	case PhaseDriving:
		return "driving"
	case PhaseCrashed:
		return "crashed"
	}
	return "menu"
}

// Listener receives vehicle events synchronously at the end of a tick
type Listener func(vehicle.Event)

// Signals are the per-frame outputs read by the HUD and the audio sink
type Signals struct {
	Phase      Phase
	Score      int
	Best       int
	SpeedRatio float64
	Lean       float64 // Lean magnitude in [0,1]
	OffRoad    bool
	Distance   float64
	Curvature  float64 // Curvature under the car
	SlowMo     float64
}

// Session owns every piece of mutable run state. The frame scheduler
// drives it one Tick per frame.
type Session struct {
	tuning    *config.Tuning
	renderer  *render.Renderer
	logger    *zap.Logger
	phase     Phase
	road      *road.Road
	car       *vehicle.Car
	slowMo    float64
	best      int
	seed      int64
	ticks     int
	listeners []Listener
}

// NewSession creates a session sitting in the menu
func NewSession(tuning *config.Tuning) *Session {
	return &Session{
		tuning:   tuning,
		renderer: render.NewRenderer(tuning.Render, tuning.Vehicle.CollisionThreshold),
		logger:   log.Named("session"),
		phase:    PhaseMenu,
		slowMo:   1,
	}
}

// OnEvent registers a listener for apex hits and crashes
func (s *Session) OnEvent(l Listener) {
	s.listeners = append(s.listeners, l)
}

// SetBest seeds the best score, usually from the high score store
func (s *Session) SetBest(best int) {
	s.best = max(s.best, best)
}

// Start begins a fresh run. All previous run state is dropped.
func (s *Session) Start(seed int64) {
	s.seed = seed
	s.road = road.NewRoad(s.tuning.Road, rand.New(rand.NewSource(seed)))
	s.car = vehicle.NewCar(s.tuning.Vehicle)
	s.slowMo = 1
	s.ticks = 0
	s.phase = PhaseDriving

	// Warm the horizon up so the first frame has a full road
	s.road.Fill(0)

	s.logger.Debug("run started",
		zap.Int64("seed", seed),
		zap.Int("segments", s.road.Len()),
	)
}

// Stop returns the session to the menu
func (s *Session) Stop() {
	s.phase = PhaseMenu
}

// Tick advances the run by one frame of realDt wall-clock seconds
func (s *Session) Tick(realDt float64, in vehicle.Intents) error {
	if s.phase == PhaseMenu || s.car == nil {
		return ErrNoActiveRun
	}
	t := s.tuning.Session

	frame := math.Max(0, math.Min(realDt, t.MaxFrameDelta))
	dt := frame * s.slowMo

	s.road.GenerateAhead(s.car.State().Distance)
	events := s.car.Tick(dt, in, s.road)
	s.ticks++

	for _, e := range events {
		if e.Kind == vehicle.EventCrashed {
			s.crashed(e)
		}
	}

	s.slowMo = math.Min(s.slowMo+(1-s.slowMo)*t.SlowMoRecovery*frame, 1)

	for _, e := range events {
		for _, l := range s.listeners {
			l(e)
		}
	}
	return nil
}

func (s *Session) crashed(e vehicle.Event) {
	s.phase = PhaseCrashed
	s.slowMo = s.tuning.Session.CrashSlowMo
	if e.Score > s.best {
		s.best = e.Score
	}

	stats := s.road.Stats()
	s.logger.Info("run ended",
		zap.Int64("seed", s.seed),
		zap.Int("score", e.Score),
		zap.Float64("distance", e.Z),
		zap.Int("ticks", s.ticks),
		zap.Int("blocks", stats.Blocks),
		zap.Int("prunedSegments", stats.PrunedSegments),
	)
}

// Phase returns the session phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Seed returns the seed of the current run
func (s *Session) Seed() int64 {
	return s.seed
}

// Ticks counts frames since the run started
func (s *Session) Ticks() int {
	return s.ticks
}

// Vehicle returns a copy of the car state, zero before the first run
func (s *Session) Vehicle() vehicle.State {
	if s.car == nil {
		return vehicle.State{}
	}
	return s.car.State()
}

// Road exposes the track for read-only use
func (s *Session) Road() *road.Road {
	return s.road
}

// Signals collects the outputs the presentation layer reads each frame
func (s *Session) Signals() Signals {
	sig := Signals{
		Phase:  s.phase,
		Best:   s.best,
		SlowMo: s.slowMo,
	}
	if s.car == nil {
		return sig
	}
	st := s.car.State()
	sig.Score = st.Score
	sig.SpeedRatio = s.car.SpeedRatio()
	sig.Lean = math.Abs(st.Lean)
	sig.OffRoad = st.OffRoad
	sig.Distance = st.Distance
	sig.Curvature = s.road.CurvatureAt(st.Distance)
	return sig
}

// DrawList builds the road and car for the viewport. Empty in the menu.
func (s *Session) DrawList(vp render.Viewport) render.DrawList {
	if s.car == nil {
		return render.DrawList{}
	}
	st := s.car.State()
	cam := s.renderer.Camera(st)
	window := s.road.Window(cam.Z, s.tuning.Render.DrawSegments+1)
	return s.renderer.Build(window, render.Scene{Vehicle: st, Viewport: vp})
}
