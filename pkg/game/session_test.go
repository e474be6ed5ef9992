package game

import (
	"testing"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/golangdaddy/apexdrift/pkg/render"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func TestTickWithoutRun(t *testing.T) {
	s := NewSession(config.Default())
	assert.Equal(t, PhaseMenu, s.Phase())
	assert.ErrorIs(t, s.Tick(frame, vehicle.Intents{}), ErrNoActiveRun)

	s.Start(1)
	require.NoError(t, s.Tick(frame, vehicle.Intents{}))

	s.Stop()
	assert.ErrorIs(t, s.Tick(frame, vehicle.Intents{}), ErrNoActiveRun)
}

func TestStartWarmsUpTheRoad(t *testing.T) {
	tuning := config.Default()
	s := NewSession(tuning)
	s.Start(7)

	assert.Equal(t, PhaseDriving, s.Phase())
	segs := s.Road().Segments()
	require.NotEmpty(t, segs)
	assert.GreaterOrEqual(t, segs[len(segs)-1].Z, float64(tuning.Road.VisibleSegments)*tuning.Road.SegmentLength)
}

func TestTickClampsFrameDelta(t *testing.T) {
	s := NewSession(config.Default())
	s.Start(3)

	// A two second stall only simulates the clamp
	require.NoError(t, s.Tick(2, vehicle.Intents{}))
	assert.InDelta(t, 2400*0.1, s.Vehicle().Speed, 1e-9)
}

func TestCrashTriggersSlowMo(t *testing.T) {
	s := NewSession(config.Default())
	s.SetBest(1)
	s.Start(11)

	var events []vehicle.Event
	s.OnEvent(func(e vehicle.Event) { events = append(events, e) })

	// Holding one side drives the car into the barrier
	crashedAt := -1
	for i := 0; i < 60*60 && crashedAt < 0; i++ {
		require.NoError(t, s.Tick(frame, vehicle.Intents{SteerRight: true}))
		if s.Phase() == PhaseCrashed {
			crashedAt = i
		}
	}
	require.GreaterOrEqual(t, crashedAt, 0, "car never crashed")

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, vehicle.EventCrashed, last.Kind)

	sig := s.Signals()
	assert.Equal(t, PhaseCrashed, sig.Phase)
	assert.Less(t, sig.SlowMo, 0.1)
	assert.Equal(t, max(1, last.Score), sig.Best)

	// Slow-mo relaxes back toward real time while the crash plays out
	for i := 0; i < 600; i++ {
		require.NoError(t, s.Tick(frame, vehicle.Intents{}))
	}
	assert.Greater(t, s.Signals().SlowMo, 0.99)
	assert.LessOrEqual(t, s.Signals().SlowMo, 1.0)
	assert.Equal(t, PhaseCrashed, s.Phase())
}

func TestStartResetsRun(t *testing.T) {
	s := NewSession(config.Default())
	s.Start(5)
	for i := 0; i < 120; i++ {
		require.NoError(t, s.Tick(frame, vehicle.Intents{}))
	}
	require.Greater(t, s.Vehicle().Distance, 0.0)

	s.Start(5)
	st := s.Vehicle()
	assert.Zero(t, st.Distance)
	assert.Zero(t, st.Speed)
	assert.Nil(t, st.Crash)
	assert.Empty(t, st.Trail)
	assert.Zero(t, s.Ticks())
	assert.Equal(t, 1.0, s.Signals().SlowMo)
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() vehicle.State {
		s := NewSession(config.Default())
		s.Start(42)
		for i := 0; i < 900; i++ {
			in := vehicle.Intents{SteerLeft: i%90 < 30, SteerRight: i%90 >= 60}
			require.NoError(t, s.Tick(frame, in))
		}
		return s.Vehicle()
	}
	assert.Equal(t, run(), run())
}

func TestSignalsAndDrawList(t *testing.T) {
	s := NewSession(config.Default())
	vp := render.Viewport{W: 800, H: 600}
	assert.Empty(t, s.DrawList(vp).Quads)

	s.Start(9)
	for i := 0; i < 30; i++ {
		require.NoError(t, s.Tick(frame, vehicle.Intents{SteerLeft: true}))
	}

	sig := s.Signals()
	assert.Equal(t, PhaseDriving, sig.Phase)
	assert.Greater(t, sig.SpeedRatio, 0.0)
	assert.LessOrEqual(t, sig.SpeedRatio, 1.0)
	assert.Greater(t, sig.Lean, 0.0)
	assert.Equal(t, s.Vehicle().Distance, sig.Distance)

	dl := s.DrawList(vp)
	assert.NotEmpty(t, dl.Quads)
	assert.Greater(t, dl.Car.Width, 0.0)
}
