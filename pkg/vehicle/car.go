package vehicle

import (
	"math"
	"slices"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/samber/lo"
)

// Car simulates the player's vehicle for one run
type Car struct {
	tuning config.VehicleTuning
	phase  Phase
	state  State
	ticks  int
}

// NewCar creates a car at rest in the middle of the road
func NewCar(tuning config.VehicleTuning) *Car {
	return &Car{
		tuning: tuning,
		phase:  PhaseDriving,
	}
}

// Phase reports whether the car is still driving
func (c *Car) Phase() Phase {
	return c.phase
}

// State returns a copy of the car's state for readers
func (c *Car) State() State {
	s := c.state
	s.Trail = slices.Clone(c.state.Trail)
	if c.state.Crash != nil {
		crash := *c.state.Crash
		s.Crash = &crash
	}
	return s
}

// SpeedRatio is speed as a share of the top speed
func (c *Car) SpeedRatio() float64 {
	return c.state.Speed / c.tuning.MaxSpeed
}

// Tick advances the car by dt seconds using the segment under it
func (c *Car) Tick(dt float64, in Intents, track Track) []Event {
	var events []Event
	switch c.phase {
	case PhaseDriving:
		events = c.drive(dt, in, track)
	case PhaseCrashed:
		c.tumble(dt)
	}
	c.fadeTrail(dt)
	if c.phase == PhaseDriving {
		c.sampleTrail()
	}
	return events
}

func (c *Car) drive(dt float64, in Intents, track Track) []Event {
	t := c.tuning
	s := &c.state

	// Already past the threshold when the tick starts
	if math.Abs(s.LateralOffset) > t.CollisionThreshold {
		return []Event{c.crash()}
	}

	// Lean follows the intent through a first order filter
	s.TargetLean = in.TargetLean()
	s.Lean += (s.TargetLean - s.Lean) * math.Min(t.LeanSmoothing*dt, 1)

	// Off-road drags speed down but never stalls the car
	if s.OffRoad {
		s.Speed = math.Max(s.Speed-t.OffRoadFriction*dt, t.OffRoadMinSpeed)
	} else {
		s.Speed = math.Min(s.Speed+t.Acceleration*dt, t.MaxSpeed)
	}

	// Lateral authority scales with speed
	dx := dt * 2 * (s.Speed / t.MaxSpeed)
	curvature := track.CurvatureAt(s.Distance)
	s.LateralOffset += s.Lean*dx*t.SteerSensitivity - curvature*dx*t.CurveSensitivity

	if math.Abs(curvature) < t.CenteringCurvature && s.TargetLean == 0 {
		s.LateralOffset = approach(s.LateralOffset, 0, t.CenteringRate*dt)
	}

	offset := math.Abs(s.LateralOffset)
	s.OffRoad = offset > t.OffRoadLimit
	s.Vibration = 0
	if s.OffRoad {
		depth := (offset - t.OffRoadLimit) / (t.CollisionThreshold - t.OffRoadLimit)
		s.Vibration = math.Min(depth, 1) * t.MaxVibration
	}

	if offset > t.CollisionThreshold {
		return []Event{c.crash()}
	}

	events := c.scoreApexes(track.Apexes())
	s.Distance += s.Speed * dt
	return events
}

// crash switches to the crashed phase and flings the car off the side it left by
func (c *Car) crash() Event {
	t := c.tuning
	s := &c.state
	side := 1.0
	if s.LateralOffset < 0 {
		side = -1
	}
	s.Crash = &CrashState{
		Active:          true,
		VX:              t.CrashFling * s.Speed * side,
		VY:              t.CrashHop,
		Rotation:        s.Lean,
		AngularVelocity: t.CrashSpin * side,
	}
	s.Vibration = 0
	c.phase = PhaseCrashed
	return Event{Kind: EventCrashed, Z: s.Distance, Score: s.Score}
}

// tumble integrates the crash body. Presentation only.
func (c *Car) tumble(dt float64) {
	t := c.tuning
	s := &c.state

	s.Speed -= s.Speed * math.Min(t.CrashSpeedDecay*dt, 1)
	s.Distance += s.Speed * dt

	cr := s.Crash
	if cr == nil {
		return
	}
	cr.X += cr.VX * dt
	cr.Y += cr.VY * dt
	cr.VY -= t.CrashGravity * dt
	cr.Rotation += cr.AngularVelocity * dt
}

func (c *Car) fadeTrail(dt float64) {
	for i := range c.state.Trail {
		c.state.Trail[i].Alpha -= c.tuning.TrailFade * dt
	}
	c.state.Trail = lo.Filter(c.state.Trail, func(p TrailPoint, _ int) bool {
		return p.Alpha > 0
	})
}

func (c *Car) sampleTrail() {
	c.ticks++
	if c.ticks%c.tuning.TrailEvery != 0 {
		return
	}
	c.state.Trail = append(c.state.Trail, TrailPoint{
		Offset: c.state.LateralOffset,
		Z:      c.state.Distance,
		Alpha:  1,
	})
}

// approach moves cur towards target by at most maxDelta
func approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		return math.Min(cur+maxDelta, target)
	}
	if cur > target {
		return math.Max(cur-maxDelta, target)
	}
	return cur
}
