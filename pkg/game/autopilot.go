package game

import (
	"math"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"go.uber.org/zap"
)

// Autopilot steers a session without a player. It leans into the curve
// under the car, pulls back toward the centreline and commits to the
// direction of an apex once it is inside the scoring window.
type Autopilot struct {
	tuning   config.VehicleTuning
	deadband float64
}

// NewAutopilot creates an autopilot for the given vehicle tuning
func NewAutopilot(tuning config.VehicleTuning) *Autopilot {
	return &Autopilot{tuning: tuning, deadband: 0.15}
}

// Intents decides this tick's steering from the session state
func (a *Autopilot) Intents(s *Session) vehicle.Intents {
	st := s.Vehicle()
	t := a.tuning

	curvature := s.Road().CurvatureAt(st.Distance)
	want := curvature*t.CurveSensitivity/t.SteerSensitivity - 1.5*st.LateralOffset

	for _, apex := range s.Road().Apexes() {
		if apex.Hit || math.Abs(apex.Z-st.Distance) >= t.PerfectWindow {
			continue
		}
		// Only commit when leaning into the apex will not run the car wide
		if float64(apex.Direction)*st.LateralOffset < 0.5 {
			want = float64(apex.Direction)
		}
		break
	}

	switch {
	case want > a.deadband:
		return vehicle.Intents{SteerRight: true}
	case want < -a.deadband:
		return vehicle.Intents{SteerLeft: true}
	}
	return vehicle.Intents{}
}

// RunSummary describes a finished headless run
type RunSummary struct {
	Seed     int64
	Ticks    int
	Score    int
	Distance float64
	Crashed  bool
	Good     int
	Perfect  int
}

// Simulate drives a run with the autopilot at a fixed step until it
// crashes or maxTicks pass
func Simulate(tuning *config.Tuning, seed int64, maxTicks int, dt float64) (RunSummary, error) {
	s := NewSession(tuning)
	pilot := NewAutopilot(tuning.Vehicle)
	sum := RunSummary{Seed: seed}

	s.OnEvent(func(e vehicle.Event) {
		if e.Kind != vehicle.EventApexHit {
			return
		}
		if e.Rating == vehicle.RatingPerfect {
			sum.Perfect++
		} else {
			sum.Good++
		}
	})

	s.Start(seed)
	for sum.Ticks < maxTicks && s.Phase() == PhaseDriving {
		if err := s.Tick(dt, pilot.Intents(s)); err != nil {
			return sum, err
		}
		sum.Ticks++
	}

	st := s.Vehicle()
	sum.Score = st.Score
	sum.Distance = st.Distance
	sum.Crashed = s.Phase() == PhaseCrashed

	s.logger.Info("simulation finished",
		zap.Int64("seed", seed),
		zap.Int("ticks", sum.Ticks),
		zap.Int("score", sum.Score),
		zap.Float64("distance", sum.Distance),
		zap.Bool("crashed", sum.Crashed),
		zap.Int("good", sum.Good),
		zap.Int("perfect", sum.Perfect),
	)
	return sum, nil
}
