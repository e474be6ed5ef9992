package vehicle

import "github.com/golangdaddy/apexdrift/pkg/road"

// Track is the part of the road the car reads while driving
type Track interface {
	CurvatureAt(z float64) float64
	Apexes() []*road.Apex
}

// Intents are the abstract steering inputs for one tick
type Intents struct {
	SteerLeft  bool
	SteerRight bool
}

// TargetLean maps intents to -1, 0 or +1. Right wins when both are held.
func (in Intents) TargetLean() float64 {
	if in.SteerRight {
		return 1
	}
	if in.SteerLeft {
		return -1
	}
	return 0
}

// Phase is the state of the car's run
type Phase int

const (
	PhaseDriving Phase = iota
	PhaseCrashed
)

func (p Phase) String() string {
	if p == PhaseCrashed {
		return "crashed"
	}
	return "driving"
}

// Rating grades a lean-timed apex hit
type Rating int

const (
	RatingGood Rating = iota
	RatingPerfect
)

func (r Rating) String() string {
	if r == RatingPerfect {
		return "PERFECT"
	}
	return "GOOD"
}

// EventKind identifies a discrete signal emitted by a tick
type EventKind int

const (
	EventApexHit EventKind = iota
	EventCrashed
)

// Event is emitted for sound triggers and UI feedback
type Event struct {
	Kind   EventKind
	Rating Rating  // Set for EventApexHit
	Z      float64 // Distance where it happened
	Score  int     // Score at the time of the event
}

// TrailPoint is one sample of the light trail
type TrailPoint struct {
	Offset float64 // Normalized lateral offset when recorded
	Z      float64 // Distance travelled when recorded
	Alpha  float64 // Opacity in (0,1]
}

// CrashState is the ballistic tail played after a crash.
// X and Y are world units relative to where the car left the road.
type CrashState struct {
	Active          bool
	X, Y            float64
	VX, VY          float64
	Rotation        float64
	AngularVelocity float64
}

// State is the car's kinematic state, mutated only by Car.Tick
type State struct {
	LateralOffset float64 // ±1 is the edge of the tarmac
	Lean          float64 // Smoothed lean in [-1,1]
	TargetLean    float64 // Lean the intents ask for
	Speed         float64
	Distance      float64
	OffRoad       bool
	Vibration     float64 // Shake magnitude while off-road
	Score         int
	Crash         *CrashState
	Trail         []TrailPoint
}
