package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant of a run.
//
// The zero value is not usable, start from Default() and override fields,
// or load a YAML file with Load which merges over the defaults.
type Tuning struct {
	Road    RoadTuning    `yaml:"road"`
	Vehicle VehicleTuning `yaml:"vehicle"`
	Render  RenderTuning  `yaml:"render"`
	Session SessionTuning `yaml:"session"`
}

// RoadTuning configures the procedural track generator
type RoadTuning struct {
	SegmentLength      float64 `yaml:"segmentLength"`      // world units between segments
	VisibleSegments    int     `yaml:"visibleSegments"`    // horizon kept ahead of the car
	SegmentKeepBehind  float64 `yaml:"segmentKeepBehind"`  // segments further behind are pruned
	ApexKeepBehind     float64 `yaml:"apexKeepBehind"`     // apexes further behind are pruned
	InitialStraight    int     `yaml:"initialStraight"`    // first block of an empty road
	SharpnessThreshold float64 `yaml:"sharpnessThreshold"` // |curvature| above this gets an apex
	HighlightSpan      int     `yaml:"highlightSpan"`      // segments either side of the apex to tag
}

// VehicleTuning configures lateral dynamics, speed and scoring
type VehicleTuning struct {
	MaxSpeed           float64 `yaml:"maxSpeed"`
	Acceleration       float64 `yaml:"acceleration"`
	OffRoadFriction    float64 `yaml:"offRoadFriction"`
	OffRoadMinSpeed    float64 `yaml:"offRoadMinSpeed"`
	LeanSmoothing      float64 `yaml:"leanSmoothing"`
	SteerSensitivity   float64 `yaml:"steerSensitivity"`
	CurveSensitivity   float64 `yaml:"curveSensitivity"`
	CenteringRate      float64 `yaml:"centeringRate"`      // lateral units per second on straights
	CenteringCurvature float64 `yaml:"centeringCurvature"` // |curvature| below this auto-centres
	OffRoadLimit       float64 `yaml:"offRoadLimit"`
	CollisionThreshold float64 `yaml:"collisionThreshold"`
	MaxVibration       float64 `yaml:"maxVibration"`
	PerfectWindow      float64 `yaml:"perfectWindow"` // world units either side of an apex
	HitLean            float64 `yaml:"hitLean"`       // |lean| needed to hit an apex
	PerfectLean        float64 `yaml:"perfectLean"`   // |lean| needed for a PERFECT rating
	ApexBoost          float64 `yaml:"apexBoost"`
	TrailFade          float64 `yaml:"trailFade"` // alpha lost per second
	TrailEvery         int     `yaml:"trailEvery"`
	CrashFling         float64 `yaml:"crashFling"` // share of speed turned into sideways velocity
	CrashHop           float64 `yaml:"crashHop"`
	CrashSpin          float64 `yaml:"crashSpin"`
	CrashGravity       float64 `yaml:"crashGravity"`
	CrashSpeedDecay    float64 `yaml:"crashSpeedDecay"`
}

// RenderTuning configures the camera and the road bands
type RenderTuning struct {
	RoadHalfWidth  float64 `yaml:"roadHalfWidth"`
	CameraHeight   float64 `yaml:"cameraHeight"`
	CameraDepth    float64 `yaml:"cameraDepth"`
	CameraFollow   float64 `yaml:"cameraFollow"` // share of the car's lateral offset the camera tracks
	MinDepth       float64 `yaml:"minDepth"`     // projection depth clamp
	DrawSegments   int     `yaml:"drawSegments"`
	KerbScale      float64 `yaml:"kerbScale"`
	TrailWidth     float64 `yaml:"trailWidth"` // ribbon half-width relative to the road half-width
	TrailGlowScale float64 `yaml:"trailGlowScale"`
}

// SessionTuning configures the frame scheduler
type SessionTuning struct {
	MaxFrameDelta  float64 `yaml:"maxFrameDelta"`
	CrashSlowMo    float64 `yaml:"crashSlowMo"`
	SlowMoRecovery float64 `yaml:"slowMoRecovery"`
}

// Default returns the tuning the game ships with
func Default() *Tuning {
	return &Tuning{
		Road: RoadTuning{
			SegmentLength:      200,
			VisibleSegments:    300,
			SegmentKeepBehind:  2000,
			ApexKeepBehind:     1000,
			InitialStraight:    50,
			SharpnessThreshold: 2,
			HighlightSpan:      2,
		},
		Vehicle: VehicleTuning{
			MaxSpeed:           12000,
			Acceleration:       2400,
			OffRoadFriction:    6000,
			OffRoadMinSpeed:    2000,
			LeanSmoothing:      8,
			SteerSensitivity:   1.5,
			CurveSensitivity:   0.15,
			CenteringRate:      0.5,
			CenteringCurvature: 0.5,
			OffRoadLimit:       1.0,
			CollisionThreshold: 1.75,
			MaxVibration:       6,
			PerfectWindow:      400,
			HitLean:            0.5,
			PerfectLean:        0.8,
			ApexBoost:          300,
			TrailFade:          1.5,
			TrailEvery:         2,
			CrashFling:         0.5,
			CrashHop:           900,
			CrashSpin:          7,
			CrashGravity:       3000,
			CrashSpeedDecay:    2.5,
		},
		Render: RenderTuning{
			RoadHalfWidth:  2000,
			CameraHeight:   1000,
			CameraDepth:    0.84,
			CameraFollow:   0.7,
			MinDepth:       10,
			DrawSegments:   300,
			KerbScale:      1.15,
			TrailWidth:     0.04,
			TrailGlowScale: 3,
		},
		Session: SessionTuning{
			MaxFrameDelta:  0.1,
			CrashSlowMo:    0.05,
			SlowMoRecovery: 1.5,
		},
	}
}

// Load reads a YAML tuning file on top of the defaults
func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning on top of the defaults and validates the result
func Parse(data []byte) (*Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// Validate checks the values the simulation divides by or orders against
func (t *Tuning) Validate() error {
	if t.Road.SegmentLength <= 0 {
		return fmt.Errorf("road.segmentLength must be positive, got %.1f", t.Road.SegmentLength)
	}
	if t.Road.VisibleSegments < 1 {
		return fmt.Errorf("road.visibleSegments must be at least 1, got %d", t.Road.VisibleSegments)
	}
	if t.Road.InitialStraight < 1 {
		return fmt.Errorf("road.initialStraight must be at least 1, got %d", t.Road.InitialStraight)
	}
	if t.Vehicle.MaxSpeed <= 0 {
		return fmt.Errorf("vehicle.maxSpeed must be positive, got %.1f", t.Vehicle.MaxSpeed)
	}
	if t.Vehicle.OffRoadMinSpeed > t.Vehicle.MaxSpeed {
		return fmt.Errorf("vehicle.offRoadMinSpeed(%.1f) > vehicle.maxSpeed(%.1f)",
			t.Vehicle.OffRoadMinSpeed, t.Vehicle.MaxSpeed)
	}
	if t.Vehicle.OffRoadLimit >= t.Vehicle.CollisionThreshold {
		return fmt.Errorf("vehicle.offRoadLimit(%.2f) must be below vehicle.collisionThreshold(%.2f)",
			t.Vehicle.OffRoadLimit, t.Vehicle.CollisionThreshold)
	}
	if t.Vehicle.HitLean > t.Vehicle.PerfectLean {
		return fmt.Errorf("vehicle.hitLean(%.2f) > vehicle.perfectLean(%.2f)",
			t.Vehicle.HitLean, t.Vehicle.PerfectLean)
	}
	if t.Vehicle.TrailEvery < 1 {
		return fmt.Errorf("vehicle.trailEvery must be at least 1, got %d", t.Vehicle.TrailEvery)
	}
	if t.Render.CameraDepth <= 0 || t.Render.MinDepth <= 0 {
		return fmt.Errorf("render.cameraDepth and render.minDepth must be positive")
	}
	if t.Session.MaxFrameDelta <= 0 {
		return fmt.Errorf("session.maxFrameDelta must be positive, got %.3f", t.Session.MaxFrameDelta)
	}
	if t.Session.CrashSlowMo <= 0 || t.Session.CrashSlowMo > 1 {
		return fmt.Errorf("session.crashSlowMo must be in (0,1], got %.3f", t.Session.CrashSlowMo)
	}
	return nil
}
