package vehicle

import (
	"math"
	"testing"

	"github.com/golangdaddy/apexdrift/pkg/road"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApexHitRatings(t *testing.T) {
	tests := []struct {
		name       string
		lean       float64
		intents    Intents
		direction  int
		wantHit    bool
		wantRating Rating
	}{
		{"perfect lean", 0.9, Intents{SteerRight: true}, 1, true, RatingPerfect},
		{"good lean", 0.6, Intents{SteerRight: true}, 1, true, RatingGood},
		{"perfect left", -0.95, Intents{SteerLeft: true}, -1, true, RatingPerfect},
		{"wrong side", -0.9, Intents{SteerLeft: true}, 1, false, 0},
		{"too shallow", 0.3, Intents{SteerRight: true}, 1, false, 0},
		{"upright", 0, Intents{}, 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apex := &road.Apex{Z: 5000, Direction: tt.direction}
			c := newTestCar()
			c.state.Lean = tt.lean
			c.state.Speed = 5000
			c.state.Distance = 4900

			events := c.Tick(frame, tt.intents, &flatTrack{apexes: []*road.Apex{apex}})

			preBoost := 5000 + 2400*frame
			if !tt.wantHit {
				assert.Empty(t, events)
				assert.False(t, apex.Hit)
				assert.InDelta(t, preBoost, c.State().Speed, 1e-9)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, EventApexHit, events[0].Kind)
			assert.Equal(t, tt.wantRating, events[0].Rating)
			assert.True(t, apex.Hit)
			assert.InDelta(t, math.Min(preBoost+300, 12000), c.State().Speed, 1e-9)
		})
	}
}

func TestApexBoostIsCapped(t *testing.T) {
	apex := &road.Apex{Z: 5000, Direction: 1}
	c := newTestCar()
	c.state.Lean = 1
	c.state.Speed = 11900
	c.state.Distance = 4800

	events := c.Tick(frame, Intents{SteerRight: true}, &flatTrack{apexes: []*road.Apex{apex}})
	require.Len(t, events, 1)
	assert.Equal(t, 12000.0, c.State().Speed)
}

func TestApexOutsideWindowIsIgnored(t *testing.T) {
	apex := &road.Apex{Z: 5000, Direction: 1}
	c := newTestCar()
	c.state.Lean = 1
	c.state.Speed = 3000
	c.state.Distance = 4500

	events := c.Tick(frame, Intents{SteerRight: true}, &flatTrack{apexes: []*road.Apex{apex}})
	assert.Empty(t, events)
	assert.False(t, apex.Hit)
}

func TestApexHitsOnlyOnce(t *testing.T) {
	apex := &road.Apex{Z: 5000, Direction: 1}
	track := &flatTrack{apexes: []*road.Apex{apex}}
	c := newTestCar()
	c.state.Lean = 1
	c.state.Speed = 1200
	c.state.Distance = 4700

	hits := 0
	for i := 0; i < 60; i++ {
		for _, e := range c.Tick(frame, Intents{SteerRight: true}, track) {
			if e.Kind == EventApexHit {
				hits++
			}
		}
	}
	assert.Equal(t, 1, hits)
	assert.True(t, apex.Scored)
	assert.Equal(t, 1, c.State().Score)
}

func TestNearestApexWins(t *testing.T) {
	near := &road.Apex{Z: 5100, Direction: 1}
	far := &road.Apex{Z: 4700, Direction: 1}
	c := newTestCar()
	c.state.Lean = 1
	c.state.Speed = 3000
	c.state.Distance = 5000

	events := c.Tick(frame, Intents{SteerRight: true}, &flatTrack{apexes: []*road.Apex{far, near}})
	require.Len(t, events, 1)
	assert.Equal(t, 5100.0, events[0].Z)
	assert.True(t, near.Hit)
	assert.False(t, far.Hit)
}

func TestMissedApexStillScores(t *testing.T) {
	apexes := []*road.Apex{
		{Z: 1000, Direction: 1},
		{Z: 2000, Direction: -1},
		{Z: 9000, Direction: 1},
	}
	c := newTestCar()
	c.state.Speed = 6000
	c.state.Distance = 2500

	events := c.Tick(frame, Intents{}, &flatTrack{apexes: apexes})
	assert.Empty(t, events)
	assert.Equal(t, 2, c.State().Score)
	assert.True(t, apexes[0].Scored)
	assert.True(t, apexes[1].Scored)
	assert.False(t, apexes[2].Scored)
	assert.False(t, apexes[0].Hit)

	// Passing them again adds nothing
	c.Tick(frame, Intents{}, &flatTrack{apexes: apexes})
	assert.Equal(t, 2, c.State().Score)
}

func TestScoreIsMonotonic(t *testing.T) {
	var apexes []*road.Apex
	for z := 1000.0; z < 60000; z += 1500 {
		apexes = append(apexes, &road.Apex{Z: z, Direction: 1})
	}
	track := &flatTrack{apexes: apexes}
	c := newTestCar()

	last := 0
	for i := 0; i < 600 && c.Phase() == PhaseDriving; i++ {
		c.Tick(frame, Intents{SteerRight: i%40 < 20, SteerLeft: i%40 >= 20}, track)
		score := c.State().Score
		require.GreaterOrEqual(t, score, last)
		require.LessOrEqual(t, score-last, 1)
		last = score
	}

	scored := 0
	for _, a := range apexes {
		if a.Scored {
			scored++
			assert.Less(t, a.Z, c.State().Distance)
		}
	}
	assert.Equal(t, scored, c.State().Score)
	assert.Positive(t, scored)
}
