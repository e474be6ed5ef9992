package game

import (
	"testing"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateIsDeterministic(t *testing.T) {
	tuning := config.Default()
	a, err := Simulate(tuning, 1234, 3000, frame)
	require.NoError(t, err)
	b, err := Simulate(tuning, 1234, 3000, frame)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(1234), a.Seed)
	assert.Greater(t, a.Distance, 0.0)
	assert.LessOrEqual(t, a.Ticks, 3000)
	if !a.Crashed {
		assert.Equal(t, 3000, a.Ticks)
	}
}

func TestSimulateStopsOnMaxTicks(t *testing.T) {
	sum, err := Simulate(config.Default(), 1, 10, frame)
	require.NoError(t, err)
	assert.Equal(t, 10, sum.Ticks)
	assert.False(t, sum.Crashed)
	assert.Zero(t, sum.Score)
}

func TestAutopilotCentres(t *testing.T) {
	tuning := config.Default()
	s := NewSession(tuning)
	s.Start(8)
	pilot := NewAutopilot(tuning.Vehicle)

	// The opening straight has no apexes, so only the offset matters
	assert.Zero(t, pilot.Intents(s))
}
