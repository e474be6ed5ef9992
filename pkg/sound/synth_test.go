package sound

import (
	"encoding/binary"
	"testing"

	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(buf []byte, frame, ch int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[frame*frameBytes+ch*sampleBytes:]))
}

func TestToneLayout(t *testing.T) {
	buf := Tone(440, 0.1, 0.5)
	require.Len(t, buf, 4800*frameBytes)

	// Silent at the very start, mirrored on both channels, inside the volume
	assert.Zero(t, sample(buf, 0, 0))
	peak := int16(0)
	for i := 0; i < 4800; i++ {
		l, r := sample(buf, i, 0), sample(buf, i, 1)
		require.Equal(t, l, r)
		peak = max(peak, l, -l)
	}
	assert.Greater(t, peak, int16(1000))
	assert.LessOrEqual(t, int(peak), 32767/2+1)
}

func TestNoiseIsSeeded(t *testing.T) {
	assert.Equal(t, Noise(0.05, 0.5, 3), Noise(0.05, 0.5, 3))
	assert.NotEqual(t, Noise(0.05, 0.5, 3), Noise(0.05, 0.5, 4))
}

func TestConcat(t *testing.T) {
	a, b := Tone(100, 0.01, 1), Tone(200, 0.02, 1)
	assert.Len(t, Concat(a, b), len(a)+len(b))
}

func TestClipFor(t *testing.T) {
	assert.Equal(t, clipCrash, clipFor(vehicle.Event{Kind: vehicle.EventCrashed}))
	assert.Equal(t, clipPerfect, clipFor(vehicle.Event{Kind: vehicle.EventApexHit, Rating: vehicle.RatingPerfect}))
	assert.Equal(t, clipGood, clipFor(vehicle.Event{Kind: vehicle.EventApexHit, Rating: vehicle.RatingGood}))
}

func TestMutedSinkIsSilent(t *testing.T) {
	var nilSink *Sink
	assert.True(t, nilSink.Muted())
	nilSink.HandleEvent(vehicle.Event{Kind: vehicle.EventCrashed})

	s := NewSink(true)
	assert.True(t, s.Muted())
	s.HandleEvent(vehicle.Event{Kind: vehicle.EventCrashed})
}
