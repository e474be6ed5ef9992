package sound

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// SampleRate is the rate every clip is rendered at
const SampleRate = 48000

const (
	channels    = 2
	sampleBytes = 2
	frameBytes  = channels * sampleBytes
)

// Tone renders a sine blip with a linear attack and exponential decay as
// 16-bit little endian stereo PCM
func Tone(freq, seconds, volume float64) []byte {
	frames := int(seconds * SampleRate)
	buf := make([]byte, frames*frameBytes)
	attack := max(frames/50, 1)
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		env := math.Exp(-6 * t / seconds)
		if i < attack {
			env *= float64(i) / float64(attack)
		}
		putFrame(buf, i, math.Sin(2*math.Pi*freq*t)*env*volume)
	}
	return buf
}

// Noise renders a decaying burst of white noise
func Noise(seconds, volume float64, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	frames := int(seconds * SampleRate)
	buf := make([]byte, frames*frameBytes)
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		env := math.Exp(-4 * t / seconds)
		putFrame(buf, i, (rng.Float64()*2-1)*env*volume)
	}
	return buf
}

// Concat joins clips back to back
func Concat(clips ...[]byte) []byte {
	var out []byte
	for _, c := range clips {
		out = append(out, c...)
	}
	return out
}

func putFrame(buf []byte, frame int, v float64) {
	v = math.Max(-1, math.Min(v, 1))
	s := uint16(int16(v * math.MaxInt16))
	base := frame * frameBytes
	for ch := 0; ch < channels; ch++ {
		binary.LittleEndian.PutUint16(buf[base+ch*sampleBytes:], s)
	}
}
