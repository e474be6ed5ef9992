package sound

import (
	"github.com/golangdaddy/apexdrift/pkg/log"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

// Sink plays a short clip for every vehicle event. A nil or muted sink is silent.
type Sink struct {
	ctx     *audio.Context
	clips   map[clip][]byte
	players []*audio.Player // Held until they finish
	muted   bool
	logger  *zap.Logger
}

type clip int

const (
	clipGood clip = iota
	clipPerfect
	clipCrash
)

// NewSink renders the clips up front. Only one audio context may exist per
// process, so callers create the sink once.
func NewSink(muted bool) *Sink {
	s := &Sink{
		muted:  muted,
		logger: log.Named("sound"),
		clips: map[clip][]byte{
			clipGood:    Tone(660, 0.12, 0.35),
			clipPerfect: Concat(Tone(880, 0.08, 0.4), Tone(1320, 0.14, 0.4)),
			clipCrash:   Noise(0.6, 0.5, 1),
		},
	}
	if !muted {
		s.ctx = audio.NewContext(SampleRate)
	}
	return s
}

// SetMuted toggles playback
func (s *Sink) SetMuted(muted bool) {
	s.muted = muted
	if !muted && s.ctx == nil {
		s.ctx = audio.CurrentContext()
		if s.ctx == nil {
			s.ctx = audio.NewContext(SampleRate)
		}
	}
}

// Muted reports whether the sink is silent
func (s *Sink) Muted() bool {
	return s == nil || s.muted
}

// HandleEvent maps a vehicle event to a clip and plays it
func (s *Sink) HandleEvent(e vehicle.Event) {
	if s.Muted() {
		return
	}
	s.play(clipFor(e))
}

func clipFor(e vehicle.Event) clip {
	if e.Kind == vehicle.EventCrashed {
		return clipCrash
	}
	if e.Rating == vehicle.RatingPerfect {
		return clipPerfect
	}
	return clipGood
}

func (s *Sink) play(c clip) {
	if s.ctx == nil {
		return
	}
	p := s.ctx.NewPlayerFromBytes(s.clips[c])
	p.Play()

	live := s.players[:0]
	for _, old := range s.players {
		if old.IsPlaying() {
			live = append(live, old)
		}
	}
	s.players = append(live, p)
	s.logger.Debug("clip played", zap.Int("clip", int(c)))
}
