package vehicle

import (
	"math"

	"github.com/golangdaddy/apexdrift/pkg/road"
	"github.com/samber/lo"
)

// scoreApexes rewards lean timing on the nearest pending apex, then scores
// every apex the car has driven past. Hits and scores are independent: a
// missed apex still counts once passed.
func (c *Car) scoreApexes(apexes []*road.Apex) []Event {
	t := c.tuning
	s := &c.state
	var events []Event

	if a, ok := nearestPending(apexes, s.Distance, t.PerfectWindow); ok {
		lean := math.Abs(s.Lean)
		if leanSign(s.Lean) == a.Direction && lean > t.HitLean && a.MarkHit() {
			rating := RatingGood
			if lean > t.PerfectLean {
				rating = RatingPerfect
			}
			s.Speed = math.Min(s.Speed+t.ApexBoost, t.MaxSpeed)
			events = append(events, Event{Kind: EventApexHit, Rating: rating, Z: a.Z, Score: s.Score})
		}
	}

	for _, a := range apexes {
		if s.Distance > a.Z && a.MarkScored() {
			s.Score++
		}
	}
	return events
}

// nearestPending finds the un-hit apex closest to z inside the window
func nearestPending(apexes []*road.Apex, z, window float64) (*road.Apex, bool) {
	candidates := lo.Filter(apexes, func(a *road.Apex, _ int) bool {
		return !a.Hit && math.Abs(a.Z-z) < window
	})
	if len(candidates) == 0 {
		return nil, false
	}
	return lo.MinBy(candidates, func(a, b *road.Apex) bool {
		return math.Abs(a.Z-z) < math.Abs(b.Z-z)
	}), true
}

func leanSign(lean float64) int {
	switch {
	case lean > 0:
		return 1
	case lean < 0:
		return -1
	}
	return 0
}
