package road

import (
	"math"

	"github.com/gammazero/deque"
	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/samber/lo"
)

// Highlight tags a segment for a non-default kerb colour
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightApex
)

// RoadSegment is one slice of track at a fixed distance along the road
type RoadSegment struct {
	Z         float64   // Distance along the track
	Index     int64     // Generation order, Z = Index * SegmentLength
	Curvature float64   // Signed turn rate
	Highlight Highlight // Kerb colour override
}

// Apex is a lean-timing challenge placed at the middle of a sharp curve
type Apex struct {
	Z         float64
	Direction int // Lean sign that hits the apex, +1 or -1
	Hit       bool
	Scored    bool
}

// MarkHit flips Hit once. It reports whether this call flipped it.
func (a *Apex) MarkHit() bool {
	if a.Hit {
		return false
	}
	a.Hit = true
	return true
}

// MarkScored flips Scored once. It reports whether this call flipped it.
func (a *Apex) MarkScored() bool {
	if a.Scored {
		return false
	}
	a.Scored = true
	return true
}

// Stats counts generator activity over the life of a road
type Stats struct {
	Blocks         int
	Segments       int64
	Apexes         int
	PrunedSegments int
	PrunedApexes   int
}

// Road is an endless track generated ahead of a reference distance and
// pruned behind it. Segments live in a deque indexed by generation order.
type Road struct {
	tuning   config.RoadTuning
	rng      Source
	segments deque.Deque[RoadSegment]
	apexes   []*Apex
	next     int64 // Index of the next segment to append
	stats    Stats
}

// NewRoad creates an empty road drawing its blocks from rng
func NewRoad(tuning config.RoadTuning, rng Source) *Road {
	return &Road{
		tuning: tuning,
		rng:    rng,
	}
}

// SegmentLength is the constant spacing between segments
func (r *Road) SegmentLength() float64 {
	return r.tuning.SegmentLength
}

// GenerateAhead appends at most one block if the horizon ahead of
// referenceZ is not yet covered, then drops everything too far behind.
func (r *Road) GenerateAhead(referenceZ float64) {
	if !r.HorizonCovered(referenceZ) {
		r.AppendBlock(r.nextBlock())
	}
	r.prune(referenceZ)
}

// Fill calls GenerateAhead until the horizon is covered. Used at run start
// where a single frame may afford several blocks.
func (r *Road) Fill(referenceZ float64) {
	for !r.HorizonCovered(referenceZ) {
		r.GenerateAhead(referenceZ)
	}
}

// HorizonCovered reports whether the last segment reaches far enough ahead
func (r *Road) HorizonCovered(referenceZ float64) bool {
	if r.segments.Len() == 0 {
		return false
	}
	horizon := referenceZ + float64(r.tuning.VisibleSegments)*r.tuning.SegmentLength
	return r.segments.Back().Z >= horizon
}

func (r *Road) nextBlock() Block {
	if r.stats.Blocks == 0 {
		return Straight(r.tuning.InitialStraight)
	}
	return RandomBlock(r.rng)
}

// AppendBlock emits every segment of b onto the end of the road and
// registers one apex per sharp section
func (r *Road) AppendBlock(b Block) {
	for _, s := range b.Sections {
		r.appendSection(s)
	}
	r.stats.Blocks++
}

func (r *Road) appendSection(s Section) {
	if s.Length() <= 0 {
		return
	}
	sharp := math.Abs(s.Curvature) > r.tuning.SharpnessThreshold
	apexAt := s.ApexOffset()
	if sharp {
		r.apexes = append(r.apexes, &Apex{
			Z:         r.zOf(r.next + int64(apexAt)),
			Direction: sign(s.Curvature),
		})
		r.stats.Apexes++
	}

	for i := 0; i < s.Length(); i++ {
		seg := RoadSegment{
			Z:         r.zOf(r.next),
			Index:     r.next,
			Curvature: s.CurvatureAt(i),
		}
		if sharp && abs(i-apexAt) <= r.tuning.HighlightSpan {
			seg.Highlight = HighlightApex
		}
		r.segments.PushBack(seg)
		r.next++
		r.stats.Segments++
	}
}

func (r *Road) zOf(index int64) float64 {
	return float64(index) * r.tuning.SegmentLength
}

func (r *Road) prune(referenceZ float64) {
	segmentFloor := referenceZ - r.tuning.SegmentKeepBehind
	for r.segments.Len() > 0 && r.segments.Front().Z <= segmentFloor {
		r.segments.PopFront()
		r.stats.PrunedSegments++
	}

	apexFloor := referenceZ - r.tuning.ApexKeepBehind
	kept := lo.DropWhile(r.apexes, func(a *Apex) bool {
		return a.Z <= apexFloor
	})
	r.stats.PrunedApexes += len(r.apexes) - len(kept)
	r.apexes = kept
}

// Len is the number of stored segments
func (r *Road) Len() int {
	return r.segments.Len()
}

// At returns the i-th stored segment, 0 being the oldest
func (r *Road) At(i int) RoadSegment {
	return r.segments.At(i)
}

// SegmentAt returns the segment covering distance z. Distances outside the
// stored window clamp to the nearest end; ok is false only on an empty road.
func (r *Road) SegmentAt(z float64) (RoadSegment, bool) {
	i, ok := r.indexAt(z)
	if !ok {
		return RoadSegment{}, false
	}
	return r.segments.At(i), true
}

// CurvatureAt is the curvature of the segment under distance z, 0 on an empty road
func (r *Road) CurvatureAt(z float64) float64 {
	seg, ok := r.SegmentAt(z)
	if !ok {
		return 0
	}
	return seg.Curvature
}

func (r *Road) indexAt(z float64) (int, bool) {
	n := r.segments.Len()
	if n == 0 {
		return 0, false
	}
	i := int(math.Floor((z - r.segments.Front().Z) / r.tuning.SegmentLength))
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i, true
}

// Window copies up to count segments starting with the one covering fromZ
func (r *Road) Window(fromZ float64, count int) []RoadSegment {
	start, ok := r.indexAt(fromZ)
	if !ok || count <= 0 {
		return nil
	}
	end := min(start+count, r.segments.Len())
	window := make([]RoadSegment, 0, end-start)
	for i := start; i < end; i++ {
		window = append(window, r.segments.At(i))
	}
	return window
}

// Segments copies every stored segment, oldest first
func (r *Road) Segments() []RoadSegment {
	all := make([]RoadSegment, 0, r.segments.Len())
	for i := 0; i < r.segments.Len(); i++ {
		all = append(all, r.segments.At(i))
	}
	return all
}

// Apexes returns the live apex points, ordered by Z
func (r *Road) Apexes() []*Apex {
	return r.apexes
}

// Stats returns generator counters
func (r *Road) Stats() Stats {
	return r.stats
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
