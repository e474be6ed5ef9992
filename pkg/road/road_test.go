package road

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed draws, then repeats the last one
type scriptedSource struct {
	draws []float64
	pos   int
}

func (s *scriptedSource) Float64() float64 {
	if s.pos >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	v := s.draws[s.pos]
	s.pos++
	return v
}

func newTestRoad(seed int64) *Road {
	return NewRoad(config.Default().Road, rand.New(rand.NewSource(seed)))
}

func TestGenerateAheadEmptyRoadStartsStraight(t *testing.T) {
	r := newTestRoad(1)
	r.GenerateAhead(0)

	segs := r.Segments()
	require.Len(t, segs, 50)
	for i, s := range segs {
		assert.Equal(t, float64(i)*200, s.Z)
		assert.Zero(t, s.Curvature)
		assert.Equal(t, HighlightNone, s.Highlight)
	}
	assert.Empty(t, r.Apexes())
}

func TestMediumCurveRegistersOneApex(t *testing.T) {
	r := newTestRoad(1)
	r.GenerateAhead(0)
	blockStart := float64(r.Len()) * r.SegmentLength()

	r.AppendBlock(Block{
		Pattern:  PatternCurve,
		Sections: []Section{{Enter: 20, Hold: 20, Exit: 20, Curvature: 5}},
	})

	apexes := r.Apexes()
	require.Len(t, apexes, 1)
	assert.Equal(t, blockStart+30*200, apexes[0].Z)
	assert.Equal(t, 1, apexes[0].Direction)
	assert.False(t, apexes[0].Hit)
	assert.False(t, apexes[0].Scored)

	segs := r.Segments()[50:]
	require.Len(t, segs, 60)
	for i, s := range segs {
		want := HighlightNone
		if i >= 28 && i <= 32 {
			want = HighlightApex
		}
		assert.Equal(t, want, s.Highlight, "segment %d", i)
	}
}

func TestSectionCurvatureRamp(t *testing.T) {
	s := Section{Enter: 4, Hold: 2, Exit: 4, Curvature: -6}
	want := []float64{0, -1.5, -3, -4.5, -6, -6, -6, -4.5, -3, -1.5}
	require.Equal(t, len(want), s.Length())
	for i, w := range want {
		assert.InDelta(t, w, s.CurvatureAt(i), 1e-9, "segment %d", i)
	}
}

func TestZeroLengthSectionsAreNoOps(t *testing.T) {
	r := newTestRoad(1)
	r.GenerateAhead(0)
	before := r.Len()

	r.AppendBlock(Block{Sections: []Section{{Curvature: 7}}})
	assert.Equal(t, before, r.Len())
	assert.Empty(t, r.Apexes())

	r.AppendBlock(Block{Sections: []Section{{Hold: 3, Curvature: 4}}})
	segs := r.Segments()
	require.Len(t, segs, before+3)
	for _, s := range segs[before:] {
		assert.Equal(t, 4.0, s.Curvature)
		assert.False(t, math.IsNaN(s.Curvature))
	}
}

func TestChicaneYieldsOpposingApexes(t *testing.T) {
	// pattern draw, sign draw, then two magnitude draws
	rng := &scriptedSource{draws: []float64{0.6, 0.9, 0.5, 0.5}}
	b := RandomBlock(rng)
	require.Equal(t, PatternChicane, b.Pattern)
	require.Len(t, b.Sections, 2)

	r := newTestRoad(1)
	r.GenerateAhead(0)
	r.AppendBlock(b)

	apexes := r.Apexes()
	require.Len(t, apexes, 2)
	assert.Equal(t, -apexes[0].Direction, apexes[1].Direction)
	assert.Equal(t, 40*200.0, apexes[1].Z-apexes[0].Z)
}

func TestChoosePattern(t *testing.T) {
	tests := []struct {
		p    float64
		want Pattern
	}{
		{0, PatternStraight},
		{0.1999, PatternStraight},
		{0.2, PatternCurve},
		{0.4999, PatternCurve},
		{0.5, PatternChicane},
		{0.7999, PatternChicane},
		{0.8, PatternHardTurn},
		{0.9999, PatternHardTurn},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ChoosePattern(tt.p))
		})
	}
}

func TestRandomBlockRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		b := RandomBlock(rng)
		switch b.Pattern {
		case PatternStraight:
			require.Len(t, b.Sections, 1)
			assert.GreaterOrEqual(t, b.Length(), 10)
			assert.LessOrEqual(t, b.Length(), 30)
			assert.Zero(t, b.Sections[0].Curvature)
		case PatternCurve:
			mag := math.Abs(b.Sections[0].Curvature)
			assert.GreaterOrEqual(t, mag, 3.0)
			assert.LessOrEqual(t, mag, 6.0)
			assert.Equal(t, 60, b.Length())
		case PatternChicane:
			assert.Equal(t, 80, b.Length())
			assert.Less(t, b.Sections[0].Curvature*b.Sections[1].Curvature, 0.0)
		case PatternHardTurn:
			mag := math.Abs(b.Sections[0].Curvature)
			assert.GreaterOrEqual(t, mag, 5.0)
			assert.LessOrEqual(t, mag, 8.0)
			assert.Equal(t, 100, b.Length())
		}
	}
}

func TestContiguityAndPruning(t *testing.T) {
	r := newTestRoad(42)
	tun := config.Default().Road

	for z := 0.0; z < 400000; z += 173 {
		r.GenerateAhead(z)

		segs := r.Segments()
		require.NotEmpty(t, segs)
		for i := 1; i < len(segs); i++ {
			require.Equal(t, tun.SegmentLength, segs[i].Z-segs[i-1].Z)
			require.Equal(t, segs[i-1].Index+1, segs[i].Index)
		}
		require.Greater(t, segs[0].Z, z-tun.SegmentKeepBehind)
		for _, a := range r.Apexes() {
			require.Greater(t, a.Z, z-tun.ApexKeepBehind)
		}
	}

	stats := r.Stats()
	assert.Greater(t, stats.Blocks, 10)
	assert.Greater(t, stats.PrunedSegments, 0)
	assert.Greater(t, stats.PrunedApexes, 0)
}

func TestGenerateAheadAppendsAtMostOneBlock(t *testing.T) {
	r := newTestRoad(3)
	for i := 0; i < 20; i++ {
		before := r.Stats().Blocks
		r.GenerateAhead(0)
		assert.LessOrEqual(t, r.Stats().Blocks-before, 1)
	}
}

func TestFillCoversHorizon(t *testing.T) {
	r := newTestRoad(9)
	r.Fill(0)
	assert.True(t, r.HorizonCovered(0))

	last := r.At(r.Len() - 1)
	assert.GreaterOrEqual(t, last.Z, 300*200.0)

	// Already covered: no new block
	blocks := r.Stats().Blocks
	r.GenerateAhead(0)
	assert.Equal(t, blocks, r.Stats().Blocks)
}

func TestSegmentAt(t *testing.T) {
	r := newTestRoad(1)
	_, ok := r.SegmentAt(0)
	assert.False(t, ok)
	assert.Zero(t, r.CurvatureAt(0))

	r.GenerateAhead(0)
	r.AppendBlock(Block{Sections: []Section{{Hold: 10, Curvature: 3}}})

	seg, ok := r.SegmentAt(50*200 + 150)
	require.True(t, ok)
	assert.Equal(t, int64(50), seg.Index)
	assert.Equal(t, 3.0, seg.Curvature)

	seg, _ = r.SegmentAt(-500)
	assert.Equal(t, int64(0), seg.Index)
	seg, _ = r.SegmentAt(1e9)
	assert.Equal(t, int64(59), seg.Index)
}

func TestWindow(t *testing.T) {
	r := newTestRoad(1)
	r.GenerateAhead(0)

	w := r.Window(1000, 5)
	require.Len(t, w, 5)
	assert.Equal(t, 1000.0, w[0].Z)
	assert.Equal(t, 1800.0, w[4].Z)

	assert.Len(t, r.Window(9000, 100), 5)
	assert.Nil(t, r.Window(0, 0))
}

func TestApexFlipsOnce(t *testing.T) {
	a := &Apex{Z: 100, Direction: 1}
	assert.True(t, a.MarkHit())
	assert.False(t, a.MarkHit())
	assert.True(t, a.MarkScored())
	assert.False(t, a.MarkScored())
}
