package road

import (
	"math"

	"github.com/samber/lo"
)

// Pattern identifies the shape of a generated block of road
type Pattern int

const (
	PatternStraight Pattern = iota
	PatternCurve
	PatternChicane
	PatternHardTurn
)

func (p Pattern) String() string {
	switch p {
	case PatternStraight:
		return "straight"
	case PatternCurve:
		return "curve"
	case PatternChicane:
		return "chicane"
	case PatternHardTurn:
		return "hard-turn"
	}
	return "unknown"
}

// PatternWeight maps a pattern to the upper bound of its cumulative probability
type PatternWeight struct {
	Pattern    Pattern
	Cumulative float64
}

// PatternTable is the weighted choice used for every block after the first.
// Entries are ordered and the last cumulative weight is 1.
var PatternTable = []PatternWeight{
	{Pattern: PatternStraight, Cumulative: 0.20},
	{Pattern: PatternCurve, Cumulative: 0.50},
	{Pattern: PatternChicane, Cumulative: 0.80},
	{Pattern: PatternHardTurn, Cumulative: 1.00},
}

// ChoosePattern maps a uniform draw in [0,1) onto the pattern table
func ChoosePattern(p float64) Pattern {
	last := PatternTable[len(PatternTable)-1]
	return lo.FindOrElse(PatternTable, last, func(w PatternWeight) bool {
		return p < w.Cumulative
	}).Pattern
}

// Section is one curvature ramp: ease in over Enter segments, hold for Hold,
// ease back out over Exit. A straight is a Section with only Hold set.
type Section struct {
	Enter     int
	Hold      int
	Exit      int
	Curvature float64
}

// Length is the number of segments the section emits
func (s Section) Length() int {
	return s.Enter + s.Hold + s.Exit
}

// ApexOffset is the segment index of the hold midpoint inside the section
func (s Section) ApexOffset() int {
	return s.Enter + s.Hold/2
}

// CurvatureAt returns the curvature of the i-th segment of the section
func (s Section) CurvatureAt(i int) float64 {
	switch {
	case i < s.Enter:
		return ease(0, s.Curvature, i, s.Enter)
	case i < s.Enter+s.Hold:
		return s.Curvature
	default:
		return ease(s.Curvature, 0, i-s.Enter-s.Hold, s.Exit)
	}
}

// ease linearly interpolates step i of n from 'from' towards 'to'.
// A zero-length ramp holds the target.
func ease(from, to float64, i, n int) float64 {
	if n <= 0 {
		return to
	}
	return from + (to-from)*float64(i)/float64(n)
}

// Block is what one call to the generator appends
type Block struct {
	Pattern  Pattern
	Sections []Section
}

// Length is the number of segments the block emits
func (b Block) Length() int {
	return lo.SumBy(b.Sections, Section.Length)
}

// Source is the random stream blocks are drawn from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Straight builds a zero-curvature block of n segments
func Straight(n int) Block {
	return Block{
		Pattern:  PatternStraight,
		Sections: []Section{{Hold: n}},
	}
}

// RandomBlock draws a pattern and its parameters from rng
func RandomBlock(rng Source) Block {
	switch ChoosePattern(rng.Float64()) {
	case PatternStraight:
		return Straight(10 + int(rng.Float64()*21))
	case PatternCurve:
		return Block{
			Pattern:  PatternCurve,
			Sections: []Section{curve(rng, 20, 20, 20, 3, 6, randomSign(rng))},
		}
	case PatternChicane:
		sign := randomSign(rng)
		return Block{
			Pattern: PatternChicane,
			Sections: []Section{
				curve(rng, 15, 10, 15, 4, 7, sign),
				curve(rng, 15, 10, 15, 4, 7, -sign),
			},
		}
	default:
		return Block{
			Pattern:  PatternHardTurn,
			Sections: []Section{curve(rng, 30, 40, 30, 5, 8, randomSign(rng))},
		}
	}
}

func curve(rng Source, enter, hold, exit int, minMag, maxMag, sign float64) Section {
	mag := minMag + rng.Float64()*(maxMag-minMag)
	return Section{Enter: enter, Hold: hold, Exit: exit, Curvature: math.Copysign(mag, sign)}
}

func randomSign(rng Source) float64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}
