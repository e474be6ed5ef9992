package background

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, w, want float64
	}{
		{0, 100, 0},
		{250, 100, 50},
		{-30, 100, 70},
		{-200, 100, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrap(tt.v, tt.w))
	}
}

func TestScrollAgainstTurn(t *testing.T) {
	b := &Backdrop{}
	b.Scroll(4, 1, 0.5)
	assert.Less(t, b.scroll, 0.0)

	b.Scroll(-8, 1, 0.5)
	assert.Greater(t, b.scroll, 0.0)

	// A parked car never moves the scenery
	before := b.scroll
	b.Scroll(6, 0, 1)
	assert.Equal(t, before, b.scroll)
}
