package prompts

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEstimator(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"Test prompt v1", 4},
		{strings.Repeat("x", 400), 100},
	}

	estimate := DefaultEstimator()
	for _, tt := range tests {
		assert.Equal(t, tt.want, estimate(tt.text), "%q", tt.text)
	}
}

func TestCharEstimator_MatchesCeilFormula(t *testing.T) {
	for _, k := range []float64{2, 3.7, 4} {
		estimate := CharEstimator(k)
		for n := 0; n < 50; n++ {
			text := strings.Repeat("y", n)
			assert.Equal(t, int(math.Ceil(float64(n)/k)), estimate(text), "k=%v n=%d", k, n)
		}
	}
}

func TestCharEstimator_CountsBytes(t *testing.T) {
	// eight runes, sixteen bytes
	text := strings.Repeat("\u00e9", 8)
	assert.Equal(t, 16, len(text))
	assert.Equal(t, 4, DefaultEstimator()(text))

	// eight runes, twenty-four bytes
	text = strings.Repeat("\u4f60\u597d", 4)
	assert.Equal(t, 24, len(text))
	assert.Equal(t, 6, DefaultEstimator()(text))
}

func TestCharEstimator_InvalidDivisorUsesDefault(t *testing.T) {
	for _, k := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Equal(t, 4, CharEstimator(k)("Test prompt v1"))
	}
}
