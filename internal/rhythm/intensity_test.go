package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntensityEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, Intensity(0, 0.5))
	assert.Equal(t, MaxIntensity, Intensity(0.5, 0.5))
	assert.Equal(t, MaxIntensity, Intensity(2, 0.5))
	assert.Equal(t, 0.0, Intensity(-1, 0.5))
	assert.Equal(t, 0.0, Intensity(0.2, 0))
}

func TestIntensityIsCubicAndIncreasing(t *testing.T) {
	assert.InDelta(t, MaxIntensity/8, Intensity(0.25, 0.5), 1e-9)

	prev := -1.0
	for r := 0.0; r <= 1.0; r += 0.01 {
		cur := Intensity(r, 1)
		assert.Greater(t, cur, prev)
		prev = cur
	}
}
