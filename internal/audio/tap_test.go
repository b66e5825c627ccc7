package audio

import (
	"testing"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
)

func constant(left, right float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{left, right}
		}
		return len(samples), true
	})
}

func TestLevelTapTracksRecentWindow(t *testing.T) {
	loud := newLevelTap(constant(0.5, 0.5), 100)
	assert.Equal(t, 0.0, loud.level())

	buf := make([][2]float64, 100)
	n, ok := loud.Stream(buf)
	assert.Equal(t, 100, n)
	assert.True(t, ok)
	assert.Equal(t, [2]float64{0.5, 0.5}, buf[0])
	assert.InDelta(t, 0.5, loud.level(), 1e-12)

	half := newLevelTap(constant(0.5, 0.5), 100)
	half.Stream(make([][2]float64, 50))
	assert.InDelta(t, 0.5*0.7071067811865476, half.level(), 1e-12)
}

func TestLevelTapForgetsOldSamples(t *testing.T) {
	src := constant(1, 1)
	tap := newLevelTap(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		return src.Stream(samples)
	}), 64)
	tap.Stream(make([][2]float64, 200))
	assert.InDelta(t, 1.0, tap.level(), 1e-12)

	src = constant(0, 0)
	tap.Stream(make([][2]float64, 63))
	assert.InDelta(t, 0.125, tap.level(), 1e-12)
	tap.Stream(make([][2]float64, 1))
	assert.Equal(t, 0.0, tap.level())
}

func TestLevelTapCancelsChannels(t *testing.T) {
	tap := newLevelTap(constant(0.8, -0.8), 32)
	tap.Stream(make([][2]float64, 32))
	assert.Equal(t, 0.0, tap.level())
}
