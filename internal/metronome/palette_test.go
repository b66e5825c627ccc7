package metronome

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
)

func TestVoiceColor(t *testing.T) {
	a := uint8(config.VoiceAlpha)
	cases := []struct {
		h, s, v float64
		want    color.NRGBA
	}{
		{0, 1, 1, color.NRGBA{255, 0, 0, a}},
		{120, 1, 1, color.NRGBA{0, 255, 0, a}},
		{240, 1, 1, color.NRGBA{0, 0, 255, a}},
		{60, 1, 1, color.NRGBA{255, 255, 0, a}},
		{300, 1, 1, color.NRGBA{255, 0, 255, a}},
		{360, 1, 1, color.NRGBA{255, 0, 0, a}},
		{-120, 1, 1, color.NRGBA{0, 0, 255, a}},
		{200, 0, 0.5, color.NRGBA{128, 128, 128, a}},
		{30, 1, 1, color.NRGBA{255, 128, 0, a}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, voiceColor(tc.h, tc.s, tc.v), "hsv(%v, %v, %v)", tc.h, tc.s, tc.v)
	}
}

func TestRandomColorsAreSeeded(t *testing.T) {
	first := randomColors(rand.New(rand.NewSource(7)), 4)
	second := randomColors(rand.New(rand.NewSource(7)), 4)
	require.Len(t, first, 4)
	assert.Equal(t, first, second)
	for _, c := range first {
		assert.Equal(t, uint8(config.VoiceAlpha), c.A)
	}
	assert.Empty(t, randomColors(rand.New(rand.NewSource(7)), 0))
}
