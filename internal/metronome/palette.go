package metronome

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
)

// voiceColor converts hue (degrees), saturation and value (0..1) to a bar color
// carrying the voice alpha.
func voiceColor(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sector := h / 60
	f := sector - math.Floor(sector)
	lo := v * (1 - s)
	fall := v * (1 - s*f)
	rise := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sector) {
	case 0:
		r, g, b = v, rise, lo
	case 1:
		r, g, b = fall, v, lo
	case 2:
		r, g, b = lo, v, rise
	case 3:
		r, g, b = lo, fall, v
	case 4:
		r, g, b = rise, lo, v
	default:
		r, g, b = v, lo, fall
	}
	return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: config.VoiceAlpha}
}

func channel(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
}

// randomColors picks one translucent color per voice.
func randomColors(rng *rand.Rand, n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		out[i] = voiceColor(rng.Float64()*360, 0.6+0.4*rng.Float64(), 0.5+0.5*rng.Float64())
	}
	return out
}
