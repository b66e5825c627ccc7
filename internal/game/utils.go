package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
)

const (
	charWidth  = config.CharWidth
	charHeight = config.CharHeight
	lineHeight = 13
)

var face = text.NewGoXFace(basicfont.Face7x13)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatSeconds formats seconds with two decimals, e.g. "0.43"
func formatSeconds(s float64) string {
	return fmt.Sprintf("%.2f", s)
}

// drawText draws s with its top-left corner at (x, y), magnified by scale.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// measureText returns the size of s drawn at the given scale.
func measureText(s string, scale float64) (float64, float64) {
	w, h := text.Measure(s, face, lineHeight)
	return w * scale, h * scale
}
