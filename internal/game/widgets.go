package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// slider is a horizontal slider mapping its track onto [min, max].
type slider struct {
	r        image.Rectangle
	min, max float64
	frac     float64
	dragging bool
}

func newSlider(lo, hi, v float64) *slider {
	s := &slider{min: lo, max: hi}
	s.setValue(v)
	return s
}

func (s *slider) setValue(v float64) {
	if s.max <= s.min {
		s.frac = 0
		return
	}
	s.frac = clamp01((v - s.min) / (s.max - s.min))
}

func (s *slider) value() float64 { return s.min + s.frac*(s.max-s.min) }

// handle processes mouse interaction and reports whether the value changed.
func (s *slider) handle(mx, my int, pressed bool) bool {
	if !pressed {
		s.dragging = false
		return false
	}
	if !s.dragging && !image.Pt(mx, my).In(s.r) {
		return false
	}
	s.dragging = true
	w := s.r.Dx() - 1
	if w <= 0 {
		return false
	}
	prev := s.frac
	s.frac = clamp01(float64(mx-s.r.Min.X) / float64(w))
	return s.frac != prev
}

func (s *slider) draw(dst *ebiten.Image) {
	x, y := float32(s.r.Min.X), float32(s.r.Min.Y)
	w, h := float32(s.r.Dx()), float32(s.r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, colornames.Lightgray, false)
	vector.DrawFilledRect(dst, x, y, w*float32(s.frac), h, colornames.Skyblue, false)

	knobX := x + float32(s.frac)*(w-1)
	vector.DrawFilledRect(dst, knobX-2, y, 4, h, colornames.Steelblue, false)
}

// checkbox toggles on click.
type checkbox struct {
	r       image.Rectangle
	label   string
	checked bool
}

// handle reports whether a click toggled the box.
func (c *checkbox) handle(mx, my int, justPressed bool) bool {
	if justPressed && image.Pt(mx, my).In(c.r) {
		c.checked = !c.checked
		return true
	}
	return false
}

func (c *checkbox) draw(dst *ebiten.Image) {
	x, y := float32(c.r.Min.X), float32(c.r.Min.Y)
	w, h := float32(c.r.Dx()), float32(c.r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, colornames.Whitesmoke, false)
	vector.StrokeRect(dst, x+1, y+1, w-2, h-2, 2, colornames.Gray, false)
	if c.checked {
		vector.DrawFilledRect(dst, x+5, y+5, w-10, h-10, colornames.Steelblue, false)
	}
	drawText(dst, c.label, float64(c.r.Max.X+6), float64(c.r.Min.Y)+float64(c.r.Dy()-lineHeight)/2, 1, colornames.Black)
}

// button reports a click when the mouse is pressed and released over it.
type button struct {
	r       image.Rectangle
	label   string
	hovered bool
	pressed bool
}

func (b *button) handle(mx, my int, justPressed, justReleased bool) bool {
	b.hovered = image.Pt(mx, my).In(b.r)
	if b.hovered && justPressed {
		b.pressed = true
	}
	clicked := false
	if justReleased {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

func (b *button) draw(dst *ebiten.Image) {
	var bg color.Color
	if b.pressed {
		bg = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if b.hovered {
		bg = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bg = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	x, y := float32(b.r.Min.X), float32(b.r.Min.Y)
	w, h := float32(b.r.Dx()), float32(b.r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, bg, false)
	vector.StrokeRect(dst, x, y, w, h, 1, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	textX := b.r.Min.X + (b.r.Dx()-len(b.label)*charWidth)/2
	textY := b.r.Min.Y + (b.r.Dy()-charHeight)/2
	ebitenutil.DebugPrintAt(dst, b.label, textX, textY)
}

// meter is a horizontal level bar.
type meter struct {
	r image.Rectangle
}

func (m *meter) draw(dst *ebiten.Image, level float64) {
	x, y := float32(m.r.Min.X), float32(m.r.Min.Y)
	w, h := float32(m.r.Dx()), float32(m.r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, colornames.Whitesmoke, false)
	vector.DrawFilledRect(dst, x, y, w*float32(clamp01(level)), h, colornames.Mediumseagreen, false)
	vector.StrokeRect(dst, x, y, w, h, 1, colornames.Gray, false)
}
