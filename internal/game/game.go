// Package game draws a polyrhythm session in an ebiten window and feeds it input.
package game

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
	"github.com/iburimskiy/polyrhythm-metronome/internal/metronome"
)

type Game struct {
	app *metronome.App
	log logrus.FieldLogger

	now   func() time.Time
	last  time.Time
	loads uint64

	width, height int

	decay *slider
	mute  *checkbox
	open  *button
	level *meter

	// input edge detection
	prevKey map[ebiten.Key]bool
}

func New(app *metronome.App, log logrus.FieldLogger) *Game {
	g := &Game{
		app:     app,
		log:     log,
		now:     time.Now,
		loads:   app.Loads(),
		width:   config.WindowWidth,
		height:  config.WindowHeight,
		decay:   newSlider(config.DecayMin, config.DecayMax, app.DecayWindow()),
		mute:    &checkbox{label: "Mute", checked: app.Muted()},
		open:    &button{label: "Open"},
		level:   &meter{},
		prevKey: map[ebiten.Key]bool{},
	}
	g.place()
	return g
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if files := ebiten.DroppedFiles(); files != nil {
		_ = g.app.LoadDropped(files)
	}

	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.decay.handle(mx, my, mouseDown) {
		g.app.SetDecayWindow(g.decay.value())
	}
	if g.mute.handle(mx, my, clicked) {
		g.app.SetMuted(g.mute.checked)
	}
	if justPressed(ebiten.KeySpace) {
		g.mute.checked = !g.mute.checked
		g.app.SetMuted(g.mute.checked)
	}
	// The dialog blocks the loop; that time belongs to no cycle.
	rebase := false
	if g.open.handle(mx, my, clicked, released) || justPressed(ebiten.KeyO) {
		g.openFileDialog()
		rebase = true
	}
	// A new preset starts its cycle now, not when its file began loading.
	if n := g.app.Loads(); n != g.loads {
		g.loads = n
		rebase = true
	}

	now := g.now()
	if rebase || g.last.IsZero() {
		g.last = now
	}
	dt := now.Sub(g.last).Seconds()
	g.last = now

	g.app.Frame(dt)
	return nil
}

func (g *Game) openFileDialog() {
	path, err := zenity.SelectFile(
		zenity.Title("Open polyrhythm"),
		zenity.FileFilters{{
			Name:     "Polyrhythm",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.log.WithError(err).Warn("file dialog failed")
		}
		return
	}
	_ = g.app.LoadFile(path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.White)

	if !g.app.Ready() {
		g.drawPlaceholder(screen)
		return
	}

	g.drawBars(screen)
	g.drawChrome(screen)
}

func (g *Game) drawPlaceholder(screen *ebiten.Image) {
	msg := g.app.Status()
	w, h := measureText(msg, 1.5)
	drawText(screen, msg, (float64(g.width)-w)/2, (float64(g.height)-h)/2, 1.5, colornames.Lightgray)
	g.open.draw(screen)
}

func (g *Game) drawBars(screen *ebiten.Image) {
	h := float32(g.height)
	for _, b := range g.app.Bars() {
		if b.Width <= 0 {
			continue
		}
		x := float32(float64(g.width) * b.X)
		vector.StrokeLine(screen, x, 0, x, h, float32(b.Width), b.Color, true)
	}
}

func (g *Game) drawChrome(screen *ebiten.Image) {
	g.decay.draw(screen)
	g.mute.draw(screen)
	g.open.draw(screen)
	g.level.draw(screen, g.app.Level())

	if status := g.app.Status(); status != "" {
		drawText(screen, status, float64(g.level.r.Max.X+10), float64(config.MeterY)+3, 1, colornames.Firebrick)
	}

	label := g.app.Label()
	lw, lh := measureText(label, 4)
	drawText(screen, label, float64(g.width)-lw-10, float64(g.height)-lh-5, 4, colornames.Lightgray)

	drawText(screen, formatSeconds(g.app.Position()), 10, float64(g.height-90), 1.5, colornames.Black)
	drawText(screen, formatSeconds(g.app.DecayWindow()), 10, float64(g.height-60), 1.5, colornames.Black)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f FPS: %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 10, g.height-30)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = config.WindowWidth, config.WindowHeight
	}
	g.width, g.height = outsideWidth, outsideHeight
	g.place()
	return outsideWidth, outsideHeight
}

// place lays the widgets out for the current window size.
func (g *Game) place() {
	g.decay.r = image.Rect(0, 0, g.width, config.SliderHeight)
	g.mute.r = image.Rect(config.CheckboxX, config.CheckboxY, config.CheckboxX+config.CheckboxSize, config.CheckboxY+config.CheckboxSize)
	g.open.r = image.Rect(config.ButtonX, config.ButtonY, config.ButtonX+config.ButtonWidth, config.ButtonY+config.ButtonHeight)
	g.level.r = image.Rect(config.MeterX, config.MeterY, config.MeterX+config.MeterWidth, config.MeterY+config.MeterHeight)
}
