// Package metronome holds the state of a running polyrhythm session: the beat scheduler,
// the click voices, the voice colors and the status shown to the user.
package metronome

import (
	"image/color"
	"io/fs"
	"math"
	"math/rand"
	"time"

	"github.com/bep/debounce"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
	"github.com/iburimskiy/polyrhythm-metronome/internal/preset"
	"github.com/iburimskiy/polyrhythm-metronome/internal/rhythm"
)

const (
	StatusNoConfig      = "No config loaded."
	StatusInvalidFormat = "Invalid file format."
)

// Cue plays the sound of fired voices. Voice indices follow the order of the ratios
// passed to the last Reset.
type Cue interface {
	Reset(ratios []float64)
	Play(voices []int)
	Close() error
}

// Meter is implemented by cues that can report their output level.
type Meter interface {
	Level() float64
}

type silentCue struct{}

func (silentCue) Reset([]float64) {}
func (silentCue) Play([]int)      {}
func (silentCue) Close() error    { return nil }

// Bar is one voice as the presenter draws it.
type Bar struct {
	Ratio float64
	// X is the horizontal position as a fraction of the window width.
	X     float64
	Width float64
	Color color.NRGBA
}

// App is the per-window session state. Every method is meant to be called from the
// frame loop only.
type App struct {
	sched  *rhythm.Scheduler
	cue    Cue
	log    logrus.FieldLogger
	rng    *rand.Rand
	settle func(func())

	preset preset.Preset
	colors []color.NRGBA
	status string
	muted  bool
	loads  uint64

	// voices fired since the last Bars, drawn at full width even if their
	// decay already ran out between two draws
	pending []bool
}

type Option func(*App)

// WithRand fixes the source used for voice colors.
func WithRand(rng *rand.Rand) Option {
	return func(a *App) { a.rng = rng }
}

// WithSettle replaces the debouncer used for slider logging.
func WithSettle(settle func(func())) Option {
	return func(a *App) { a.settle = settle }
}

// New returns an empty session. A nil cue plays nothing.
func New(s config.Settings, cue Cue, log logrus.FieldLogger, opts ...Option) *App {
	if cue == nil {
		cue = silentCue{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	a := &App{
		sched: rhythm.NewScheduler(
			rhythm.WithResetPolicy(s.Policy()),
			rhythm.WithDecayWindow(clampDecay(s.DecayWindow)),
		),
		cue:    cue,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		settle: debounce.New(300 * time.Millisecond),
		status: StatusNoConfig,
		muted:  s.Muted,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadFile loads a preset from disk. On failure the running session is kept and the
// error is reported through Status.
func (a *App) LoadFile(path string) error {
	p, err := preset.Load(path)
	return a.apply(path, p, err)
}

// LoadDropped loads the first regular file of a drop, in name order. An empty drop is
// not an error; a drop of directories only is reported as an unsupported file.
func (a *App) LoadDropped(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return a.apply("", preset.Preset{}, errors.Wrap(err, "read dropped files"))
	}
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		p, err := preset.LoadFS(fsys, e.Name())
		return a.apply(e.Name(), p, err)
	}
	name := entries[0].Name()
	return a.apply(name, preset.Preset{}, errors.Wrapf(preset.ErrUnsupportedFile, "%s is not a file", name))
}

func (a *App) apply(name string, p preset.Preset, err error) error {
	if err == nil {
		err = a.sched.Reset(p.BPM, p.Ratios)
	}
	if err != nil {
		a.status = statusFor(err)
		a.log.WithError(err).WithField("file", name).Error("preset not loaded")
		return err
	}

	voices := a.sched.Voices()
	ratios := make([]float64, len(voices))
	for i, v := range voices {
		ratios[i] = v.Ratio
	}
	a.cue.Reset(ratios)
	a.colors = randomColors(a.rng, len(voices))
	a.pending = make([]bool, len(voices))
	a.preset = p
	a.status = ""
	a.loads++

	a.log.WithFields(logrus.Fields{
		"file":   name,
		"bpm":    p.BPM,
		"ratios": p.Label(),
		"policy": a.sched.Policy(),
	}).Info("preset loaded")
	return nil
}

func statusFor(err error) string {
	if errors.Is(err, preset.ErrUnsupportedFile) {
		return StatusInvalidFormat
	}
	return "Error: " + err.Error()
}

// Frame advances the session by dt seconds of real time and plays the voices that fired.
func (a *App) Frame(dt float64) []int {
	if a.sched.Empty() {
		return nil
	}
	fired := a.sched.Advance(dt)
	if len(fired) == 0 {
		return fired
	}
	if !a.muted {
		a.cue.Play(fired)
	}
	for _, i := range fired {
		a.pending[i] = true
		v := a.sched.Voice(i)
		a.log.WithFields(logrus.Fields{"voice": i, "ratio": v.Ratio, "repeat": v.Repeat}).Debug("fired")
	}
	return fired
}

// Bars returns one bar per voice in scheduler order, for one drawn frame. A voice
// that fired since the previous call is returned at full width.
func (a *App) Bars() []Bar {
	window := a.sched.DecayWindow()
	out := make([]Bar, a.sched.Len())
	for i := range out {
		v := a.sched.Voice(i)
		width := rhythm.Intensity(v.Decay, window)
		if a.pending[i] {
			width = rhythm.MaxIntensity
			a.pending[i] = false
		}
		out[i] = Bar{
			Ratio: v.Ratio,
			X:     1 / v.Ratio,
			Width: width,
			Color: a.colors[i],
		}
	}
	return out
}

// SetDecayWindow changes the flash length, clamped to the slider range.
func (a *App) SetDecayWindow(w float64) {
	w = clampDecay(w)
	if w == a.sched.DecayWindow() {
		return
	}
	a.sched.SetDecayWindow(w)
	a.settle(func() {
		a.log.WithField("seconds", w).Info("decay window changed")
	})
}

func clampDecay(w float64) float64 {
	if math.IsNaN(w) {
		return config.DecayMin
	}
	return math.Max(config.DecayMin, math.Min(config.DecayMax, w))
}

func (a *App) DecayWindow() float64 { return a.sched.DecayWindow() }

func (a *App) SetMuted(m bool) {
	if m == a.muted {
		return
	}
	a.muted = m
	a.log.WithField("muted", m).Info("mute toggled")
}

func (a *App) Muted() bool { return a.muted }

// Loads counts the presets loaded successfully so far.
func (a *App) Loads() uint64 { return a.loads }

// Ready reports whether a preset is loaded.
func (a *App) Ready() bool { return !a.sched.Empty() }

// Status is the last message for the user; empty when all is well.
func (a *App) Status() string { return a.status }

// Label is the ratio list of the loaded preset, e.g. "7:3".
func (a *App) Label() string { return a.preset.Label() }

func (a *App) Preset() preset.Preset { return a.preset }

// Position is the time elapsed in the current beat cycle.
func (a *App) Position() float64 { return a.sched.Position() }

func (a *App) Period() float64 { return a.sched.Period() }

// Level is the output loudness of the cue, or 0 when it cannot tell.
func (a *App) Level() float64 {
	if m, ok := a.cue.(Meter); ok {
		return m.Level()
	}
	return 0
}

// Close releases the click voices.
func (a *App) Close() error {
	return a.cue.Close()
}
