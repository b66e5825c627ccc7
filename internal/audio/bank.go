// Package audio plays one pitched click per fired polyrhythm voice.
package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
)

// Bank owns the click voices of the loaded preset and mixes them into one output stream.
// Play and Reset must hold the same lock as the device pulling Output.
type Bank struct {
	lock   sync.Locker
	click  *beep.Buffer
	mixer  *beep.Mixer
	volume *effects.Volume
	tap    *levelTap
	log    logrus.FieldLogger

	pitches []float64
}

type BankOption func(*Bank)

// WithLocker sets the lock shared with the output device.
func WithLocker(l sync.Locker) BankOption {
	return func(b *Bank) { b.lock = l }
}

func WithLogger(l logrus.FieldLogger) BankOption {
	return func(b *Bank) { b.log = l }
}

// WithVolume sets the master volume in 0..1.
func WithVolume(v float64) BankOption {
	return func(b *Bank) { b.SetVolume(v) }
}

func NewBank(click *beep.Buffer, opts ...BankOption) *Bank {
	mixer := &beep.Mixer{}
	vol := &effects.Volume{Streamer: mixer, Base: 2}
	b := &Bank{
		lock:   &sync.Mutex{},
		click:  click,
		mixer:  mixer,
		volume: vol,
		tap:    newLevelTap(vol, click.Format().SampleRate.N(config.MeterWindow)),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Format is the format of Output.
func (b *Bank) Format() beep.Format { return b.click.Format() }

// Output is the endless mixed stream to hand to the speaker.
func (b *Bank) Output() beep.Streamer { return b.tap }

// SetVolume changes the master volume; 0 silences the output.
func (b *Bank) SetVolume(v float64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if v <= 0 {
		b.volume.Silent = true
		return
	}
	b.volume.Silent = false
	b.volume.Volume = math.Log2(math.Min(v, 1))
}

// Reset drops every voice of the previous preset, including clicks still ringing,
// and prepares one voice per ratio.
func (b *Bank) Reset(ratios []float64) {
	pitches := make([]float64, len(ratios))
	for i, r := range ratios {
		pitches[i] = Pitch(r)
	}

	b.lock.Lock()
	b.mixer.Clear()
	b.pitches = pitches
	b.lock.Unlock()

	b.log.WithField("voices", len(pitches)).Debug("click bank reset")
}

// Play starts one click for each listed voice.
func (b *Bank) Play(voices []int) {
	if len(voices) == 0 {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	for _, i := range voices {
		if i < 0 || i >= len(b.pitches) {
			continue
		}
		b.mixer.Add(b.voice(b.pitches[i]))
	}
}

func (b *Bank) voice(pitch float64) beep.Streamer {
	s := b.click.Streamer(0, b.click.Len())
	if pitch == 1 {
		return s
	}
	return beep.ResampleRatio(4, pitch, s)
}

// Voices returns the number of prepared voices.
func (b *Bank) Voices() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.pitches)
}

// Playing returns the number of clicks still sounding.
func (b *Bank) Playing() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.mixer.Len()
}

// Level is the recent output loudness, 0..1.
func (b *Bank) Level() float64 {
	return math.Min(1, b.tap.level())
}

// Close silences the bank and releases every voice.
func (b *Bank) Close() error {
	b.lock.Lock()
	b.mixer.Clear()
	b.pitches = nil
	b.lock.Unlock()
	return nil
}

// Pitch is the playback speed of the click for a voice of the given ratio.
func Pitch(ratio float64) float64 {
	if ratio <= 0 {
		return 1
	}
	p := config.ClickPitchBase / ratio
	return math.Max(config.ClickPitchMin, math.Min(config.ClickPitchMax, p))
}
