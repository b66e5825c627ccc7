// Package speakersink connects a click bank to the system speaker.
package speakersink

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// Locker serializes access to streamers the speaker is pulling from.
type Locker struct{}

func (Locker) Lock()   { speaker.Lock() }
func (Locker) Unlock() { speaker.Unlock() }

// Sink is a started speaker.
type Sink struct{}

// Start initializes the speaker and plays out forever.
func Start(format beep.Format, out beep.Streamer) (*Sink, error) {
	bufferSize := format.SampleRate.N(time.Second / 100)
	if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	speaker.Play(out)
	return &Sink{}, nil
}

// Close stops playback and releases the audio device.
func (s *Sink) Close() error {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}
