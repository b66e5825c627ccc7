package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// Format is the output format every click is converted to.
func Format(sampleRate int) beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
}

// LoadClick decodes a click sample into memory, resampled to format.
func LoadClick(path string, format beep.Format) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open click")
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		src      beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, src, err = wav.Decode(f)
	case ".mp3":
		streamer, src, err = mp3.Decode(f)
	case ".flac":
		streamer, src, err = flac.Decode(f)
	default:
		return nil, errors.Errorf("unsupported click type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if src.SampleRate != format.SampleRate {
		s = beep.Resample(4, src.SampleRate, format.SampleRate, s)
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if buf.Len() == 0 {
		return nil, errors.Errorf("click %s is empty", filepath.Base(path))
	}
	return buf, nil
}

// SynthClick renders a short decaying sine ping.
func SynthClick(format beep.Format) *beep.Buffer {
	const (
		freq = 1760.0
		dur  = 60 * time.Millisecond
	)
	n := format.SampleRate.N(dur)
	rate := float64(format.SampleRate)
	i := 0
	ping := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for j := range samples {
			env := math.Exp(-6 * float64(i) / float64(n))
			v := math.Sin(2*math.Pi*freq*float64(i)/rate) * env
			samples[j] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(n, ping))
	return buf
}

// OpenClick loads path, falling back to SynthClick when it cannot be used.
func OpenClick(path string, format beep.Format) (*beep.Buffer, error) {
	if path == "" {
		return SynthClick(format), nil
	}
	buf, err := LoadClick(path, format)
	if err != nil {
		return SynthClick(format), err
	}
	return buf, nil
}
