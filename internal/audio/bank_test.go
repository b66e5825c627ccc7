package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func energy(samples [][2]float64) float64 {
	var e float64
	for _, s := range samples {
		e += s[0]*s[0] + s[1]*s[1]
	}
	return e
}

func pull(s beep.Streamer, n int) [][2]float64 {
	buf := make([][2]float64, n)
	s.Stream(buf)
	return buf
}

func newTestBank(t *testing.T, opts ...BankOption) (*Bank, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts = append([]BankOption{WithLogger(logger)}, opts...)
	return NewBank(SynthClick(Format(44100)), opts...), hook
}

func TestSynthClick(t *testing.T) {
	f := Format(44100)
	buf := SynthClick(f)
	assert.Equal(t, f.SampleRate.N(60*time.Millisecond), buf.Len())
	assert.Greater(t, energy(pull(buf.Streamer(0, buf.Len()), buf.Len())), 0.0)
}

func TestLoadClickResamples(t *testing.T) {
	src := Format(22050)
	path := filepath.Join(t.TempDir(), "ping.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	synth := SynthClick(src)
	require.NoError(t, wav.Encode(f, synth.Streamer(0, synth.Len()), src))
	require.NoError(t, f.Close())

	buf, err := LoadClick(path, Format(44100))
	require.NoError(t, err)
	assert.Equal(t, beep.SampleRate(44100), buf.Format().SampleRate)
	assert.InDelta(t, synth.Len()*2, buf.Len(), 16)
}

func TestOpenClickFallsBackToSynth(t *testing.T) {
	f := Format(44100)

	buf, err := OpenClick("", f)
	require.NoError(t, err)
	assert.Equal(t, SynthClick(f).Len(), buf.Len())

	buf, err = OpenClick(filepath.Join(t.TempDir(), "missing.wav"), f)
	assert.Error(t, err)
	require.NotNil(t, buf)
	assert.Greater(t, buf.Len(), 0)

	_, err = LoadClick("click.ogg", f)
	assert.Error(t, err)
}

func TestBankPlaysFiredVoices(t *testing.T) {
	b, hook := newTestBank(t, WithVolume(1))
	b.Reset([]float64{3, 7})
	assert.Equal(t, 2, b.Voices())
	assert.Equal(t, "click bank reset", hook.LastEntry().Message)

	assert.Equal(t, 0.0, energy(pull(b.Output(), 512)))

	b.Play([]int{0, 1, 5, -1})
	assert.Equal(t, 2, b.Playing())
	assert.Greater(t, energy(pull(b.Output(), 512)), 0.0)
	assert.Greater(t, b.Level(), 0.0)

	pull(b.Output(), 44100)
	assert.Equal(t, 0, b.Playing())
}

func TestBankResetStopsRingingClicks(t *testing.T) {
	b, _ := newTestBank(t)
	b.Reset([]float64{4})
	b.Play([]int{0})
	require.Equal(t, 1, b.Playing())

	b.Reset([]float64{2, 3, 5})
	assert.Equal(t, 0, b.Playing())
	assert.Equal(t, 3, b.Voices())
}

func TestBankSilentVolume(t *testing.T) {
	b, _ := newTestBank(t, WithVolume(0))
	b.Reset([]float64{4})
	b.Play([]int{0})
	assert.Equal(t, 0.0, energy(pull(b.Output(), 512)))
}

func TestBankClose(t *testing.T) {
	b, _ := newTestBank(t)
	b.Reset([]float64{4})
	b.Play([]int{0})
	require.NoError(t, b.Close())
	assert.Equal(t, 0, b.Voices())
	assert.Equal(t, 0, b.Playing())

	b.Play([]int{0})
	assert.Equal(t, 0, b.Playing())
}

func TestPitch(t *testing.T) {
	assert.Equal(t, 1.0, Pitch(4))
	assert.Equal(t, 2.0, Pitch(2))
	assert.InDelta(t, 4.0/7, Pitch(7), 1e-12)
	assert.Equal(t, 8.0, Pitch(0.1))
	assert.Equal(t, 1.0/8, Pitch(100))
	assert.Equal(t, 1.0, Pitch(0))
}
