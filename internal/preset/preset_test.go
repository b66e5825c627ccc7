package preset

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/polyrhythm-metronome/internal/rhythm"
)

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`{"bpm": 90, "ratios": [7, 3, 2.5], "comment": "ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, 90, p.BPM)
	assert.Equal(t, []float64{7, 3, 2.5}, p.Ratios)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		kind error
	}{
		{"not json", `bpm=60`, ErrParse},
		{"truncated", `{"bpm": 60, "ratios": [1,`, ErrParse},
		{"wrong type", `{"bpm": "fast", "ratios": [1]}`, ErrParse},
		{"fractional bpm", `{"bpm": 60.5, "ratios": [1]}`, ErrParse},
		{"trailing data", `{"bpm": 60, "ratios": [1]} {}`, ErrParse},
		{"missing bpm", `{"ratios": [7, 3]}`, rhythm.ErrInvalidConfig},
		{"missing ratios", `{"bpm": 60}`, rhythm.ErrInvalidConfig},
		{"null ratios", `{"bpm": 60, "ratios": null}`, rhythm.ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
		})
	}
}

func TestLoadChecksExtensionFirst(t *testing.T) {
	_, err := Load("/does/not/exist/rhythm.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFile))
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "three.JSON")
	require.NoError(t, os.WriteFile(path, []byte(`{"bpm": 60, "ratios": [3, 2]}`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3:2", p.Label())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"poly.json": {Data: []byte(`{"bpm": 120, "ratios": [4]}`)},
		"ping.wav":  {Data: []byte("RIFF")},
	}

	p, err := LoadFS(fsys, "poly.json")
	require.NoError(t, err)
	assert.Equal(t, Preset{BPM: 120, Ratios: []float64{4}}, p)

	_, err = LoadFS(fsys, "ping.wav")
	assert.True(t, errors.Is(err, ErrUnsupportedFile))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "7:3", Preset{Ratios: []float64{7, 3}}.Label())
	assert.Equal(t, "2.5:4", Preset{Ratios: []float64{2.5, 4}}.Label())
	assert.Equal(t, "", Preset{}.Label())
}
