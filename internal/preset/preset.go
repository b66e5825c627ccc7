// Package preset reads polyrhythm documents: a tempo and a list of ratios.
package preset

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/iburimskiy/polyrhythm-metronome/internal/rhythm"
)

// Extension is the only file extension accepted by Load and LoadFS.
const Extension = ".json"

var (
	// ErrParse is returned for documents that are not valid JSON of the expected shape.
	ErrParse = errors.New("malformed preset")
	// ErrUnsupportedFile is returned for paths without the preset extension.
	ErrUnsupportedFile = errors.New("unsupported file")
)

// Preset is a parsed polyrhythm document.
type Preset struct {
	BPM    int       `json:"bpm"`
	Ratios []float64 `json:"ratios"`
}

type document struct {
	BPM    *int       `json:"bpm"`
	Ratios *[]float64 `json:"ratios"`
}

// Parse decodes a preset. Both fields are required; other fields are ignored.
func Parse(data []byte) (Preset, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Preset{}, errors.Wrap(ErrParse, err.Error())
	}
	if dec.More() {
		return Preset{}, errors.Wrap(ErrParse, "trailing data after document")
	}
	if doc.BPM == nil {
		return Preset{}, errors.Wrap(rhythm.ErrInvalidConfig, `missing field "bpm"`)
	}
	if doc.Ratios == nil {
		return Preset{}, errors.Wrap(rhythm.ErrInvalidConfig, `missing field "ratios"`)
	}
	return Preset{BPM: *doc.BPM, Ratios: *doc.Ratios}, nil
}

// Supported reports whether name carries the preset extension.
func Supported(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// Load reads and parses a preset from disk.
func Load(path string) (Preset, error) {
	if !Supported(path) {
		return Preset{}, errors.Wrapf(ErrUnsupportedFile, "%s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, errors.Wrap(err, "read preset")
	}
	return Parse(data)
}

// LoadFS reads and parses a preset from fsys, e.g. a set of dropped files.
func LoadFS(fsys fs.FS, name string) (Preset, error) {
	if !Supported(name) {
		return Preset{}, errors.Wrapf(ErrUnsupportedFile, "%s", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Preset{}, errors.Wrap(err, "read preset")
	}
	return Parse(data)
}

// Label joins the ratios as shown in the window corner, e.g. "7:3".
func (p Preset) Label() string {
	parts := make([]string, len(p.Ratios))
	for i, r := range p.Ratios {
		parts[i] = strconv.FormatFloat(r, 'g', -1, 64)
	}
	return strings.Join(parts, ":")
}
