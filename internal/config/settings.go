package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/polyrhythm-metronome/internal/rhythm"
)

// Settings are the user preferences that survive between presets.
type Settings struct {
	DecayWindow float64 `yaml:"decay_window"` // seconds a fired bar stays visible
	Muted       bool    `yaml:"muted"`
	Volume      float64 `yaml:"volume"` // master volume, 0..1
	Sound       string  `yaml:"sound"`  // click sample; a synthesized ping is used when missing
	ResetPolicy string  `yaml:"reset_policy"`
	TPS         int     `yaml:"tps"`
	LogLevel    string  `yaml:"log_level"`
}

func DefaultSettings() Settings {
	return Settings{
		DecayWindow: rhythm.DefaultDecayWindow,
		Muted:       true,
		Volume:      0.25,
		Sound:       "ping.wav",
		ResetPolicy: rhythm.ResetExact.String(),
		TPS:         480,
		LogLevel:    "info",
	}
}

// LoadSettings reads a YAML settings file on top of the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrap(err, "read settings")
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "parse settings %s", path)
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	if s.DecayWindow < DecayMin || s.DecayWindow > DecayMax {
		return errors.Errorf("decay_window must be within [%v, %v], got %v", DecayMin, DecayMax, s.DecayWindow)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return errors.Errorf("volume must be within [0, 1], got %v", s.Volume)
	}
	if s.TPS <= 0 {
		return errors.Errorf("tps must be positive, got %d", s.TPS)
	}
	if _, err := rhythm.ParseResetPolicy(s.ResetPolicy); err != nil {
		return err
	}
	return nil
}

// Policy returns the parsed reset policy; Validate reports invalid values.
func (s Settings) Policy() rhythm.ResetPolicy {
	p, _ := rhythm.ParseResetPolicy(s.ResetPolicy)
	return p
}
