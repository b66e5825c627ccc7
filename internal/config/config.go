package config

import "time"

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "polyrhythm mf"

	// Slider across the top edge
	SliderHeight = 20

	// Mute checkbox
	CheckboxX    = 0
	CheckboxY    = 30
	CheckboxSize = 20

	// Open button, right of the checkbox
	ButtonWidth  = 120
	ButtonHeight = 20
	ButtonX      = 80
	ButtonY      = 30

	// Output meter, right of the button
	MeterX      = 210
	MeterY      = 30
	MeterWidth  = 100
	MeterHeight = 20

	// Debug font cell size
	CharWidth  = 6
	CharHeight = 16

	// Decay window slider range, seconds
	DecayMin = 0.01
	DecayMax = 1.0

	// Pitch of a voice is ClickPitchBase / ratio
	ClickPitchBase = 4.0
	ClickPitchMin  = 1.0 / 8
	ClickPitchMax  = 8.0

	SampleRate = 44100
	VoiceAlpha = 128
)

// MeterWindow is how much recent output the level meter averages.
const MeterWindow = 20 * time.Millisecond
