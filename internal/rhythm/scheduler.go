package rhythm

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Reset when the tempo or ratio set cannot drive a schedule.
var ErrInvalidConfig = errors.New("invalid config")

// ResetPolicy controls what happens to the cycle position once it passes the beat period.
type ResetPolicy int

const (
	// ResetExact drops the overflow and restarts the cycle at zero.
	ResetExact ResetPolicy = iota
	// ResetModulo keeps the overflow, so the cycle does not drift.
	ResetModulo
)

func (p ResetPolicy) String() string {
	switch p {
	case ResetExact:
		return "exact"
	case ResetModulo:
		return "modulo"
	default:
		return "unknown"
	}
}

// ParseResetPolicy maps "exact" or "modulo" to a ResetPolicy.
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch s {
	case "exact", "":
		return ResetExact, nil
	case "modulo":
		return ResetModulo, nil
	default:
		return ResetExact, errors.Errorf("unknown reset policy %q (expected exact|modulo)", s)
	}
}

// DefaultDecayWindow is the flash length used until SetDecayWindow is called.
const DefaultDecayWindow = 0.01

// Voice is the phase tracker of one configured ratio.
type Voice struct {
	Ratio float64
	// Repeat is the index of the next subdivision expected to fire in this cycle.
	Repeat int
	// Decay is the flash time left, in seconds. Zero means not flashing.
	Decay float64

	// spent is set when Repeat wrapped before the cycle did (fractional ratios).
	spent bool
}

// Flashing reports whether the voice is still inside its decay window.
func (v Voice) Flashing() bool { return v.Decay > 0 }

// Scheduler turns elapsed time into per-voice fire events.
// It is not safe for concurrent use; one frame loop owns it.
type Scheduler struct {
	period   float64
	position float64
	window   float64
	policy   ResetPolicy
	voices   []Voice
	fired    []int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithResetPolicy selects how the cycle position wraps.
func WithResetPolicy(p ResetPolicy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// WithDecayWindow sets the initial flash length in seconds.
func WithDecayWindow(w float64) Option {
	return func(s *Scheduler) { s.SetDecayWindow(w) }
}

// NewScheduler returns an empty scheduler. It produces no events until Reset succeeds.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{window: DefaultDecayWindow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset replaces the whole schedule. On error the scheduler is left untouched.
func (s *Scheduler) Reset(bpm int, ratios []float64) error {
	if bpm <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "bpm must be positive, got %d", bpm)
	}
	if len(ratios) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one ratio is required")
	}
	voices := make([]Voice, 0, len(ratios))
	for i, r := range ratios {
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return errors.Wrapf(ErrInvalidConfig, "ratio %d must be a positive number, got %v", i, r)
		}
		voices = append(voices, Voice{Ratio: r, Repeat: 1})
	}
	sort.SliceStable(voices, func(i, j int) bool { return voices[i].Ratio < voices[j].Ratio })

	s.period = 60 / float64(bpm)
	s.position = 0
	s.voices = voices
	s.fired = s.fired[:0]
	return nil
}

// Advance moves the cycle forward by dt seconds and returns the indices of the voices
// that fired, in ascending ratio order. The returned slice is reused by the next call.
func (s *Scheduler) Advance(dt float64) []int {
	s.fired = s.fired[:0]
	if len(s.voices) == 0 {
		return s.fired
	}
	if dt < 0 {
		dt = 0
	}
	s.position += dt

	for i := range s.voices {
		v := &s.voices[i]
		if v.spent {
			continue
		}
		if s.position > s.period/v.Ratio*float64(v.Repeat) {
			v.Decay = s.window
			v.Repeat++
			if float64(v.Repeat) > v.Ratio {
				v.Repeat = 1
				v.spent = true
			}
			s.fired = append(s.fired, i)
		}
	}

	if s.position > s.period {
		switch s.policy {
		case ResetModulo:
			s.position = math.Mod(s.position, s.period)
		default:
			s.position = 0
		}
		for i := range s.voices {
			s.voices[i].spent = false
		}
	}

	for i := range s.voices {
		s.voices[i].Decay = math.Max(0, s.voices[i].Decay-dt)
	}
	return s.fired
}

// SetDecayWindow changes the flash length used by subsequent fire events.
func (s *Scheduler) SetDecayWindow(w float64) {
	if w < 0 || math.IsNaN(w) {
		w = 0
	}
	s.window = w
}

func (s *Scheduler) DecayWindow() float64 { return s.window }

// Voices returns a copy of the current voice states.
func (s *Scheduler) Voices() []Voice {
	out := make([]Voice, len(s.voices))
	copy(out, s.voices)
	return out
}

// Voice returns the state of voice i.
func (s *Scheduler) Voice(i int) Voice { return s.voices[i] }

func (s *Scheduler) Len() int { return len(s.voices) }

// Empty reports whether no schedule has been loaded yet.
func (s *Scheduler) Empty() bool { return len(s.voices) == 0 }

// Period returns the beat period in seconds.
func (s *Scheduler) Period() float64 { return s.period }

// Position returns the seconds elapsed in the current cycle.
func (s *Scheduler) Position() float64 { return s.position }

func (s *Scheduler) Policy() ResetPolicy { return s.policy }
