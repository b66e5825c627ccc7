package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap passes a stream through unchanged and keeps the mean power of its most
// recent samples, so the meter can read the output loudness from another goroutine.
type levelTap struct {
	src beep.Streamer

	mu     sync.Mutex
	powers []float64 // mono power per sample, ring
	next   int
	sum    float64
}

func newLevelTap(src beep.Streamer, window int) *levelTap {
	if window < 1 {
		window = 1
	}
	return &levelTap{src: src, powers: make([]float64, window)}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.src.Stream(samples)
	if n <= 0 {
		return n, ok
	}
	t.mu.Lock()
	for _, s := range samples[:n] {
		mono := (s[0] + s[1]) / 2
		p := mono * mono
		t.sum += p - t.powers[t.next]
		t.powers[t.next] = p
		t.next++
		if t.next == len(t.powers) {
			t.next = 0
			// re-sum once per lap so rounding drift cannot build up
			t.sum = 0
			for _, q := range t.powers {
				t.sum += q
			}
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *levelTap) Err() error { return t.src.Err() }

// level is the RMS of the window, both channels mixed down.
func (t *levelTap) level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return math.Sqrt(math.Max(0, t.sum) / float64(len(t.powers)))
}
