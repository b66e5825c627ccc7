package rhythm

// MaxIntensity is the intensity of a voice that has just fired.
const MaxIntensity = 30.0

// Intensity maps the remaining decay onto a cubic ease-in curve:
// 0 when nothing is left, MaxIntensity at a full window.
func Intensity(remaining, window float64) float64 {
	if window <= 0 || remaining <= 0 {
		return 0
	}
	t := remaining / window
	if t > 1 {
		t = 1
	}
	return MaxIntensity * t * t * t
}
