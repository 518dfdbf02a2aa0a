package sevenseg_backpack

import "math"

// MaxBrightness is the top level; the chip has 16 dimming steps and level 0 is off.
const MaxBrightness = 16

// BrightnessLevel maps 0.0-1.0 onto 0-MaxBrightness, clamping anything outside.
func BrightnessLevel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	scaled := math.Round(v * MaxBrightness)
	if scaled < 0 {
		return 0
	}
	if scaled > MaxBrightness {
		return MaxBrightness
	}
	return int(scaled)
}
