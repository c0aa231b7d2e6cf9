// Package progression maps cumulative score to the difficulty multiplier that
// scales enemy toughness, heal potency and weapon drop damage.
package progression

import (
	"math"

	"github.com/lixenwraith/planetfall/parameter"
)

// Multiplier returns 1 + score*0.0005
// Negative scores are treated as zero so the curve never drops below 1
func Multiplier(score int) float64 {
	if score < 0 {
		score = 0
	}
	return 1 + float64(score)*parameter.ProgressionDifficultyPerPoint
}

// Scale applies the multiplier to an integer base and floors the result
func Scale(base, score int) int {
	return ScaleFloat(float64(base), score)
}

// ScaleFloat applies the multiplier to a continuous base (e.g. a rolled weapon damage) and floors the result
func ScaleFloat(base float64, score int) int {
	return int(math.Floor(base * Multiplier(score)))
}
