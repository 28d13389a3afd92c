package pace

import (
	"math"

	"github.com/artemgv/ritmo/internal/model"
)

// Ramp configures how effective speed rises toward the target over
// accumulated active session time.
type Ramp struct {
	Curve        model.RampCurve
	Rate         int     // WPM added per interval (linear curve)
	IntervalSec  float64 // step interval, or half-life for the log curve
	StartPercent int     // starting speed as a percentage of the target
}

// EffectiveSpeed computes the effective WPM after elapsedMs of active
// reading. The linear curve steps up by Rate every IntervalSec and clamps
// at the target; the logarithmic curve treats IntervalSec as a half-life
// and approaches the target asymptotically. Ramp state depends only on
// accumulated active time, never on chunk index or wall clock.
func EffectiveSpeed(targetWPM int, elapsedMs float64, ramp Ramp) int {
	if targetWPM <= 0 {
		return 0
	}
	if ramp.Curve == model.RampNone || ramp.IntervalSec <= 0 {
		return targetWPM
	}
	start := float64(targetWPM) * clampPercent(ramp.StartPercent) / 100
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	elapsedSec := elapsedMs / 1000

	var speed float64
	switch ramp.Curve {
	case model.RampLinear:
		if ramp.Rate <= 0 {
			return targetWPM
		}
		steps := math.Floor(elapsedSec / ramp.IntervalSec)
		speed = start + float64(ramp.Rate)*steps
	case model.RampLogarithmic:
		halfLives := elapsedSec / ramp.IntervalSec
		speed = float64(targetWPM) - (float64(targetWPM)-start)*math.Pow(0.5, halfLives)
	default:
		return targetWPM
	}

	if speed > float64(targetWPM) {
		return targetWPM
	}
	if speed < 1 {
		return 1
	}
	return int(math.Round(speed))
}

// clampPercent keeps the start percentage inside [1, 100]. Zero and
// negative values floor at 1 rather than disabling the ramp; a caller
// wanting no ramp sets Curve to RampNone.
func clampPercent(pct int) float64 {
	if pct < 1 {
		return 1
	}
	if pct > 100 {
		return 100
	}
	return float64(pct)
}
