package pace

// SpeedStep is the fixed WPM adjustment applied after each round outcome.
const SpeedStep = 10

// AdjustSpeed nudges the target speed after a round: up by SpeedStep on
// success, down on failure, clamped to the configured range. Inverted
// bounds are swapped so the result always lies within the ordered range.
func AdjustSpeed(currentWPM, minWPM, maxWPM int, succeeded bool) int {
	if minWPM > maxWPM {
		minWPM, maxWPM = maxWPM, minWPM
	}
	next := currentWPM
	if succeeded {
		next += SpeedStep
	} else {
		next -= SpeedStep
	}
	if next > maxWPM {
		return maxWPM
	}
	if next < minWPM {
		return minWPM
	}
	return next
}
