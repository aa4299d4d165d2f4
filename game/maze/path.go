package maze

import "math/rand"

// axis identifies whether a step moved horizontally or vertically.
type axis uint8

const (
	noAxis axis = iota
	horizontal
	vertical
)

const (
	cornerMinRun    = 2   // Consecutive same-axis steps before a corner may be forced.
	cornerBaseProb  = 0.6 // Corner probability once cornerMinRun is reached.
	cornerProbStep  = 0.1 // Increase of the corner probability per additional step.
	cornerMaxProb   = 0.9 // Upper bound of the corner probability.
	detourProb      = 0.3 // Probability of a perpendicular detour step.
	detourMinSteps  = 5   // Steps taken before detours are allowed.
	majorAxisWeight = 0.6 // Weight of the axis with the larger remaining delta.
	stepCapFactor   = 3   // Random-walk steps are capped at stepCapFactor × grid size.
)

// GenerateMeanderingPath returns an ordered walk of adjacent positions from start to end inside a
// size×size grid. The walk is biased towards end but wanders: it forces corners after straight
// runs and occasionally detours sideways. When the random walk exhausts its step budget the
// remaining distance is covered by straight axis-aligned steps, so end is always the last element.
// Positions may repeat. A nil slice is returned when start or end lie outside the grid.
func GenerateMeanderingPath(rng *rand.Rand, size int, start, end Position) []Position {
	inBound := func(p Position) bool {
		return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
	}
	if !inBound(start) || !inBound(end) {
		return nil
	}

	path := []Position{start}
	current := start
	lastAxis := noAxis
	run := 0

	for steps := 0; current != end && steps < stepCapFactor*size; steps++ {
		dx, dy := end.X-current.X, end.Y-current.Y

		detour := lastAxis != noAxis && steps >= detourMinSteps && rng.Float64() < detourProb
		corner := lastAxis != noAxis && run >= cornerMinRun && rng.Float64() < cornerProb(run)

		var next Position
		var moved axis
		switch {
		case detour:
			next, moved = perpendicularStep(current, lastAxis, randomSign(rng))
		case corner:
			toward := dy
			if lastAxis == vertical {
				toward = dx
			}
			next, moved = perpendicularStep(current, lastAxis, signOr(toward, rng))
		default:
			next, moved = biasedStep(rng, current, dx, dy)
		}

		if !inBound(next) {
			// Retry on the axis that still has distance to cover.
			next, moved = directStep(current, end)
		}

		current = next
		path = append(path, current)
		if moved == lastAxis {
			run++
		} else {
			lastAxis, run = moved, 1
		}
	}

	for current != end {
		current, _ = directStep(current, end)
		path = append(path, current)
	}

	return path
}

// cornerProb grows with the length of the current straight run.
func cornerProb(run int) float64 {
	return min(cornerBaseProb+cornerProbStep*float64(run-cornerMinRun), cornerMaxProb)
}

// biasedStep moves one cell towards the target, preferring the axis with the larger delta.
func biasedStep(rng *rand.Rand, p Position, dx, dy int) (Position, axis) {
	horizontalWeight := 1 - majorAxisWeight
	if abs(dx) > abs(dy) {
		horizontalWeight = majorAxisWeight
	}

	switch {
	case rng.Float64() < horizontalWeight && dx != 0:
		return Position{X: p.X + sign(dx), Y: p.Y}, horizontal
	case dy != 0:
		return Position{X: p.X, Y: p.Y + sign(dy)}, vertical
	default:
		return Position{X: p.X + sign(dx), Y: p.Y}, horizontal
	}
}

// perpendicularStep moves one cell across the last axis of travel.
func perpendicularStep(p Position, last axis, s int) (Position, axis) {
	if last == horizontal {
		return Position{X: p.X, Y: p.Y + s}, vertical
	}
	return Position{X: p.X + s, Y: p.Y}, horizontal
}

// directStep moves one cell towards end, closing the horizontal gap first.
func directStep(p, end Position) (Position, axis) {
	if dx := end.X - p.X; dx != 0 {
		return Position{X: p.X + sign(dx), Y: p.Y}, horizontal
	}
	return Position{X: p.X, Y: p.Y + sign(end.Y-p.Y)}, vertical
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// signOr returns the sign of v, or a random sign when v is zero.
func signOr(v int, rng *rand.Rand) int {
	if v == 0 {
		return randomSign(rng)
	}
	return sign(v)
}

func randomSign(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
