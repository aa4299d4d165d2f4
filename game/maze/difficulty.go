package maze

// Difficulty holds the generation parameters derived from the player's cumulative score.
type Difficulty struct {
	GridSize    int `json:"grid_size"`    // Rows and columns of the next grid.
	BranchPaths int `json:"branch_paths"` // Extra meandering paths laid over the main line.
	Crossings   int `json:"crossings"`    // Tunnel or bridge cells to place.
	Junctions   int `json:"junctions"`    // Junctions (each with a dead-end siding) to place.
}

// Score thresholds at which the grid grows.
var gridSizeSteps = []struct {
	below int
	size  int
}{{10, 6}, {25, 8}, {50, 10}}

const largestGridSize = 12

// Scale maps a cumulative score to the parameters of the next generation pass.
// Every field is a non-decreasing step function of score.
func Scale(score int) Difficulty {
	score = max(score, 0)

	size := largestGridSize
	for _, step := range gridSizeSteps {
		if score < step.below {
			size = step.size
			break
		}
	}

	return Difficulty{
		GridSize:    size,
		BranchPaths: min(score/15+1, 2),
		Crossings:   min(score/10+1, 3),
		Junctions:   min(score/5+2, size/2),
	}
}
