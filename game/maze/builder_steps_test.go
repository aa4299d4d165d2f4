package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNetwork(t *testing.T, size int, seed int64, params Difficulty) *network {
	t.Helper()
	g, err := NewGrid(size)
	require.NoError(t, err)
	params.GridSize = size
	return &network{grid: g, rng: rand.New(rand.NewSource(seed)), params: params}
}

func TestNetwork_EnsureStationAccessible(t *testing.T) {
	t.Run("Bridges a distant station", func(t *testing.T) {
		n := newNetwork(t, 6, 1, Difficulty{})
		require.NoError(t, n.grid.SetType(Position{X: 0, Y: 0}, Start))
		require.NoError(t, n.grid.SetType(Position{X: 5, Y: 5}, Station))
		require.NoError(t, n.grid.Connect(Position{X: 0, Y: 0}, Position{X: 1, Y: 0}))
		require.NoError(t, n.grid.Connect(Position{X: 1, Y: 0}, Position{X: 2, Y: 0}))
		require.False(t, n.grid.CanReach(n.grid.Start(), n.grid.Station()))

		n.ensureStationAccessible()

		assert.True(t, n.grid.CanReach(n.grid.Start(), n.grid.Station()))
		assert.Equal(t, 1, n.grid.Cell(n.grid.Station()).Degree())
		_, _, symmetric := n.grid.Symmetric()
		assert.True(t, symmetric)

		// Horizontal gap first, then straight up to (2,0).
		path, ok := n.grid.PathBetween(n.grid.Station(), Position{X: 2, Y: 0})
		require.True(t, ok)
		assert.Len(t, path, 9)
	})

	t.Run("Connected station is left alone", func(t *testing.T) {
		n := newNetwork(t, 4, 1, Difficulty{})
		require.NoError(t, n.grid.SetType(Position{X: 0, Y: 1}, Start))
		require.NoError(t, n.grid.SetType(Position{X: 3, Y: 1}, Station))
		require.NoError(t, n.grid.Connect(Position{X: 3, Y: 1}, Position{X: 3, Y: 2}))
		before := n.grid.String()

		n.ensureStationAccessible()
		assert.Equal(t, before, n.grid.String())
	})

	t.Run("No track anywhere", func(t *testing.T) {
		n := newNetwork(t, 4, 1, Difficulty{})
		require.NoError(t, n.grid.SetType(Position{X: 0, Y: 1}, Start))
		require.NoError(t, n.grid.SetType(Position{X: 3, Y: 1}, Station))

		n.ensureStationAccessible()
		assert.Zero(t, n.grid.Cell(n.grid.Station()).Degree())
	})
}

func TestNetwork_AddCrossings(t *testing.T) {
	t.Run("Crossing connects all four neighbours", func(t *testing.T) {
		// A 3x3 grid has a single interior cell, so a second crossing cannot be placed.
		n := newNetwork(t, 3, 7, Difficulty{Crossings: 2})
		n.addCrossings()

		center := Position{X: 1, Y: 1}
		c := n.grid.Cell(center)
		assert.True(t, c.Type.Crossing(), c.Type.String())
		assert.Equal(t, 4, c.Degree())

		for _, nb := range n.grid.Neighbors(center) {
			cell := n.grid.Cell(nb)
			assert.Equal(t, 1, cell.Degree(), nb.String())
			assert.Equal(t, Empty, cell.Type, nb.String())
			assert.True(t, n.grid.Connected(center, nb), nb.String())
		}

		crossings := n.grid.Positions(func(_ Position, c Cell) bool { return c.Type.Crossing() })
		assert.Len(t, crossings, 1)
	})

	t.Run("Only interior empty cells", func(t *testing.T) {
		for seed := int64(1); seed <= 30; seed++ {
			n := newNetwork(t, 6, seed, Difficulty{Crossings: 3})
			require.NoError(t, n.grid.SetType(Position{X: 2, Y: 2}, Junction))
			n.addCrossings()

			crossings := n.grid.Positions(func(_ Position, c Cell) bool { return c.Type.Crossing() })
			assert.Len(t, crossings, 3, "seed %d", seed)
			for _, p := range crossings {
				assert.True(t, p.X > 0 && p.X < 5 && p.Y > 0 && p.Y < 5, "seed %d: %s", seed, p)
				assert.Equal(t, 4, n.grid.Cell(p).Degree(), "seed %d: %s", seed, p)
			}
			assert.Equal(t, Junction, n.grid.Cell(Position{X: 2, Y: 2}).Type)
		}
	})
}

func TestNetwork_BranchAllowed(t *testing.T) {
	n := newNetwork(t, 4, 1, Difficulty{})
	a, b := Position{X: 1, Y: 1}, Position{X: 2, Y: 1}

	t.Run("Empty endpoint", func(t *testing.T) {
		assert.True(t, n.branchAllowed(a, b))
	})

	t.Run("Neither endpoint empty nor on track", func(t *testing.T) {
		require.NoError(t, n.grid.SetType(a, Junction))
		require.NoError(t, n.grid.SetType(b, Buffer))
		assert.False(t, n.branchAllowed(a, b))
	})

	t.Run("Endpoint already on track", func(t *testing.T) {
		require.NoError(t, n.grid.Connect(b, Position{X: 2, Y: 2}))
		assert.True(t, n.branchAllowed(a, b))
	})
}

func TestNetwork_SidingDirections(t *testing.T) {
	t.Run("Prefers room for a full siding", func(t *testing.T) {
		n := newNetwork(t, 6, 1, Difficulty{})
		p := Position{X: 1, Y: 1}
		// Down has a single free cell before track at (1,3).
		require.NoError(t, n.grid.Connect(Position{X: 1, Y: 3}, Position{X: 2, Y: 3}))

		assert.Equal(t, 1, n.runway(p, Left))
		assert.Equal(t, 1, n.runway(p, Up))
		assert.Equal(t, 1, n.runway(p, Down))
		assert.Equal(t, maxDeadEndLength, n.runway(p, Right))
		assert.Equal(t, []Direction{Right}, n.sidingDirections(p))
	})

	t.Run("Falls back to short sidings", func(t *testing.T) {
		n := newNetwork(t, 3, 1, Difficulty{})
		assert.ElementsMatch(t, Directions, n.sidingDirections(Position{X: 1, Y: 1}))
	})

	t.Run("No free neighbour", func(t *testing.T) {
		n := newNetwork(t, 3, 1, Difficulty{})
		for _, nb := range n.grid.Neighbors(Position{X: 1, Y: 1}) {
			require.NoError(t, n.grid.Connect(Position{X: 1, Y: 1}, nb))
		}
		assert.Empty(t, n.sidingDirections(Position{X: 1, Y: 1}))
	})
}

func TestNetwork_AddDeadEnd(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		n := newNetwork(t, 8, seed, Difficulty{})
		junction := Position{X: 0, Y: 3}

		n.addDeadEnd(junction, Right)

		buffers := n.grid.Positions(func(_ Position, c Cell) bool { return c.Type == Buffer })
		require.Len(t, buffers, 1, "seed %d", seed)
		length := buffers[0].X
		assert.GreaterOrEqual(t, length, minDeadEndLength, "seed %d", seed)
		assert.LessOrEqual(t, length, maxDeadEndLength, "seed %d", seed)
		assert.Equal(t, 1, n.grid.Cell(buffers[0]).Degree(), "seed %d", seed)
		assert.True(t, n.grid.CanReach(junction, buffers[0]), "seed %d", seed)
	}
}

func TestGenerate_SidingLengths(t *testing.T) {
	lengths := map[int]int{}
	for seed := int64(1); seed <= 200; seed++ {
		g, err := Generate(rand.New(rand.NewSource(seed)), Scale(20))
		if err != nil {
			continue
		}
		g.ForEach(func(p Position, c Cell) {
			if c.Type != Buffer || c.Degree() != 1 {
				return
			}
			// Walk back to the first cell that is not a plain straight.
			length := 0
			prev, cur := p, p.Add(c.ConnectionList()[0])
			for {
				length++
				cell := g.Cell(cur)
				if cell.Type != Empty || cell.Degree() != 2 {
					break
				}
				next := cur
				for _, d := range cell.ConnectionList() {
					if cur.Add(d) != prev {
						next = cur.Add(d)
					}
				}
				prev, cur = cur, next
			}
			if g.Cell(cur).Type == Junction {
				lengths[length]++
			}
		})
	}

	total := 0
	for _, n := range lengths {
		total += n
	}
	require.NotZero(t, total)
	assert.Less(t, float64(lengths[1])/float64(total), 0.3, "siding lengths %v", lengths)
}
