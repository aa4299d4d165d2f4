package maze

import "github.com/zyedidia/generic/mapset"

// SearchResult holds the outcome of a breadth-first search over track connections.
type SearchResult struct {
	Visited mapset.Set[Position] // Every position dequeued before the search stopped.
	Found   bool                 // Whether the stop predicate matched.
	Target  Position             // The position that matched the stop predicate.
	parent  map[Position]Position
	origin  Position
}

// Search runs a breadth-first traversal from `from`, following only track that is connected on
// both sides. It stops at the first position for which stop returns true; with a nil stop the
// whole component reachable from `from` is collected.
func (g *Grid) Search(from Position, stop func(Position) bool) SearchResult {
	res := SearchResult{
		Visited: mapset.New[Position](),
		parent:  make(map[Position]Position),
		origin:  from,
	}
	if !g.InBound(from) {
		return res
	}

	queue := []Position{from}
	seen := mapset.New[Position]()
	seen.Put(from)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		res.Visited.Put(current)

		if stop != nil && stop(current) {
			res.Found, res.Target = true, current
			return res
		}

		for _, d := range g.cells[current.Y][current.X].ConnectionList() {
			next := current.Add(d)
			if seen.Has(next) || !g.Connected(current, next) {
				continue
			}
			seen.Put(next)
			res.parent[next] = current
			queue = append(queue, next)
		}
	}

	return res
}

// PathTo rebuilds the route from the search origin to p, or nil if p was never reached.
func (r SearchResult) PathTo(p Position) []Position {
	if !r.Visited.Has(p) {
		return nil
	}
	path := []Position{p}
	for p != r.origin {
		p = r.parent[p]
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathBetween returns the shortest connected route from a to b.
func (g *Grid) PathBetween(a, b Position) ([]Position, bool) {
	res := g.Search(a, func(p Position) bool { return p == b })
	if !res.Found {
		return nil, false
	}
	return res.PathTo(b), true
}

// MainPath returns the shortest connected route from the start cell to the station.
func (g *Grid) MainPath() ([]Position, bool) {
	return g.PathBetween(g.start, g.station)
}

// Reachable returns every position connected to from by track.
func (g *Grid) Reachable(from Position) mapset.Set[Position] {
	return g.Search(from, nil).Visited
}

// CanReach reports whether track leads from a to b.
func (g *Grid) CanReach(a, b Position) bool {
	return g.Search(a, func(p Position) bool { return p == b }).Found
}
