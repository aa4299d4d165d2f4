package maze

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-rail/config"
)

const (
	defaultMaxAttempts = 5

	minDeadEndLength = 2
	maxDeadEndLength = 4
)

// Generation errors. A grid that fails validation is discarded and rebuilt.
var (
	ErrGenerationFailed   = errors.New("rail network generation failed")
	ErrStationUnreachable = errors.New("station is not reachable from start")
	ErrAsymmetricTrack    = errors.New("track connection has no reciprocal")
	ErrTerminalPlacement  = errors.New("start and station are not on opposite edges")
	ErrBufferDegree       = errors.New("buffer has more than one connection")
	ErrCrossingDegree     = errors.New("crossing is not fully connected")
	ErrJunctionPlacement  = errors.New("junction is off the main path or has no siding")
)

// BuilderConfig holds the settings used to create a Builder.
type BuilderConfig struct {
	Seed        int64        // Seed of the attempt-seed sequence. Zero seeds from the clock.
	MaxAttempts int          // Attempts before Build gives up. Defaults to 5.
	Logger      *log.Logger  // Logger for discarded attempts. Defaults to discarding output.
	Generate    GenerateFunc // Single generation pass. Defaults to Generate.
}

// GenerateFunc runs one generation pass from rng with the given parameters.
type GenerateFunc func(rng *rand.Rand, params Difficulty) (*Grid, error)

// Builder generates complete rail networks sized by the player's score.
// Each attempt runs with its own seed drawn from the builder's source, so a failed
// attempt is retried on a different layout.
type Builder struct {
	rng         *rand.Rand
	maxAttempts int
	logger      *log.Logger
	generate    GenerateFunc
	sync.Mutex
}

// NewBuilder creates a Builder from c.
func NewBuilder(c BuilderConfig) *Builder {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	if c.Generate == nil {
		c.Generate = Generate
	}

	return &Builder{
		rng:         rand.New(rand.NewSource(seed)),
		maxAttempts: c.MaxAttempts,
		logger:      c.Logger,
		generate:    c.Generate,
	}
}

// Build returns a fully generated and validated grid for the given cumulative score.
func (b *Builder) Build(score int) (*Grid, error) {
	params := Scale(score)

	var lastErr error
	for attempt := 1; attempt <= b.maxAttempts; attempt++ {
		seed := b.nextSeed()
		grid, err := b.generate(rand.New(rand.NewSource(seed)), params)
		if err == nil {
			return grid, nil
		}

		lastErr = err
		b.logger.Printf("%s[ERROR]%s discarded rail network attempt %d (seed %d): %s", config.LogErrorColor, config.LogColorReset, attempt, seed, err)
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, b.maxAttempts, lastErr)
}

func (b *Builder) nextSeed() int64 {
	b.Lock()
	defer b.Unlock()
	return b.rng.Int63()
}

// network carries the state of a single generation pass.
type network struct {
	grid   *Grid
	rng    *rand.Rand
	params Difficulty
}

// Generate runs one generation pass with the given parameters and validates the result.
// The grid is only returned when every network invariant holds.
func Generate(rng *rand.Rand, params Difficulty) (*Grid, error) {
	grid, err := NewGrid(params.GridSize)
	if err != nil {
		return nil, err
	}

	n := &network{grid: grid, rng: rng, params: params}
	if err := n.placeTerminals(); err != nil {
		return nil, err
	}
	n.layMainPath()
	n.addBranchPaths()
	n.addCrossings()
	n.ensureStationAccessible()
	n.addJunctions()
	n.markDeadEndsAsBuffers()

	if err := Validate(grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// placeTerminals puts the start on the left or top edge and the station on the opposite edge.
func (n *network) placeTerminals() error {
	size := n.grid.Size()
	var start, station Position
	if n.rng.Intn(2) == 0 {
		start = Position{X: 0, Y: n.rng.Intn(size)}
		station = Position{X: size - 1, Y: n.rng.Intn(size)}
	} else {
		start = Position{X: n.rng.Intn(size), Y: 0}
		station = Position{X: n.rng.Intn(size), Y: size - 1}
	}

	if err := n.grid.SetType(start, Start); err != nil {
		return err
	}
	return n.grid.SetType(station, Station)
}

func (n *network) layMainPath() {
	path := GenerateMeanderingPath(n.rng, n.grid.Size(), n.grid.Start(), n.grid.Station())
	n.connectPath(path, nil)
}

// connectPath connects every consecutive pair of path accepted by allow (nil accepts all).
func (n *network) connectPath(path []Position, allow func(a, b Position) bool) {
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if a == b || (allow != nil && !allow(a, b)) {
			continue
		}
		_ = n.grid.Connect(a, b)
	}
}

// addBranchPaths lays extra meandering track between two connected, non-terminal cells.
func (n *network) addBranchPaths() {
	for i := 0; i < n.params.BranchPaths; i++ {
		candidates := n.grid.Positions(func(_ Position, c Cell) bool {
			return c.Degree() > 0 && !c.Type.Immutable()
		})
		if len(candidates) < 2 {
			return
		}

		from := n.rng.Intn(len(candidates))
		to := n.rng.Intn(len(candidates) - 1)
		if to >= from {
			to++
		}

		path := GenerateMeanderingPath(n.rng, n.grid.Size(), candidates[from], candidates[to])
		n.connectPath(path, n.branchAllowed)
	}
}

// branchAllowed accepts a branch segment when one endpoint is plain or already carries track.
func (n *network) branchAllowed(a, b Position) bool {
	for _, p := range []Position{a, b} {
		c := n.grid.Cell(p)
		if c.Type == Empty || c.Degree() > 0 {
			return true
		}
	}
	return false
}

// addCrossings turns interior empty cells into four-way tunnels or bridges.
func (n *network) addCrossings() {
	size := n.grid.Size()
	candidates := n.grid.Positions(func(p Position, c Cell) bool {
		return c.Type == Empty && p.X > 0 && p.X < size-1 && p.Y > 0 && p.Y < size-1
	})

	for placed := 0; placed < n.params.Crossings && len(candidates) > 0; {
		i := n.rng.Intn(len(candidates))
		p := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		neighbors := n.grid.Neighbors(p)
		if len(neighbors) != len(Directions) {
			continue
		}

		kind := Tunnel
		if n.rng.Intn(2) == 0 {
			kind = Bridge
		}
		if err := n.grid.SetType(p, kind); err != nil {
			continue
		}
		for _, nb := range neighbors {
			_ = n.grid.Connect(p, nb)
		}
		placed++
	}
}

// ensureStationAccessible joins an unconnected station to the nearest cell carrying track.
// Adjacent cells are connected directly; farther cells are bridged with straight track.
func (n *network) ensureStationAccessible() {
	station := n.grid.Station()
	if n.grid.Cell(station).Degree() > 0 {
		return
	}

	var nearest Position
	best := -1
	n.grid.ForEach(func(p Position, c Cell) {
		if p == station || c.Degree() == 0 {
			return
		}
		if d := p.Manhattan(station); best < 0 || d < best {
			nearest, best = p, d
		}
	})
	if best < 0 {
		return
	}

	path := []Position{station}
	for current := station; current != nearest; {
		current, _ = directStep(current, nearest)
		path = append(path, current)
	}
	n.connectPath(path, nil)
}

// addJunctions turns cells of the main path into junctions, each with a dead-end siding.
func (n *network) addJunctions() {
	mainPath, ok := n.grid.MainPath()
	if !ok || len(mainPath) < 3 {
		return
	}

	candidates := make([]Position, 0, len(mainPath)-2)
	for _, p := range mainPath[1 : len(mainPath)-1] {
		if n.grid.Cell(p).Type == Empty {
			candidates = append(candidates, p)
		}
	}

	for placed := 0; placed < n.params.Junctions && len(candidates) > 0; {
		i := n.rng.Intn(len(candidates))
		p := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		dirs := n.sidingDirections(p)
		if len(dirs) == 0 {
			continue
		}
		if err := n.grid.SetType(p, Junction); err != nil {
			continue
		}
		n.addDeadEnd(p, dirs[n.rng.Intn(len(dirs))])
		placed++
	}
}

// sidingDirections lists the directions from p whose neighbour has never carried track.
// Directions with room for a full-length siding are preferred; shorter ones are only
// returned when no direction has that room.
func (n *network) sidingDirections(p Position) []Direction {
	var long, short []Direction
	for _, d := range Directions {
		switch room := n.runway(p, d); {
		case room >= minDeadEndLength:
			long = append(long, d)
		case room > 0:
			short = append(short, d)
		}
	}
	if len(long) > 0 {
		return long
	}
	return short
}

// runway counts the pristine cells in a straight line from p in direction d, up to
// maxDeadEndLength.
func (n *network) runway(p Position, d Direction) int {
	room := 0
	for next := p.Add(d); room < maxDeadEndLength && n.grid.InBound(next) && n.grid.Cell(next).Pristine(); next = next.Add(d) {
		room++
	}
	return room
}

// addDeadEnd lays a straight siding of two to four cells from junction in direction d and marks its
// last cell as a buffer. The siding stops early at the grid edge or at a cell that already
// carries track, so the buffer always ends up with a single connection.
func (n *network) addDeadEnd(junction Position, d Direction) {
	length := minDeadEndLength + n.rng.Intn(maxDeadEndLength-minDeadEndLength+1)

	current := junction
	for i := 0; i < length; i++ {
		next := current.Add(d)
		if !n.grid.InBound(next) || !n.grid.Cell(next).Pristine() {
			break
		}
		_ = n.grid.Connect(current, next)
		current = next
	}

	if current != junction {
		_ = n.grid.SetType(current, Buffer)
	}
}

// markDeadEndsAsBuffers classifies every plain dead end reachable from start as a buffer.
func (n *network) markDeadEndsAsBuffers() {
	reachable := n.grid.Reachable(n.grid.Start())
	reachable.Each(func(p Position) {
		c := n.grid.Cell(p)
		if c.Type != Empty {
			return
		}
		if degree := c.Degree(); degree == 1 || (degree == 0 && c.touched) {
			_ = n.grid.SetType(p, Buffer)
		}
	})
}

// Validate checks the invariants every generated grid must satisfy.
func Validate(g *Grid) error {
	if p, d, ok := g.Symmetric(); !ok {
		return fmt.Errorf("%w: %s towards %s", ErrAsymmetricTrack, p, d)
	}

	start, station := g.Start(), g.Station()
	last := g.Size() - 1
	if g.Cell(start).Type != Start || g.Cell(station).Type != Station ||
		!((start.X == 0 && station.X == last) || (start.Y == 0 && station.Y == last)) {
		return ErrTerminalPlacement
	}

	mainPath, ok := g.MainPath()
	if !ok {
		return ErrStationUnreachable
	}
	onPath := make(map[Position]struct{}, len(mainPath))
	for _, p := range mainPath {
		onPath[p] = struct{}{}
	}

	var err error
	g.ForEach(func(p Position, c Cell) {
		if err != nil {
			return
		}
		switch c.Type {
		case Start, Station:
			if p != start && p != station {
				err = fmt.Errorf("%w: extra %s at %s", ErrTerminalPlacement, c.Type, p)
			}
		case Buffer:
			if c.Degree() > 1 {
				err = fmt.Errorf("%w: %s", ErrBufferDegree, p)
			}
		case Tunnel, Bridge:
			if c.Degree() != len(Directions) {
				err = fmt.Errorf("%w: %s", ErrCrossingDegree, p)
			}
		case Junction:
			if _, ok := onPath[p]; !ok || c.Degree() < 3 {
				err = fmt.Errorf("%w: %s", ErrJunctionPlacement, p)
			}
		}
	})
	return err
}
