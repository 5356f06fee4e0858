package model

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// MinDimension is the smallest grid the carver can work in.
const MinDimension = 3

// Random is the source of all maze randomness; *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRandom seeds a source. Zero seeds from the clock.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type DimensionError struct {
	Rows, Cols int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("maze of %dx%d is too small, need at least %dx%d", e.Rows, e.Cols, MinDimension, MinDimension)
}

type GenerateOptions struct {
	Rows, Cols int
	// Complexity in [0,1] is the chance of a second shuffle of the
	// directions at every carved cell.
	Complexity float64
	CoinCount  int
}

// carve directions: right, down, left, up
var carveSteps = [4]Pos{{2, 0}, {0, 2}, {-2, 0}, {0, -2}}

// frame is one cell on the carving stack with the directions it still
// has to try.
type frame struct {
	at   Pos
	dirs [4]Pos
	next int
}

// Generate carves a maze with a randomized depth-first backtracker and
// places the start, the end and the coins. Only a grid smaller than 3x3 is
// an error; everything else falls back to fixed placements so a board
// always comes out.
func Generate(opts GenerateOptions, rng Random) (*Grid, error) {
	if opts.Rows < MinDimension || opts.Cols < MinDimension {
		return nil, &DimensionError{Rows: opts.Rows, Cols: opts.Cols}
	}
	complexity := opts.Complexity
	if complexity < 0 {
		complexity = 0
	} else if complexity > 1 {
		complexity = 1
	}

	g := NewGrid(opts.Rows, opts.Cols)
	origin := Pos{
		Col: 1 + 2*rng.Intn((opts.Cols-1)/2),
		Row: 1 + 2*rng.Intn((opts.Rows-1)/2),
	}
	carve(g, origin, complexity, rng)
	placeStartEnd(g, rng)
	placeCoins(g, opts.CoinCount, rng)
	return g, nil
}

// carve visits cells in the same order the recursive backtracker would,
// keeping the pending directions of every open cell on an explicit stack.
func carve(g *Grid, origin Pos, complexity float64, rng Random) {
	stack := make([]frame, 0, g.Rows*g.Cols/4+1)
	stack = append(stack, enter(g, origin, complexity, rng))

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		target := Pos{Col: top.at.Col + d.Col, Row: top.at.Row + d.Row}
		if !g.InBounds(target.Col, target.Row) || g.At(target.Col, target.Row) != Wall {
			continue
		}
		g.Set(top.at.Col+d.Col/2, top.at.Row+d.Row/2, Path)
		stack = append(stack, enter(g, target, complexity, rng))
	}
}

func enter(g *Grid, at Pos, complexity float64, rng Random) frame {
	g.Set(at.Col, at.Row, Path)
	f := frame{at: at, dirs: carveSteps}
	rng.Shuffle(len(f.dirs), func(i, j int) { f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i] })
	if rng.Float64() < complexity {
		rng.Shuffle(len(f.dirs), func(i, j int) { f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i] })
	}
	return f
}

// placeStartEnd picks the start among path cells near the top-left corner
// and the end near the bottom-right one. When a corner has no path cell
// the fixed fallback cell is overwritten whatever it held, so on tiny grids
// the start or end can sit apart from the carved maze, or the end can
// replace the start.
func placeStartEnd(g *Grid, rng Random) {
	startRows, startCols := minInt(5, g.Rows/2), minInt(5, g.Cols/2)
	starts := pathCellsIn(g, 0, startRows, 0, startCols)
	if len(starts) > 0 {
		p := starts[rng.Intn(len(starts))]
		g.Set(p.Col, p.Row, Start)
	} else {
		log.WithFields(log.Fields{"rows": g.Rows, "cols": g.Cols}).Debug("no path cell near top-left, forcing start to 1,1")
		g.Set(1, 1, Start)
	}

	endRow, endCol := maxInt(g.Rows-5, g.Rows/2), maxInt(g.Cols-5, g.Cols/2)
	ends := pathCellsIn(g, endRow, g.Rows, endCol, g.Cols)
	if len(ends) > 0 {
		p := ends[rng.Intn(len(ends))]
		g.Set(p.Col, p.Row, End)
	} else {
		log.WithFields(log.Fields{"rows": g.Rows, "cols": g.Cols}).Debug("no path cell near bottom-right, forcing end")
		g.Set(g.Cols-2, g.Rows-2, End)
	}
}

func pathCellsIn(g *Grid, rowFrom, rowTo, colFrom, colTo int) []Pos {
	var cells []Pos
	for r := rowFrom; r < rowTo; r++ {
		for c := colFrom; c < colTo; c++ {
			if g.At(c, r) == Path {
				cells = append(cells, Pos{Col: c, Row: r})
			}
		}
	}
	return cells
}

// placeCoins turns min(count, path cells) distinct path cells into coins.
func placeCoins(g *Grid, count int, rng Random) {
	cells := g.Cells(Path)
	if count > len(cells) {
		count = len(cells)
	}
	// partial Fisher-Yates: the first count cells are the sample
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
		g.Set(cells[i].Col, cells[i].Row, Coin)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
