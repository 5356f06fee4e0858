package model

import "fmt"

// CellState values match the numbers the game has always stored.
type CellState int

const (
	Path CellState = iota
	Wall
	Start
	End
	Coin
)

func (s CellState) Name() string {
	switch s {
	case Path:
		return "PATH"
	case Wall:
		return "WALL"
	case Start:
		return "START"
	case End:
		return "END"
	case Coin:
		return "COIN"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Walkable is true for every state but Wall.
func (s CellState) Walkable() bool {
	return s != Wall
}

type Pos struct {
	Col, Row int
}

// Direction indexes the four neighbours the same way cell paths always
// have: 0 right, 1 down, 2 left, 3 up.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

var deltas = [4]Pos{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func (d Direction) Delta() (dCol, dRow int) {
	if d < Right || d > Up {
		return 0, 0
	}
	p := deltas[d]
	return p.Col, p.Row
}

// Opposite is the direction back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) Name() string {
	switch d {
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Up:
		return "UP"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

var keyDirections = map[string]Direction{
	"Up": Up, "w": Up,
	"Down": Down, "s": Down,
	"Left": Left, "a": Left,
	"Right": Right, "d": Right,
}

// KeyDirection maps a key name to a move: arrows or WASD.
func KeyDirection(key string) (Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}

// Grid is a rows x cols matrix of cell states, addressed (col, row).
type Grid struct {
	Rows, Cols int
	cells      []CellState
}

// NewGrid returns a grid of walls.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{Rows: rows, Cols: cols, cells: make([]CellState, rows*cols)}
	for i := range g.cells {
		g.cells[i] = Wall
	}
	return g
}

// GridFromRows builds a grid from row slices, mostly for fixtures.
func GridFromRows(rows [][]CellState) *Grid {
	if len(rows) == 0 {
		return &Grid{}
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		for c, s := range line {
			g.Set(c, r, s)
		}
	}
	return g
}

func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At returns Wall for anything outside the grid.
func (g *Grid) At(col, row int) CellState {
	if !g.InBounds(col, row) {
		return Wall
	}
	return g.cells[row*g.Cols+col]
}

func (g *Grid) Set(col, row int, s CellState) {
	if g.InBounds(col, row) {
		g.cells[row*g.Cols+col] = s
	}
}

// Find returns the first cell in row-major order with the given state.
func (g *Grid) Find(s CellState) (Pos, bool) {
	for i, c := range g.cells {
		if c == s {
			return Pos{Col: i % g.Cols, Row: i / g.Cols}, true
		}
	}
	return Pos{}, false
}

func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Cells lists every cell with the given state in row-major order.
func (g *Grid) Cells(s CellState) []Pos {
	var cells []Pos
	for i, c := range g.cells {
		if c == s {
			cells = append(cells, Pos{Col: i % g.Cols, Row: i / g.Cols})
		}
	}
	return cells
}

// States is a row-major copy of the cells.
func (g *Grid) States() []CellState {
	return append([]CellState(nil), g.cells...)
}

func (g *Grid) Clone() *Grid {
	return &Grid{Rows: g.Rows, Cols: g.Cols, cells: g.States()}
}

// String draws the grid with one rune per cell.
func (g *Grid) String() string {
	runes := map[CellState]rune{Path: ' ', Wall: '#', Start: 'S', End: 'E', Coin: '*'}
	buf := make([]rune, 0, (g.Cols+1)*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			buf = append(buf, runes[g.At(c, r)])
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
