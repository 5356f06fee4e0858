package model

// ServerMessage is everything the server sends; empty slices mean no news
// of that kind.
type ServerMessage struct {
	Setup []Setup
	Moves []MoveResult
}

type Setup struct {
	Rows, Cols    int
	Cells         []CellState
	Player        Pos
	CoinCount     int
	PointsPerCoin int
	Difficulty    Difficulty
}

type MoveResult struct {
	Direction Direction
	Col, Row  int
	Moved     bool
	Collected bool
	Score     int
	CoinsLeft int
	Won       bool
}

type ClientMessage struct {
	Move Direction
}

// NewSetup describes the maze and the player's place on it.
func NewSetup(m *Maze, p *Player) Setup {
	g := m.Grid()
	return Setup{
		Rows:          g.Rows,
		Cols:          g.Cols,
		Cells:         g.States(),
		Player:        p.Position(),
		CoinCount:     m.CoinsLeft(),
		PointsPerCoin: m.Config().PointsPerCoin,
		Difficulty:    m.Config().Difficulty,
	}
}

// Grid rebuilds the maze grid on the receiving side.
func (s Setup) Grid() *Grid {
	g := NewGrid(s.Rows, s.Cols)
	copy(g.cells, s.Cells)
	return g
}

// Apply runs a client move against the maze.
func Apply(m *Maze, p *Player, d Direction) MoveResult {
	before := p.Position()
	coins := m.CoinsLeft()
	won := p.Step(d)
	after := p.Position()
	return MoveResult{
		Direction: d,
		Col:       after.Col,
		Row:       after.Row,
		Moved:     after != before,
		Collected: m.CoinsLeft() < coins,
		Score:     m.Score(),
		CoinsLeft: m.CoinsLeft(),
		Won:       won,
	}
}
