package model

import (
	"math"
	"sort"

	"github.com/zucenko/coinmaze/raster"
)

// Maze is a generated grid plus the game state that lives on it: the
// coins still lying around and the score. It can render itself onto a
// surface but works just as well without one.
type Maze struct {
	grid  *Grid
	cfg   GameConfig
	coins map[Pos]struct{}
	score int

	surface    raster.Surface
	cellShapes map[Pos]*raster.FilledRect
	coinShapes map[Pos]*raster.Circle
	coinRadius float64
}

func NewMaze(grid *Grid, cfg GameConfig) *Maze {
	m := &Maze{
		grid:       grid,
		cfg:        cfg,
		coins:      make(map[Pos]struct{}),
		cellShapes: make(map[Pos]*raster.FilledRect),
		coinShapes: make(map[Pos]*raster.Circle),
		coinRadius: float64(cfg.CellSize) / 3,
	}
	for _, p := range grid.Cells(Coin) {
		m.coins[p] = struct{}{}
	}
	return m
}

// NewSession generates a maze for cfg.
func NewSession(cfg GameConfig, rng Random) (*Maze, error) {
	g, err := Generate(cfg.GenerateOptions(), rng)
	if err != nil {
		return nil, err
	}
	return NewMaze(g, cfg), nil
}

func (m *Maze) Grid() *Grid { return m.grid }
func (m *Maze) Config() GameConfig { return m.cfg }
func (m *Maze) Score() int { return m.score }
func (m *Maze) CoinsLeft() int { return len(m.coins) }
func (m *Maze) Surface() raster.Surface { return m.surface }

// CoinsCollected is derived from the score like the HUD always did.
func (m *Maze) CoinsCollected() int {
	if m.cfg.PointsPerCoin == 0 {
		return 0
	}
	return m.score / m.cfg.PointsPerCoin
}

// Coins lists the remaining coins, top to bottom, left to right.
func (m *Maze) Coins() []Pos {
	coins := make([]Pos, 0, len(m.coins))
	for p := range m.coins {
		coins = append(coins, p)
	}
	sort.Slice(coins, func(i, j int) bool {
		if coins[i].Row != coins[j].Row {
			return coins[i].Row < coins[j].Row
		}
		return coins[i].Col < coins[j].Col
	})
	return coins
}

// CollectCoin takes the coin at (col,row) if there is one. The cell turns
// into path and the score goes up; a second call for the same cell does
// nothing and returns false.
func (m *Maze) CollectCoin(col, row int) bool {
	p := Pos{Col: col, Row: row}
	if _, ok := m.coins[p]; !ok {
		return false
	}
	delete(m.coins, p)
	m.grid.Set(col, row, Path)
	m.score += m.cfg.PointsPerCoin
	if shape, ok := m.coinShapes[p]; ok {
		shape.Undraw()
		delete(m.coinShapes, p)
	}
	return true
}

func (m *Maze) IsWon(col, row int) bool {
	return m.grid.At(col, row) == End
}

// CellRect is the pixel rectangle of a cell.
func (m *Maze) CellRect(col, row int) (raster.Point, raster.Point) {
	cs := float64(m.cfg.CellSize)
	x1 := float64(col) * cs
	y1 := float64(row)*cs + float64(m.cfg.UIOffset)
	return raster.Pt(x1, y1), raster.Pt(x1+cs, y1+cs)
}

func (m *Maze) CellCenter(col, row int) raster.Point {
	p1, p2 := m.CellRect(col, row)
	return raster.Pt((p1.X+p2.X)/2, (p1.Y+p2.Y)/2)
}

// Render draws every cell and a circle for every coin.
func (m *Maze) Render(s raster.Surface) {
	m.Undraw()
	m.surface = s
	for r := 0; r < m.grid.Rows; r++ {
		for c := 0; c < m.grid.Cols; c++ {
			m.drawCell(c, r)
			if m.grid.At(c, r) == Coin {
				m.drawCoin(c, r)
			}
		}
	}
}

func (m *Maze) drawCell(col, row int) {
	p1, p2 := m.CellRect(col, row)
	shape := raster.NewFilledRect(p1, p2).
		SetFill(m.cfg.Colors.CellColor(m.grid.At(col, row))).
		SetOutline(MustColor(m.cfg.Colors.Grid))
	shape.Draw(m.surface)
	m.cellShapes[Pos{Col: col, Row: row}] = shape
}

func (m *Maze) drawCoin(col, row int) {
	coin := raster.NewCircle(m.CellCenter(col, row), m.coinRadius).
		SetFill(MustColor(m.cfg.Colors.Coin)).
		SetOutline(MustColor("gold"))
	coin.Draw(m.surface)
	m.coinShapes[Pos{Col: col, Row: row}] = coin
}

// RepaintCell draws a cell again in the colour of its current state.
func (m *Maze) RepaintCell(col, row int) {
	if m.surface == nil || !m.grid.InBounds(col, row) {
		return
	}
	p := Pos{Col: col, Row: row}
	if old, ok := m.cellShapes[p]; ok {
		old.Undraw()
	}
	m.drawCell(col, row)
}

// Animate pulses the coins: radius = base * (1 + 0.1*sin(3t)) with t in
// seconds since the session started.
func (m *Maze) Animate(t float64) {
	radius := m.coinRadius * (1 + 0.1*math.Sin(3*t))
	for _, coin := range m.coinShapes {
		if !coin.Drawn() {
			continue
		}
		coin.SetRadius(radius).Redraw()
	}
}

// Undraw takes everything the maze drew off its surface.
func (m *Maze) Undraw() {
	for p, shape := range m.cellShapes {
		shape.Undraw()
		delete(m.cellShapes, p)
	}
	for p, coin := range m.coinShapes {
		coin.Undraw()
		delete(m.coinShapes, p)
	}
	m.surface = nil
}
