package model

import "github.com/zucenko/coinmaze/raster"

// Player is the avatar walking a maze. Its position is always an in-bounds
// non-wall cell of the maze it was created for.
type Player struct {
	col, row int
	maze     *Maze
	color    string

	surface   raster.Surface
	character *raster.Circle
	highlight *raster.Circle
}

// NewPlayer puts a player on the maze's start cell, or on (1,1) when the
// maze has none.
func NewPlayer(m *Maze, color string) *Player {
	p := &Player{maze: m, color: color}
	if start, ok := m.grid.Find(Start); ok {
		p.col, p.row = start.Col, start.Row
	} else {
		p.col, p.row = 1, 1
	}
	return p
}

func (p *Player) Position() Pos {
	return Pos{Col: p.col, Row: p.row}
}

func (p *Player) Color() string {
	return p.color
}

// Move steps by (dCol, dRow) when the target is inside the grid and not a
// wall, collecting any coin there. It reports whether the player now
// stands on the end cell; a refused move returns false and changes
// nothing.
func (p *Player) Move(dCol, dRow int) bool {
	col, row := p.col+dCol, p.row+dRow
	g := p.maze.grid
	if !g.InBounds(col, row) || !g.At(col, row).Walkable() {
		return false
	}

	oldCol, oldRow := p.col, p.row
	p.col, p.row = col, row
	p.maze.RepaintCell(oldCol, oldRow)

	if g.At(col, row) == Coin {
		p.maze.CollectCoin(col, row)
	}
	p.place()
	return p.maze.IsWon(col, row)
}

// Step moves one cell in direction d.
func (p *Player) Step(d Direction) bool {
	return p.Move(d.Delta())
}

// HandleKey moves for arrow and WASD key names and ignores anything else.
func (p *Player) HandleKey(key string) bool {
	d, ok := KeyDirection(key)
	if !ok {
		return false
	}
	return p.Step(d)
}

// Draw puts the avatar on s: a body circle a third of a cell wide and a
// small white highlight up and to the left.
func (p *Player) Draw(s raster.Surface) {
	if p.character != nil && p.character.Drawn() {
		p.place()
		return
	}
	p.surface = s
	cs := float64(p.maze.cfg.CellSize)
	center := p.maze.CellCenter(p.col, p.row)

	p.character = raster.NewCircle(center, cs/3).
		SetFill(MustColor(p.color)).
		SetOutline(MustColor(AvatarOutline(p.color)))
	p.character.Draw(s)

	p.highlight = raster.NewCircle(center.Add(-cs/8, -cs/8), cs/8).
		SetFill(raster.White).
		SetOutline(raster.White).
		SetWidth(0)
	p.highlight.Draw(s)
}

// place moves the drawn avatar over the current cell.
func (p *Player) place() {
	if p.character == nil || !p.character.Drawn() {
		return
	}
	center := p.maze.CellCenter(p.col, p.row)
	cur := p.character.Center()
	dx, dy := center.X-cur.X, center.Y-cur.Y
	p.character.Move(dx, dy)
	p.highlight.Move(dx, dy)
}

// SetColor switches to one of PlayerColors and redraws the avatar if it
// is on screen.
func (p *Player) SetColor(color string) bool {
	if !validPlayerColor(color) {
		return false
	}
	p.color = color
	if p.character != nil && p.character.Drawn() {
		s := p.surface
		p.Undraw()
		p.Draw(s)
	}
	return true
}

func (p *Player) Undraw() {
	if p.character != nil {
		p.character.Undraw()
		p.highlight.Undraw()
	}
	p.character, p.highlight = nil, nil
	p.surface = nil
}
