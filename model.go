package main

import (
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/coinmaze/canvas"
	"github.com/zucenko/coinmaze/model"
	"github.com/zucenko/coinmaze/raster"
)

const tps = 60

// Session is one maze on screen: the model, the avatar and the canvas
// both of them draw on.
type Session struct {
	Maze   *model.Maze
	Player *model.Player
	Board  *canvas.Canvas
	frames int
}

func NewSession(cfg model.GameConfig) (*Session, error) {
	m, err := model.NewSession(cfg, model.NewRandom(0))
	if err != nil {
		return nil, errors.Wrap(err, "can't build maze")
	}
	s := &Session{
		Maze:   m,
		Player: model.NewPlayer(m, cfg.PlayerColor),
		Board:  canvas.New(),
	}
	m.Render(s.Board)
	s.Player.Draw(s.Board)
	rows, cols := cfg.Dimensions()
	log.WithFields(log.Fields{
		"rows":       rows,
		"cols":       cols,
		"difficulty": cfg.Difficulty,
		"coins":      m.CoinsLeft(),
	}).Info("session started")
	return s, nil
}

// Tick advances the clock and the coin pulse by one frame.
func (s *Session) Tick() {
	s.frames++
	s.Maze.Animate(float64(s.frames) / tps)
}

func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.frames) * time.Second / tps
}

// Move handles a key and tells what happened: a coin picked up, the end
// reached, or both.
func (s *Session) Move(key string) (collected *raster.Point, won bool) {
	before := s.Maze.CoinsLeft()
	won = s.Player.HandleKey(key)
	if s.Maze.CoinsLeft() < before {
		pos := s.Player.Position()
		c := s.Maze.CellCenter(pos.Col, pos.Row)
		collected = &c
	}
	return
}

func (s *Session) Close() {
	s.Player.Undraw()
	s.Maze.Undraw()
	s.Board.Clear()
}

// paint puts every rect of c on the screen, fill first and then the
// outline strips along the inside edge.
func paint(screen *ebiten.Image, c *canvas.Canvas) {
	c.Each(func(r raster.Rect) {
		b := canvas.Bounds(r)
		x, y := float64(b.Min.X), float64(b.Min.Y)
		w, h := float64(b.Dx()), float64(b.Dy())
		ebitenutil.DrawRect(screen, x, y, w, h, r.Fill)

		lw := r.Width
		if lw <= 0 || r.Outline == r.Fill {
			return
		}
		if lw > w {
			lw = w
		}
		if lw > h {
			lw = h
		}
		ebitenutil.DrawRect(screen, x, y, w, lw, r.Outline)
		ebitenutil.DrawRect(screen, x, y+h-lw, w, lw, r.Outline)
		ebitenutil.DrawRect(screen, x, y, lw, h, r.Outline)
		ebitenutil.DrawRect(screen, x+w-lw, y, lw, h, r.Outline)
	})
}
