package server

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zucenko/coinmaze/canvas"
	"github.com/zucenko/coinmaze/model"
)

// HandleSnapshot renders a freshly generated maze, player on the start
// cell, as a PNG. Query: difficulty, seed.
func (s *GameServer) HandleSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		cfg, seed, err := s.sessionParams(q.Get("difficulty"), q.Get("seed"))
		if err != nil {
			http.Error(w, err.Error(), HTTP_BAD_REQUEST)
			return
		}
		gs, err := s.newGameSession(cfg, seed)
		if err != nil {
			log.Warnf("HandleSnapshot: %v", err)
			http.Error(w, err.Error(), GAME_INVALIDE.ToHttp())
			return
		}

		var buf bytes.Buffer
		if err := canvas.EncodePNG(&buf, Snapshot(gs.Maze, gs.Player)); err != nil {
			log.Errorf("HandleSnapshot: %v", err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Maze-Seed", strconv.FormatInt(seed, 10))
		w.WriteHeader(HTTP_SUCCESS)
		_, _ = w.Write(buf.Bytes())
	}
}

// Snapshot paints the maze and player the way the desktop client lays
// them out, with the score line in the header strip.
func Snapshot(m *model.Maze, p *model.Player) *image.RGBA {
	cfg := m.Config()
	c := canvas.New()
	m.Render(c)
	p.Draw(c)
	defer func() {
		p.Undraw()
		m.Undraw()
	}()

	img := c.Image(cfg.WindowWidth, cfg.WindowHeight, model.MustColor(cfg.Colors.Path))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(model.MustColor(cfg.Colors.Wall)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, cfg.UIOffset/2+5),
	}
	d.DrawString(fmt.Sprintf("Score: %d  Coins: %d/%d  Level: %s",
		m.Score(), m.CoinsCollected(), m.CoinsCollected()+m.CoinsLeft(), cfg.Difficulty))
	return img
}
