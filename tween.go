package main

import (
	"image/color"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/coinmaze/model"
	"github.com/zucenko/coinmaze/raster"
)

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start when the tween of a finishes and returns the
// action to hang callbacks for t on.
func (a *Action) next(t *gween.Tween) *Action {
	action := Action{}
	if a.nexts == nil {
		a.nexts = make([]func(g *Game), 0)
	}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return &action
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

var fireworkColors = []string{"red", "gold", "deepskyblue", "lime", "magenta", "orange", "white"}

func (g *Game) randomColor() color.RGBA {
	return model.MustColor(fireworkColors[g.rng.Intn(len(fireworkColors))])
}

// burst sends eight coin-coloured dots flying out of a collected coin.
func (g *Game) burst(center raster.Point) {
	cfg := g.Session.Maze.Config()
	cs := float64(cfg.CellSize)
	gold := model.MustColor(cfg.Colors.Coin)
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		dot := raster.NewCircle(center, cs/10).SetFill(gold).SetOutline(gold).SetWidth(0)
		dot.Draw(g.Effects)
		travelled := 0.0
		g.Tweens[gween.New(0, float32(cs*0.8), 0.4, ease.OutQuad)] = Action{
			onChange: func(v float32) {
				d := float64(v) - travelled
				travelled = float64(v)
				dot.Move(d*math.Cos(angle), d*math.Sin(angle))
			},
			onFinish: []func(){dot.Undraw},
		}
	}
}

// sparkle is a star: a core circle with four Bresenham rays that grow,
// then the core shrinks away.
func (g *Game) sparkle(center raster.Point, size float64) {
	c := g.randomColor()
	core := raster.NewCircle(center, size/6).SetFill(c).SetOutline(c)
	core.Draw(g.Effects)
	rays := make([]*raster.Line, 4)

	grow := Action{
		onChange: func(v float32) {
			for i := range rays {
				if rays[i] != nil {
					rays[i].Undraw()
				}
				angle := float64(i)*math.Pi/2 + math.Pi/4
				dx, dy := math.Cos(angle), math.Sin(angle)
				inner := center.Add(dx*size/6, dy*size/6)
				outer := center.Add(dx*float64(v), dy*float64(v))
				rays[i] = raster.NewLine(inner, outer).SetFill(c)
				rays[i].Draw(g.Effects)
			}
		},
	}
	fade := grow.next(gween.New(float32(size/6), 1, 0.3, ease.InQuad))
	fade.onChange = func(v float32) {
		core.SetRadius(float64(v)).Redraw()
	}
	fade.addOnFinish(func() {
		core.Undraw()
		for _, ray := range rays {
			if ray != nil {
				ray.Undraw()
			}
		}
	})
	g.Tweens[gween.New(float32(size/6), float32(size/2), 0.5, ease.OutCubic)] = grow
}

// Fireworks are random lines over the board that change colour every few
// frames while the win screen is up.
type Fireworks struct {
	lines []*raster.Line
}

func (g *Game) launchFireworks(n int) {
	g.stopFireworks()
	w, h := float64(g.Config.WindowWidth), float64(g.Config.WindowHeight)
	for i := 0; i < n; i++ {
		center := raster.Pt(w*(0.1+0.8*g.rng.Float64()), h*(0.2+0.6*g.rng.Float64()))
		angle := 2 * math.Pi * g.rng.Float64()
		length := 20 + 40*g.rng.Float64()
		end := center.Add(length*math.Cos(angle), length*math.Sin(angle))
		line := raster.NewLine(center, end).SetFill(g.randomColor()).SetWidth(2)
		line.Draw(g.Effects)
		g.fireworks.lines = append(g.fireworks.lines, line)
	}
}

func (g *Game) recolorFireworks() {
	for _, line := range g.fireworks.lines {
		line.SetFill(g.randomColor()).Draw(g.Effects)
	}
}

func (g *Game) stopFireworks() {
	for _, line := range g.fireworks.lines {
		line.Undraw()
	}
	g.fireworks.lines = nil
}

// slideBanner drops the win panel in from above the window.
func (g *Game) slideBanner() {
	target := float32(g.Config.WindowHeight/2 - bannerHeight/2)
	g.bannerY = -bannerHeight
	g.Tweens[gween.New(-bannerHeight, target, 0.8, ease.OutBounce)] = Action{
		onChange: func(v float32) {
			g.bannerY = float64(v)
		},
	}
}
