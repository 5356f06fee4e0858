package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zucenko/coinmaze/canvas"
	"github.com/zucenko/coinmaze/model"
)

const bannerHeight = 120

var errQuit = errors.New("quit")

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke is a drag in progress; a long enough drag is a swipe move.
type Stroke struct {
	source StrokeSource

	initX, initY       int
	currentX, currentY int

	released bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

func (s *Stroke) PositionDiff() (int, int) {
	return s.currentX - s.initX, s.currentY - s.initY
}

// Swipe is the key a finished stroke stands for, if it went at least
// threshold pixels along its main axis.
func (s *Stroke) Swipe(threshold int) (string, bool) {
	dx, dy := s.PositionDiff()
	switch {
	case abs(dx) >= abs(dy) && abs(dx) >= threshold:
		if dx > 0 {
			return "Right", true
		}
		return "Left", true
	case abs(dy) > abs(dx) && abs(dy) >= threshold:
		if dy > 0 {
			return "Down", true
		}
		return "Up", true
	}
	return "", false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type GameState int

const (
	WELCOME GameState = iota + 1
	SETTINGS
	PLAYING
	PAUSED
	WON
)

func (s GameState) Name() string {
	switch s {
	case WELCOME:
		return "WELCOME"
	case SETTINGS:
		return "SETTINGS"
	case PLAYING:
		return "PLAYING"
	case PAUSED:
		return "PAUSED"
	case WON:
		return "WON"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State     GameState
	back      GameState
	Config    model.GameConfig
	Session   *Session
	Effects   *canvas.Canvas
	Tweens    map[*gween.Tween]Action
	HUD       *Nine
	Banner    *Nine
	strokes   map[*Stroke]struct{}
	fireworks Fireworks
	bannerY   float64
	frames    int
	message   string
	rng       *rand.Rand
}

var (
	hudFont   font.Face
	titleFont font.Face
)

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72
	hudFont = truetype.NewFace(tt, &truetype.Options{Size: 18, DPI: dpi, Hinting: font.HintingFull})
	titleFont = truetype.NewFace(tt, &truetype.Options{Size: 40, DPI: dpi, Hinting: font.HintingFull})
}

func NewGame(cfg model.GameConfig) (*Game, error) {
	hud, err := NewNine(8, model.MustColor(cfg.Colors.Grid), 0.9)
	if err != nil {
		return nil, errors.Wrap(err, "hud panel")
	}
	banner, err := NewNine(12, model.MustColor(cfg.Colors.Wall), 0.92)
	if err != nil {
		return nil, errors.Wrap(err, "banner panel")
	}
	return &Game{
		State:   WELCOME,
		Config:  cfg,
		Effects: canvas.New(),
		Tweens:  make(map[*gween.Tween]Action),
		HUD:     hud,
		Banner:  banner,
		strokes: map[*Stroke]struct{}{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (g *Game) startSession() {
	g.endSession()
	s, err := NewSession(g.Config)
	if err != nil {
		log.Warnf("startSession: %v", err)
		g.message = err.Error()
		g.State = WELCOME
		return
	}
	g.message = ""
	g.Session = s
	g.State = PLAYING
}

func (g *Game) endSession() {
	g.stopFireworks()
	g.Tweens = make(map[*gween.Tween]Action)
	g.Effects.Clear()
	if g.Session != nil {
		g.Session.Close()
		g.Session = nil
	}
}

func (g *Game) saveSettings() {
	if err := saveConfig(configPath, g.Config); err != nil {
		log.Warnf("saveSettings: %v", err)
	}
}

var moveKeys = map[ebiten.Key]string{
	ebiten.KeyUp: "Up", ebiten.KeyW: "w",
	ebiten.KeyDown: "Down", ebiten.KeyS: "s",
	ebiten.KeyLeft: "Left", ebiten.KeyA: "a",
	ebiten.KeyRight: "Right", ebiten.KeyD: "d",
}

// pressed is true on the first frame of a key press and then
// repeatedly while it is held.
func pressed(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 15 && d%4 == 0)
}

func (g *Game) move(key string) {
	collected, won := g.Session.Move(key)
	if collected != nil {
		g.burst(*collected)
	}
	if won {
		g.win()
	}
}

func (g *Game) win() {
	g.State = WON
	s := g.Session
	log.WithFields(log.Fields{
		"score": s.Maze.Score(),
		"coins": s.Maze.CoinsCollected(),
		"took":  s.Elapsed(),
	}).Info("maze solved")
	g.slideBanner()
	g.launchFireworks(12)
}

func (g *Game) updatePlaying() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.State = PAUSED
		return
	}
	for k, name := range moveKeys {
		if pressed(k) {
			g.move(name)
			if g.State != PLAYING {
				return
			}
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		s.Update()
		if !s.IsReleased() {
			continue
		}
		delete(g.strokes, s)
		if key, ok := s.Swipe(g.Session.Maze.Config().CellSize / 2); ok {
			g.move(key)
			if g.State != PLAYING {
				return
			}
		}
	}
	g.Session.Tick()
}

func (g *Game) updateSettings() {
	changed := false
	for k, d := range map[ebiten.Key]model.Difficulty{
		ebiten.Key1: model.Easy,
		ebiten.Key2: model.Medium,
		ebiten.Key3: model.Hard,
	} {
		if inpututil.IsKeyJustPressed(k) && g.Config.Difficulty != d {
			g.Config, _ = g.Config.WithDifficulty(d)
			changed = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		colors := model.PlayerColors
		next := colors[0]
		for i, c := range colors {
			if c == g.Config.PlayerColor {
				next = colors[(i+1)%len(colors)]
			}
		}
		g.Config, _ = g.Config.WithPlayerColor(next)
		if g.Session != nil {
			g.Session.Player.SetColor(next)
		}
		changed = true
	}
	if changed {
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.State = g.back
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.frames++
	g.updateTweens(1.0 / tps)

	switch g.State {
	case WELCOME:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			g.startSession()
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.back = WELCOME
			g.State = SETTINGS
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			return errQuit
		}
	case SETTINGS:
		g.updateSettings()
	case PLAYING:
		g.updatePlaying()
	case PAUSED:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			g.State = PLAYING
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.back = PAUSED
			g.State = SETTINGS
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.endSession()
			g.State = WELCOME
		}
	case WON:
		if g.frames%6 == 0 {
			g.recolorFireworks()
		}
		if g.frames%10 == 0 {
			pos, _ := g.Session.Maze.Grid().Find(model.End)
			center := g.Session.Maze.CellCenter(pos.Col, pos.Row)
			cs := float64(g.Session.Maze.Config().CellSize)
			g.sparkle(center.Add(cs*(g.rng.Float64()*4-2), cs*(g.rng.Float64()*4-2)), cs)
		}
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			g.startSession()
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.endSession()
			g.State = WELCOME
		}
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) draw(screen *ebiten.Image) {
	bg := model.MustColor(g.Config.Colors.Path)
	if e := screen.Fill(bg); e != nil {
		log.Printf("%v", e)
	}
	fg := model.MustColor(g.Config.Colors.Wall)
	w, h := g.Config.WindowWidth, g.Config.WindowHeight

	switch g.State {
	case WELCOME:
		centered(screen, g.Config.Title, titleFont, w, h/3, fg)
		centered(screen, "ENTER  start", hudFont, w, h/2, fg)
		centered(screen, "S  settings", hudFont, w, h/2+30, fg)
		centered(screen, "ESC  exit", hudFont, w, h/2+60, fg)
		if g.message != "" {
			centered(screen, g.message, hudFont, w, h-40, model.MustColor(g.Config.Colors.End))
		}
		return
	case SETTINGS:
		centered(screen, "Settings", titleFont, w, h/4, fg)
		centered(screen, fmt.Sprintf("Difficulty: %s   (1 easy, 2 medium, 3 hard)", g.Config.Difficulty), hudFont, w, h/2-20, fg)
		centered(screen, fmt.Sprintf("Player colour: %s   (C to change)", g.Config.PlayerColor), hudFont, w, h/2+10, model.MustColor(g.Config.PlayerColor))
		if g.Session != nil {
			centered(screen, "difficulty applies to the next maze", hudFont, w, h/2+40, fg)
		}
		centered(screen, "ESC  back", hudFont, w, h-60, fg)
		return
	}

	s := g.Session
	paint(screen, s.Board)
	paint(screen, g.Effects)
	g.drawHUD(screen)

	switch g.State {
	case PAUSED:
		g.Banner.SetPosition(w/4, h/2-bannerHeight/2)
		g.Banner.SetSize(w/2, bannerHeight)
		g.Banner.Draw(screen)
		centered(screen, "Paused", titleFont, w, h/2-10, color.White)
		centered(screen, "ENTER resume   S settings   ESC menu", hudFont, w, h/2+30, color.White)
	case WON:
		y := int(math.Round(g.bannerY))
		g.Banner.SetPosition(w/6, y)
		g.Banner.SetSize(2*w/3, bannerHeight)
		g.Banner.Draw(screen)
		centered(screen, "You won!", titleFont, w, y+48, color.White)
		summary := fmt.Sprintf("Score %d   Time %.1fs   R play again   ESC menu",
			s.Maze.Score(), s.Elapsed().Seconds())
		centered(screen, summary, hudFont, w, y+88, color.White)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.Session
	g.HUD.SetPosition(4, 4)
	g.HUD.SetSize(g.Config.WindowWidth-8, g.Config.UIOffset-8)
	g.HUD.Draw(screen)

	fg := model.MustColor(g.Config.Colors.Wall)
	total := s.Maze.CoinsCollected() + s.Maze.CoinsLeft()
	text.Draw(screen, fmt.Sprintf("Score: %d", s.Maze.Score()), hudFont, 16, 27, fg)
	text.Draw(screen, fmt.Sprintf("Coins: %d/%d", s.Maze.CoinsCollected(), total), hudFont, 200, 27, fg)
	text.Draw(screen, fmt.Sprintf("Time: %ds", int(s.Elapsed().Seconds())), hudFont, 380, 27, fg)
}

func centered(screen *ebiten.Image, s string, face font.Face, width, y int, clr color.Color) {
	b, _ := font.BoundString(face, s)
	x := (width - (b.Max.X - b.Min.X).Ceil()) / 2
	text.Draw(screen, s, face, x, y, clr)
}

func main() {
	cfg := loadConfig(configPath)
	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	err = ebiten.Run(game.update, cfg.WindowWidth, cfg.WindowHeight, 1, cfg.Title)
	if err != nil && err != errQuit {
		log.Fatal(err)
	}
}
