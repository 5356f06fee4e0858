package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Preset is what a difficulty resolves to.
type Preset struct {
	CellSize   int
	CoinCount  int
	Complexity float64
}

var Presets = map[Difficulty]Preset{
	Easy:   {CellSize: 50, CoinCount: 5, Complexity: 0.5},
	Medium: {CellSize: 40, CoinCount: 10, Complexity: 0.7},
	Hard:   {CellSize: 30, CoinCount: 15, Complexity: 0.9},
}

// Difficulties in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

const (
	PointsPerCoin = 10
	// HeaderHeight is reserved above the board when sizing the grid.
	HeaderHeight = 50
	// UIOffset is where the board is drawn from.
	UIOffset = 40
)

// GameConfig is resolved once per session and passed by value.
type GameConfig struct {
	WindowWidth   int
	WindowHeight  int
	Title         string
	Difficulty    Difficulty
	CellSize      int
	CoinCount     int
	Complexity    float64
	PlayerColor   string
	PointsPerCoin int
	HeaderHeight  int
	UIOffset      int
	Colors        Palette
}

func DefaultConfig() GameConfig {
	p := Presets[Medium]
	return GameConfig{
		WindowWidth:   800,
		WindowHeight:  600,
		Title:         "Maze Adventure",
		Difficulty:    Medium,
		CellSize:      p.CellSize,
		CoinCount:     p.CoinCount,
		Complexity:    p.Complexity,
		PlayerColor:   "blue",
		PointsPerCoin: PointsPerCoin,
		HeaderHeight:  HeaderHeight,
		UIOffset:      UIOffset,
		Colors:        DefaultPalette,
	}
}

// WithDifficulty returns a copy using the preset for d. Unknown
// difficulties leave the config alone and report false.
func (c GameConfig) WithDifficulty(d Difficulty) (GameConfig, bool) {
	p, ok := Presets[d]
	if !ok {
		return c, false
	}
	c.Difficulty = d
	c.CellSize = p.CellSize
	c.CoinCount = p.CoinCount
	c.Complexity = p.Complexity
	return c, true
}

func (c GameConfig) WithPlayerColor(color string) (GameConfig, bool) {
	if !validPlayerColor(color) {
		return c, false
	}
	c.PlayerColor = color
	return c, true
}

// Dimensions is the grid size that fits the window below the header.
func (c GameConfig) Dimensions() (rows, cols int) {
	if c.CellSize <= 0 {
		return 0, 0
	}
	return (c.WindowHeight - c.HeaderHeight) / c.CellSize, c.WindowWidth / c.CellSize
}

func (c GameConfig) GenerateOptions() GenerateOptions {
	rows, cols := c.Dimensions()
	return GenerateOptions{
		Rows:       rows,
		Cols:       cols,
		Complexity: c.Complexity,
		CoinCount:  c.CoinCount,
	}
}

// TotalPoints is the score for collecting every coin.
func (c GameConfig) TotalPoints() int {
	return c.CoinCount * c.PointsPerCoin
}

type configFile struct {
	WindowWidth  int        `json:"window_width"`
	WindowHeight int        `json:"window_height"`
	CellSize     int        `json:"cell_size"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	PlayerColor  string     `json:"player_color,omitempty"`
	Colors       *Palette   `json:"colors"`
}

// LoadConfig reads the saved settings. The difficulty preset is applied
// first and the saved cell size wins over it.
func LoadConfig(r io.Reader) (GameConfig, error) {
	cfg := DefaultConfig()
	var f configFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	if f.Difficulty != "" {
		var ok bool
		if cfg, ok = cfg.WithDifficulty(f.Difficulty); !ok {
			return DefaultConfig(), errors.Errorf("unknown difficulty %q", f.Difficulty)
		}
	}
	if f.PlayerColor != "" {
		var ok bool
		if cfg, ok = cfg.WithPlayerColor(f.PlayerColor); !ok {
			return DefaultConfig(), errors.Errorf("unknown player colour %q", f.PlayerColor)
		}
	}
	if f.WindowWidth > 0 {
		cfg.WindowWidth = f.WindowWidth
	}
	if f.WindowHeight > 0 {
		cfg.WindowHeight = f.WindowHeight
	}
	if f.CellSize > 0 {
		cfg.CellSize = f.CellSize
	}
	if f.Colors != nil {
		if err := f.Colors.validate(); err != nil {
			return DefaultConfig(), errors.Wrap(err, "config colours")
		}
		cfg.Colors = *f.Colors
	}
	return cfg, nil
}

func (c GameConfig) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	err := enc.Encode(configFile{
		WindowWidth:  c.WindowWidth,
		WindowHeight: c.WindowHeight,
		CellSize:     c.CellSize,
		Difficulty:   c.Difficulty,
		PlayerColor:  c.PlayerColor,
		Colors:       &c.Colors,
	})
	return errors.Wrap(err, "encode config")
}
