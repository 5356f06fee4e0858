package server

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/coinmaze/model"
)

// LoadGrid reads a fixed maze layout. Sessions of a server with a layout
// all play that maze instead of a generated one.
func LoadGrid(path string) (*model.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open maze file")
	}
	defer file.Close()
	return ReadGrid(file)
}

// ReadGrid parses the text form printed by Grid.String: '#' wall, ' '
// path, 'S' start, 'E' end, '*' coin. Short lines are padded with walls.
func ReadGrid(reader io.Reader) (*model.Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([][]model.CellState, 0)
	cols := 0
	for scanner.Scan() {
		s := scanner.Text()
		if s == "" {
			continue
		}
		line := make([]model.CellState, 0, len(s))
		for i, char := range s {
			switch char {
			case '#':
				line = append(line, model.Wall)
			case ' ', '.':
				line = append(line, model.Path)
			case 'S':
				line = append(line, model.Start)
			case 'E':
				line = append(line, model.End)
			case '*':
				line = append(line, model.Coin)
			default:
				return nil, errors.Errorf("line %d col %d: unexpected %q", len(lines)+1, i, char)
			}
		}
		if len(line) > cols {
			cols = len(line)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read maze file")
	}
	if len(lines) < model.MinDimension || cols < model.MinDimension {
		return nil, &model.DimensionError{Rows: len(lines), Cols: cols}
	}

	g := model.NewGrid(len(lines), cols)
	for r, line := range lines {
		for c, s := range line {
			g.Set(c, r, s)
		}
	}
	if g.Count(model.Start) != 1 || g.Count(model.End) != 1 {
		return nil, errors.Errorf("maze needs one start and one end, has %d and %d",
			g.Count(model.Start), g.Count(model.End))
	}
	return g, nil
}

// ConfigFromEnv starts from the default config and applies
// MAZE_DIFFICULTY when it names a known preset.
func ConfigFromEnv() model.GameConfig {
	cfg := model.DefaultConfig()
	d := os.Getenv("MAZE_DIFFICULTY")
	if d == "" {
		return cfg
	}
	withDifficulty, ok := cfg.WithDifficulty(model.Difficulty(d))
	if !ok {
		log.Warnf("MAZE_DIFFICULTY %q unknown, staying on %s", d, cfg.Difficulty)
		return cfg
	}
	return withDifficulty
}

// sessionParams reads the optional difficulty and seed query parameters.
func (s *GameServer) sessionParams(difficulty, seed string) (model.GameConfig, int64, error) {
	cfg := s.Config
	if difficulty != "" {
		var ok bool
		cfg, ok = cfg.WithDifficulty(model.Difficulty(difficulty))
		if !ok {
			return cfg, 0, errors.Errorf("unknown difficulty %q", difficulty)
		}
	}
	if seed == "" {
		return cfg, s.Seeds(), nil
	}
	n, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return cfg, 0, errors.Wrapf(err, "seed %q", seed)
	}
	return cfg, n, nil
}
