package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/coinmaze/model"
)

func TestReadGrid(t *testing.T) {
	g, err := ReadGrid(strings.NewReader(layout))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Rows)
	assert.Equal(t, 7, g.Cols)
	assert.Equal(t, model.Start, g.At(1, 1))
	assert.Equal(t, model.End, g.At(5, 3))
	assert.Equal(t, 2, g.Count(model.Coin))
	assert.Equal(t, layout, g.String())
}

func TestReadGridPadsShortLines(t *testing.T) {
	g, err := ReadGrid(strings.NewReader("#####\n#S.E\n###\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 5, g.Cols)
	assert.Equal(t, model.Path, g.At(2, 1))
	assert.Equal(t, model.Wall, g.At(4, 1))
	assert.Equal(t, model.Wall, g.At(4, 2))
}

func TestReadGridErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Unknown rune", "#####\n#S?E#\n#####\n"},
		{"Too few rows", "#####\n#S E#\n"},
		{"Too narrow", "##\nSE\n##\n"},
		{"No end", "#####\n#S  #\n#####\n"},
		{"Two starts", "#####\n#SSE#\n#####\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGrid(strings.NewReader(tt.in))
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}

	_, err := ReadGrid(strings.NewReader("###\n#S#\n"))
	_, isDimension := err.(*model.DimensionError)
	assert.True(t, isDimension)
}

func TestLoadGrid(t *testing.T) {
	dir, err := ioutil.TempDir("", "coinmaze")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "maze.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte(layout), 0644))
	g, err := LoadGrid(path)
	require.NoError(t, err)
	assert.Equal(t, layout, g.String())

	_, err = LoadGrid(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	defer os.Unsetenv("MAZE_DIFFICULTY")

	tests := []struct {
		env  string
		want model.Difficulty
	}{
		{"", model.Medium},
		{"hard", model.Hard},
		{"easy", model.Easy},
		{"nightmare", model.Medium},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			require.NoError(t, os.Setenv("MAZE_DIFFICULTY", tt.env))
			cfg := ConfigFromEnv()
			assert.Equal(t, tt.want, cfg.Difficulty)
			assert.Equal(t, model.Presets[tt.want].CellSize, cfg.CellSize)
		})
	}
}

func TestSessionParams(t *testing.T) {
	s := NewGameServer(model.DefaultConfig())
	s.Seeds = func() int64 { return 99 }

	cfg, seed, err := s.sessionParams("", "")
	require.NoError(t, err)
	assert.Equal(t, model.Medium, cfg.Difficulty)
	assert.Equal(t, int64(99), seed)

	cfg, seed, err = s.sessionParams("hard", "-12")
	require.NoError(t, err)
	assert.Equal(t, model.Hard, cfg.Difficulty)
	assert.Equal(t, int64(-12), seed)
}
